package run

import (
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"

	"github.com/shaunstoltz/dask-cuda/configs"
	"github.com/shaunstoltz/dask-cuda/pkg/log"
)

// Runner .
type Runner func(*cli.Context, Runtime) error

// Runtime .
type Runtime struct {
	ConfigFiles []string
}

// Run wraps a command action with config loading and log setup.
func Run(fn Runner) cli.ActionFunc {
	return func(c *cli.Context) error {
		var runtime Runtime
		runtime.ConfigFiles = c.StringSlice("config")

		if err := configs.Conf.Load(runtime.ConfigFiles); err != nil {
			return errors.Wrap(err, "failed to load config")
		}

		if lv := c.String("log-level"); len(lv) > 0 {
			configs.Conf.LogLevel = lv
		}

		if err := log.Setup(configs.Conf.LogLevel, configs.Conf.LogFile); err != nil {
			return errors.Wrap(err, "failed to setup log")
		}

		return fn(c, runtime)
	}
}
