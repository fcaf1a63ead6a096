package ucx

import (
	"fmt"
	"sort"

	"github.com/urfave/cli/v2"

	"github.com/shaunstoltz/dask-cuda/cmd/run"
	"github.com/shaunstoltz/dask-cuda/configs"
	"github.com/shaunstoltz/dask-cuda/internal/ucx"
)

// Command .
func Command() *cli.Command {
	return &cli.Command{
		Name:  "ucx",
		Usage: "UCX transport helpers",

		Subcommands: []*cli.Command{
			{
				Name:  "env",
				Usage: "print the UCX environment for the configured transports",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "enable-tcp-over-ucx"},
					&cli.BoolFlag{Name: "enable-infiniband"},
					&cli.BoolFlag{Name: "enable-nvlink"},
				},
				Action: run.Run(env),
			},
		},
	}
}

func env(c *cli.Context, _ run.Runtime) error {
	conf := configs.Conf

	opts := ucx.Options{
		EnableTCP:        conf.EnableTCPOverUCX || c.Bool("enable-tcp-over-ucx"),
		EnableInfiniBand: conf.EnableInfiniBand || c.Bool("enable-infiniband"),
		EnableNVLink:     conf.EnableNVLink || c.Bool("enable-nvlink"),
	}

	vars := ucx.Env(opts)
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Printf("%s=%s\n", k, vars[k])
	}

	return nil
}
