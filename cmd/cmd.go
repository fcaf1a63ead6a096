package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/shaunstoltz/dask-cuda/cmd/config"
	"github.com/shaunstoltz/dask-cuda/cmd/spec"
	"github.com/shaunstoltz/dask-cuda/cmd/topology"
	"github.com/shaunstoltz/dask-cuda/cmd/ucx"
	"github.com/shaunstoltz/dask-cuda/ver"
)

func main() {
	cli.VersionPrinter = func(c *cli.Context) {
		fmt.Println(ver.Version())
	}

	app := &cli.App{
		Name:  ver.Name,
		Usage: "configure a GPU-topology-aware worker cluster for a DGX-1",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "config",
				Usage: "config files",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "override the configured log level",
			},
		},

		Commands: []*cli.Command{
			spec.Command(),
			topology.Command(),
			ucx.Command(),
			config.Command(),
		},

		Version: "v",
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Printf("%+v\n", err)
		os.Exit(1)
	}
}
