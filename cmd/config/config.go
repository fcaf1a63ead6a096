package config

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/shaunstoltz/dask-cuda/cmd/run"
	"github.com/shaunstoltz/dask-cuda/configs"
)

// Command .
func Command() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "show configuration",

		Subcommands: []*cli.Command{
			{
				Name:  "default",
				Usage: "print the default config template",
				Action: func(c *cli.Context) error {
					fmt.Print(configs.DefaultTemplate)
					return nil
				},
			},
			{
				Name:   "show",
				Usage:  "print the effective config after merging files and defaults",
				Action: run.Run(show),
			},
		},
	}
}

func show(c *cli.Context, _ run.Runtime) error {
	raw, err := configs.Encode(&configs.Conf)
	if err != nil {
		return err
	}
	fmt.Print(raw)
	return nil
}
