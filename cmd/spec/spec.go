package spec

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"

	"github.com/shaunstoltz/dask-cuda/cmd/run"
	"github.com/shaunstoltz/dask-cuda/configs"
	"github.com/shaunstoltz/dask-cuda/internal/cluster"
	"github.com/shaunstoltz/dask-cuda/internal/dgx"
	"github.com/shaunstoltz/dask-cuda/pkg/utils"
)

// Command .
func Command() *cli.Command {
	return &cli.Command{
		Name:  "spec",
		Usage: "generate the DGX-1 cluster layout",

		Subcommands: []*cli.Command{
			{
				Name:   "render",
				Usage:  "render the full cluster spec as JSON",
				Flags:  flags(),
				Action: run.Run(render),
			},
			{
				Name:   "workers",
				Usage:  "list the per-GPU worker bindings",
				Flags:  flags(),
				Action: run.Run(workers),
			},
		},
	}
}

func flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "name",
			Usage: "cluster name, generated when empty",
		},
		&cli.StringFlag{
			Name:  "interface",
			Usage: "external interface used to reach the scheduler",
		},
		&cli.StringFlag{
			Name:  "dashboard-address",
			Usage: "scheduler dashboard address",
		},
		&cli.IntFlag{
			Name:  "threads-per-worker",
			Usage: "threads per CUDA worker process",
		},
		&cli.StringFlag{
			Name:  "devices",
			Usage: `restrict workers to these CUDA devices, e.g. "0,1,2,3"`,
		},
		&cli.StringFlag{
			Name:  "protocol",
			Usage: `wire protocol, "tcp" or "ucx"`,
		},
		&cli.BoolFlag{
			Name:  "enable-tcp-over-ucx",
			Usage: "set environment variables for TCP over UCX",
		},
		&cli.BoolFlag{
			Name:  "enable-infiniband",
			Usage: `enable UCX InfiniBand support, requires --protocol=ucx`,
		},
		&cli.BoolFlag{
			Name:  "enable-nvlink",
			Usage: `enable UCX NVLink support, requires --protocol=ucx`,
		},
		&cli.BoolFlag{
			Name:  "verbose-workers",
			Usage: "do not silence worker process logs",
		},
	}
}

// buildOptions merges the loaded config with command line overrides.
func buildOptions(c *cli.Context) ([]dgx.Option, error) {
	conf := configs.Conf

	if v := c.String("interface"); len(v) > 0 {
		conf.Interface = v
	}
	if v := c.String("dashboard-address"); len(v) > 0 {
		conf.DashboardAddress = v
	}
	if c.IsSet("threads-per-worker") {
		conf.ThreadsPerWorker = c.Int("threads-per-worker")
	}
	if v := c.String("devices"); len(v) > 0 {
		conf.CUDAVisibleDevices = v
	}
	if v := c.String("protocol"); len(v) > 0 {
		conf.Protocol = v
	}
	if c.Bool("enable-tcp-over-ucx") {
		conf.EnableTCPOverUCX = true
	}
	if c.Bool("enable-infiniband") {
		conf.EnableInfiniBand = true
	}
	if c.Bool("enable-nvlink") {
		conf.EnableNVLink = true
	}
	if c.Bool("verbose-workers") {
		conf.SilenceLogs = false
	}

	devices, err := utils.ParseDeviceList(conf.CUDAVisibleDevices)
	if err != nil {
		return nil, err
	}

	opts := []dgx.Option{
		dgx.WithInterface(conf.Interface),
		dgx.WithDashboardAddress(conf.DashboardAddress),
		dgx.WithThreadsPerWorker(conf.ThreadsPerWorker),
		dgx.WithSilenceLogs(conf.SilenceLogs),
		dgx.WithProtocol(conf.Protocol),
		dgx.WithTCPOverUCX(conf.EnableTCPOverUCX),
		dgx.WithInfiniBand(conf.EnableInfiniBand),
		dgx.WithNVLink(conf.EnableNVLink),
	}
	if devices != nil {
		opts = append(opts, dgx.WithVisibleDevices(devices))
	}
	if name := c.String("name"); len(name) > 0 {
		opts = append(opts, dgx.WithName(name))
	}

	return opts, nil
}

func render(c *cli.Context, _ run.Runtime) error {
	opts, err := buildOptions(c)
	if err != nil {
		return err
	}

	handle, err := dgx.New(c.Context, cluster.NewDryRunOrchestrator(), opts...)
	if err != nil {
		return err
	}

	buf, err := json.MarshalIndent(handle.Spec(), "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal spec")
	}

	fmt.Println(string(buf))

	return nil
}

func workers(c *cli.Context, _ run.Runtime) error {
	opts, err := buildOptions(c)
	if err != nil {
		return err
	}

	spec, err := dgx.BuildSpec(opts...)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(spec.Workers))
	for name := range spec.Workers {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		w := spec.Workers[name]
		netdev := w.UCXNetDevice
		if len(netdev) < 1 {
			netdev = "-"
		}
		fmt.Printf("worker %-3s gpu %d  visible %-15s  cpus %-12s  netdev %s\n",
			w.Name, w.GPU, utils.JoinDevices(w.CUDAVisibleDevices),
			utils.FormatRanges(w.CPUAffinity), netdev)
	}

	return nil
}
