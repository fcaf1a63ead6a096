package topology

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"

	"github.com/shaunstoltz/dask-cuda/cmd/run"
	"github.com/shaunstoltz/dask-cuda/internal/topology"
	"github.com/shaunstoltz/dask-cuda/pkg/utils"
)

// Command .
func Command() *cli.Command {
	return &cli.Command{
		Name:  "topology",
		Usage: "inspect the host hardware",

		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "detect the host and compare it against the DGX-1 profile",
				Action: run.Run(show),
			},
			{
				Name:   "map",
				Usage:  "print the static DGX-1 GPU/CPU/HCA adjacency",
				Action: run.Run(printMap),
			},
		},
	}
}

func show(c *cli.Context, _ run.Runtime) error {
	info, err := topology.DetectHost()
	if err != nil {
		return err
	}

	fmt.Printf("host: %s (kernel %s)\n", info.Hostname, info.Kernel)
	fmt.Printf("cpu: %d sockets, %d cores, %d logical cpus\n",
		info.Sockets, info.PhysicalCores, info.LogicalCPUs)
	fmt.Printf("memory: %s\n", humanize.IBytes(uint64(info.MemoryBytes)))

	for _, gpu := range info.GPUs {
		fmt.Printf("gpu %d: %s %s (%s)\n",
			gpu.Index, gpu.Name, humanize.IBytes(gpu.MemoryBytes), gpu.UUID)
	}
	for _, dev := range info.IBDevices {
		fmt.Printf("ib: %s\n", dev)
	}
	for _, nic := range info.NICs {
		fmt.Printf("nic: %s\n", nic)
	}

	if info.MatchesDGX1() {
		fmt.Println("host matches the DGX-1 profile")
	} else {
		fmt.Println("host does not match the DGX-1 profile; generated layouts may not fit")
	}

	return nil
}

func printMap(c *cli.Context, _ run.Runtime) error {
	for gpu := 0; gpu < topology.DGX1GPUCount; gpu++ {
		fmt.Printf("gpu %d  cpus %-12s  ib %s\n",
			gpu, utils.FormatRanges(topology.CPUAffinity(gpu)), topology.InfiniBandDevice(gpu))
	}
	return nil
}
