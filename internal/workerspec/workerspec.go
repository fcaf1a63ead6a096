// Package workerspec builds the per-GPU worker declarations: one worker per
// visible CUDA device, bound to the CPU cores and (optionally) the HCA
// nearest that device.
package workerspec

import (
	"strconv"

	"github.com/cockroachdb/errors"

	"github.com/shaunstoltz/dask-cuda/internal/topology"
	"github.com/shaunstoltz/dask-cuda/internal/types"
	"github.com/shaunstoltz/dask-cuda/internal/ucx"
	"github.com/shaunstoltz/dask-cuda/pkg/terrors"
	"github.com/shaunstoltz/dask-cuda/pkg/utils"
)

// Options .
type Options struct {
	Interface        string
	Protocol         string
	DashboardAddress string
	ThreadsPerWorker int
	SilenceLogs      bool

	// VisibleDevices restricts the workers to these CUDA device indices.
	// Nil means every GPU found on the host.
	VisibleDevices []int

	EnableTCPOverUCX bool
	EnableInfiniBand bool
	EnableNVLink     bool

	// NetDevice, when set, names the UCX net device for a given GPU index.
	NetDevice func(gpu int) string
}

// Build produces one WorkerSpec per visible GPU, keyed by worker name.
// Worker i's CUDA_VISIBLE_DEVICES is the visible list cycled so its own GPU
// comes first, which makes device 0 inside the process the one the worker
// owns.
func Build(opts Options) (map[string]types.WorkerSpec, error) {
	devices := opts.VisibleDevices
	if devices == nil {
		count, err := topology.GPUCount()
		if err != nil {
			return nil, errors.Wrap(err, "failed to list CUDA devices")
		}
		for i := 0; i < count; i++ {
			devices = append(devices, i)
		}
	}

	if len(devices) < 1 {
		return nil, errors.Wrap(terrors.ErrNoGPUs, "")
	}
	if err := utils.ValidateDevices(devices); err != nil {
		return nil, err
	}

	if opts.ThreadsPerWorker < 1 {
		opts.ThreadsPerWorker = 1
	}
	if len(opts.DashboardAddress) < 1 {
		opts.DashboardAddress = ":8787"
	}

	ucxEnv := ucx.Env(ucx.Options{
		EnableTCP:        opts.EnableTCPOverUCX,
		EnableInfiniBand: opts.EnableInfiniBand,
		EnableNVLink:     opts.EnableNVLink,
	})

	workers := make(map[string]types.WorkerSpec, len(devices))
	for pos, gpu := range devices {
		env := make(map[string]string, len(ucxEnv)+2)
		for k, v := range ucxEnv {
			env[k] = v
		}
		env["CUDA_VISIBLE_DEVICES"] = utils.JoinDevices(utils.RotateDevices(devices, pos))

		spec := types.WorkerSpec{
			Name:               strconv.Itoa(gpu),
			GPU:                gpu,
			CUDAVisibleDevices: utils.RotateDevices(devices, pos),
			CPUAffinity:        topology.CPUAffinity(gpu),
			NThreads:           opts.ThreadsPerWorker,
			Protocol:           opts.Protocol,
			Interface:          opts.Interface,
			DashboardAddress:   opts.DashboardAddress,
			SilenceLogs:        opts.SilenceLogs,
			Env:                env,
		}

		if opts.NetDevice != nil {
			spec.UCXNetDevice = opts.NetDevice(gpu)
			if len(spec.UCXNetDevice) > 0 {
				env[ucx.EnvNetDevices] = spec.UCXNetDevice
			}
		}

		workers[spec.Name] = spec
	}

	return workers, nil
}
