package workerspec

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shaunstoltz/dask-cuda/internal/topology"
	"github.com/shaunstoltz/dask-cuda/internal/ucx"
	"github.com/shaunstoltz/dask-cuda/pkg/terrors"
)

func TestBuildOneWorkerPerGPU(t *testing.T) {
	workers, err := Build(Options{VisibleDevices: []int{0, 1, 2, 3}})
	assert.Nil(t, err)
	assert.Len(t, workers, 4)

	for _, name := range []string{"0", "1", "2", "3"} {
		_, ok := workers[name]
		assert.True(t, ok, "missing worker %s", name)
	}
}

func TestBuildRotatesVisibleDevices(t *testing.T) {
	workers, err := Build(Options{VisibleDevices: []int{0, 1, 2, 3}})
	assert.Nil(t, err)

	assert.Equal(t, []int{0, 1, 2, 3}, workers["0"].CUDAVisibleDevices)
	assert.Equal(t, []int{1, 2, 3, 0}, workers["1"].CUDAVisibleDevices)
	assert.Equal(t, []int{3, 0, 1, 2}, workers["3"].CUDAVisibleDevices)

	assert.Equal(t, "1,2,3,0", workers["1"].Env["CUDA_VISIBLE_DEVICES"])
}

func TestBuildSparseDeviceList(t *testing.T) {
	workers, err := Build(Options{VisibleDevices: []int{3, 6}})
	assert.Nil(t, err)
	assert.Len(t, workers, 2)

	assert.Equal(t, []int{3, 6}, workers["3"].CUDAVisibleDevices)
	assert.Equal(t, []int{6, 3}, workers["6"].CUDAVisibleDevices)
	assert.Equal(t, topology.CPUAffinity(3), workers["3"].CPUAffinity)
	assert.Equal(t, topology.CPUAffinity(6), workers["6"].CPUAffinity)
}

func TestBuildDefaults(t *testing.T) {
	workers, err := Build(Options{VisibleDevices: []int{0}})
	assert.Nil(t, err)
	assert.Equal(t, 1, workers["0"].NThreads)
	assert.Equal(t, ":8787", workers["0"].DashboardAddress)
	assert.Empty(t, workers["0"].UCXNetDevice)
}

func TestBuildNoFabricEnvWhenDisabled(t *testing.T) {
	workers, err := Build(Options{VisibleDevices: []int{0, 1}})
	assert.Nil(t, err)

	env := workers["0"].Env
	_, hasTLS := env[ucx.EnvTLS]
	assert.False(t, hasTLS)
	_, hasPriority := env[ucx.EnvTLSPriority]
	assert.False(t, hasPriority)
	assert.Equal(t, "0,1", env["CUDA_VISIBLE_DEVICES"])
}

func TestBuildInfiniBandNetDevices(t *testing.T) {
	workers, err := Build(Options{
		VisibleDevices:   []int{0, 1, 2, 3, 4, 5, 6, 7},
		Protocol:         "ucx",
		EnableInfiniBand: true,
		NetDevice:        topology.InfiniBandDevice,
	})
	assert.Nil(t, err)

	assert.Equal(t, "mlx5_0:1", workers["0"].UCXNetDevice)
	assert.Equal(t, "mlx5_0:1", workers["1"].UCXNetDevice)
	assert.Equal(t, "mlx5_1:1", workers["2"].UCXNetDevice)
	assert.Equal(t, "mlx5_3:1", workers["7"].UCXNetDevice)

	env := workers["2"].Env
	assert.Equal(t, "mlx5_1:1", env[ucx.EnvNetDevices])
	assert.Equal(t, "rc,tcp,sockcm,cuda_copy", env[ucx.EnvTLS])
}

func TestBuildInvalidDevices(t *testing.T) {
	_, err := Build(Options{VisibleDevices: []int{0, 0}})
	assert.True(t, terrors.IsInvalidDeviceListErr(err))

	_, err = Build(Options{VisibleDevices: []int{-1}})
	assert.True(t, terrors.IsInvalidDeviceListErr(err))

	_, err = Build(Options{VisibleDevices: []int{}})
	assert.True(t, terrors.IsNoGPUsErr(err))
}
