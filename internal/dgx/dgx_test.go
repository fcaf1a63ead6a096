package dgx

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shaunstoltz/dask-cuda/internal/cluster"
	"github.com/shaunstoltz/dask-cuda/internal/ucx"
	"github.com/shaunstoltz/dask-cuda/pkg/terrors"
)

var allGPUs = []int{0, 1, 2, 3, 4, 5, 6, 7}

func TestNewRejectsFabricWithoutUCX(t *testing.T) {
	orch := cluster.NewDryRunOrchestrator()

	for _, opts := range [][]Option{
		{WithVisibleDevices(allGPUs), WithInfiniBand(true)},
		{WithVisibleDevices(allGPUs), WithNVLink(true)},
		{WithVisibleDevices(allGPUs), WithInfiniBand(true), WithNVLink(true)},
		{WithVisibleDevices(allGPUs), WithProtocol("tcp"), WithInfiniBand(true)},
	} {
		handle, err := New(context.Background(), orch, opts...)
		assert.Nil(t, handle)
		assert.True(t, terrors.IsFabricRequiresUCXErr(err))
	}

	// Validation failed before anything reached the orchestrator.
	assert.Empty(t, orch.Deployed)
}

func TestNewDeploysOnce(t *testing.T) {
	orch := cluster.NewDryRunOrchestrator()

	handle, err := New(context.Background(), orch, WithVisibleDevices(allGPUs))
	assert.Nil(t, err)
	assert.Len(t, orch.Deployed, 1)
	assert.Len(t, handle.WorkerNames(), 8)
	assert.Nil(t, handle.Close(context.Background()))
}

func TestBuildSpecSchedulerPassThrough(t *testing.T) {
	spec, err := BuildSpec(
		WithVisibleDevices(allGPUs),
		WithInterface("enp1s0f0"),
		WithProtocol("ucx"),
		WithDashboardAddress(":8786"),
	)
	assert.Nil(t, err)
	assert.Equal(t, "enp1s0f0", spec.Scheduler.Interface)
	assert.Equal(t, "ucx", spec.Scheduler.Protocol)
	assert.Equal(t, ":8786", spec.Scheduler.DashboardAddress)
}

func TestBuildSpecNoFabricEnvByDefault(t *testing.T) {
	spec, err := BuildSpec(WithVisibleDevices(allGPUs))
	assert.Nil(t, err)
	assert.Empty(t, spec.Scheduler.Env)
	for _, worker := range spec.Workers {
		_, ok := worker.Env[ucx.EnvTLS]
		assert.False(t, ok)
		assert.Empty(t, worker.UCXNetDevice)
	}
}

func TestBuildSpecFabricImpliesTCPOverUCX(t *testing.T) {
	for _, opt := range []Option{WithInfiniBand(true), WithNVLink(true)} {
		spec, err := BuildSpec(WithVisibleDevices(allGPUs), WithProtocol("ucx"), opt)
		assert.Nil(t, err)
		assert.Contains(t, spec.Scheduler.Env[ucx.EnvTLS], "tcp")
		assert.Equal(t, "sockcm", spec.Scheduler.Env[ucx.EnvTLSPriority])
	}
}

func TestBuildSpecInfiniBandAdapterPairing(t *testing.T) {
	spec, err := BuildSpec(WithVisibleDevices(allGPUs), WithProtocol("ucx"), WithInfiniBand(true))
	assert.Nil(t, err)

	for gpu := 0; gpu < 8; gpu++ {
		worker := spec.Workers[fmt.Sprintf("%d", gpu)]
		assert.Equal(t, fmt.Sprintf("mlx5_%d:1", gpu/2), worker.UCXNetDevice)
	}
}

func TestBuildSpecNVLinkHasNoNetDevice(t *testing.T) {
	spec, err := BuildSpec(WithVisibleDevices(allGPUs), WithProtocol("ucx"), WithNVLink(true))
	assert.Nil(t, err)
	for _, worker := range spec.Workers {
		assert.Empty(t, worker.UCXNetDevice)
		assert.Contains(t, worker.Env[ucx.EnvTLS], "cuda_ipc")
	}
}

func TestBuildSpecGeneratedName(t *testing.T) {
	spec, err := BuildSpec(WithVisibleDevices(allGPUs))
	assert.Nil(t, err)
	assert.Contains(t, spec.Name, "dgx-")

	spec, err = BuildSpec(WithVisibleDevices(allGPUs), WithName("bench"))
	assert.Nil(t, err)
	assert.Equal(t, "bench", spec.Name)
}

func TestBuildSpecWorkerOptions(t *testing.T) {
	spec, err := BuildSpec(
		WithVisibleDevices([]int{1, 5}),
		WithThreadsPerWorker(4),
		WithSilenceLogs(false),
		WithInterface("ib0"),
	)
	assert.Nil(t, err)
	assert.Len(t, spec.Workers, 2)

	worker := spec.Workers["5"]
	assert.Equal(t, 5, worker.GPU)
	assert.Equal(t, 4, worker.NThreads)
	assert.False(t, worker.SilenceLogs)
	assert.Equal(t, "ib0", worker.Interface)
	assert.Equal(t, []int{5, 1}, worker.CUDAVisibleDevices)
}
