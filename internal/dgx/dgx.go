// Package dgx translates a handful of transport flags into the complete
// cluster layout for one DGX-1 machine: one worker per GPU, each pinned to
// the CPU cores and HCA nearest that GPU, plus the UCX environment and the
// scheduler descriptor the orchestration framework expects.
package dgx

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/shaunstoltz/dask-cuda/internal/cluster"
	"github.com/shaunstoltz/dask-cuda/internal/topology"
	"github.com/shaunstoltz/dask-cuda/internal/types"
	"github.com/shaunstoltz/dask-cuda/internal/ucx"
	"github.com/shaunstoltz/dask-cuda/internal/workerspec"
	"github.com/shaunstoltz/dask-cuda/pkg/log"
	"github.com/shaunstoltz/dask-cuda/pkg/terrors"
)

// ProtocolUCX is the only protocol the fabric transports work over.
const ProtocolUCX = "ucx"

// BuildSpec validates the flags and produces the cluster layout without
// deploying it. One-shot and synchronous: no retries, no partial results.
func BuildSpec(opts ...Option) (types.ClusterSpec, error) {
	o := newOptions()
	for _, opt := range opts {
		opt(o)
	}

	if (o.enableInfiniBand || o.enableNVLink) && o.protocol != ProtocolUCX {
		return types.ClusterSpec{}, errors.Wrapf(terrors.ErrFabricRequiresUCX,
			"protocol %q", o.protocol)
	}

	var netDevice func(gpu int) string
	if o.enableInfiniBand {
		netDevice = topology.InfiniBandDevice
	}

	workers, err := workerspec.Build(workerspec.Options{
		Interface:        o.iface,
		Protocol:         o.protocol,
		DashboardAddress: o.dashboardAddress,
		ThreadsPerWorker: o.threadsPerWorker,
		SilenceLogs:      o.silenceLogs,
		VisibleDevices:   o.visibleDevices,
		EnableTCPOverUCX: o.enableTCPOverUCX,
		EnableInfiniBand: o.enableInfiniBand,
		EnableNVLink:     o.enableNVLink,
		NetDevice:        netDevice,
	})
	if err != nil {
		return types.ClusterSpec{}, err
	}

	name := o.name
	if len(name) < 1 {
		name = fmt.Sprintf("dgx-%s", uuid.NewString()[:8])
	}

	return types.ClusterSpec{
		Name:    name,
		Workers: workers,
		Scheduler: types.SchedulerSpec{
			Interface:        o.iface,
			Protocol:         o.protocol,
			DashboardAddress: o.dashboardAddress,
			Env: ucx.Env(ucx.Options{
				EnableTCP:        o.enableTCPOverUCX,
				EnableInfiniBand: o.enableInfiniBand,
				EnableNVLink:     o.enableNVLink,
			}),
		},
		SilenceLogs: o.silenceLogs,
	}, nil
}

// New builds the DGX-1 layout and hands it to the orchestrator, returning
// the framework's cluster handle. No processes are started here.
func New(ctx context.Context, orch cluster.Orchestrator, opts ...Option) (cluster.Cluster, error) {
	spec, err := BuildSpec(opts...)
	if err != nil {
		return nil, err
	}

	log.Infof("deploying cluster %s: %d workers, protocol %q",
		spec.Name, len(spec.Workers), spec.Scheduler.Protocol)

	return orch.Deploy(ctx, spec)
}
