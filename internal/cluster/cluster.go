// Package cluster is the boundary to the external orchestration framework.
// This repository only produces declarative specs; starting, supervising and
// scheduling worker processes is the framework's job.
package cluster

import (
	"context"

	"github.com/shaunstoltz/dask-cuda/internal/types"
)

// Cluster is the handle the orchestration framework returns for a deployed
// layout.
type Cluster interface {
	// Name of the cluster.
	Name() string
	// SchedulerAddress the workers connect to. Empty until the framework
	// has bound one.
	SchedulerAddress() string
	// WorkerNames in stable order.
	WorkerNames() []string
	// Spec the cluster was deployed with.
	Spec() types.ClusterSpec
	// Close releases the cluster.
	Close(ctx context.Context) error
}

// Orchestrator deploys a cluster spec. Implementations wrap a concrete
// distributed-computing framework.
type Orchestrator interface {
	Deploy(ctx context.Context, spec types.ClusterSpec) (Cluster, error)
}
