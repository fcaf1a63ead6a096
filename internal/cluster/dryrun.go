package cluster

import (
	"context"
	"sort"

	"github.com/shaunstoltz/dask-cuda/internal/types"
	"github.com/shaunstoltz/dask-cuda/pkg/log"
)

// DryRunOrchestrator records the spec without talking to any framework.
// Useful for rendering layouts and for tests.
type DryRunOrchestrator struct {
	// Deployed holds every spec passed to Deploy, in order.
	Deployed []types.ClusterSpec
}

// NewDryRunOrchestrator .
func NewDryRunOrchestrator() *DryRunOrchestrator {
	return &DryRunOrchestrator{}
}

// Deploy .
func (o *DryRunOrchestrator) Deploy(_ context.Context, spec types.ClusterSpec) (Cluster, error) {
	o.Deployed = append(o.Deployed, spec)
	log.Debugf("dry-run deploy of cluster %s with %d workers", spec.Name, len(spec.Workers))
	return &dryRunCluster{spec: spec}, nil
}

type dryRunCluster struct {
	spec types.ClusterSpec
}

func (c *dryRunCluster) Name() string {
	return c.spec.Name
}

func (c *dryRunCluster) SchedulerAddress() string {
	// Nothing was bound.
	return ""
}

func (c *dryRunCluster) WorkerNames() []string {
	names := make([]string, 0, len(c.spec.Workers))
	for name := range c.spec.Workers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *dryRunCluster) Spec() types.ClusterSpec {
	return c.spec
}

func (c *dryRunCluster) Close(context.Context) error {
	return nil
}
