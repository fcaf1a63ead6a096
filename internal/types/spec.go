package types

import (
	"fmt"

	"github.com/shaunstoltz/dask-cuda/pkg/utils"
)

// WorkerSpec declares the resource bindings of one worker process. The
// external orchestration framework owns the actual process lifecycle; this
// is purely declarative.
type WorkerSpec struct {
	Name               string            `json:"name"`
	GPU                int               `json:"gpu"`
	CUDAVisibleDevices []int             `json:"cuda_visible_devices"`
	CPUAffinity        []int             `json:"cpu_affinity"`
	UCXNetDevice       string            `json:"ucx_net_device,omitempty"`
	NThreads           int               `json:"nthreads"`
	Protocol           string            `json:"protocol,omitempty"`
	Interface          string            `json:"interface,omitempty"`
	DashboardAddress   string            `json:"dashboard_address"`
	SilenceLogs        bool              `json:"silence_logs"`
	Env                map[string]string `json:"env"`
}

func (w WorkerSpec) String() string {
	return fmt.Sprintf("worker %s: gpu %d, visible %s, cpus %d, netdev %q",
		w.Name, w.GPU, utils.JoinDevices(w.CUDAVisibleDevices), len(w.CPUAffinity), w.UCXNetDevice)
}

// SchedulerSpec carries the caller-supplied scheduler parameters through to
// the orchestration framework unmodified.
type SchedulerSpec struct {
	Interface        string            `json:"interface,omitempty"`
	Protocol         string            `json:"protocol,omitempty"`
	DashboardAddress string            `json:"dashboard_address"`
	Env              map[string]string `json:"env"`
}

// ClusterSpec is the complete layout handed to the orchestrator: one worker
// per visible GPU plus the scheduler descriptor.
type ClusterSpec struct {
	Name        string                `json:"name"`
	Workers     map[string]WorkerSpec `json:"workers"`
	Scheduler   SchedulerSpec         `json:"scheduler"`
	SilenceLogs bool                  `json:"silence_logs"`
}
