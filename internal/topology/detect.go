package topology

import (
	"os"
	"strings"

	"github.com/NVIDIA/go-nvml/pkg/nvml"
	"github.com/cockroachdb/errors"
	"github.com/jaypipes/ghw"
	"github.com/shirou/gopsutil/host"

	"github.com/shaunstoltz/dask-cuda/pkg/log"
)

const procNvidiaGPUs = "/proc/driver/nvidia/gpus"

// GPUInfo .
type GPUInfo struct {
	Index       int    `json:"index"`
	Name        string `json:"name"`
	UUID        string `json:"uuid"`
	MemoryBytes uint64 `json:"memory_bytes"`
}

// HostInfo describes the hardware actually present, for comparison against
// the DGX-1 profile.
type HostInfo struct {
	Hostname      string    `json:"hostname"`
	Kernel        string    `json:"kernel"`
	Sockets       int       `json:"sockets"`
	PhysicalCores uint32    `json:"physical_cores"`
	LogicalCPUs   uint32    `json:"logical_cpus"`
	MemoryBytes   int64     `json:"memory_bytes"`
	GPUs          []GPUInfo `json:"gpus"`
	IBDevices     []string  `json:"ib_devices"`
	NICs          []string  `json:"nics"`
}

// DetectGPUs enumerates CUDA devices through NVML.
func DetectGPUs() ([]GPUInfo, error) {
	ret := nvml.Init()
	if ret != nvml.SUCCESS {
		return nil, errors.Newf("unable to initialize NVML: %s", nvml.ErrorString(ret))
	}
	defer func() {
		if ret := nvml.Shutdown(); ret != nvml.SUCCESS {
			log.Warnf("unable to shutdown NVML: %s", nvml.ErrorString(ret))
		}
	}()

	count, ret := nvml.DeviceGetCount()
	if ret != nvml.SUCCESS {
		return nil, errors.Newf("unable to get device count: %s", nvml.ErrorString(ret))
	}

	gpus := make([]GPUInfo, 0, count)
	for i := 0; i < count; i++ {
		device, ret := nvml.DeviceGetHandleByIndex(i)
		if ret != nvml.SUCCESS {
			return nil, errors.Newf("unable to get device %d: %s", i, nvml.ErrorString(ret))
		}
		name, ret := device.GetName()
		if ret != nvml.SUCCESS {
			return nil, errors.Newf("unable to get name of device %d: %s", i, nvml.ErrorString(ret))
		}
		uuid, ret := device.GetUUID()
		if ret != nvml.SUCCESS {
			return nil, errors.Newf("unable to get uuid of device %d: %s", i, nvml.ErrorString(ret))
		}
		mem, ret := device.GetMemoryInfo()
		if ret != nvml.SUCCESS {
			return nil, errors.Newf("unable to get memory info of device %d: %s", i, nvml.ErrorString(ret))
		}
		gpus = append(gpus, GPUInfo{
			Index:       i,
			Name:        name,
			UUID:        strings.ToLower(uuid),
			MemoryBytes: mem.Total,
		})
	}
	return gpus, nil
}

// GPUCount returns the number of devices NVML reports, falling back to
// counting /proc/driver/nvidia/gpus entries when the library is unavailable.
func GPUCount() (int, error) {
	gpus, err := DetectGPUs()
	if err == nil {
		return len(gpus), nil
	}

	entries, procErr := os.ReadDir(procNvidiaGPUs)
	if procErr != nil {
		return 0, err
	}
	log.Debugf("NVML unavailable, counted %d GPUs under %s", len(entries), procNvidiaGPUs)
	return len(entries), nil
}

// DetectHost gathers CPU, memory, NIC and GPU facts about the local
// machine. GPU and PCI probes are best effort: a failure there is logged
// and leaves the corresponding field empty.
func DetectHost() (*HostInfo, error) {
	info := &HostInfo{}

	if hi, err := host.Info(); err == nil {
		info.Hostname = hi.Hostname
		info.Kernel = hi.KernelVersion
	} else {
		log.Warnf("failed to read host info: %s", err)
	}

	cpu, err := ghw.CPU()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get cpu info")
	}
	info.Sockets = len(cpu.Processors)
	info.PhysicalCores = cpu.TotalCores
	info.LogicalCPUs = cpu.TotalThreads

	mem, err := ghw.Memory()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get memory info")
	}
	info.MemoryBytes = mem.TotalPhysicalBytes

	if net, err := ghw.Network(); err == nil {
		for _, nic := range net.NICs {
			if nic.IsVirtual {
				continue
			}
			info.NICs = append(info.NICs, nic.Name)
		}
	} else {
		log.Warnf("failed to get network info: %s", err)
	}

	if pci, err := ghw.PCI(); err == nil {
		for _, dev := range pci.Devices {
			if dev.Vendor == nil || !strings.Contains(dev.Vendor.Name, "Mellanox") {
				continue
			}
			product := ""
			if dev.Product != nil {
				product = dev.Product.Name
			}
			info.IBDevices = append(info.IBDevices, strings.TrimSpace(dev.Address+" "+product))
		}
	} else {
		log.Warnf("failed to get pci info: %s", err)
	}

	if gpus, err := DetectGPUs(); err == nil {
		info.GPUs = gpus
	} else {
		log.WarnStack(err)
	}

	return info, nil
}

// MatchesDGX1 reports whether the detected hardware lines up with the
// DGX-1 profile this package encodes.
func (h *HostInfo) MatchesDGX1() bool {
	return len(h.GPUs) == DGX1GPUCount &&
		h.Sockets == DGX1Sockets &&
		int(h.LogicalCPUs) == DGX1LogicalCPUs &&
		len(h.IBDevices) >= DGX1IBAdapterCount
}
