// Package topology encodes the hardware adjacency of the NVIDIA DGX-1:
// which CPU cores and which InfiniBand HCA sit nearest to each GPU.
package topology

import "fmt"

// DGX-1 hardware profile: 8 Tesla GPUs split across two CPU sockets, four
// Mellanox HCAs with every two consecutive GPUs sharing one.
const (
	DGX1GPUCount       = 8
	DGX1Sockets        = 2
	DGX1CoresPerSocket = 20
	DGX1ThreadsPerCore = 2
	DGX1IBAdapterCount = 4
)

// DGX1LogicalCPUs .
const DGX1LogicalCPUs = DGX1Sockets * DGX1CoresPerSocket * DGX1ThreadsPerCore

// CPUAffinity returns the logical CPUs on the socket nearest to gpu. GPUs
// 0-3 hang off socket 0 (CPUs 0-19 plus hyperthreads 40-59), GPUs 4-7 off
// socket 1 (20-39 plus 60-79). This matches the ideal affinity NVML reports
// on a DGX-1.
func CPUAffinity(gpu int) []int {
	socket := gpu * DGX1Sockets / DGX1GPUCount
	base := socket * DGX1CoresPerSocket

	cpus := make([]int, 0, DGX1CoresPerSocket*DGX1ThreadsPerCore)
	for t := 0; t < DGX1ThreadsPerCore; t++ {
		start := base + t*DGX1Sockets*DGX1CoresPerSocket
		for c := 0; c < DGX1CoresPerSocket; c++ {
			cpus = append(cpus, start+c)
		}
	}
	return cpus
}

// InfiniBandDevice names the HCA port nearest to gpu. Every two consecutive
// GPU indices share one adapter, so the adapter index is gpu/2. This encodes
// the DGX-1 board wiring, not a general policy.
func InfiniBandDevice(gpu int) string {
	return fmt.Sprintf("mlx5_%d:1", gpu/2)
}
