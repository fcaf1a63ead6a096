package terrors

import "github.com/cockroachdb/errors"

var (
	// ErrFabricRequiresUCX .
	ErrFabricRequiresUCX = errors.New(`enabling InfiniBand or NVLink requires protocol "ucx"`)

	// ErrInvalidDeviceList .
	ErrInvalidDeviceList = errors.New("invalid CUDA device list")
	// ErrNoGPUs .
	ErrNoGPUs = errors.New("no CUDA devices found")

	// ErrInvalidValue indicates the value is invalid.
	ErrInvalidValue = errors.New("invalid value")
)
