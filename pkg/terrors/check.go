package terrors

import "github.com/cockroachdb/errors"

// IsFabricRequiresUCXErr .
func IsFabricRequiresUCXErr(err error) bool {
	return errors.Is(err, ErrFabricRequiresUCX)
}

// IsInvalidDeviceListErr .
func IsInvalidDeviceListErr(err error) bool {
	return errors.Is(err, ErrInvalidDeviceList)
}

// IsNoGPUsErr .
func IsNoGPUsErr(err error) bool {
	return errors.Is(err, ErrNoGPUs)
}
