package utils

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/samber/lo"

	"github.com/shaunstoltz/dask-cuda/pkg/terrors"
)

// ParseDeviceList converts a comma-separated CUDA device list such as
// "0,1,2" into integer indices.
func ParseDeviceList(s string) ([]int, error) {
	if len(strings.TrimSpace(s)) < 1 {
		return nil, nil
	}

	var parts = strings.Split(s, ",")
	var devices = make([]int, 0, len(parts))

	for _, part := range parts {
		d, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, errors.Wrapf(terrors.ErrInvalidDeviceList, "%q is not an integer", part)
		}
		devices = append(devices, d)
	}

	if err := ValidateDevices(devices); err != nil {
		return nil, err
	}

	return devices, nil
}

// ValidateDevices requires every index to be unique and non-negative.
func ValidateDevices(devices []int) error {
	var seen = mapset.NewThreadUnsafeSet[int]()
	for _, d := range devices {
		if d < 0 {
			return errors.Wrapf(terrors.ErrInvalidDeviceList, "negative device index %d", d)
		}
		if !seen.Add(d) {
			return errors.Wrapf(terrors.ErrInvalidDeviceList, "duplicate device index %d", d)
		}
	}
	return nil
}

// JoinDevices renders indices back to the comma-separated form.
func JoinDevices(devices []int) string {
	return strings.Join(lo.Map(devices, func(d int, _ int) string {
		return strconv.Itoa(d)
	}), ",")
}

// RotateDevices cycles the list so the entry at position pos comes first,
// e.g. RotateDevices([0 1 2], 1) == [1 2 0].
func RotateDevices(devices []int, pos int) []int {
	if len(devices) < 1 {
		return nil
	}

	pos %= len(devices)

	var rotated = make([]int, 0, len(devices))
	rotated = append(rotated, devices[pos:]...)
	return append(rotated, devices[:pos]...)
}
