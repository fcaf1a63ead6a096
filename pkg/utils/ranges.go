package utils

import (
	"fmt"
	"sort"
	"strings"
)

// FormatRanges renders integer sets compactly, e.g. [0 1 2 40 41] becomes
// "0-2,40-41". The input is not modified.
func FormatRanges(values []int) string {
	if len(values) < 1 {
		return ""
	}

	sorted := make([]int, len(values))
	copy(sorted, values)
	sort.Ints(sorted)

	var parts []string
	start, prev := sorted[0], sorted[0]
	flush := func() {
		if start == prev {
			parts = append(parts, fmt.Sprintf("%d", start))
		} else {
			parts = append(parts, fmt.Sprintf("%d-%d", start, prev))
		}
	}

	for _, v := range sorted[1:] {
		if v == prev || v == prev+1 {
			prev = v
			continue
		}
		flush()
		start, prev = v, v
	}
	flush()

	return strings.Join(parts, ",")
}
