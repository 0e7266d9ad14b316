package tariff

import "github.com/wattplan/meter-service/internal/meter"

// InWindow reports whether hour h falls in the half-open window [start, end).
// A window with start > end wraps past midnight and covers [start,24) and [0,end).
// A window with start == end is empty.
func InWindow(h, start, end int) bool {
	if start <= end {
		return start <= h && h < end
	}
	return h >= start || h < end
}

// WindowHours lists the hours covered by the window, ascending.
func WindowHours(start, end int) []int {
	hours := make([]int, 0, 24)
	for h := 0; h < 24; h++ {
		if InWindow(h, start, end) {
			hours = append(hours, h)
		}
	}
	return hours
}

// WindowSum sums the consumption of readings whose hour is inside the window.
func WindowSum(readings []meter.Reading, start, end int) float64 {
	sum := 0.0
	for _, r := range readings {
		if InWindow(r.Hour(), start, end) {
			sum += r.Consumption
		}
	}
	return sum
}
