package meter

import "sort"

// Partition is the selection of a series for one month, split by day class.
type Partition struct {
	Month   int
	Weekday []Reading
	Weekend []Reading
}

// Month returns the readings whose timestamp falls in month m, across all years.
func (s *Series) Month(m int) []Reading {
	if s == nil {
		return nil
	}
	out := make([]Reading, 0)
	for _, r := range s.readings {
		if r.Month() == m {
			out = append(out, r)
		}
	}
	return out
}

// Months lists the distinct months present, ascending.
func (s *Series) Months() []int {
	if s == nil {
		return nil
	}
	seen := make(map[int]bool, 12)
	for _, r := range s.readings {
		seen[r.Month()] = true
	}
	months := make([]int, 0, len(seen))
	for m := range seen {
		months = append(months, m)
	}
	sort.Ints(months)
	return months
}

// Split divides readings into weekday (Mon..Fri) and weekend (Sat, Sun) subsets,
// preserving order.
func Split(readings []Reading) (weekday, weekend []Reading) {
	weekday = make([]Reading, 0, len(readings))
	weekend = make([]Reading, 0)
	for _, r := range readings {
		if r.IsWeekend() {
			weekend = append(weekend, r)
		} else {
			weekday = append(weekday, r)
		}
	}
	return weekday, weekend
}

// PartitionMonth selects month m and splits it by day class.
func (s *Series) PartitionMonth(m int) Partition {
	wd, we := Split(s.Month(m))
	return Partition{Month: m, Weekday: wd, Weekend: we}
}

// HourlyAverage is the mean consumption for one hour of day.
type HourlyAverage struct {
	Hour    int     `json:"hour"`
	Average float64 `json:"average"`
	Samples int     `json:"samples"`
}

// HourlyAverages returns the mean consumption per hour of day, ascending by hour.
// Hours without readings are omitted.
func HourlyAverages(readings []Reading) []HourlyAverage {
	var sums [24]float64
	var counts [24]int
	for _, r := range readings {
		h := r.Hour()
		sums[h] += r.Consumption
		counts[h]++
	}

	out := make([]HourlyAverage, 0, 24)
	for h := 0; h < 24; h++ {
		if counts[h] == 0 {
			continue
		}
		out = append(out, HourlyAverage{
			Hour:    h,
			Average: sums[h] / float64(counts[h]),
			Samples: counts[h],
		})
	}
	return out
}

// Total sums consumption over readings.
func Total(readings []Reading) float64 {
	total := 0.0
	for _, r := range readings {
		total += r.Consumption
	}
	return total
}
