package meter

import (
	"sort"
	"time"
)

// Reading is one timestamped consumption measurement in kWh.
type Reading struct {
	Timestamp   time.Time `json:"timestamp"`
	Consumption float64   `json:"consumption"`
}

// Hour returns the hour of day in [0,23].
func (r Reading) Hour() int {
	return r.Timestamp.Hour()
}

// Weekday returns the day of week with Monday as 0 and Sunday as 6.
func (r Reading) Weekday() int {
	return (int(r.Timestamp.Weekday()) + 6) % 7
}

// Month returns the calendar month in [1,12].
func (r Reading) Month() int {
	return int(r.Timestamp.Month())
}

// IsWeekend reports whether the reading falls on Saturday or Sunday.
func (r Reading) IsWeekend() bool {
	return r.Weekday() >= 5
}

// Series is an ordered-by-time collection of readings for one meter.
// A Series is never mutated after construction; imports build a new one.
type Series struct {
	readings []Reading
}

// NewSeries builds a series from readings, ordering them by timestamp.
// The input slice is copied.
func NewSeries(readings []Reading) *Series {
	rs := make([]Reading, len(readings))
	copy(rs, readings)
	sort.SliceStable(rs, func(i, j int) bool {
		return rs[i].Timestamp.Before(rs[j].Timestamp)
	})
	return &Series{readings: rs}
}

// Len returns the number of readings.
func (s *Series) Len() int {
	if s == nil {
		return 0
	}
	return len(s.readings)
}

// Readings returns a copy of the readings in time order.
func (s *Series) Readings() []Reading {
	if s == nil {
		return nil
	}
	out := make([]Reading, len(s.readings))
	copy(out, s.readings)
	return out
}

// Since returns a new series holding only readings at or after cutoff.
func (s *Series) Since(cutoff time.Time) *Series {
	if s == nil {
		return NewSeries(nil)
	}
	idx := sort.Search(len(s.readings), func(i int) bool {
		return !s.readings[i].Timestamp.Before(cutoff)
	})
	return &Series{readings: append([]Reading(nil), s.readings[idx:]...)}
}

// Span returns the first and last timestamps. Both are zero for an empty series.
func (s *Series) Span() (time.Time, time.Time) {
	if s.Len() == 0 {
		return time.Time{}, time.Time{}
	}
	return s.readings[0].Timestamp, s.readings[len(s.readings)-1].Timestamp
}
