package xlsx

import "time"

// DefaultHeaderLines matches the CSV preamble length.
const DefaultHeaderLines = 11

// Options represents XLSX parser options
type Options struct {
	// Sheet selects the worksheet by name. Empty means the first sheet.
	Sheet       string
	HeaderLines int

	Cutoff          time.Time
	Location        *time.Location
	MaxErrorSamples int
}

// DefaultOptions returns default XLSX parser options
func DefaultOptions() Options {
	return Options{HeaderLines: DefaultHeaderLines}
}
