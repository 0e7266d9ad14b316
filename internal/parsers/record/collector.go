// Package record turns raw (date, time, consumption) fields into meter
// readings. The CSV and XLSX parsers feed it row by row.
package record

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/wattplan/meter-service/internal/meter"
	"github.com/wattplan/meter-service/internal/types"
)

// TimestampLayout is day/month/year hour:minute as written by meter portals.
const TimestampLayout = "2/1/2006 15:04"

// DefaultMaxErrorSamples bounds how many dropped rows are described in a result.
const DefaultMaxErrorSamples = 20

const importSource = "readings"

// Options control how rows are accepted.
type Options struct {
	// Cutoff drops readings strictly before it. Zero disables the filter.
	Cutoff time.Time
	// Location is used to interpret timestamps. Nil means UTC.
	Location *time.Location
	// MaxErrorSamples caps Result.Stats.Errors. Zero means DefaultMaxErrorSamples.
	MaxErrorSamples int
}

// Result is a parsed readings file.
type Result struct {
	Stats  *types.ParseResult
	Series *meter.Series
}

// Collector accumulates readings and row statistics.
type Collector struct {
	opts     Options
	stats    *types.ParseResult
	readings []meter.Reading
}

// NewCollector creates a collector for a file of the given type.
func NewCollector(fileType types.FileType, opts Options) *Collector {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.MaxErrorSamples <= 0 {
		opts.MaxErrorSamples = DefaultMaxErrorSamples
	}
	return &Collector{
		opts: opts,
		stats: &types.ParseResult{
			FileType: fileType,
			Errors:   make([]types.ParseError, 0),
			Warnings: make([]types.ParseWarning, 0),
		},
		readings: make([]meter.Reading, 0),
	}
}

// Add processes one data row. rowNumber is the 1-based position in the file.
// Failing rows are counted as dropped and never stored.
func (c *Collector) Add(rowNumber int, date, clock, consumption string) {
	c.stats.TotalRows++

	ts, err := ParseTimestamp(date, clock, c.opts.Location)
	if err != nil {
		c.drop(rowNumber, "timestamp", err, date+" "+clock)
		return
	}

	value, err := ParseConsumption(consumption)
	if err != nil {
		c.drop(rowNumber, "consumption", err, consumption)
		return
	}

	if !c.opts.Cutoff.IsZero() && ts.Before(c.opts.Cutoff) {
		c.stats.FilteredRows++
		return
	}

	c.readings = append(c.readings, meter.Reading{Timestamp: ts, Consumption: value})
	c.stats.ValidRows++
}

// Reject counts a row the caller found malformed before field parsing.
func (c *Collector) Reject(rowNumber int, field string, err error, original string) {
	c.stats.TotalRows++
	c.drop(rowNumber, field, err, original)
}

func (c *Collector) drop(rowNumber int, field string, err error, original string) {
	c.stats.DroppedRows++
	if len(c.stats.Errors) >= c.opts.MaxErrorSamples {
		return
	}
	c.stats.Errors = append(c.stats.Errors, types.ParseError{
		RowNumber:     types.IntPtr(rowNumber),
		Field:         types.StringPtr(field),
		Message:       err.Error(),
		OriginalValue: types.StringPtr(original),
	})
}

// Finish builds the series. A file without any data row or without a
// single valid reading is an *types.ImportError.
func (c *Collector) Finish() (*Result, error) {
	if c.stats.TotalRows == 0 {
		return nil, Fail(errors.New("no data after header"))
	}
	if c.stats.ValidRows == 0 && c.stats.FilteredRows == 0 {
		return nil, Fail(fmt.Errorf("no valid readings in %d rows", c.stats.TotalRows))
	}

	if hidden := c.stats.DroppedRows - len(c.stats.Errors); hidden > 0 {
		c.stats.Warnings = append(c.stats.Warnings, types.ParseWarning{
			Message: fmt.Sprintf("%d more dropped rows not listed", hidden),
		})
	}

	series := meter.NewSeries(c.readings)
	if series.Len() > 0 {
		first, last := series.Span()
		c.stats.FirstReading = types.TimePtr(first)
		c.stats.LastReading = types.TimePtr(last)
	}

	if c.stats.DroppedRows > 0 {
		log.Debug().
			Str("file_type", string(c.stats.FileType)).
			Int("total", c.stats.TotalRows).
			Int("dropped", c.stats.DroppedRows).
			Msg("Dropped unparseable reading rows")
	}

	return &Result{Stats: c.stats, Series: series}, nil
}

// Fail wraps a whole-file failure as a readings *types.ImportError.
func Fail(err error) error {
	return &types.ImportError{Source: importSource, Err: err}
}
