// Package app turns configuration into the collaborators shared by the
// server and the CLI.
package app

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/wattplan/meter-service/config"
	"github.com/wattplan/meter-service/internal/meter"
	"github.com/wattplan/meter-service/internal/parsers"
	"github.com/wattplan/meter-service/internal/parsers/charset"
	"github.com/wattplan/meter-service/internal/parsers/csv"
)

// ParseOptions builds upload parse options from the readings config. The
// cutoff is not included; see BundledOptions.
func ParseOptions(rc config.ReadingsConfig) (parsers.Options, error) {
	loc, err := rc.Location()
	if err != nil {
		return parsers.Options{}, err
	}
	delim, ok := csv.ParseDelimiter(rc.Delimiter)
	if !ok {
		return parsers.Options{}, fmt.Errorf("readings.delimiter: unknown delimiter %q", rc.Delimiter)
	}
	enc, err := charset.ParseEncoding(rc.Encoding)
	if err != nil {
		return parsers.Options{}, fmt.Errorf("readings.encoding: %w", err)
	}
	return parsers.Options{
		HeaderLines: rc.HeaderLines,
		Delimiter:   delim,
		Encoding:    enc,
		Location:    loc,
	}, nil
}

// BundledOptions is ParseOptions plus the configured cutoff.
func BundledOptions(rc config.ReadingsConfig) (parsers.Options, error) {
	opts, err := ParseOptions(rc)
	if err != nil {
		return opts, err
	}
	opts.Cutoff, err = rc.CutoffTime(opts.Location)
	return opts, err
}

// LoadBundled parses the dataset at readings.bundled_path. An empty path
// yields an empty series.
func LoadBundled(rc config.ReadingsConfig, logger *zerolog.Logger) (*meter.Series, error) {
	if rc.BundledPath == "" {
		return meter.NewSeries(nil), nil
	}
	opts, err := BundledOptions(rc)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(rc.BundledPath)
	if err != nil {
		return nil, fmt.Errorf("open bundled readings: %w", err)
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read bundled readings: %w", err)
	}

	res, err := parsers.ParseReadings(rc.BundledPath, content, opts)
	if err != nil {
		return nil, err
	}
	logger.Info().
		Str("path", rc.BundledPath).
		Int("valid", res.Stats.ValidRows).
		Int("dropped", res.Stats.DroppedRows).
		Int("filtered", res.Stats.FilteredRows).
		Msg("Bundled readings loaded")
	return res.Series, nil
}
