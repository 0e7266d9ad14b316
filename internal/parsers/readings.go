// Package parsers selects the readings parser for an uploaded file.
package parsers

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/wattplan/meter-service/internal/parsers/charset"
	"github.com/wattplan/meter-service/internal/parsers/csv"
	"github.com/wattplan/meter-service/internal/parsers/record"
	"github.com/wattplan/meter-service/internal/parsers/xlsx"
	"github.com/wattplan/meter-service/internal/types"
)

var zipMagic = []byte("PK\x03\x04")

// Options are shared by every readings format.
type Options struct {
	HeaderLines int
	Delimiter   csv.Delimiter
	Encoding    charset.Encoding
	Sheet       string
	Cutoff      time.Time
	Location    *time.Location
}

// DefaultOptions returns the options used for portal exports.
func DefaultOptions() Options {
	return Options{HeaderLines: csv.DefaultHeaderLines}
}

// DetectFileType decides between CSV and XLSX from the file name and,
// failing that, the content signature.
func DetectFileType(filename string, content []byte) types.FileType {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return types.FileTypeXLSX
	case ".csv", ".txt":
		return types.FileTypeCSV
	}
	if bytes.HasPrefix(content, zipMagic) {
		return types.FileTypeXLSX
	}
	return types.FileTypeCSV
}

// ParseReadings parses content with the parser matching its type.
func ParseReadings(filename string, content []byte, opts Options) (*record.Result, error) {
	switch ft := DetectFileType(filename, content); ft {
	case types.FileTypeXLSX:
		return xlsx.NewParser(xlsx.Options{
			Sheet:       opts.Sheet,
			HeaderLines: opts.HeaderLines,
			Cutoff:      opts.Cutoff,
			Location:    opts.Location,
		}).Parse(content)
	case types.FileTypeCSV:
		return csv.NewParser(csv.Options{
			HeaderLines: opts.HeaderLines,
			Delimiter:   opts.Delimiter,
			Encoding:    opts.Encoding,
			Cutoff:      opts.Cutoff,
			Location:    opts.Location,
		}).Parse(content)
	default:
		return nil, record.Fail(fmt.Errorf("unsupported file type %q", ft))
	}
}
