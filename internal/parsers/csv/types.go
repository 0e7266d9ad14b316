package csv

import (
	"time"

	"github.com/wattplan/meter-service/internal/parsers/charset"
)

// Delimiter represents supported CSV delimiters
type Delimiter string

const (
	DelimiterAuto      Delimiter = ""
	DelimiterComma     Delimiter = ","
	DelimiterSemicolon Delimiter = ";"
	DelimiterTab       Delimiter = "\t"
)

// DefaultHeaderLines is the length of the preamble written by meter portals
// before the first reading.
const DefaultHeaderLines = 11

// Options represents CSV parser options
type Options struct {
	HeaderLines int
	Delimiter   Delimiter
	Encoding    charset.Encoding
	QuoteChar   rune

	Cutoff          time.Time
	Location        *time.Location
	MaxErrorSamples int
}

// DefaultOptions returns default CSV parser options
func DefaultOptions() Options {
	return Options{
		HeaderLines: DefaultHeaderLines,
		QuoteChar:   '"',
	}
}

// ParseDelimiter maps a config value ("comma", ";", "tab", ...) to a Delimiter.
func ParseDelimiter(name string) (Delimiter, bool) {
	switch name {
	case "", "auto":
		return DelimiterAuto, true
	case ",", "comma":
		return DelimiterComma, true
	case ";", "semicolon":
		return DelimiterSemicolon, true
	case "\t", "tab":
		return DelimiterTab, true
	}
	return DelimiterAuto, false
}
