package csv

import (
	"errors"
	"fmt"
	"strings"

	"github.com/wattplan/meter-service/internal/parsers/charset"
	"github.com/wattplan/meter-service/internal/parsers/record"
	"github.com/wattplan/meter-service/internal/types"
)

// Parser reads meter exports: a fixed preamble followed by
// date, time, consumption records.
type Parser struct {
	options Options
}

// NewParser creates a new CSV parser with the given options
func NewParser(options Options) *Parser {
	if options.QuoteChar == 0 {
		options.QuoteChar = '"'
	}
	if options.HeaderLines < 0 {
		options.HeaderLines = 0
	}
	return &Parser{options: options}
}

// Parse decodes content and builds a readings series.
// Whole-file failures are returned as *types.ImportError; bad rows are
// counted in the result and skipped.
func (p *Parser) Parse(content []byte) (*record.Result, error) {
	decoded, err := charset.Decode(content, p.options.Encoding)
	if err != nil {
		return nil, record.Fail(fmt.Errorf("decode content: %w", err))
	}

	lines := splitLines(decoded)
	if len(lines) <= p.options.HeaderLines {
		return nil, record.Fail(fmt.Errorf("no data after %d header lines", p.options.HeaderLines))
	}
	data := lines[p.options.HeaderLines:]

	delimiter := p.options.Delimiter
	if delimiter == DelimiterAuto {
		delimiter = DetectDelimiter(data)
	}
	delimRune := []rune(string(delimiter))[0]

	collector := record.NewCollector(types.FileTypeCSV, record.Options{
		Cutoff:          p.options.Cutoff,
		Location:        p.options.Location,
		MaxErrorSamples: p.options.MaxErrorSamples,
	})

	for i, line := range data {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := SplitLine(line, delimRune, p.options.QuoteChar)
		rowNumber := p.options.HeaderLines + i + 1
		if hasExtraFields(fields) {
			collector.Reject(rowNumber, "consumption", errUnexpectedFields, line)
			continue
		}
		collector.Add(rowNumber, field(fields, 0), field(fields, 1), field(fields, 2))
	}

	return collector.Finish()
}

// errUnexpectedFields marks rows such as "16/09/2024,08:00,0,532" where an
// unquoted decimal comma split the consumption value.
var errUnexpectedFields = errors.New("unexpected extra fields")

// hasExtraFields reports whether any field past the third is non-empty.
func hasExtraFields(fields []string) bool {
	for _, f := range fields[min(len(fields), 3):] {
		if strings.TrimSpace(f) != "" {
			return true
		}
	}
	return false
}

func field(fields []string, i int) string {
	if i >= len(fields) {
		return ""
	}
	return strings.TrimSpace(fields[i])
}

// splitLines splits content into lines handling different line endings
func splitLines(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	return strings.Split(content, "\n")
}
