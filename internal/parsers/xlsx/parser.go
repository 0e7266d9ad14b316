package xlsx

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/wattplan/meter-service/internal/parsers/record"
	"github.com/wattplan/meter-service/internal/types"
)

// Parser reads meter workbooks laid out like the CSV export:
// a preamble, then date, time, consumption columns.
type Parser struct {
	options Options
}

// NewParser creates a new XLSX parser
func NewParser(options Options) *Parser {
	if options.HeaderLines < 0 {
		options.HeaderLines = 0
	}
	return &Parser{options: options}
}

// Parse opens the workbook and builds a readings series.
// Date and time cells may hold text or Excel serial values.
func (p *Parser) Parse(content []byte) (*record.Result, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, record.Fail(fmt.Errorf("open workbook: %w", err))
	}
	defer f.Close()

	sheet, err := p.selectSheet(f)
	if err != nil {
		return nil, record.Fail(err)
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, record.Fail(fmt.Errorf("read worksheet %q: %w", sheet, err))
	}

	collector := record.NewCollector(types.FileTypeXLSX, record.Options{
		Cutoff:          p.options.Cutoff,
		Location:        p.options.Location,
		MaxErrorSamples: p.options.MaxErrorSamples,
	})

	for i := p.options.HeaderLines; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}
		collector.Add(i+1, dateCell(cell(row, 0)), timeCell(cell(row, 1)), cell(row, 2))
	}

	return collector.Finish()
}

func (p *Parser) selectSheet(f *excelize.File) (string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", fmt.Errorf("workbook has no sheets")
	}
	if p.options.Sheet == "" {
		return sheets[0], nil
	}
	for _, name := range sheets {
		if name == p.options.Sheet {
			return name, nil
		}
	}
	return "", fmt.Errorf("sheet %q not found, available: %s", p.options.Sheet, strings.Join(sheets, ", "))
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// dateCell renders a serial date as dd/mm/yyyy; text passes through.
func dateCell(value string) string {
	serial, err := strconv.ParseFloat(value, 64)
	if err != nil || serial < 1 {
		return value
	}
	t, err := excelize.ExcelDateToTime(math.Floor(serial), false)
	if err != nil {
		return value
	}
	return t.Format("02/01/2006")
}

// timeCell renders a day fraction (or the fractional part of a datetime
// serial) as hh:mm; text passes through.
func timeCell(value string) string {
	serial, err := strconv.ParseFloat(value, 64)
	if err != nil || serial < 0 {
		return value
	}
	_, frac := math.Modf(serial)
	minutes := int(math.Round(frac*24*60)) % (24 * 60)
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func isEmptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
