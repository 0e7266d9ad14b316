package xlsx

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/wattplan/meter-service/internal/types"
)

func buildWorkbook(t *testing.T, sheet string, rows [][]interface{}) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		require.NoError(t, f.SetSheetName("Sheet1", sheet))
	}
	for i, row := range rows {
		for j, value := range row {
			name, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, name, value))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestParser_Parse(t *testing.T) {
	rows := [][]interface{}{
		{"Meter", "export"},
		{"16/09/2024", "08:00", "0,5"},
		{},
		{time.Date(2024, 9, 21, 0, 0, 0, 0, time.UTC), 10 * time.Hour, 2.0},
		{"17/09/2024", "", 1.0},
		{"17/09/2024", "09:00", "n/a"},
	}
	content := buildWorkbook(t, "Sheet1", rows)

	opts := DefaultOptions()
	opts.HeaderLines = 1
	res, err := NewParser(opts).Parse(content)
	require.NoError(t, err)

	assert.Equal(t, types.FileTypeXLSX, res.Stats.FileType)
	assert.Equal(t, 4, res.Stats.TotalRows)
	assert.Equal(t, 2, res.Stats.ValidRows)
	assert.Equal(t, 2, res.Stats.DroppedRows)

	readings := res.Series.Readings()
	require.Len(t, readings, 2)
	assert.Equal(t, time.Date(2024, 9, 16, 8, 0, 0, 0, time.UTC), readings[0].Timestamp)
	assert.InDelta(t, 0.5, readings[0].Consumption, 1e-9)
	assert.Equal(t, time.Date(2024, 9, 21, 10, 0, 0, 0, time.UTC), readings[1].Timestamp)
	assert.True(t, readings[1].IsWeekend())
}

func TestParser_NamedSheet(t *testing.T) {
	content := buildWorkbook(t, "Readings", [][]interface{}{
		{"16/09/2024", "08:00", 1.25},
	})

	opts := DefaultOptions()
	opts.HeaderLines = 0
	opts.Sheet = "Readings"
	res, err := NewParser(opts).Parse(content)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Series.Len())

	opts.Sheet = "Missing"
	_, err = NewParser(opts).Parse(content)
	var importErr *types.ImportError
	assert.True(t, errors.As(err, &importErr))
}

func TestParser_ImportErrors(t *testing.T) {
	t.Run("not a workbook", func(t *testing.T) {
		_, err := NewParser(DefaultOptions()).Parse([]byte("16/09/2024,08:00,1"))
		var importErr *types.ImportError
		require.True(t, errors.As(err, &importErr))
		assert.Equal(t, "readings", importErr.Source)
	})

	t.Run("only preamble", func(t *testing.T) {
		content := buildWorkbook(t, "Sheet1", [][]interface{}{{"header"}})
		_, err := NewParser(DefaultOptions()).Parse(content)
		var importErr *types.ImportError
		assert.True(t, errors.As(err, &importErr))
	})
}

func TestCellConversion(t *testing.T) {
	assert.Equal(t, "16/09/2024", dateCell("45551"))
	assert.Equal(t, "16/09/2024", dateCell("16/09/2024"))
	assert.Equal(t, "08:00", timeCell("0.3333333333"))
	assert.Equal(t, "23:30", timeCell("45551.9791666667"))
	assert.Equal(t, "08:00", timeCell("08:00"))
}
