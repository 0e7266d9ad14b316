package record

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wattplan/meter-service/internal/types"
)

func TestParseConsumption(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
		wantErr  bool
	}{
		{"dot decimal", "0.532", 0.532, false},
		{"comma decimal", "0,532", 0.532, false},
		{"european thousands", "1.234,5", 1234.5, false},
		{"us thousands", "1,234.5", 1234.5, false},
		{"integer", "3", 3, false},
		{"zero", "0", 0, false},
		{"unit suffix", "1.5 kWh", 1.5, false},
		{"surrounding space", "  2.25 ", 2.25, false},
		{"empty", "", 0, true},
		{"whitespace", "   ", 0, true},
		{"text", "n/a", 0, true},
		{"negative", "-0.5", 0, true},
		{"nan", "NaN", 0, true},
		{"infinity", "Inf", 0, true},
		{"only unit", "kWh", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseConsumption(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		clock    string
		expected time.Time
		wantErr  bool
	}{
		{"day first", "16/09/2024", "08:00", time.Date(2024, 9, 16, 8, 0, 0, 0, time.UTC), false},
		{"single digit parts", "1/2/2024", "7:30", time.Date(2024, 2, 1, 7, 30, 0, 0, time.UTC), false},
		{"midnight", "21/09/2024", "00:00", time.Date(2024, 9, 21, 0, 0, 0, 0, time.UTC), false},
		{"empty date", "", "08:00", time.Time{}, true},
		{"blank time", "16/09/2024", "  ", time.Time{}, true},
		{"month first rejected", "09/16/2024", "08:00", time.Time{}, true},
		{"iso rejected", "2024-09-16", "08:00", time.Time{}, true},
		{"bad time", "16/09/2024", "8h", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.date, tt.clock, nil)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(got), "got %s", got)
		})
	}
}

func TestCollector(t *testing.T) {
	t.Run("drops bad rows and keeps order", func(t *testing.T) {
		c := NewCollector(types.FileTypeCSV, Options{})
		c.Add(12, "17/09/2024", "09:00", "0.75")
		c.Add(13, "16/09/2024", "08:00", "0.5")
		c.Add(14, "", "10:00", "1.0")
		c.Add(15, "16/09/2024", "11:00", "abc")

		res, err := c.Finish()
		require.NoError(t, err)

		assert.Equal(t, 4, res.Stats.TotalRows)
		assert.Equal(t, 2, res.Stats.ValidRows)
		assert.Equal(t, 2, res.Stats.DroppedRows)
		require.Len(t, res.Stats.Errors, 2)
		assert.Equal(t, 14, *res.Stats.Errors[0].RowNumber)
		assert.Equal(t, "timestamp", *res.Stats.Errors[0].Field)
		assert.Equal(t, "consumption", *res.Stats.Errors[1].Field)

		readings := res.Series.Readings()
		require.Len(t, readings, 2)
		assert.Equal(t, 16, readings[0].Timestamp.Day())
		assert.Equal(t, 17, readings[1].Timestamp.Day())
		require.NotNil(t, res.Stats.FirstReading)
		assert.Equal(t, 16, res.Stats.FirstReading.Day())
	})

	t.Run("cutoff filters without dropping", func(t *testing.T) {
		cutoff := time.Date(2024, 9, 15, 0, 0, 0, 0, time.UTC)
		c := NewCollector(types.FileTypeCSV, Options{Cutoff: cutoff})
		c.Add(1, "14/09/2024", "23:00", "1")
		c.Add(2, "15/09/2024", "00:00", "2")

		res, err := c.Finish()
		require.NoError(t, err)
		assert.Equal(t, 1, res.Stats.FilteredRows)
		assert.Equal(t, 0, res.Stats.DroppedRows)
		assert.Equal(t, 1, res.Series.Len())
	})

	t.Run("error samples are capped", func(t *testing.T) {
		c := NewCollector(types.FileTypeCSV, Options{MaxErrorSamples: 2})
		c.Add(1, "16/09/2024", "08:00", "1")
		for i := 2; i < 7; i++ {
			c.Add(i, "bad", "08:00", "1")
		}

		res, err := c.Finish()
		require.NoError(t, err)
		assert.Equal(t, 5, res.Stats.DroppedRows)
		assert.Len(t, res.Stats.Errors, 2)
		require.Len(t, res.Stats.Warnings, 1)
		assert.Contains(t, res.Stats.Warnings[0].Message, "3 more")
	})

	t.Run("no rows is an import error", func(t *testing.T) {
		_, err := NewCollector(types.FileTypeCSV, Options{}).Finish()
		var importErr *types.ImportError
		require.True(t, errors.As(err, &importErr))
		assert.Equal(t, "readings", importErr.Source)
	})

	t.Run("no valid rows is an import error", func(t *testing.T) {
		c := NewCollector(types.FileTypeXLSX, Options{})
		c.Add(1, "x", "y", "z")
		_, err := c.Finish()
		var importErr *types.ImportError
		assert.True(t, errors.As(err, &importErr))
	})
}
