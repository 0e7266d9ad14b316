package types

import (
	"fmt"
	"time"
)

// FileType represents supported readings file types
type FileType string

const (
	FileTypeCSV  FileType = "csv"
	FileTypeXLSX FileType = "xlsx"
)

// ParseError describes one dropped row. Row-level errors are never fatal.
type ParseError struct {
	RowNumber     *int    `json:"rowNumber,omitempty"`
	Field         *string `json:"field,omitempty"`
	Message       string  `json:"message"`
	OriginalValue *string `json:"originalValue,omitempty"`
}

// ParseWarning represents a parsing warning
type ParseWarning struct {
	RowNumber *int   `json:"rowNumber,omitempty"`
	Message   string `json:"message"`
}

// ParseResult summarizes a readings import.
// Errors holds only the first few samples; DroppedRows is the full count.
type ParseResult struct {
	FileType     FileType       `json:"fileType"`
	TotalRows    int            `json:"totalRows"`
	ValidRows    int            `json:"validRows"`
	DroppedRows  int            `json:"droppedRows"`
	FilteredRows int            `json:"filteredRows"`
	Errors       []ParseError   `json:"errors,omitempty"`
	Warnings     []ParseWarning `json:"warnings,omitempty"`
	FirstReading *time.Time     `json:"firstReading,omitempty"`
	LastReading  *time.Time     `json:"lastReading,omitempty"`
}

// ImportError is returned when an external representation (a plan list or a
// readings file) cannot be imported as a whole. Existing state is left untouched.
type ImportError struct {
	Source string // "plans" or "readings"
	Err    error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("%s import failed: %v", e.Source, e.Err)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

// StringPtr returns a pointer to the given string
func StringPtr(s string) *string {
	return &s
}

// IntPtr returns a pointer to the given int
func IntPtr(i int) *int {
	return &i
}

// TimePtr returns a pointer to the given time
func TimePtr(t time.Time) *time.Time {
	return &t
}
