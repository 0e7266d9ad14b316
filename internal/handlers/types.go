package handlers

import (
	"time"

	"github.com/wattplan/meter-service/internal/types"
)

// CreateSessionResponse is returned by POST /sessions
type CreateSessionResponse struct {
	ID        string    `json:"id" jsonschema:"required"`
	CreatedAt time.Time `json:"createdAt" jsonschema:"required"`
	Readings  int       `json:"readings"`
}

// ImportReadingsResponse summarizes an accepted readings upload
type ImportReadingsResponse struct {
	SessionID  string             `json:"sessionId" jsonschema:"required"`
	Filename   string             `json:"filename"`
	Stats      *types.ParseResult `json:"stats" jsonschema:"required"`
	Months     []int              `json:"months"`
	ArchiveKey string             `json:"archiveKey,omitempty"`
}

// MonthsResponse lists the months present in a session's readings
type MonthsResponse struct {
	Months       []int      `json:"months" jsonschema:"required"`
	Readings     int        `json:"readings"`
	FirstReading *time.Time `json:"firstReading,omitempty"`
	LastReading  *time.Time `json:"lastReading,omitempty"`
}

// ImportPlansResponse is returned after a plan list replaced the store
type ImportPlansResponse struct {
	Plans int `json:"plans"`
}

// AddPlanResponse is returned after a plan was appended
type AddPlanResponse struct {
	Index       int    `json:"index"`
	Plans       int    `json:"plans"`
	Description string `json:"description"`
}

// ReportRequest selects the month and unit price of a report
type ReportRequest struct {
	Month int      `form:"month" json:"month,omitempty" binding:"omitempty,min=1,max=12" jsonschema:"minimum=1,maximum=12"`
	Price *float64 `form:"price" json:"price,omitempty" binding:"omitempty,min=0" jsonschema:"minimum=0"`
}

// ExportReportRequest adds the output format to ReportRequest
type ExportReportRequest struct {
	ReportRequest
	Format string `form:"format" json:"format" binding:"required" jsonschema:"enum=xlsx,enum=pdf"`
}
