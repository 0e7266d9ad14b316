package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wattplan/meter-service/internal/analysis"
	"github.com/wattplan/meter-service/internal/export"
)

func (r ReportRequest) query() analysis.Query {
	return analysis.Query{Month: r.Month, Price: r.Price}
}

// GetReport computes plan discounts and hourly averages for one month
// @Summary Get report
// @Description Month defaults to the earliest month with readings; price defaults to the configured price
// @Tags reports
// @Produce json
// @Param id path string true "Session ID"
// @Param month query int false "Month (1-12)" minimum(1) maximum(12)
// @Param price query number false "Price per kWh" minimum(0)
// @Success 200 {object} analysis.Report
// @Failure 400 {object} map[string]string "Invalid query"
// @Router /api/v1/sessions/{id}/report [get]
func (h *Handler) GetReport(c *gin.Context) {
	var req ReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s, ok := h.lookup(c)
	if !ok {
		return
	}

	series, plans := s.Snapshot()
	report, err := h.reports.Report(c.Request.Context(), series, plans, req.query())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// ExportReport renders the report as a downloadable file
// @Summary Export report
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce application/pdf
// @Param id path string true "Session ID"
// @Param format query string true "Output format" Enums(xlsx, pdf)
// @Param month query int false "Month (1-12)" minimum(1) maximum(12)
// @Param price query number false "Price per kWh" minimum(0)
// @Success 200 {file} file
// @Failure 400 {object} map[string]string "Invalid query"
// @Router /api/v1/sessions/{id}/report/export [get]
func (h *Handler) ExportReport(c *gin.Context) {
	var req ExportReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	format, err := export.ParseFormat(req.Format)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s, ok := h.lookup(c)
	if !ok {
		return
	}

	series, plans := s.Snapshot()
	report, err := h.reports.Report(c.Request.Context(), series, plans, req.query())
	if err != nil {
		h.writeError(c, err)
		return
	}
	// Computation is recorded by the report service; this times rendering.
	start := time.Now()
	data, err := export.Render(format, report)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.metrics.RecordReport(string(format), len(plans), time.Since(start))

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, format.Filename(report.Month)))
	c.Data(http.StatusOK, format.ContentType(), data)
}
