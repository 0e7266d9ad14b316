package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wattplan/meter-service/internal/parsers"
	"github.com/wattplan/meter-service/internal/parsers/record"
	"github.com/wattplan/meter-service/internal/storage"
	"github.com/wattplan/meter-service/internal/types"
)

// ImportReadings replaces the session series with an uploaded file
// @Summary Import readings
// @Description Parses a CSV or XLSX meter export and replaces the session readings
// @Tags readings
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Session ID"
// @Param file formData file true "Meter export (csv or xlsx)"
// @Success 200 {object} ImportReadingsResponse
// @Failure 400 {object} map[string]string "Missing file"
// @Failure 422 {object} map[string]string "File could not be imported"
// @Router /api/v1/sessions/{id}/readings [post]
func (h *Handler) ImportReadings(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": fmt.Sprintf("upload exceeds %d bytes", h.maxUploadBytes)})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart field 'file' is required"})
		return
	}

	f, err := header.Open()
	if err != nil {
		h.writeError(c, fmt.Errorf("open upload: %w", err))
		return
	}
	content, err := io.ReadAll(f)
	f.Close()
	if err != nil {
		h.writeError(c, fmt.Errorf("read upload: %w", err))
		return
	}

	result, err := parsers.ParseReadings(header.Filename, content, h.parseOptions)
	h.metrics.RecordImport("readings", err == nil)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.metrics.RecordReadingsImport(string(result.Stats.FileType), result.Stats.ValidRows, result.Stats.DroppedRows)

	s.ReplaceSeries(result.Series)

	resp := ImportReadingsResponse{
		SessionID: s.ID,
		Filename:  header.Filename,
		Stats:     result.Stats,
		Months:    result.Series.Months(),
	}
	resp.ArchiveKey = h.archive(c, s.ID, header.Filename, content, result)

	h.logger.Info().
		Str("session_id", s.ID).
		Str("file_type", string(result.Stats.FileType)).
		Int("valid", result.Stats.ValidRows).
		Int("dropped", result.Stats.DroppedRows).
		Msg("Readings imported")

	c.JSON(http.StatusOK, resp)
}

// archive stores the upload when archiving is enabled. Failures are logged
// and do not fail the import.
func (h *Handler) archive(c *gin.Context, sessionID, filename string, content []byte, result *record.Result) string {
	if h.archiver == nil {
		return ""
	}
	key, err := h.archiver.Archive(c.Request.Context(), filename, content, storage.Metadata{
		ContentType: contentTypeFor(result.Stats.FileType),
		SessionID:   sessionID,
		FileType:    string(result.Stats.FileType),
		UploadedAt:  time.Now(),
		ValidRows:   result.Stats.ValidRows,
	})
	if err != nil {
		h.logger.Warn().Err(err).Str("session_id", sessionID).Msg("Failed to archive upload")
		return ""
	}
	return key
}

func contentTypeFor(ft types.FileType) string {
	if ft == types.FileTypeXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv"
}

// ListMonths lists months present in the session readings
// @Summary List months
// @Tags readings
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} MonthsResponse
// @Router /api/v1/sessions/{id}/months [get]
func (h *Handler) ListMonths(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}

	series := s.Series()
	resp := MonthsResponse{
		Months:   series.Months(),
		Readings: series.Len(),
	}
	if series.Len() > 0 {
		first, last := series.Span()
		resp.FirstReading = types.TimePtr(first)
		resp.LastReading = types.TimePtr(last)
	}
	c.JSON(http.StatusOK, resp)
}
