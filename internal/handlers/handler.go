package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/wattplan/meter-service/internal/analysis"
	"github.com/wattplan/meter-service/internal/metrics"
	"github.com/wattplan/meter-service/internal/parsers"
	"github.com/wattplan/meter-service/internal/session"
	"github.com/wattplan/meter-service/internal/storage"
	"github.com/wattplan/meter-service/internal/tariff"
	"github.com/wattplan/meter-service/internal/types"
)

// DefaultMaxUploadBytes caps readings uploads when no limit is configured.
const DefaultMaxUploadBytes = 32 << 20

// Deps are the collaborators of the HTTP handlers.
type Deps struct {
	Sessions *session.Registry
	Reports  *analysis.Service
	// Archiver is optional; nil disables upload archiving.
	Archiver       *storage.Archiver
	ParseOptions   parsers.Options
	MaxUploadBytes int64
	Metrics        *metrics.Recorder
	Logger         *zerolog.Logger
}

// Handler serves the meter API.
type Handler struct {
	sessions       *session.Registry
	reports        *analysis.Service
	archiver       *storage.Archiver
	parseOptions   parsers.Options
	maxUploadBytes int64
	metrics        *metrics.Recorder
	logger         zerolog.Logger
}

// New creates a Handler.
func New(deps Deps) *Handler {
	if deps.MaxUploadBytes <= 0 {
		deps.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.NewRecorder()
	}
	logger := zerolog.Nop()
	if deps.Logger != nil {
		logger = *deps.Logger
	}
	return &Handler{
		sessions:       deps.Sessions,
		reports:        deps.Reports,
		archiver:       deps.Archiver,
		parseOptions:   deps.ParseOptions,
		maxUploadBytes: deps.MaxUploadBytes,
		metrics:        deps.Metrics,
		logger:         logger.With().Str("component", "handlers").Logger(),
	}
}

// RegisterRoutes mounts the session API on group.
func (h *Handler) RegisterRoutes(group *gin.RouterGroup) {
	sessions := group.Group("/sessions")
	{
		sessions.POST("", h.CreateSession)
		sessions.DELETE("/:id", h.DeleteSession)

		sessions.POST("/:id/readings", h.ImportReadings)
		sessions.GET("/:id/months", h.ListMonths)

		sessions.GET("/:id/plans", h.ExportPlans)
		sessions.POST("/:id/plans", h.AddPlan)
		sessions.PUT("/:id/plans", h.ImportPlans)

		sessions.GET("/:id/report", h.GetReport)
		sessions.GET("/:id/report/export", h.ExportReport)
	}
}

// lookup resolves the :id session, writing the error response on failure.
func (h *Handler) lookup(c *gin.Context) (*session.Session, bool) {
	s, err := h.sessions.Lookup(c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return nil, false
	}
	return s, true
}

// writeError maps domain errors to status codes.
func (h *Handler) writeError(c *gin.Context, err error) {
	var validationErr *tariff.ValidationError
	var importErr *types.ImportError

	status := http.StatusInternalServerError
	// Import errors may wrap validation errors; they are checked first.
	switch {
	case errors.As(err, &importErr):
		status = http.StatusUnprocessableEntity
	case errors.As(err, &validationErr),
		errors.Is(err, analysis.ErrInvalidQuery),
		errors.Is(err, session.ErrInvalidID):
		status = http.StatusBadRequest
	case errors.Is(err, session.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, session.ErrTooManySessions):
		status = http.StatusServiceUnavailable
	}

	if status == http.StatusInternalServerError {
		h.logger.Error().Err(err).Str("path", c.FullPath()).Msg("Request failed")
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
