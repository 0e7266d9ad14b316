package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string `json:"status"`
	Sessions int    `json:"sessions"`
	Baseline int    `json:"baselineReadings"`
}

// HealthCheck handles the health check endpoint
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:   "ok",
		Sessions: h.sessions.Len(),
		Baseline: h.sessions.Baseline().Len(),
	})
}
