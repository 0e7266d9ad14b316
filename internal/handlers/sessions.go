package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CreateSession starts a session with a fresh id
// @Summary Create session
// @Description Creates a session seeded with the bundled readings, if any
// @Tags sessions
// @Produce json
// @Success 201 {object} CreateSessionResponse
// @Failure 503 {object} map[string]string "Session limit reached"
// @Router /api/v1/sessions [post]
func (h *Handler) CreateSession(c *gin.Context) {
	s, err := h.sessions.Create()
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, CreateSessionResponse{
		ID:        s.ID,
		CreatedAt: s.CreatedAt,
		Readings:  s.Series().Len(),
	})
}

// DeleteSession drops a session and its state
// @Summary Delete session
// @Tags sessions
// @Param id path string true "Session ID"
// @Success 204
// @Failure 404 {object} map[string]string "Unknown session"
// @Router /api/v1/sessions/{id} [delete]
func (h *Handler) DeleteSession(c *gin.Context) {
	if err := h.sessions.Delete(c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
