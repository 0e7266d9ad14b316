package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wattplan/meter-service/internal/tariff"
)

// ExportPlans returns the plan list in its import format
// @Summary Export plans
// @Tags plans
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {array} tariff.DiscountPlan
// @Router /api/v1/sessions/{id}/plans [get]
func (h *Handler) ExportPlans(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}
	data, err := s.ExportPlans()
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

// AddPlan appends one discount plan
// @Summary Add plan
// @Tags plans
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param plan body tariff.DiscountPlan true "Discount plan"
// @Success 201 {object} AddPlanResponse
// @Failure 400 {object} map[string]string "Invalid plan"
// @Router /api/v1/sessions/{id}/plans [post]
func (h *Handler) AddPlan(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.writeError(c, fmt.Errorf("read body: %w", err))
		return
	}
	plan, err := tariff.DecodePlan(body)
	if err != nil {
		h.writeError(c, err)
		return
	}
	n, err := s.AddPlan(plan)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, AddPlanResponse{
		Index:       n - 1,
		Plans:       n,
		Description: fmt.Sprintf("Plan %d: %s", n, plan),
	})
}

// ImportPlans replaces the plan list
// @Summary Import plans
// @Description Replaces all plans. The store is unchanged if any entry is invalid.
// @Tags plans
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param plans body []tariff.DiscountPlan true "Plan list"
// @Success 200 {object} ImportPlansResponse
// @Failure 422 {object} map[string]string "Plan list could not be imported"
// @Router /api/v1/sessions/{id}/plans [put]
func (h *Handler) ImportPlans(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.writeError(c, fmt.Errorf("read body: %w", err))
		return
	}
	err = s.ImportPlans(body)
	h.metrics.RecordImport("plans", err == nil)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ImportPlansResponse{Plans: len(s.Plans())})
}
