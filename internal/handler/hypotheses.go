package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stocksim/internal/service"
)

// HypothesisHandler manages qualitative factors and their risk scores.
type HypothesisHandler struct {
	Hypotheses *service.HypothesisService
}

func (h *HypothesisHandler) Register(r *gin.Engine) {
	r.GET("/api/hypotheses", h.list)
	r.POST("/api/hypotheses", h.create)
	r.PUT("/api/hypotheses/:id", h.update)
	r.DELETE("/api/hypotheses/:id", h.remove)
}

// @Summary List a checkpoint's hypotheses with risk scores
// @Tags hypotheses
// @Param checkpointId query int true "checkpoint id"
// @Success 200 {object} service.HypothesisList
// @Failure 404 {object} map[string]string
// @Router /api/hypotheses [get]
func (h *HypothesisHandler) list(c *gin.Context) {
	cpID := uint64Query(c, "checkpointId")
	if cpID == 0 {
		Error(c, http.StatusBadRequest, "checkpointId is required")
		return
	}
	list, err := h.Hypotheses.List(c.Request.Context(), cpID)
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, list)
}

type createHypothesisRequest struct {
	CheckpointID uint64 `json:"checkpoint_id"`
	service.HypothesisInput
}

// @Summary Create a hypothesis on a checkpoint
// @Tags hypotheses
// @Accept json
// @Param request body createHypothesisRequest true "hypothesis"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/hypotheses [post]
func (h *HypothesisHandler) create(c *gin.Context) {
	var req createHypothesisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	item, err := h.Hypotheses.Create(c.Request.Context(), req.CheckpointID, req.HypothesisInput)
	if err != nil {
		Fail(c, err)
		return
	}
	Created(c, item)
}

type updateHypothesisRequest struct {
	Description     *string `json:"description"`
	FactorType      *string `json:"factor_type"`
	PriceImpact     *int    `json:"price_impact"`
	ConfidenceLevel *int    `json:"confidence_level"`
	IsActive        *bool   `json:"is_active"`
}

// @Summary Update one hypothesis
// @Tags hypotheses
// @Accept json
// @Param id path int true "hypothesis id"
// @Param request body updateHypothesisRequest true "fields to update"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /api/hypotheses/{id} [put]
func (h *HypothesisHandler) update(c *gin.Context) {
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid hypothesis id")
		return
	}
	var req updateHypothesisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	item, err := h.Hypotheses.Update(c.Request.Context(), id, service.UpdateHypothesisInput{
		Description:     req.Description,
		FactorType:      req.FactorType,
		PriceImpact:     req.PriceImpact,
		ConfidenceLevel: req.ConfidenceLevel,
		IsActive:        req.IsActive,
	})
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, gin.H{"success": true, "hypothesis": item})
}

// @Summary Delete one hypothesis
// @Tags hypotheses
// @Param id path int true "hypothesis id"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /api/hypotheses/{id} [delete]
func (h *HypothesisHandler) remove(c *gin.Context) {
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid hypothesis id")
		return
	}
	if err := h.Hypotheses.Delete(c.Request.Context(), id); err != nil {
		Fail(c, err)
		return
	}
	Ok(c, gin.H{"success": true, "message": "hypothesis deleted"})
}
