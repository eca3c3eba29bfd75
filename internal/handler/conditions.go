package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stocksim/internal/service"
)

// ConditionHandler manages buy/sell thresholds with replace semantics on
// create.
type ConditionHandler struct {
	Conditions *service.ConditionService
}

func (h *ConditionHandler) Register(r *gin.Engine) {
	r.GET("/api/conditions", h.list)
	r.POST("/api/conditions", h.replace)
	r.PUT("/api/conditions/:id", h.update)
	r.DELETE("/api/conditions/:id", h.remove)
}

// @Summary List a simulation's conditions
// @Tags conditions
// @Param simulationId query int true "simulation id"
// @Param checkpointId query int false "narrow to one checkpoint"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /api/conditions [get]
func (h *ConditionHandler) list(c *gin.Context) {
	simID := uint64Query(c, "simulationId")
	var cpID *uint64
	if v := uint64Query(c, "checkpointId"); v > 0 {
		cpID = &v
	}
	if simID == 0 && cpID == nil {
		Error(c, http.StatusBadRequest, "simulationId or checkpointId is required")
		return
	}
	items, err := h.Conditions.List(c.Request.Context(), simID, cpID)
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, gin.H{"conditions": items})
}

type replaceConditionsRequest struct {
	SimulationID uint64                   `json:"simulation_id"`
	CheckpointID *uint64                  `json:"checkpoint_id"`
	Conditions   []service.ConditionInput `json:"conditions"`
}

// @Summary Replace the active condition set of a checkpoint
// @Tags conditions
// @Accept json
// @Param request body replaceConditionsRequest true "replacement set"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/conditions [post]
func (h *ConditionHandler) replace(c *gin.Context) {
	var req replaceConditionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	items, err := h.Conditions.Replace(c.Request.Context(), service.ReplaceConditionsInput{
		SimulationID: req.SimulationID,
		CheckpointID: req.CheckpointID,
		Conditions:   req.Conditions,
	})
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, gin.H{"success": true, "conditions": items})
}

type updateConditionRequest struct {
	Type     *string `json:"type"`
	Metric   *string `json:"metric"`
	Value    *string `json:"value"`
	IsActive *bool   `json:"is_active"`
}

// @Summary Update one condition
// @Tags conditions
// @Accept json
// @Param id path int true "condition id"
// @Param request body updateConditionRequest true "fields to update"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /api/conditions/{id} [put]
func (h *ConditionHandler) update(c *gin.Context) {
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid condition id")
		return
	}
	var req updateConditionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	item, err := h.Conditions.Update(c.Request.Context(), id, service.UpdateConditionInput{
		Type:     req.Type,
		Metric:   req.Metric,
		Value:    req.Value,
		IsActive: req.IsActive,
	})
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, gin.H{"success": true, "condition": item})
}

// @Summary Delete one condition
// @Tags conditions
// @Param id path int true "condition id"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /api/conditions/{id} [delete]
func (h *ConditionHandler) remove(c *gin.Context) {
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid condition id")
		return
	}
	if err := h.Conditions.Delete(c.Request.Context(), id); err != nil {
		Fail(c, err)
		return
	}
	Ok(c, gin.H{"success": true, "message": "condition deleted"})
}
