package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"stocksim/internal/service"
)

// CheckpointHandler manages dated markers within a simulation.
type CheckpointHandler struct {
	Checkpoints *service.CheckpointService
}

// Gin allows one wildcard name per path position, so every route binds :id;
// the list route's id is the simulation, the others a checkpoint.
func (h *CheckpointHandler) Register(r *gin.Engine) {
	r.GET("/api/checkpoints/:id", h.list)
	r.POST("/api/checkpoints", h.create)
	r.PUT("/api/checkpoints/:id/update", h.update)
	r.DELETE("/api/checkpoints/:id/delete", h.remove)
}

// @Summary List checkpoints with child rows and counts
// @Tags checkpoints
// @Param id path int true "simulation id"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /api/checkpoints/{id} [get]
func (h *CheckpointHandler) list(c *gin.Context) {
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid simulation id")
		return
	}
	details, err := h.Checkpoints.ListBySimulation(c.Request.Context(), id)
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, gin.H{"checkpoints": details})
}

// @Summary Create a checkpoint with nested hypotheses and conditions
// @Tags checkpoints
// @Accept x-www-form-urlencoded
// @Param simulationId formData int true "simulation id"
// @Param checkpointDate formData string true "YYYY-MM-DD"
// @Param checkpointType formData string false "manual | auto_buy | auto_sell"
// @Param note formData string false "note"
// @Param hypotheses formData string false "JSON array"
// @Param conditions formData string false "JSON array"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/checkpoints [post]
func (h *CheckpointHandler) create(c *gin.Context) {
	simID := uint64Form(c, "simulationId")
	if simID == 0 {
		Error(c, http.StatusBadRequest, "simulationId is required")
		return
	}
	var hypotheses []service.HypothesisInput
	if raw := strings.TrimSpace(c.PostForm("hypotheses")); raw != "" {
		if err := json.Unmarshal([]byte(raw), &hypotheses); err != nil {
			Error(c, http.StatusBadRequest, "hypotheses must be a JSON array")
			return
		}
	}
	var conditions []service.ConditionInput
	if raw := strings.TrimSpace(c.PostForm("conditions")); raw != "" {
		if err := json.Unmarshal([]byte(raw), &conditions); err != nil {
			Error(c, http.StatusBadRequest, "conditions must be a JSON array")
			return
		}
	}
	cp, err := h.Checkpoints.Create(c.Request.Context(), service.CreateCheckpointInput{
		SimulationID: simID,
		Date:         strings.TrimSpace(c.PostForm("checkpointDate")),
		Type:         strings.TrimSpace(c.PostForm("checkpointType")),
		Note:         c.PostForm("note"),
		Hypotheses:   hypotheses,
		Conditions:   conditions,
	})
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, gin.H{"success": true, "checkpointId": cp.ID})
}

type updateCheckpointRequest struct {
	CheckpointDate string  `json:"checkpoint_date"`
	CheckpointType string  `json:"checkpoint_type"`
	Note           *string `json:"note"`
}

// @Summary Update a checkpoint's date, type, or note
// @Tags checkpoints
// @Accept json
// @Param id path int true "checkpoint id"
// @Param request body updateCheckpointRequest true "fields to update"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /api/checkpoints/{id}/update [put]
func (h *CheckpointHandler) update(c *gin.Context) {
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid checkpoint id")
		return
	}
	var req updateCheckpointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	cp, err := h.Checkpoints.Update(c.Request.Context(), id, service.UpdateCheckpointInput{
		Date: req.CheckpointDate,
		Type: req.CheckpointType,
		Note: req.Note,
	})
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, gin.H{"success": true, "checkpoint": cp})
}

// @Summary Delete a non-initial checkpoint and its children
// @Tags checkpoints
// @Param id path int true "checkpoint id"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/checkpoints/{id}/delete [delete]
func (h *CheckpointHandler) remove(c *gin.Context) {
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid checkpoint id")
		return
	}
	if err := h.Checkpoints.Delete(c.Request.Context(), id); err != nil {
		Fail(c, err)
		return
	}
	Ok(c, gin.H{"success": true, "message": "checkpoint deleted"})
}
