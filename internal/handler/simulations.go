package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"stocksim/internal/repository"
	"stocksim/internal/service"
)

// SimulationHandler exposes the simulation lifecycle and its derived views.
type SimulationHandler struct {
	Sims *service.SimulationService
}

func (h *SimulationHandler) Register(r *gin.Engine) {
	r.GET("/api/simulations", h.list)
	r.POST("/api/simulations", h.create)
	r.DELETE("/api/simulations", h.remove)
	r.PUT("/api/simulations/:id/status", h.updateStatus)
	r.GET("/api/simulations/:id/chart", h.chart)
	r.GET("/api/simulations/:id/pnl", h.listPnL)
	r.POST("/api/pnl-records", h.createPnL)
}

// @Summary List simulations
// @Tags simulations
// @Param symbol query string false "filter by symbol"
// @Param status query string false "filter by status"
// @Param limit query int false "limit"
// @Param offset query int false "offset"
// @Success 200 {object} map[string]any
// @Router /api/simulations [get]
func (h *SimulationHandler) list(c *gin.Context) {
	params := repository.ListSimulationsParams{
		Limit:  intQuery(c, "limit", 100),
		Offset: intQuery(c, "offset", 0),
		Asc:    boolPtr(false),
	}
	if v := strings.TrimSpace(c.Query("symbol")); v != "" {
		params.Symbol = &v
	}
	if v := strings.TrimSpace(c.Query("status")); v != "" {
		params.Status = &v
	}
	items, total, err := h.Sims.List(c.Request.Context(), params)
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, gin.H{"simulations": items, "total": total})
}

// @Summary Create a simulation with its initial checkpoint and conditions
// @Tags simulations
// @Accept x-www-form-urlencoded
// @Param symbol formData string true "stock symbol"
// @Param companyName formData string false "company name"
// @Param initialCapital formData string true "initial capital"
// @Param startDate formData string true "YYYY-MM-DD"
// @Param endDate formData string true "YYYY-MM-DD"
// @Param tradingConditions formData string true "JSON array of conditions"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Router /api/simulations [post]
func (h *SimulationHandler) create(c *gin.Context) {
	capital, err := decimal.NewFromString(strings.TrimSpace(c.PostForm("initialCapital")))
	if err != nil {
		Error(c, http.StatusBadRequest, "initialCapital must be a decimal")
		return
	}
	var conditions []service.ConditionInput
	if raw := strings.TrimSpace(c.PostForm("tradingConditions")); raw != "" {
		if err := json.Unmarshal([]byte(raw), &conditions); err != nil {
			Error(c, http.StatusBadRequest, "tradingConditions must be a JSON array")
			return
		}
	}
	sim, err := h.Sims.Create(c.Request.Context(), service.CreateSimulationInput{
		Symbol:         c.PostForm("symbol"),
		CompanyName:    c.PostForm("companyName"),
		InitialCapital: capital,
		StartDate:      strings.TrimSpace(c.PostForm("startDate")),
		EndDate:        strings.TrimSpace(c.PostForm("endDate")),
		Conditions:     conditions,
	})
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, gin.H{"simulationId": sim.ID, "symbol": sim.Symbol, "status": "created"})
}

// @Summary Delete a simulation and all dependent rows
// @Tags simulations
// @Accept x-www-form-urlencoded
// @Param simulationId formData int true "simulation id"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /api/simulations [delete]
func (h *SimulationHandler) remove(c *gin.Context) {
	id := uint64Form(c, "simulationId")
	if id == 0 {
		Error(c, http.StatusBadRequest, "simulationId is required")
		return
	}
	if err := h.Sims.Delete(c.Request.Context(), id); err != nil {
		Fail(c, err)
		return
	}
	Ok(c, gin.H{"success": true, "message": "simulation deleted"})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// @Summary Transition an active simulation's status
// @Tags simulations
// @Accept json
// @Param id path int true "simulation id"
// @Param request body updateStatusRequest true "target status"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/simulations/{id}/status [put]
func (h *SimulationHandler) updateStatus(c *gin.Context) {
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid simulation id")
		return
	}
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := h.Sims.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		Fail(c, err)
		return
	}
	Ok(c, gin.H{"success": true, "status": req.Status})
}

// @Summary Chart series with checkpoints, moving averages, and sell overlays
// @Tags simulations
// @Param id path int true "simulation id"
// @Success 200 {object} service.Chart
// @Failure 404 {object} map[string]string
// @Router /api/simulations/{id}/chart [get]
func (h *SimulationHandler) chart(c *gin.Context) {
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid simulation id")
		return
	}
	chart, err := h.Sims.BuildChart(c.Request.Context(), id)
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, chart)
}

// @Summary List a simulation's PnL records
// @Tags pnl
// @Param id path int true "simulation id"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /api/simulations/{id}/pnl [get]
func (h *SimulationHandler) listPnL(c *gin.Context) {
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid simulation id")
		return
	}
	items, err := h.Sims.ListPnL(c.Request.Context(), id)
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, gin.H{"pnl_records": items})
}

// @Summary Record a checkpoint's PnL against a priced day
// @Tags pnl
// @Accept json
// @Param request body service.CreatePnLInput true "pnl record"
// @Success 201 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /api/pnl-records [post]
func (h *SimulationHandler) createPnL(c *gin.Context) {
	var req service.CreatePnLInput
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	item, err := h.Sims.CreatePnLRecord(c.Request.Context(), req)
	if err != nil {
		Fail(c, err)
		return
	}
	Created(c, item)
}
