package handler

import (
	"testing"

	"github.com/gin-gonic/gin"

	"stocksim/internal/service"
)

// Registering every handler on one engine catches wildcard conflicts, which
// gin reports by panicking at registration time.
func TestRegisterRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()

	(&HealthHandler{}).Register(engine)
	RegisterDocs(engine)
	(&StockHandler{Prices: &service.PriceService{}}).Register(engine)
	(&SimulationHandler{Sims: &service.SimulationService{}}).Register(engine)
	(&CheckpointHandler{Checkpoints: &service.CheckpointService{}}).Register(engine)
	(&ConditionHandler{Conditions: &service.ConditionService{}}).Register(engine)
	(&HypothesisHandler{Hypotheses: &service.HypothesisService{}}).Register(engine)
	(&JournalHandler{Journals: &service.JournalService{}}).Register(engine)

	want := map[string]bool{
		"GET /healthz":                       false,
		"GET /api/checkpoints/:id":           false,
		"POST /api/checkpoints":              false,
		"PUT /api/checkpoints/:id/update":    false,
		"DELETE /api/checkpoints/:id/delete": false,
		"GET /api/simulations/:id/chart":     false,
		"PUT /api/simulations/:id/status":    false,
		"POST /api/conditions":               false,
		"PUT /api/hypotheses/:id":            false,
		"GET /api/journals":                  false,
	}
	for _, route := range engine.Routes() {
		key := route.Method + " " + route.Path
		if _, ok := want[key]; ok {
			want[key] = true
		}
	}
	for key, seen := range want {
		if !seen {
			t.Fatalf("route not registered: %s", key)
		}
	}
}
