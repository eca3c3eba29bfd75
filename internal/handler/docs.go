package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func RegisterDocs(r *gin.Engine) {
	r.GET("/docs", func(c *gin.Context) {
		c.Header("Content-Type", "text/markdown; charset=utf-8")
		c.String(http.StatusOK, `# Stock Simulation Tracker

Paper-trading journal: register a symbol, open a simulation with buy/sell
conditions and hypotheses, and review daily checkpoints against cached OHLCV
data.

## Routes

- GET /healthz
- GET /readyz
- GET /swagger/index.html
- GET /api/stock-info?symbol=AAPL
- POST /api/stock-data
- POST /api/stock-prices
- GET /api/simulations
- POST /api/simulations
- DELETE /api/simulations
- PUT /api/simulations/:id/status
- GET /api/simulations/:id/chart
- GET /api/simulations/:id/pnl
- POST /api/pnl-records
- GET /api/checkpoints/:id (id = simulation id)
- POST /api/checkpoints
- PUT /api/checkpoints/:id/update
- DELETE /api/checkpoints/:id/delete
- GET/POST /api/conditions, PUT/DELETE /api/conditions/:id
- GET/POST /api/hypotheses, PUT/DELETE /api/hypotheses/:id
- GET/POST /api/journals
- GET/POST /api/reviews

## Notes

Dates are YYYY-MM-DD. Price cache is filled on first request per symbol;
set price_cache.refresh_policy to "interval" to re-reconcile stale symbols
on a schedule.
`)
	})
}
