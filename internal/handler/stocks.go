package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"stocksim/internal/service"
)

// StockHandler exposes the quote summary and the price-cache endpoints.
type StockHandler struct {
	Prices *service.PriceService
}

func (h *StockHandler) Register(r *gin.Engine) {
	r.GET("/api/stock-info", h.stockInfo)
	r.POST("/api/stock-data", h.reconcile)
	r.POST("/api/stock-prices", h.storePrices)
}

// @Summary Quote summary with validated chart series
// @Tags stocks
// @Param symbol query string true "stock symbol"
// @Success 200 {object} service.StockInfo
// @Failure 400 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/stock-info [get]
func (h *StockHandler) stockInfo(c *gin.Context) {
	symbol := strings.TrimSpace(c.Query("symbol"))
	info, err := h.Prices.GetStockInfo(c.Request.Context(), symbol)
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, info)
}

type reconcileRequest struct {
	Symbol string `json:"symbol"`
}

// @Summary Reconcile the price cache for a symbol
// @Tags stocks
// @Accept json
// @Param request body reconcileRequest true "symbol"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/stock-data [post]
func (h *StockHandler) reconcile(c *gin.Context) {
	var req reconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	res, err := h.Prices.EnsurePrices(c.Request.Context(), req.Symbol)
	if err != nil {
		Fail(c, err)
		return
	}
	if res.Cached {
		Ok(c, gin.H{"success": true, "symbol": res.Symbol, "cached": true})
		return
	}
	Ok(c, gin.H{
		"success":        true,
		"symbol":         res.Symbol,
		"insertedCount":  res.InsertedCount,
		"totalProcessed": res.TotalProcessed,
	})
}

type storePricesRequest struct {
	Symbol string               `json:"symbol"`
	Prices []service.PriceInput `json:"prices"`
}

// @Summary Upsert caller-supplied daily bars
// @Tags stocks
// @Accept json
// @Param request body storePricesRequest true "symbol and bars"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Router /api/stock-prices [post]
func (h *StockHandler) storePrices(c *gin.Context) {
	var req storePricesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	res, err := h.Prices.StorePrices(c.Request.Context(), req.Symbol, req.Prices)
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, gin.H{
		"success":        true,
		"symbol":         res.Symbol,
		"insertedCount":  res.InsertedCount,
		"totalProcessed": res.TotalProcessed,
	})
}
