package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"stocksim/internal/client/yahoo"
	"stocksim/internal/config"
	"stocksim/internal/models"
	"stocksim/internal/quote"
	"stocksim/internal/repository"
	"stocksim/internal/series"
)

// ChartFetcher is the slice of the quote client the price service needs.
type ChartFetcher interface {
	GetChart(ctx context.Context, symbol, lookback string) (*yahoo.ChartResult, []byte, error)
}

// PriceService reconciles the local daily-bar cache against the quote source.
// Bars are fetched at most once per symbol unless the refresh policy says
// otherwise.
type PriceService struct {
	Repo    repository.Repository
	Quotes  ChartFetcher
	Logger  *zap.Logger
	Quote   config.QuoteConfig
	Cache   config.PriceCacheConfig
	GapFill series.GapFill
}

// EnsureResult reports what a reconcile did.
type EnsureResult struct {
	Symbol         string              `json:"symbol"`
	Cached         bool                `json:"cached"`
	InsertedCount  int                 `json:"insertedCount"`
	TotalProcessed int                 `json:"totalProcessed"`
	Prices         []models.StockPrice `json:"prices"`
}

// EnsurePrices returns the cached bars for a symbol, fetching and persisting
// them first when the cache is empty. The whole batch lands in one
// transaction, so a failed fetch or normalize leaves nothing behind.
func (s *PriceService) EnsurePrices(ctx context.Context, symbol string) (*EnsureResult, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, fmt.Errorf("%w: symbol is required", ErrValidation)
	}

	count, err := s.Repo.CountStockPrices(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		prices, err := s.Repo.ListStockPricesBySymbol(ctx, symbol)
		if err != nil {
			return nil, err
		}
		return &EnsureResult{Symbol: symbol, Cached: true, Prices: prices}, nil
	}
	return s.refreshSymbol(ctx, symbol)
}

func (s *PriceService) refreshSymbol(ctx context.Context, symbol string) (*EnsureResult, error) {
	result, raw, err := s.Quotes.GetChart(ctx, symbol, s.Quote.Lookback)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	now := time.Now().UTC()

	// Archive the raw payload before normalization so rejected batches stay
	// reproducible.
	if err := s.Repo.InsertRawQuoteSnapshot(ctx, &models.RawQuoteSnapshot{
		Symbol:    symbol,
		Payload:   datatypes.JSON(raw),
		FetchedAt: now,
	}); err != nil && s.Logger != nil {
		s.Logger.Warn("raw quote snapshot not archived", zap.String("symbol", symbol), zap.Error(err))
	}

	bars, err := quote.Normalize(result, now)
	if err != nil {
		return nil, err
	}

	stock := stockFromMeta(symbol, result.Meta)
	rows := barsToRows(symbol, bars, now)
	total := len(result.Timestamp)

	err = s.Repo.InTx(ctx, func(tx *gorm.DB) error {
		if err := s.Repo.UpsertStockTx(ctx, tx, stock); err != nil {
			return err
		}
		return s.Repo.UpsertStockPricesTx(ctx, tx, rows)
	})
	if err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.Info("price cache reconciled",
			zap.String("symbol", symbol),
			zap.Int("inserted", len(rows)),
			zap.Int("fetched", total))
	}
	return &EnsureResult{
		Symbol:         symbol,
		InsertedCount:  len(rows),
		TotalProcessed: total,
		Prices:         rows,
	}, nil
}

// PriceInput is one caller-supplied bar for the manual upsert endpoint.
type PriceInput struct {
	Date   string          `json:"date"`
	Open   decimal.Decimal `json:"open"`
	Close  decimal.Decimal `json:"close"`
	High   decimal.Decimal `json:"high"`
	Low    decimal.Decimal `json:"low"`
	Volume int64           `json:"volume"`
}

// StorePrices validates and upserts caller-supplied bars. Rows failing
// validation are dropped; the batch itself is all-or-nothing.
func (s *PriceService) StorePrices(ctx context.Context, symbol string, inputs []PriceInput) (*EnsureResult, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, fmt.Errorf("%w: symbol is required", ErrValidation)
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: prices array is empty", ErrValidation)
	}

	now := time.Now().UTC()
	rows := make([]models.StockPrice, 0, len(inputs))
	for _, in := range inputs {
		if _, err := time.Parse("2006-01-02", in.Date); err != nil {
			continue
		}
		if !in.Open.IsPositive() || !in.Close.IsPositive() || !in.High.IsPositive() || !in.Low.IsPositive() {
			continue
		}
		if in.High.LessThan(decimal.Max(in.Open, in.Close)) || in.Low.GreaterThan(decimal.Min(in.Open, in.Close)) {
			continue
		}
		rows = append(rows, models.StockPrice{
			Symbol:      symbol,
			PriceDate:   in.Date,
			Open:        in.Open,
			Close:       in.Close,
			High:        in.High,
			Low:         in.Low,
			Volume:      in.Volume,
			LastUpdated: now,
		})
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no valid price rows", ErrValidation)
	}

	err := s.Repo.InTx(ctx, func(tx *gorm.DB) error {
		if err := s.Repo.UpsertStockTx(ctx, tx, &models.Stock{
			Symbol:   symbol,
			Name:     symbol,
			Sector:   "unknown",
			Industry: "unknown",
		}); err != nil {
			return err
		}
		return s.Repo.UpsertStockPricesTx(ctx, tx, rows)
	})
	if err != nil {
		return nil, err
	}
	return &EnsureResult{
		Symbol:         symbol,
		InsertedCount:  len(rows),
		TotalProcessed: len(inputs),
		Prices:         rows,
	}, nil
}

// StockInfo is the no-persistence quote summary endpoint payload.
type StockInfo struct {
	Symbol       string         `json:"symbol"`
	Name         string         `json:"name"`
	Sector       string         `json:"sector"`
	Industry     string         `json:"industry"`
	Currency     string         `json:"currency"`
	ExchangeName string         `json:"exchange_name"`
	MarketState  string         `json:"market_state"`
	Price        *float64       `json:"price"`
	PrevClose    *float64       `json:"prev_close"`
	Series       []series.Point `json:"series"`
}

// GetStockInfo fetches, validates, and decorates a symbol's chart without
// touching the cache.
func (s *PriceService) GetStockInfo(ctx context.Context, symbol string) (*StockInfo, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, fmt.Errorf("%w: symbol is required", ErrValidation)
	}
	result, _, err := s.Quotes.GetChart(ctx, symbol, s.Quote.Lookback)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	bars, err := quote.Normalize(result, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	points := series.Align(bars, nil)
	series.AttachMovingAverages(points, s.GapFill)

	meta := result.Meta
	return &StockInfo{
		Symbol:       symbol,
		Name:         meta.CompanyName(symbol),
		Sector:       orUnknown(meta.Sector),
		Industry:     orUnknown(meta.Industry),
		Currency:     meta.Currency,
		ExchangeName: meta.ExchangeName,
		MarketState:  meta.MarketState,
		Price:        meta.RegularMarketPrice,
		PrevClose:    meta.ChartPreviousClose,
		Series:       points,
	}, nil
}

// RefreshStale re-reconciles every symbol whose newest bar is older than the
// configured staleness window. It is a no-op unless the interval refresh
// policy is enabled.
func (s *PriceService) RefreshStale(ctx context.Context) error {
	if s.Cache.RefreshPolicy != "interval" {
		return nil
	}
	staleAfter := s.Cache.StaleAfter
	if staleAfter <= 0 {
		staleAfter = 24 * time.Hour
	}
	symbols, err := s.Repo.ListStaleSymbols(ctx, time.Now().UTC().Add(-staleAfter))
	if err != nil {
		return err
	}
	for _, symbol := range symbols {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if _, err := s.refreshSymbol(ctx, symbol); err != nil && s.Logger != nil {
			s.Logger.Warn("stale symbol refresh failed", zap.String("symbol", symbol), zap.Error(err))
		}
	}
	return nil
}

func stockFromMeta(symbol string, meta yahoo.Meta) *models.Stock {
	return &models.Stock{
		Symbol:   symbol,
		Name:     meta.CompanyName(symbol),
		Sector:   orUnknown(meta.Sector),
		Industry: orUnknown(meta.Industry),
	}
}

func orUnknown(v string) string {
	if strings.TrimSpace(v) == "" {
		return "unknown"
	}
	return v
}

func barsToRows(symbol string, bars []quote.Bar, now time.Time) []models.StockPrice {
	rows := make([]models.StockPrice, len(bars))
	for i, b := range bars {
		rows[i] = models.StockPrice{
			Symbol:      symbol,
			PriceDate:   b.Date,
			Open:        decimal.NewFromFloat(b.Open),
			Close:       decimal.NewFromFloat(b.Close),
			High:        decimal.NewFromFloat(b.High),
			Low:         decimal.NewFromFloat(b.Low),
			Volume:      b.Volume,
			LastUpdated: now,
		}
	}
	return rows
}
