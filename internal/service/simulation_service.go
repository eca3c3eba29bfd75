package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"stocksim/internal/models"
	"stocksim/internal/quote"
	"stocksim/internal/repository"
	"stocksim/internal/series"
)

const initialCheckpointNote = "simulation start"

// SimulationService owns the simulation lifecycle: creation with its initial
// checkpoint and conditions, status transitions, chart assembly, and the
// cascade delete.
type SimulationService struct {
	Repo    repository.Repository
	Prices  *PriceService
	Logger  *zap.Logger
	GapFill series.GapFill
}

// ConditionInput is a buy/sell threshold supplied by the caller.
type ConditionInput struct {
	Type   string `json:"type"`
	Metric string `json:"metric"`
	Value  string `json:"value"`
}

func (in ConditionInput) complete() bool {
	t := strings.TrimSpace(in.Type)
	if t != models.ConditionTypeBuy && t != models.ConditionTypeSell {
		return false
	}
	if strings.TrimSpace(in.Metric) == "" {
		return false
	}
	return strings.TrimSpace(in.Value) != ""
}

type CreateSimulationInput struct {
	Symbol         string
	CompanyName    string
	InitialCapital decimal.Decimal
	StartDate      string
	EndDate        string
	Conditions     []ConditionInput
}

// Create validates everything before any write, ensures the stock row, then
// creates the simulation, its initial checkpoint, and the conditions in one
// transaction.
func (s *SimulationService) Create(ctx context.Context, in CreateSimulationInput) (*models.Simulation, error) {
	symbol := strings.ToUpper(strings.TrimSpace(in.Symbol))
	if symbol == "" {
		return nil, fmt.Errorf("%w: symbol is required", ErrValidation)
	}
	if !in.InitialCapital.IsPositive() {
		return nil, fmt.Errorf("%w: initial capital must be positive", ErrValidation)
	}
	start, err := time.Parse("2006-01-02", in.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start date %q", ErrValidation, in.StartDate)
	}
	end, err := time.Parse("2006-01-02", in.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid end date %q", ErrValidation, in.EndDate)
	}
	if !start.Before(end) {
		return nil, fmt.Errorf("%w: start date must precede end date", ErrValidation)
	}
	conditions := make([]models.Condition, 0, len(in.Conditions))
	for _, c := range in.Conditions {
		if !c.complete() {
			continue
		}
		conditions = append(conditions, models.Condition{
			Type:     strings.TrimSpace(c.Type),
			Metric:   strings.TrimSpace(c.Metric),
			Value:    strings.TrimSpace(c.Value),
			IsActive: true,
		})
	}
	if len(conditions) == 0 {
		return nil, fmt.Errorf("%w: at least one complete trading condition is required", ErrValidation)
	}

	if err := s.ensureStock(ctx, symbol, in.CompanyName); err != nil {
		return nil, err
	}

	sim := &models.Simulation{
		Symbol:         symbol,
		InitialCapital: in.InitialCapital,
		StartDate:      in.StartDate,
		EndDate:        in.EndDate,
		Status:         models.SimulationStatusActive,
	}
	err = s.Repo.InTx(ctx, func(tx *gorm.DB) error {
		if err := s.Repo.InsertSimulationTx(ctx, tx, sim); err != nil {
			return err
		}
		cp := &models.Checkpoint{
			SimulationID:   sim.ID,
			CheckpointDate: in.StartDate,
			CheckpointType: models.CheckpointTypeInitial,
			Note:           initialCheckpointNote,
		}
		if err := s.Repo.InsertCheckpointTx(ctx, tx, cp); err != nil {
			return err
		}
		for i := range conditions {
			conditions[i].CheckpointID = cp.ID
		}
		return s.Repo.InsertConditionsTx(ctx, tx, conditions)
	})
	if err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.Info("simulation created",
			zap.Uint64("simulation_id", sim.ID),
			zap.String("symbol", symbol),
			zap.Int("conditions", len(conditions)))
	}
	return sim, nil
}

func (s *SimulationService) ensureStock(ctx context.Context, symbol, companyName string) error {
	companyName = strings.TrimSpace(companyName)
	existing, err := s.Repo.GetStock(ctx, symbol)
	if err != nil {
		return err
	}
	if existing == nil {
		name := companyName
		if name == "" {
			name = symbol
		}
		return s.Repo.UpsertStock(ctx, &models.Stock{
			Symbol:   symbol,
			Name:     name,
			Sector:   "unknown",
			Industry: "unknown",
		})
	}
	if companyName != "" && companyName != existing.Name {
		existing.Name = companyName
		return s.Repo.UpsertStock(ctx, existing)
	}
	return nil
}

// Delete removes a simulation and every dependent row in one transaction:
// pnl records, conditions, hypotheses, checkpoints, journals, reviews, then
// the simulation itself.
func (s *SimulationService) Delete(ctx context.Context, id uint64) error {
	sim, err := s.Repo.GetSimulation(ctx, id)
	if err != nil {
		return err
	}
	if sim == nil {
		return fmt.Errorf("%w: simulation %d", ErrNotFound, id)
	}
	err = s.Repo.InTx(ctx, func(tx *gorm.DB) error {
		cpIDs, err := s.Repo.ListCheckpointIDsBySimulationTx(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := s.Repo.DeletePnLRecordsByCheckpointIDsTx(ctx, tx, cpIDs); err != nil {
			return err
		}
		if err := s.Repo.DeleteConditionsByCheckpointIDsTx(ctx, tx, cpIDs); err != nil {
			return err
		}
		if err := s.Repo.DeleteHypothesesByCheckpointIDsTx(ctx, tx, cpIDs); err != nil {
			return err
		}
		if err := s.Repo.DeleteCheckpointsBySimulationTx(ctx, tx, id); err != nil {
			return err
		}
		if err := s.Repo.DeleteJournalsBySimulationTx(ctx, tx, id); err != nil {
			return err
		}
		if err := s.Repo.DeleteReviewsBySimulationTx(ctx, tx, id); err != nil {
			return err
		}
		return s.Repo.DeleteSimulationTx(ctx, tx, id)
	})
	if err != nil {
		return err
	}
	if s.Logger != nil {
		s.Logger.Info("simulation deleted", zap.Uint64("simulation_id", id))
	}
	return nil
}

// UpdateStatus applies a user-initiated transition. Only active simulations
// move, and only to completed, paused, or cancelled.
func (s *SimulationService) UpdateStatus(ctx context.Context, id uint64, status string) error {
	status = strings.TrimSpace(status)
	switch status {
	case models.SimulationStatusCompleted, models.SimulationStatusPaused, models.SimulationStatusCancelled:
	default:
		return fmt.Errorf("%w: invalid target status %q", ErrValidation, status)
	}
	sim, err := s.Repo.GetSimulation(ctx, id)
	if err != nil {
		return err
	}
	if sim == nil {
		return fmt.Errorf("%w: simulation %d", ErrNotFound, id)
	}
	if sim.Status != models.SimulationStatusActive {
		return fmt.Errorf("%w: simulation %d is %s, only active simulations can transition", ErrValidation, id, sim.Status)
	}
	return s.Repo.UpdateSimulationStatus(ctx, id, status)
}

func (s *SimulationService) List(ctx context.Context, params repository.ListSimulationsParams) ([]repository.SimulationWithStock, int64, error) {
	items, err := s.Repo.ListSimulations(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.Repo.CountSimulations(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Chart is the aligned, decorated series for one simulation.
type Chart struct {
	Simulation models.Simulation `json:"simulation"`
	StockName  string            `json:"stock_name"`
	Points     []series.Point    `json:"points"`
	Overlays   []series.Overlay  `json:"overlays"`
}

// BuildChart reconciles the symbol's price cache, aligns checkpoints onto the
// bars, appends moving averages, and renders active sell conditions as
// overlays.
func (s *SimulationService) BuildChart(ctx context.Context, id uint64) (*Chart, error) {
	sim, err := s.Repo.GetSimulation(ctx, id)
	if err != nil {
		return nil, err
	}
	if sim == nil {
		return nil, fmt.Errorf("%w: simulation %d", ErrNotFound, id)
	}

	ensured, err := s.Prices.EnsurePrices(ctx, sim.Symbol)
	if err != nil {
		return nil, err
	}
	bars := rowsToBars(ensured.Prices)

	checkpoints, err := s.Repo.ListCheckpointsBySimulation(ctx, id)
	if err != nil {
		return nil, err
	}
	points := series.Align(bars, checkpoints)
	series.AttachMovingAverages(points, s.GapFill)

	cpIDs := make([]uint64, len(checkpoints))
	for i, cp := range checkpoints {
		cpIDs[i] = cp.ID
	}
	conditionsByCp, err := s.Repo.ListConditionsByCheckpointIDs(ctx, cpIDs)
	if err != nil {
		return nil, err
	}
	var conditions []models.Condition
	for _, cp := range checkpoints {
		conditions = append(conditions, conditionsByCp[cp.ID]...)
	}

	stockName := sim.Symbol
	if stock, err := s.Repo.GetStock(ctx, sim.Symbol); err == nil && stock != nil {
		stockName = stock.Name
	}
	return &Chart{
		Simulation: *sim,
		StockName:  stockName,
		Points:     points,
		Overlays:   series.SellOverlays(conditions, len(points)),
	}, nil
}

// CreatePnLInput records a checkpoint's financial outcome against a priced
// day.
type CreatePnLInput struct {
	CheckpointID uint64          `json:"checkpoint_id"`
	StockPriceID uint64          `json:"stock_price_id"`
	PositionSize decimal.Decimal `json:"position_size"`
	RealizedPL   decimal.Decimal `json:"realized_pl"`
	UnrealizedPL decimal.Decimal `json:"unrealized_pl"`
}

func (s *SimulationService) CreatePnLRecord(ctx context.Context, in CreatePnLInput) (*models.PnLRecord, error) {
	cp, err := s.Repo.GetCheckpoint(ctx, in.CheckpointID)
	if err != nil {
		return nil, err
	}
	if cp == nil {
		return nil, fmt.Errorf("%w: checkpoint %d", ErrNotFound, in.CheckpointID)
	}
	price, err := s.Repo.GetStockPrice(ctx, in.StockPriceID)
	if err != nil {
		return nil, err
	}
	if price == nil {
		return nil, fmt.Errorf("%w: stock price %d", ErrNotFound, in.StockPriceID)
	}
	item := &models.PnLRecord{
		CheckpointID: in.CheckpointID,
		StockPriceID: in.StockPriceID,
		PositionSize: in.PositionSize,
		RealizedPL:   in.RealizedPL,
		UnrealizedPL: in.UnrealizedPL,
		RecordedAt:   time.Now().UTC(),
	}
	if err := s.Repo.InsertPnLRecord(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *SimulationService) ListPnL(ctx context.Context, simulationID uint64) ([]models.PnLRecord, error) {
	sim, err := s.Repo.GetSimulation(ctx, simulationID)
	if err != nil {
		return nil, err
	}
	if sim == nil {
		return nil, fmt.Errorf("%w: simulation %d", ErrNotFound, simulationID)
	}
	return s.Repo.ListPnLRecordsBySimulation(ctx, simulationID)
}

func rowsToBars(rows []models.StockPrice) []quote.Bar {
	bars := make([]quote.Bar, len(rows))
	for i, r := range rows {
		ts := int64(0)
		if day, err := time.Parse("2006-01-02", r.PriceDate); err == nil {
			ts = day.Unix()
		}
		open, _ := r.Open.Float64()
		high, _ := r.High.Float64()
		low, _ := r.Low.Float64()
		closeP, _ := r.Close.Float64()
		bars[i] = quote.Bar{
			Date:      r.PriceDate,
			Timestamp: ts,
			Open:      open,
			High:      high,
			Low:       low,
			Close:     closeP,
			Volume:    r.Volume,
		}
	}
	return bars
}
