package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"stocksim/internal/models"
	"stocksim/internal/repository"
)

// stubRepo is an in-memory Repository. Transactions degrade to direct calls;
// cascade tests only assert on end state.
type stubRepo struct {
	stocks      map[string]models.Stock
	simulations map[uint64]models.Simulation
	checkpoints map[uint64]models.Checkpoint
	conditions  map[uint64]models.Condition
	hypotheses  map[uint64]models.Hypothesis
	prices      map[uint64]models.StockPrice
	pnl         map[uint64]models.PnLRecord
	journals    map[uint64]models.Journal
	reviews     map[uint64]models.Review
	snapshots   []models.RawQuoteSnapshot
	nextID      uint64
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		stocks:      map[string]models.Stock{},
		simulations: map[uint64]models.Simulation{},
		checkpoints: map[uint64]models.Checkpoint{},
		conditions:  map[uint64]models.Condition{},
		hypotheses:  map[uint64]models.Hypothesis{},
		prices:      map[uint64]models.StockPrice{},
		pnl:         map[uint64]models.PnLRecord{},
		journals:    map[uint64]models.Journal{},
		reviews:     map[uint64]models.Review{},
	}
}

func (r *stubRepo) id() uint64 {
	r.nextID++
	return r.nextID
}

func (r *stubRepo) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func (r *stubRepo) GetStock(ctx context.Context, symbol string) (*models.Stock, error) {
	if s, ok := r.stocks[strings.ToUpper(strings.TrimSpace(symbol))]; ok {
		return &s, nil
	}
	return nil, nil
}

func (r *stubRepo) UpsertStock(ctx context.Context, item *models.Stock) error {
	r.stocks[item.Symbol] = *item
	return nil
}

func (r *stubRepo) UpsertStockTx(ctx context.Context, tx *gorm.DB, item *models.Stock) error {
	return r.UpsertStock(ctx, item)
}

func (r *stubRepo) ListStocks(ctx context.Context) ([]models.Stock, error) {
	out := make([]models.Stock, 0, len(r.stocks))
	for _, s := range r.stocks {
		out = append(out, s)
	}
	return out, nil
}

func (r *stubRepo) InsertSimulationTx(ctx context.Context, tx *gorm.DB, item *models.Simulation) error {
	item.ID = r.id()
	r.simulations[item.ID] = *item
	return nil
}

func (r *stubRepo) GetSimulation(ctx context.Context, id uint64) (*models.Simulation, error) {
	if s, ok := r.simulations[id]; ok {
		return &s, nil
	}
	return nil, nil
}

func (r *stubRepo) ListSimulations(ctx context.Context, params repository.ListSimulationsParams) ([]repository.SimulationWithStock, error) {
	var out []repository.SimulationWithStock
	for _, s := range r.simulations {
		if params.Status != nil && s.Status != *params.Status {
			continue
		}
		if params.Symbol != nil && s.Symbol != strings.ToUpper(*params.Symbol) {
			continue
		}
		name := s.Symbol
		if stock, ok := r.stocks[s.Symbol]; ok {
			name = stock.Name
		}
		out = append(out, repository.SimulationWithStock{Simulation: s, StockName: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *stubRepo) CountSimulations(ctx context.Context, params repository.ListSimulationsParams) (int64, error) {
	items, _ := r.ListSimulations(ctx, params)
	return int64(len(items)), nil
}

func (r *stubRepo) UpdateSimulationStatus(ctx context.Context, id uint64, status string) error {
	if s, ok := r.simulations[id]; ok {
		s.Status = status
		s.UpdatedAt = time.Now().UTC()
		r.simulations[id] = s
	}
	return nil
}

func (r *stubRepo) DeleteSimulationTx(ctx context.Context, tx *gorm.DB, id uint64) error {
	delete(r.simulations, id)
	return nil
}

func (r *stubRepo) InsertCheckpointTx(ctx context.Context, tx *gorm.DB, item *models.Checkpoint) error {
	item.ID = r.id()
	r.checkpoints[item.ID] = *item
	return nil
}

func (r *stubRepo) GetCheckpoint(ctx context.Context, id uint64) (*models.Checkpoint, error) {
	if cp, ok := r.checkpoints[id]; ok {
		return &cp, nil
	}
	return nil, nil
}

func (r *stubRepo) ListCheckpointsBySimulation(ctx context.Context, simulationID uint64) ([]models.Checkpoint, error) {
	var out []models.Checkpoint
	for _, cp := range r.checkpoints {
		if cp.SimulationID == simulationID {
			out = append(out, cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CheckpointDate != out[j].CheckpointDate {
			return out[i].CheckpointDate < out[j].CheckpointDate
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *stubRepo) ListCheckpointIDsBySimulationTx(ctx context.Context, tx *gorm.DB, simulationID uint64) ([]uint64, error) {
	cps, _ := r.ListCheckpointsBySimulation(ctx, simulationID)
	ids := make([]uint64, len(cps))
	for i, cp := range cps {
		ids[i] = cp.ID
	}
	return ids, nil
}

func (r *stubRepo) UpdateCheckpoint(ctx context.Context, item *models.Checkpoint) error {
	if _, ok := r.checkpoints[item.ID]; ok {
		r.checkpoints[item.ID] = *item
	}
	return nil
}

func (r *stubRepo) DeleteCheckpointTx(ctx context.Context, tx *gorm.DB, id uint64) error {
	delete(r.checkpoints, id)
	return nil
}

func (r *stubRepo) DeleteCheckpointsBySimulationTx(ctx context.Context, tx *gorm.DB, simulationID uint64) error {
	for id, cp := range r.checkpoints {
		if cp.SimulationID == simulationID {
			delete(r.checkpoints, id)
		}
	}
	return nil
}

func (r *stubRepo) InsertConditionsTx(ctx context.Context, tx *gorm.DB, items []models.Condition) error {
	for i := range items {
		items[i].ID = r.id()
		r.conditions[items[i].ID] = items[i]
	}
	return nil
}

func (r *stubRepo) GetCondition(ctx context.Context, id uint64) (*models.Condition, error) {
	if c, ok := r.conditions[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (r *stubRepo) UpdateCondition(ctx context.Context, item *models.Condition) error {
	if _, ok := r.conditions[item.ID]; ok {
		r.conditions[item.ID] = *item
	}
	return nil
}

func (r *stubRepo) DeleteCondition(ctx context.Context, id uint64) error {
	delete(r.conditions, id)
	return nil
}

func (r *stubRepo) ListConditionsByCheckpoint(ctx context.Context, checkpointID uint64) ([]models.Condition, error) {
	var out []models.Condition
	for _, c := range r.conditions {
		if c.CheckpointID == checkpointID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubRepo) ListConditionsByCheckpointIDs(ctx context.Context, checkpointIDs []uint64) (map[uint64][]models.Condition, error) {
	out := map[uint64][]models.Condition{}
	for _, id := range checkpointIDs {
		items, _ := r.ListConditionsByCheckpoint(ctx, id)
		if len(items) > 0 {
			out[id] = items
		}
	}
	return out, nil
}

func (r *stubRepo) DeleteConditionsByCheckpointTx(ctx context.Context, tx *gorm.DB, checkpointID uint64) error {
	for id, c := range r.conditions {
		if c.CheckpointID == checkpointID {
			delete(r.conditions, id)
		}
	}
	return nil
}

func (r *stubRepo) DeleteConditionsByCheckpointIDsTx(ctx context.Context, tx *gorm.DB, checkpointIDs []uint64) error {
	for _, id := range checkpointIDs {
		_ = r.DeleteConditionsByCheckpointTx(ctx, tx, id)
	}
	return nil
}

func (r *stubRepo) InsertHypothesesTx(ctx context.Context, tx *gorm.DB, items []models.Hypothesis) error {
	for i := range items {
		items[i].ID = r.id()
		r.hypotheses[items[i].ID] = items[i]
	}
	return nil
}

func (r *stubRepo) GetHypothesis(ctx context.Context, id uint64) (*models.Hypothesis, error) {
	if h, ok := r.hypotheses[id]; ok {
		return &h, nil
	}
	return nil, nil
}

func (r *stubRepo) ListHypothesesByCheckpoint(ctx context.Context, checkpointID uint64) ([]models.Hypothesis, error) {
	var out []models.Hypothesis
	for _, h := range r.hypotheses {
		if h.CheckpointID == checkpointID {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubRepo) ListHypothesesByCheckpointIDs(ctx context.Context, checkpointIDs []uint64) (map[uint64][]models.Hypothesis, error) {
	out := map[uint64][]models.Hypothesis{}
	for _, id := range checkpointIDs {
		items, _ := r.ListHypothesesByCheckpoint(ctx, id)
		if len(items) > 0 {
			out[id] = items
		}
	}
	return out, nil
}

func (r *stubRepo) UpdateHypothesis(ctx context.Context, item *models.Hypothesis) error {
	if _, ok := r.hypotheses[item.ID]; ok {
		r.hypotheses[item.ID] = *item
	}
	return nil
}

func (r *stubRepo) DeleteHypothesis(ctx context.Context, id uint64) error {
	delete(r.hypotheses, id)
	return nil
}

func (r *stubRepo) DeleteHypothesesByCheckpointIDsTx(ctx context.Context, tx *gorm.DB, checkpointIDs []uint64) error {
	for _, cpID := range checkpointIDs {
		for id, h := range r.hypotheses {
			if h.CheckpointID == cpID {
				delete(r.hypotheses, id)
			}
		}
	}
	return nil
}

func (r *stubRepo) GetStockPrice(ctx context.Context, id uint64) (*models.StockPrice, error) {
	if p, ok := r.prices[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r *stubRepo) CountStockPrices(ctx context.Context, symbol string) (int64, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	var n int64
	for _, p := range r.prices {
		if p.Symbol == symbol {
			n++
		}
	}
	return n, nil
}

func (r *stubRepo) ListStockPricesBySymbol(ctx context.Context, symbol string) ([]models.StockPrice, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	var out []models.StockPrice
	for _, p := range r.prices {
		if p.Symbol == symbol {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PriceDate < out[j].PriceDate })
	return out, nil
}

func (r *stubRepo) UpsertStockPricesTx(ctx context.Context, tx *gorm.DB, items []models.StockPrice) error {
	for i := range items {
		replaced := false
		for id, existing := range r.prices {
			if existing.Symbol == items[i].Symbol && existing.PriceDate == items[i].PriceDate {
				items[i].ID = id
				r.prices[id] = items[i]
				replaced = true
				break
			}
		}
		if !replaced {
			items[i].ID = r.id()
			r.prices[items[i].ID] = items[i]
		}
	}
	return nil
}

func (r *stubRepo) ListStaleSymbols(ctx context.Context, olderThan time.Time) ([]string, error) {
	newest := map[string]time.Time{}
	for _, p := range r.prices {
		if p.LastUpdated.After(newest[p.Symbol]) {
			newest[p.Symbol] = p.LastUpdated
		}
	}
	var out []string
	for symbol, ts := range newest {
		if ts.Before(olderThan) {
			out = append(out, symbol)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *stubRepo) InsertPnLRecord(ctx context.Context, item *models.PnLRecord) error {
	item.ID = r.id()
	r.pnl[item.ID] = *item
	return nil
}

func (r *stubRepo) ListPnLRecordsBySimulation(ctx context.Context, simulationID uint64) ([]models.PnLRecord, error) {
	cps, _ := r.ListCheckpointsBySimulation(ctx, simulationID)
	cpSet := map[uint64]struct{}{}
	for _, cp := range cps {
		cpSet[cp.ID] = struct{}{}
	}
	var out []models.PnLRecord
	for _, p := range r.pnl {
		if _, ok := cpSet[p.CheckpointID]; ok {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubRepo) CountPnLRecordsByCheckpointIDs(ctx context.Context, checkpointIDs []uint64) (map[uint64]int64, error) {
	out := map[uint64]int64{}
	for _, cpID := range checkpointIDs {
		for _, p := range r.pnl {
			if p.CheckpointID == cpID {
				out[cpID]++
			}
		}
	}
	return out, nil
}

func (r *stubRepo) DeletePnLRecordsByCheckpointTx(ctx context.Context, tx *gorm.DB, checkpointID uint64) error {
	for id, p := range r.pnl {
		if p.CheckpointID == checkpointID {
			delete(r.pnl, id)
		}
	}
	return nil
}

func (r *stubRepo) DeletePnLRecordsByCheckpointIDsTx(ctx context.Context, tx *gorm.DB, checkpointIDs []uint64) error {
	for _, id := range checkpointIDs {
		_ = r.DeletePnLRecordsByCheckpointTx(ctx, tx, id)
	}
	return nil
}

func (r *stubRepo) InsertJournal(ctx context.Context, item *models.Journal) error {
	item.ID = r.id()
	r.journals[item.ID] = *item
	return nil
}

func (r *stubRepo) GetJournal(ctx context.Context, id uint64) (*models.Journal, error) {
	if j, ok := r.journals[id]; ok {
		return &j, nil
	}
	return nil, nil
}

func (r *stubRepo) ListJournals(ctx context.Context, params repository.ListJournalsParams) ([]models.Journal, error) {
	var out []models.Journal
	for _, j := range r.journals {
		if params.SimulationID > 0 && j.SimulationID != params.SimulationID {
			continue
		}
		out = append(out, j)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubRepo) UpdateJournal(ctx context.Context, item *models.Journal) error {
	if _, ok := r.journals[item.ID]; ok {
		r.journals[item.ID] = *item
	}
	return nil
}

func (r *stubRepo) DeleteJournal(ctx context.Context, id uint64) error {
	delete(r.journals, id)
	return nil
}

func (r *stubRepo) DeleteJournalsBySimulationTx(ctx context.Context, tx *gorm.DB, simulationID uint64) error {
	for id, j := range r.journals {
		if j.SimulationID == simulationID {
			delete(r.journals, id)
		}
	}
	return nil
}

func (r *stubRepo) InsertReview(ctx context.Context, item *models.Review) error {
	item.ID = r.id()
	r.reviews[item.ID] = *item
	return nil
}

func (r *stubRepo) GetReview(ctx context.Context, id uint64) (*models.Review, error) {
	if v, ok := r.reviews[id]; ok {
		return &v, nil
	}
	return nil, nil
}

func (r *stubRepo) ListReviewsBySimulation(ctx context.Context, simulationID uint64) ([]models.Review, error) {
	var out []models.Review
	for _, v := range r.reviews {
		if v.SimulationID == simulationID {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubRepo) UpdateReview(ctx context.Context, item *models.Review) error {
	if _, ok := r.reviews[item.ID]; ok {
		r.reviews[item.ID] = *item
	}
	return nil
}

func (r *stubRepo) DeleteReview(ctx context.Context, id uint64) error {
	delete(r.reviews, id)
	return nil
}

func (r *stubRepo) DeleteReviewsBySimulationTx(ctx context.Context, tx *gorm.DB, simulationID uint64) error {
	for id, v := range r.reviews {
		if v.SimulationID == simulationID {
			delete(r.reviews, id)
		}
	}
	return nil
}

func (r *stubRepo) InsertRawQuoteSnapshot(ctx context.Context, item *models.RawQuoteSnapshot) error {
	r.snapshots = append(r.snapshots, *item)
	return nil
}

var _ repository.Repository = (*stubRepo)(nil)
