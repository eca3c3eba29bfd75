package gormrepository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stocksim/internal/models"
	"stocksim/internal/repository"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(fn)
}

// tx methods accept a nil tx and fall back to the store connection so they
// stay usable outside a transaction.
func (s *Store) conn(ctx context.Context, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return s.db.WithContext(ctx)
}

// --- Stocks -----------------------------------------------------------------

func (s *Store) GetStock(ctx context.Context, symbol string) (*models.Stock, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.Stock
	err := s.db.WithContext(ctx).Where("symbol = ?", strings.ToUpper(strings.TrimSpace(symbol))).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) UpsertStock(ctx context.Context, item *models.Stock) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.upsertStock(s.db.WithContext(ctx), item)
}

func (s *Store) UpsertStockTx(ctx context.Context, tx *gorm.DB, item *models.Stock) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.upsertStock(s.conn(ctx, tx), item)
}

func (s *Store) upsertStock(db *gorm.DB, item *models.Stock) error {
	item.Symbol = strings.ToUpper(strings.TrimSpace(item.Symbol))
	if item.Symbol == "" {
		return nil
	}
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "symbol"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name",
			"sector",
			"industry",
			"updated_at",
		}),
	}).Create(item).Error
}

func (s *Store) ListStocks(ctx context.Context) ([]models.Stock, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.Stock
	if err := s.db.WithContext(ctx).
		Model(&models.Stock{}).
		Order("symbol asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// --- Simulations ------------------------------------------------------------

func (s *Store) InsertSimulationTx(ctx context.Context, tx *gorm.DB, item *models.Simulation) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.conn(ctx, tx).Create(item).Error
}

func (s *Store) GetSimulation(ctx context.Context, id uint64) (*models.Simulation, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.Simulation
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) simulationsQuery(ctx context.Context, params repository.ListSimulationsParams) *gorm.DB {
	query := s.db.WithContext(ctx).Model(&models.Simulation{})
	if params.Symbol != nil && strings.TrimSpace(*params.Symbol) != "" {
		query = query.Where("simulations.symbol = ?", strings.ToUpper(strings.TrimSpace(*params.Symbol)))
	}
	if params.Status != nil && strings.TrimSpace(*params.Status) != "" {
		query = query.Where("simulations.status = ?", strings.TrimSpace(*params.Status))
	}
	return query
}

func (s *Store) ListSimulations(ctx context.Context, params repository.ListSimulationsParams) ([]repository.SimulationWithStock, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.simulationsQuery(ctx, params).
		Select("simulations.*, COALESCE(stocks.name, simulations.symbol) AS stock_name").
		Joins("LEFT JOIN stocks ON stocks.symbol = simulations.symbol")
	orderBy := strings.TrimSpace(params.OrderBy)
	if orderBy == "" {
		orderBy = "simulations.created_at"
	}
	query = applyOrder(query, orderBy, params.Asc, "simulations.created_at")
	limit := normalizeLimit(params.Limit, 200)
	offset := normalizeOffset(params.Offset)
	var items []repository.SimulationWithStock
	if err := query.Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountSimulations(ctx context.Context, params repository.ListSimulationsParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var count int64
	if err := s.simulationsQuery(ctx, params).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (s *Store) UpdateSimulationStatus(ctx context.Context, id uint64, status string) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).
		Model(&models.Simulation{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     status,
			"updated_at": time.Now().UTC(),
		}).Error
}

func (s *Store) DeleteSimulationTx(ctx context.Context, tx *gorm.DB, id uint64) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.conn(ctx, tx).Where("id = ?", id).Delete(&models.Simulation{}).Error
}

// --- Checkpoints ------------------------------------------------------------

func (s *Store) InsertCheckpointTx(ctx context.Context, tx *gorm.DB, item *models.Checkpoint) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.conn(ctx, tx).Create(item).Error
}

func (s *Store) GetCheckpoint(ctx context.Context, id uint64) (*models.Checkpoint, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.Checkpoint
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListCheckpointsBySimulation(ctx context.Context, simulationID uint64) ([]models.Checkpoint, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.Checkpoint
	if err := s.db.WithContext(ctx).
		Model(&models.Checkpoint{}).
		Where("simulation_id = ?", simulationID).
		Order("checkpoint_date asc, id asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) ListCheckpointIDsBySimulationTx(ctx context.Context, tx *gorm.DB, simulationID uint64) ([]uint64, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var ids []uint64
	if err := s.conn(ctx, tx).
		Model(&models.Checkpoint{}).
		Where("simulation_id = ?", simulationID).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *Store) UpdateCheckpoint(ctx context.Context, item *models.Checkpoint) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).
		Model(&models.Checkpoint{}).
		Where("id = ?", item.ID).
		Updates(map[string]any{
			"checkpoint_date": item.CheckpointDate,
			"checkpoint_type": item.CheckpointType,
			"note":            item.Note,
		}).Error
}

func (s *Store) DeleteCheckpointTx(ctx context.Context, tx *gorm.DB, id uint64) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.conn(ctx, tx).Where("id = ?", id).Delete(&models.Checkpoint{}).Error
}

func (s *Store) DeleteCheckpointsBySimulationTx(ctx context.Context, tx *gorm.DB, simulationID uint64) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.conn(ctx, tx).Where("simulation_id = ?", simulationID).Delete(&models.Checkpoint{}).Error
}

// --- Conditions -------------------------------------------------------------

func (s *Store) InsertConditionsTx(ctx context.Context, tx *gorm.DB, items []models.Condition) error {
	if s == nil || s.db == nil || len(items) == 0 {
		return nil
	}
	return createInBatches(s.conn(ctx, tx), items, 200)
}

func (s *Store) ListConditionsByCheckpoint(ctx context.Context, checkpointID uint64) ([]models.Condition, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.Condition
	if err := s.db.WithContext(ctx).
		Model(&models.Condition{}).
		Where("checkpoint_id = ?", checkpointID).
		Order("id asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) ListConditionsByCheckpointIDs(ctx context.Context, checkpointIDs []uint64) (map[uint64][]models.Condition, error) {
	if s == nil || s.db == nil || len(checkpointIDs) == 0 {
		return map[uint64][]models.Condition{}, nil
	}
	var items []models.Condition
	if err := s.db.WithContext(ctx).
		Model(&models.Condition{}).
		Where("checkpoint_id IN ?", checkpointIDs).
		Order("id asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	out := make(map[uint64][]models.Condition, len(checkpointIDs))
	for _, item := range items {
		out[item.CheckpointID] = append(out[item.CheckpointID], item)
	}
	return out, nil
}

func (s *Store) GetCondition(ctx context.Context, id uint64) (*models.Condition, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.Condition
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) UpdateCondition(ctx context.Context, item *models.Condition) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).
		Model(&models.Condition{}).
		Where("id = ?", item.ID).
		Updates(map[string]any{
			"type":      item.Type,
			"metric":    item.Metric,
			"value":     item.Value,
			"is_active": item.IsActive,
		}).Error
}

func (s *Store) DeleteCondition(ctx context.Context, id uint64) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Condition{}).Error
}

func (s *Store) DeleteConditionsByCheckpointTx(ctx context.Context, tx *gorm.DB, checkpointID uint64) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.conn(ctx, tx).Where("checkpoint_id = ?", checkpointID).Delete(&models.Condition{}).Error
}

func (s *Store) DeleteConditionsByCheckpointIDsTx(ctx context.Context, tx *gorm.DB, checkpointIDs []uint64) error {
	if s == nil || s.db == nil || len(checkpointIDs) == 0 {
		return nil
	}
	return s.conn(ctx, tx).Where("checkpoint_id IN ?", checkpointIDs).Delete(&models.Condition{}).Error
}

// --- Hypotheses -------------------------------------------------------------

func (s *Store) InsertHypothesesTx(ctx context.Context, tx *gorm.DB, items []models.Hypothesis) error {
	if s == nil || s.db == nil || len(items) == 0 {
		return nil
	}
	return createInBatches(s.conn(ctx, tx), items, 200)
}

func (s *Store) GetHypothesis(ctx context.Context, id uint64) (*models.Hypothesis, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.Hypothesis
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListHypothesesByCheckpoint(ctx context.Context, checkpointID uint64) ([]models.Hypothesis, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.Hypothesis
	if err := s.db.WithContext(ctx).
		Model(&models.Hypothesis{}).
		Where("checkpoint_id = ?", checkpointID).
		Order("id asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) ListHypothesesByCheckpointIDs(ctx context.Context, checkpointIDs []uint64) (map[uint64][]models.Hypothesis, error) {
	if s == nil || s.db == nil || len(checkpointIDs) == 0 {
		return map[uint64][]models.Hypothesis{}, nil
	}
	var items []models.Hypothesis
	if err := s.db.WithContext(ctx).
		Model(&models.Hypothesis{}).
		Where("checkpoint_id IN ?", checkpointIDs).
		Order("id asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	out := make(map[uint64][]models.Hypothesis, len(checkpointIDs))
	for _, item := range items {
		out[item.CheckpointID] = append(out[item.CheckpointID], item)
	}
	return out, nil
}

func (s *Store) UpdateHypothesis(ctx context.Context, item *models.Hypothesis) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).
		Model(&models.Hypothesis{}).
		Where("id = ?", item.ID).
		Updates(map[string]any{
			"description":      item.Description,
			"factor_type":      item.FactorType,
			"price_impact":     item.PriceImpact,
			"confidence_level": item.ConfidenceLevel,
			"is_active":        item.IsActive,
		}).Error
}

func (s *Store) DeleteHypothesis(ctx context.Context, id uint64) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Hypothesis{}).Error
}

func (s *Store) DeleteHypothesesByCheckpointIDsTx(ctx context.Context, tx *gorm.DB, checkpointIDs []uint64) error {
	if s == nil || s.db == nil || len(checkpointIDs) == 0 {
		return nil
	}
	return s.conn(ctx, tx).Where("checkpoint_id IN ?", checkpointIDs).Delete(&models.Hypothesis{}).Error
}

// --- Stock prices -----------------------------------------------------------

func (s *Store) GetStockPrice(ctx context.Context, id uint64) (*models.StockPrice, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.StockPrice
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) CountStockPrices(ctx context.Context, symbol string) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var count int64
	if err := s.db.WithContext(ctx).
		Model(&models.StockPrice{}).
		Where("symbol = ?", strings.ToUpper(strings.TrimSpace(symbol))).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (s *Store) ListStockPricesBySymbol(ctx context.Context, symbol string) ([]models.StockPrice, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.StockPrice
	if err := s.db.WithContext(ctx).
		Model(&models.StockPrice{}).
		Where("symbol = ?", strings.ToUpper(strings.TrimSpace(symbol))).
		Order("price_date asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) UpsertStockPricesTx(ctx context.Context, tx *gorm.DB, items []models.StockPrice) error {
	if s == nil || s.db == nil || len(items) == 0 {
		return nil
	}
	db := s.conn(ctx, tx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "symbol"}, {Name: "price_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"open",
			"close",
			"high",
			"low",
			"volume",
			"last_updated",
		}),
	})
	return createInBatches(db, items, 200)
}

func (s *Store) ListStaleSymbols(ctx context.Context, olderThan time.Time) ([]string, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var symbols []string
	if err := s.db.WithContext(ctx).
		Model(&models.StockPrice{}).
		Select("symbol").
		Group("symbol").
		Having("MAX(last_updated) < ?", olderThan).
		Pluck("symbol", &symbols).Error; err != nil {
		return nil, err
	}
	return symbols, nil
}

// --- PnL records ------------------------------------------------------------

func (s *Store) InsertPnLRecord(ctx context.Context, item *models.PnLRecord) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) ListPnLRecordsBySimulation(ctx context.Context, simulationID uint64) ([]models.PnLRecord, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.PnLRecord
	if err := s.db.WithContext(ctx).
		Model(&models.PnLRecord{}).
		Joins("JOIN checkpoints ON checkpoints.id = pnl_records.checkpoint_id").
		Where("checkpoints.simulation_id = ?", simulationID).
		Order("pnl_records.recorded_at asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountPnLRecordsByCheckpointIDs(ctx context.Context, checkpointIDs []uint64) (map[uint64]int64, error) {
	if s == nil || s.db == nil || len(checkpointIDs) == 0 {
		return map[uint64]int64{}, nil
	}
	type row struct {
		CheckpointID uint64
		N            int64
	}
	var rows []row
	if err := s.db.WithContext(ctx).
		Model(&models.PnLRecord{}).
		Select("checkpoint_id, COUNT(*) AS n").
		Where("checkpoint_id IN ?", checkpointIDs).
		Group("checkpoint_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[uint64]int64, len(rows))
	for _, r := range rows {
		out[r.CheckpointID] = r.N
	}
	return out, nil
}

func (s *Store) DeletePnLRecordsByCheckpointTx(ctx context.Context, tx *gorm.DB, checkpointID uint64) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.conn(ctx, tx).Where("checkpoint_id = ?", checkpointID).Delete(&models.PnLRecord{}).Error
}

func (s *Store) DeletePnLRecordsByCheckpointIDsTx(ctx context.Context, tx *gorm.DB, checkpointIDs []uint64) error {
	if s == nil || s.db == nil || len(checkpointIDs) == 0 {
		return nil
	}
	return s.conn(ctx, tx).Where("checkpoint_id IN ?", checkpointIDs).Delete(&models.PnLRecord{}).Error
}

// --- Journals ---------------------------------------------------------------

func (s *Store) InsertJournal(ctx context.Context, item *models.Journal) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) GetJournal(ctx context.Context, id uint64) (*models.Journal, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.Journal
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListJournals(ctx context.Context, params repository.ListJournalsParams) ([]models.Journal, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).Model(&models.Journal{})
	if params.SimulationID > 0 {
		query = query.Where("simulation_id = ?", params.SimulationID)
	}
	query = applyOrder(query, params.OrderBy, params.Asc, "entry_date")
	limit := normalizeLimit(params.Limit, 200)
	offset := normalizeOffset(params.Offset)
	var items []models.Journal
	if err := query.Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) UpdateJournal(ctx context.Context, item *models.Journal) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).
		Model(&models.Journal{}).
		Where("id = ?", item.ID).
		Updates(map[string]any{
			"entry_date": item.EntryDate,
			"title":      item.Title,
			"content":    item.Content,
		}).Error
}

func (s *Store) DeleteJournal(ctx context.Context, id uint64) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Journal{}).Error
}

func (s *Store) DeleteJournalsBySimulationTx(ctx context.Context, tx *gorm.DB, simulationID uint64) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.conn(ctx, tx).Where("simulation_id = ?", simulationID).Delete(&models.Journal{}).Error
}

// --- Reviews ----------------------------------------------------------------

func (s *Store) InsertReview(ctx context.Context, item *models.Review) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) GetReview(ctx context.Context, id uint64) (*models.Review, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.Review
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListReviewsBySimulation(ctx context.Context, simulationID uint64) ([]models.Review, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.Review
	if err := s.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("simulation_id = ?", simulationID).
		Order("review_date asc, id asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) UpdateReview(ctx context.Context, item *models.Review) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("id = ?", item.ID).
		Updates(map[string]any{
			"review_date": item.ReviewDate,
			"outcome":     item.Outcome,
			"lessons":     item.Lessons,
		}).Error
}

func (s *Store) DeleteReview(ctx context.Context, id uint64) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Review{}).Error
}

func (s *Store) DeleteReviewsBySimulationTx(ctx context.Context, tx *gorm.DB, simulationID uint64) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.conn(ctx, tx).Where("simulation_id = ?", simulationID).Delete(&models.Review{}).Error
}

// --- Raw snapshots ----------------------------------------------------------

func (s *Store) InsertRawQuoteSnapshot(ctx context.Context, item *models.RawQuoteSnapshot) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

// --- helpers ----------------------------------------------------------------

func applyOrder(query *gorm.DB, orderBy string, asc *bool, fallback string) *gorm.DB {
	column := strings.TrimSpace(orderBy)
	if column == "" {
		column = fallback
	}
	direction := "desc"
	if asc != nil && *asc {
		direction = "asc"
	}
	return query.Order(column + " " + direction)
}

func createInBatches[T any](db *gorm.DB, items []T, batchSize int) error {
	if len(items) == 0 {
		return nil
	}
	if batchSize <= 0 {
		batchSize = 200
	}
	for i := 0; i < len(items); i += batchSize {
		end := i + batchSize
		if end > len(items) {
			end = len(items)
		}
		if err := db.CreateInBatches(items[i:end], batchSize).Error; err != nil {
			return err
		}
	}
	return nil
}

func normalizeLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > 500 {
		return 500
	}
	return limit
}

func normalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
