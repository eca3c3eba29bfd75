package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"stocksim/internal/models"
)

// Repository is the persistence surface shared by the services. Cascade
// deletes run through the *Tx variants inside a single transaction.
type Repository interface {
	InTx(ctx context.Context, fn func(tx *gorm.DB) error) error

	// Stocks
	GetStock(ctx context.Context, symbol string) (*models.Stock, error)
	UpsertStock(ctx context.Context, item *models.Stock) error
	UpsertStockTx(ctx context.Context, tx *gorm.DB, item *models.Stock) error
	ListStocks(ctx context.Context) ([]models.Stock, error)

	// Simulations
	InsertSimulationTx(ctx context.Context, tx *gorm.DB, item *models.Simulation) error
	GetSimulation(ctx context.Context, id uint64) (*models.Simulation, error)
	ListSimulations(ctx context.Context, params ListSimulationsParams) ([]SimulationWithStock, error)
	CountSimulations(ctx context.Context, params ListSimulationsParams) (int64, error)
	UpdateSimulationStatus(ctx context.Context, id uint64, status string) error
	DeleteSimulationTx(ctx context.Context, tx *gorm.DB, id uint64) error

	// Checkpoints
	InsertCheckpointTx(ctx context.Context, tx *gorm.DB, item *models.Checkpoint) error
	GetCheckpoint(ctx context.Context, id uint64) (*models.Checkpoint, error)
	ListCheckpointsBySimulation(ctx context.Context, simulationID uint64) ([]models.Checkpoint, error)
	ListCheckpointIDsBySimulationTx(ctx context.Context, tx *gorm.DB, simulationID uint64) ([]uint64, error)
	UpdateCheckpoint(ctx context.Context, item *models.Checkpoint) error
	DeleteCheckpointTx(ctx context.Context, tx *gorm.DB, id uint64) error
	DeleteCheckpointsBySimulationTx(ctx context.Context, tx *gorm.DB, simulationID uint64) error

	// Conditions
	InsertConditionsTx(ctx context.Context, tx *gorm.DB, items []models.Condition) error
	GetCondition(ctx context.Context, id uint64) (*models.Condition, error)
	UpdateCondition(ctx context.Context, item *models.Condition) error
	DeleteCondition(ctx context.Context, id uint64) error
	ListConditionsByCheckpoint(ctx context.Context, checkpointID uint64) ([]models.Condition, error)
	ListConditionsByCheckpointIDs(ctx context.Context, checkpointIDs []uint64) (map[uint64][]models.Condition, error)
	DeleteConditionsByCheckpointTx(ctx context.Context, tx *gorm.DB, checkpointID uint64) error
	DeleteConditionsByCheckpointIDsTx(ctx context.Context, tx *gorm.DB, checkpointIDs []uint64) error

	// Hypotheses
	InsertHypothesesTx(ctx context.Context, tx *gorm.DB, items []models.Hypothesis) error
	GetHypothesis(ctx context.Context, id uint64) (*models.Hypothesis, error)
	ListHypothesesByCheckpoint(ctx context.Context, checkpointID uint64) ([]models.Hypothesis, error)
	ListHypothesesByCheckpointIDs(ctx context.Context, checkpointIDs []uint64) (map[uint64][]models.Hypothesis, error)
	UpdateHypothesis(ctx context.Context, item *models.Hypothesis) error
	DeleteHypothesis(ctx context.Context, id uint64) error
	DeleteHypothesesByCheckpointIDsTx(ctx context.Context, tx *gorm.DB, checkpointIDs []uint64) error

	// Stock prices
	GetStockPrice(ctx context.Context, id uint64) (*models.StockPrice, error)
	CountStockPrices(ctx context.Context, symbol string) (int64, error)
	ListStockPricesBySymbol(ctx context.Context, symbol string) ([]models.StockPrice, error)
	UpsertStockPricesTx(ctx context.Context, tx *gorm.DB, items []models.StockPrice) error
	ListStaleSymbols(ctx context.Context, olderThan time.Time) ([]string, error)

	// PnL records
	InsertPnLRecord(ctx context.Context, item *models.PnLRecord) error
	ListPnLRecordsBySimulation(ctx context.Context, simulationID uint64) ([]models.PnLRecord, error)
	CountPnLRecordsByCheckpointIDs(ctx context.Context, checkpointIDs []uint64) (map[uint64]int64, error)
	DeletePnLRecordsByCheckpointTx(ctx context.Context, tx *gorm.DB, checkpointID uint64) error
	DeletePnLRecordsByCheckpointIDsTx(ctx context.Context, tx *gorm.DB, checkpointIDs []uint64) error

	// Journals
	InsertJournal(ctx context.Context, item *models.Journal) error
	GetJournal(ctx context.Context, id uint64) (*models.Journal, error)
	ListJournals(ctx context.Context, params ListJournalsParams) ([]models.Journal, error)
	UpdateJournal(ctx context.Context, item *models.Journal) error
	DeleteJournal(ctx context.Context, id uint64) error
	DeleteJournalsBySimulationTx(ctx context.Context, tx *gorm.DB, simulationID uint64) error

	// Reviews
	InsertReview(ctx context.Context, item *models.Review) error
	GetReview(ctx context.Context, id uint64) (*models.Review, error)
	ListReviewsBySimulation(ctx context.Context, simulationID uint64) ([]models.Review, error)
	UpdateReview(ctx context.Context, item *models.Review) error
	DeleteReview(ctx context.Context, id uint64) error
	DeleteReviewsBySimulationTx(ctx context.Context, tx *gorm.DB, simulationID uint64) error

	// Raw upstream payloads
	InsertRawQuoteSnapshot(ctx context.Context, item *models.RawQuoteSnapshot) error
}

// SimulationWithStock augments a simulation row with the joined stock name.
type SimulationWithStock struct {
	models.Simulation
	StockName string `json:"stock_name"`
}

type ListSimulationsParams struct {
	Symbol  *string
	Status  *string
	Limit   int
	Offset  int
	OrderBy string
	Asc     *bool
}

type ListJournalsParams struct {
	SimulationID uint64
	Limit        int
	Offset       int
	OrderBy      string
	Asc          *bool
}
