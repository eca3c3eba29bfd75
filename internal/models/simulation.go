package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	SimulationStatusActive    = "active"
	SimulationStatusCompleted = "completed"
	SimulationStatusPaused    = "paused"
	SimulationStatusCancelled = "cancelled"
)

// Simulation is a paper-trading run against a single symbol. It always owns
// at least the initial checkpoint, created in the same transaction.
type Simulation struct {
	ID     uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Symbol string `gorm:"type:varchar(20);not null;index" json:"symbol"`

	InitialCapital decimal.Decimal `gorm:"type:numeric(30,10);not null" json:"initial_capital"`
	StartDate      string          `gorm:"type:varchar(10);not null" json:"start_date"`
	EndDate        string          `gorm:"type:varchar(10);not null" json:"end_date"`
	Status         string          `gorm:"type:varchar(20);not null;index" json:"status"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (Simulation) TableName() string {
	return "simulations"
}
