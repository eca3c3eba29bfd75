package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PnLRecord links a checkpoint's financial outcome to a specific priced day.
type PnLRecord struct {
	ID           uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	CheckpointID uint64 `gorm:"not null;index" json:"checkpoint_id"`
	StockPriceID uint64 `gorm:"not null;index" json:"stock_price_id"`

	PositionSize decimal.Decimal `gorm:"type:numeric(30,10);not null" json:"position_size"`
	// Explicit column names because default GORM naming mangles "PL".
	RealizedPL   decimal.Decimal `gorm:"column:realized_pl;type:numeric(30,10);not null" json:"realized_pl"`
	UnrealizedPL decimal.Decimal `gorm:"column:unrealized_pl;type:numeric(30,10);not null" json:"unrealized_pl"`

	RecordedAt time.Time `gorm:"type:timestamptz;not null" json:"recorded_at"`
}

func (PnLRecord) TableName() string {
	return "pnl_records"
}
