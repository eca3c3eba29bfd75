package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockPrice is one cached daily OHLCV bar, upserted by (symbol, price_date).
type StockPrice struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Symbol    string `gorm:"type:varchar(20);not null;uniqueIndex:idx_symbol_date,priority:1" json:"symbol"`
	PriceDate string `gorm:"type:varchar(10);not null;uniqueIndex:idx_symbol_date,priority:2" json:"price_date"`

	Open  decimal.Decimal `gorm:"type:numeric(20,4);not null" json:"open"`
	Close decimal.Decimal `gorm:"type:numeric(20,4);not null" json:"close"`
	High  decimal.Decimal `gorm:"type:numeric(20,4);not null" json:"high"`
	Low   decimal.Decimal `gorm:"type:numeric(20,4);not null" json:"low"`

	Volume      int64     `gorm:"not null;default:0" json:"volume"`
	LastUpdated time.Time `gorm:"type:timestamptz;not null" json:"last_updated"`
}

func (StockPrice) TableName() string {
	return "stock_prices"
}
