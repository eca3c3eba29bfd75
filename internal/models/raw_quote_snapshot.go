package models

import (
	"time"

	"gorm.io/datatypes"
)

// RawQuoteSnapshot archives the raw upstream chart payload so failed
// normalizations can be replayed and debugged.
type RawQuoteSnapshot struct {
	ID        uint64         `gorm:"primaryKey;autoIncrement" json:"id"`
	Symbol    string         `gorm:"type:varchar(20);not null;index" json:"symbol"`
	Payload   datatypes.JSON `gorm:"type:jsonb;not null" json:"payload"`
	FetchedAt time.Time      `gorm:"type:timestamptz;not null;index" json:"fetched_at"`
}

func (RawQuoteSnapshot) TableName() string {
	return "raw_quote_snapshots"
}
