package models

import "time"

const (
	ConditionTypeBuy  = "buy"
	ConditionTypeSell = "sell"

	ConditionMetricPrice = "price"
)

// Condition is a buy/sell price threshold attached to a checkpoint. Saving a
// new set for a checkpoint supersedes (deletes and replaces) the old set.
// Value stays a decimal-as-string on the wire and in storage.
type Condition struct {
	ID           uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	CheckpointID uint64 `gorm:"not null;index" json:"checkpoint_id"`

	Type     string `gorm:"type:varchar(10);not null" json:"type"`
	Metric   string `gorm:"type:varchar(20);not null" json:"metric"`
	Value    string `gorm:"type:varchar(40);not null" json:"value"`
	IsActive bool   `gorm:"not null;default:true" json:"is_active"`

	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (Condition) TableName() string {
	return "conditions"
}
