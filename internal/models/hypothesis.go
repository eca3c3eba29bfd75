package models

import "time"

const (
	FactorTypePositive = "positive"
	FactorTypeNegative = "negative"
)

// Hypothesis is a qualitative positive/negative factor with an estimated
// price impact (-5..5) and confidence level (1..5).
type Hypothesis struct {
	ID           uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	CheckpointID uint64 `gorm:"not null;index" json:"checkpoint_id"`

	Description     string `gorm:"type:text;not null" json:"description"`
	FactorType      string `gorm:"type:varchar(10);not null" json:"factor_type"`
	PriceImpact     int    `gorm:"not null" json:"price_impact"`
	ConfidenceLevel int    `gorm:"not null" json:"confidence_level"`
	IsActive        bool   `gorm:"not null;default:true" json:"is_active"`

	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (Hypothesis) TableName() string {
	return "hypotheses"
}

// RiskScore is price impact weighted by confidence.
func (h Hypothesis) RiskScore() int {
	return h.PriceImpact * h.ConfidenceLevel
}
