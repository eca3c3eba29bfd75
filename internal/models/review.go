package models

import "time"

// Review is a post-simulation retrospective: what happened and what to learn.
type Review struct {
	ID           uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	SimulationID uint64 `gorm:"not null;index" json:"simulation_id"`

	ReviewDate string `gorm:"type:varchar(10);not null" json:"review_date"`
	Outcome    string `gorm:"type:text" json:"outcome"`
	Lessons    string `gorm:"type:text" json:"lessons"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
}

func (Review) TableName() string {
	return "reviews"
}
