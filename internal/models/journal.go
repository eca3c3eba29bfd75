package models

import "time"

// Journal is a free-form diary entry attached to a simulation.
type Journal struct {
	ID           uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	SimulationID uint64 `gorm:"not null;index" json:"simulation_id"`

	EntryDate string `gorm:"type:varchar(10);not null" json:"entry_date"`
	Title     string `gorm:"type:text;not null" json:"title"`
	Content   string `gorm:"type:text" json:"content"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime;index" json:"created_at"`
}

func (Journal) TableName() string {
	return "journals"
}
