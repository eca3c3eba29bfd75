package models

import "time"

const (
	CheckpointTypeInitial  = "initial"
	CheckpointTypeManual   = "manual"
	CheckpointTypeAutoBuy  = "auto_buy"
	CheckpointTypeAutoSell = "auto_sell"
)

// Checkpoint is a dated marker within a simulation. The initial checkpoint is
// checkpoint-zero and is only ever removed together with its simulation.
type Checkpoint struct {
	ID           uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	SimulationID uint64 `gorm:"not null;index" json:"simulation_id"`

	CheckpointDate string `gorm:"type:varchar(10);not null;index" json:"checkpoint_date"`
	CheckpointType string `gorm:"type:varchar(20);not null" json:"checkpoint_type"`
	Note           string `gorm:"type:text" json:"note"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
}

func (Checkpoint) TableName() string {
	return "checkpoints"
}
