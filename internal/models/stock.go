package models

import "time"

// Stock is created on first reference to a symbol. Name may be overwritten
// later when a fresher value is supplied by the caller or the quote source.
type Stock struct {
	Symbol   string `gorm:"primaryKey;type:varchar(20)" json:"symbol"`
	Name     string `gorm:"type:text;not null" json:"name"`
	Sector   string `gorm:"type:text;not null;default:''" json:"sector"`
	Industry string `gorm:"type:text;not null;default:''" json:"industry"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (Stock) TableName() string {
	return "stocks"
}
