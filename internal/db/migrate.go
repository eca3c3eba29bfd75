package db

import (
	"stocksim/internal/models"
)

func AutoMigrate(db *DB) error {
	if db == nil || db.Gorm == nil || db.SQL == nil {
		return nil
	}

	return db.Gorm.AutoMigrate(
		&models.Stock{},
		&models.Simulation{},
		&models.Checkpoint{},
		&models.Condition{},
		&models.Hypothesis{},
		&models.StockPrice{},
		&models.PnLRecord{},
		&models.Journal{},
		&models.Review{},
		&models.RawQuoteSnapshot{},
	)
}
