package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"schedulesync/pkg/config"
	"schedulesync/pkg/models"
)

// Connect opens the PostgreSQL connection and migrates the schema.
// TranslateError turns driver duplicate-key failures into
// gorm.ErrDuplicatedKey so callers can recognize them without string
// matching.
func Connect(cfg config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s dbname=%s port=%s password=%s", cfg.DBHost, cfg.DBUser, cfg.DBName, cfg.DBPort, cfg.DBPassword)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&models.User{}, &models.Event{}, &models.Friendship{}); err != nil {
		return nil, err
	}
	return db, nil
}
