package database

import (
	"fmt"
	"time"

	"subscription-plans/config"
	"subscription-plans/internal/domain/plans"
	"subscription-plans/internal/domain/users"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Open connects to Postgres and verifies the connection with a ping.
func Open(dsn string, maxOpen, maxIdle int) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the users and plans tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&plans.Plan{},
	)
}

func InitDB(log *logrus.Logger) {
	db, err := Open(config.DB_URL, config.DB_MAX_OPEN_CONNS, config.DB_MAX_IDLE_CONNS)
	if err != nil {
		log.WithError(err).Fatal("❌ Failed to connect to database")
	}

	DB = db

	if err := Migrate(DB); err != nil {
		log.WithError(err).Fatal("❌ AutoMigrate error")
	}

	log.Info("✅ Connected and migrated successfully")
}
