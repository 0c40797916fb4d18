// internal/database/connection.go
package database

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/stylehaus/atelier-backend/internal/config"
	"github.com/stylehaus/atelier-backend/internal/models"
)

var DB *gorm.DB

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var err error
	var gormConfig *gorm.Config

	// Configure GORM logger
	if cfg.LogLevel == "silent" {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		}
	} else {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Info),
		}
	}

	// Connect with retry; the database container may still be starting
	attempts := cfg.ConnectAttempts
	if attempts < 1 {
		attempts = 1
	}
	for i := 1; i <= attempts; i++ {
		DB, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
		if err == nil {
			break
		}
		if i == attempts {
			return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", attempts, err)
		}
		logrus.WithError(err).Warnf("Database not ready, retrying in %ds (%d/%d)", cfg.ConnectDelay, i, attempts)
		time.Sleep(time.Duration(cfg.ConnectDelay) * time.Second)
	}

	// Get underlying sql.DB
	sqlDB, err := DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	// Test connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logrus.Info("Database connection established successfully")
	return DB, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		logrus.WithError(err).Error("Error getting underlying sql.DB")
		return
	}

	if err := sqlDB.Close(); err != nil {
		logrus.WithError(err).Error("Error closing database connection")
	} else {
		logrus.Info("Database connection closed successfully")
	}
}

func RunMigrations(db *gorm.DB) error {
	logrus.Info("Running database migrations...")

	// Enable UUID extension
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error; err != nil {
		return fmt.Errorf("failed to create UUID extension: %w", err)
	}

	// Run auto-migrations
	err := db.AutoMigrate(
		&models.User{},
		&models.Designer{},
		&models.Category{},
		&models.Tag{},
		&models.Season{},
		&models.Material{},
		&models.Clothing{},
		&models.ClothingHistory{},
		&models.UserPermission{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Create indexes
	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	logrus.Info("Database migrations completed successfully")
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		// User indexes
		"CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)",
		"CREATE INDEX IF NOT EXISTS idx_users_role_status ON users(role, status)",

		// Designer indexes
		"CREATE INDEX IF NOT EXISTS idx_designers_name ON designers(name)",
		"CREATE INDEX IF NOT EXISTS idx_designers_active ON designers(is_active)",

		// Clothing indexes
		"CREATE INDEX IF NOT EXISTS idx_clothing_designer ON clothings(designer_id)",
		"CREATE INDEX IF NOT EXISTS idx_clothing_category_status ON clothings(category_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_clothing_season ON clothings(season_id)",
		"CREATE INDEX IF NOT EXISTS idx_clothing_public ON clothings(is_public)",
		"CREATE INDEX IF NOT EXISTS idx_clothing_created_at ON clothings(created_at DESC)",

		// History indexes
		"CREATE INDEX IF NOT EXISTS idx_clothing_histories_clothing ON clothing_histories(clothing_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_clothing_histories_designer ON clothing_histories(designer_id)",

		// Permission indexes
		"CREATE INDEX IF NOT EXISTS idx_user_permissions_user ON user_permissions(user_id, can_view)",
		"CREATE INDEX IF NOT EXISTS idx_user_permissions_clothing ON user_permissions(clothing_id)",

		// Full-text search indexes
		"CREATE INDEX IF NOT EXISTS idx_clothing_search ON clothings USING GIN(to_tsvector('english', name || ' ' || style_number || ' ' || description))",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			logrus.WithError(err).Warnf("Failed to create index: %s", index)
			// Continue with other indexes instead of failing completely
		}
	}

	return nil
}
