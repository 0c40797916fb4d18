// internal/services/testutil_test.go
package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/stylehaus/atelier-backend/internal/config"
	"github.com/stylehaus/atelier-backend/internal/models"
	"github.com/stylehaus/atelier-backend/internal/utils"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A named in-memory database per test keeps gorm's pooled connections on
	// the same schema while isolating tests from each other.
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
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
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return db
}

func defaultPage() utils.PaginationParams {
	return utils.PaginationParams{Page: 1, Limit: 50, Sort: "created_at", Order: "desc"}
}

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		JWT: config.JWTConfig{
			SecretKey:       "test-secret",
			AccessTokenTTL:  1,
			RefreshTokenTTL: 24,
		},
	}
}

// createTestUser inserts an account and returns it with its actor identity.
func createTestUser(t *testing.T, db *gorm.DB, username string, role models.UserRole) (*models.User, *Actor) {
	t.Helper()

	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Role:     role,
		Status:   models.UserStatusActive,
	}
	require.NoError(t, user.SetPassword("TestPass123!@#"))
	require.NoError(t, db.Create(user).Error)

	return user, &Actor{UserID: user.ID, Role: role}
}

// createTestDesigner inserts an account with an attached designer profile.
func createTestDesigner(t *testing.T, db *gorm.DB, name string) (*models.Designer, *Actor) {
	t.Helper()

	user, actor := createTestUser(t, db, name, models.UserRoleDesigner)

	designer := &models.Designer{
		UserID:   user.ID,
		Name:     name,
		Email:    name + "@atelier.example.com",
		IsActive: true,
	}
	require.NoError(t, db.Create(designer).Error)

	return designer, actor
}

func init() {
	utils.SetJWTSecret("test-secret")
}
