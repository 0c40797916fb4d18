// internal/models/models_test.go
package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// The suites run against in-memory SQLite, so the models must not carry
// Postgres-only column defaults in their generated DDL.
func TestMigrationsRunOnSQLite(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:models_migrate?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	require.NoError(t, db.AutoMigrate(
		&User{}, &Designer{}, &Category{}, &Tag{}, &Season{}, &Material{},
		&Clothing{}, &ClothingHistory{}, &UserPermission{},
	))

	user := &User{
		Username: "migrate_check",
		Email:    "migrate_check@example.com",
		Role:     UserRoleViewer,
		Status:   UserStatusActive,
	}
	require.NoError(t, user.SetPassword("Sup3rSecret!"))
	require.NoError(t, db.Create(user).Error)
	assert.NotEqual(t, uuid.Nil, user.ID)
}

func TestPasswordHashing(t *testing.T) {
	user := &User{}
	require.NoError(t, user.SetPassword("Sup3rSecret!"))

	assert.NotEqual(t, "Sup3rSecret!", user.PasswordHash)
	assert.NoError(t, user.CheckPassword("Sup3rSecret!"))
	assert.Error(t, user.CheckPassword("wrong"))
}

func TestJSONBScanHandlesBytesAndStrings(t *testing.T) {
	// Postgres hands back []byte, SQLite a string; both must decode
	var fromBytes JSONB
	require.NoError(t, fromBytes.Scan([]byte(`{"name":{"old":"a","new":"b"}}`)))
	assert.Contains(t, fromBytes, "name")

	var fromString JSONB
	require.NoError(t, fromString.Scan(`{"color":{"old":null,"new":"Navy"}}`))
	assert.Contains(t, fromString, "color")

	var fromNil JSONB
	require.NoError(t, fromNil.Scan(nil))
	assert.Nil(t, fromNil)
}

func TestPermissionExpired(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Second)
	future := now.Add(time.Second)

	assert.False(t, (&UserPermission{}).Expired(now))
	assert.True(t, (&UserPermission{ExpiresAt: &past}).Expired(now))
	assert.False(t, (&UserPermission{ExpiresAt: &future}).Expired(now))
}
