package repository

import (
	"fmt"
	"testing"

	"chat_admin/internal/domain"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database migrated with every model.
// The shared-cache name keeps GORM's pooled connections on the same database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Session{},
		&domain.Conversation{},
		&domain.Message{},
		&domain.Transaction{},
		&domain.Balance{},
		&domain.PluginAuth{},
		&domain.Preset{},
		&domain.ActivityLog{},
	))
	return db
}

// seedUser inserts a user with sane defaults and returns it
func seedUser(t *testing.T, db *gorm.DB, email string, role domain.Role) *domain.User {
	t.Helper()
	user := &domain.User{
		Email:    email,
		Name:     "Test User",
		Password: "hash",
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}
