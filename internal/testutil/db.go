// Package testutil provides shared test fixtures.
package testutil

import (
	"testing"

	"github.com/flocknet/backend/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens a fresh in-memory database with the full schema
// migrated. Each call returns an isolated store.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.Notification{},
		&models.RevokedToken{},
	)
	require.NoError(t, err)

	return db
}

// CreateUser inserts a minimal user for fixtures.
func CreateUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "x",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreatePost inserts a post authored by the given user.
func CreatePost(t *testing.T, db *gorm.DB, authorID uint, title, content string) *models.Post {
	t.Helper()

	post := &models.Post{AuthorID: authorID, Title: title, Content: content}
	require.NoError(t, db.Create(post).Error)
	return post
}
