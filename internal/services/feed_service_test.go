package services

import (
	"testing"
	"time"

	"github.com/flocknet/backend/internal/models"
	"github.com/flocknet/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createPostAt(t *testing.T, db *gorm.DB, authorID uint, title string, at time.Time) *models.Post {
	t.Helper()
	post := &models.Post{AuthorID: authorID, Title: title, Content: "content", CreatedAt: at}
	require.NoError(t, db.Create(post).Error)
	return post
}

func TestFeedContainsOnlyFollowedAuthorsNewestFirst(t *testing.T) {
	db := testutil.NewTestDB(t)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	carol := testutil.CreateUser(t, db, "carol")

	_, err := NewFollowService(db).Follow(alice.ID, bob.ID)
	require.NoError(t, err)

	base := time.Now().Add(-time.Hour)
	createPostAt(t, db, bob.ID, "bob-old", base)
	createPostAt(t, db, bob.ID, "bob-new", base.Add(10*time.Minute))
	createPostAt(t, db, carol.ID, "carol-post", base.Add(20*time.Minute))
	createPostAt(t, db, alice.ID, "alice-own", base.Add(30*time.Minute))

	posts, total, err := NewFeedService(db).Feed(alice.ID, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, posts, 2)
	assert.Equal(t, "bob-new", posts[0].Title)
	assert.Equal(t, "bob-old", posts[1].Title)
}

func TestFeedEmptyWhenFollowingNobody(t *testing.T) {
	db := testutil.NewTestDB(t)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	testutil.CreatePost(t, db, bob.ID, "Hello", "World")

	posts, total, err := NewFeedService(db).Feed(alice.ID, 0, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, posts)
}
