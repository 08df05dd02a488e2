package services

import (
	"testing"

	"github.com/flocknet/backend/internal/models"
	"github.com/flocknet/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestLikeIsIdempotent(t *testing.T) {
	db := testutil.NewTestDB(t)
	bob := testutil.CreateUser(t, db, "bob")
	carol := testutil.CreateUser(t, db, "carol")
	post := testutil.CreatePost(t, db, bob.ID, "Hello", "World")
	svc := NewLikeService(db)

	created, count, err := svc.Like(carol.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, int64(1), count)

	created, count, err = svc.Like(carol.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, int64(1), count)

	var likes int64
	require.NoError(t, db.Model(&models.Like{}).Count(&likes).Error)
	assert.Equal(t, int64(1), likes)

	// One notification to the post's author, with the post as target.
	var notifications []models.Notification
	require.NoError(t, db.Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Equal(t, bob.ID, notifications[0].RecipientID)
	assert.Equal(t, carol.ID, notifications[0].ActorID)
	assert.Equal(t, VerbLikedPost, notifications[0].Verb)
	assert.Equal(t, models.TargetPost, notifications[0].TargetType)
	assert.Equal(t, post.ID, notifications[0].TargetID)
}

func TestLikeOwnPostSkipsNotification(t *testing.T) {
	db := testutil.NewTestDB(t)
	bob := testutil.CreateUser(t, db, "bob")
	post := testutil.CreatePost(t, db, bob.ID, "Hello", "World")

	created, _, err := NewLikeService(db).Like(bob.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, created)

	var notifications int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&notifications).Error)
	assert.Equal(t, int64(0), notifications)
}

func TestLikeUnknownPostFails(t *testing.T) {
	db := testutil.NewTestDB(t)
	carol := testutil.CreateUser(t, db, "carol")

	_, _, err := NewLikeService(db).Like(carol.ID, 9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUnlike(t *testing.T) {
	db := testutil.NewTestDB(t)
	bob := testutil.CreateUser(t, db, "bob")
	carol := testutil.CreateUser(t, db, "carol")
	post := testutil.CreatePost(t, db, bob.ID, "Hello", "World")
	svc := NewLikeService(db)

	// Unlike without a prior like fails.
	_, err := svc.Unlike(carol.ID, post.ID)
	assert.ErrorIs(t, err, ErrNotLiked)

	_, _, err = svc.Like(carol.ID, post.ID)
	require.NoError(t, err)

	count, err := svc.Unlike(carol.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	_, err = svc.Unlike(carol.ID, post.ID)
	assert.ErrorIs(t, err, ErrNotLiked)
}
