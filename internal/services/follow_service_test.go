package services

import (
	"testing"

	"github.com/flocknet/backend/internal/models"
	"github.com/flocknet/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestFollowSelfFails(t *testing.T) {
	db := testutil.NewTestDB(t)
	alice := testutil.CreateUser(t, db, "alice")

	_, err := NewFollowService(db).Follow(alice.ID, alice.ID)
	assert.ErrorIs(t, err, ErrSelfFollow)
}

func TestFollowUnknownTargetFails(t *testing.T) {
	db := testutil.NewTestDB(t)
	alice := testutil.CreateUser(t, db, "alice")

	_, err := NewFollowService(db).Follow(alice.ID, 9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestFollowIsIdempotent(t *testing.T) {
	db := testutil.NewTestDB(t)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	svc := NewFollowService(db)

	created, err := svc.Follow(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, created)

	following, err := svc.IsFollowing(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, following)

	// Repeat follow is a success no-op.
	created, err = svc.Follow(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, created)

	var edges int64
	require.NoError(t, db.Model(&models.Follow{}).Count(&edges).Error)
	assert.Equal(t, int64(1), edges)

	// Exactly one notification, addressed to bob.
	var notifications []models.Notification
	require.NoError(t, db.Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Equal(t, bob.ID, notifications[0].RecipientID)
	assert.Equal(t, alice.ID, notifications[0].ActorID)
	assert.Equal(t, VerbStartedFollowing, notifications[0].Verb)
}

func TestUnfollow(t *testing.T) {
	db := testutil.NewTestDB(t)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	svc := NewFollowService(db)

	// Unfollow without a prior follow fails.
	err := svc.Unfollow(alice.ID, bob.ID)
	assert.ErrorIs(t, err, ErrNotFollowing)

	_, err = svc.Follow(alice.ID, bob.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Unfollow(alice.ID, bob.ID))

	following, err := svc.IsFollowing(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, following)

	// Repeat unfollow fails again.
	err = svc.Unfollow(alice.ID, bob.ID)
	assert.ErrorIs(t, err, ErrNotFollowing)
}

func TestUnfollowSelfFails(t *testing.T) {
	db := testutil.NewTestDB(t)
	alice := testutil.CreateUser(t, db, "alice")

	err := NewFollowService(db).Unfollow(alice.ID, alice.ID)
	assert.ErrorIs(t, err, ErrSelfUnfollow)
}
