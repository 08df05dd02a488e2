package repositories

import (
	"testing"
	"time"

	"github.com/flocknet/backend/internal/models"
	"github.com/flocknet/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedNotification(t *testing.T, db *gorm.DB, recipientID uint, verb string, read bool, at time.Time) *models.Notification {
	t.Helper()
	n := &models.Notification{RecipientID: recipientID, ActorID: 99, Verb: verb, IsRead: read, CreatedAt: at}
	require.NoError(t, db.Create(n).Error)
	return n
}

func TestGetByRecipientIDOrdersUnreadFirstThenRecency(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewNotificationRepository(db)

	base := time.Now().Add(-time.Hour)
	seedNotification(t, db, 1, "read-new", true, base.Add(30*time.Minute))
	seedNotification(t, db, 1, "unread-old", false, base)
	seedNotification(t, db, 1, "unread-new", false, base.Add(20*time.Minute))
	seedNotification(t, db, 2, "other-user", false, base.Add(40*time.Minute))

	notifications, total, err := repo.GetByRecipientID(1, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, notifications, 3)
	assert.Equal(t, "unread-new", notifications[0].Verb)
	assert.Equal(t, "unread-old", notifications[1].Verb)
	assert.Equal(t, "read-new", notifications[2].Verb)
}

func TestMarkAsRead(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewNotificationRepository(db)
	n := seedNotification(t, db, 1, "hello", false, time.Now())

	// Someone else's notification is not found.
	err := repo.MarkAsRead(2, n.ID)
	assert.ErrorIs(t, err, ErrNotificationNotFound)

	require.NoError(t, repo.MarkAsRead(1, n.ID))

	var reloaded models.Notification
	require.NoError(t, db.First(&reloaded, n.ID).Error)
	assert.True(t, reloaded.IsRead)

	// Marking again is a no-op success.
	require.NoError(t, repo.MarkAsRead(1, n.ID))

	err = repo.MarkAsRead(1, 9999)
	assert.ErrorIs(t, err, ErrNotificationNotFound)
}

func TestMarkAllAsRead(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewNotificationRepository(db)

	now := time.Now()
	seedNotification(t, db, 1, "a", false, now)
	seedNotification(t, db, 1, "b", false, now)
	seedNotification(t, db, 1, "c", true, now)
	seedNotification(t, db, 2, "d", false, now)

	updated, err := repo.MarkAllAsRead(1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated)

	count, err := repo.GetUnreadCount(1)
	require.NoError(t, err)
	assert.Zero(t, count)

	// User 2's notification is untouched.
	count, err = repo.GetUnreadCount(2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
