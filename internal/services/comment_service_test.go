package services

import (
	"testing"

	"github.com/flocknet/backend/internal/models"
	"github.com/flocknet/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCreateCommentNotifiesAuthor(t *testing.T) {
	db := testutil.NewTestDB(t)
	bob := testutil.CreateUser(t, db, "bob")
	carol := testutil.CreateUser(t, db, "carol")
	post := testutil.CreatePost(t, db, bob.ID, "Hello", "World")

	comment, err := NewCommentService(db).CreateComment(carol.ID, post.ID, "Nice post")
	require.NoError(t, err)
	assert.NotZero(t, comment.ID)

	var notifications []models.Notification
	require.NoError(t, db.Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Equal(t, bob.ID, notifications[0].RecipientID)
	assert.Equal(t, carol.ID, notifications[0].ActorID)
	assert.Equal(t, VerbCommentedOnPost, notifications[0].Verb)
	assert.Equal(t, models.TargetPost, notifications[0].TargetType)
	assert.Equal(t, post.ID, notifications[0].TargetID)
}

func TestCommentOwnPostSkipsNotification(t *testing.T) {
	db := testutil.NewTestDB(t)
	bob := testutil.CreateUser(t, db, "bob")
	post := testutil.CreatePost(t, db, bob.ID, "Hello", "World")

	_, err := NewCommentService(db).CreateComment(bob.ID, post.ID, "First!")
	require.NoError(t, err)

	var notifications int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&notifications).Error)
	assert.Equal(t, int64(0), notifications)
}

func TestCreateCommentBlankContentFails(t *testing.T) {
	db := testutil.NewTestDB(t)
	bob := testutil.CreateUser(t, db, "bob")
	post := testutil.CreatePost(t, db, bob.ID, "Hello", "World")

	_, err := NewCommentService(db).CreateComment(bob.ID, post.ID, "   ")
	assert.ErrorIs(t, err, ErrBlankContent)
}

func TestCreateCommentUnknownPostFails(t *testing.T) {
	db := testutil.NewTestDB(t)
	bob := testutil.CreateUser(t, db, "bob")

	_, err := NewCommentService(db).CreateComment(bob.ID, 9999, "hello")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
