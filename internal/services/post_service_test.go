package services

import (
	"testing"

	"github.com/flocknet/backend/internal/models"
	"github.com/flocknet/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePostRejectsBlankFields(t *testing.T) {
	db := testutil.NewTestDB(t)
	bob := testutil.CreateUser(t, db, "bob")
	svc := NewPostService(db)

	_, err := svc.CreatePost(bob.ID, "   ", "content")
	assert.ErrorIs(t, err, ErrBlankTitle)

	_, err = svc.CreatePost(bob.ID, "title", "\t\n")
	assert.ErrorIs(t, err, ErrBlankContent)

	post, err := svc.CreatePost(bob.ID, "Hello", "World")
	require.NoError(t, err)
	assert.NotZero(t, post.ID)
}

func TestUpdatePostRejectsBlankValues(t *testing.T) {
	db := testutil.NewTestDB(t)
	bob := testutil.CreateUser(t, db, "bob")
	post := testutil.CreatePost(t, db, bob.ID, "Hello", "World")
	svc := NewPostService(db)

	err := svc.UpdatePost(post, models.UpdatePostRequest{Title: "  "})
	assert.ErrorIs(t, err, ErrBlankTitle)

	require.NoError(t, svc.UpdatePost(post, models.UpdatePostRequest{Title: "Updated"}))
	assert.Equal(t, "Updated", post.Title)
	assert.Equal(t, "World", post.Content)
}
