package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/flocknet/backend/internal/testutil"
	"github.com/flocknet/backend/validators"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	db := testutil.NewTestDB(t)
	e := echo.New()
	e.Validator = validators.NewValidator()
	SetupRoutes(e, db, nil, "test-secret")
	return e
}

// doJSON performs a request and decodes the JSON response body.
func doJSON(t *testing.T, e *echo.Echo, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var reader *strings.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = strings.NewReader(string(raw))
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	decoded := map[string]any{}
	if rec.Body.Len() > 0 {
		_ = json.Unmarshal(rec.Body.Bytes(), &decoded)
	}
	return rec.Code, decoded
}

// register creates an account and returns its token and user id.
func register(t *testing.T, e *echo.Echo, username string) (string, uint) {
	t.Helper()
	code, body := doJSON(t, e, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, code)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	user, _ := body["user"].(map[string]any)
	require.NotNil(t, user)
	return token, uint(user["id"].(float64))
}

func createPost(t *testing.T, e *echo.Echo, token, title, content string) uint {
	t.Helper()
	code, body := doJSON(t, e, http.MethodPost, "/api/v1/posts", token, map[string]any{
		"title":   title,
		"content": content,
	})
	require.Equal(t, http.StatusCreated, code)
	return uint(body["id"].(float64))
}

func TestRegisterAndLogin(t *testing.T) {
	e := newTestServer(t)

	_, _ = register(t, e, "alice")

	// Duplicate username is a validation failure.
	code, _ := doJSON(t, e, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"username": "alice",
		"email":    "other@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusBadRequest, code)

	// Bad email fails validation.
	code, _ = doJSON(t, e, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"username": "bob",
		"email":    "not-an-email",
		"password": "password123",
	})
	assert.Equal(t, http.StatusBadRequest, code)

	code, body := doJSON(t, e, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"username": "alice",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, code)
	assert.NotEmpty(t, body["token"])

	code, _ = doJSON(t, e, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"username": "alice",
		"password": "wrongpassword",
	})
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestFollowScenario(t *testing.T) {
	e := newTestServer(t)
	aliceToken, aliceID := register(t, e, "alice")
	bobToken, bobID := register(t, e, "bob")

	followURL := fmt.Sprintf("/api/v1/users/%d/follow", bobID)

	// Anonymous callers cannot follow.
	code, _ := doJSON(t, e, http.MethodPost, followURL, "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	// First follow creates the edge and notifies bob.
	code, body := doJSON(t, e, http.MethodPost, followURL, aliceToken, nil)
	assert.Equal(t, http.StatusCreated, code)
	assert.Equal(t, true, body["following"])

	// Repeat follow is a success no-op.
	code, _ = doJSON(t, e, http.MethodPost, followURL, aliceToken, nil)
	assert.Equal(t, http.StatusOK, code)

	// Self-follow always fails.
	code, _ = doJSON(t, e, http.MethodPost, fmt.Sprintf("/api/v1/users/%d/follow", aliceID), aliceToken, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	// Unknown target is a 404.
	code, _ = doJSON(t, e, http.MethodPost, "/api/v1/users/9999/follow", aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, code)

	// Still exactly one notification for bob.
	code, body = doJSON(t, e, http.MethodGet, "/api/v1/notifications", bobToken, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(1), body["count"])
	assert.Equal(t, float64(1), body["unread_count"])

	// Unfollow removes the edge; repeating fails.
	code, _ = doJSON(t, e, http.MethodDelete, followURL, aliceToken, nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = doJSON(t, e, http.MethodDelete, followURL, aliceToken, nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestLikeScenario(t *testing.T) {
	e := newTestServer(t)
	bobToken, _ := register(t, e, "bob")
	carolToken, _ := register(t, e, "carol")

	postID := createPost(t, e, bobToken, "Hello", "World")
	likeURL := fmt.Sprintf("/api/v1/posts/%d/like", postID)
	unlikeURL := fmt.Sprintf("/api/v1/posts/%d/unlike", postID)

	code, body := doJSON(t, e, http.MethodPost, likeURL, carolToken, nil)
	assert.Equal(t, http.StatusCreated, code)
	assert.Equal(t, float64(1), body["likes_count"])

	code, body = doJSON(t, e, http.MethodPost, likeURL, carolToken, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(1), body["likes_count"])

	// Exactly one like notification reached bob.
	code, body = doJSON(t, e, http.MethodGet, "/api/v1/notifications", bobToken, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(1), body["count"])

	code, body = doJSON(t, e, http.MethodPost, unlikeURL, carolToken, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(0), body["likes_count"])

	code, _ = doJSON(t, e, http.MethodPost, unlikeURL, carolToken, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	// Unknown post is a 404.
	code, _ = doJSON(t, e, http.MethodPost, "/api/v1/posts/9999/like", carolToken, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestOwnershipPolicy(t *testing.T) {
	e := newTestServer(t)
	bobToken, _ := register(t, e, "bob")
	carolToken, _ := register(t, e, "carol")

	postID := createPost(t, e, bobToken, "Hello", "World")
	postURL := fmt.Sprintf("/api/v1/posts/%d", postID)
	update := map[string]any{"title": "Edited"}

	// Anonymous callers must authenticate.
	code, _ := doJSON(t, e, http.MethodPut, postURL, "", update)
	assert.Equal(t, http.StatusUnauthorized, code)

	// Authenticated non-owners are forbidden.
	code, _ = doJSON(t, e, http.MethodPut, postURL, carolToken, update)
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = doJSON(t, e, http.MethodDelete, postURL, carolToken, nil)
	assert.Equal(t, http.StatusForbidden, code)

	// The author may update and delete.
	code, body := doJSON(t, e, http.MethodPut, postURL, bobToken, update)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Edited", body["title"])

	req := httptest.NewRequest(http.MethodDelete, postURL, nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+bobToken)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCommentScenario(t *testing.T) {
	e := newTestServer(t)
	bobToken, _ := register(t, e, "bob")
	carolToken, _ := register(t, e, "carol")

	postID := createPost(t, e, bobToken, "Hello", "World")

	// Bob commenting on his own post creates no notification.
	code, _ := doJSON(t, e, http.MethodPost, "/api/v1/comments", bobToken, map[string]any{
		"post_id": postID,
		"content": "First!",
	})
	assert.Equal(t, http.StatusCreated, code)

	code, body := doJSON(t, e, http.MethodGet, "/api/v1/notifications", bobToken, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(0), body["count"])

	// Carol's comment notifies bob.
	code, _ = doJSON(t, e, http.MethodPost, "/api/v1/comments", carolToken, map[string]any{
		"post_id": postID,
		"content": "Nice post",
	})
	assert.Equal(t, http.StatusCreated, code)

	code, body = doJSON(t, e, http.MethodGet, "/api/v1/notifications", bobToken, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(1), body["count"])

	// Comments are filterable by post.
	code, body = doJSON(t, e, http.MethodGet, fmt.Sprintf("/api/v1/comments?post=%d", postID), "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(2), body["count"])
}

func TestFeedEndpoint(t *testing.T) {
	e := newTestServer(t)
	aliceToken, _ := register(t, e, "alice")
	bobToken, bobID := register(t, e, "bob")
	carolToken, _ := register(t, e, "carol")

	createPost(t, e, bobToken, "bob-first", "content")
	createPost(t, e, bobToken, "bob-second", "content")
	createPost(t, e, carolToken, "carol-post", "content")

	code, _ := doJSON(t, e, http.MethodGet, "/api/v1/feed", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, body := doJSON(t, e, http.MethodGet, "/api/v1/feed", aliceToken, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(0), body["count"])

	code, _ = doJSON(t, e, http.MethodPost, fmt.Sprintf("/api/v1/users/%d/follow", bobID), aliceToken, nil)
	require.Equal(t, http.StatusCreated, code)

	code, body = doJSON(t, e, http.MethodGet, "/api/v1/feed", aliceToken, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(2), body["count"])

	results, _ := body["results"].([]any)
	require.Len(t, results, 2)
	for _, raw := range results {
		post, _ := raw.(map[string]any)
		assert.Equal(t, float64(bobID), post["author_id"])
	}
}

func TestNotificationEndpoints(t *testing.T) {
	e := newTestServer(t)
	aliceToken, _ := register(t, e, "alice")
	bobToken, bobID := register(t, e, "bob")

	// Two notifications for bob: a follow and a like.
	code, _ := doJSON(t, e, http.MethodPost, fmt.Sprintf("/api/v1/users/%d/follow", bobID), aliceToken, nil)
	require.Equal(t, http.StatusCreated, code)
	postID := createPost(t, e, bobToken, "Hello", "World")
	code, _ = doJSON(t, e, http.MethodPost, fmt.Sprintf("/api/v1/posts/%d/like", postID), aliceToken, nil)
	require.Equal(t, http.StatusCreated, code)

	code, body := doJSON(t, e, http.MethodGet, "/api/v1/notifications", bobToken, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(2), body["unread_count"])

	results, _ := body["results"].([]any)
	require.Len(t, results, 2)
	first, _ := results[0].(map[string]any)
	notifID := uint(first["id"].(float64))

	// Alice cannot read bob's notification.
	code, _ = doJSON(t, e, http.MethodPost, fmt.Sprintf("/api/v1/notifications/%d/read", notifID), aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = doJSON(t, e, http.MethodPost, fmt.Sprintf("/api/v1/notifications/%d/read", notifID), bobToken, nil)
	assert.Equal(t, http.StatusOK, code)

	code, body = doJSON(t, e, http.MethodGet, "/api/v1/notifications/unread-count", bobToken, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(1), body["unread_count"])

	code, body = doJSON(t, e, http.MethodPost, "/api/v1/notifications/read-all", bobToken, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(1), body["updated"])

	code, body = doJSON(t, e, http.MethodGet, "/api/v1/notifications/unread-count", bobToken, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(0), body["unread_count"])
}

func TestLogoutRevokesToken(t *testing.T) {
	e := newTestServer(t)
	aliceToken, _ := register(t, e, "alice")

	code, _ := doJSON(t, e, http.MethodGet, "/api/v1/profile", aliceToken, nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = doJSON(t, e, http.MethodPost, "/api/v1/auth/logout", aliceToken, nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = doJSON(t, e, http.MethodGet, "/api/v1/profile", aliceToken, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestPostSearchIsPublic(t *testing.T) {
	e := newTestServer(t)
	bobToken, _ := register(t, e, "bob")
	createPost(t, e, bobToken, "Go generics", "type parameters")
	createPost(t, e, bobToken, "Travel diary", "the coast")

	code, body := doJSON(t, e, http.MethodGet, "/api/v1/posts?search=generics", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(1), body["count"])

	results, _ := body["results"].([]any)
	require.Len(t, results, 1)
	post, _ := results[0].(map[string]any)
	assert.Equal(t, "Go generics", post["title"])
	assert.Equal(t, "bob", post["author"].(map[string]any)["username"])
}
