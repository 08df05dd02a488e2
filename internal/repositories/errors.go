package repositories

import "errors"

// Sentinel errors surfaced by repositories so handlers can map them to
// HTTP status codes without string matching.
var (
	ErrFollowNotFound       = errors.New("follow relationship not found")
	ErrLikeNotFound         = errors.New("like not found")
	ErrNotificationNotFound = errors.New("notification not found")
)
