package services

import "errors"

// Validation-class errors returned by services. Handlers map these to
// 400 responses; unknown-resource conditions surface as
// gorm.ErrRecordNotFound and map to 404.
var (
	ErrSelfFollow   = errors.New("users cannot follow themselves")
	ErrSelfUnfollow = errors.New("users cannot unfollow themselves")
	ErrNotFollowing = errors.New("you are not following this user")
	ErrNotLiked     = errors.New("you have not liked this post")
	ErrBlankTitle   = errors.New("title must not be blank")
	ErrBlankContent = errors.New("content must not be blank")
)
