package services

import (
	"github.com/flocknet/backend/internal/models"
	"github.com/flocknet/backend/internal/repositories"
	"gorm.io/gorm"
)

// FeedService derives a user's timeline from the follow graph.
type FeedService struct {
	db *gorm.DB
}

// NewFeedService creates a new FeedService
func NewFeedService(db *gorm.DB) *FeedService {
	return &FeedService{db: db}
}

// Feed returns posts authored by accounts the user follows, newest
// first. The user's own posts never appear since self-follow is
// impossible.
func (s *FeedService) Feed(userID uint, offset, limit int) ([]models.Post, int64, error) {
	followingIDs, err := repositories.NewFollowRepository(s.db).GetFollowingIDs(userID)
	if err != nil {
		return nil, 0, err
	}
	return repositories.NewPostRepository(s.db).ListPostsByAuthorIDs(followingIDs, offset, limit)
}
