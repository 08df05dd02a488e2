package services

import (
	"github.com/flocknet/backend/internal/models"
	"github.com/flocknet/backend/internal/repositories"
	"gorm.io/gorm"
)

// FollowService implements follow-graph mutations. Edge creation and
// the resulting notification share one transaction.
type FollowService struct {
	db *gorm.DB
}

// NewFollowService creates a new FollowService
func NewFollowService(db *gorm.DB) *FollowService {
	return &FollowService{db: db}
}

// Follow adds actor -> target to the follow graph. The first call
// creates the edge and notifies the target; repeat calls are successful
// no-ops. Returns whether the edge was created by this call.
func (s *FollowService) Follow(actorID, targetID uint) (bool, error) {
	if actorID == targetID {
		return false, ErrSelfFollow
	}

	// Reject unknown targets before touching the graph.
	if _, err := repositories.NewUserRepository(s.db).GetUserByID(targetID); err != nil {
		return false, err
	}

	var created bool
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		created, err = repositories.NewFollowRepository(tx).CreateFollow(&models.Follow{
			FollowerID:  actorID,
			FollowingID: targetID,
		})
		if err != nil {
			return err
		}
		if !created {
			return nil
		}
		_, err = createNotification(tx, notificationInput{
			RecipientID: targetID,
			ActorID:     actorID,
			Verb:        VerbStartedFollowing,
			Metadata:    map[string]any{"follower_id": actorID},
		})
		return err
	})
	return created, err
}

// Unfollow removes actor -> target. Removing an absent edge is an
// error, matching follow's asymmetric idempotence.
func (s *FollowService) Unfollow(actorID, targetID uint) error {
	if actorID == targetID {
		return ErrSelfUnfollow
	}

	if _, err := repositories.NewUserRepository(s.db).GetUserByID(targetID); err != nil {
		return err
	}

	err := repositories.NewFollowRepository(s.db).DeleteFollow(actorID, targetID)
	if err == repositories.ErrFollowNotFound {
		return ErrNotFollowing
	}
	return err
}

// IsFollowing reports whether actor currently follows target.
func (s *FollowService) IsFollowing(actorID, targetID uint) (bool, error) {
	return repositories.NewFollowRepository(s.db).IsFollowing(actorID, targetID)
}
