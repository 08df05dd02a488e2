package services

import (
	"github.com/flocknet/backend/internal/models"
	"github.com/flocknet/backend/internal/repositories"
	"gorm.io/gorm"
)

// LikeService implements like/unlike with follow-style idempotence.
type LikeService struct {
	db *gorm.DB
}

// NewLikeService creates a new LikeService
func NewLikeService(db *gorm.DB) *LikeService {
	return &LikeService{db: db}
}

// Like records the user's like on a post. The first call creates the
// row and notifies the post's author (unless the user is the author);
// repeat calls succeed without duplicating either. Returns whether the
// like was created and the post's current like count.
func (s *LikeService) Like(userID, postID uint) (bool, int64, error) {
	post, err := repositories.NewPostRepository(s.db).GetPostByID(postID)
	if err != nil {
		return false, 0, err
	}

	var created bool
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		created, err = repositories.NewLikeRepository(tx).CreateLike(&models.Like{
			PostID: postID,
			UserID: userID,
		})
		if err != nil {
			return err
		}
		if !created {
			return nil
		}
		_, err = createNotification(tx, notificationInput{
			RecipientID: post.AuthorID,
			ActorID:     userID,
			Verb:        VerbLikedPost,
			TargetType:  models.TargetPost,
			TargetID:    post.ID,
			Metadata:    map[string]any{"post_id": post.ID, "post_title": post.Title},
		})
		return err
	})
	if err != nil {
		return false, 0, err
	}

	count, err := repositories.NewLikeRepository(s.db).GetLikesCountByPostID(postID)
	return created, count, err
}

// Unlike removes the user's like. Unliking a post that was never liked
// is an error. Returns the post's like count after removal.
func (s *LikeService) Unlike(userID, postID uint) (int64, error) {
	if _, err := repositories.NewPostRepository(s.db).GetPostByID(postID); err != nil {
		return 0, err
	}

	likes := repositories.NewLikeRepository(s.db)
	if err := likes.DeleteLike(postID, userID); err != nil {
		if err == repositories.ErrLikeNotFound {
			return 0, ErrNotLiked
		}
		return 0, err
	}
	return likes.GetLikesCountByPostID(postID)
}
