package services

import (
	"strings"

	"github.com/flocknet/backend/internal/models"
	"github.com/flocknet/backend/internal/repositories"
	"gorm.io/gorm"
)

// CommentService creates and edits comments. Creating a comment
// notifies the post's author within the same transaction.
type CommentService struct {
	db *gorm.DB
}

// NewCommentService creates a new CommentService
func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db}
}

// CreateComment attaches a comment to a post. Whitespace-only content
// is rejected.
func (s *CommentService) CreateComment(authorID, postID uint, content string) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrBlankContent
	}

	post, err := repositories.NewPostRepository(s.db).GetPostByID(postID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Content:  content,
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := repositories.NewCommentRepository(tx).CreateComment(comment); err != nil {
			return err
		}
		_, err := createNotification(tx, notificationInput{
			RecipientID: post.AuthorID,
			ActorID:     authorID,
			Verb:        VerbCommentedOnPost,
			TargetType:  models.TargetPost,
			TargetID:    post.ID,
			Metadata:    map[string]any{"comment_id": comment.ID, "post_id": post.ID},
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// UpdateComment replaces the comment's content. Ownership is checked by
// the caller via policy; this only validates the new content.
func (s *CommentService) UpdateComment(comment *models.Comment, content string) error {
	if strings.TrimSpace(content) == "" {
		return ErrBlankContent
	}
	comment.Content = content
	return repositories.NewCommentRepository(s.db).UpdateComment(comment)
}
