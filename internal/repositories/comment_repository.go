package repositories

import (
	"github.com/flocknet/backend/internal/models"
	"gorm.io/gorm"
)

// CommentListOptions narrows comment listings.
type CommentListOptions struct {
	Search   string // matches content, case-insensitive
	PostID   uint   // 0 means any post
	AuthorID uint   // 0 means any author
	Offset   int
	Limit    int
}

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(comment *models.Comment) error
	GetCommentByID(id uint) (*models.Comment, error)
	UpdateComment(comment *models.Comment) error
	DeleteComment(id uint) error
	ListComments(opts CommentListOptions) ([]models.Comment, int64, error)
	GetCommentsCountByPostID(postID uint) (int64, error)
}

// GormCommentRepository implements CommentRepository on a relational store
type GormCommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new GormCommentRepository
func NewCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

func (r *GormCommentRepository) CreateComment(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

func (r *GormCommentRepository) GetCommentByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *GormCommentRepository) UpdateComment(comment *models.Comment) error {
	return r.db.Save(comment).Error
}

func (r *GormCommentRepository) DeleteComment(id uint) error {
	return r.db.Delete(&models.Comment{}, id).Error
}

func (r *GormCommentRepository) ListComments(opts CommentListOptions) ([]models.Comment, int64, error) {
	q := r.db.Model(&models.Comment{})
	if opts.Search != "" {
		q = q.Where("LOWER(content) LIKE LOWER(?)", "%"+opts.Search+"%")
	}
	if opts.PostID != 0 {
		q = q.Where("post_id = ?", opts.PostID)
	}
	if opts.AuthorID != 0 {
		q = q.Where("author_id = ?", opts.AuthorID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []models.Comment
	err := q.Order("created_at ASC").Offset(opts.Offset).Limit(opts.Limit).Find(&comments).Error
	return comments, total, err
}

func (r *GormCommentRepository) GetCommentsCountByPostID(postID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Comment{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}
