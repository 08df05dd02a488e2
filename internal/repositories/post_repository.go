package repositories

import (
	"github.com/flocknet/backend/internal/models"
	"gorm.io/gorm"
)

// PostListOptions narrows and orders post listings.
type PostListOptions struct {
	Search   string // matches title or content, case-insensitive
	AuthorID uint   // 0 means any author
	OrderBy  string // created_at, updated_at or title
	Desc     bool
	Offset   int
	Limit    int
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(post *models.Post) error
	GetPostByID(id uint) (*models.Post, error)
	UpdatePost(post *models.Post) error
	DeletePost(id uint) error
	ListPosts(opts PostListOptions) ([]models.Post, int64, error)
	ListPostsByAuthorIDs(authorIDs []uint, offset, limit int) ([]models.Post, int64, error)
}

// GormPostRepository implements PostRepository on a relational store
type GormPostRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new GormPostRepository
func NewPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

func (r *GormPostRepository) CreatePost(post *models.Post) error {
	return r.db.Create(post).Error
}

func (r *GormPostRepository) GetPostByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *GormPostRepository) UpdatePost(post *models.Post) error {
	return r.db.Save(post).Error
}

// DeletePost removes the post together with its comments and likes.
func (r *GormPostRepository) DeletePost(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
}

var postOrderColumns = map[string]string{
	"created_at": "created_at",
	"updated_at": "updated_at",
	"title":      "title",
}

func (r *GormPostRepository) ListPosts(opts PostListOptions) ([]models.Post, int64, error) {
	q := r.db.Model(&models.Post{})
	if opts.Search != "" {
		pattern := "%" + opts.Search + "%"
		q = q.Where("LOWER(title) LIKE LOWER(?) OR LOWER(content) LIKE LOWER(?)", pattern, pattern)
	}
	if opts.AuthorID != 0 {
		q = q.Where("author_id = ?", opts.AuthorID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := postOrderColumns[opts.OrderBy]
	if !ok {
		column = "created_at"
	}
	order := column + " ASC"
	if opts.Desc {
		order = column + " DESC"
	}

	var posts []models.Post
	err := q.Order(order).Offset(opts.Offset).Limit(opts.Limit).Find(&posts).Error
	return posts, total, err
}

// ListPostsByAuthorIDs returns posts by the given authors, newest first.
// Used by the feed.
func (r *GormPostRepository) ListPostsByAuthorIDs(authorIDs []uint, offset, limit int) ([]models.Post, int64, error) {
	if len(authorIDs) == 0 {
		return []models.Post{}, 0, nil
	}

	q := r.db.Model(&models.Post{}).Where("author_id IN ?", authorIDs)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []models.Post
	err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&posts).Error
	return posts, total, err
}
