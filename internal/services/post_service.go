package services

import (
	"strings"

	"github.com/flocknet/backend/internal/models"
	"github.com/flocknet/backend/internal/repositories"
	"gorm.io/gorm"
)

// PostService creates and edits posts.
type PostService struct {
	db *gorm.DB
}

// NewPostService creates a new PostService
func NewPostService(db *gorm.DB) *PostService {
	return &PostService{db: db}
}

// CreatePost rejects blank (empty or whitespace-only) titles and content.
func (s *PostService) CreatePost(authorID uint, title, content string) (*models.Post, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrBlankTitle
	}
	if strings.TrimSpace(content) == "" {
		return nil, ErrBlankContent
	}

	post := &models.Post{
		AuthorID: authorID,
		Title:    title,
		Content:  content,
	}
	if err := repositories.NewPostRepository(s.db).CreatePost(post); err != nil {
		return nil, err
	}
	return post, nil
}

// UpdatePost applies the non-empty fields of the request. An explicitly
// provided blank value is rejected rather than ignored.
func (s *PostService) UpdatePost(post *models.Post, req models.UpdatePostRequest) error {
	if req.Title != "" {
		if strings.TrimSpace(req.Title) == "" {
			return ErrBlankTitle
		}
		post.Title = req.Title
	}
	if req.Content != "" {
		if strings.TrimSpace(req.Content) == "" {
			return ErrBlankContent
		}
		post.Content = req.Content
	}
	return repositories.NewPostRepository(s.db).UpdatePost(post)
}
