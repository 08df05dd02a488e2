package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/flocknet/backend/internal/models"
	"github.com/flocknet/backend/internal/pagination"
	"github.com/flocknet/backend/internal/policy"
	"github.com/flocknet/backend/internal/repositories"
	"github.com/flocknet/backend/internal/services"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postService       *services.PostService
	postRepository    repositories.PostRepository
	commentRepository repositories.CommentRepository
	likeRepository    repositories.LikeRepository
	userRepository    repositories.UserRepository
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(
	postService *services.PostService,
	postRepo repositories.PostRepository,
	commentRepo repositories.CommentRepository,
	likeRepo repositories.LikeRepository,
	userRepo repositories.UserRepository,
) *PostHandler {
	return &PostHandler{
		postService:       postService,
		postRepository:    postRepo,
		commentRepository: commentRepo,
		likeRepository:    likeRepo,
		userRepository:    userRepo,
	}
}

// RegisterPublicRoutes registers the openly readable post routes
func (h *PostHandler) RegisterPublicRoutes(g *echo.Group) {
	g.GET("/posts", h.ListPosts)
	g.GET("/posts/:id", h.GetPost)
}

// RegisterPostRoutes registers the authenticated post routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.PUT("/posts/:id", h.UpdatePost)
	g.DELETE("/posts/:id", h.DeletePost)
}

// EnrichedPost is a post with author info, counters and the caller's
// like status.
type EnrichedPost struct {
	models.Post
	Author        models.UserCompact `json:"author"`
	LikesCount    int64              `json:"likes_count"`
	CommentsCount int64              `json:"comments_count"`
	IsLiked       bool               `json:"is_liked"`
}

// enrichPosts decorates posts with author info and counters. A zero
// currentUserID leaves is_liked false everywhere.
func enrichPosts(
	posts []models.Post,
	currentUserID uint,
	userRepo repositories.UserRepository,
	likeRepo repositories.LikeRepository,
	commentRepo repositories.CommentRepository,
) ([]EnrichedPost, error) {
	userCache := make(map[uint]models.UserCompact)
	enriched := make([]EnrichedPost, len(posts))
	for i, p := range posts {
		enriched[i] = EnrichedPost{Post: p}

		author, ok := userCache[p.AuthorID]
		if !ok {
			user, err := userRepo.GetUserByID(p.AuthorID)
			if err == nil {
				author = user.ToCompact()
				userCache[p.AuthorID] = author
			}
		}
		enriched[i].Author = author

		likes, err := likeRepo.GetLikesCountByPostID(p.ID)
		if err != nil {
			return nil, err
		}
		enriched[i].LikesCount = likes

		comments, err := commentRepo.GetCommentsCountByPostID(p.ID)
		if err != nil {
			return nil, err
		}
		enriched[i].CommentsCount = comments

		if currentUserID != 0 {
			liked, err := likeRepo.HasUserLikedPost(p.ID, currentUserID)
			if err != nil {
				return nil, err
			}
			enriched[i].IsLiked = liked
		}
	}
	return enriched, nil
}

// ListPosts returns a paginated post listing with optional search,
// author filter and ordering ("ordering=-created_at" style, leading
// dash for descending).
func (h *PostHandler) ListPosts(c echo.Context) error {
	params := pagination.FromContext(c, 10)

	orderBy := c.QueryParam("ordering")
	desc := strings.HasPrefix(orderBy, "-")
	orderBy = strings.TrimPrefix(orderBy, "-")
	if orderBy == "" {
		orderBy = "created_at"
		desc = true
	}

	var authorID uint
	if raw := c.QueryParam("author"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid author ID")
		}
		authorID = uint(parsed)
	}

	posts, total, err := h.postRepository.ListPosts(repositories.PostListOptions{
		Search:   c.QueryParam("search"),
		AuthorID: authorID,
		OrderBy:  orderBy,
		Desc:     desc,
		Offset:   params.Offset(),
		Limit:    params.Limit,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	enriched, err := enrichPosts(posts, getUserIDFromContext(c), h.userRepository, h.likeRepository, h.commentRepository)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewPage(enriched, total, params))
}

// GetPost returns a single enriched post
func (h *PostHandler) GetPost(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	post, err := h.postRepository.GetPostByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	enriched, err := enrichPosts([]models.Post{*post}, getUserIDFromContext(c), h.userRepository, h.likeRepository, h.commentRepository)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, enriched[0])
}

// CreatePost creates a new post authored by the caller
func (h *PostHandler) CreatePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	post, err := h.postService.CreatePost(currentUserID, req.Title, req.Content)
	if err != nil {
		if errors.Is(err, services.ErrBlankTitle) || errors.Is(err, services.ErrBlankContent) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, post)
}

// UpdatePost updates a post; only its author may do so
func (h *PostHandler) UpdatePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	post, err := h.postRepository.GetPostByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if !policy.Can(currentUserID, post.AuthorID, policy.ActionUpdate) {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to update this post")
	}

	if err := h.postService.UpdatePost(post, req); err != nil {
		if errors.Is(err, services.ErrBlankTitle) || errors.Is(err, services.ErrBlankContent) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, post)
}

// DeletePost deletes a post; only its author may do so
func (h *PostHandler) DeletePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	post, err := h.postRepository.GetPostByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if !policy.Can(currentUserID, post.AuthorID, policy.ActionDelete) {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to delete this post")
	}

	if err := h.postRepository.DeletePost(post.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
