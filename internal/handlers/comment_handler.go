package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/flocknet/backend/internal/models"
	"github.com/flocknet/backend/internal/pagination"
	"github.com/flocknet/backend/internal/policy"
	"github.com/flocknet/backend/internal/repositories"
	"github.com/flocknet/backend/internal/services"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentService    *services.CommentService
	commentRepository repositories.CommentRepository
	userRepository    repositories.UserRepository
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentService *services.CommentService, commentRepo repositories.CommentRepository, userRepo repositories.UserRepository) *CommentHandler {
	return &CommentHandler{
		commentService:    commentService,
		commentRepository: commentRepo,
		userRepository:    userRepo,
	}
}

// RegisterPublicRoutes registers the openly readable comment routes
func (h *CommentHandler) RegisterPublicRoutes(g *echo.Group) {
	g.GET("/comments", h.ListComments)
	g.GET("/comments/:id", h.GetComment)
}

// RegisterCommentRoutes registers the authenticated comment routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/comments", h.CreateComment)
	g.PUT("/comments/:id", h.UpdateComment)
	g.DELETE("/comments/:id", h.DeleteComment)
}

// EnrichedComment is a comment with its author attached.
type EnrichedComment struct {
	models.Comment
	Author models.UserCompact `json:"author"`
}

func (h *CommentHandler) enrichComments(comments []models.Comment) []EnrichedComment {
	userCache := make(map[uint]models.UserCompact)
	enriched := make([]EnrichedComment, len(comments))
	for i, cm := range comments {
		enriched[i] = EnrichedComment{Comment: cm}
		author, ok := userCache[cm.AuthorID]
		if !ok {
			user, err := h.userRepository.GetUserByID(cm.AuthorID)
			if err == nil {
				author = user.ToCompact()
				userCache[cm.AuthorID] = author
			}
		}
		enriched[i].Author = author
	}
	return enriched
}

// ListComments returns a paginated comment listing filterable by post,
// author and content search.
func (h *CommentHandler) ListComments(c echo.Context) error {
	params := pagination.FromContext(c, 20)

	opts := repositories.CommentListOptions{
		Search: c.QueryParam("search"),
		Offset: params.Offset(),
		Limit:  params.Limit,
	}
	if raw := c.QueryParam("post"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
		}
		opts.PostID = uint(parsed)
	}
	if raw := c.QueryParam("author"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid author ID")
		}
		opts.AuthorID = uint(parsed)
	}

	comments, total, err := h.commentRepository.ListComments(opts)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewPage(h.enrichComments(comments), total, params))
}

// GetComment returns a single comment
func (h *CommentHandler) GetComment(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}
	comment, err := h.commentRepository.GetCommentByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, h.enrichComments([]models.Comment{*comment})[0])
}

// CreateComment creates a comment on a post and notifies its author
func (h *CommentHandler) CreateComment(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	comment, err := h.commentService.CreateComment(currentUserID, req.PostID, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBlankContent):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, gorm.ErrRecordNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusCreated, comment)
}

// UpdateComment updates a comment; only its author may do so
func (h *CommentHandler) UpdateComment(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}

	var req models.UpdateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	comment, err := h.commentRepository.GetCommentByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if !policy.Can(currentUserID, comment.AuthorID, policy.ActionUpdate) {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to update this comment")
	}

	if err := h.commentService.UpdateComment(comment, req.Content); err != nil {
		if errors.Is(err, services.ErrBlankContent) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, comment)
}

// DeleteComment deletes a comment; only its author may do so
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}

	comment, err := h.commentRepository.GetCommentByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if !policy.Can(currentUserID, comment.AuthorID, policy.ActionDelete) {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to delete this comment")
	}

	if err := h.commentRepository.DeleteComment(comment.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
