package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/flocknet/backend/internal/services"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	likeService *services.LikeService
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likeService *services.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/posts/:id/like", h.LikePost)
	g.POST("/posts/:id/unlike", h.UnlikePost)
}

func (h *LikeHandler) postID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}
	return uint(id), nil
}

// LikePost likes a post. The first call returns 201; repeats return 200
// without duplicating the like.
func (h *LikeHandler) LikePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	postID, err := h.postID(c)
	if err != nil {
		return err
	}

	created, likesCount, err := h.likeService.Like(currentUserID, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	status := http.StatusOK
	detail := "Post already liked"
	if created {
		status = http.StatusCreated
		detail = "Post liked"
	}
	return c.JSON(status, echo.Map{
		"detail":      detail,
		"liked":       true,
		"likes_count": likesCount,
	})
}

// UnlikePost removes the caller's like. Unliking a post that was never
// liked is a 400.
func (h *LikeHandler) UnlikePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	postID, err := h.postID(c)
	if err != nil {
		return err
	}

	likesCount, err := h.likeService.Unlike(currentUserID, postID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotLiked):
			return echo.NewHTTPError(http.StatusBadRequest, "You have not liked this post")
		case errors.Is(err, gorm.ErrRecordNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"detail":      "Post unliked",
		"liked":       false,
		"likes_count": likesCount,
	})
}
