package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/flocknet/backend/internal/repositories"
	"github.com/flocknet/backend/internal/services"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	followService  *services.FollowService
	userRepository repositories.UserRepository
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followService *services.FollowService, userRepo repositories.UserRepository) *FollowHandler {
	return &FollowHandler{followService: followService, userRepository: userRepo}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.FollowUser)
	g.DELETE("/users/:id/follow", h.UnfollowUser)
	g.GET("/users/:id/follow", h.GetFollowStatus)
}

func (h *FollowHandler) targetID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	return uint(id), nil
}

// FollowUser follows a user. The first call returns 201; repeating it
// is a 200 no-op.
func (h *FollowHandler) FollowUser(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	targetID, err := h.targetID(c)
	if err != nil {
		return err
	}

	created, err := h.followService.Follow(currentUserID, targetID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSelfFollow):
			return echo.NewHTTPError(http.StatusBadRequest, "You cannot follow yourself")
		case errors.Is(err, gorm.ErrRecordNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	target, err := h.userRepository.GetUserByID(targetID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if !created {
		return c.JSON(http.StatusOK, echo.Map{
			"detail":    "Already following this user",
			"following": true,
			"user":      target.ToCompact(),
		})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"detail":    fmt.Sprintf("You are now following %s", target.Username),
		"following": true,
		"user":      target.ToCompact(),
	})
}

// UnfollowUser unfollows a user. Unfollowing someone you do not follow
// is a 400.
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	targetID, err := h.targetID(c)
	if err != nil {
		return err
	}

	if err := h.followService.Unfollow(currentUserID, targetID); err != nil {
		switch {
		case errors.Is(err, services.ErrSelfUnfollow):
			return echo.NewHTTPError(http.StatusBadRequest, "You cannot unfollow yourself")
		case errors.Is(err, services.ErrNotFollowing):
			return echo.NewHTTPError(http.StatusBadRequest, "You are not following this user")
		case errors.Is(err, gorm.ErrRecordNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"detail":    "You have unfollowed this user",
		"following": false,
	})
}

// GetFollowStatus reports whether the caller follows the user
func (h *FollowHandler) GetFollowStatus(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	targetID, err := h.targetID(c)
	if err != nil {
		return err
	}

	following, err := h.followService.IsFollowing(currentUserID, targetID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"following": following})
}
