package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"geotrack/internal/errors"
	"geotrack/internal/middleware"
	"geotrack/internal/model"
	"geotrack/internal/service"
)

// UserHandler handles profile and user management endpoints.
type UserHandler struct {
	userService service.UserService
	authService service.AuthService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService, authService service.AuthService) *UserHandler {
	return &UserHandler{
		userService: userService,
		authService: authService,
	}
}

// UpdateUserRequest represents a profile update. UserID is optional: a
// non-admin caller without one updates their own profile, an admin must
// name a target.
type UpdateUserRequest struct {
	UserID   string `json:"user_id"`
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ChangeRoleRequest carries the new role for a user.
type ChangeRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

// UsersResponse wraps a list of users.
type UsersResponse struct {
	Users []model.User `json:"users"`
}

// InfoResponse bundles a profile with its track history.
type InfoResponse struct {
	User   *model.User      `json:"user"`
	Tracks []model.GpsTrack `json:"tracks"`
}

// DeleteResponse echoes the id of the removed user.
type DeleteResponse struct {
	ID string `json:"id"`
}

// Create godoc
// @Summary Create a user (admin)
// @Tags users
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration form"
// @Success 201 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /user [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if err == errors.ErrEmailTaken {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create user")
	}

	return c.JSON(http.StatusCreated, user)
}

// Update godoc
// @Summary Update a user's name, email and password
// @Tags users
// @Accept json
// @Produce json
// @Param request body UpdateUserRequest true "Profile update"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /user [put]
func (h *UserHandler) Update(c echo.Context) error {
	claims, err := middleware.CurrentClaims(c)
	if err != nil {
		return err
	}

	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	targetID := req.UserID
	if targetID == "" {
		// Admins act on other users and must say which one. Everyone else
		// implicitly updates themselves.
		if claims.IsAdmin() {
			return echo.NewHTTPError(http.StatusBadRequest, "user_id is required")
		}
		targetID = claims.UserID
	}

	user, err := h.userService.UpdateInfo(c.Request().Context(), targetID, req.Name, req.Email, req.Password)
	if err != nil {
		if err == errors.ErrUserNotFound || err == errors.ErrEmailTaken {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to update user")
	}

	return c.JSON(http.StatusOK, user)
}

// ChangeRole godoc
// @Summary Change a user's role (admin)
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body ChangeRoleRequest true "New role"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /user/{id}/ [patch]
func (h *UserHandler) ChangeRole(c echo.Context) error {
	userID := c.Param("id")

	var req ChangeRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	role, ok := model.ParseRole(req.Role)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrInvalidRole.Error())
	}

	user, err := h.userService.ChangeRole(c.Request().Context(), userID, role)
	if err != nil {
		if err == errors.ErrUserNotFound {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to change role")
	}

	return c.JSON(http.StatusOK, user)
}

// Delete godoc
// @Summary Delete a user and their tracks (admin)
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} DeleteResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /user/{id}/ [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	userID := c.Param("id")

	deletedID, err := h.userService.Delete(c.Request().Context(), userID)
	if err != nil {
		if err == errors.ErrUserNotFound {
			return echo.NewHTTPError(http.StatusBadRequest,
				fmt.Sprintf("user with id %s does not exist", userID))
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete user")
	}

	return c.JSON(http.StatusOK, DeleteResponse{ID: deletedID})
}

// List godoc
// @Summary List all users (admin)
// @Tags users
// @Produce json
// @Success 200 {object} UsersResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.userService.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list users")
	}
	if len(users) == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "users not found")
	}

	return c.JSON(http.StatusOK, UsersResponse{Users: users})
}

// MyInfo godoc
// @Summary Get the caller's profile and tracks
// @Tags users
// @Produce json
// @Success 200 {object} InfoResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /info [get]
func (h *UserHandler) MyInfo(c echo.Context) error {
	claims, err := middleware.CurrentClaims(c)
	if err != nil {
		return err
	}

	info, err := h.userService.MyInfo(c.Request().Context(), claims.UserID)
	if err != nil {
		if err == errors.ErrUserNotFound {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load profile")
	}

	return c.JSON(http.StatusOK, InfoResponse{User: info.User, Tracks: info.Tracks})
}
