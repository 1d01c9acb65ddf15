package handler

import (
	"errors"
	"log"
	"net/http"

	"flame/pkg/dto"
	"flame/pkg/middleware"
	"flame/services/user/service"

	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func setSessionCookie(c echo.Context, sessionID string) {
	c.SetCookie(&http.Cookie{
		Name:     "session_id",
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// 유저 등록
func (h *UserHandler) RegisterUser(c echo.Context) error {
	var req dto.RegisterUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	user, sessionID, err := h.userService.RegisterUser(&req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValueRejected):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrEmailTaken):
			return echo.NewHTTPError(http.StatusConflict, "Email already registered")
		default:
			log.Printf("Failed to register user: %v", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to register user")
		}
	}

	setSessionCookie(c, sessionID)
	return c.JSON(http.StatusCreated, user)
}

// 이메일 로그인
func (h *UserHandler) LoginUser(c echo.Context) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	user, sessionID, err := h.userService.LoginUser(req.Email)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		log.Printf("Failed to login: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to login")
	}

	setSessionCookie(c, sessionID)
	return c.JSON(http.StatusOK, user)
}

// 내 프로필 조회
func (h *UserHandler) GetProfile(c echo.Context) error {
	userID, ok := middleware.GetUserID(c.Request())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User ID is required")
	}

	user, err := h.userService.GetProfile(userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		log.Printf("Failed to get profile for user %d: %v", userID, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to get profile")
	}

	return c.JSON(http.StatusOK, user)
}

// 프로필 수정
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, ok := middleware.GetUserID(c.Request())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User ID is required")
	}

	var req dto.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	user, err := h.userService.UpdateProfile(userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValueRejected):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		default:
			log.Printf("Failed to update profile for user %d: %v", userID, err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update profile")
		}
	}

	return c.JSON(http.StatusOK, user)
}

// 활동 시각 갱신
func (h *UserHandler) TouchLastSeen(c echo.Context) error {
	userID, ok := middleware.GetUserID(c.Request())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User ID is required")
	}

	if err := h.userService.TouchLastSeen(userID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		log.Printf("Failed to touch last seen for user %d: %v", userID, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update activity")
	}

	return c.NoContent(http.StatusNoContent)
}

// 계정 삭제
func (h *UserHandler) DeleteAccount(c echo.Context) error {
	userID, ok := middleware.GetUserID(c.Request())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User ID is required")
	}

	sessionID := ""
	if cookie, err := c.Cookie("session_id"); err == nil {
		sessionID = cookie.Value
	}

	if err := h.userService.DeleteAccount(userID, sessionID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		log.Printf("Failed to delete account for user %d: %v", userID, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete account")
	}

	return c.NoContent(http.StatusNoContent)
}
