package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/marketplace-backend/internal/repository"
	"github.com/shinyyama/marketplace-backend/internal/service"
)

type UserHandler struct {
	svc service.UserService
}

func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

type RegisterRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
	Email    string `json:"email" form:"email"`
}

type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type LoginResponse struct {
	Message string `json:"message"`
	UserID  uint64 `json:"user_id"`
}

func (h *UserHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewMessageResponse("Username, password, and email are required"))
	}
	err := h.svc.Register(c.Request().Context(), req.Username, req.Password, req.Email)
	switch {
	case err == nil:
		return c.JSON(http.StatusCreated, NewMessageResponse("User added successfully"))
	case errors.Is(err, service.ErrMissingFields):
		return c.JSON(http.StatusBadRequest, NewMessageResponse("Username, password, and email are required"))
	case errors.Is(err, service.ErrUserExists):
		return c.JSON(http.StatusConflict, NewMessageResponse("User already exists"))
	case errors.Is(err, repository.ErrDBNotReady):
		return c.JSON(http.StatusServiceUnavailable, NewMessageResponse("Database connection error"))
	default:
		return c.JSON(http.StatusInternalServerError, NewMessageResponse("Database error: "+err.Error()))
	}
}

func (h *UserHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewMessageResponse("Username and password are required"))
	}
	userID, err := h.svc.Authenticate(c.Request().Context(), req.Username, req.Password)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, LoginResponse{Message: "Login successful", UserID: userID})
	case errors.Is(err, service.ErrMissingFields):
		return c.JSON(http.StatusBadRequest, NewMessageResponse("Username and password are required"))
	case errors.Is(err, service.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, NewMessageResponse("Invalid credentials"))
	case errors.Is(err, repository.ErrDBNotReady):
		return c.JSON(http.StatusServiceUnavailable, NewMessageResponse("Database connection error"))
	default:
		return c.JSON(http.StatusInternalServerError, NewMessageResponse("Database error: "+err.Error()))
	}
}
