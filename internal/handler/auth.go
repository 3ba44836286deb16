package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/shieldsupport/backend/internal/errs"
	"github.com/shieldsupport/backend/internal/middleware"
	"github.com/shieldsupport/backend/internal/repository"
	"github.com/shieldsupport/backend/internal/server"
	"github.com/shieldsupport/backend/internal/service"
	"github.com/shieldsupport/backend/internal/validation"
)

type AuthHandler struct {
	Handler
	auth  *service.AuthService
	users *repository.UserRepository
}

func NewAuthHandler(s *server.Server, auth *service.AuthService, users *repository.UserRepository) *AuthHandler {
	return &AuthHandler{
		Handler: NewHandler(s),
		auth:    auth,
		users:   users,
	}
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	return validation.Struct(r)
}

type LoginResponse struct {
	Token string           `json:"token"`
	User  *repository.User `json:"user"`
}

func (h *AuthHandler) Login(c echo.Context, req *LoginRequest) (*LoginResponse, error) {
	accessToken, user, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		Token: accessToken,
		User:  user,
	}, nil
}

// SignupRequest exists so the endpoint validates input before rejecting it,
// keeping the response shape consistent with the rest of the API.
type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func (r *SignupRequest) Validate() error {
	return validation.Struct(r)
}

// Signup always refuses: accounts are provisioned by administrators, there
// is no self-service registration.
func (h *AuthHandler) Signup(c echo.Context, req *SignupRequest) (*struct{}, error) {
	return nil, errs.NewForbiddenError("Registration is disabled", true)
}

// Me returns the authenticated user's own record.
func (h *AuthHandler) Me(c echo.Context, _ *emptyRequest) (*repository.User, error) {
	return h.users.GetByID(c.Request().Context(), middleware.GetUserID(c))
}
