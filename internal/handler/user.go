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

type UserHandler struct {
	Handler
	users *repository.UserRepository
}

func NewUserHandler(s *server.Server, users *repository.UserRepository) *UserHandler {
	return &UserHandler{
		Handler: NewHandler(s),
		users:   users,
	}
}

func (h *UserHandler) List(c echo.Context, _ *emptyRequest) ([]*repository.User, error) {
	return h.users.List(c.Request().Context())
}

func (h *UserHandler) Stats(c echo.Context, _ *emptyRequest) (*repository.UserStats, error) {
	return h.users.Stats(c.Request().Context())
}

type GetUserRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (r *GetUserRequest) Validate() error {
	return validation.Struct(r)
}

// Get returns a user record. Non-admins may only read their own.
func (h *UserHandler) Get(c echo.Context, req *GetUserRequest) (*repository.User, error) {
	if middleware.GetUserRole(c) != "admin" && middleware.GetUserID(c) != req.ID {
		return nil, errs.NewForbiddenError("You may only view your own account", true)
	}

	return h.users.GetByID(c.Request().Context(), req.ID)
}

type CreateUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"omitempty,oneof=user admin"`
}

func (r *CreateUserRequest) Validate() error {
	return validation.Struct(r)
}

func (h *UserHandler) Create(c echo.Context, req *CreateUserRequest) (*repository.User, error) {
	role := req.Role
	if role == "" {
		role = "user"
	}

	hash, err := service.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	return h.users.Create(c.Request().Context(), req.Name, req.Email, hash, role)
}

type UpdateUserRequest struct {
	ID       string  `param:"id" validate:"required,uuid"`
	Name     *string `json:"name" validate:"omitempty,min=1"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=8"`
	Role     *string `json:"role" validate:"omitempty,oneof=user admin"`
	IsActive *bool   `json:"isActive"`
}

func (r *UpdateUserRequest) Validate() error {
	return validation.Struct(r)
}

// Update edits a user record. Non-admins may only edit their own, and only
// admins may change role or active status.
func (h *UserHandler) Update(c echo.Context, req *UpdateUserRequest) (*repository.User, error) {
	isAdmin := middleware.GetUserRole(c) == "admin"

	if !isAdmin && middleware.GetUserID(c) != req.ID {
		return nil, errs.NewForbiddenError("You may only edit your own account", true)
	}
	if !isAdmin && (req.Role != nil || req.IsActive != nil) {
		return nil, errs.NewForbiddenError("Only administrators may change role or active status", true)
	}

	var passwordHash *string
	if req.Password != nil {
		hash, err := service.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		passwordHash = &hash
	}

	return h.users.Update(c.Request().Context(), req.ID, req.Name, req.Email, passwordHash, req.Role, req.IsActive)
}

type DeleteUserRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (r *DeleteUserRequest) Validate() error {
	return validation.Struct(r)
}

func (h *UserHandler) Delete(c echo.Context, req *DeleteUserRequest) error {
	return h.users.Delete(c.Request().Context(), req.ID)
}
