package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/shieldsupport/backend/internal/errs"
	"github.com/shieldsupport/backend/internal/lib/token"
	"github.com/shieldsupport/backend/internal/repository"
	"github.com/shieldsupport/backend/internal/server"
)

type AuthService struct {
	users    *repository.UserRepository
	secret   string
	tokenTTL time.Duration
	logger   *zerolog.Logger
}

func NewAuthService(s *server.Server, users *repository.UserRepository) *AuthService {
	return &AuthService{
		users:    users,
		secret:   s.Config.Auth.SecretKey,
		tokenTTL: time.Duration(s.Config.Auth.TokenTTL) * time.Hour,
		logger:   s.Logger,
	}
}

// Login authenticates an operator. Only active admin accounts can sign in;
// the dashboard has no end-user login. Bad email and bad password return
// the same 401 so the response does not confirm which part was wrong.
func (a *AuthService) Login(ctx context.Context, email, password string) (string, *repository.User, error) {
	user, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, errs.NewUnauthorizedError("Invalid email or password", true)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, errs.NewUnauthorizedError("Invalid email or password", true)
	}

	if user.Role != "admin" {
		return "", nil, errs.NewForbiddenError("Access restricted to administrators", true)
	}

	if !user.IsActive {
		return "", nil, errs.NewForbiddenError("Account is deactivated", true)
	}

	accessToken, err := token.CreateAccessToken(a.secret, user.ID, user.Role, user.Email, a.tokenTTL)
	if err != nil {
		a.logger.Error().Err(err).Msg("Failed to sign access token")
		return "", nil, errs.NewInternalServerError()
	}

	return accessToken, user, nil
}

// HashPassword prepares a password for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
