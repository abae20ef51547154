// Package services contains server-side business logic. Services validate
// input, enforce ownership and translate storage outcomes into the sentinel
// errors of package common; transport concerns stay in httpapi.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/smartirrigation/internal/common"
	"github.com/dmitrijs2005/smartirrigation/internal/server/auth"
	"github.com/dmitrijs2005/smartirrigation/internal/server/config"
	"github.com/dmitrijs2005/smartirrigation/internal/server/models"
	"github.com/dmitrijs2005/smartirrigation/internal/server/repositories/repomanager"
)

// RegisterInput is the registration payload. Role defaults to farmer.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
	Location string
	CropType string
}

// AuthResult is returned by a successful Register or Login.
type AuthResult struct {
	Token string
	User  *models.User
}

// UserService handles registration, login and the user directory.
type UserService struct {
	repomanager           repomanager.RepositoryManager
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		repomanager:           m,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// Register creates an account and signs the caller in.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)

	if err := common.RequireFields([]string{"name", "email", "password"}, map[string]bool{
		"name":     in.Name != "",
		"email":    in.Email != "",
		"password": in.Password != "",
	}); err != nil {
		return nil, err
	}
	if len(in.Password) > auth.MaxPasswordBytes {
		return nil, common.Invalid(fmt.Sprintf("password must be at most %d bytes", auth.MaxPasswordBytes))
	}

	role := models.RoleFarmer
	if in.Role != "" {
		role = models.Role(in.Role)
		if !role.Valid() {
			return nil, common.Invalid("role must be one of farmer, provider, manufacturer")
		}
	}

	repo := s.repomanager.Users()

	_, err := repo.GetUserByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return nil, common.ErrorAlreadyExists
	case !errors.Is(err, common.ErrorNotFound):
		return nil, internalError("lookup user", err)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, internalError("hash password", err)
	}

	user, err := repo.Create(ctx, &models.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         role,
		Location:     strings.TrimSpace(in.Location),
		CropType:     strings.TrimSpace(in.CropType),
	})
	if err != nil {
		// the store enforces uniqueness again for concurrent registrations
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		return nil, internalError("create user", err)
	}

	return s.signIn(user)
}

// Login verifies credentials. Unknown email and wrong password both yield
// common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.TrimSpace(email)

	if err := common.RequireFields([]string{"email", "password"}, map[string]bool{
		"email":    email != "",
		"password": password != "",
	}); err != nil {
		return nil, err
	}

	user, err := s.repomanager.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, internalError("lookup user", err)
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, common.ErrorUnauthorized
	}

	return s.signIn(user)
}

// List returns every registered user.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	list, err := s.repomanager.Users().List(ctx)
	if err != nil {
		return nil, internalError("list users", err)
	}
	return list, nil
}

func (s *UserService) signIn(user *models.User) (*AuthResult, error) {
	token, err := auth.GenerateToken(user.ID, user.Email, string(user.Role), s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return nil, internalError("sign token", err)
	}
	return &AuthResult{Token: token, User: user}, nil
}

// internalError wraps a storage or crypto failure so that it matches
// common.ErrorInternal while keeping the cause for logs.
func internalError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, common.ErrorInternal, err)
}
