package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
	pkgAuth "github.com/polkiloo/storefront/internal/pkg/auth"
)

// AuthUseCase handles registration, credential checks and profile reads.
type AuthUseCase struct {
	users  repository.UserRepository
	hasher pkgAuth.PasswordHasher
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher) *AuthUseCase {
	return &AuthUseCase{users: users, hasher: hasher}
}

// Register hashes the password and stores a new user. Empty role becomes customer.
func (u *AuthUseCase) Register(ctx context.Context, reg model.Registration) (*model.User, error) {
	username := strings.TrimSpace(reg.Username)
	if username == "" || reg.Password == "" {
		return nil, domainErrors.ErrInvalidInput
	}

	hash, err := u.hasher.Hash(reg.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	return u.users.Create(ctx, model.NewUser{
		Name:         reg.Name,
		Email:        reg.Email,
		Username:     username,
		Role:         model.NormalizeRole(reg.Role),
		PasswordHash: hash,
	})
}

// Authenticate verifies credentials. Unknown users and wrong passwords both yield ErrInvalidCredentials.
func (u *AuthUseCase) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, domainErrors.ErrInvalidCredentials
	}

	return usr, nil
}

// Profile returns the public projection of a user.
func (u *AuthUseCase) Profile(ctx context.Context, id int64) (*model.User, error) {
	return u.users.GetByID(ctx, id)
}
