package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"spendwise/internal/auth"
	apperrors "spendwise/internal/errors"
	"spendwise/internal/model"
	"spendwise/internal/repository"
)

// AuthService handles signup and login, exchanging credentials for tokens.
type AuthService interface {
	Signup(ctx context.Context, email, password string) (token string, err error)
	Login(ctx context.Context, email, password string) (token string, err error)
}

type authService struct {
	users  repository.UserRepository
	hasher *auth.PasswordHasher
	jwt    *auth.JWTService
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, hasher *auth.PasswordHasher, jwt *auth.JWTService) AuthService {
	return &authService{
		users:  users,
		hasher: hasher,
		jwt:    jwt,
	}
}

// normalizeEmail canonicalizes an email so the unique index sees one
// spelling per address.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup creates an account with a hashed password and returns a token
// for the new identity.
func (s *authService) Signup(ctx context.Context, email, password string) (string, error) {
	email = normalizeEmail(email)

	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return "", apperrors.ErrEmailExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("check account existence: %w", err)
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: digest,
		Role:         "user",
	}
	if err := s.users.Create(ctx, user); err != nil {
		// The unique index is the arbiter under concurrent signups.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", apperrors.ErrEmailExists
		}
		return "", fmt.Errorf("create account: %w", err)
	}

	return s.jwt.Issue(user.ID, user.Role, user.Email)
}

// Login verifies credentials and returns a token. "No such account" and
// "wrong password" stay distinguishable at the message level; that is the
// documented contract.
func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	email = normalizeEmail(email)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.ErrNoAccount
		}
		return "", fmt.Errorf("find account: %w", err)
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		// Corrupt digest in the store; do not leak the distinction.
		return "", apperrors.ErrIncorrectPassword
	}
	if !ok {
		return "", apperrors.ErrIncorrectPassword
	}

	return s.jwt.Issue(user.ID, user.Role, user.Email)
}
