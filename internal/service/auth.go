package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/sphenegem/gem-inventory-api/internal/domain"
	"github.com/sphenegem/gem-inventory-api/internal/repository"
)

var (
	ErrAdminNotFound       = repository.ErrAdminNotFound
	ErrAdminUsernameExists = repository.ErrAdminUsernameExists
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrWrongPassword       = errors.New("current password is incorrect")
)

type AdminRepository interface {
	Create(ctx context.Context, admin domain.Admin) (domain.Admin, error)
	FindByID(ctx context.Context, id uint) (domain.Admin, error)
	FindByUsername(ctx context.Context, username string) (domain.Admin, error)
	UpdatePassword(ctx context.Context, id uint, hash string) error
}

type TokenIssuer interface {
	Issue(adminID uint, userAgent string) (string, time.Time, error)
}

type AuthService struct {
	repo   AdminRepository
	tokens TokenIssuer
	cost   int

	// compared against when the username is unknown so both failure paths
	// spend the same bcrypt time
	dummyHash []byte
}

func NewAuthService(repo AdminRepository, tokens TokenIssuer) *AuthService {
	dummy, _ := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)

	return &AuthService{
		repo:      repo,
		tokens:    tokens,
		cost:      bcrypt.DefaultCost,
		dummyHash: dummy,
	}
}

// Authenticate checks credentials and issues a session token. An unknown
// username and a wrong password are indistinguishable to the caller.
func (s *AuthService) Authenticate(ctx context.Context, creds domain.Credentials) (domain.Session, error) {
	admin, err := s.repo.FindByUsername(ctx, strings.TrimSpace(creds.Username))
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(creds.Password))
			return domain.Session{}, ErrInvalidCredentials
		}

		return domain.Session{}, fmt.Errorf("s.repo.FindByUsername -> %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(creds.Password)); err != nil {
		return domain.Session{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(admin.ID, creds.UserAgent)
	if err != nil {
		return domain.Session{}, fmt.Errorf("s.tokens.Issue -> %w", err)
	}

	return domain.Session{
		Admin:     admin,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, adminID uint, current, next string) error {
	admin, err := s.repo.FindByID(ctx, adminID)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(current)); err != nil {
		return ErrWrongPassword
	}

	hash, err := s.hashPassword(next)
	if err != nil {
		return err
	}

	if err := s.repo.UpdatePassword(ctx, adminID, hash); err != nil {
		return fmt.Errorf("s.repo.UpdatePassword -> %w", err)
	}

	return nil
}

func (s *AuthService) GetAdmin(ctx context.Context, id uint) (domain.Admin, error) {
	admin, err := withReadRetry(ctx, func(ctx context.Context) (domain.Admin, error) {
		return s.repo.FindByID(ctx, id)
	})
	if err != nil {
		return domain.Admin{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return admin, nil
}

// EnsureAdmin creates the admin, or resets its password when the username
// is already taken. It reports whether a new row was created.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) (domain.Admin, bool, error) {
	hash, err := s.hashPassword(password)
	if err != nil {
		return domain.Admin{}, false, err
	}

	existing, err := s.repo.FindByUsername(ctx, username)
	switch {
	case err == nil:
		if err := s.repo.UpdatePassword(ctx, existing.ID, hash); err != nil {
			return domain.Admin{}, false, fmt.Errorf("s.repo.UpdatePassword -> %w", err)
		}

		return existing, false, nil

	case errors.Is(err, repository.ErrAdminNotFound):
		created, err := s.repo.Create(ctx, domain.Admin{Username: username, PasswordHash: hash})
		if err != nil {
			return domain.Admin{}, false, fmt.Errorf("s.repo.Create -> %w", err)
		}

		return created, true, nil

	default:
		return domain.Admin{}, false, fmt.Errorf("s.repo.FindByUsername -> %w", err)
	}
}

func (s *AuthService) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
	}

	return string(hash), nil
}
