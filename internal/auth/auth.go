// Package auth registers and authenticates dashboard users with bcrypt password hashes.
package auth

import (
	"context"
	"errors"
	"fmt"

	"mdip/internal/domain"
	"mdip/internal/store"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrDuplicateUsername is returned when registering a username that is already taken.
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrWeakPassword is returned when a password fails the strength rule.
	ErrWeakPassword = errors.New("password is too weak")
	// ErrInvalidCredentials is returned for an unknown username or a wrong password.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// Users is the account storage the authenticator needs.
type Users interface {
	FindByUsername(username string) (domain.User, bool)
	Create(ctx context.Context, u domain.User) (domain.User, error)
}

// Authenticator registers and logs in users.
type Authenticator struct {
	users Users
	cost  int
}

// NewAuthenticator creates an authenticator hashing with the given bcrypt cost.
// A cost outside bcrypt's accepted range falls back to bcrypt.DefaultCost.
func NewAuthenticator(users Users, cost int) *Authenticator {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Authenticator{users: users, cost: cost}
}

// Register validates the new account, hashes its password and persists it.
func (a *Authenticator) Register(ctx context.Context, username, password string, role domain.Role) (domain.User, error) {
	// 1. Validate the input
	if err := domain.ValidateUsername(username); err != nil {
		return domain.User{}, err
	}
	u, err := domain.NewUser(username, password, role)
	if err != nil {
		return domain.User{}, err
	}
	if err := u.ValidatePassword(); err != nil {
		return domain.User{}, fmt.Errorf("%w: %w", ErrWeakPassword, err)
	}
	if _, exists := a.users.FindByUsername(username); exists {
		return domain.User{}, fmt.Errorf("%w: %s", ErrDuplicateUsername, username)
	}

	// 2. Hash and persist
	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.cost)
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to hash password: %w", err)
	}
	u.Password = string(hash)

	created, err := a.users.Create(ctx, u)
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return domain.User{}, fmt.Errorf("%w: %s", ErrDuplicateUsername, username)
		}
		return domain.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	log.Info().Str("username", username).Str("role", string(role)).Msg("Registered user")
	return created, nil
}

// Login checks the password against the stored hash. The returned user carries the hash.
func (a *Authenticator) Login(ctx context.Context, username, password string) (domain.User, error) {
	u, ok := a.users.FindByUsername(username)
	if !ok {
		log.Debug().Str("username", username).Msg("Login for unknown user")
		return domain.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		log.Debug().Str("username", username).Msg("Login with wrong password")
		return domain.User{}, ErrInvalidCredentials
	}
	return u, nil
}
