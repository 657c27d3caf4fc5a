package repository

import (
	"context"
	"fmt"
	"sync"

	"mdip/internal/domain"
	"mdip/internal/store"
)

// UserRepository holds the registered accounts, keyed by username.
type UserRepository struct {
	mu       sync.RWMutex
	store    store.Store[store.UserRecord]
	users    []domain.User
	failures []DecodeError
}

// NewUserRepository creates an empty repository over s. Call Load to fill it.
func NewUserRepository(s store.Store[store.UserRecord]) *UserRepository {
	return &UserRepository{store: s}
}

// Load replaces the snapshot with the store's current contents.
func (r *UserRepository) Load(ctx context.Context) error {
	rows, err := r.store.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}
	users, failures := decodeAll(store.EntityUser, rows, DecodeUser)

	r.mu.Lock()
	r.users = users
	r.failures = failures
	r.mu.Unlock()
	return nil
}

// DecodeErrors returns the rows skipped by the last Load.
func (r *UserRepository) DecodeErrors() []DecodeError {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]DecodeError(nil), r.failures...)
}

// FindByUsername returns the account with the given username.
func (r *UserRepository) FindByUsername(username string) (domain.User, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Username == username {
			return u, true
		}
	}
	return domain.User{}, false
}

// Exists reports whether username is taken.
func (r *UserRepository) Exists(username string) bool {
	_, ok := r.FindByUsername(username)
	return ok
}

// All returns every account in snapshot order.
func (r *UserRepository) All() []domain.User {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.User{}, r.users...)
}

// Create persists u, whose Password must already hold a hash.
func (r *UserRepository) Create(ctx context.Context, u domain.User) (domain.User, error) {
	if err := u.Validate(); err != nil {
		return domain.User{}, err
	}
	id, err := r.store.Insert(ctx, EncodeUser(u))
	if err != nil {
		return domain.User{}, err
	}
	u.ID = id

	r.mu.Lock()
	r.users = append(r.users, u)
	r.mu.Unlock()
	return u, nil
}
