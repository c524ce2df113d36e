package user

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

type memoryRepository struct {
	mu    sync.RWMutex
	users map[string]User
}

// NewMemoryRepository builds an in-memory user store for testing. It
// enforces the same uniqueness set as the Postgres schema.
func NewMemoryRepository() Repository {
	return &memoryRepository{users: make(map[string]User)}
}

func (r *memoryRepository) ExistsAny(_ context.Context, username, email, mobileNumber string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Username == username || u.Email == email || u.MobileNumber == mobileNumber {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryRepository) Create(_ context.Context, user User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.ID]; exists {
		return ErrDuplicate
	}
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email ||
			u.MobileNumber == user.MobileNumber || u.WalletAddress == user.WalletAddress {
			return ErrDuplicate
		}
	}
	r.users[user.ID] = user
	return nil
}

func (r *memoryRepository) FindByID(_ context.Context, id uuid.UUID) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id.String()]
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}
