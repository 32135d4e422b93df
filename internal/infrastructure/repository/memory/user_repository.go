package memory

import (
	"context"
	"sync"

	"github.com/totl-app/totl-api/internal/domain/user"
)

type UserRepository struct {
	mu    sync.RWMutex
	users []user.User
}

func NewUserRepository(users []user.User) *UserRepository {
	return &UserRepository{users: append([]user.User(nil), users...)}
}

func (r *UserRepository) List(_ context.Context) ([]user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]user.User(nil), r.users...), nil
}

func (r *UserRepository) ListNotifiable(_ context.Context) ([]user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]user.User, 0, len(r.users))
	for _, item := range r.users {
		if item.NotificationsEnabled {
			out = append(out, item)
		}
	}
	return out, nil
}
