package memory

import (
	"context"
	"sync"

	"chess-fen/internal/auth/domain/model"
)

// UserRepository keeps users in process memory, keyed by normalized email.
type UserRepository struct {
	mu      sync.RWMutex
	byEmail map[string]*model.User
	byID    map[string]*model.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byEmail: make(map[string]*model.User),
		byID:    make(map[string]*model.User),
	}
}

func (r *UserRepository) CreateUser(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := model.NormalizeEmail(user.Email)
	if _, exists := r.byEmail[email]; exists {
		return model.ErrEmailTaken
	}
	stored := *user
	stored.Email = email
	r.byEmail[email] = &stored
	r.byID[stored.ID] = &stored
	return nil
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byEmail[model.NormalizeEmail(email)]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (r *UserRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}
