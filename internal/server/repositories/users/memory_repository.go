package users

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/gopherflow/internal/common"
	"github.com/dmitrijs2005/gopherflow/internal/server/models"
)

// MemoryRepository keeps users in process memory. It is safe for concurrent
// use and enforces the same uniqueness rules as the PostgreSQL schema.
type MemoryRepository struct {
	mu         sync.RWMutex
	byID       map[string]models.User
	byUserName map[string]string
	byEmail    map[string]string
	onDelete   []func(userID string)
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:       make(map[string]models.User),
		byUserName: make(map[string]string),
		byEmail:    make(map[string]string),
	}
}

// OnDelete registers fn to run after a user is removed; it stands in for the
// ON DELETE CASCADE foreign keys of the SQL schema.
func (r *MemoryRepository) OnDelete(fn func(userID string)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onDelete = append(r.onDelete, fn)
}

func (r *MemoryRepository) Create(_ context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byUserName[user.UserName]; ok {
		return nil, common.ErrorUserNameExists
	}
	if _, ok := r.byEmail[user.Email]; ok {
		return nil, common.ErrorEmailExists
	}

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	r.byID[user.ID] = *user
	r.byUserName[user.UserName] = user.ID
	r.byEmail[user.Email] = user.ID

	return user, nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.get(id)
}

func (r *MemoryRepository) GetUserByLogin(_ context.Context, userName string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.get(r.byUserName[userName])
}

func (r *MemoryRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.get(r.byEmail[email])
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	u, ok := r.byID[id]
	if !ok {
		r.mu.Unlock()
		return common.ErrorNotFound
	}
	delete(r.byID, id)
	delete(r.byUserName, u.UserName)
	delete(r.byEmail, u.Email)
	hooks := append([]func(string){}, r.onDelete...)
	r.mu.Unlock()

	for _, fn := range hooks {
		fn(id)
	}
	return nil
}

func (r *MemoryRepository) get(id string) (*models.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}
