package sessions

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/gopherflow/internal/common"
	"github.com/dmitrijs2005/gopherflow/internal/server/models"
)

type MemoryRepository struct {
	mu       sync.Mutex
	sessions map[string]models.Session
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{sessions: make(map[string]models.Session)}
}

func (r *MemoryRepository) Create(_ context.Context, s *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[s.Token]; ok {
		return common.ErrorConflict
	}
	r.sessions[s.Token] = *s
	return nil
}

func (r *MemoryRepository) FindByToken(_ context.Context, token string) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &s, nil
}

func (r *MemoryRepository) MarkLoggedOut(_ context.Context, token string, at time.Time) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if s.LoggedOut() {
		return nil, common.ErrorConflict
	}
	s.LoggedOutAt = &at
	r.sessions[token] = s
	return &s, nil
}

// DeleteByUser drops every session of userID.
func (r *MemoryRepository) DeleteByUser(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for token, s := range r.sessions {
		if s.UserID == userID {
			delete(r.sessions, token)
		}
	}
}
