package questions

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/gopherflow/internal/common"
	"github.com/dmitrijs2005/gopherflow/internal/server/models"
)

type MemoryRepository struct {
	mu        sync.RWMutex
	questions map[string]models.Question
	onDelete  []func(questionID string)
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{questions: make(map[string]models.Question)}
}

// OnDelete registers fn to run after a question is removed.
func (r *MemoryRepository) OnDelete(fn func(questionID string)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onDelete = append(r.onDelete, fn)
}

func (r *MemoryRepository) Create(_ context.Context, q *models.Question) (*models.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.questions[q.ID]; ok {
		return nil, common.ErrorConflict
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now()
	}
	r.questions[q.ID] = *q
	return q, nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*models.Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q, ok := r.questions[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &q, nil
}

func (r *MemoryRepository) List(_ context.Context) ([]*models.Question, error) {
	return r.filter(func(*models.Question) bool { return true }), nil
}

func (r *MemoryRepository) ListByOwner(_ context.Context, userID string) ([]*models.Question, error) {
	return r.filter(func(q *models.Question) bool { return q.OwnerUserID == userID }), nil
}

func (r *MemoryRepository) UpdateContent(_ context.Context, id string, content string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	q, ok := r.questions[id]
	if !ok {
		return common.ErrorNotFound
	}
	q.Content = content
	r.questions[id] = q
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	if _, ok := r.questions[id]; !ok {
		r.mu.Unlock()
		return common.ErrorNotFound
	}
	delete(r.questions, id)
	hooks := append([]func(string){}, r.onDelete...)
	r.mu.Unlock()

	for _, fn := range hooks {
		fn(id)
	}
	return nil
}

// DeleteByOwner removes every question of userID, running delete hooks for each.
func (r *MemoryRepository) DeleteByOwner(ctx context.Context, userID string) {
	for _, q := range r.filter(func(q *models.Question) bool { return q.OwnerUserID == userID }) {
		_ = r.Delete(ctx, q.ID)
	}
}

func (r *MemoryRepository) filter(keep func(*models.Question) bool) []*models.Question {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.Question, 0)
	for _, q := range r.questions {
		q := q
		if keep(&q) {
			result = append(result, &q)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result
}
