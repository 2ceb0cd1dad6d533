package answers

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/gopherflow/internal/common"
	"github.com/dmitrijs2005/gopherflow/internal/server/models"
)

// MemoryRepository keeps answers in memory. exists, when set, reports whether
// a question is present so Create can reject orphans like the foreign key does.
type MemoryRepository struct {
	mu      sync.RWMutex
	answers map[string]models.Answer
	exists  func(ctx context.Context, questionID string) bool
}

func NewMemoryRepository(questionExists func(ctx context.Context, questionID string) bool) *MemoryRepository {
	return &MemoryRepository{answers: make(map[string]models.Answer), exists: questionExists}
}

func (r *MemoryRepository) Create(ctx context.Context, a *models.Answer) (*models.Answer, error) {
	if r.exists != nil && !r.exists(ctx, a.QuestionID) {
		return nil, common.ErrorNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.answers[a.ID]; ok {
		return nil, common.ErrorConflict
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	r.answers[a.ID] = *a
	return a, nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*models.Answer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.answers[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &a, nil
}

func (r *MemoryRepository) ListByQuestion(_ context.Context, questionID string) ([]*models.Answer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.Answer, 0)
	for _, a := range r.answers {
		if a.QuestionID == questionID {
			a := a
			result = append(result, &a)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (r *MemoryRepository) UpdateContent(_ context.Context, id string, content string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.answers[id]
	if !ok {
		return common.ErrorNotFound
	}
	a.Content = content
	r.answers[id] = a
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.answers[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.answers, id)
	return nil
}

// DeleteWhere drops answers matching fn.
func (r *MemoryRepository) DeleteWhere(fn func(a *models.Answer) bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, a := range r.answers {
		if fn(&a) {
			delete(r.answers, id)
		}
	}
}
