// Package questions stores questions posted by users.
package questions

import (
	"context"

	"github.com/dmitrijs2005/gopherflow/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, q *models.Question) (*models.Question, error)
	GetByID(ctx context.Context, id string) (*models.Question, error)
	List(ctx context.Context) ([]*models.Question, error)
	ListByOwner(ctx context.Context, userID string) ([]*models.Question, error)
	UpdateContent(ctx context.Context, id string, content string) error
	Delete(ctx context.Context, id string) error
}
