// Package answers stores answers attached to questions.
package answers

import (
	"context"

	"github.com/dmitrijs2005/gopherflow/internal/server/models"
)

type Repository interface {
	// Create returns common.ErrorNotFound when the question does not exist.
	Create(ctx context.Context, a *models.Answer) (*models.Answer, error)
	GetByID(ctx context.Context, id string) (*models.Answer, error)
	ListByQuestion(ctx context.Context, questionID string) ([]*models.Answer, error)
	UpdateContent(ctx context.Context, id string, content string) error
	Delete(ctx context.Context, id string) error
}
