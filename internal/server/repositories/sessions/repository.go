// Package sessions declares the session store contract. Sessions are kept in
// PostgreSQL, in Redis, or in process memory.
package sessions

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gopherflow/internal/server/models"
)

// Repository stores sessions keyed by their opaque token.
type Repository interface {
	// Create persists a freshly issued session. Tokens are unique.
	Create(ctx context.Context, s *models.Session) error

	// FindByToken returns common.ErrorNotFound when no session has the token.
	FindByToken(ctx context.Context, token string) (*models.Session, error)

	// MarkLoggedOut sets LoggedOutAt to at if it is still unset and returns
	// the updated session. The check and the write are atomic: of several
	// concurrent callers exactly one succeeds, the rest get
	// common.ErrorConflict. An unknown token yields common.ErrorNotFound.
	MarkLoggedOut(ctx context.Context, token string, at time.Time) (*models.Session, error)
}
