package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gopherflow/internal/common"
	"github.com/dmitrijs2005/gopherflow/internal/dbx"
	"github.com/dmitrijs2005/gopherflow/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, s *models.Session) error {
	query :=
		`INSERT INTO user_sessions (token, user_id, issued_at, expires_at)
		 VALUES ($1, $2, $3, $4)`

	_, err := r.db.ExecContext(ctx, query, s.Token, s.UserID, s.IssuedAt, s.ExpiresAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) FindByToken(ctx context.Context, token string) (*models.Session, error) {
	query :=
		`SELECT token, user_id, issued_at, expires_at, logged_out_at
		 FROM user_sessions WHERE token = $1`

	return scanSession(r.db.QueryRowContext(ctx, query, token))
}

func (r *PostgresRepository) MarkLoggedOut(ctx context.Context, token string, at time.Time) (*models.Session, error) {
	query :=
		`UPDATE user_sessions SET logged_out_at = $2
		 WHERE token = $1 AND logged_out_at IS NULL
		 RETURNING token, user_id, issued_at, expires_at, logged_out_at`

	s, err := scanSession(r.db.QueryRowContext(ctx, query, token, at))
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}

	// nothing updated: either the token is unknown or someone signed it out first
	if _, err := r.FindByToken(ctx, token); err != nil {
		return nil, err
	}
	return nil, common.ErrorConflict
}

func scanSession(row *sql.Row) (*models.Session, error) {
	var (
		s         models.Session
		loggedOut sql.NullTime
	)
	err := row.Scan(&s.Token, &s.UserID, &s.IssuedAt, &s.ExpiresAt, &loggedOut)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if loggedOut.Valid {
		t := loggedOut.Time
		s.LoggedOutAt = &t
	}
	return &s, nil
}
