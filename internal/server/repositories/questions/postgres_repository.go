package questions

import (
	"context"
	"database/sql"
	"errors"

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

func (r *PostgresRepository) Create(ctx context.Context, q *models.Question) (*models.Question, error) {
	query :=
		`INSERT INTO questions (id, content, user_id)
		 VALUES ($1, $2, $3)
		 RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query, q.ID, q.Content, q.OwnerUserID).Scan(&q.CreatedAt)
	if err != nil {
		return nil, dbx.WrapError(err)
	}

	return q, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Question, error) {
	query := `SELECT id, content, user_id, created_at FROM questions WHERE id = $1`

	q := &models.Question{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&q.ID, &q.Content, &q.OwnerUserID, &q.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, dbx.WrapError(err)
	}

	return q, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Question, error) {
	query := `SELECT id, content, user_id, created_at FROM questions ORDER BY created_at, id`
	return r.list(ctx, query)
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, userID string) ([]*models.Question, error) {
	query := `SELECT id, content, user_id, created_at FROM questions WHERE user_id = $1 ORDER BY created_at, id`
	return r.list(ctx, query, userID)
}

func (r *PostgresRepository) UpdateContent(ctx context.Context, id string, content string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE questions SET content = $2 WHERE id = $1`, id, content)
	return affectedOne(res, err)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM questions WHERE id = $1`, id)
	return affectedOne(res, err)
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.Question, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dbx.WrapError(err)
	}
	defer rows.Close()

	result := make([]*models.Question, 0)
	for rows.Next() {
		q := &models.Question{}
		if err := rows.Scan(&q.ID, &q.Content, &q.OwnerUserID, &q.CreatedAt); err != nil {
			return nil, dbx.WrapError(err)
		}
		result = append(result, q)
	}
	if err := rows.Err(); err != nil {
		return nil, dbx.WrapError(err)
	}

	return result, nil
}

func affectedOne(res sql.Result, err error) error {
	if err != nil {
		return dbx.WrapError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return dbx.WrapError(err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
