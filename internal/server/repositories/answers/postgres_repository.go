package answers

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

func (r *PostgresRepository) Create(ctx context.Context, a *models.Answer) (*models.Answer, error) {
	query :=
		`INSERT INTO answers (id, content, question_id, user_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query, a.ID, a.Content, a.QuestionID, a.OwnerUserID).Scan(&a.CreatedAt)
	if err != nil {
		if dbx.PgCode(err) == dbx.CodeForeignKeyViolation {
			return nil, common.ErrorNotFound
		}
		return nil, dbx.WrapError(err)
	}

	return a, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Answer, error) {
	query := `SELECT id, content, question_id, user_id, created_at FROM answers WHERE id = $1`

	a := &models.Answer{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&a.ID, &a.Content, &a.QuestionID, &a.OwnerUserID, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, dbx.WrapError(err)
	}

	return a, nil
}

func (r *PostgresRepository) ListByQuestion(ctx context.Context, questionID string) ([]*models.Answer, error) {
	query :=
		`SELECT id, content, question_id, user_id, created_at FROM answers
		 WHERE question_id = $1 ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, questionID)
	if err != nil {
		return nil, dbx.WrapError(err)
	}
	defer rows.Close()

	result := make([]*models.Answer, 0)
	for rows.Next() {
		a := &models.Answer{}
		if err := rows.Scan(&a.ID, &a.Content, &a.QuestionID, &a.OwnerUserID, &a.CreatedAt); err != nil {
			return nil, dbx.WrapError(err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, dbx.WrapError(err)
	}

	return result, nil
}

func (r *PostgresRepository) UpdateContent(ctx context.Context, id string, content string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE answers SET content = $2 WHERE id = $1`, id, content)
	return affectedOne(res, err)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM answers WHERE id = $1`, id)
	return affectedOne(res, err)
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
