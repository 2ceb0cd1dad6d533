package dbx

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gopherflow/internal/common"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes translated by repositories.
const (
	CodeUniqueViolation           = "23505"
	CodeForeignKeyViolation       = "23503"
	CodeInvalidTextRepresentation = "22P02"
)

// PgCode returns the SQLSTATE carried by err, or "" if err is not a
// PostgreSQL error.
func PgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// WrapError wraps err as a "db error". A key PostgreSQL cannot parse into the
// column type (22P02, e.g. "abc" for a UUID) matches no row, so it is
// reported as common.ErrorNotFound.
func WrapError(err error) error {
	if PgCode(err) == CodeInvalidTextRepresentation {
		return common.ErrorNotFound
	}
	return fmt.Errorf("db error: %w", err)
}
