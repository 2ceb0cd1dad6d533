package users

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gopherflow/internal/common"
	"github.com/dmitrijs2005/gopherflow/internal/dbx"
	"github.com/dmitrijs2005/gopherflow/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	insertUserQuery = `(?s)^INSERT\s+INTO\s+users\s*\(id,\s*username,\s*email,.*password_hash\)\s*VALUES\s*\(\$1,.*\$12\)\s*RETURNING\s+created_at\s*$`
	selectByLogin   = `(?s)^SELECT\s+id,\s*username,.*FROM\s+users\s+WHERE\s+username\s*=\s*\$1\s*$`
	selectByID      = `(?s)^SELECT\s+id,\s*username,.*FROM\s+users\s+WHERE\s+id\s*=\s*\$1\s*$`
	selectByEmail   = `(?s)^SELECT\s+id,\s*username,.*FROM\s+users\s+WHERE\s+email\s*=\s*\$1\s*$`
	deleteUserQuery = `(?s)^DELETE\s+FROM\s+users\s+WHERE\s+id\s*=\s*\$1\s*$`
)

var userColumns = []string{
	"id", "username", "email", "first_name", "last_name", "country", "about_me", "dob",
	"contact_number", "role", "salt", "password_hash", "created_at",
}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func alice() *models.User {
	return &models.User{
		ID: "u-1",
		Profile: models.Profile{
			FirstName: "Alice", LastName: "Smith", UserName: "alice", Email: "a@x.io",
			Country: "NL", AboutMe: "hi", DOB: "1990-01-01", ContactNumber: "123",
		},
		Role:         models.RoleUser,
		Salt:         "salt",
		PasswordHash: "hash",
	}
}

func userArgs(u *models.User) []driver.Value {
	return []driver.Value{
		u.ID, u.UserName, u.Email, u.FirstName, u.LastName, u.Country, u.AboutMe,
		u.DOB, u.ContactNumber, u.Role, u.Salt, u.PasswordHash,
	}
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	u := alice()
	mock.ExpectQuery(insertUserQuery).
		WithArgs(userArgs(u)...).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))

	got, err := repo.Create(context.Background(), u)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "u-1" || !got.CreatedAt.Equal(created) {
		t.Fatalf("unexpected user: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreate_UniqueViolation(t *testing.T) {
	cases := []struct {
		constraint string
		want       error
	}{
		{usernameConstraint, common.ErrorUserNameExists},
		{emailConstraint, common.ErrorEmailExists},
	}

	for _, tc := range cases {
		t.Run(tc.constraint, func(t *testing.T) {
			repo, mock, db := newRepoWithMock(t)
			defer db.Close()

			u := alice()
			mock.ExpectQuery(insertUserQuery).
				WithArgs(userArgs(u)...).
				WillReturnError(&pgconn.PgError{Code: dbx.CodeUniqueViolation, ConstraintName: tc.constraint})

			_, err := repo.Create(context.Background(), u)
			if !errors.Is(err, tc.want) {
				t.Fatalf("want %v, got %v", tc.want, err)
			}
		})
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	u := alice()
	mock.ExpectQuery(insertUserQuery).
		WithArgs(userArgs(u)...).
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), u)
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func userRow(u *models.User) *sqlmock.Rows {
	return sqlmock.NewRows(userColumns).AddRow(
		u.ID, u.UserName, u.Email, u.FirstName, u.LastName, u.Country, u.AboutMe, u.DOB,
		u.ContactNumber, u.Role, u.Salt, u.PasswordHash, time.Now())
}

func TestGetUserByLogin_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectByLogin).
		WithArgs("alice").
		WillReturnRows(userRow(alice()))

	got, err := repo.GetUserByLogin(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetUserByLogin error: %v", err)
	}
	if got.ID != "u-1" || got.UserName != "alice" || got.Email != "a@x.io" || got.PasswordHash != "hash" {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestGetUserByLogin_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectByLogin).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetUserByLogin(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestGetUserByLogin_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectByLogin).
		WithArgs("alice").
		WillReturnError(errors.New("db err"))

	_, err := repo.GetUserByLogin(context.Background(), "alice")
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGetByID_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectByID).
		WithArgs("u-1").
		WillReturnRows(userRow(alice()))

	got, err := repo.GetByID(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.Role != models.RoleUser {
		t.Fatalf("unexpected role: %q", got.Role)
	}
}

func TestGetByEmail_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectByEmail).
		WithArgs("nobody@x.io").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "nobody@x.io")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectExec(deleteUserQuery).WithArgs("u-1").WillReturnResult(sqlmock.NewResult(0, 1))
		if err := repo.Delete(context.Background(), "u-1"); err != nil {
			t.Fatalf("Delete error: %v", err)
		}
	})

	t.Run("missing", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectExec(deleteUserQuery).WithArgs("u-2").WillReturnResult(sqlmock.NewResult(0, 0))
		if err := repo.Delete(context.Background(), "u-2"); !errors.Is(err, common.ErrorNotFound) {
			t.Fatalf("want common.ErrorNotFound, got %v", err)
		}
	})

	t.Run("db error", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectExec(deleteUserQuery).WithArgs("u-3").WillReturnError(errors.New("boom"))
		err := repo.Delete(context.Background(), "u-3")
		if err == nil || !regexp.MustCompile(`db error: .*boom`).MatchString(err.Error()) {
			t.Fatalf("expected wrapped db error, got %v", err)
		}
	})
}

func TestCreate_UnknownConstraintIsDBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	u := alice()
	mock.ExpectQuery(insertUserQuery).
		WithArgs(userArgs(u)...).
		WillReturnError(&pgconn.PgError{Code: dbx.CodeUniqueViolation, ConstraintName: "users_pkey"})

	_, err := repo.Create(context.Background(), u)
	if errors.Is(err, common.ErrorUserNameExists) || errors.Is(err, common.ErrorEmailExists) {
		t.Fatalf("unexpected duplicate mapping: %v", err)
	}
	if err == nil || !regexp.MustCompile(`^db error: `).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestMalformedID_NotFound(t *testing.T) {
	malformed := &pgconn.PgError{Code: dbx.CodeInvalidTextRepresentation, Message: `invalid input syntax for type uuid: "abc"`}

	t.Run("get", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectQuery(selectByID).WithArgs("abc").WillReturnError(malformed)
		if _, err := repo.GetByID(context.Background(), "abc"); !errors.Is(err, common.ErrorNotFound) {
			t.Fatalf("want common.ErrorNotFound, got %v", err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectExec(deleteUserQuery).WithArgs("abc").WillReturnError(malformed)
		if err := repo.Delete(context.Background(), "abc"); !errors.Is(err, common.ErrorNotFound) {
			t.Fatalf("want common.ErrorNotFound, got %v", err)
		}
	})
}
