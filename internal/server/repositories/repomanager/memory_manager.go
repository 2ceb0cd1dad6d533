package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"sync"

	"github.com/dmitrijs2005/gopherflow/internal/dbx"
	"github.com/dmitrijs2005/gopherflow/internal/server/models"
	"github.com/dmitrijs2005/gopherflow/internal/server/repositories/answers"
	"github.com/dmitrijs2005/gopherflow/internal/server/repositories/questions"
	"github.com/dmitrijs2005/gopherflow/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/gopherflow/internal/server/repositories/users"
)

var errNoSQL = errors.New("in-memory storage has no SQL connection")

// memoryConn is the DBTX handed out by InMemoryRepositoryManager. The
// in-memory repositories never use it.
type memoryConn struct{}

func (memoryConn) ExecContext(context.Context, string, ...any) (sql.Result, error) {
	return nil, errNoSQL
}

func (memoryConn) QueryContext(context.Context, string, ...any) (*sql.Rows, error) {
	return nil, errNoSQL
}

// QueryRowContext panics with errNoSQL; database/sql has no way to build a
// *sql.Row that carries an error.
func (memoryConn) QueryRowContext(context.Context, string, ...any) *sql.Row {
	panic(errNoSQL)
}

// InMemoryRepositoryManager keeps all data in process memory. WithTx runs
// callbacks one at a time, which makes check-then-write sequences atomic
// with respect to each other. Writes are not rolled back on error.
type InMemoryRepositoryManager struct {
	txMu sync.Mutex

	users     *users.MemoryRepository
	sessions  sessions.Repository
	questions *questions.MemoryRepository
	answers   *answers.MemoryRepository
}

func NewInMemoryRepositoryManager(opts ...Option) *InMemoryRepositoryManager {
	o := buildOptions(opts)

	m := &InMemoryRepositoryManager{
		users:     users.NewMemoryRepository(),
		questions: questions.NewMemoryRepository(),
	}
	m.answers = answers.NewMemoryRepository(func(ctx context.Context, id string) bool {
		_, err := m.questions.GetByID(ctx, id)
		return err == nil
	})

	memSessions := sessions.NewMemoryRepository()
	m.sessions = memSessions
	if rs := o.redisSessions(); rs != nil {
		m.sessions = rs
	}

	// mirror the ON DELETE CASCADE rules of the SQL schema
	m.users.OnDelete(func(userID string) {
		memSessions.DeleteByUser(userID)
		m.questions.DeleteByOwner(context.Background(), userID)
		m.answers.DeleteWhere(func(a *models.Answer) bool { return a.OwnerUserID == userID })
	})
	m.questions.OnDelete(func(questionID string) {
		m.answers.DeleteWhere(func(a *models.Answer) bool { return a.QuestionID == questionID })
	})

	return m
}

func (m *InMemoryRepositoryManager) RunMigrations(context.Context) error {
	return nil
}

func (m *InMemoryRepositoryManager) Conn() dbx.DBTX {
	return memoryConn{}
}

func (m *InMemoryRepositoryManager) WithTx(ctx context.Context, fn dbx.TxFunc) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()
	return fn(ctx, memoryConn{})
}

func (m *InMemoryRepositoryManager) Users(dbx.DBTX) users.Repository {
	return m.users
}

func (m *InMemoryRepositoryManager) Sessions(dbx.DBTX) sessions.Repository {
	return m.sessions
}

func (m *InMemoryRepositoryManager) Questions(dbx.DBTX) questions.Repository {
	return m.questions
}

func (m *InMemoryRepositoryManager) Answers(dbx.DBTX) answers.Repository {
	return m.answers
}

func (m *InMemoryRepositoryManager) Close() error {
	return nil
}
