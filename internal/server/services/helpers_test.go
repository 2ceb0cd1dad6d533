package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/gopherflow/internal/cryptox"
	"github.com/dmitrijs2005/gopherflow/internal/logging"
	"github.com/dmitrijs2005/gopherflow/internal/server/models"
	"github.com/dmitrijs2005/gopherflow/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

type testEnv struct {
	m         repomanager.RepositoryManager
	now       time.Time
	sessions  *SessionManager
	guard     *Guard
	accounts  *AccountService
	profiles  *ProfileService
	admin     *AdminService
	questions *QuestionService
	answers   *AnswerService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWith(t, repomanager.NewInMemoryRepositoryManager())
}

func newTestEnvWith(t *testing.T, m repomanager.RepositoryManager) *testEnv {
	t.Helper()
	log := logging.Nop()

	e := &testEnv{m: m, now: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)}
	e.sessions = NewSessionManager(m, testSecret, log)
	e.sessions.now = func() time.Time { return e.now }
	e.guard = NewGuard(e.sessions, m, log)
	e.accounts = NewAccountService(m, cryptox.NewHasherWithParams(1, 8*1024, 1), e.sessions, log)
	e.profiles = NewProfileService(m, e.guard, log)
	e.admin = NewAdminService(m, e.guard, log)
	e.questions = NewQuestionService(m, e.guard, log)
	e.answers = NewAnswerService(m, e.guard, log)
	return e
}

func profileOf(name string) models.Profile {
	return models.Profile{
		FirstName: name,
		LastName:  "Tester",
		UserName:  name,
		Email:     name + "@example.com",
		Country:   "NL",
	}
}

// signUpAndIn registers name and returns its user id and a fresh token.
func (e *testEnv) signUpAndIn(t *testing.T, name string) (string, string) {
	t.Helper()
	ctx := context.Background()

	u, err := e.accounts.Register(ctx, profileOf(name), name+"-pass")
	require.NoError(t, err)

	s, err := e.accounts.SignIn(ctx, name, name+"-pass")
	require.NoError(t, err)
	return u.ID, s.Token
}

// signUpAdmin registers name and promotes it to admin directly in the store.
func (e *testEnv) signUpAdmin(t *testing.T, name string) (string, string) {
	t.Helper()
	ctx := context.Background()

	hasher := cryptox.NewHasherWithParams(1, 8*1024, 1)
	salt := hasher.GenerateSalt()
	u := &models.User{
		ID:           name + "-id",
		Profile:      profileOf(name),
		Role:         models.RoleAdmin,
		Salt:         salt,
		PasswordHash: hasher.Hash(name+"-pass", salt),
	}
	_, err := e.m.Users(e.m.Conn()).Create(ctx, u)
	require.NoError(t, err)

	s, err := e.accounts.SignIn(ctx, name, name+"-pass")
	require.NoError(t, err)
	return u.ID, s.Token
}
