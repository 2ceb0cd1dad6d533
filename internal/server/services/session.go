// Package services contains the server-side business logic: session
// lifecycle, the authorization guard every protected operation goes through,
// account management and the question/answer operations built on top.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gopherflow/internal/common"
	"github.com/dmitrijs2005/gopherflow/internal/logging"
	"github.com/dmitrijs2005/gopherflow/internal/server/auth"
	"github.com/dmitrijs2005/gopherflow/internal/server/models"
	"github.com/dmitrijs2005/gopherflow/internal/server/repositories/repomanager"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrAlreadyLoggedOut = errors.New("session already logged out")
)

// SessionManager issues, looks up and invalidates sessions.
type SessionManager struct {
	repomanager repomanager.RepositoryManager
	secretKey   []byte
	log         logging.Logger
	now         func() time.Time
}

func NewSessionManager(m repomanager.RepositoryManager, secretKey []byte, log logging.Logger) *SessionManager {
	return &SessionManager{
		repomanager: m,
		secretKey:   secretKey,
		log:         log,
		now:         time.Now,
	}
}

// Issue starts a session for userID valid for models.SessionLifetime.
func (s *SessionManager) Issue(ctx context.Context, userID string) (*models.Session, error) {
	issuedAt := s.clock()
	expiresAt := issuedAt.Add(models.SessionLifetime)

	token, err := auth.GenerateToken(userID, s.secretKey, issuedAt, expiresAt)
	if err != nil {
		return nil, err
	}

	session := &models.Session{
		Token:     token,
		UserID:    userID,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}

	if err := s.repomanager.Sessions(s.repomanager.Conn()).Create(ctx, session); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	s.log.Debug(ctx, "session issued", "user_id", userID, "expires_at", expiresAt)
	return session, nil
}

// Resolve returns the session behind token, live or not. Tokens that were
// not signed by this server are reported as ErrSessionNotFound without a
// store lookup.
func (s *SessionManager) Resolve(ctx context.Context, token string) (*models.Session, error) {
	if _, err := auth.ParseToken(token, s.secretKey); err != nil {
		return nil, ErrSessionNotFound
	}

	session, err := s.repomanager.Sessions(s.repomanager.Conn()).FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("find session: %w", err)
	}

	return session, nil
}

// Invalidate moves the session from active to logged out. Only the first of
// several concurrent calls succeeds; the others get ErrAlreadyLoggedOut.
func (s *SessionManager) Invalidate(ctx context.Context, token string) (*models.Session, error) {
	session, err := s.repomanager.Sessions(s.repomanager.Conn()).MarkLoggedOut(ctx, token, s.clock())
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			return nil, ErrSessionNotFound
		case errors.Is(err, common.ErrorConflict):
			return nil, ErrAlreadyLoggedOut
		}
		return nil, fmt.Errorf("logout session: %w", err)
	}

	return session, nil
}

// clock truncates to microseconds, the resolution PostgreSQL stores.
func (s *SessionManager) clock() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}
