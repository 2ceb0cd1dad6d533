package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gopherflow/internal/common"
	"github.com/dmitrijs2005/gopherflow/internal/cryptox"
	"github.com/dmitrijs2005/gopherflow/internal/dbx"
	"github.com/dmitrijs2005/gopherflow/internal/logging"
	"github.com/dmitrijs2005/gopherflow/internal/server/models"
	"github.com/dmitrijs2005/gopherflow/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// AccountService registers users and signs them in and out.
type AccountService struct {
	repomanager repomanager.RepositoryManager
	hasher      *cryptox.Hasher
	sessions    *SessionManager
	log         logging.Logger
}

func NewAccountService(m repomanager.RepositoryManager, hasher *cryptox.Hasher, sessions *SessionManager, log logging.Logger) *AccountService {
	return &AccountService{
		repomanager: m,
		hasher:      hasher,
		sessions:    sessions,
		log:         log,
	}
}

func usernameTaken() error {
	return common.Fail(common.ErrUsernameTaken, "Try any other Username, this Username has already been taken")
}

func emailTaken() error {
	return common.Fail(common.ErrEmailTaken, "This user has already been registered, try with any other emailId")
}

// Register creates a user with role "user". The uniqueness checks and the
// insert share one transaction; the store's unique constraints catch
// whatever races past the checks.
func (s *AccountService) Register(ctx context.Context, profile models.Profile, password string) (*models.User, error) {
	salt := s.hasher.GenerateSalt()
	user := &models.User{
		ID:           uuid.NewString(),
		Profile:      profile,
		Role:         models.RoleUser,
		Salt:         salt,
		PasswordHash: s.hasher.Hash(password, salt),
	}

	var created *models.User
	err := s.repomanager.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		if _, err := repo.GetUserByLogin(ctx, profile.UserName); err == nil {
			return usernameTaken()
		} else if !errors.Is(err, common.ErrorNotFound) {
			return err
		}

		if _, err := repo.GetByEmail(ctx, profile.Email); err == nil {
			return emailTaken()
		} else if !errors.Is(err, common.ErrorNotFound) {
			return err
		}

		var err error
		created, err = repo.Create(ctx, user)
		return err
	})

	if err != nil {
		var failure *common.Error
		switch {
		case errors.As(err, &failure):
			s.log.Info(ctx, "signup rejected", "username", profile.UserName, "reason", failure.Message)
			return nil, err
		case errors.Is(err, common.ErrorUserNameExists):
			return nil, usernameTaken()
		case errors.Is(err, common.ErrorEmailExists):
			return nil, emailTaken()
		}
		return nil, internalError(ctx, s.log, "signup", err)
	}

	s.log.Info(ctx, "user registered", "user_id", created.ID, "username", created.UserName)
	return created, nil
}

// SignIn checks the credentials and issues a new session.
func (s *AccountService) SignIn(ctx context.Context, userName, password string) (*models.Session, error) {
	user, err := s.repomanager.Users(s.repomanager.Conn()).GetUserByLogin(ctx, userName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.Fail(common.ErrUserNotFound, "This username does not exist")
		}
		return nil, internalError(ctx, s.log, "signin", err)
	}

	if !s.hasher.Verify(password, user.Salt, user.PasswordHash) {
		s.log.Info(ctx, "signin rejected", "user_id", user.ID)
		return nil, common.Fail(common.ErrBadPassword, "Password failed")
	}

	session, err := s.sessions.Issue(ctx, user.ID)
	if err != nil {
		return nil, internalError(ctx, s.log, "issue session", err)
	}

	s.log.Info(ctx, "user signed in", "user_id", user.ID)
	return session, nil
}

// SignOut ends the session identified by token.
func (s *AccountService) SignOut(ctx context.Context, token string) (*models.Session, error) {
	if token == "" {
		return nil, common.Fail(common.ErrNoActiveSession, "Access token is missing")
	}

	session, err := s.sessions.Invalidate(ctx, token)
	if err != nil {
		switch {
		case errors.Is(err, ErrSessionNotFound):
			return nil, common.Fail(common.ErrNoActiveSession, "User is not Signed in")
		case errors.Is(err, ErrAlreadyLoggedOut):
			return nil, common.Fail(common.ErrAlreadySignedOut, "User has already signed out")
		}
		return nil, internalError(ctx, s.log, "signout", err)
	}

	s.log.Info(ctx, "user signed out", "user_id", session.UserID)
	return session, nil
}
