// Package rest exposes the services over HTTP using gin.
package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gopherflow/internal/logging"
	"github.com/dmitrijs2005/gopherflow/internal/server/models"
	"github.com/gin-gonic/gin"
)

type AccountService interface {
	Register(ctx context.Context, profile models.Profile, password string) (*models.User, error)
	SignIn(ctx context.Context, userName, password string) (*models.Session, error)
	SignOut(ctx context.Context, token string) (*models.Session, error)
}

type ProfileService interface {
	Get(ctx context.Context, token, userID string) (*models.User, error)
}

type AdminService interface {
	DeleteUser(ctx context.Context, token, userID string) error
}

type QuestionService interface {
	Create(ctx context.Context, token, content string) (*models.Question, error)
	List(ctx context.Context, token string) ([]*models.Question, error)
	ListByUser(ctx context.Context, token, userID string) ([]*models.Question, error)
	Edit(ctx context.Context, token, questionID, content string) (*models.Question, error)
	Delete(ctx context.Context, token, questionID string) error
}

type AnswerService interface {
	Create(ctx context.Context, token, questionID, content string) (*models.Answer, error)
	Edit(ctx context.Context, token, answerID, content string) (*models.Answer, error)
	Delete(ctx context.Context, token, answerID string) error
	ListByQuestion(ctx context.Context, token, questionID string) ([]*models.Answer, error)
}

// Services groups the handlers' dependencies.
type Services struct {
	Accounts  AccountService
	Profiles  ProfileService
	Admin     AdminService
	Questions QuestionService
	Answers   AnswerService
}

type Server struct {
	address         string
	shutdownTimeout time.Duration
	logger          logging.Logger
	services        Services
	engine          *gin.Engine
}

func NewServer(address string, shutdownTimeout time.Duration, l logging.Logger, svc Services) *Server {
	s := &Server{
		address:         address,
		shutdownTimeout: shutdownTimeout,
		logger:          l.With("module", "http_server"),
		services:        svc,
	}
	s.engine = s.newRouter()
	return s
}

// Handler returns the routed gin engine.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then drains in-flight requests for at
// most the shutdown timeout.
func (s *Server) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())
		errCh <- srv.Serve(listen)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
