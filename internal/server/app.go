// Package server wires configuration, storage, services and the HTTP API
// together and runs them until the process is asked to stop.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/gopherflow/internal/cryptox"
	"github.com/dmitrijs2005/gopherflow/internal/logging"
	"github.com/dmitrijs2005/gopherflow/internal/server/config"
	"github.com/dmitrijs2005/gopherflow/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gopherflow/internal/server/rest"
	"github.com/dmitrijs2005/gopherflow/internal/server/services"
	"github.com/redis/go-redis/v9"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	manager  repomanager.RepositoryManager
	redis    *redis.Client
	services rest.Services
}

// NewApp opens the stores named by c and builds the services on top of them.
// With an empty DatabaseDSN everything is kept in memory.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	app := &App{config: c, logger: logger}

	var opts []repomanager.Option
	if c.RedisAddr != "" {
		app.redis = redis.NewClient(&redis.Options{
			Addr:     c.RedisAddr,
			Password: c.RedisPassword,
			DB:       c.RedisDB,
		})
		if err := app.redis.Ping(ctx).Err(); err != nil {
			_ = app.redis.Close()
			return nil, fmt.Errorf("redis init error: %w", err)
		}
		opts = append(opts, repomanager.WithRedisSessions(app.redis, c.SessionRetention))
	}

	if c.DatabaseDSN != "" {
		m, err := repomanager.Open(ctx, c.DatabaseDSN, opts...)
		if err != nil {
			app.closeRedis()
			return nil, fmt.Errorf("db init error: %w", err)
		}
		if err := m.RunMigrations(ctx); err != nil {
			_ = m.Close()
			app.closeRedis()
			return nil, fmt.Errorf("migrations error: %w", err)
		}
		app.manager = m
	} else {
		logger.Warn(ctx, "DATABASE_DSN is empty, keeping data in memory")
		app.manager = repomanager.NewInMemoryRepositoryManager(opts...)
	}

	sessions := services.NewSessionManager(app.manager, []byte(c.SecretKey), logger)
	guard := services.NewGuard(sessions, app.manager, logger)

	app.services = rest.Services{
		Accounts:  services.NewAccountService(app.manager, cryptox.NewHasher(), sessions, logger),
		Profiles:  services.NewProfileService(app.manager, guard, logger),
		Admin:     services.NewAdminService(app.manager, guard, logger),
		Questions: services.NewQuestionService(app.manager, guard, logger),
		Answers:   services.NewAnswerService(app.manager, guard, logger),
	}

	return app, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := rest.NewServer(app.config.EndpointAddrHTTP, app.config.ShutdownTimeout, app.logger, app.services)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// releases the stores.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.close(ctx)
	app.logger.Info(ctx, "App stopped")
}

func (app *App) close(ctx context.Context) {
	if err := app.manager.Close(); err != nil {
		app.logger.Error(ctx, "closing storage", "error", err)
	}
	app.closeRedis()
}

func (app *App) closeRedis() {
	if app.redis != nil {
		_ = app.redis.Close()
	}
}
