// Package repomanager hands out repositories bound to a database handle and
// owns the lifecycle of the storage backend.
package repomanager

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gopherflow/internal/dbx"
	"github.com/dmitrijs2005/gopherflow/internal/server/repositories/answers"
	"github.com/dmitrijs2005/gopherflow/internal/server/repositories/questions"
	"github.com/dmitrijs2005/gopherflow/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/gopherflow/internal/server/repositories/users"
	"github.com/redis/go-redis/v9"
)

// RepositoryManager builds repositories over either the shared connection
// (Conn) or the transactional handle passed to a WithTx callback.
type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Conn() dbx.DBTX
	WithTx(ctx context.Context, fn dbx.TxFunc) error
	Users(db dbx.DBTX) users.Repository
	Sessions(db dbx.DBTX) sessions.Repository
	Questions(db dbx.DBTX) questions.Repository
	Answers(db dbx.DBTX) answers.Repository
	Close() error
}

type options struct {
	redis     redis.UniversalClient
	retention time.Duration
}

type Option func(*options)

// WithRedisSessions stores sessions in Redis instead of the primary backend.
// Session keys are evicted retention after the session expires.
func WithRedisSessions(rdb redis.UniversalClient, retention time.Duration) Option {
	return func(o *options) {
		o.redis = rdb
		o.retention = retention
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

func (o options) redisSessions() sessions.Repository {
	if o.redis == nil {
		return nil
	}
	return sessions.NewRedisRepository(o.redis, o.retention)
}
