package sessions

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/gopherflow/internal/common"
	"github.com/dmitrijs2005/gopherflow/internal/server/models"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "gopherflow:session:"

	fieldUserID    = "user_id"
	fieldIssuedAt  = "issued_at"
	fieldExpiresAt = "expires_at"
	fieldLoggedOut = "logged_out_at"
)

const (
	logoutStatusNotFound int64 = 0
	logoutStatusAlready  int64 = 1
	logoutStatusDone     int64 = 2
)

const createSessionScript = `
if redis.call("EXISTS", KEYS[1]) == 1 then
  return 0
end
redis.call("HSET", KEYS[1], "user_id", ARGV[1], "issued_at", ARGV[2], "expires_at", ARGV[3])
redis.call("EXPIREAT", KEYS[1], ARGV[4])
return 1
`

const logoutSessionScript = `
if redis.call("EXISTS", KEYS[1]) == 0 then
  return 0
end
if redis.call("HEXISTS", KEYS[1], "logged_out_at") == 1 then
  return 1
end
redis.call("HSET", KEYS[1], "logged_out_at", ARGV[1])
return 2
`

var (
	createSessionLua = redis.NewScript(createSessionScript)
	logoutSessionLua = redis.NewScript(logoutSessionScript)
)

// RedisRepository keeps each session in a hash. Keys expire retention after
// the session itself, so signed-out and expired sessions stay visible long
// enough to be reported as such.
type RedisRepository struct {
	rdb       redis.UniversalClient
	retention time.Duration
}

func NewRedisRepository(rdb redis.UniversalClient, retention time.Duration) *RedisRepository {
	return &RedisRepository{rdb: rdb, retention: retention}
}

func (r *RedisRepository) Create(ctx context.Context, s *models.Session) error {
	evictAt := s.ExpiresAt.Add(r.retention)

	created, err := createSessionLua.Run(ctx, r.rdb, []string{sessionKey(s.Token)},
		s.UserID,
		formatTime(s.IssuedAt),
		formatTime(s.ExpiresAt),
		evictAt.Unix(),
	).Int64()
	if err != nil {
		return fmt.Errorf("redis error: %w", err)
	}
	if created == 0 {
		return common.ErrorConflict
	}

	return nil
}

func (r *RedisRepository) FindByToken(ctx context.Context, token string) (*models.Session, error) {
	fields, err := r.rdb.HGetAll(ctx, sessionKey(token)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis error: %w", err)
	}
	if len(fields) == 0 {
		return nil, common.ErrorNotFound
	}

	return decodeSession(token, fields)
}

func (r *RedisRepository) MarkLoggedOut(ctx context.Context, token string, at time.Time) (*models.Session, error) {
	status, err := logoutSessionLua.Run(ctx, r.rdb, []string{sessionKey(token)}, formatTime(at)).Int64()
	if err != nil {
		return nil, fmt.Errorf("redis error: %w", err)
	}

	switch status {
	case logoutStatusNotFound:
		return nil, common.ErrorNotFound
	case logoutStatusAlready:
		return nil, common.ErrorConflict
	case logoutStatusDone:
		return r.FindByToken(ctx, token)
	default:
		return nil, fmt.Errorf("redis error: unexpected logout status %d", status)
	}
}

func sessionKey(token string) string {
	return keyPrefix + token
}

func formatTime(t time.Time) string {
	return strconv.FormatInt(t.UnixNano(), 10)
}

func parseTime(v string) (time.Time, error) {
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(0, n), nil
}

var errCorruptSession = errors.New("corrupt session record")

func decodeSession(token string, fields map[string]string) (*models.Session, error) {
	s := &models.Session{Token: token, UserID: fields[fieldUserID]}
	if s.UserID == "" {
		return nil, errCorruptSession
	}

	var err error
	if s.IssuedAt, err = parseTime(fields[fieldIssuedAt]); err != nil {
		return nil, fmt.Errorf("%w: %v", errCorruptSession, err)
	}
	if s.ExpiresAt, err = parseTime(fields[fieldExpiresAt]); err != nil {
		return nil, fmt.Errorf("%w: %v", errCorruptSession, err)
	}
	if v, ok := fields[fieldLoggedOut]; ok {
		at, err := parseTime(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errCorruptSession, err)
		}
		s.LoggedOutAt = &at
	}

	return s, nil
}
