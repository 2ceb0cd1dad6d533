package sessions

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/dmitrijs2005/gopherflow/internal/common"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisRepo(t *testing.T) (*RedisRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewRedisRepository(rdb, time.Hour), mr
}

// stores runs fn against every Repository implementation that works without
// an external server.
func stores(t *testing.T, fn func(t *testing.T, repo Repository)) {
	t.Run("memory", func(t *testing.T) { fn(t, NewMemoryRepository()) })
	t.Run("redis", func(t *testing.T) {
		repo, _ := newRedisRepo(t)
		fn(t, repo)
	})
}

func TestStore_CreateAndFind(t *testing.T) {
	stores(t, func(t *testing.T, repo Repository) {
		ctx := context.Background()
		s := testSession(time.Now())

		require.NoError(t, repo.Create(ctx, s))

		got, err := repo.FindByToken(ctx, "tok")
		require.NoError(t, err)
		assert.Equal(t, "u-1", got.UserID)
		assert.True(t, got.IssuedAt.Equal(s.IssuedAt))
		assert.True(t, got.ExpiresAt.Equal(s.ExpiresAt))
		assert.Nil(t, got.LoggedOutAt)

		assert.ErrorIs(t, repo.Create(ctx, s), common.ErrorConflict)

		_, err = repo.FindByToken(ctx, "missing")
		assert.ErrorIs(t, err, common.ErrorNotFound)
	})
}

func TestStore_MarkLoggedOut(t *testing.T) {
	stores(t, func(t *testing.T, repo Repository) {
		ctx := context.Background()
		now := time.Now()
		require.NoError(t, repo.Create(ctx, testSession(now)))

		at := now.Add(time.Minute)
		got, err := repo.MarkLoggedOut(ctx, "tok", at)
		require.NoError(t, err)
		require.NotNil(t, got.LoggedOutAt)
		assert.True(t, got.LoggedOutAt.Equal(at))

		_, err = repo.MarkLoggedOut(ctx, "tok", at.Add(time.Minute))
		assert.ErrorIs(t, err, common.ErrorConflict)

		stored, err := repo.FindByToken(ctx, "tok")
		require.NoError(t, err)
		assert.True(t, stored.LoggedOutAt.Equal(at), "first logout time must be kept")

		_, err = repo.MarkLoggedOut(ctx, "ghost", at)
		assert.ErrorIs(t, err, common.ErrorNotFound)
	})
}

func TestStore_ConcurrentLogoutHasOneWinner(t *testing.T) {
	stores(t, func(t *testing.T, repo Repository) {
		ctx := context.Background()
		require.NoError(t, repo.Create(ctx, testSession(time.Now())))

		const n = 12
		var (
			wg      sync.WaitGroup
			winners atomic.Int32
			losers  atomic.Int32
		)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := repo.MarkLoggedOut(ctx, "tok", time.Now())
				switch {
				case err == nil:
					winners.Add(1)
				case assert.ErrorIs(t, err, common.ErrorConflict):
					losers.Add(1)
				}
			}()
		}
		wg.Wait()

		assert.EqualValues(t, 1, winners.Load())
		assert.EqualValues(t, n-1, losers.Load())
	})
}

func TestRedisRepository_KeyOutlivesSession(t *testing.T) {
	repo, mr := newRedisRepo(t)
	ctx := context.Background()

	now := time.Now()
	require.NoError(t, repo.Create(ctx, testSession(now)))

	ttl := mr.TTL(sessionKey("tok"))
	assert.Greater(t, ttl, 8*time.Hour)

	mr.FastForward(ttl + time.Second)
	_, err := repo.FindByToken(ctx, "tok")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestRedisRepository_CorruptRecord(t *testing.T) {
	repo, mr := newRedisRepo(t)
	mr.HSet(sessionKey("bad"), fieldUserID, "u-1", fieldIssuedAt, "yesterday", fieldExpiresAt, "1")

	_, err := repo.FindByToken(context.Background(), "bad")
	assert.ErrorIs(t, err, errCorruptSession)
}

func TestMemoryRepository_DeleteByUser(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, testSession(time.Now())))

	repo.DeleteByUser("u-1")
	_, err := repo.FindByToken(ctx, "tok")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
