package server

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/dmitrijs2005/gopherflow/internal/server/config"
	"github.com/dmitrijs2005/gopherflow/internal/server/models"
	"github.com/dmitrijs2005/gopherflow/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.EndpointAddrHTTP = "127.0.0.1:0"
	c.ShutdownTimeout = time.Second
	c.LogLevel = "error"
	return c
}

func profile(name string) models.Profile {
	return models.Profile{UserName: name, Email: name + "@example.com"}
}

func TestNewApp_InMemory(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig())
	require.NoError(t, err)

	assert.IsType(t, &repomanager.InMemoryRepositoryManager{}, app.manager)
	assert.Nil(t, app.redis)
	assert.NotNil(t, app.services.Accounts)
	assert.NotNil(t, app.services.Answers)
}

func TestNewApp_RedisSessions(t *testing.T) {
	mr := miniredis.RunT(t)

	c := testConfig()
	c.RedisAddr = mr.Addr()

	app, err := NewApp(context.Background(), c)
	require.NoError(t, err)
	require.NotNil(t, app.redis)

	_, err = app.services.Accounts.Register(context.Background(), profile("alice"), "p@ss")
	require.NoError(t, err)
	s, err := app.services.Accounts.SignIn(context.Background(), "alice", "p@ss")
	require.NoError(t, err)

	assert.True(t, mr.Exists("gopherflow:session:"+s.Token))
	app.close(context.Background())
}

func TestNewApp_RedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	c := testConfig()
	c.RedisAddr = addr

	_, err := NewApp(context.Background(), c)
	assert.ErrorContains(t, err, "redis init error")
}

func TestNewApp_BadDSN(t *testing.T) {
	c := testConfig()
	c.DatabaseDSN = "postgres://nobody@127.0.0.1:1/none?sslmode=disable&connect_timeout=1"

	_, err := NewApp(context.Background(), c)
	assert.ErrorContains(t, err, "db init error")
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop")
	}
}
