package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/gopherflow/internal/logging"
	"github.com/dmitrijs2005/gopherflow/internal/server/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ---- fakes ----

type fakeAccounts struct {
	register func(ctx context.Context, p models.Profile, password string) (*models.User, error)
	signIn   func(ctx context.Context, userName, password string) (*models.Session, error)
	signOut  func(ctx context.Context, token string) (*models.Session, error)
}

func (f *fakeAccounts) Register(ctx context.Context, p models.Profile, password string) (*models.User, error) {
	return f.register(ctx, p, password)
}
func (f *fakeAccounts) SignIn(ctx context.Context, userName, password string) (*models.Session, error) {
	return f.signIn(ctx, userName, password)
}
func (f *fakeAccounts) SignOut(ctx context.Context, token string) (*models.Session, error) {
	return f.signOut(ctx, token)
}

type fakeProfiles struct {
	get func(ctx context.Context, token, userID string) (*models.User, error)
}

func (f *fakeProfiles) Get(ctx context.Context, token, userID string) (*models.User, error) {
	return f.get(ctx, token, userID)
}

func newFakeServer(svc Services) *Server {
	return NewServer("127.0.0.1:0", time.Second, logging.Nop(), svc)
}

func do(t *testing.T, h http.Handler, method, path string, body any, header http.Header) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func bearer(token string) http.Header {
	return http.Header{"Authorization": []string{"Bearer " + token}}
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}
