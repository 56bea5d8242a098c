package services

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/dmitrijs2005/passgod/internal/client/apitest"
	"github.com/dmitrijs2005/passgod/internal/client/client"
	"github.com/dmitrijs2005/passgod/internal/client/models"
	"github.com/dmitrijs2005/passgod/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/passgod/internal/client/storage"
	"github.com/dmitrijs2005/passgod/internal/client/tokenstore"
	"github.com/dmitrijs2005/passgod/internal/logging"
	"github.com/stretchr/testify/require"
)

// ---- in-memory token store ----

type memStore struct {
	mu    sync.Mutex
	token string
}

func (m *memStore) Get(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *memStore) Set(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *memStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

// ---- fake auth API ----

type fakeAuth struct {
	mu      sync.Mutex
	tokenFn func(ctx context.Context, username, password string) (*models.AccessToken, error)
	meFn    func(ctx context.Context, call int) (*models.User, error)
	meCalls int
}

func (f *fakeAuth) Token(ctx context.Context, username, password string) (*models.AccessToken, error) {
	return f.tokenFn(ctx, username, password)
}

func (f *fakeAuth) Me(ctx context.Context) (*models.User, error) {
	f.mu.Lock()
	f.meCalls++
	n := f.meCalls
	f.mu.Unlock()
	return f.meFn(ctx, n)
}

func (f *fakeAuth) MeCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.meCalls
}

// ---- full stack over the fake backend ----

type stack struct {
	srv      *apitest.Server
	api      *client.HTTPClient
	store    *tokenstore.Store
	sessions *SessionController
	dbPath   string
}

func newStack(t *testing.T) *stack {
	t.Helper()

	srv := apitest.New(t)
	dbPath := filepath.Join(t.TempDir(), "passgod.db")
	store := openStore(t, dbPath)

	api := client.NewHTTPClient(srv.BaseURL(), store, logging.Nop())
	sessions := NewSessionController(api, store, logging.Nop())
	api.OnUnauthorized(sessions.Invalidate)

	return &stack{srv: srv, api: api, store: store, sessions: sessions, dbPath: dbPath}
}

func openStore(t *testing.T, path string) *tokenstore.Store {
	t.Helper()
	db, err := storage.InitDatabase(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return tokenstore.New(metadata.NewSQLiteRepository(db))
}

func storedToken(t *testing.T, s TokenStore) string {
	t.Helper()
	tok, err := s.Get(context.Background())
	require.NoError(t, err)
	return tok
}

// requirePaired checks that the session status and the token store agree.
func requirePaired(t *testing.T, c *SessionController, s TokenStore) {
	t.Helper()
	cur := c.Current()
	tok := storedToken(t, s)
	switch cur.Status {
	case StatusAuthenticated:
		require.NotEmpty(t, tok, "authenticated with an empty store")
		require.Equal(t, tok, cur.Token)
	case StatusAnonymous:
		require.Empty(t, tok, "anonymous with a token still stored")
	}
}

func mustLogin(t *testing.T, ctx context.Context, c *SessionController, identifier, secret string) *models.User {
	t.Helper()
	u, err := c.Login(ctx, identifier, secret)
	require.NoError(t, err)
	require.NotNil(t, u)
	return u
}
