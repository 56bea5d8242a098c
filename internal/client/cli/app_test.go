package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/passgod/internal/client/apitest"
	"github.com/dmitrijs2005/passgod/internal/client/client"
	"github.com/dmitrijs2005/passgod/internal/client/config"
	"github.com/dmitrijs2005/passgod/internal/client/qr"
	"github.com/dmitrijs2005/passgod/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/passgod/internal/client/router"
	"github.com/dmitrijs2005/passgod/internal/client/services"
	"github.com/dmitrijs2005/passgod/internal/client/storage"
	"github.com/dmitrijs2005/passgod/internal/client/tokenstore"
	"github.com/dmitrijs2005/passgod/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const webOrigin = "http://localhost:3000"

var shareLinkRe = regexp.MustCompile(regexp.QuoteMeta(webOrigin) + `/share/[A-Za-z0-9_-]+`)

func openStore(t *testing.T, path string) *tokenstore.Store {
	t.Helper()
	db, err := storage.InitDatabase(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return tokenstore.New(metadata.NewSQLiteRepository(db))
}

func newTestApp(t *testing.T, srv *apitest.Server, store *tokenstore.Store, input string) (*App, *bytes.Buffer) {
	t.Helper()
	stubTerminal(t, false, nil)

	cfg := &config.Config{APIBaseURL: srv.BaseURL(), WebOrigin: webOrigin}
	api := client.NewHTTPClient(cfg.APIBaseURL, store, logging.Nop())

	var out bytes.Buffer
	app := NewApp(cfg, api, store, qr.NewTerminalEncoder(), logging.Nop(), strings.NewReader(input), &out)
	return app, &out
}

func lines(l ...string) string {
	return strings.Join(l, "\n") + "\n"
}

func TestApp_LoginVaultAndShare(t *testing.T) {
	srv := apitest.New(t)
	srv.AddUser("ann@example.com", "Ann", "pw")
	store := openStore(t, filepath.Join(t.TempDir(), "passgod.db"))

	app, out := newTestApp(t, srv, store, lines(
		"passwords",
		"login", "ann@example.com", "pw",
		"addpassword", "mail", "ann", "pw1", "https://mail.example", "work inbox", "",
		"passwords",
		"addsocial", "Reddit", "ann_r", "pw2", "karma=10", "",
		"social",
		"share", "top secret", "", "correct horse", "5",
		"exit",
	))
	require.NoError(t, app.Run(context.Background()))

	s := out.String()
	assert.Contains(t, s, "Please log in first")
	assert.Contains(t, s, "Logged in as Ann")
	assert.Contains(t, s, "Saved mail")
	assert.Contains(t, s, "https://mail.example")
	assert.Contains(t, s, "karma=10")
	assert.Contains(t, s, "Share link created")
	assert.NotContains(t, s, "Unexpected error")

	tok, err := store.Get(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, tok, "login persists the token")
	assert.Equal(t, "/social", app.nav.Current(), "share and add pages return to the list they came from")

	link := shareLinkRe.FindString(s)
	require.NotEmpty(t, link)

	// A second process with no session opens the link.
	other := openStore(t, filepath.Join(t.TempDir(), "other.db"))
	reader, out2 := newTestApp(t, srv, other, lines(
		"open "+link, "wrong", "correct horse",
		"open "+link,
		"exit",
	))
	require.NoError(t, reader.Run(context.Background()))

	s2 := out2.String()
	assert.Contains(t, s2, "Unable to decrypt")
	assert.Contains(t, s2, "top secret")
	assert.Contains(t, s2, "This share link is invalid, expired, or already used.")
	assert.Equal(t, 1, srv.Hits("GET", "/share/"+strings.TrimPrefix(link, webOrigin+"/share/")))
}

func TestApp_ServerRejectsTokenMidSession(t *testing.T) {
	srv := apitest.New(t)
	uid := srv.AddUser("ann@example.com", "Ann", "pw")
	store := openStore(t, filepath.Join(t.TempDir(), "passgod.db"))
	require.NoError(t, store.Set(context.Background(), srv.IssueToken(uid)))

	srv.FailNext("GET", "/passwords/", 401, "Could not validate credentials")

	app, out := newTestApp(t, srv, store, lines("passwords", "whoami", "exit"))
	require.NoError(t, app.Run(context.Background()))

	s := out.String()
	assert.Contains(t, s, "Your session has expired. Please log in again.")
	assert.Contains(t, s, "Please log in first")

	tok, err := store.Get(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tok)
	assert.Equal(t, services.StatusAnonymous, app.sessions.Current().Status)
	assert.Equal(t, router.LoginRoute, app.nav.Current())
}

func TestApp_RejectedTokenOnSubpageLandsOnLogin(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		input  string
	}{
		{"share", "POST", "/share/create", lines("share", "top secret", "", "pp", "5")},
		{"showpassword", "GET", "/passwords/abc", lines("showpassword abc")},
		{"addpassword", "POST", "/passwords/", lines("addpassword", "mail", "ann", "pw1", "", "")},
		{"addsocial", "POST", "/social/", lines("addsocial", "reddit", "ann_r", "pw2", "")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := apitest.New(t)
			uid := srv.AddUser("ann@example.com", "Ann", "pw")
			store := openStore(t, filepath.Join(t.TempDir(), "passgod.db"))
			require.NoError(t, store.Set(context.Background(), srv.IssueToken(uid)))

			srv.FailNext(tt.method, tt.path, 401, "Could not validate credentials")

			app, out := newTestApp(t, srv, store, tt.input+lines("exit"))
			require.NoError(t, app.Run(context.Background()))

			assert.Equal(t, 1, srv.Hits(tt.method, tt.path))
			assert.Contains(t, out.String(), "Your session has expired. Please log in again.")
			assert.Equal(t, services.StatusAnonymous, app.sessions.Current().Status)
			assert.Equal(t, router.LoginRoute, app.nav.Current(), "history=%v", app.nav.History())
		})
	}
}

func TestApp_AccountSettingsAndEditPassword(t *testing.T) {
	srv := apitest.New(t)
	uid := srv.AddUser("ann@example.com", "Ann", "pw")
	pid := srv.AddPassword(uid, "mail", "ann", "old-secret")
	store := openStore(t, filepath.Join(t.TempDir(), "passgod.db"))

	app, out := newTestApp(t, srv, store, lines(
		"login", "ann@example.com", "pw",
		"editpassword "+pid, "webmail", "", "https://mail.example", "", "",
		"editprofile", "", "Ann B",
		"whoami",
		"changepassword", "pw", "pw2", "pw3",
		"changepassword", "pw", "pw2", "pw2",
		"deleteaccount", "no",
		"deleteaccount", "delete",
		"exit",
	))
	require.NoError(t, app.Run(context.Background()))

	s := out.String()
	assert.Contains(t, s, "Updated webmail ("+pid+")")
	assert.Contains(t, s, "Profile updated: Ann B <ann@example.com>")
	assert.Contains(t, s, "New passwords do not match.")
	assert.Contains(t, s, "Password changed.")
	assert.Contains(t, s, "Cancelled.")
	assert.Contains(t, s, "Account deleted.")
	assert.Equal(t, 1, srv.Hits("PUT", "/users/me/password"), "mismatched confirmation sends nothing")

	secret, ok := srv.PasswordSecret(pid)
	require.True(t, ok)
	assert.Equal(t, "old-secret", secret, "an empty answer keeps the secret")

	assert.False(t, srv.HasUser("ann@example.com"))
	assert.Equal(t, services.StatusAnonymous, app.sessions.Current().Status)
	assert.Equal(t, router.LoginRoute, app.nav.Current())

	tok, err := store.Get(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestApp_RestoresStoredSession(t *testing.T) {
	srv := apitest.New(t)
	uid := srv.AddUser("ann@example.com", "Ann", "pw")
	store := openStore(t, filepath.Join(t.TempDir(), "passgod.db"))
	require.NoError(t, store.Set(context.Background(), srv.IssueToken(uid)))

	app, out := newTestApp(t, srv, store, lines("whoami", "exit"))
	require.NoError(t, app.Run(context.Background()))

	assert.Contains(t, out.String(), "ann@example.com")
	assert.Zero(t, srv.Hits("POST", "/auth/token"))
}

func TestApp_RegisterDoesNotLogIn(t *testing.T) {
	srv := apitest.New(t)
	store := openStore(t, filepath.Join(t.TempDir(), "passgod.db"))

	app, out := newTestApp(t, srv, store, lines(
		"register", "bob@example.com", "Bob", "pw",
		"register", "bob@example.com", "Bob", "pw",
		"exit",
	))
	require.NoError(t, app.Run(context.Background()))

	s := out.String()
	assert.Contains(t, s, "Account created for bob@example.com")
	assert.Contains(t, s, "Email already registered")
	assert.Equal(t, services.StatusAnonymous, app.sessions.Current().Status)
}

func TestApp_ShareRejectsBadLifetimeWithoutRequest(t *testing.T) {
	srv := apitest.New(t)
	srv.AddUser("ann@example.com", "Ann", "pw")
	store := openStore(t, filepath.Join(t.TempDir(), "passgod.db"))

	app, out := newTestApp(t, srv, store, lines(
		"login", "ann@example.com", "pw",
		"share", "x", "", "pp", "1441",
		"share", "x", "", "pp", "soon",
		"exit",
	))
	require.NoError(t, app.Run(context.Background()))

	s := out.String()
	assert.Contains(t, s, "Lifetime must be between 1 and 1440 minutes.")
	assert.Contains(t, s, "Lifetime must be a whole number of minutes.")
	assert.Zero(t, srv.Hits("POST", "/share/create"))
}

func TestStartTokenWatcher_PicksUpOtherProcess(t *testing.T) {
	srv := apitest.New(t)
	uid := srv.AddUser("ann@example.com", "Ann", "pw")
	path := filepath.Join(t.TempDir(), "passgod.db")
	store := openStore(t, path)
	otherProcess := openStore(t, path)

	app, _ := newTestApp(t, srv, store, "")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, app.sessions.Start(ctx))
	require.Equal(t, services.StatusAnonymous, app.sessions.Current().Status)

	go app.StartTokenWatcher(ctx, 10*time.Millisecond)

	require.NoError(t, otherProcess.Set(ctx, srv.IssueToken(uid)))
	require.Eventually(t, func() bool {
		return app.sessions.Current().Status == services.StatusAuthenticated
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, otherProcess.Clear(ctx))
	require.Eventually(t, func() bool {
		return app.sessions.Current().Status == services.StatusAnonymous
	}, 2*time.Second, 10*time.Millisecond)
}
