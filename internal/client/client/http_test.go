package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/dmitrijs2005/passgod/internal/client/apitest"
	"github.com/dmitrijs2005/passgod/internal/client/models"
	"github.com/dmitrijs2005/passgod/internal/common"
	"github.com/dmitrijs2005/passgod/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memTokens struct {
	mu    sync.Mutex
	token string
	err   error
}

func (m *memTokens) Get(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.err
}

func newClient(t *testing.T) (*HTTPClient, *apitest.Server, *memTokens) {
	t.Helper()
	srv := apitest.New(t)
	tokens := &memTokens{}
	return NewHTTPClient(srv.BaseURL(), tokens, logging.Nop()), srv, tokens
}

func TestToken_AndMe(t *testing.T) {
	c, srv, tokens := newClient(t)
	srv.AddUser("a@x.com", "Ann", "pw")
	ctx := context.Background()

	tok, err := c.Token(ctx, "a@x.com", "pw")
	require.NoError(t, err)
	require.NotEmpty(t, tok.AccessToken)

	tokens.token = tok.AccessToken
	u, err := c.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", u.Email)
	assert.Equal(t, "Ann", u.DisplayName)
	assert.NotEmpty(t, u.ID, "id arrives as _id")
}

func TestToken_BadCredentialsCarriesDetail(t *testing.T) {
	c, srv, _ := newClient(t)
	srv.AddUser("a@x.com", "Ann", "pw")

	called := false
	c.OnUnauthorized(func(context.Context) { called = true })

	_, err := c.Token(context.Background(), "a@x.com", "wrong")
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, "Incorrect email or password", Detail(err))
	assert.False(t, called, "credential exchange never triggers the 401 hook")
}

func TestUnauthorizedHook_RunsBeforeCallerSeesError(t *testing.T) {
	c, srv, tokens := newClient(t)
	id := srv.AddUser("a@x.com", "Ann", "pw")
	tokens.token = srv.IssueToken(id)
	srv.Revoke(tokens.token)

	var order []string
	c.OnUnauthorized(func(context.Context) { order = append(order, "hook") })

	_, err := c.ListPasswords(context.Background())
	order = append(order, "caller")

	require.ErrorIs(t, err, ErrUnauthorized)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, []string{"hook", "caller"}, order)
}

func TestRequest_AttachesBearerAndRequestID(t *testing.T) {
	var gotAuth, gotID string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get(common.AuthorizationHeaderName)
		gotID = r.Header.Get(common.RequestIDHeaderName)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(ts.Close)

	c := NewHTTPClient(ts.URL+"/", &memTokens{token: "T1"}, logging.Nop())
	_, err := c.ListBreachAlerts(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer T1", gotAuth)
	assert.NotEmpty(t, gotID)
}

func TestRequest_NoTokenNoHeader(t *testing.T) {
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get(common.AuthorizationHeaderName)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(ts.Close)

	c := NewHTTPClient(ts.URL, &memTokens{err: errors.New("db locked")}, logging.Nop())
	_, err := c.ListSocialAccounts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestRedeemShare_IsAnonymous(t *testing.T) {
	c, srv, tokens := newClient(t)
	id := srv.AddUser("a@x.com", "Ann", "pw")
	tokens.token = srv.IssueToken(id)
	ctx := context.Background()

	sh, err := c.CreateShare(ctx, models.ShareRequest{EncryptedData: "ciphertext==", ExpiresInMinutes: 60})
	require.NoError(t, err)
	assert.False(t, sh.Used)
	assert.False(t, sh.ExpiresAt.IsZero())

	// a revoked token on a redeem must not matter
	srv.Revoke(tokens.token)
	called := false
	c.OnUnauthorized(func(context.Context) { called = true })

	p, err := c.RedeemShare(ctx, sh.Token)
	require.NoError(t, err)
	assert.Equal(t, "ciphertext==", p.Data)

	_, err = c.RedeemShare(ctx, sh.Token)
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "Invalid or expired token", Detail(err))
	assert.False(t, called)
}

func TestTransportFailure_IsUnavailable(t *testing.T) {
	c, srv, _ := newClient(t)
	srv.Close()

	_, err := c.Me(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
	assert.Empty(t, Detail(err))
}

func TestValidationDetailList_IsNotShown(t *testing.T) {
	c, _, _ := newClient(t)

	_, err := c.Register(context.Background(), models.Registration{Email: "a@x.com"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Empty(t, apiErr.Detail)
}

func TestVaultRoundTrip(t *testing.T) {
	c, srv, tokens := newClient(t)
	id := srv.AddUser("a@x.com", "Ann", "pw")
	tokens.token = srv.IssueToken(id)
	ctx := context.Background()

	p, err := c.CreatePassword(ctx, models.PasswordInput{Title: "mail", Username: "ann", Password: "s3cret"})
	require.NoError(t, err)
	secret, ok := srv.PasswordSecret(p.ID)
	require.True(t, ok)
	assert.Equal(t, "s3cret", secret)

	p, err = c.UpdatePassword(ctx, p.ID, models.PasswordInput{Title: "mail2", Username: "ann"})
	require.NoError(t, err)
	assert.Equal(t, "mail2", p.Title)

	got, err := c.GetPassword(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "mail2", got.Title)

	list, err := c.ListPasswords(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, c.DeletePassword(ctx, p.ID))
	_, err = c.GetPassword(ctx, p.ID)
	require.ErrorIs(t, err, ErrNotFound)

	acc, err := c.CreateSocialAccount(ctx, models.SocialAccountInput{Platform: "reddit", Username: "ann", Password: "x"})
	require.NoError(t, err)
	accounts, err := c.ListSocialAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	require.NoError(t, c.DeleteSocialAccount(ctx, acc.ID))

	_, err = c.CreateSocialAccount(ctx, models.SocialAccountInput{Platform: "myspace", Username: "ann", Password: "x"})
	assert.Contains(t, Detail(err), "Unsupported platform")

	alertID := srv.AddBreachAlert(id, "linkedin", "high", "2012 dump")
	alerts, err := c.ListBreachAlerts(ctx)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.False(t, alerts[0].IsResolved)

	a, err := c.ResolveBreachAlert(ctx, alertID)
	require.NoError(t, err)
	assert.True(t, a.IsResolved)
}

func TestNewAPIError(t *testing.T) {
	e := newAPIError(400, []byte(`{"detail":"Email already registered"}`))
	assert.Equal(t, "Email already registered", e.Detail)
	assert.Equal(t, "api error 400: Email already registered", e.Error())

	e = newAPIError(500, []byte(`<html>oops</html>`))
	assert.Empty(t, e.Detail)
	assert.Equal(t, "api error 500", e.Error())
	assert.Nil(t, e.Unwrap())
}

func TestUsersMe_ProfilePasswordAndDelete(t *testing.T) {
	c, srv, tokens := newClient(t)
	id := srv.AddUser("a@x.com", "Ann", "pw")
	tokens.token = srv.IssueToken(id)
	ctx := context.Background()

	u, err := c.UpdateProfile(ctx, models.ProfileUpdate{Email: "ann@x.com"})
	require.NoError(t, err)
	assert.Equal(t, "ann@x.com", u.Email)
	assert.Equal(t, "Ann", u.DisplayName)

	require.NoError(t, c.ChangePassword(ctx, models.PasswordChange{CurrentPassword: "pw", NewPassword: "pw2"}))
	_, err = c.Token(ctx, "ann@x.com", "pw2")
	require.NoError(t, err)

	called := 0
	c.OnUnauthorized(func(context.Context) { called++ })

	require.NoError(t, c.DeleteAccount(ctx))
	_, err = c.Me(ctx)
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, 1, called)
}
