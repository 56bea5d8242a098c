package services

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/passgod/internal/client/client"
	"github.com/dmitrijs2005/passgod/internal/client/models"
	"github.com/dmitrijs2005/passgod/internal/common"
	"github.com/dmitrijs2005/passgod/internal/logging"
)

type Status int

const (
	StatusResolving Status = iota
	StatusAuthenticated
	StatusAnonymous
)

func (s Status) String() string {
	switch s {
	case StatusResolving:
		return "resolving"
	case StatusAuthenticated:
		return "authenticated"
	case StatusAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// Session is an immutable snapshot. User and Token are set only when Status
// is StatusAuthenticated.
type Session struct {
	Status Status
	User   *models.User
	Token  string
}

// AuthAPI is the part of the backend the controller talks to.
type AuthAPI interface {
	Token(ctx context.Context, username, password string) (*models.AccessToken, error)
	Me(ctx context.Context) (*models.User, error)
}

type TokenStore interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// SessionController is the state machine behind login, logout and identity
// revalidation. Every transition bumps an epoch; a network result is applied
// only if no other transition happened while it was in flight.
type SessionController struct {
	api   AuthAPI
	store TokenStore
	log   logging.Logger

	mu      sync.Mutex
	session Session
	epoch   uint64
	subs    map[uint64]chan Session
	nextSub uint64
}

// NewSessionController returns a controller in StatusResolving. Call Start to
// resolve the stored token.
func NewSessionController(api AuthAPI, store TokenStore, log logging.Logger) *SessionController {
	return &SessionController{
		api:     api,
		store:   store,
		log:     log,
		session: Session{Status: StatusResolving},
		subs:    make(map[uint64]chan Session),
	}
}

// Start performs the process-start resolution of the stored token.
func (c *SessionController) Start(ctx context.Context) error {
	return c.LoadUser(ctx)
}

// Current returns the latest session snapshot.
func (c *SessionController) Current() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// Subscribe returns a channel that always holds the latest session; the
// current one is delivered at once. Intermediate values may be skipped by a
// slow reader. cancel closes the channel.
func (c *SessionController) Subscribe() (<-chan Session, func()) {
	ch := make(chan Session, 1)

	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch
	ch <- c.session
	c.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			delete(c.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

// LoadUser revalidates the stored token with the server. With no stored token
// the session becomes anonymous without a request. If the server rejects the
// token, or cannot be reached, the token is cleared and the session becomes
// anonymous; the error is returned for logging only. It never moves the
// session back to StatusResolving.
func (c *SessionController) LoadUser(ctx context.Context) error {
	epoch := c.bump()

	token, err := c.store.Get(ctx)
	if err != nil {
		c.log.Error(ctx, "unable to read access token", "error", err)
		c.resetIfCurrent(ctx, epoch)
		return err
	}

	_, err = c.resolveUser(ctx, epoch, token)
	return err
}

// Login exchanges credentials for a token, stores it, and loads the user,
// which it returns. The returned user stays valid even if the session is
// invalidated right after. On failure the session is anonymous and the
// returned *LoginError carries the server's message or "Login failed". If
// Logout runs while Login is in flight, Logout wins and Login returns
// ErrSuperseded.
func (c *SessionController) Login(ctx context.Context, identifier, secret string) (*models.User, error) {
	if err := common.RequireFields("email", identifier, "password", secret); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.epoch++
	epoch := c.epoch
	c.setLocked(Session{Status: StatusResolving})
	c.mu.Unlock()

	tok, err := c.api.Token(ctx, identifier, secret)
	if err != nil {
		if c.resetIfCurrent(ctx, epoch) == nil {
			c.log.Info(ctx, "login rejected", "error", err)
		}
		return nil, &LoginError{Message: loginMessage(err), Err: err}
	}

	c.mu.Lock()
	if epoch != c.epoch {
		c.mu.Unlock()
		return nil, ErrSuperseded
	}
	if err := c.store.Set(ctx, tok.AccessToken); err != nil {
		c.setLocked(Session{Status: StatusAnonymous})
		c.mu.Unlock()
		c.log.Error(ctx, "unable to store access token", "error", err)
		return nil, &LoginError{Message: defaultLoginMessage, Err: err}
	}
	c.mu.Unlock()

	user, err := c.resolveUser(ctx, epoch, tok.AccessToken)
	if err != nil {
		if errors.Is(err, ErrSuperseded) {
			return nil, err
		}
		return nil, &LoginError{Message: defaultLoginMessage, Err: err}
	}

	c.log.Info(ctx, "logged in", "email", identifier)
	return user, nil
}

// Logout clears the stored token and makes the session anonymous. It is
// local only; no request is sent.
func (c *SessionController) Logout(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.epoch++
	err := c.store.Clear(ctx)
	c.setLocked(Session{Status: StatusAnonymous})
	if err != nil {
		c.log.Error(ctx, "unable to clear access token", "error", err)
	}
	return err
}

// Invalidate is the reaction to a 401 from any authenticated request. It
// behaves like Logout and is meant to be installed with
// client.HTTPClient.OnUnauthorized.
func (c *SessionController) Invalidate(ctx context.Context) {
	c.log.Info(ctx, "session invalidated by server")
	_ = c.Logout(ctx)
}

// Reconcile re-reads the token store and reloads the user when the stored
// token no longer matches the session, e.g. after another process logged in
// or out. It does nothing while a login is resolving.
func (c *SessionController) Reconcile(ctx context.Context) error {
	stored, err := c.store.Get(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	current := c.session
	c.mu.Unlock()

	if current.Status == StatusResolving || stored == current.Token {
		return nil
	}

	c.log.Debug(ctx, "stored access token changed")
	return c.LoadUser(ctx)
}

// resolveUser applies the identity behind token. It returns a nil user when
// token is empty.
func (c *SessionController) resolveUser(ctx context.Context, epoch uint64, token string) (*models.User, error) {
	if token == "" {
		c.mu.Lock()
		defer c.mu.Unlock()
		if epoch != c.epoch {
			return nil, ErrSuperseded
		}
		c.setLocked(Session{Status: StatusAnonymous})
		return nil, nil
	}

	user, err := c.api.Me(ctx)
	if err != nil {
		c.log.Info(ctx, "stored access token rejected", "error", err)
		c.resetIfCurrent(ctx, epoch)
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if epoch != c.epoch {
		return nil, ErrSuperseded
	}
	c.setLocked(Session{Status: StatusAuthenticated, User: user, Token: token})
	return user, nil
}

// resetIfCurrent clears the store and makes the session anonymous unless a
// newer transition already took over. It returns ErrSuperseded in that case.
func (c *SessionController) resetIfCurrent(ctx context.Context, epoch uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if epoch != c.epoch {
		return ErrSuperseded
	}
	if err := c.store.Clear(ctx); err != nil {
		c.log.Error(ctx, "unable to clear access token", "error", err)
	}
	c.setLocked(Session{Status: StatusAnonymous})
	return nil
}

func (c *SessionController) bump() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.epoch++
	return c.epoch
}

func (c *SessionController) setLocked(s Session) {
	c.session = s
	for _, ch := range c.subs {
		select {
		case <-ch:
		default:
		}
		ch <- s
	}
}

func loginMessage(err error) string {
	if d := client.Detail(err); d != "" {
		return d
	}
	return defaultLoginMessage
}
