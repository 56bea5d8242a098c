package router

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/passgod/internal/client/models"
	"github.com/dmitrijs2005/passgod/internal/client/services"
)

type Decision int

const (
	Wait Decision = iota
	Redirect
	Render
)

func (d Decision) String() string {
	switch d {
	case Wait:
		return "wait"
	case Redirect:
		return "redirect"
	case Render:
		return "render"
	default:
		return "unknown"
	}
}

var errUpdatesClosed = errors.New("session updates closed")

// Evaluate maps a session status to what a protected route should do.
func Evaluate(status services.Status) Decision {
	switch status {
	case services.StatusAuthenticated:
		return Render
	case services.StatusAnonymous:
		return Redirect
	default:
		return Wait
	}
}

type SessionSource interface {
	Subscribe() (<-chan services.Session, func())
}

// Page renders a protected route for user.
type Page func(ctx context.Context, user *models.User) error

type Gate struct {
	sessions SessionSource
	nav      *Navigator
	onWait   func(route string)
}

// NewGate returns a gate over sessions. onWait is called once per guarded
// visit that has to wait for resolution; it may be nil.
func NewGate(sessions SessionSource, nav *Navigator, onWait func(route string)) *Gate {
	if onWait == nil {
		onWait = func(string) {}
	}
	return &Gate{sessions: sessions, nav: nav, onWait: onWait}
}

// Guard navigates to route and renders page once the session allows it.
// While the session is resolving it blocks, re-evaluating on every change.
// An anonymous session replaces route with LoginRoute in the history and
// yields services.ErrLoginRequired; page is not called.
func (g *Gate) Guard(ctx context.Context, route string, page Page) error {
	g.nav.Push(route)

	updates, cancel := g.sessions.Subscribe()
	defer cancel()

	waiting := false
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case s, ok := <-updates:
			if !ok {
				return errUpdatesClosed
			}
			switch Evaluate(s.Status) {
			case Render:
				return page(ctx, s.User)
			case Redirect:
				g.nav.Replace(LoginRoute)
				return services.ErrLoginRequired
			default:
				if !waiting {
					waiting = true
					g.onWait(route)
				}
			}
		}
	}
}
