package services

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"github.com/dmitrijs2005/passgod/internal/client/models"
	"github.com/dmitrijs2005/passgod/internal/logging"
)

type RedeemAPI interface {
	RedeemShare(ctx context.Context, token string) (*models.SharePayload, error)
}

// ShareRedeemer consumes one-time share links. It needs no session.
type ShareRedeemer struct {
	api RedeemAPI
	log logging.Logger
}

func NewShareRedeemer(api RedeemAPI, log logging.Logger) *ShareRedeemer {
	return &ShareRedeemer{api: api, log: log}
}

// Redeem fetches the payload behind a share token or full share address.
// Every failure, whatever its cause, is ErrShareUnavailable.
func (r *ShareRedeemer) Redeem(ctx context.Context, tokenOrAddress string) (string, error) {
	token := ShareToken(tokenOrAddress)
	if token == "" {
		return "", ErrShareUnavailable
	}

	p, err := r.api.RedeemShare(ctx, token)
	if err != nil {
		r.log.Debug(ctx, "share redeem failed", "error", err)
		return "", ErrShareUnavailable
	}
	return p.Data, nil
}

// ShareToken extracts the token from a share address such as
// https://vault.example/share/<token>. Input without a /share/ segment is
// taken as a bare token.
func ShareToken(s string) string {
	s = strings.TrimSpace(s)

	path := s
	if u, err := url.Parse(s); err == nil && u.Scheme != "" {
		path = u.EscapedPath()
	}

	i := strings.LastIndex(path, sharePathPrefix)
	if i < 0 {
		return s
	}

	token := strings.Trim(path[i+len(sharePathPrefix):], "/")
	if unescaped, err := url.PathUnescape(token); err == nil {
		token = unescaped
	}
	return token
}

type VisitState int

const (
	VisitLoading VisitState = iota
	VisitLoaded
	VisitFailed
)

// RedeemVisit is one look at a share link. However many times Load is
// called, the server is asked at most once.
type RedeemVisit struct {
	redeemer *ShareRedeemer
	input    string
	once     sync.Once

	mu      sync.Mutex
	state   VisitState
	payload string
	err     error
}

func (r *ShareRedeemer) NewVisit(tokenOrAddress string) *RedeemVisit {
	return &RedeemVisit{redeemer: r, input: tokenOrAddress}
}

func (v *RedeemVisit) Load(ctx context.Context) (string, error) {
	v.once.Do(func() {
		payload, err := v.redeemer.Redeem(ctx, v.input)

		v.mu.Lock()
		defer v.mu.Unlock()
		v.payload, v.err = payload, err
		if err != nil {
			v.state = VisitFailed
		} else {
			v.state = VisitLoaded
		}
	})

	v.mu.Lock()
	defer v.mu.Unlock()
	return v.payload, v.err
}

func (v *RedeemVisit) State() VisitState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}
