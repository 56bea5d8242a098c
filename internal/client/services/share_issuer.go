package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/passgod/internal/client/models"
	"github.com/dmitrijs2005/passgod/internal/common"
	"github.com/dmitrijs2005/passgod/internal/logging"
)

const (
	MinShareTTLMinutes     = 1
	MaxShareTTLMinutes     = 1440
	DefaultShareTTLMinutes = 60

	sharePathPrefix = "/share/"
)

type ShareAPI interface {
	CreateShare(ctx context.Context, in models.ShareRequest) (*models.ShareResponse, error)
}

// SessionReader exposes the current session without the ability to change it.
type SessionReader interface {
	Current() Session
}

// LinkEncoder renders a share address in a scannable form (e.g. a QR code).
type LinkEncoder interface {
	Encode(text string) (string, error)
}

// ShareIssuer turns an already encrypted payload into a one-time link.
// It never sees the plaintext or the key.
type ShareIssuer struct {
	api      ShareAPI
	sessions SessionReader
	encoder  LinkEncoder
	origin   string
	log      logging.Logger
}

func NewShareIssuer(api ShareAPI, sessions SessionReader, encoder LinkEncoder, webOrigin string, log logging.Logger) *ShareIssuer {
	return &ShareIssuer{
		api:      api,
		sessions: sessions,
		encoder:  encoder,
		origin:   strings.TrimRight(webOrigin, "/"),
		log:      log,
	}
}

// Create validates its input, asks the server for a share token and returns
// the complete link. Every failure matches ErrShareCreate (validation
// failures also match common.ErrValidation); no partial link is returned.
func (s *ShareIssuer) Create(ctx context.Context, encryptedPayload string, ttlMinutes int) (*models.ShareLink, error) {
	if err := validateShare(encryptedPayload, ttlMinutes); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrShareCreate, err)
	}

	if s.sessions.Current().Status != StatusAuthenticated {
		return nil, fmt.Errorf("%w: %w", ErrShareCreate, ErrLoginRequired)
	}

	resp, err := s.api.CreateShare(ctx, models.ShareRequest{
		EncryptedData:    encryptedPayload,
		ExpiresInMinutes: ttlMinutes,
	})
	if err != nil {
		s.log.Warn(ctx, "share create request failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrShareCreate, err)
	}
	if resp.Token == "" {
		s.log.Warn(ctx, "share create response has no token")
		return nil, ErrShareCreate
	}

	address := s.Address(resp.Token)

	qr, err := s.encoder.Encode(address)
	if err != nil {
		s.log.Warn(ctx, "unable to encode share link", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrShareCreate, err)
	}

	s.log.Info(ctx, "share link created", "expires_at", resp.ExpiresAt)

	return &models.ShareLink{
		Token:     resp.Token,
		Address:   address,
		ExpiresAt: resp.ExpiresAt,
		Consumed:  resp.Used,
		QR:        qr,
	}, nil
}

// Address composes the redemption URL for token.
func (s *ShareIssuer) Address(token string) string {
	return s.origin + sharePathPrefix + url.PathEscape(token)
}

func validateShare(payload string, ttlMinutes int) error {
	if payload == "" {
		return common.NewValidationError("nothing to share")
	}
	if ttlMinutes < MinShareTTLMinutes || ttlMinutes > MaxShareTTLMinutes {
		return common.NewValidationError(
			fmt.Sprintf("lifetime must be between %d and %d minutes", MinShareTTLMinutes, MaxShareTTLMinutes))
	}
	return nil
}
