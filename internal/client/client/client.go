package client

import (
	"context"

	"github.com/dmitrijs2005/passgod/internal/client/models"
)

// Client is the full backend contract used by the CLI.
type Client interface {
	Token(ctx context.Context, username, password string) (*models.AccessToken, error)
	Me(ctx context.Context) (*models.User, error)
	Register(ctx context.Context, in models.Registration) (*models.User, error)

	UpdateProfile(ctx context.Context, in models.ProfileUpdate) (*models.User, error)
	ChangePassword(ctx context.Context, in models.PasswordChange) error
	DeleteAccount(ctx context.Context) error

	CreateShare(ctx context.Context, in models.ShareRequest) (*models.ShareResponse, error)
	RedeemShare(ctx context.Context, token string) (*models.SharePayload, error)

	ListPasswords(ctx context.Context) ([]models.Password, error)
	GetPassword(ctx context.Context, id string) (*models.Password, error)
	CreatePassword(ctx context.Context, in models.PasswordInput) (*models.Password, error)
	UpdatePassword(ctx context.Context, id string, in models.PasswordInput) (*models.Password, error)
	DeletePassword(ctx context.Context, id string) error

	ListSocialAccounts(ctx context.Context) ([]models.SocialAccount, error)
	CreateSocialAccount(ctx context.Context, in models.SocialAccountInput) (*models.SocialAccount, error)
	DeleteSocialAccount(ctx context.Context, id string) error

	ListBreachAlerts(ctx context.Context) ([]models.BreachAlert, error)
	ResolveBreachAlert(ctx context.Context, id string) (*models.BreachAlert, error)
}

// TokenSource supplies the bearer token attached to outgoing requests.
// An empty token means the request is sent without credentials.
type TokenSource interface {
	Get(ctx context.Context) (string, error)
}

// UnauthorizedHandler is invoked synchronously when an authenticated request
// is rejected with 401, before the caller sees the error.
type UnauthorizedHandler func(ctx context.Context)

type anonymousKey struct{}

// Anonymous marks ctx so that requests issued with it carry no bearer token
// and never trigger the UnauthorizedHandler.
func Anonymous(ctx context.Context) context.Context {
	return context.WithValue(ctx, anonymousKey{}, true)
}

func isAnonymous(ctx context.Context) bool {
	v, _ := ctx.Value(anonymousKey{}).(bool)
	return v
}
