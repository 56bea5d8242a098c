package services

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/passgod/internal/client/models"
	"github.com/dmitrijs2005/passgod/internal/common"
)

type VaultAPI interface {
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

// VaultService checks required fields and forwards to the API.
type VaultService struct {
	api VaultAPI
}

func NewVaultService(api VaultAPI) *VaultService {
	return &VaultService{api: api}
}

func (s *VaultService) ListPasswords(ctx context.Context) ([]models.Password, error) {
	return s.api.ListPasswords(ctx)
}

func (s *VaultService) GetPassword(ctx context.Context, id string) (*models.Password, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	return s.api.GetPassword(ctx, id)
}

func (s *VaultService) CreatePassword(ctx context.Context, in models.PasswordInput) (*models.Password, error) {
	if err := common.RequireFields("title", in.Title, "username", in.Username, "password", in.Password); err != nil {
		return nil, err
	}
	return s.api.CreatePassword(ctx, in)
}

// UpdatePassword keeps the stored secret when in.Password is empty.
func (s *VaultService) UpdatePassword(ctx context.Context, id string, in models.PasswordInput) (*models.Password, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	if err := common.RequireFields("title", in.Title, "username", in.Username); err != nil {
		return nil, err
	}
	return s.api.UpdatePassword(ctx, id, in)
}

func (s *VaultService) DeletePassword(ctx context.Context, id string) error {
	if err := requireID(id); err != nil {
		return err
	}
	return s.api.DeletePassword(ctx, id)
}

func (s *VaultService) ListSocialAccounts(ctx context.Context) ([]models.SocialAccount, error) {
	return s.api.ListSocialAccounts(ctx)
}

func (s *VaultService) CreateSocialAccount(ctx context.Context, in models.SocialAccountInput) (*models.SocialAccount, error) {
	if err := common.RequireFields("platform", in.Platform, "username", in.Username, "password", in.Password); err != nil {
		return nil, err
	}
	in.Platform = strings.ToLower(strings.TrimSpace(in.Platform))
	return s.api.CreateSocialAccount(ctx, in)
}

func (s *VaultService) DeleteSocialAccount(ctx context.Context, id string) error {
	if err := requireID(id); err != nil {
		return err
	}
	return s.api.DeleteSocialAccount(ctx, id)
}

func (s *VaultService) ListBreachAlerts(ctx context.Context) ([]models.BreachAlert, error) {
	return s.api.ListBreachAlerts(ctx)
}

func (s *VaultService) ResolveBreachAlert(ctx context.Context, id string) (*models.BreachAlert, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	return s.api.ResolveBreachAlert(ctx, id)
}

func requireID(id string) error {
	return common.RequireFields("id", strings.TrimSpace(id))
}
