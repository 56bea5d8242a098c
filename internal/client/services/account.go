package services

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/passgod/internal/client/models"
	"github.com/dmitrijs2005/passgod/internal/common"
)

type AccountAPI interface {
	Register(ctx context.Context, in models.Registration) (*models.User, error)
	UpdateProfile(ctx context.Context, in models.ProfileUpdate) (*models.User, error)
	ChangePassword(ctx context.Context, in models.PasswordChange) error
	DeleteAccount(ctx context.Context) error
}

type AccountService struct {
	api AccountAPI
}

func NewAccountService(api AccountAPI) *AccountService {
	return &AccountService{api: api}
}

// Register creates an account. It does not log in.
func (s *AccountService) Register(ctx context.Context, in models.Registration) (*models.User, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := common.RequireFields("email", in.Email, "full name", in.DisplayName, "password", in.Password); err != nil {
		return nil, err
	}
	if err := checkEmail(in.Email); err != nil {
		return nil, err
	}
	return s.api.Register(ctx, in)
}

// UpdateProfile changes the email, the display name, or both. Blank fields
// are not sent.
func (s *AccountService) UpdateProfile(ctx context.Context, in models.ProfileUpdate) (*models.User, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.DisplayName = strings.TrimSpace(in.DisplayName)
	if in.Email == "" && in.DisplayName == "" {
		return nil, common.NewValidationError("nothing to update")
	}
	if in.Email != "" {
		if err := checkEmail(in.Email); err != nil {
			return nil, err
		}
	}
	return s.api.UpdateProfile(ctx, in)
}

func (s *AccountService) ChangePassword(ctx context.Context, in models.PasswordChange) error {
	if err := common.RequireFields("current password", in.CurrentPassword, "new password", in.NewPassword); err != nil {
		return err
	}
	if in.CurrentPassword == in.NewPassword {
		return common.NewValidationError("new password must differ from the current one")
	}
	return s.api.ChangePassword(ctx, in)
}

// DeleteAccount removes the account on the server. The caller still has to
// log out locally.
func (s *AccountService) DeleteAccount(ctx context.Context) error {
	return s.api.DeleteAccount(ctx)
}

func checkEmail(email string) error {
	if !strings.Contains(email, "@") {
		return common.NewValidationError("email is not valid")
	}
	return nil
}
