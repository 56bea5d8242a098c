package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/passgod/internal/client/models"
	"github.com/dmitrijs2005/passgod/internal/common"
)

const (
	settingsRoute      = "/settings"
	deleteConfirmation = "delete"
)

// EditProfile changes the email or display name. The session is reloaded
// afterwards so the prompt shows the new name.
func (a *App) EditProfile(ctx context.Context) error {
	return a.gate.Guard(ctx, settingsRoute, func(ctx context.Context, u *models.User) error {
		var in models.ProfileUpdate
		var err error

		if in.Email, err = getSimpleText(a.reader, "New email (empty to keep "+u.Email+")", a.out); err != nil {
			return err
		}
		if in.DisplayName, err = getSimpleText(a.reader, "New full name (empty to keep "+u.Name()+")", a.out); err != nil {
			return err
		}

		updated, err := a.accounts.UpdateProfile(ctx, in)
		if err != nil {
			return err
		}
		if err := a.sessions.LoadUser(ctx); err != nil {
			a.log.Warn(ctx, "profile updated but session not reloaded", "error", err)
		}

		a.println(okStyle.Render("Profile updated: " + updated.Name() + " <" + updated.Email + ">"))
		return nil
	})
}

func (a *App) ChangePassword(ctx context.Context) error {
	return a.gate.Guard(ctx, settingsRoute, func(ctx context.Context, _ *models.User) error {
		current, err := getSecret(a.reader, "Current password", a.out)
		if err != nil {
			return err
		}
		defer common.WipeByteArray(current)

		next, err := getSecret(a.reader, "New password", a.out)
		if err != nil {
			return err
		}
		defer common.WipeByteArray(next)

		confirm, err := getSecret(a.reader, "Repeat new password", a.out)
		if err != nil {
			return err
		}
		defer common.WipeByteArray(confirm)

		if string(next) != string(confirm) {
			return common.NewValidationError("new passwords do not match")
		}

		if err := a.accounts.ChangePassword(ctx, models.PasswordChange{
			CurrentPassword: string(current),
			NewPassword:     string(next),
		}); err != nil {
			return err
		}

		a.println(okStyle.Render("Password changed."))
		return nil
	})
}

// DeleteAccount asks for confirmation, removes the account on the server and
// logs out.
func (a *App) DeleteAccount(ctx context.Context) error {
	return a.gate.Guard(ctx, settingsRoute, func(ctx context.Context, u *models.User) error {
		answer, err := getSimpleText(a.reader,
			"This removes "+u.Email+" and cannot be undone. Type '"+deleteConfirmation+"' to confirm", a.out)
		if err != nil {
			return err
		}
		if !strings.EqualFold(answer, deleteConfirmation) {
			a.println("Cancelled.")
			return nil
		}

		if err := a.accounts.DeleteAccount(ctx); err != nil {
			return err
		}
		a.log.Info(ctx, "account deleted", "email", u.Email)

		if err := a.sessions.Logout(ctx); err != nil {
			return err
		}
		a.nav.RedirectToLogin()
		a.println(okStyle.Render("Account deleted."))
		return nil
	})
}
