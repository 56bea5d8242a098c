package cli

import (
	"context"

	"github.com/dmitrijs2005/passgod/internal/client/models"
	"github.com/dmitrijs2005/passgod/internal/client/router"
	"github.com/dmitrijs2005/passgod/internal/common"
)

// getSimpleText and getSecret are indirections used to facilitate testing.
var (
	getSimpleText = GetSimpleText
	getSecret     = GetSecret
)

// Login prompts for credentials and hands them to the session controller.
// On success the login route is left for whatever preceded it.
func (a *App) Login(ctx context.Context) error {
	a.nav.Push(router.LoginRoute)

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getSecret(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.sessions.Login(ctx, email, string(password))
	if err != nil {
		return err
	}

	if a.nav.Current() == router.LoginRoute && !a.nav.Back() {
		a.nav.Replace(router.HomeRoute)
	}

	a.println(okStyle.Render("Logged in as " + user.Name()))
	return nil
}

// Logout is local: the stored token is dropped and no request is sent.
func (a *App) Logout(ctx context.Context) error {
	if err := a.sessions.Logout(ctx); err != nil {
		return err
	}
	a.nav.RedirectToLogin()
	a.println("Logged out.")
	return nil
}

// Register creates an account; it does not log in.
func (a *App) Register(ctx context.Context) error {
	const route = "/register"
	a.nav.Push(route)
	defer a.nav.Leave(route)

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	name, err := getSimpleText(a.reader, "Enter full name", a.out)
	if err != nil {
		return err
	}
	password, err := getSecret(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.accounts.Register(ctx, models.Registration{Email: email, DisplayName: name, Password: string(password)})
	if err != nil {
		return err
	}

	a.println(okStyle.Render("Account created for " + u.Email + ". Type 'login' to sign in."))
	return nil
}

func (a *App) Whoami(ctx context.Context) error {
	return a.gate.Guard(ctx, "/profile", func(_ context.Context, u *models.User) error {
		a.println(titleStyle.Render(u.Name()))
		a.printf("Email:    %s\n", u.Email)
		a.printf("Verified: %t\n", u.IsVerified)
		if u.IsAdmin {
			a.println("Role:     admin")
		}
		if !u.CreatedAt.IsZero() {
			a.printf("Since:    %s\n", u.CreatedAt.Format("2006-01-02"))
		}
		return nil
	})
}

func (a *App) Back(context.Context) error {
	if !a.nav.Back() {
		a.println("Nothing to go back to.")
		return nil
	}
	a.println("Back at " + a.nav.Current())
	return nil
}
