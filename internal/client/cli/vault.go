package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/dmitrijs2005/passgod/internal/client/models"
	"github.com/dmitrijs2005/passgod/internal/common"
)

func (a *App) Passwords(ctx context.Context) error {
	return a.gate.Guard(ctx, "/passwords", func(ctx context.Context, _ *models.User) error {
		items, err := a.vault.ListPasswords(ctx)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			a.println(mutedStyle.Render("No passwords saved yet. Use 'addpassword'."))
			return nil
		}

		rows := make([][]string, 0, len(items))
		for _, p := range items {
			rows = append(rows, []string{p.ID, p.Title, p.Username, p.WebsiteURL})
		}
		a.println(table([]string{"ID", "TITLE", "USERNAME", "WEBSITE"}, rows))
		return nil
	})
}

func (a *App) AddPassword(ctx context.Context) error {
	const route = "/passwords/new"
	return a.gate.Guard(ctx, route, func(ctx context.Context, _ *models.User) error {
		defer a.nav.Leave(route)

		var in models.PasswordInput
		var err error

		if in.Title, err = getSimpleText(a.reader, "Enter title", a.out); err != nil {
			return err
		}
		if in.Username, err = getSimpleText(a.reader, "Enter username", a.out); err != nil {
			return err
		}
		secret, err := getSecret(a.reader, "Enter password", a.out)
		if err != nil {
			return err
		}
		in.Password = string(secret)
		common.WipeByteArray(secret)

		if in.WebsiteURL, err = getSimpleText(a.reader, "Enter website (optional)", a.out); err != nil {
			return err
		}
		if in.Notes, err = GetMultiline(a.reader, "Enter notes (optional)", a.out); err != nil {
			return err
		}

		p, err := a.vault.CreatePassword(ctx, in)
		if err != nil {
			return err
		}
		a.println(okStyle.Render("Saved " + p.Title + " (" + p.ID + ")"))
		return nil
	})
}

func (a *App) ShowPassword(ctx context.Context, id string) error {
	route := "/passwords/" + id
	return a.gate.Guard(ctx, route, func(ctx context.Context, _ *models.User) error {
		defer a.nav.Leave(route)

		p, err := a.vault.GetPassword(ctx, id)
		if err != nil {
			return err
		}

		a.println(titleStyle.Render(p.Title))
		a.printf("Username: %s\n", p.Username)
		if p.WebsiteURL != "" {
			a.printf("Website:  %s\n", p.WebsiteURL)
		}
		if p.Notes != "" {
			a.printf("Notes:\n%s\n", p.Notes)
		}
		a.printf("Created:  %s\n", p.CreatedAt.Format("2006-01-02 15:04"))
		return nil
	})
}

// EditPassword updates a saved password. Empty answers keep the current
// values, including the secret.
func (a *App) EditPassword(ctx context.Context, id string) error {
	route := "/passwords/" + id + "/edit"
	return a.gate.Guard(ctx, route, func(ctx context.Context, _ *models.User) error {
		defer a.nav.Leave(route)

		cur, err := a.vault.GetPassword(ctx, id)
		if err != nil {
			return err
		}

		in := models.PasswordInput{
			Title:      cur.Title,
			Username:   cur.Username,
			WebsiteURL: cur.WebsiteURL,
			Notes:      cur.Notes,
		}
		for _, f := range []struct {
			label string
			dst   *string
		}{
			{"Title", &in.Title},
			{"Username", &in.Username},
			{"Website", &in.WebsiteURL},
		} {
			v, err := getSimpleText(a.reader, f.label+" ["+*f.dst+"]", a.out)
			if err != nil {
				return err
			}
			if v != "" {
				*f.dst = v
			}
		}

		secret, err := getSecret(a.reader, "New password (empty to keep)", a.out)
		if err != nil {
			return err
		}
		in.Password = string(secret)
		common.WipeByteArray(secret)

		notes, err := GetMultiline(a.reader, "Notes (empty to keep)", a.out)
		if err != nil {
			return err
		}
		if notes != "" {
			in.Notes = notes
		}

		p, err := a.vault.UpdatePassword(ctx, id, in)
		if err != nil {
			return err
		}
		a.println(okStyle.Render("Updated " + p.Title + " (" + p.ID + ")"))
		return nil
	})
}

func (a *App) DeletePassword(ctx context.Context, id string) error {
	return a.gate.Guard(ctx, "/passwords", func(ctx context.Context, _ *models.User) error {
		if err := a.vault.DeletePassword(ctx, id); err != nil {
			return err
		}
		a.println(okStyle.Render("Deleted " + id))
		return nil
	})
}

func (a *App) SocialAccounts(ctx context.Context) error {
	return a.gate.Guard(ctx, "/social", func(ctx context.Context, _ *models.User) error {
		items, err := a.vault.ListSocialAccounts(ctx)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			a.println(mutedStyle.Render("No social accounts saved yet. Use 'addsocial'."))
			return nil
		}

		rows := make([][]string, 0, len(items))
		for _, s := range items {
			rows = append(rows, []string{s.ID, s.Platform, s.Username, formatAdditionalData(s.AdditionalData)})
		}
		a.println(table([]string{"ID", "PLATFORM", "USERNAME", "DETAILS"}, rows))
		return nil
	})
}

func (a *App) AddSocialAccount(ctx context.Context) error {
	const route = "/social/new"
	return a.gate.Guard(ctx, route, func(ctx context.Context, _ *models.User) error {
		defer a.nav.Leave(route)

		var in models.SocialAccountInput
		var err error

		if in.Platform, err = getSimpleText(a.reader, "Enter platform", a.out); err != nil {
			return err
		}
		if in.Username, err = getSimpleText(a.reader, "Enter username", a.out); err != nil {
			return err
		}
		secret, err := getSecret(a.reader, "Enter password", a.out)
		if err != nil {
			return err
		}
		in.Password = string(secret)
		common.WipeByteArray(secret)

		lines, err := GetAdditionalData(a.reader, a.out)
		if err != nil {
			return err
		}
		if in.AdditionalData, err = models.AdditionalDataFromString(lines); err != nil {
			return common.NewValidationError(err.Error())
		}

		acc, err := a.vault.CreateSocialAccount(ctx, in)
		if err != nil {
			return err
		}
		a.println(okStyle.Render("Saved " + acc.Platform + " account " + acc.Username + " (" + acc.ID + ")"))
		return nil
	})
}

func (a *App) DeleteSocialAccount(ctx context.Context, id string) error {
	return a.gate.Guard(ctx, "/social", func(ctx context.Context, _ *models.User) error {
		if err := a.vault.DeleteSocialAccount(ctx, id); err != nil {
			return err
		}
		a.println(okStyle.Render("Deleted " + id))
		return nil
	})
}

func (a *App) BreachAlerts(ctx context.Context) error {
	return a.gate.Guard(ctx, "/breach", func(ctx context.Context, _ *models.User) error {
		items, err := a.vault.ListBreachAlerts(ctx)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			a.println(okStyle.Render("No breach alerts."))
			return nil
		}

		rows := make([][]string, 0, len(items))
		for _, b := range items {
			state := "open"
			if b.IsResolved {
				state = "resolved"
			}
			rows = append(rows, []string{b.ID, b.Platform, b.Severity, state, b.Description})
		}
		a.println(table([]string{"ID", "PLATFORM", "SEVERITY", "STATE", "DESCRIPTION"}, rows))
		return nil
	})
}

func (a *App) ResolveAlert(ctx context.Context, id string) error {
	return a.gate.Guard(ctx, "/breach", func(ctx context.Context, _ *models.User) error {
		alert, err := a.vault.ResolveBreachAlert(ctx, id)
		if err != nil {
			return err
		}
		a.println(okStyle.Render("Resolved " + alert.Platform + " alert " + alert.ID))
		return nil
	})
}

func formatAdditionalData(data map[string]any) string {
	if len(data) == 0 {
		return ""
	}
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, data[k]))
	}
	return strings.Join(parts, " ")
}
