package cli

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/passgod/internal/client/models"
	"github.com/dmitrijs2005/passgod/internal/client/services"
	"github.com/dmitrijs2005/passgod/internal/common"
	"github.com/dmitrijs2005/passgod/internal/cryptox"
)

const maxPassphraseAttempts = 3

// Share seals a secret with a passphrase and turns the result into a one-time
// link. Only the sealed text leaves this process.
func (a *App) Share(ctx context.Context) error {
	const route = "/share/new"
	return a.gate.Guard(ctx, route, func(ctx context.Context, _ *models.User) error {
		defer a.nav.Leave(route)

		text, err := GetMultiline(a.reader, "Enter the secret to share", a.out)
		if err != nil {
			return err
		}
		if text == "" {
			return common.NewValidationError("nothing to share")
		}

		passphrase, err := getSecret(a.reader, "Enter a passphrase for the recipient", a.out)
		if err != nil {
			return err
		}
		defer common.WipeByteArray(passphrase)

		ttl, err := a.readTTL()
		if err != nil {
			return err
		}

		sealed, err := cryptox.Seal([]byte(text), passphrase)
		if err != nil {
			if errors.Is(err, cryptox.ErrEmptyPassphrase) {
				return common.NewValidationError("passphrase is required")
			}
			return err
		}

		link, err := a.issuer.Create(ctx, sealed, ttl)
		if err != nil {
			a.log.Warn(ctx, "share link not created", "error", err)
			return err
		}

		a.println(okStyle.Render("Share link created. It works once."))
		a.println(titleStyle.Render(link.Address))
		a.printf("Expires: %s\n", link.ExpiresAt.Local().Format("2006-01-02 15:04"))
		a.println(link.QR)
		a.println(mutedStyle.Render("Send the passphrase through a different channel."))
		return nil
	})
}

func (a *App) readTTL() (int, error) {
	raw, err := getSimpleText(a.reader,
		"Lifetime in minutes (1-1440, empty for "+strconv.Itoa(services.DefaultShareTTLMinutes)+")", a.out)
	if err != nil {
		return 0, err
	}
	if raw == "" {
		return services.DefaultShareTTLMinutes, nil
	}
	ttl, err := strconv.Atoi(raw)
	if err != nil {
		return 0, common.NewValidationError("lifetime must be a whole number of minutes")
	}
	return ttl, nil
}

// Open redeems a share link. No session is needed. The server is asked once;
// after that the payload only lives in this call, so a wrong passphrase can be
// retried a few times before the sealed text is printed as is.
func (a *App) Open(ctx context.Context, link string) error {
	visit := a.redeemer.NewVisit(link)

	route := "/share/" + services.ShareToken(link)
	a.nav.Push(route)
	defer a.nav.Leave(route)

	a.println(mutedStyle.Render("Loading shared secret..."))
	sealed, err := visit.Load(ctx)
	if err != nil {
		return err
	}

	for attempt := 1; attempt <= maxPassphraseAttempts; attempt++ {
		passphrase, err := getSecret(a.reader, "Enter passphrase (empty to show the raw text)", a.out)
		if err != nil {
			return err
		}
		if len(passphrase) == 0 {
			break
		}

		plain, err := cryptox.Open(sealed, passphrase)
		common.WipeByteArray(passphrase)
		if err == nil {
			a.println(secretStyle.Render(string(plain)))
			common.WipeByteArray(plain)
			return nil
		}
		if errors.Is(err, cryptox.ErrMalformed) {
			break
		}
		a.report(err)
	}

	a.println(mutedStyle.Render("Shared text (not decrypted):"))
	a.println(strings.TrimSpace(sealed))
	return nil
}
