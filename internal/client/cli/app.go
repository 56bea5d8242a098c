package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/passgod/internal/client/client"
	"github.com/dmitrijs2005/passgod/internal/client/config"
	"github.com/dmitrijs2005/passgod/internal/client/router"
	"github.com/dmitrijs2005/passgod/internal/client/services"
	"github.com/dmitrijs2005/passgod/internal/logging"
)

// Backend is the API client together with its 401 hook.
type Backend interface {
	client.Client
	OnUnauthorized(h client.UnauthorizedHandler)
}

type App struct {
	config   *config.Config
	sessions *services.SessionController
	accounts *services.AccountService
	vault    *services.VaultService
	issuer   *services.ShareIssuer
	redeemer *services.ShareRedeemer
	nav      *router.Navigator
	gate     *router.Gate
	log      logging.Logger
	reader   *bufio.Reader
	out      io.Writer
}

func NewApp(cfg *config.Config, api Backend, store services.TokenStore, encoder services.LinkEncoder,
	log logging.Logger, in io.Reader, out io.Writer) *App {

	sessions := services.NewSessionController(api, store, log)
	nav := router.NewNavigator(router.HomeRoute)

	a := &App{
		config:   cfg,
		sessions: sessions,
		accounts: services.NewAccountService(api),
		vault:    services.NewVaultService(api),
		issuer:   services.NewShareIssuer(api, sessions, encoder, cfg.WebOrigin, log),
		redeemer: services.NewShareRedeemer(api, log),
		nav:      nav,
		log:      log,
		reader:   bufio.NewReader(in),
		out:      out,
	}
	a.gate = router.NewGate(sessions, nav, a.showWaiting)

	api.OnUnauthorized(func(ctx context.Context) {
		sessions.Invalidate(ctx)
		nav.RedirectToLogin()
	})

	return a
}

// Run blocks until the user exits or ctx is done.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fmt.Fprintln(a.out, titleStyle.Render("PassGod CLI")+" (type 'help' for commands)")

	go func() {
		if err := a.sessions.Start(ctx); err != nil {
			a.log.Info(ctx, "stored session not restored", "error", err)
		}
	}()

	if a.config.TokenCheckInterval > 0 {
		go a.StartTokenWatcher(ctx, a.config.TokenCheckInterval)
	}

	runREPL(ctx, a, a.prompt, a.reader, a.out)
	return nil
}

func (a *App) status() services.Status {
	return a.sessions.Current().Status
}

// StartTokenWatcher re-reads the stored token every interval so that a login
// or logout made by another process is reflected here.
func (a *App) StartTokenWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			before := a.sessions.Current().Status
			if err := a.sessions.Reconcile(ctx); err != nil {
				a.log.Warn(ctx, "token check failed", "error", err)
				continue
			}
			if after := a.sessions.Current().Status; after != before {
				a.log.Info(ctx, "session changed outside this process", "status", after.String())
			}

		case <-ctx.Done():
			return
		}
	}
}
