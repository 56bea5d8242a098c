package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/passgod/internal/client/services"
)

// execIface is the command surface the REPL dispatches to. App satisfies it;
// tests provide a lightweight stub.
type execIface interface {
	status() services.Status
	report(err error)

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Back(ctx context.Context) error

	EditProfile(ctx context.Context) error
	ChangePassword(ctx context.Context) error
	DeleteAccount(ctx context.Context) error

	Passwords(ctx context.Context) error
	AddPassword(ctx context.Context) error
	ShowPassword(ctx context.Context, id string) error
	EditPassword(ctx context.Context, id string) error
	DeletePassword(ctx context.Context, id string) error

	SocialAccounts(ctx context.Context) error
	AddSocialAccount(ctx context.Context) error
	DeleteSocialAccount(ctx context.Context, id string) error

	BreachAlerts(ctx context.Context) error
	ResolveAlert(ctx context.Context, id string) error

	Share(ctx context.Context) error
	Open(ctx context.Context, link string) error
}

const (
	helpAnonymous     = "Available commands: register, login, open <link>, back, exit"
	helpAuthenticated = "Available commands: whoami, editprofile, changepassword, deleteaccount, " +
		"passwords, addpassword, showpassword <id>, editpassword <id>, deletepassword <id>, " +
		"social, addsocial, deletesocial <id>, alerts, resolve <id>, share, open <link>, back, logout, exit"
)

// runREPL reads a line, treats the first field as the command and the rest as
// arguments, and dispatches to a. Command errors are reported and the loop
// goes on. It exits on EOF, on "exit" or "quit", or when ctx is done.
func runREPL(ctx context.Context, a execIface, promptFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}

		fmt.Fprint(w, promptFn())
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			fmt.Fprintln(w)
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			fmt.Fprintln(w, "Bye!")
			return
		}

		if err := dispatch(ctx, a, cmd, args, w); err != nil {
			a.report(err)
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string, w io.Writer) error {
	withID := func(usage string, fn func(context.Context, string) error) error {
		if len(args) != 1 {
			fmt.Fprintln(w, "Usage:", usage)
			return nil
		}
		return fn(ctx, args[0])
	}

	switch cmd {
	case "help":
		if a.status() == services.StatusAuthenticated {
			fmt.Fprintln(w, helpAuthenticated)
		} else {
			fmt.Fprintln(w, helpAnonymous)
		}
		return nil

	case "register":
		return a.Register(ctx)
	case "login":
		return a.Login(ctx)
	case "logout":
		return a.Logout(ctx)
	case "whoami":
		return a.Whoami(ctx)
	case "back":
		return a.Back(ctx)

	case "editprofile":
		return a.EditProfile(ctx)
	case "changepassword":
		return a.ChangePassword(ctx)
	case "deleteaccount":
		return a.DeleteAccount(ctx)

	case "passwords":
		return a.Passwords(ctx)
	case "addpassword":
		return a.AddPassword(ctx)
	case "showpassword":
		return withID("showpassword <id>", a.ShowPassword)
	case "editpassword":
		return withID("editpassword <id>", a.EditPassword)
	case "deletepassword":
		return withID("deletepassword <id>", a.DeletePassword)

	case "social":
		return a.SocialAccounts(ctx)
	case "addsocial":
		return a.AddSocialAccount(ctx)
	case "deletesocial":
		return withID("deletesocial <id>", a.DeleteSocialAccount)

	case "alerts":
		return a.BreachAlerts(ctx)
	case "resolve":
		return withID("resolve <id>", a.ResolveAlert)

	case "share":
		return a.Share(ctx)
	case "open":
		return withID("open <link|token>", a.Open)

	default:
		fmt.Fprintln(w, "Unknown command:", cmd)
		return nil
	}
}
