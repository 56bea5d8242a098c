package cli

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/passgod/internal/client/client"
	"github.com/dmitrijs2005/passgod/internal/client/services"
	"github.com/dmitrijs2005/passgod/internal/common"
	"github.com/dmitrijs2005/passgod/internal/cryptox"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	secretStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

func (a *App) prompt() string {
	who := a.status().String()
	if s := a.sessions.Current(); s.User != nil {
		who = s.User.Name()
	}
	return fmt.Sprintf("passgod %s (%s)> ", a.nav.Current(), who)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) showWaiting(route string) {
	a.println(mutedStyle.Render("Checking session for " + route + "..."))
}

// report prints the short, user-facing form of err. Details go to the log.
func (a *App) report(err error) {
	a.println(errorStyle.Render(userMessage(err)))
}

func userMessage(err error) string {
	var loginErr *services.LoginError
	var validationErr *common.ValidationError
	var apiErr *client.APIError

	switch {
	case errors.As(err, &loginErr):
		return loginErr.Message
	case errors.Is(err, services.ErrShareUnavailable):
		return err.Error()
	case errors.Is(err, services.ErrLoginRequired):
		return "Please log in first (type 'login')."
	case errors.Is(err, services.ErrSuperseded):
		return "The session changed before the request finished."
	case errors.As(err, &validationErr):
		return capitalize(validationErr.Reason) + "."
	case errors.Is(err, services.ErrShareCreate):
		return "Failed to create share link."
	case errors.Is(err, cryptox.ErrDecrypt), errors.Is(err, cryptox.ErrMalformed):
		return "Unable to decrypt: wrong passphrase or damaged data."
	case errors.Is(err, client.ErrUnauthorized):
		return "Your session has expired. Please log in again."
	case errors.Is(err, client.ErrUnavailable):
		return "Server is unavailable. Try again later."
	case errors.As(err, &apiErr):
		if apiErr.Detail != "" {
			return apiErr.Detail
		}
		if apiErr.StatusCode == http.StatusNotFound {
			return "Not found."
		}
		return fmt.Sprintf("Request failed (%d %s).", apiErr.StatusCode, http.StatusText(apiErr.StatusCode))
	default:
		return "Unexpected error: " + err.Error()
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// table lays out rows under a header, padding each column to its widest cell.
func table(header []string, rows [][]string) string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, r := range rows {
		for i, c := range r {
			widths[i] = max(widths[i], lipgloss.Width(c))
		}
	}

	render := func(cells []string, style lipgloss.Style) string {
		parts := make([]string, len(cells))
		for i, c := range cells {
			parts[i] = style.Width(widths[i]).Render(c)
		}
		return strings.TrimRight(strings.Join(parts, "  "), " ")
	}

	var b strings.Builder
	b.WriteString(render(header, headerStyle))
	for _, r := range rows {
		b.WriteString("\n")
		b.WriteString(render(r, lipgloss.NewStyle()))
	}
	return b.String()
}
