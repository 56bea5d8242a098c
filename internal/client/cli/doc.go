// Package cli provides the interactive PassGod command-line client.
//
// NewApp wires the session controller, the route gate, the vault and share
// services on top of an API client and a persistent token store. App.Run
// resolves the stored session in the background, starts a watcher that picks
// up logins and logouts made by other processes, and then runs the REPL until
// the user exits.
//
// Protected commands (vault, social accounts, breach alerts, share creation)
// go through router.Gate: they wait while the session is resolving and bounce
// to the login route when it is anonymous. Opening a share link needs no
// session.
package cli
