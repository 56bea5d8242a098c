package router

import (
	"slices"
	"sync"
)

const (
	HomeRoute  = "/"
	LoginRoute = "/login"
)

// Navigator is the current route plus the history stack. It is safe for
// concurrent use; the 401 handler calls RedirectToLogin from request
// goroutines.
type Navigator struct {
	mu      sync.Mutex
	history []string
}

func NewNavigator(start string) *Navigator {
	if start == "" {
		start = HomeRoute
	}
	return &Navigator{history: []string{start}}
}

func (n *Navigator) Current() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.history[len(n.history)-1]
}

// Push appends route unless it is already current.
func (n *Navigator) Push(route string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.history[len(n.history)-1] == route {
		return
	}
	n.history = append(n.history, route)
}

// Replace swaps the current entry, so Back skips it. When the entry below is
// already route the two collapse into one.
func (n *Navigator) Replace(route string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	last := len(n.history) - 1
	if last > 0 && n.history[last-1] == route {
		n.history = n.history[:last]
		return
	}
	n.history[last] = route
}

// Back drops the current entry. It reports false when there is nothing to go
// back to.
func (n *Navigator) Back() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.history) < 2 {
		return false
	}
	n.history = n.history[:len(n.history)-1]
	return true
}

// Leave drops the current entry only while it is still route. A page calls it
// on exit so that a redirect pushed while the page ran, such as the 401
// redirect to login, is kept.
func (n *Navigator) Leave(route string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	last := len(n.history) - 1
	if last < 1 || n.history[last] != route {
		return false
	}
	n.history = n.history[:last]
	return true
}

// History returns a copy, oldest first.
func (n *Navigator) History() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return slices.Clone(n.history)
}

// RedirectToLogin pushes LoginRoute. It does nothing when the login route is
// already current, so repeated 401s cannot stack login entries.
func (n *Navigator) RedirectToLogin() {
	n.Push(LoginRoute)
}
