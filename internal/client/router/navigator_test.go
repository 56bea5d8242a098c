package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNavigator_PushReplaceBack(t *testing.T) {
	n := NewNavigator("")
	require.Equal(t, HomeRoute, n.Current())

	n.Push("/passwords")
	n.Push("/passwords")
	n.Push("/social")
	assert.Equal(t, []string{"/", "/passwords", "/social"}, n.History())

	n.Replace("/alerts")
	assert.Equal(t, "/alerts", n.Current())

	require.True(t, n.Back())
	assert.Equal(t, "/passwords", n.Current())
	require.True(t, n.Back())
	assert.False(t, n.Back())
	assert.Equal(t, HomeRoute, n.Current())
}

func TestNavigator_HistoryIsACopy(t *testing.T) {
	n := NewNavigator("/a")
	h := n.History()
	h[0] = "/b"
	assert.Equal(t, "/a", n.Current())
}

func TestNavigator_RedirectToLoginIsIdempotent(t *testing.T) {
	n := NewNavigator("/passwords")

	n.RedirectToLogin()
	n.RedirectToLogin()
	n.RedirectToLogin()

	assert.Equal(t, []string{"/passwords", LoginRoute}, n.History())
}

func TestNavigator_ReplaceCollapsesDuplicate(t *testing.T) {
	n := NewNavigator(HomeRoute)
	n.RedirectToLogin()
	n.Push("/profile")
	n.Replace(LoginRoute)

	assert.Equal(t, []string{HomeRoute, LoginRoute}, n.History())
}

func TestNavigator_LeaveKeepsRedirect(t *testing.T) {
	n := NewNavigator(HomeRoute)

	n.Push("/share/new")
	require.True(t, n.Leave("/share/new"))
	assert.Equal(t, []string{HomeRoute}, n.History())

	n.Push("/passwords/abc")
	n.RedirectToLogin()
	assert.False(t, n.Leave("/passwords/abc"))
	assert.Equal(t, []string{HomeRoute, "/passwords/abc", LoginRoute}, n.History())

	assert.False(t, NewNavigator(HomeRoute).Leave(HomeRoute), "the root entry stays")
}
