package apitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

var supportedPlatforms = []string{"whatsapp", "instagram", "reddit", "discord", "facebook", "linkedin"}

type passwordRecord struct {
	ID         string     `json:"_id"`
	Title      string     `json:"title"`
	Username   string     `json:"username"`
	WebsiteURL string     `json:"website_url,omitempty"`
	Notes      string     `json:"notes,omitempty"`
	UserID     string     `json:"user_id"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at"`

	secret string
}

type socialRecord struct {
	ID             string         `json:"_id"`
	Platform       string         `json:"platform"`
	Username       string         `json:"username"`
	AdditionalData map[string]any `json:"additional_data,omitempty"`
	UserID         string         `json:"user_id"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      *time.Time     `json:"updated_at"`

	secret string
}

type alertRecord struct {
	ID          string    `json:"_id"`
	Platform    string    `json:"platform"`
	BreachDate  time.Time `json:"breach_date"`
	Description string    `json:"description"`
	Severity    string    `json:"severity"`
	IsResolved  bool      `json:"is_resolved"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// collection keeps records in insertion order. Callers hold Server.mu.
type collection[T any] struct {
	order []string
	items map[string]*T
}

func newCollection[T any]() *collection[T] {
	return &collection[T]{items: make(map[string]*T)}
}

func (c *collection[T]) add(id string, v *T) {
	c.items[id] = v
	c.order = append(c.order, id)
}

func (c *collection[T]) get(id string) (*T, bool) {
	v, ok := c.items[id]
	return v, ok
}

func (c *collection[T]) remove(id string) {
	delete(c.items, id)
	c.order = slices.DeleteFunc(c.order, func(s string) bool { return s == id })
}

func (c *collection[T]) list(keep func(*T) bool) []T {
	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		if v := c.items[id]; keep(v) {
			out = append(out, *v)
		}
	}
	return out
}

// AddBreachAlert seeds an unresolved alert for userID and returns its id.
func (s *Server) AddBreachAlert(userID, platform, severity, description string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := &alertRecord{
		ID:          uuid.NewString(),
		Platform:    platform,
		BreachDate:  s.now.AddDate(0, -1, 0),
		Description: description,
		Severity:    severity,
		UserID:      userID,
		CreatedAt:   s.now,
	}
	s.alerts.add(a.ID, a)
	return a.ID
}

// AddPassword seeds a vault password for userID and returns its id.
func (s *Server) AddPassword(userID, title, username, secret string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := &passwordRecord{
		ID:        uuid.NewString(),
		Title:     title,
		Username:  username,
		UserID:    userID,
		CreatedAt: s.now,
		secret:    secret,
	}
	s.passwords.add(p.ID, p)
	return p.ID
}

// PasswordSecret returns the stored secret of a vault password.
func (s *Server) PasswordSecret(id string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.passwords.get(id)
	if !ok {
		return "", false
	}
	return p.secret, true
}

type passwordInput struct {
	Title      string `json:"title"`
	Username   string `json:"username"`
	Password   string `json:"password"`
	WebsiteURL string `json:"website_url"`
	Notes      string `json:"notes"`
}

func decodePasswordInput(w http.ResponseWriter, r *http.Request) (passwordInput, bool) {
	var in passwordInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeValidation(w, "body", "invalid JSON")
		return in, false
	}
	for _, f := range []struct{ name, value string }{{"title", in.Title}, {"username", in.Username}} {
		if f.value == "" {
			writeValidation(w, f.name, "field required")
			return in, false
		}
	}
	return in, true
}

func (s *Server) handleListPasswords(w http.ResponseWriter, r *http.Request) {
	uid := currentUserID(r)

	s.mu.Lock()
	out := s.passwords.list(func(p *passwordRecord) bool { return p.UserID == uid })
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreatePassword(w http.ResponseWriter, r *http.Request) {
	in, ok := decodePasswordInput(w, r)
	if !ok {
		return
	}
	if in.Password == "" {
		writeValidation(w, "password", "field required")
		return
	}

	s.mu.Lock()
	now := s.now
	p := &passwordRecord{
		ID:         uuid.NewString(),
		Title:      in.Title,
		Username:   in.Username,
		WebsiteURL: in.WebsiteURL,
		Notes:      in.Notes,
		UserID:     currentUserID(r),
		CreatedAt:  now,
		UpdatedAt:  &now,
		secret:     in.Password,
	}
	s.passwords.add(p.ID, p)
	out := *p
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) ownedPassword(r *http.Request) (*passwordRecord, bool) {
	p, ok := s.passwords.get(chi.URLParam(r, "id"))
	if !ok || p.UserID != currentUserID(r) {
		return nil, false
	}
	return p, true
}

func (s *Server) handleGetPassword(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	p, ok := s.ownedPassword(r)
	var out passwordRecord
	if ok {
		out = *p
	}
	s.mu.Unlock()

	if !ok {
		writeDetail(w, http.StatusNotFound, "Password not found")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	in, ok := decodePasswordInput(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	p, ok := s.ownedPassword(r)
	if !ok {
		s.mu.Unlock()
		writeDetail(w, http.StatusNotFound, "Password not found or not owned by user")
		return
	}
	now := s.now
	p.Title, p.Username, p.WebsiteURL, p.Notes = in.Title, in.Username, in.WebsiteURL, in.Notes
	if in.Password != "" {
		p.secret = in.Password
	}
	p.UpdatedAt = &now
	out := *p
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDeletePassword(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	p, ok := s.ownedPassword(r)
	if ok {
		s.passwords.remove(p.ID)
	}
	s.mu.Unlock()

	if !ok {
		writeDetail(w, http.StatusNotFound, "Password not found or not owned by user")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListSocial(w http.ResponseWriter, r *http.Request) {
	uid := currentUserID(r)

	s.mu.Lock()
	out := s.social.list(func(a *socialRecord) bool { return a.UserID == uid })
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateSocial(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Platform       string         `json:"platform"`
		Username       string         `json:"username"`
		Password       string         `json:"password"`
		AdditionalData map[string]any `json:"additional_data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeValidation(w, "body", "invalid JSON")
		return
	}
	for _, f := range []struct{ name, value string }{{"platform", in.Platform}, {"username", in.Username}, {"password", in.Password}} {
		if f.value == "" {
			writeValidation(w, f.name, "field required")
			return
		}
	}

	platform := strings.ToLower(in.Platform)
	if !slices.Contains(supportedPlatforms, platform) {
		writeDetail(w, http.StatusBadRequest,
			fmt.Sprintf("Unsupported platform. Supported platforms: %s", strings.Join(supportedPlatforms, ", ")))
		return
	}

	s.mu.Lock()
	now := s.now
	a := &socialRecord{
		ID:             uuid.NewString(),
		Platform:       platform,
		Username:       in.Username,
		AdditionalData: in.AdditionalData,
		UserID:         currentUserID(r),
		CreatedAt:      now,
		UpdatedAt:      &now,
		secret:         in.Password,
	}
	s.social.add(a.ID, a)
	out := *a
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDeleteSocial(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	a, ok := s.social.get(chi.URLParam(r, "id"))
	ok = ok && a.UserID == currentUserID(r)
	if ok {
		s.social.remove(a.ID)
	}
	s.mu.Unlock()

	if !ok {
		writeDetail(w, http.StatusNotFound, "Social account not found or not owned by user")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListAlerts(w http.ResponseWriter, r *http.Request) {
	uid := currentUserID(r)

	s.mu.Lock()
	out := s.alerts.list(func(a *alertRecord) bool { return a.UserID == uid })
	s.mu.Unlock()

	slices.Reverse(out)
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleResolveAlert(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	a, ok := s.alerts.get(chi.URLParam(r, "id"))
	ok = ok && a.UserID == currentUserID(r)
	var out alertRecord
	if ok {
		a.IsResolved = true
		out = *a
	}
	s.mu.Unlock()

	if !ok {
		writeDetail(w, http.StatusNotFound, "Breach alert not found or not owned by user")
		return
	}
	writeJSON(w, http.StatusOK, out)
}
