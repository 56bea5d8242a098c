package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/passgod/internal/common"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	apiPrefix     = "/api/v1"
	tokenValidity = 30 * time.Minute
)

type userRecord struct {
	ID         string     `json:"_id"`
	Email      string     `json:"email"`
	FullName   string     `json:"full_name"`
	IsActive   bool       `json:"is_active"`
	IsVerified bool       `json:"is_verified"`
	IsAdmin    bool       `json:"is_admin"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at"`

	hash []byte
}

type shareRecord struct {
	data      string
	expiresAt time.Time
	used      bool
	createdBy string
}

type injectedFailure struct {
	status int
	detail string
}

type gate struct {
	entered chan struct{}
	release chan struct{}
}

// Server is a fake backend bound to a local httptest listener.
type Server struct {
	srv    *httptest.Server
	tb     testing.TB
	secret []byte

	mu        sync.Mutex
	now       time.Time
	users     map[string]*userRecord
	byEmail   map[string]string
	revoked   map[string]bool
	shares    map[string]*shareRecord
	passwords *collection[passwordRecord]
	social    *collection[socialRecord]
	alerts    *collection[alertRecord]
	hits      map[string]int
	failures  map[string]injectedFailure
	gates     map[string]*gate
}

// New starts a fake backend that is shut down when tb finishes.
func New(tb testing.TB) *Server {
	tb.Helper()

	secret, err := common.MakeRandHexString(32)
	if err != nil {
		tb.Fatalf("apitest: signing secret: %v", err)
	}

	s := &Server{
		tb:        tb,
		secret:    []byte(secret),
		now:       time.Now().UTC(),
		users:     make(map[string]*userRecord),
		byEmail:   make(map[string]string),
		revoked:   make(map[string]bool),
		shares:    make(map[string]*shareRecord),
		passwords: newCollection[passwordRecord](),
		social:    newCollection[socialRecord](),
		alerts:    newCollection[alertRecord](),
		hits:      make(map[string]int),
		failures:  make(map[string]injectedFailure),
		gates:     make(map[string]*gate),
	}

	s.srv = httptest.NewServer(s.routes())
	tb.Cleanup(s.srv.Close)
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.track)

	r.Route(apiPrefix, func(api chi.Router) {
		api.Post("/auth/token", s.handleToken)
		api.Post("/auth/register", s.handleRegister)

		api.Get("/share/{token}", s.handleRedeemShare)

		api.Group(func(authed chi.Router) {
			authed.Use(s.authenticate)

			authed.Get("/auth/me", s.handleMe)
			authed.Put("/users/me", s.handleUpdateProfile)
			authed.Put("/users/me/password", s.handleChangePassword)
			authed.Delete("/users/me", s.handleDeleteAccount)
			authed.Post("/share/create", s.handleCreateShare)

			authed.Get("/passwords/", s.handleListPasswords)
			authed.Post("/passwords/", s.handleCreatePassword)
			authed.Get("/passwords/{id}", s.handleGetPassword)
			authed.Put("/passwords/{id}", s.handleUpdatePassword)
			authed.Delete("/passwords/{id}", s.handleDeletePassword)

			authed.Get("/social/", s.handleListSocial)
			authed.Post("/social/", s.handleCreateSocial)
			authed.Delete("/social/{id}", s.handleDeleteSocial)

			authed.Get("/breach/alerts", s.handleListAlerts)
			authed.Put("/breach/alerts/{id}/resolve", s.handleResolveAlert)
		})
	})

	return r
}

// URL is the server root, e.g. http://127.0.0.1:53211.
func (s *Server) URL() string { return s.srv.URL }

// BaseURL is the API root the client should be configured with.
func (s *Server) BaseURL() string { return s.srv.URL + apiPrefix }

// Close stops the server early; requests then fail at the transport level.
func (s *Server) Close() { s.srv.Close() }

// AddUser registers an account and returns its id.
func (s *Server) AddUser(email, fullName, password string) string {
	s.tb.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		s.tb.Fatalf("hash password: %v", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addUserLocked(email, fullName, hash)
}

func (s *Server) addUserLocked(email, fullName string, hash []byte) string {
	u := &userRecord{
		ID:         uuid.NewString(),
		Email:      email,
		FullName:   fullName,
		IsActive:   true,
		IsVerified: false,
		CreatedAt:  s.now,
		hash:       hash,
	}
	s.users[u.ID] = u
	s.byEmail[email] = u.ID
	return u.ID
}

// IssueToken returns a valid bearer token for userID without a login call.
func (s *Server) IssueToken(userID string) string {
	s.tb.Helper()

	s.mu.Lock()
	now := s.now
	s.mu.Unlock()

	token, err := generateToken(userID, s.secret, now, tokenValidity)
	if err != nil {
		s.tb.Fatalf("issue token: %v", err)
	}
	return token
}

// Revoke makes the server reject token from now on.
func (s *Server) Revoke(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[token] = true
}

// Advance moves the server clock forward, expiring tokens and shares.
func (s *Server) Advance(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = s.now.Add(d)
}

// Hits reports how many requests reached method and path, where path is
// relative to the API root, e.g. Hits("GET", "/auth/me").
func (s *Server) Hits(method, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[routeKey(method, path)]
}

// TotalHits reports the number of requests received on any route.
func (s *Server) TotalHits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, v := range s.hits {
		n += v
	}
	return n
}

// FailNext makes the next request to method and path answer with status and
// a {"detail": detail} body instead of reaching its handler.
func (s *Server) FailNext(method, path string, status int, detail string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[routeKey(method, path)] = injectedFailure{status: status, detail: detail}
}

// Hold parks the next request to method and path until release is called.
// entered is closed once that request has arrived.
func (s *Server) Hold(method, path string) (entered <-chan struct{}, release func()) {
	g := &gate{entered: make(chan struct{}), release: make(chan struct{})}

	s.mu.Lock()
	s.gates[routeKey(method, path)] = g
	s.mu.Unlock()

	var once sync.Once
	return g.entered, func() { once.Do(func() { close(g.release) }) }
}

// ShareUsed reports whether the share token exists and has been redeemed.
func (s *Server) ShareUsed(token string) (used, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sh, ok := s.shares[token]
	if !ok {
		return false, false
	}
	return sh.used, true
}

func (s *Server) track(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := routeKey(r.Method, strings.TrimPrefix(r.URL.Path, apiPrefix))

		s.mu.Lock()
		s.hits[key]++
		failure, failing := s.failures[key]
		delete(s.failures, key)
		g := s.gates[key]
		delete(s.gates, key)
		s.mu.Unlock()

		if g != nil {
			close(g.entered)
			select {
			case <-g.release:
			case <-r.Context().Done():
				return
			}
		}

		if failing {
			writeDetail(w, failure.status, failure.detail)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func routeKey(method, path string) string {
	return strings.ToUpper(method) + " " + path
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

type fieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// writeValidation mimics FastAPI's 422 body, whose detail is a list.
func writeValidation(w http.ResponseWriter, field, msg string) {
	writeJSON(w, http.StatusUnprocessableEntity, map[string][]fieldError{
		"detail": {{Loc: []string{"body", field}, Msg: msg, Type: "value_error"}},
	})
}
