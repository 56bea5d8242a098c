package apitest

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/passgod/internal/common"
	"golang.org/x/crypto/bcrypt"
)

type ctxKey string

const userIDKey ctxKey = "userID"

func (s *Server) clock() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scheme, token, _ := strings.Cut(r.Header.Get(common.AuthorizationHeaderName), " ")
		if !strings.EqualFold(scheme, common.BearerScheme) || token == "" {
			unauthorized(w)
			return
		}

		userID, err := userIDFromToken(token, s.secret, s.clock)
		if err != nil {
			unauthorized(w)
			return
		}

		s.mu.Lock()
		_, exists := s.users[userID]
		revoked := s.revoked[token]
		s.mu.Unlock()

		if !exists || revoked {
			unauthorized(w)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, userID)))
	})
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", common.BearerScheme)
	writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
}

func currentUserID(r *http.Request) string {
	id, _ := r.Context().Value(userIDKey).(string)
	return id
}

func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeValidation(w, "username", "invalid form body")
		return
	}
	username, password := r.PostForm.Get("username"), r.PostForm.Get("password")

	s.mu.Lock()
	var hash []byte
	id, ok := s.byEmail[username]
	if ok {
		hash = s.users[id].hash
	}
	s.mu.Unlock()

	if !ok || bcrypt.CompareHashAndPassword(hash, []byte(password)) != nil {
		w.Header().Set("WWW-Authenticate", common.BearerScheme)
		writeDetail(w, http.StatusUnauthorized, "Incorrect email or password")
		return
	}

	token, err := generateToken(id, s.secret, s.clock(), tokenValidity)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"access_token": token, "token_type": "bearer"})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		FullName string `json:"full_name"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeValidation(w, "body", "invalid JSON")
		return
	}
	for _, f := range []struct{ name, value string }{{"email", in.Email}, {"full_name", in.FullName}, {"password", in.Password}} {
		if f.value == "" {
			writeValidation(w, f.name, "field required")
			return
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.MinCost)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[in.Email]; exists {
		writeDetail(w, http.StatusBadRequest, "Email already registered")
		return
	}

	id := s.addUserLocked(in.Email, in.FullName, hash)
	writeJSON(w, http.StatusOK, s.users[id])
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	u := *s.users[currentUserID(r)]
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, u)
}
