package apitest

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dmitrijs2005/passgod/internal/common"
	"github.com/go-chi/chi/v5"
)

const (
	defaultShareMinutes = 60
	maxShareMinutes     = 1440
)

func (s *Server) handleCreateShare(w http.ResponseWriter, r *http.Request) {
	var in struct {
		EncryptedData    string `json:"encrypted_data"`
		ExpiresInMinutes *int   `json:"expires_in_minutes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeValidation(w, "body", "invalid JSON")
		return
	}
	if in.EncryptedData == "" {
		writeValidation(w, "encrypted_data", "field required")
		return
	}

	minutes := defaultShareMinutes
	if in.ExpiresInMinutes != nil {
		minutes = *in.ExpiresInMinutes
	}
	if minutes < 1 || minutes > maxShareMinutes {
		writeValidation(w, "expires_in_minutes", "value out of range")
		return
	}

	token, err := common.MakeRandURLToken(32)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "Failed to create shared secret")
		return
	}

	s.mu.Lock()
	expiresAt := s.now.Add(time.Duration(minutes) * time.Minute)
	s.shares[token] = &shareRecord{
		data:      in.EncryptedData,
		expiresAt: expiresAt,
		createdBy: currentUserID(r),
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"token": token, "expires_at": expiresAt, "used": false})
}

func (s *Server) handleRedeemShare(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	s.mu.Lock()
	sh, ok := s.shares[token]
	if !ok || sh.used || sh.expiresAt.Before(s.now) {
		s.mu.Unlock()
		writeDetail(w, http.StatusNotFound, "Invalid or expired token")
		return
	}
	sh.used = true
	data := sh.data
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{"data": data})
}
