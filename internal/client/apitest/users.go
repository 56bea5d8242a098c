package apitest

import (
	"encoding/json"
	"net/http"

	"golang.org/x/crypto/bcrypt"
)

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		FullName string `json:"full_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeValidation(w, "body", "invalid JSON")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.users[currentUserID(r)]
	changed := false

	if in.Email != "" && in.Email != u.Email {
		if _, taken := s.byEmail[in.Email]; taken {
			writeDetail(w, http.StatusBadRequest, "Email already registered")
			return
		}
		delete(s.byEmail, u.Email)
		s.byEmail[in.Email] = u.ID
		u.Email = in.Email
		changed = true
	}
	if in.FullName != "" {
		u.FullName = in.FullName
		changed = true
	}
	if !changed {
		writeDetail(w, http.StatusBadRequest, "No fields to update")
		return
	}

	now := s.now
	u.UpdatedAt = &now
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	var in struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeValidation(w, "body", "invalid JSON")
		return
	}
	if in.NewPassword == "" {
		writeValidation(w, "new_password", "field required")
		return
	}

	s.mu.Lock()
	u := s.users[currentUserID(r)]
	hash := u.hash
	s.mu.Unlock()

	if bcrypt.CompareHashAndPassword(hash, []byte(in.CurrentPassword)) != nil {
		writeDetail(w, http.StatusBadRequest, "Incorrect current password")
		return
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.MinCost)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "Failed to update password")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now
	u.hash = newHash
	u.UpdatedAt = &now
	writeJSON(w, http.StatusOK, map[string]string{"message": "Password updated successfully"})
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := currentUserID(r)
	delete(s.byEmail, s.users[id].Email)
	delete(s.users, id)
	w.WriteHeader(http.StatusNoContent)
}

// HasUser reports whether an account with email exists.
func (s *Server) HasUser(email string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.byEmail[email]
	return ok
}
