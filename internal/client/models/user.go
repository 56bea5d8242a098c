// Package models defines the records exchanged with the PassGod backend.
package models

import (
	"encoding/json"
	"time"
)

// User is the profile returned by GET /auth/me.
type User struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	DisplayName string     `json:"full_name"`
	IsActive    bool       `json:"is_active"`
	IsVerified  bool       `json:"is_verified"`
	IsAdmin     bool       `json:"is_admin"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// UnmarshalJSON accepts the identifier under either "id" or "_id".
func (u *User) UnmarshalJSON(b []byte) error {
	type alias User
	aux := struct {
		*alias
		MongoID string `json:"_id"`
	}{alias: (*alias)(u)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	u.ID = pickID(u.ID, aux.MongoID)
	return nil
}

// Name returns the display name, falling back to the email.
func (u *User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Email
}

// Registration is the body of POST /auth/register.
type Registration struct {
	Email       string `json:"email"`
	DisplayName string `json:"full_name"`
	Password    string `json:"password"`
}

// ProfileUpdate is the body of PUT /users/me. Empty fields are left as they
// are on the server.
type ProfileUpdate struct {
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"full_name,omitempty"`
}

// PasswordChange is the body of PUT /users/me/password.
type PasswordChange struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// AccessToken is the body returned by POST /auth/token.
type AccessToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func pickID(id, mongoID string) string {
	if id != "" {
		return id
	}
	return mongoID
}
