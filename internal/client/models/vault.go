package models

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

var ErrIncorrectAdditionalData = errors.New("additional data item must be name=value")

// Password is a stored credential. The secret itself never comes back from
// the server.
type Password struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Username   string     `json:"username"`
	WebsiteURL string     `json:"website_url,omitempty"`
	Notes      string     `json:"notes,omitempty"`
	UserID     string     `json:"user_id"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

func (p *Password) UnmarshalJSON(b []byte) error {
	type alias Password
	aux := struct {
		*alias
		MongoID string `json:"_id"`
	}{alias: (*alias)(p)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	p.ID = pickID(p.ID, aux.MongoID)
	return nil
}

// PasswordInput is the body of POST /passwords/ and PUT /passwords/{id}.
type PasswordInput struct {
	Title      string `json:"title"`
	Username   string `json:"username"`
	Password   string `json:"password"`
	WebsiteURL string `json:"website_url,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

type SocialAccount struct {
	ID             string         `json:"id"`
	Platform       string         `json:"platform"`
	Username       string         `json:"username"`
	AdditionalData map[string]any `json:"additional_data,omitempty"`
	UserID         string         `json:"user_id"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      *time.Time     `json:"updated_at,omitempty"`
}

func (s *SocialAccount) UnmarshalJSON(b []byte) error {
	type alias SocialAccount
	aux := struct {
		*alias
		MongoID string `json:"_id"`
	}{alias: (*alias)(s)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	s.ID = pickID(s.ID, aux.MongoID)
	return nil
}

type SocialAccountInput struct {
	Platform       string         `json:"platform"`
	Username       string         `json:"username"`
	Password       string         `json:"password"`
	AdditionalData map[string]any `json:"additional_data,omitempty"`
}

// AdditionalDataFromString parses "name=value" items into a map.
// Whitespace around names and values is kept.
func AdditionalDataFromString(items []string) (map[string]any, error) {
	if len(items) == 0 {
		return nil, nil
	}
	data := make(map[string]any, len(items))
	for _, item := range items {
		name, value, ok := strings.Cut(item, "=")
		if !ok || name == "" || strings.Contains(value, "=") {
			return nil, ErrIncorrectAdditionalData
		}
		data[name] = value
	}
	return data, nil
}

// BreachAlert reports a platform breach affecting the user.
// Severity is one of "low", "medium" or "high".
type BreachAlert struct {
	ID          string    `json:"id"`
	Platform    string    `json:"platform"`
	BreachDate  time.Time `json:"breach_date"`
	Description string    `json:"description"`
	Severity    string    `json:"severity"`
	IsResolved  bool      `json:"is_resolved"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func (a *BreachAlert) UnmarshalJSON(b []byte) error {
	type alias BreachAlert
	aux := struct {
		*alias
		MongoID string `json:"_id"`
	}{alias: (*alias)(a)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	a.ID = pickID(a.ID, aux.MongoID)
	return nil
}
