package models

import "time"

// ShareRequest is the body of POST /share/create. EncryptedData is opaque to
// the client; it is produced by cryptox or any other encryptor.
type ShareRequest struct {
	EncryptedData    string `json:"encrypted_data"`
	ExpiresInMinutes int    `json:"expires_in_minutes"`
}

// ShareResponse is the body returned by POST /share/create.
type ShareResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Used      bool      `json:"used"`
}

// SharePayload is the body returned by GET /share/{token}.
type SharePayload struct {
	Data string `json:"data"`
}

// ShareLink is a ready-to-hand-out one-time link.
type ShareLink struct {
	Token     string
	Address   string
	ExpiresAt time.Time
	Consumed  bool
	// QR is the encoded Address as produced by a LinkEncoder.
	QR string
}
