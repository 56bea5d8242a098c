// Package common contains shared constants and sentinel errors used across
// PassGod components.
package common

// AccessTokenKey is the metadata key under which the bearer session token is
// persisted. It is namespaced so the local database can hold other entries.
const AccessTokenKey = "passgod_access_token"

// AuthorizationHeaderName and BearerScheme form the header carrying the
// session token on outbound requests.
const (
	AuthorizationHeaderName = "Authorization"
	BearerScheme            = "Bearer"
)

// RequestIDHeaderName correlates client log lines with server-side requests.
const RequestIDHeaderName = "X-Request-ID"
