// Package client is the HTTP transport to the PassGod backend.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface).
//  2. A concrete REST implementation (see HTTPClient) on top of
//     go-resty/resty. A request hook attaches the stored bearer token and an
//     X-Request-ID to every request; a response hook reports 401 rejections
//     of authenticated requests to an injected UnauthorizedHandler.
//
// Requests made with a context returned by Anonymous carry no token and are
// exempt from the 401 hook. Token and RedeemShare use it internally.
//
// # Error Handling
//
// Transport failures wrap ErrUnavailable. Non-2xx responses are *APIError
// values that unwrap to ErrUnauthorized (401) or ErrNotFound (404) where
// applicable; use Detail to extract the server's message.
//
// Nothing here retries a request or imposes a timeout of its own; cancel ctx
// to abandon a call.
package client
