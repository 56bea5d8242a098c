// Package apitest runs an in-process fake of the PassGod REST backend for
// tests. It speaks the same JSON shapes and status codes as the real API
// under /api/v1: bearer JWTs from POST /auth/token, FastAPI-style
// {"detail": "..."} errors, one-time expiring share links and the vault
// collections.
//
// Beyond the API it lets a test revoke tokens, move the clock, count hits
// per route and force the next response on a route to fail.
package apitest
