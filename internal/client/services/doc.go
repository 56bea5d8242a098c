// Package services contains application services for the PassGod client.
//
// SessionController owns the login state and is the only writer of the
// token store. ShareIssuer and ShareRedeemer create and consume one-time
// share links. VaultService and AccountService are thin wrappers over the
// API that validate required fields before any request is made.
package services
