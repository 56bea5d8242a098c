// Package tokenstore persists the single access token slot shared by every
// CLI process that opens the same database file.
package tokenstore

import (
	"context"

	"github.com/dmitrijs2005/passgod/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/passgod/internal/common"
)

// Store reads and writes the access token. The session controller is its
// only writer.
type Store struct {
	repo metadata.Repository
	key  string
}

func New(repo metadata.Repository) *Store {
	return &Store{repo: repo, key: common.AccessTokenKey}
}

// Get returns the stored token, or "" when none is stored.
func (s *Store) Get(ctx context.Context) (string, error) {
	token, ok, err := s.repo.Get(ctx, s.key)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}
	return token, nil
}

func (s *Store) Set(ctx context.Context, token string) error {
	if token == "" {
		return common.NewValidationError("access token is empty")
	}
	return s.repo.Set(ctx, s.key, token)
}

// Clear removes the token. Clearing an empty store is not an error.
func (s *Store) Clear(ctx context.Context) error {
	return s.repo.Delete(ctx, s.key)
}
