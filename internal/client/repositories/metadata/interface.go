// Package metadata stores small named values (such as the access token) in
// the local database.
package metadata

import (
	"context"
)

// Repository is a string key/value store. Get reports ok=false for a key
// that was never set or has been deleted.
type Repository interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
