// Package session persists the operator's session (bearer token and user
// record) in the local database so it survives restarts.
package session

import "context"

// Keys stored by the session holder.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// Repository is a small key/value store. Get returns (nil, nil) for an
// absent key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
