package client

import (
	"context"
	"encoding/json"

	"github.com/beehive-drones/admin/internal/client/models"
)

// Client is the REST backend as seen by the admin client. Paths are relative
// to the configured API base URL and start with "/".
type Client interface {
	Close() error
	Login(ctx context.Context, email string, password []byte) (*LoginResult, error)
	Logout(ctx context.Context) error
	Get(ctx context.Context, path string) (json.RawMessage, error)
	Send(ctx context.Context, method, path string, body *Body) (json.RawMessage, error)
	Delete(ctx context.Context, path string) error
}

// TokenSource supplies the bearer token for authenticated requests. An empty
// token means the request is sent without an Authorization header.
type TokenSource interface {
	Token() string
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func() string

func (f TokenFunc) Token() string { return f() }

// LoginResult is the body of a successful POST /login.
type LoginResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}
