// Package session holds the operator's bearer token and user record for the
// lifetime of a login. Init is called after a successful login, Teardown on
// logout or on any 401; between the two the holder is read-only.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/beehive-drones/admin/internal/client/models"
	sessionrepo "github.com/beehive-drones/admin/internal/client/repositories/session"
	"github.com/beehive-drones/admin/internal/dbx"
	"github.com/golang-jwt/jwt/v5"
)

// Holder is the session object passed to every network-calling component.
// It implements client.TokenSource.
type Holder struct {
	mu    sync.RWMutex
	token string
	user  models.User

	db   *sql.DB
	repo *sessionrepo.SQLiteRepository
	now  func() time.Time
}

// NewHolder returns a holder persisting to db. A nil db keeps the session in
// memory only.
func NewHolder(db *sql.DB) *Holder {
	h := &Holder{db: db, now: time.Now}
	if db != nil {
		h.repo = sessionrepo.NewSQLiteRepository(db)
	}
	return h
}

// Init starts a session. The token and user are persisted in one
// transaction before they become visible.
func (h *Holder) Init(ctx context.Context, token string, user models.User) error {
	if token == "" {
		return fmt.Errorf("empty token")
	}

	if h.db != nil {
		userJSON, err := json.Marshal(user)
		if err != nil {
			return fmt.Errorf("encode user: %w", err)
		}
		err = dbx.WithTx(ctx, h.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
			repo := h.repo.WithDB(tx)
			if err := repo.Set(ctx, sessionrepo.KeyToken, []byte(token)); err != nil {
				return err
			}
			return repo.Set(ctx, sessionrepo.KeyUser, userJSON)
		})
		if err != nil {
			return fmt.Errorf("persist session: %w", err)
		}
	}

	h.mu.Lock()
	h.token = token
	h.user = user
	h.mu.Unlock()
	return nil
}

// Token returns the bearer token, or "" when logged out.
func (h *Holder) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// User returns the logged-in operator.
func (h *Holder) User() (models.User, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.user, h.token != ""
}

// Active reports whether a session is present and not expired.
func (h *Holder) Active() bool {
	tok := h.Token()
	return tok != "" && !h.expired(tok)
}

// Teardown ends the session. The in-memory state is cleared even when the
// persisted copy cannot be removed.
func (h *Holder) Teardown(ctx context.Context) error {
	h.mu.Lock()
	h.token = ""
	h.user = models.User{}
	h.mu.Unlock()

	if h.repo == nil {
		return nil
	}
	if err := h.repo.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Restore loads a persisted session. It reports false when there is none or
// when the stored token has expired, in which case the stale copy is removed.
func (h *Holder) Restore(ctx context.Context) (bool, error) {
	if h.repo == nil {
		return false, nil
	}

	tok, err := h.repo.Get(ctx, sessionrepo.KeyToken)
	if err != nil {
		return false, err
	}
	if len(tok) == 0 {
		return false, nil
	}
	if h.expired(string(tok)) {
		return false, h.Teardown(ctx)
	}

	var user models.User
	raw, err := h.repo.Get(ctx, sessionrepo.KeyUser)
	if err != nil {
		return false, err
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &user); err != nil {
			return false, fmt.Errorf("decode stored user: %w", err)
		}
	}

	h.mu.Lock()
	h.token = string(tok)
	h.user = user
	h.mu.Unlock()
	return true, nil
}

func (h *Holder) expired(token string) bool {
	exp, ok := ExpiresAt(token)
	return ok && !h.now().Before(exp)
}

// ExpiresAt reads the exp claim of a JWT without verifying its signature.
// Opaque tokens, and JWTs without exp, report false.
func ExpiresAt(token string) (time.Time, bool) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
