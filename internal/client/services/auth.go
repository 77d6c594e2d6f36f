// Package services contains application services for the admin client.
// This file defines the authentication service: login, logout and restoring
// a persisted session at start-up.
package services

import (
	"context"
	"fmt"

	"github.com/beehive-drones/admin/internal/client/client"
	"github.com/beehive-drones/admin/internal/client/models"
	"github.com/beehive-drones/admin/internal/client/session"
	"github.com/beehive-drones/admin/internal/logging"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: exchange credentials for a token and start the session.
//   - Logout: revoke the token on the server (best effort) and always end
//     the local session.
//   - Restore: resume a persisted session that has not expired.
//   - Current: the operator of the active session.
//   - Close: release underlying client resources.
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	Login(ctx context.Context, email string, password []byte) (models.User, error)
	Logout(ctx context.Context) error
	Restore(ctx context.Context) (models.User, bool, error)
	Current() (models.User, bool)
	Close(ctx context.Context) error
}

// authService is the concrete AuthService backed by a remote Client and the
// session holder.
type authService struct {
	client  client.Client
	session *session.Holder
	log     logging.Logger
}

// NewAuthService constructs an AuthService bound to the given API client and
// session holder.
func NewAuthService(c client.Client, s *session.Holder, log logging.Logger) AuthService {
	if log == nil {
		log = logging.Nop()
	}
	return &authService{client: c, session: s, log: log}
}

func (a *authService) Login(ctx context.Context, email string, password []byte) (models.User, error) {
	res, err := a.client.Login(ctx, email, password)
	if err != nil {
		return models.User{}, fmt.Errorf("login error: %w", err)
	}

	if err := a.session.Init(ctx, res.Token, res.User); err != nil {
		return models.User{}, fmt.Errorf("session init error: %w", err)
	}

	a.log.Info(ctx, "logged in", "user_id", res.User.ID, "email", res.User.Email)
	return res.User, nil
}

// Logout ends the session. A failed server-side logout is logged and
// otherwise ignored; the local token is cleared regardless.
func (a *authService) Logout(ctx context.Context) error {
	if a.session.Token() == "" {
		return nil
	}

	if err := a.client.Logout(ctx); err != nil {
		a.log.Warn(ctx, "server logout failed", "error", err)
	}

	if err := a.session.Teardown(ctx); err != nil {
		return fmt.Errorf("session teardown error: %w", err)
	}
	a.log.Info(ctx, "logged out")
	return nil
}

func (a *authService) Restore(ctx context.Context) (models.User, bool, error) {
	ok, err := a.session.Restore(ctx)
	if err != nil {
		return models.User{}, false, fmt.Errorf("session restore error: %w", err)
	}
	if !ok {
		return models.User{}, false, nil
	}
	u, _ := a.session.User()
	a.log.Debug(ctx, "session restored", "user_id", u.ID)
	return u, true, nil
}

func (a *authService) Current() (models.User, bool) {
	if !a.session.Active() {
		return models.User{}, false
	}
	return a.session.User()
}

// Close releases resources held by the underlying client.
func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
