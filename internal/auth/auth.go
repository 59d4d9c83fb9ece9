// Package auth implements Session State: logging in against a
// CredentialProvider and logging out. Sessions are values; nothing here
// keeps global state.
package auth

import (
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/gradebook/pkg/types"
)

// Authenticator turns credentials into Sessions.
type Authenticator struct {
	provider types.CredentialProvider
	logger   *slog.Logger
	now      func() time.Time
}

// NewAuthenticator returns an Authenticator over provider. A nil logger
// discards output.
func NewAuthenticator(provider types.CredentialProvider, logger *slog.Logger) *Authenticator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Authenticator{provider: provider, logger: logger, now: time.Now}
}

// Login returns a LoggedIn session when the credentials match. On a
// mismatch it returns the LoggedOut session and types.ErrAuthentication.
func (a *Authenticator) Login(username, password string) (types.Session, error) {
	cred, err := a.provider.Authenticate(username, password)
	if err != nil {
		if errors.Is(err, types.ErrAuthentication) {
			a.logger.Warn("login rejected", "username", username)
		}
		return types.Session{}, err
	}

	s := types.Session{
		ID:           newSessionID(),
		Username:     cred.Username,
		Role:         cred.Role,
		PermittedIDs: cred.PermittedIDs,
		LoggedInAt:   a.now().UTC(),
	}
	a.logger.Info("login", "session", s.ID, "username", s.Username, "role", string(s.Role))
	return s, nil
}

// Logout discards the given session and returns the LoggedOut one.
func Logout(types.Session) types.Session {
	return types.Session{}
}

// newSessionID generates a UUID v7, falling back to v4.
func newSessionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
