// Package session enforces the at-most-one-session rule: every login
// rotates the account's opaque token, and every protected request compares
// the client's marker against the freshly re-read stored token. Stale
// clients are only caught on their next request; nothing is pushed to
// them.
package session

import (
	"errors"
	"fmt"

	"faceserver/internal/logger"
	"faceserver/internal/model"
	"faceserver/internal/repository"

	"github.com/google/uuid"
)

// ErrInvalidCredentials is returned by Login when the username/password
// pair does not exist.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Manager issues and validates session tokens. It keeps no in-process
// state; the credential store is the single source of truth.
type Manager struct {
	credentials repository.CredentialRepository
	logger      *logger.Logger
}

// NewManager creates a Manager.
func NewManager(credentials repository.CredentialRepository, log *logger.Logger) *Manager {
	return &Manager{credentials: credentials, logger: log}
}

// Login checks the credentials and, on success, rotates the account's
// session token. Any token issued before this call becomes invalid the
// moment the new one is stored.
func (m *Manager) Login(username, password string) (*model.Credential, string, error) {
	cred, err := m.credentials.GetByUsername(username)
	if err != nil {
		return nil, "", fmt.Errorf("failed to look up credential: %w", err)
	}
	if cred == nil || cred.Password != password {
		return nil, "", ErrInvalidCredentials
	}

	token := uuid.NewString()
	if err := m.credentials.UpdateSessionToken(cred.ID, token); err != nil {
		return nil, "", fmt.Errorf("failed to store session token: %w", err)
	}

	m.logger.Info("Session token rotated for user %s", username)
	return cred, token, nil
}

// Validate reports whether marker is the account's current session token.
// The stored token is re-read on every call so a login elsewhere is seen
// immediately.
func (m *Manager) Validate(id int64, marker string) (bool, error) {
	if marker == "" {
		return false, nil
	}

	cred, err := m.credentials.GetByID(id)
	if err != nil {
		return false, fmt.Errorf("failed to look up credential: %w", err)
	}
	if cred == nil || cred.SessionToken == "" {
		return false, nil
	}

	return cred.SessionToken == marker, nil
}
