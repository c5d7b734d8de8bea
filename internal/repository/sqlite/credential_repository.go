package sqlite

import (
	"database/sql"
	"fmt"

	"faceserver/internal/model"
)

// CredentialRepository implements repository.CredentialRepository for SQLite.
type CredentialRepository struct {
	db *DB
}

// NewCredentialRepository creates a new SQLite credential repository.
func NewCredentialRepository(db *DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

// Insert adds a new credential record. An empty session token means the
// account has never logged in.
func (r *CredentialRepository) Insert(cred *model.Credential) (int64, error) {
	r.db.Lock()
	defer r.db.Unlock()

	result, err := r.db.Conn().Exec(`
		INSERT INTO credentials (username, password, session_token)
		VALUES (?, ?, ?)
	`, cred.Username, cred.Password, cred.SessionToken)
	if err != nil {
		return 0, fmt.Errorf("failed to insert credential: %w", err)
	}

	return result.LastInsertId()
}

// GetByID retrieves a credential by its id. Returns nil when not found.
func (r *CredentialRepository) GetByID(id int64) (*model.Credential, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	var cred model.Credential
	err := r.db.Conn().QueryRow(`
		SELECT id, username, password, session_token
		FROM credentials WHERE id = ?
	`, id).Scan(&cred.ID, &cred.Username, &cred.Password, &cred.SessionToken)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query credential: %w", err)
	}

	return &cred, nil
}

// GetByUsername retrieves a credential by username. Returns nil when not found.
func (r *CredentialRepository) GetByUsername(username string) (*model.Credential, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	var cred model.Credential
	err := r.db.Conn().QueryRow(`
		SELECT id, username, password, session_token
		FROM credentials WHERE username = ?
	`, username).Scan(&cred.ID, &cred.Username, &cred.Password, &cred.SessionToken)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query credential: %w", err)
	}

	return &cred, nil
}

// UpdateSessionToken replaces the account's current session token in a
// single UPDATE so a concurrent check never observes a half-written value.
func (r *CredentialRepository) UpdateSessionToken(id int64, token string) error {
	r.db.Lock()
	defer r.db.Unlock()

	result, err := r.db.Conn().Exec(`
		UPDATE credentials SET session_token = ? WHERE id = ?
	`, token, id)
	if err != nil {
		return fmt.Errorf("failed to update session token: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("no credential with id %d", id)
	}

	return nil
}
