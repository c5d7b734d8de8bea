package repository

import (
	"faceserver/internal/model"
)

// CredentialRepository defines the interface for login account operations.
type CredentialRepository interface {
	Insert(cred *model.Credential) (int64, error)
	GetByID(id int64) (*model.Credential, error)
	GetByUsername(username string) (*model.Credential, error)

	// UpdateSessionToken replaces the account's current session token,
	// implicitly invalidating every previously issued token.
	UpdateSessionToken(id int64, token string) error
}

// EnrollmentRepository defines the interface for enrolled person records.
// Records are written by the provisioning tools and only read at startup.
type EnrollmentRepository interface {
	Insert(enr *model.Enrollment) (int64, error)
	GetAll() ([]model.Enrollment, error)
}

// RecognitionLogRepository defines the interface for the append-only
// recognition log.
type RecognitionLogRepository interface {
	Insert(entry *model.RecognitionEntry) (int64, error)
	GetRecent(limit int) ([]model.RecognitionEntry, error)
}
