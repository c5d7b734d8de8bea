package session

import (
	"errors"
	"testing"

	"faceserver/internal/logger"
	"faceserver/internal/model"
)

// fakeCredentialRepository is an in-memory repository.CredentialRepository.
type fakeCredentialRepository struct {
	nextID int64
	creds  map[int64]*model.Credential
}

func newFakeCredentialRepository() *fakeCredentialRepository {
	return &fakeCredentialRepository{nextID: 1, creds: make(map[int64]*model.Credential)}
}

func (f *fakeCredentialRepository) Insert(cred *model.Credential) (int64, error) {
	id := f.nextID
	f.nextID++
	stored := *cred
	stored.ID = id
	f.creds[id] = &stored
	return id, nil
}

func (f *fakeCredentialRepository) GetByID(id int64) (*model.Credential, error) {
	cred, ok := f.creds[id]
	if !ok {
		return nil, nil
	}
	copied := *cred
	return &copied, nil
}

func (f *fakeCredentialRepository) GetByUsername(username string) (*model.Credential, error) {
	for _, cred := range f.creds {
		if cred.Username == username {
			copied := *cred
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeCredentialRepository) UpdateSessionToken(id int64, token string) error {
	cred, ok := f.creds[id]
	if !ok {
		return errors.New("no such credential")
	}
	cred.SessionToken = token
	return nil
}

func newTestManager(t *testing.T) (*Manager, *fakeCredentialRepository, int64) {
	t.Helper()
	repo := newFakeCredentialRepository()
	id, _ := repo.Insert(&model.Credential{Username: "admin", Password: "secret"})
	return NewManager(repo, logger.New(t.TempDir())), repo, id
}

func TestLogin_RotatesToken(t *testing.T) {
	manager, repo, id := newTestManager(t)

	_, token1, err := manager.Login("admin", "secret")
	if err != nil {
		t.Fatalf("First login failed: %v", err)
	}
	_, token2, err := manager.Login("admin", "secret")
	if err != nil {
		t.Fatalf("Second login failed: %v", err)
	}

	if token1 == "" || token2 == "" {
		t.Fatal("Login must return a non-empty token")
	}
	if token1 == token2 {
		t.Fatal("Every login must issue a fresh token")
	}

	stored, _ := repo.GetByID(id)
	if stored.SessionToken != token2 {
		t.Errorf("Stored token must be the latest, got %q", stored.SessionToken)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	manager, _, _ := newTestManager(t)

	if _, _, err := manager.Login("admin", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := manager.Login("nobody", "secret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestValidate_SingleSession(t *testing.T) {
	manager, _, id := newTestManager(t)

	// Client 1 logs in, then client 2 logs in and supersedes it.
	_, token1, _ := manager.Login("admin", "secret")
	_, token2, _ := manager.Login("admin", "secret")

	valid, err := manager.Validate(id, token1)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if valid {
		t.Error("The superseded token must be invalid")
	}

	valid, err = manager.Validate(id, token2)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if !valid {
		t.Error("The latest token must be valid")
	}
}

func TestValidate_LogoutAsymmetry(t *testing.T) {
	manager, repo, id := newTestManager(t)

	_, token, _ := manager.Login("admin", "secret")

	// Logout only clears the client's local marker; the stored token is
	// untouched. A request without a marker fails...
	if valid, _ := manager.Validate(id, ""); valid {
		t.Error("An empty marker must be invalid")
	}

	// ...but the stored token still matches a client that kept it.
	stored, _ := repo.GetByID(id)
	if stored.SessionToken != token {
		t.Fatal("Logout must not change the stored token")
	}
	if valid, _ := manager.Validate(id, token); !valid {
		t.Error("A client still holding the token must be accepted")
	}
}

func TestValidate_NoStoredToken(t *testing.T) {
	manager, _, id := newTestManager(t)

	if valid, _ := manager.Validate(id, "anything"); valid {
		t.Error("An account that never logged in must reject every marker")
	}
	if valid, _ := manager.Validate(999, "anything"); valid {
		t.Error("An unknown account must reject every marker")
	}
}
