package service

import (
	"context"
	"errors"
	"testing"

	"github.com/fitkeeper/fittrack/internal/models"
)

// memCredentialRepo is an in-memory CredentialRepository for tests.
type memCredentialRepo struct {
	users map[string]models.User
}

func newMemCredentialRepo() *memCredentialRepo {
	return &memCredentialRepo{users: make(map[string]models.User)}
}

func (m *memCredentialRepo) InsertUser(ctx context.Context, user models.User) error {
	if _, ok := m.users[user.Username]; ok {
		return models.ErrDuplicateUsername
	}
	m.users[user.Username] = user
	return nil
}

func (m *memCredentialRepo) GetUser(ctx context.Context, username string) (*models.User, error) {
	user, ok := m.users[username]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	return &user, nil
}

func (m *memCredentialRepo) UpdateCredentials(ctx context.Context, username, salt, hashedPassword string) error {
	user, ok := m.users[username]
	if !ok {
		return models.ErrUserNotFound
	}
	user.Salt = salt
	user.HashedPassword = hashedPassword
	m.users[username] = user
	return nil
}

func TestAuthenticate_AfterCreateAccount(t *testing.T) {
	repo := newMemCredentialRepo()
	svc := NewCredentialService(repo)
	ctx := context.Background()

	if err := svc.CreateAccount(ctx, "alice", "s3cret"); err != nil {
		t.Fatalf("CreateAccount returned error: %v", err)
	}

	ok, err := svc.Authenticate(ctx, "alice", "s3cret")
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if !ok {
		t.Error("expected authentication to succeed with the creation password")
	}
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	repo := newMemCredentialRepo()
	svc := NewCredentialService(repo)
	ctx := context.Background()

	if err := svc.CreateAccount(ctx, "alice", "s3cret"); err != nil {
		t.Fatalf("CreateAccount returned error: %v", err)
	}

	ok, err := svc.Authenticate(ctx, "alice", "wrong")
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if ok {
		t.Error("expected authentication to fail with a different password")
	}
}

func TestAuthenticate_UnknownUsername(t *testing.T) {
	svc := NewCredentialService(newMemCredentialRepo())

	// Unknown usernames report false without an error, so callers cannot
	// enumerate accounts via the error channel.
	ok, err := svc.Authenticate(context.Background(), "ghost", "anything")
	if err != nil {
		t.Fatalf("expected nil error for unknown username, got %v", err)
	}
	if ok {
		t.Error("expected authentication to fail for unknown username")
	}
}

func TestCreateAccount_Duplicate(t *testing.T) {
	repo := newMemCredentialRepo()
	svc := NewCredentialService(repo)
	ctx := context.Background()

	if err := svc.CreateAccount(ctx, "alice", "s3cret"); err != nil {
		t.Fatalf("CreateAccount returned error: %v", err)
	}

	err := svc.CreateAccount(ctx, "alice", "other")
	if !errors.Is(err, models.ErrDuplicateUsername) {
		t.Errorf("expected ErrDuplicateUsername, got %v", err)
	}
}

func TestCreateAccount_FreshSaltPerAccount(t *testing.T) {
	repo := newMemCredentialRepo()
	svc := NewCredentialService(repo)
	ctx := context.Background()

	if err := svc.CreateAccount(ctx, "alice", "same"); err != nil {
		t.Fatalf("CreateAccount returned error: %v", err)
	}
	if err := svc.CreateAccount(ctx, "bob", "same"); err != nil {
		t.Fatalf("CreateAccount returned error: %v", err)
	}

	alice := repo.users["alice"]
	bob := repo.users["bob"]
	if alice.Salt == bob.Salt {
		t.Error("expected distinct salts per account")
	}
	if alice.HashedPassword == bob.HashedPassword {
		t.Error("expected distinct hashes for equal passwords under distinct salts")
	}
	if alice.HashedPassword == "same" || len(alice.HashedPassword) != 64 {
		t.Errorf("expected a 256-bit hex digest, got %q", alice.HashedPassword)
	}
}

func TestChangePassword_RotatesCredentials(t *testing.T) {
	repo := newMemCredentialRepo()
	svc := NewCredentialService(repo)
	ctx := context.Background()

	if err := svc.CreateAccount(ctx, "alice", "old"); err != nil {
		t.Fatalf("CreateAccount returned error: %v", err)
	}
	oldSalt := repo.users["alice"].Salt

	if err := svc.ChangePassword(ctx, "alice", "new"); err != nil {
		t.Fatalf("ChangePassword returned error: %v", err)
	}

	if ok, _ := svc.Authenticate(ctx, "alice", "old"); ok {
		t.Error("expected the old password to be invalidated")
	}
	if ok, _ := svc.Authenticate(ctx, "alice", "new"); !ok {
		t.Error("expected the new password to authenticate")
	}
	if repo.users["alice"].Salt == oldSalt {
		t.Error("expected the salt to be replaced along with the hash")
	}
}

func TestChangePassword_UserNotFound(t *testing.T) {
	repo := newMemCredentialRepo()
	svc := NewCredentialService(repo)

	err := svc.ChangePassword(context.Background(), "ghost", "new")
	if !errors.Is(err, models.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
	if len(repo.users) != 0 {
		t.Error("expected no records to be mutated")
	}
}
