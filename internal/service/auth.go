// Package service provides business-logic services for credential
// authentication and goal tracking, delegating persistence to repository
// interfaces.
package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/fitkeeper/fittrack/internal/models"
)

// saltBytes is the size of the per-credential random salt.
const saltBytes = 16

// CredentialRepository defines the persistence operations
// required by the credential service.
type CredentialRepository interface {
	// InsertUser creates a new credential record. Returns
	// models.ErrDuplicateUsername if the username is already taken.
	InsertUser(ctx context.Context, user models.User) error
	// GetUser fetches the credential record for a username. Returns
	// models.ErrUserNotFound when no record matches.
	GetUser(ctx context.Context, username string) (*models.User, error)
	// UpdateCredentials replaces salt and hashed password together.
	// Returns models.ErrUserNotFound when no record matches.
	UpdateCredentials(ctx context.Context, username, salt, hashedPassword string) error
}

// CredentialService implements account lifecycle operations by delegating
// to a CredentialRepository.
type CredentialService struct {
	// repo performs the data-layer operations.
	repo CredentialRepository
}

// NewCredentialService constructs a new CredentialService using the provided repository.
func NewCredentialService(repo CredentialRepository) *CredentialService {
	return &CredentialService{repo: repo}
}

// hashPassword digests the hex-encoded salt concatenated with the password.
// Single-pass SHA-256, no stretching factor; matches the stored hash format.
func hashPassword(password, salt string) string {
	sum := sha256.Sum256([]byte(salt + password))
	return hex.EncodeToString(sum[:])
}

// generateSalt returns a fresh 128-bit random salt as a hex string.
func generateSalt() (string, error) {
	buf := make([]byte, saltBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// CreateAccount registers a new user with a fresh salt and salted hash.
// The plaintext password is never stored. Returns models.ErrDuplicateUsername
// if the username is already taken.
func (s *CredentialService) CreateAccount(ctx context.Context, username, password string) error {
	salt, err := generateSalt()
	if err != nil {
		return err
	}
	return s.repo.InsertUser(ctx, models.User{
		Username:       username,
		Salt:           salt,
		HashedPassword: hashPassword(password, salt),
	})
}

// Authenticate checks the password against the stored credential record.
// An unknown username returns (false, nil) so callers cannot distinguish it
// from a wrong password.
func (s *CredentialService) Authenticate(ctx context.Context, username, password string) (bool, error) {
	user, err := s.repo.GetUser(ctx, username)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}
	candidate := hashPassword(password, user.Salt)
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(user.HashedPassword)) == 1, nil
}

// ChangePassword replaces the user's salt and hash together in one update.
// Returns models.ErrUserNotFound if the username does not exist.
func (s *CredentialService) ChangePassword(ctx context.Context, username, newPassword string) error {
	salt, err := generateSalt()
	if err != nil {
		return err
	}
	return s.repo.UpdateCredentials(ctx, username, salt, hashPassword(newPassword, salt))
}
