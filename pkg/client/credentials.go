package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotLoggedIn is returned by Load when no credential record exists.
var ErrNotLoggedIn = errors.New("not logged in")

// Credentials is the single persisted client-side identity record.
type Credentials struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

// CredentialStore persists one Credentials record at a fixed path,
// loaded at startup and cleared wholesale on logout.
type CredentialStore struct {
	path string
}

// NewCredentialStore places the record under the user config directory
// (notestash/credentials.json).
func NewCredentialStore() (*CredentialStore, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("locate config dir: %w", err)
	}
	return NewCredentialStoreAt(filepath.Join(dir, "notestash", "credentials.json")), nil
}

func NewCredentialStoreAt(path string) *CredentialStore {
	return &CredentialStore{path: path}
}

func (s *CredentialStore) Load() (*Credentials, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotLoggedIn
	}
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}

	var creds Credentials
	if err := json.Unmarshal(raw, &creds); err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	if creds.Token == "" {
		return nil, ErrNotLoggedIn
	}
	return &creds, nil
}

func (s *CredentialStore) Save(creds Credentials) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	raw, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}

func (s *CredentialStore) Clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
