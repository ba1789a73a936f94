// Package auth stores the session token in the operating system keyring. It
// is the concrete implementation of the client.TokenStore collaborator; the
// rest of the program only sees the interface.
package auth

import (
	"errors"

	"github.com/zalando/go-keyring"
)

// KeyringService is the service name tokens are filed under in the keyring.
const KeyringService = "MindTrack"

// KeyringStore is a client.TokenStore backed by the system keyring.
type KeyringStore struct {
	service string
	key     string
}

// NewKeyringStore creates a store using the given keyring key. An empty key
// defaults to "auth_token".
func NewKeyringStore(key string) *KeyringStore {
	if key == "" {
		key = "auth_token"
	}
	return &KeyringStore{service: KeyringService, key: key}
}

// Token returns the stored token, or an empty string if none is stored.
func (s *KeyringStore) Token() (string, error) {
	token, err := keyring.Get(s.service, s.key)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", nil
		}
		return "", errors.New("failed to access keyring: " + err.Error())
	}
	return token, nil
}

// SetToken stores a token.
func (s *KeyringStore) SetToken(token string) error {
	if err := keyring.Set(s.service, s.key, token); err != nil {
		return errors.New("failed to write keyring: " + err.Error())
	}
	return nil
}

// Clear removes the stored token. Clearing an empty keyring is not an error.
func (s *KeyringStore) Clear() error {
	err := keyring.Delete(s.service, s.key)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return errors.New("failed to clear keyring: " + err.Error())
	}
	return nil
}
