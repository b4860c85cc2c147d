package credstore

import (
	"errors"

	"github.com/zalando/go-keyring"
)

const (
	probeService = "ai_notepad.probe"
	probeAccount = "availability"
)

// Keyring is an OS secret manager.
type Keyring interface {
	// Available reports whether the backend can be used at all.
	Available() bool
	Set(service, account, secret string) error
	// Get returns ErrNotFound when no secret is stored.
	Get(service, account string) (string, error)
	// Delete returns ErrNotFound when no secret is stored.
	Delete(service, account string) error
}

// OSKeyring is the platform keyring (Secret Service, Keychain, Credential
// Manager) via go-keyring.
type OSKeyring struct{}

// Available probes the backend with a lookup that is expected to miss.
func (OSKeyring) Available() bool {
	_, err := keyring.Get(probeService, probeAccount)
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}

func (OSKeyring) Set(service, account, secret string) error {
	return keyring.Set(service, account, secret)
}

func (OSKeyring) Get(service, account string) (string, error) {
	secret, err := keyring.Get(service, account)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNotFound
	}
	return secret, err
}

func (OSKeyring) Delete(service, account string) error {
	err := keyring.Delete(service, account)
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
