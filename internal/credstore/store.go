// Package credstore keeps the API key in the OS keyring, or in a
// passphrase-encrypted file when no keyring is usable.
package credstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"
)

var (
	// ErrNotFound is returned when no secret could be retrieved. A wrong
	// passphrase or a corrupt file is reported the same way.
	ErrNotFound = errors.New("secret not found")
	// ErrNoFallback is returned when the keyring is unusable and no file
	// fallback with a passphrase was supplied.
	ErrNoFallback = errors.New("keyring unavailable and no file fallback configured")
)

// Method records where a secret was stored.
type Method string

const (
	MethodKeyring Method = "keyring"
	MethodFile    Method = "file"
)

// FileFallback locates the encrypted secret file.
type FileFallback struct {
	Path       string
	Passphrase string
}

func (f *FileFallback) usable() bool {
	return f != nil && f.Path != "" && f.Passphrase != ""
}

// Store reads and writes secrets. A decrypted secret file is kept in memory
// until the file changes, so repeated reads skip key derivation.
type Store struct {
	keyring Keyring
	logger  *slog.Logger

	mu     sync.Mutex
	cached *fileSecret
}

// fileSecret is the plaintext of one secret file as of its last change.
type fileSecret struct {
	path       string
	passphrase string
	modTime    time.Time
	size       int64
	secret     string
}

// loadSecretFile decrypts a secret file. Tests replace it to count reads.
var loadSecretFile = readSecretFile

// New creates a Store backed by kr. A nil kr selects OSKeyring.
func New(kr Keyring) *Store {
	if kr == nil {
		kr = OSKeyring{}
	}
	return &Store{keyring: kr, logger: slog.Default()}
}

// KeyringAvailable reports whether the keyring backend is usable.
func (s *Store) KeyringAvailable() bool {
	return s.keyring.Available()
}

// Put stores secret in the keyring when possible, otherwise encrypted in
// fallback.Path.
func (s *Store) Put(service, account, secret string, fallback *FileFallback) (Method, error) {
	if s.keyring.Available() {
		err := s.keyring.Set(service, account, secret)
		if err == nil {
			return MethodKeyring, nil
		}
		if !fallback.usable() {
			return "", fmt.Errorf("failed to store secret in keyring: %w", err)
		}
		s.logger.Warn("keyring write failed, using encrypted file", "service", service, "error", err)
	}

	if !fallback.usable() {
		return "", ErrNoFallback
	}
	s.forget()
	if err := writeSecretFile(fallback.Path, secret, fallback.Passphrase); err != nil {
		return "", err
	}
	return MethodFile, nil
}

// Get returns the secret from the keyring, falling back to the encrypted
// file on a keyring miss.
func (s *Store) Get(service, account string, fallback *FileFallback) (string, error) {
	if s.keyring.Available() {
		secret, err := s.keyring.Get(service, account)
		switch {
		case err == nil:
			return secret, nil
		case !errors.Is(err, ErrNotFound):
			s.logger.Debug("keyring read failed", "service", service, "error", err)
		}
	}

	if !fallback.usable() {
		return "", ErrNotFound
	}
	return s.readFile(fallback)
}

// readFile returns the decrypted fallback file, reusing the cached plaintext
// while the file's modification time and size are unchanged.
func (s *Store) readFile(fb *FileFallback) (string, error) {
	info, err := os.Stat(fb.Path)
	if err != nil {
		s.forget()
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to read secret file: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if c := s.cached; c != nil && c.path == fb.Path && c.passphrase == fb.Passphrase &&
		c.modTime.Equal(info.ModTime()) && c.size == info.Size() {
		return c.secret, nil
	}

	secret, err := loadSecretFile(fb.Path, fb.Passphrase)
	if err != nil {
		s.cached = nil
		return "", err
	}
	s.cached = &fileSecret{
		path:       fb.Path,
		passphrase: fb.Passphrase,
		modTime:    info.ModTime(),
		size:       info.Size(),
		secret:     secret,
	}
	return secret, nil
}

func (s *Store) forget() {
	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()
}

// Delete removes the secret from the keyring and the fallback file. It
// reports whether anything was removed.
func (s *Store) Delete(service, account string, fallback *FileFallback) bool {
	s.forget()
	removed := false
	if s.keyring.Available() {
		if err := s.keyring.Delete(service, account); err == nil {
			removed = true
		} else if !errors.Is(err, ErrNotFound) {
			s.logger.Debug("keyring delete failed", "service", service, "error", err)
		}
	}

	if fallback != nil && fallback.Path != "" {
		if err := os.Remove(fallback.Path); err == nil {
			removed = true
		} else if !errors.Is(err, os.ErrNotExist) {
			s.logger.Debug("failed to remove secret file", "path", fallback.Path, "error", err)
		}
	}
	return removed
}

// Binding is one secret location: a Store plus service, account and
// optional file fallback.
type Binding struct {
	Store    *Store
	Service  string
	Account  string
	Fallback *FileFallback
}

// APIKey returns the bound secret.
func (b Binding) APIKey(ctx context.Context) (string, error) {
	return b.Store.Get(b.Service, b.Account, b.Fallback)
}

// Put stores secret at the bound location. A non-empty passphrase replaces
// the configured one for the file fallback.
func (b Binding) Put(ctx context.Context, secret, passphrase string) (Method, error) {
	b = b.WithPassphrase(passphrase)
	return b.Store.Put(b.Service, b.Account, secret, b.Fallback)
}

// Delete removes the bound secret.
func (b Binding) Delete(ctx context.Context) bool {
	return b.Store.Delete(b.Service, b.Account, b.Fallback)
}

// Status describes where the bound secret currently lives.
func (b Binding) Status(ctx context.Context) (Method, bool) {
	if b.Store.KeyringAvailable() {
		if _, err := b.Store.keyring.Get(b.Service, b.Account); err == nil {
			return MethodKeyring, true
		}
	}
	if b.Fallback != nil && b.Fallback.Path != "" {
		if _, err := os.Stat(b.Fallback.Path); err == nil {
			return MethodFile, true
		}
	}
	return "", false
}

// WithPassphrase returns a copy of b whose file fallback uses passphrase.
// An empty passphrase leaves b unchanged.
func (b Binding) WithPassphrase(passphrase string) Binding {
	if passphrase == "" || b.Fallback == nil {
		return b
	}
	fb := *b.Fallback
	fb.Passphrase = passphrase
	b.Fallback = &fb
	return b
}
