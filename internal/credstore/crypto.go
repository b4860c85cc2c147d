package credstore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltSize = 16
	keySize  = 32
)

// kdfIterations is the PBKDF2-HMAC-SHA256 work factor.
var kdfIterations = 390000

// secretFile is the on-disk layout of an encrypted secret.
type secretFile struct {
	Salt  string `json:"salt"`
	Token string `json:"token"`
}

func deriveKey(passphrase string, salt []byte) []byte {
	return pbkdf2.Key([]byte(passphrase), salt, kdfIterations, keySize, sha256.New)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// seal encrypts secret under passphrase and returns base64 salt and token,
// where token is nonce followed by ciphertext.
func seal(secret, passphrase string) (secretFile, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return secretFile{}, fmt.Errorf("failed to generate salt: %w", err)
	}

	aead, err := newGCM(deriveKey(passphrase, salt))
	if err != nil {
		return secretFile{}, fmt.Errorf("failed to create cipher: %w", err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return secretFile{}, fmt.Errorf("failed to generate nonce: %w", err)
	}

	token := aead.Seal(nonce, nonce, []byte(secret), nil)
	return secretFile{
		Salt:  base64.StdEncoding.EncodeToString(salt),
		Token: base64.StdEncoding.EncodeToString(token),
	}, nil
}

// open reverses seal. Every failure, including a wrong passphrase, is
// reported as ErrNotFound.
func open(f secretFile, passphrase string) (string, error) {
	salt, err := base64.StdEncoding.DecodeString(f.Salt)
	if err != nil || len(salt) == 0 {
		return "", ErrNotFound
	}
	token, err := base64.StdEncoding.DecodeString(f.Token)
	if err != nil {
		return "", ErrNotFound
	}

	aead, err := newGCM(deriveKey(passphrase, salt))
	if err != nil {
		return "", ErrNotFound
	}
	if len(token) < aead.NonceSize()+aead.Overhead() {
		return "", ErrNotFound
	}

	nonce, ciphertext := token[:aead.NonceSize()], token[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", ErrNotFound
	}
	return string(plaintext), nil
}

func writeSecretFile(path, secret, passphrase string) error {
	f, err := seal(secret, passphrase)
	if err != nil {
		return err
	}
	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to marshal secret file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write secret file: %w", err)
	}
	// WriteFile keeps the mode of an existing file.
	if err := os.Chmod(path, 0o600); err != nil {
		return fmt.Errorf("failed to restrict secret file: %w", err)
	}
	return nil
}

func readSecretFile(path, passphrase string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to read secret file: %w", err)
	}

	var f secretFile
	if err := json.Unmarshal(data, &f); err != nil {
		return "", ErrNotFound
	}
	return open(f, passphrase)
}
