package scrypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"

	"github.com/faanross/simulacra_media/internal/spec"
)

// GCMCipher is the default password cipher: PBKDF2-SHA256 key
// derivation and AES-256-GCM authenticated encryption. The ciphertext
// string is base64 of salt || nonce || encrypted-data+tag, so it is
// self-contained and printable.
type GCMCipher struct{}

// Encrypt seals plaintext under a key derived from the password. A
// fresh random salt and nonce are generated per call.
func (GCMCipher) Encrypt(plaintext []byte, password string) (string, error) {
	salt := make([]byte, spec.SALT_SIZE)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("salt generation failed: %w", err)
	}

	key := pbkdf2.Key([]byte(password), salt, spec.PBKDF2_ITERS, spec.KEY_SIZE, sha256.New)

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("cipher creation failed: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("GCM creation failed: %w", err)
	}

	nonce := make([]byte, spec.NONCE_SIZE)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("nonce generation failed: %w", err)
	}

	sealed := gcm.Seal(nil, nonce, plaintext, nil)

	payload := make([]byte, 0, spec.SALT_SIZE+spec.NONCE_SIZE+len(sealed))
	payload = append(payload, salt...)
	payload = append(payload, nonce...)
	payload = append(payload, sealed...)

	return base64.StdEncoding.EncodeToString(payload), nil
}

// Decrypt opens a ciphertext produced by Encrypt. Authentication
// failure (wrong password or corrupted data) is an error; the caller
// decides whether that means "no message".
func (GCMCipher) Decrypt(ciphertext string, password string) ([]byte, error) {
	payload, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return nil, fmt.Errorf("ciphertext is not valid base64: %w", err)
	}

	if len(payload) < spec.SALT_SIZE+spec.NONCE_SIZE+spec.TAG_SIZE {
		return nil, fmt.Errorf("payload too small for decryption: %d bytes", len(payload))
	}

	salt := payload[:spec.SALT_SIZE]
	nonce := payload[spec.SALT_SIZE : spec.SALT_SIZE+spec.NONCE_SIZE]
	sealed := payload[spec.SALT_SIZE+spec.NONCE_SIZE:]

	key := pbkdf2.Key([]byte(password), salt, spec.PBKDF2_ITERS, spec.KEY_SIZE, sha256.New)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("cipher creation failed: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("GCM creation failed: %w", err)
	}

	plaintext, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, fmt.Errorf("authentication failed - wrong password or corrupted data: %w", err)
	}
	return plaintext, nil
}
