package scrypto

import (
	"fmt"
	"syscall"

	"golang.org/x/term"
)

// Cipher is the password-based encryption boundary the codecs depend
// on. Encrypt returns a self-contained printable string (safe to embed
// as payload bytes); Decrypt fails closed on a wrong password or
// malformed ciphertext instead of returning garbage.
type Cipher interface {
	Encrypt(plaintext []byte, password string) (string, error)
	Decrypt(ciphertext string, password string) ([]byte, error)
}

// GetSecurePassword prompts for password with hidden input
func GetSecurePassword(prompt string) ([]byte, error) {
	fmt.Print(prompt)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println() // New line after password

	if err != nil {
		return nil, fmt.Errorf("password read failed: %w", err)
	}

	if len(password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}

	return password, nil
}
