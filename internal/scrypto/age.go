package scrypto

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"

	"filippo.io/age"
)

// AgeCipher is an alternative password cipher backed by age's scrypt
// passphrase recipients. Same printable-string contract as GCMCipher;
// the two are not interchangeable on the wire, so encode and decode of
// one artifact must agree on the cipher.
type AgeCipher struct{}

// Encrypt seals plaintext to an age scrypt recipient derived from the
// password and returns the ciphertext base64-encoded.
func (AgeCipher) Encrypt(plaintext []byte, password string) (string, error) {
	recipient, err := age.NewScryptRecipient(password)
	if err != nil {
		return "", fmt.Errorf("creating scrypt recipient: %w", err)
	}

	var buf bytes.Buffer
	writer, err := age.Encrypt(&buf, recipient)
	if err != nil {
		return "", fmt.Errorf("creating age encryptor: %w", err)
	}
	if _, err := writer.Write(plaintext); err != nil {
		return "", fmt.Errorf("writing plaintext to age encryptor: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("finalizing age encryption: %w", err)
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// Decrypt opens an Encrypt output with the password. Any failure —
// bad base64, not an age file, wrong passphrase — is an error.
func (AgeCipher) Decrypt(ciphertext string, password string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return nil, fmt.Errorf("ciphertext is not valid base64: %w", err)
	}

	identity, err := age.NewScryptIdentity(password)
	if err != nil {
		return nil, fmt.Errorf("creating scrypt identity: %w", err)
	}

	reader, err := age.Decrypt(bytes.NewReader(raw), identity)
	if err != nil {
		return nil, fmt.Errorf("decrypting: %w", err)
	}
	plaintext, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading decrypted plaintext: %w", err)
	}
	return plaintext, nil
}
