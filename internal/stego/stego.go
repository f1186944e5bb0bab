// Package stego holds the types shared by every codec: the error
// taxonomy, the per-call options, and the payload seal/open step that
// sits between a caller's message and the framing layer.
//
// Decode results follow one convention across all four codecs:
//
//	message, found, err := codec.Decode(carrier, opts)
//
// found=false is the uniform "no hidden message" outcome — no magic in
// the carrier, a truncated frame, or a failed decryption. A non-nil err
// means the operation itself could not be attempted (a collaborator
// failure), which is a different situation than an empty carrier and is
// reported separately.
package stego

import (
	"fmt"

	"github.com/faanross/simulacra_media/internal/scrypto"
)

// CapacityError reports that a message, after framing and redundancy,
// does not fit the carrier. It is returned from encode before any
// carrier mutation begins.
type CapacityError struct {
	Required  int
	Available int
	Unit      string
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("message does not fit carrier: need %d %s, have %d", e.Required, e.Unit, e.Available)
}

// Options configures a single encode or decode call.
type Options struct {
	// Password enables encryption (encode) or decryption (decode) of
	// the payload, and seeds the index scattering for audio/video.
	// Empty means no encryption and the default scatter seed.
	Password string

	// Compress gzips the message before encryption when it actually
	// shrinks it. Decode detects compression from the gzip magic, so
	// this only matters on the encode side.
	Compress bool

	// Cipher overrides the password cipher. Nil selects the default
	// AES-256-GCM + PBKDF2 cipher.
	Cipher scrypto.Cipher
}

func (o Options) cipher() scrypto.Cipher {
	if o.Cipher != nil {
		return o.Cipher
	}
	return scrypto.GCMCipher{}
}

// SealPayload prepares a message for framing: optional compression,
// then optional encryption. With a password the payload is the
// printable ciphertext string as bytes; without one it is the
// (possibly compressed) message itself.
func SealPayload(message []byte, opts Options) ([]byte, error) {
	data := message
	if opts.Compress {
		compressed, err := scrypto.Compress(data)
		if err != nil {
			return nil, fmt.Errorf("compressing message: %w", err)
		}
		data = compressed
	}
	if opts.Password == "" {
		return data, nil
	}
	ciphertext, err := opts.cipher().Encrypt(data, opts.Password)
	if err != nil {
		return nil, fmt.Errorf("encrypting message: %w", err)
	}
	return []byte(ciphertext), nil
}

// OpenPayload reverses SealPayload. It is the single boundary where a
// decryption failure becomes "no message found": a wrong password and
// an unmodified carrier look identical to the caller, by contract.
func OpenPayload(payload []byte, opts Options) ([]byte, bool) {
	data := payload
	if opts.Password != "" {
		plaintext, err := opts.cipher().Decrypt(string(payload), opts.Password)
		if err != nil {
			return nil, false
		}
		data = plaintext
	}
	return scrypto.MaybeDecompress(data), true
}
