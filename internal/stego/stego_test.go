package stego

import (
	"bytes"
	"strings"
	"testing"
)

func TestSealOpen_NoPassword(t *testing.T) {
	message := []byte("plain embedding")
	payload, err := SealPayload(message, Options{})
	if err != nil {
		t.Fatalf("SealPayload() error: %v", err)
	}
	if !bytes.Equal(payload, message) {
		t.Errorf("payload = %q, want the message unchanged", payload)
	}

	got, ok := OpenPayload(payload, Options{})
	if !ok {
		t.Fatal("OpenPayload() failed on an unencrypted payload")
	}
	if !bytes.Equal(got, message) {
		t.Errorf("message = %q, want %q", got, message)
	}
}

func TestSealOpen_WithPassword(t *testing.T) {
	message := []byte("sealed embedding")
	opts := Options{Password: "open sesame"}

	payload, err := SealPayload(message, opts)
	if err != nil {
		t.Fatalf("SealPayload() error: %v", err)
	}
	if bytes.Contains(payload, message) {
		t.Error("sealed payload contains the plaintext message")
	}

	got, ok := OpenPayload(payload, opts)
	if !ok {
		t.Fatal("OpenPayload() failed with the correct password")
	}
	if !bytes.Equal(got, message) {
		t.Errorf("message = %q, want %q", got, message)
	}
}

func TestOpen_WrongPasswordIsNotFound(t *testing.T) {
	payload, err := SealPayload([]byte("secret"), Options{Password: "right"})
	if err != nil {
		t.Fatalf("SealPayload() error: %v", err)
	}

	if _, ok := OpenPayload(payload, Options{Password: "wrong"}); ok {
		t.Error("OpenPayload() succeeded with the wrong password")
	}
}

func TestSealOpen_Compressed(t *testing.T) {
	message := []byte(strings.Repeat("squeeze me down. ", 200))
	opts := Options{Compress: true}

	payload, err := SealPayload(message, opts)
	if err != nil {
		t.Fatalf("SealPayload() error: %v", err)
	}
	if len(payload) >= len(message) {
		t.Fatalf("compressible payload did not shrink: %d >= %d", len(payload), len(message))
	}

	// Decode side needs no Compress flag: the gzip magic is in-band.
	got, ok := OpenPayload(payload, Options{})
	if !ok {
		t.Fatal("OpenPayload() failed on a compressed payload")
	}
	if !bytes.Equal(got, message) {
		t.Error("compressed round trip did not restore the message")
	}
}

func TestSealOpen_CompressedAndEncrypted(t *testing.T) {
	message := []byte(strings.Repeat("belt and suspenders. ", 150))
	opts := Options{Password: "pw", Compress: true}

	payload, err := SealPayload(message, opts)
	if err != nil {
		t.Fatalf("SealPayload() error: %v", err)
	}
	got, ok := OpenPayload(payload, opts)
	if !ok {
		t.Fatal("OpenPayload() failed")
	}
	if !bytes.Equal(got, message) {
		t.Error("compress+encrypt round trip did not restore the message")
	}
}

func TestCapacityError_Message(t *testing.T) {
	err := &CapacityError{Required: 960, Available: 400, Unit: "pixel slots"}
	want := "message does not fit carrier: need 960 pixel slots, have 400"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
