package audiocodec

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/faanross/simulacra_media/internal/stego"
	"github.com/faanross/simulacra_media/internal/wavcodec"
)

// makeSamples synthesizes a deterministic sine carrier.
func makeSamples(n int) []int16 {
	samples := make([]int16, n)
	for i := range samples {
		samples[i] = int16(12000 * math.Sin(float64(i)*0.05))
	}
	return samples
}

func TestRoundTrip(t *testing.T) {
	samples := makeSamples(4000)
	modified, err := Encode(samples, []byte("under the noise floor"), stego.Options{})
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	message, found, err := Decode(modified, stego.Options{})
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if !found {
		t.Fatal("Decode() did not find the message")
	}
	if string(message) != "under the noise floor" {
		t.Errorf("message = %q, want \"under the noise floor\"", message)
	}
}

func TestRoundTrip_WithPassword(t *testing.T) {
	samples := makeSamples(6000)
	opts := stego.Options{Password: "fire walk with me"}
	modified, err := Encode(samples, []byte("scattered"), opts)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	message, found, err := Decode(modified, opts)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if !found || string(message) != "scattered" {
		t.Fatalf("message = %q found = %v, want \"scattered\" true", message, found)
	}

	_, found, err = Decode(modified, stego.Options{Password: "wrong password"})
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if found {
		t.Error("Decode() found a message with the wrong password")
	}
}

func TestDecode_UnmodifiedCarrierIsNotFound(t *testing.T) {
	_, found, err := Decode(makeSamples(4000), stego.Options{})
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if found {
		t.Error("Decode() found a message in an untouched carrier")
	}
}

func TestCapacityBoundary(t *testing.T) {
	const n = 2000
	samples := makeSamples(n)
	capacity := Capacity(n)
	if capacity <= 0 {
		t.Fatalf("capacity = %d, want > 0", capacity)
	}

	fits := bytes.Repeat([]byte{'m'}, capacity)
	if _, err := Encode(samples, fits, stego.Options{}); err != nil {
		t.Errorf("message of exactly capacity (%d bytes) rejected: %v", capacity, err)
	}

	overflow := bytes.Repeat([]byte{'m'}, capacity+1)
	_, err := Encode(samples, overflow, stego.Options{})
	if err == nil {
		t.Fatal("message of capacity+1 bytes accepted")
	}
	var capErr *stego.CapacityError
	if !errors.As(err, &capErr) {
		t.Errorf("error type = %T, want *stego.CapacityError", err)
	}
}

func TestEncode_PreservesCallerBuffer(t *testing.T) {
	samples := makeSamples(4000)
	original := append([]int16(nil), samples...)

	if _, err := Encode(samples, []byte("copy on write"), stego.Options{}); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	for i := range samples {
		if samples[i] != original[i] {
			t.Fatalf("caller's sample %d was mutated", i)
		}
	}
}

func TestEncode_OnlyLSBsChange(t *testing.T) {
	samples := makeSamples(4000)
	modified, err := Encode(samples, []byte("quiet"), stego.Options{})
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	for i := range samples {
		if modified[i]&^1 != samples[i]&^1 {
			t.Fatalf("sample %d changed beyond its LSB: %d -> %d", i, samples[i], modified[i])
		}
	}
}

func TestDeterminism(t *testing.T) {
	samples := makeSamples(4000)
	first, err := Encode(samples, []byte("same"), stego.Options{})
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	second, err := Encode(samples, []byte("same"), stego.Options{})
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("two unencrypted encodes diverge at sample %d", i)
		}
	}
}

func TestFileRoundTrip(t *testing.T) {
	carrier, err := wavcodec.Codec{}.Encode(makeSamples(8000), 44100)
	if err != nil {
		t.Fatalf("building carrier WAV: %v", err)
	}

	artifact, err := EncodeFile(wavcodec.Codec{}, carrier, []byte("end to end"), stego.Options{})
	if err != nil {
		t.Fatalf("EncodeFile() error: %v", err)
	}

	message, found, err := DecodeFile(wavcodec.Codec{}, artifact, stego.Options{})
	if err != nil {
		t.Fatalf("DecodeFile() error: %v", err)
	}
	if !found || string(message) != "end to end" {
		t.Fatalf("message = %q found = %v, want \"end to end\" true", message, found)
	}
}

func TestDecodeFile_CollaboratorFailureIsAnError(t *testing.T) {
	_, _, err := DecodeFile(wavcodec.Codec{}, []byte("definitely not a wav"), stego.Options{})
	if err == nil {
		t.Error("DecodeFile() on garbage input should surface a collaborator error")
	}
}
