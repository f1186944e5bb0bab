package imagecodec

import (
	"bytes"
	"errors"
	"image"
	"testing"

	"github.com/faanross/simulacra_media/internal/stego"
)

// newCarrier builds a zeroed RGBA image with opaque alpha.
func newCarrier(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}
	return img
}

func TestRoundTrip(t *testing.T) {
	img := newCarrier(16, 16)
	if err := Encode(img, []byte("ok"), stego.Options{}); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	message, found, err := Decode(img, stego.Options{})
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if !found {
		t.Fatal("Decode() did not find the message")
	}
	if string(message) != "ok" {
		t.Errorf("message = %q, want \"ok\"", message)
	}
}

func TestRoundTrip_WithPassword(t *testing.T) {
	img := newCarrier(64, 64)
	opts := stego.Options{Password: "red channel"}
	if err := Encode(img, []byte("sealed"), opts); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	message, found, err := Decode(img, opts)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if !found || string(message) != "sealed" {
		t.Fatalf("message = %q found = %v, want \"sealed\" true", message, found)
	}

	_, found, err = Decode(img, stego.Options{Password: "blue channel"})
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if found {
		t.Error("Decode() found a message with the wrong password")
	}
}

func TestDecode_UnmodifiedCarrierIsNotFound(t *testing.T) {
	_, found, err := Decode(newCarrier(32, 32), stego.Options{})
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if found {
		t.Error("Decode() found a message in an untouched carrier")
	}
}

func TestCapacityBoundary(t *testing.T) {
	img := newCarrier(16, 16)
	capacity := Capacity(16 * 16)
	if capacity <= 0 {
		t.Fatalf("capacity = %d, want > 0", capacity)
	}

	fits := bytes.Repeat([]byte{'m'}, capacity)
	if err := Encode(newCarrier(16, 16), fits, stego.Options{}); err != nil {
		t.Errorf("message of exactly capacity (%d bytes) rejected: %v", capacity, err)
	}

	overflow := bytes.Repeat([]byte{'m'}, capacity+1)
	err := Encode(img, overflow, stego.Options{})
	if err == nil {
		t.Fatal("message of capacity+1 bytes accepted")
	}
	var capErr *stego.CapacityError
	if !errors.As(err, &capErr) {
		t.Errorf("error type = %T, want *stego.CapacityError", err)
	}

	// The failed encode must not have touched the carrier.
	if !bytes.Equal(img.Pix, newCarrier(16, 16).Pix) {
		t.Error("failed encode mutated the carrier")
	}
}

func TestEncode_OnlyRedLSBsChange(t *testing.T) {
	img := newCarrier(32, 32)
	original := append([]byte(nil), img.Pix...)
	if err := Encode(img, []byte("surgical"), stego.Options{}); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	for i := range img.Pix {
		switch i % 4 {
		case 0: // red: only the LSB may differ
			if img.Pix[i]&0xFE != original[i]&0xFE {
				t.Fatalf("red channel high bits changed at offset %d", i)
			}
		default: // green, blue, alpha: untouched
			if img.Pix[i] != original[i] {
				t.Fatalf("non-red channel changed at offset %d", i)
			}
		}
	}
}

func TestDeterminism(t *testing.T) {
	first := newCarrier(24, 24)
	second := newCarrier(24, 24)
	if err := Encode(first, []byte("same"), stego.Options{}); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if err := Encode(second, []byte("same"), stego.Options{}); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if !bytes.Equal(first.Pix, second.Pix) {
		t.Error("two unencrypted encodes of the same inputs differ")
	}
}
