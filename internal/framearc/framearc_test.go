package framearc

import (
	"bytes"
	"errors"
	"testing"

	"github.com/faanross/simulacra_media/internal/media"
)

// makeSequence builds a sequence of synthetic RGBA frames with a
// per-frame gradient so compression has structure to work with.
func makeSequence(frameCount, width, height int) *media.FrameSequence {
	frames := make([][]byte, frameCount)
	for f := range frames {
		frame := make([]byte, width*height*4)
		for i := 0; i < len(frame); i += 4 {
			frame[i] = byte(f * 20)
			frame[i+1] = byte(i / 4)
			frame[i+2] = byte(f*20 + i/8)
			frame[i+3] = 255
		}
		frames[f] = frame
	}
	return &media.FrameSequence{Frames: frames, Width: width, Height: height, FPS: 10}
}

func TestRoundTrip(t *testing.T) {
	for _, tag := range []CompressionTag{CompressionNone, CompressionLZ4, CompressionZstd} {
		t.Run(tag.String(), func(t *testing.T) {
			seq := makeSequence(5, 64, 48)
			data, err := Codec{Compression: tag}.Assemble(seq)
			if err != nil {
				t.Fatalf("Assemble() error: %v", err)
			}

			got, err := Codec{}.Extract(data)
			if err != nil {
				t.Fatalf("Extract() error: %v", err)
			}
			if got.Width != 64 || got.Height != 48 || got.FPS != 10 {
				t.Errorf("geometry = %dx%d@%d, want 64x48@10", got.Width, got.Height, got.FPS)
			}
			if len(got.Frames) != len(seq.Frames) {
				t.Fatalf("frame count = %d, want %d", len(got.Frames), len(seq.Frames))
			}
			for i := range seq.Frames {
				if !bytes.Equal(got.Frames[i], seq.Frames[i]) {
					t.Fatalf("frame %d did not round-trip bit-exact", i)
				}
			}
		})
	}
}

func TestExtract_NotFARC(t *testing.T) {
	if _, err := (Codec{}).Extract([]byte("RIFF nope")); !errors.Is(err, ErrNotFARC) {
		t.Errorf("error = %v, want ErrNotFARC", err)
	}
}

func TestExtract_Truncated(t *testing.T) {
	data, err := Codec{Compression: CompressionZstd}.Assemble(makeSequence(3, 32, 32))
	if err != nil {
		t.Fatalf("Assemble() error: %v", err)
	}
	if _, err := (Codec{}).Extract(data[:len(data)-10]); !errors.Is(err, ErrMalformed) {
		t.Errorf("error = %v, want ErrMalformed", err)
	}
}

func TestAssemble_EnforcesLimits(t *testing.T) {
	tooWide := makeSequence(2, 32, 32)
	tooWide.Width = MAX_WIDTH + 1
	if _, err := (Codec{}).Assemble(tooWide); !errors.Is(err, ErrLimits) {
		t.Errorf("oversized width: error = %v, want ErrLimits", err)
	}

	tooFast := makeSequence(2, 32, 32)
	tooFast.FPS = MAX_FPS + 5
	if _, err := (Codec{}).Assemble(tooFast); !errors.Is(err, ErrLimits) {
		t.Errorf("oversized fps: error = %v, want ErrLimits", err)
	}
}

func TestAssemble_RejectsMismatchedFrame(t *testing.T) {
	seq := makeSequence(2, 32, 32)
	seq.Frames[1] = seq.Frames[1][:100]
	if _, err := (Codec{}).Assemble(seq); err == nil {
		t.Error("Assemble() accepted a frame with the wrong byte length")
	}
}

func TestExtract_RejectsOversizedHeader(t *testing.T) {
	data, err := Codec{}.Assemble(makeSequence(2, 32, 32))
	if err != nil {
		t.Fatalf("Assemble() error: %v", err)
	}
	// Patch the declared frame count far past the cap.
	data[12], data[13], data[14], data[15] = 0xFF, 0xFF, 0xFF, 0xFF
	if _, err := (Codec{}).Extract(data); !errors.Is(err, ErrLimits) {
		t.Errorf("error = %v, want ErrLimits", err)
	}
}

func TestParseCompressionTag(t *testing.T) {
	for name, want := range map[string]CompressionTag{
		"none": CompressionNone,
		"lz4":  CompressionLZ4,
		"zstd": CompressionZstd,
	} {
		got, err := ParseCompressionTag(name)
		if err != nil {
			t.Fatalf("ParseCompressionTag(%q) error: %v", name, err)
		}
		if got != want {
			t.Errorf("ParseCompressionTag(%q) = %v, want %v", name, got, want)
		}
	}
	if _, err := ParseCompressionTag("brotli"); err == nil {
		t.Error("ParseCompressionTag accepted an unknown name")
	}
}
