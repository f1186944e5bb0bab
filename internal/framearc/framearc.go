// Package framearc implements the frame collaborator over FARC, a
// simple lossless frame-archive container: a fixed header with the
// sequence geometry, then one length-prefixed block per frame. Blocks
// are compressed losslessly behind a one-byte tag, so raw RGBA frames
// round-trip bit-exact — a requirement for LSB embedding to survive.
//
// The container enforces the collaborator policy caps (resolution,
// frame rate, duration) that the codecs' capacity math assumes fixed.
package framearc

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/faanross/simulacra_media/internal/media"
)

const (
	magic      = "FARC"
	version    = 1
	headerSize = 16

	// Collaborator policy caps. Capacity is computed against whatever
	// geometry these allow through, so they must not change between
	// encode and decode of one artifact.
	MAX_WIDTH  = 640
	MAX_HEIGHT = 480
	MAX_FPS    = 10
	MAX_FRAMES = 300 // 30 seconds at MAX_FPS
)

var (
	// ErrNotFARC indicates the data is not a FARC container.
	ErrNotFARC = errors.New("not a FARC container")
	// ErrMalformed indicates a structurally broken container.
	ErrMalformed = errors.New("malformed FARC container")
	// ErrLimits indicates the sequence exceeds the collaborator caps.
	ErrLimits = errors.New("frame sequence exceeds collaborator limits")
)

// CompressionTag identifies the per-frame block compression. Tags are
// stored in the container (1 byte each); changing a value breaks
// format compatibility.
type CompressionTag uint8

const (
	// CompressionNone stores the raw RGBA frame. Also the fallback
	// when a compressor cannot shrink a frame.
	CompressionNone CompressionTag = 0
	// CompressionLZ4 uses LZ4 block compression: fast, modest ratio.
	CompressionLZ4 CompressionTag = 1
	// CompressionZstd uses zstd: better ratio on flat synthetic
	// frames, still fast to decode.
	CompressionZstd CompressionTag = 2
)

// String returns the human-readable name of a compression tag.
func (tag CompressionTag) String() string {
	switch tag {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(tag))
	}
}

// ParseCompressionTag parses a compression tag from its string form.
func ParseCompressionTag(name string) (CompressionTag, error) {
	switch name {
	case "none":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZstd, nil
	default:
		return 0, fmt.Errorf("unknown compression tag: %q", name)
	}
}

// Codec is the media.FrameCodec implementation for FARC carriers.
// Compression selects the block compressor used by Assemble; Extract
// honors whatever tag each stored frame carries.
type Codec struct {
	Compression CompressionTag
}

var _ media.FrameCodec = Codec{}

func checkLimits(width, height, fps, frameCount int) error {
	switch {
	case width < 1 || width > MAX_WIDTH:
		return fmt.Errorf("%w: width %d (max %d)", ErrLimits, width, MAX_WIDTH)
	case height < 1 || height > MAX_HEIGHT:
		return fmt.Errorf("%w: height %d (max %d)", ErrLimits, height, MAX_HEIGHT)
	case fps < 1 || fps > MAX_FPS:
		return fmt.Errorf("%w: %d fps (max %d)", ErrLimits, fps, MAX_FPS)
	case frameCount < 1 || frameCount > MAX_FRAMES:
		return fmt.Errorf("%w: %d frames (max %d)", ErrLimits, frameCount, MAX_FRAMES)
	}
	return nil
}

// Assemble writes a frame sequence as a FARC container.
func (c Codec) Assemble(seq *media.FrameSequence) ([]byte, error) {
	if err := checkLimits(seq.Width, seq.Height, seq.FPS, len(seq.Frames)); err != nil {
		return nil, err
	}
	frameSize := seq.Width * seq.Height * 4
	for i, frame := range seq.Frames {
		if len(frame) != frameSize {
			return nil, fmt.Errorf("frame %d is %d bytes, want %d", i, len(frame), frameSize)
		}
	}

	out := make([]byte, 0, headerSize+len(seq.Frames)*(5+frameSize/4))
	out = append(out, magic...)
	out = append(out, version, 0)
	out = binary.BigEndian.AppendUint16(out, uint16(seq.Width))
	out = binary.BigEndian.AppendUint16(out, uint16(seq.Height))
	out = binary.BigEndian.AppendUint16(out, uint16(seq.FPS))
	out = binary.BigEndian.AppendUint32(out, uint32(len(seq.Frames)))

	var zenc *zstd.Encoder
	if c.Compression == CompressionZstd {
		var err error
		zenc, err = zstd.NewWriter(nil)
		if err != nil {
			return nil, fmt.Errorf("creating zstd encoder: %w", err)
		}
		defer zenc.Close()
	}

	for i, frame := range seq.Frames {
		tag, block, err := c.compressFrame(frame, zenc)
		if err != nil {
			return nil, fmt.Errorf("compressing frame %d: %w", i, err)
		}
		out = append(out, byte(tag))
		out = binary.BigEndian.AppendUint32(out, uint32(len(block)))
		out = append(out, block...)
	}
	return out, nil
}

// compressFrame compresses one frame under the configured tag, falling
// back to raw storage when compression does not shrink the block.
func (c Codec) compressFrame(frame []byte, zenc *zstd.Encoder) (CompressionTag, []byte, error) {
	switch c.Compression {
	case CompressionNone:
		return CompressionNone, frame, nil
	case CompressionLZ4:
		dst := make([]byte, lz4.CompressBlockBound(len(frame)))
		var compressor lz4.Compressor
		n, err := compressor.CompressBlock(frame, dst)
		if err != nil {
			return 0, nil, err
		}
		if n == 0 || n >= len(frame) {
			// Incompressible block.
			return CompressionNone, frame, nil
		}
		return CompressionLZ4, dst[:n], nil
	case CompressionZstd:
		block := zenc.EncodeAll(frame, nil)
		if len(block) >= len(frame) {
			return CompressionNone, frame, nil
		}
		return CompressionZstd, block, nil
	default:
		return 0, nil, fmt.Errorf("unknown compression tag: %d", c.Compression)
	}
}

// Extract parses a FARC container back into a frame sequence.
func (Codec) Extract(data []byte) (*media.FrameSequence, error) {
	if len(data) < headerSize || string(data[0:4]) != magic {
		return nil, ErrNotFARC
	}
	if data[4] != version {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrNotFARC, data[4])
	}

	seq := &media.FrameSequence{
		Width:  int(binary.BigEndian.Uint16(data[6:8])),
		Height: int(binary.BigEndian.Uint16(data[8:10])),
		FPS:    int(binary.BigEndian.Uint16(data[10:12])),
	}
	// Validate the declared geometry before any frame allocation, so a
	// hostile header cannot force a huge allocation.
	frameCount := int(binary.BigEndian.Uint32(data[12:16]))
	if err := checkLimits(seq.Width, seq.Height, seq.FPS, frameCount); err != nil {
		return nil, err
	}
	seq.Frames = make([][]byte, 0, frameCount)

	frameSize := seq.Width * seq.Height * 4
	var zdec *zstd.Decoder
	defer func() {
		if zdec != nil {
			zdec.Close()
		}
	}()

	offset := headerSize
	for i := 0; i < frameCount; i++ {
		if offset+5 > len(data) {
			return nil, fmt.Errorf("%w: truncated at frame %d", ErrMalformed, i)
		}
		tag := CompressionTag(data[offset])
		blockLen := int(binary.BigEndian.Uint32(data[offset+1 : offset+5]))
		offset += 5
		if blockLen < 0 || offset+blockLen > len(data) {
			return nil, fmt.Errorf("%w: frame %d block runs past end", ErrMalformed, i)
		}
		block := data[offset : offset+blockLen]
		offset += blockLen

		frame, err := decompressFrame(tag, block, frameSize, &zdec)
		if err != nil {
			return nil, fmt.Errorf("decompressing frame %d: %w", i, err)
		}
		if len(frame) != frameSize {
			return nil, fmt.Errorf("%w: frame %d inflates to %d bytes, want %d",
				ErrMalformed, i, len(frame), frameSize)
		}
		seq.Frames = append(seq.Frames, frame)
	}
	return seq, nil
}

func decompressFrame(tag CompressionTag, block []byte, frameSize int, zdec **zstd.Decoder) ([]byte, error) {
	switch tag {
	case CompressionNone:
		return append([]byte(nil), block...), nil
	case CompressionLZ4:
		frame := make([]byte, frameSize)
		n, err := lz4.UncompressBlock(block, frame)
		if err != nil {
			return nil, err
		}
		return frame[:n], nil
	case CompressionZstd:
		if *zdec == nil {
			dec, err := zstd.NewReader(nil)
			if err != nil {
				return nil, fmt.Errorf("creating zstd decoder: %w", err)
			}
			*zdec = dec
		}
		return (*zdec).DecodeAll(block, make([]byte, 0, frameSize))
	default:
		return nil, fmt.Errorf("unknown compression tag: %d", tag)
	}
}
