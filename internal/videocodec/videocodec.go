// Package videocodec hides messages in the blue-channel LSBs of a
// frame sequence. Each frame gets its own scattered pixel ordering,
// derived from the base seed plus the frame index, so all frames share
// one coherent bit stream without reusing positions. Frame bits carry
// 3x redundancy, as in the audio codec.
package videocodec

import (
	"fmt"
	"math"

	"github.com/faanross/simulacra_media/internal/bitstream"
	"github.com/faanross/simulacra_media/internal/media"
	"github.com/faanross/simulacra_media/internal/scatter"
	"github.com/faanross/simulacra_media/internal/spec"
	"github.com/faanross/simulacra_media/internal/stego"
)

// Capacity returns the maximum message size in bytes for a sequence
// with the given total pixel count across all frames.
func Capacity(totalPixels int) int {
	usable := int(float64(totalPixels) * spec.VIDEO_EMBED_FRACTION)
	return usable/spec.REDUNDANCY/spec.BITS_PER_BYTE - spec.HEADER_SIZE
}

// frameBudget is the number of pixels of one frame that may carry bits.
func frameBudget(pixelsPerFrame int) int {
	return int(math.Ceil(float64(pixelsPerFrame) * spec.VIDEO_EMBED_FRACTION))
}

func embedBit(value uint8, bit bool) uint8 {
	if bit {
		return value | 1
	}
	return value & 0xFE
}

// Encode embeds message into a deep copy of the sequence and returns
// the copy. Frames beyond the last one needed are carried over
// untouched.
func Encode(seq *media.FrameSequence, message []byte, opts stego.Options) (*media.FrameSequence, error) {
	payload, err := stego.SealPayload(message, opts)
	if err != nil {
		return nil, err
	}

	frame := bitstream.FrameEncode(payload, spec.MAGIC_VIDEO)
	redundant := bitstream.Repeat(frame, spec.REDUNDANCY)

	pixels := seq.PixelsPerFrame()
	budget := len(seq.Frames) * frameBudget(pixels)
	if len(redundant) > budget {
		return nil, &stego.CapacityError{
			Required:  len(redundant),
			Available: budget,
			Unit:      "pixel slots",
		}
	}

	seed := scatter.DeriveSeed(opts.Password)
	out := seq.Clone()

	written := 0
	for frameIndex := range out.Frames {
		if written == len(redundant) {
			break
		}
		take := frameBudget(pixels)
		if remaining := len(redundant) - written; take > remaining {
			take = remaining
		}
		indices, err := scatter.Indices(scatter.FrameSeed(seed, frameIndex), pixels, take)
		if err != nil {
			return nil, err
		}
		pix := out.Frames[frameIndex]
		for _, idx := range indices {
			offset := idx*4 + 2 // blue channel of RGBA pixel
			pix[offset] = embedBit(pix[offset], redundant[written])
			written++
		}
	}
	return out, nil
}

// Decode mirrors the per-frame seed derivation and index selection,
// accumulating blue-channel LSBs frame by frame. After each frame it
// attempts a decode, so a message that fits in the first few frames is
// recovered without scanning the rest of the sequence.
func Decode(seq *media.FrameSequence, opts stego.Options) ([]byte, bool, error) {
	pixels := seq.PixelsPerFrame()
	seed := scatter.DeriveSeed(opts.Password)

	redundant := make(bitstream.Bits, 0, len(seq.Frames)*frameBudget(pixels))
	for frameIndex, pix := range seq.Frames {
		indices, err := scatter.Indices(scatter.FrameSeed(seed, frameIndex), pixels, frameBudget(pixels))
		if err != nil {
			return nil, false, err
		}
		for _, idx := range indices {
			redundant = append(redundant, pix[idx*4+2]&1 == 1)
		}

		collapsed := bitstream.Collapse(redundant, spec.REDUNDANCY)
		payload, ok := bitstream.FrameDecode(collapsed, spec.MAGIC_VIDEO)
		if !ok {
			continue
		}
		message, ok := stego.OpenPayload(payload, opts)
		if !ok {
			return nil, false, nil
		}
		return message, true, nil
	}
	return nil, false, nil
}

// EncodeFile runs the full pipeline over a carrier file: extract
// frames through the collaborator, embed, assemble losslessly at the
// original geometry and frame rate.
func EncodeFile(frames media.FrameCodec, carrier []byte, message []byte, opts stego.Options) ([]byte, error) {
	seq, err := frames.Extract(carrier)
	if err != nil {
		return nil, fmt.Errorf("extracting carrier frames: %w", err)
	}
	modified, err := Encode(seq, message, opts)
	if err != nil {
		return nil, err
	}
	out, err := frames.Assemble(modified)
	if err != nil {
		return nil, fmt.Errorf("assembling stego video: %w", err)
	}
	return out, nil
}

// DecodeFile extracts a message from a carrier file. A collaborator
// failure is a real error, distinct from the not-found result.
func DecodeFile(frames media.FrameCodec, carrier []byte, opts stego.Options) ([]byte, bool, error) {
	seq, err := frames.Extract(carrier)
	if err != nil {
		return nil, false, fmt.Errorf("extracting carrier frames: %w", err)
	}
	return Decode(seq, opts)
}
