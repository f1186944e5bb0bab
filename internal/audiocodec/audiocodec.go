// Package audiocodec hides messages in the LSBs of 16-bit PCM samples.
// Unlike the sequential text/image codecs, the carrier positions are
// scattered: a seed-derived index sequence picks which samples carry
// bits, and every frame bit is written three times so a single damaged
// copy per triplet is recoverable by majority vote.
package audiocodec

import (
	"fmt"

	"github.com/faanross/simulacra_media/internal/bitstream"
	"github.com/faanross/simulacra_media/internal/media"
	"github.com/faanross/simulacra_media/internal/scatter"
	"github.com/faanross/simulacra_media/internal/spec"
	"github.com/faanross/simulacra_media/internal/stego"
)

// Capacity returns the maximum message size in bytes for a carrier
// with the given sample count, under the fixed embed fraction,
// redundancy factor, and framing overhead.
func Capacity(sampleCount int) int {
	usable := int(float64(sampleCount) * spec.AUDIO_EMBED_FRACTION)
	return usable/spec.REDUNDANCY/spec.BITS_PER_BYTE - spec.HEADER_SIZE
}

// embedBit clears a sample's LSB and ORs in the new bit, leaving the
// other fifteen bits (and so the audible magnitude) untouched.
func embedBit(sample int16, bit bool) int16 {
	sample &^= 1
	if bit {
		sample |= 1
	}
	return sample
}

// Encode embeds message into a copy of samples and returns the copy;
// the caller's slice is never mutated.
func Encode(samples []int16, message []byte, opts stego.Options) ([]int16, error) {
	payload, err := stego.SealPayload(message, opts)
	if err != nil {
		return nil, err
	}

	frame := bitstream.FrameEncode(payload, spec.MAGIC_AUDIO)
	redundant := bitstream.Repeat(frame, spec.REDUNDANCY)

	usable := int(float64(len(samples)) * spec.AUDIO_EMBED_FRACTION)
	if len(redundant) > usable {
		return nil, &stego.CapacityError{
			Required:  len(redundant),
			Available: usable,
			Unit:      "sample slots",
		}
	}

	seed := scatter.DeriveSeed(opts.Password)
	indices, err := scatter.Indices(seed, len(samples), len(redundant))
	if err != nil {
		return nil, err
	}

	out := append([]int16(nil), samples...)
	for k, bit := range redundant {
		out[indices[k]] = embedBit(out[indices[k]], bit)
	}
	return out, nil
}

// Decode re-derives the encode-time index sequence, reads sample LSBs
// in that order, collapses the redundancy, and looks for a frame. The
// index generator's prefix guarantee makes this work without knowing
// how many bits were embedded: the decoder generates the maximum
// usable count and the encoder's sequence is a prefix of it.
func Decode(samples []int16, opts stego.Options) ([]byte, bool, error) {
	usable := int(float64(len(samples)) * spec.AUDIO_EMBED_FRACTION)
	seed := scatter.DeriveSeed(opts.Password)
	indices, err := scatter.Indices(seed, len(samples), usable)
	if err != nil {
		return nil, false, err
	}

	redundant := make(bitstream.Bits, 0, usable)
	for _, idx := range indices {
		redundant = append(redundant, samples[idx]&1 == 1)
	}

	collapsed := bitstream.Collapse(redundant, spec.REDUNDANCY)
	payload, ok := bitstream.FrameDecode(collapsed, spec.MAGIC_AUDIO)
	if !ok {
		return nil, false, nil
	}
	message, ok := stego.OpenPayload(payload, opts)
	if !ok {
		return nil, false, nil
	}
	return message, true, nil
}

// EncodeFile runs the full pipeline over a carrier file: decode to PCM
// through the collaborator, embed, re-encode losslessly at the original
// sample rate.
func EncodeFile(pcm media.PCMCodec, carrier []byte, message []byte, opts stego.Options) ([]byte, error) {
	samples, sampleRate, err := pcm.Decode(carrier)
	if err != nil {
		return nil, fmt.Errorf("decoding carrier audio: %w", err)
	}
	modified, err := Encode(samples, message, opts)
	if err != nil {
		return nil, err
	}
	out, err := pcm.Encode(modified, sampleRate)
	if err != nil {
		return nil, fmt.Errorf("encoding stego audio: %w", err)
	}
	return out, nil
}

// DecodeFile extracts a message from a carrier file. A collaborator
// failure is a real error, distinct from the not-found result.
func DecodeFile(pcm media.PCMCodec, carrier []byte, opts stego.Options) ([]byte, bool, error) {
	samples, _, err := pcm.Decode(carrier)
	if err != nil {
		return nil, false, fmt.Errorf("decoding carrier audio: %w", err)
	}
	return Decode(samples, opts)
}
