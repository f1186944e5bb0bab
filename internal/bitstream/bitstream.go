package bitstream

import (
	"encoding/binary"

	"github.com/faanross/simulacra_media/internal/spec"
)

// Bits is a stream of individual bits, most significant bit of each
// source byte first. All codecs speak this type between the framing
// layer and the carrier layer.
type Bits []bool

// FromBytes expands a byte slice into its bit stream, MSB first.
func FromBytes(data []byte) Bits {
	bits := make(Bits, 0, len(data)*spec.BITS_PER_BYTE)
	for _, b := range data {
		for j := 7; j >= 0; j-- {
			bits = append(bits, (b>>uint(j))&1 == 1)
		}
	}
	return bits
}

// Bytes packs a bit stream back into bytes. A trailing group of fewer
// than eight bits is truncated rather than zero-padded, so the result
// only ever contains fully recovered bytes.
func (bits Bits) Bytes() []byte {
	out := make([]byte, 0, len(bits)/spec.BITS_PER_BYTE)
	for i := 0; i+spec.BITS_PER_BYTE <= len(bits); i += spec.BITS_PER_BYTE {
		var b byte
		for j := 0; j < spec.BITS_PER_BYTE; j++ {
			if bits[i+j] {
				b |= 1 << uint(7-j)
			}
		}
		out = append(out, b)
	}
	return out
}

// FrameEncode wraps a payload in the standard envelope:
// bitsOf(magic) + bitsOf(u32 big-endian payload length) + bitsOf(payload).
func FrameEncode(payload []byte, magic string) Bits {
	frame := make([]byte, 0, len(magic)+spec.LENGTH_SIZE+len(payload))
	frame = append(frame, magic...)
	frame = binary.BigEndian.AppendUint32(frame, uint32(len(payload)))
	frame = append(frame, payload...)
	return FromBytes(frame)
}

// FrameDecode locates the envelope inside a bit stream and returns the
// payload. The second return is false when no magic is present or the
// stream ends before the declared payload length — both simply mean
// "no message here".
func FrameDecode(stream Bits, magic string) ([]byte, bool) {
	magicBits := FromBytes([]byte(magic))
	start := indexOf(stream, magicBits)
	if start < 0 {
		return nil, false
	}

	lengthStart := start + len(magicBits)
	lengthEnd := lengthStart + spec.LENGTH_SIZE*spec.BITS_PER_BYTE
	if lengthEnd > len(stream) {
		return nil, false
	}
	payloadLength := int(binary.BigEndian.Uint32(stream[lengthStart:lengthEnd].Bytes()))

	payloadEnd := lengthEnd + payloadLength*spec.BITS_PER_BYTE
	if payloadLength < 0 || payloadEnd > len(stream) {
		return nil, false
	}
	return stream[lengthEnd:payloadEnd].Bytes(), true
}

// Repeat applies the redundancy factor: every bit is emitted factor
// times, in order. Repeat with factor 1 is the identity.
func Repeat(stream Bits, factor int) Bits {
	if factor <= 1 {
		return stream
	}
	out := make(Bits, 0, len(stream)*factor)
	for _, bit := range stream {
		for i := 0; i < factor; i++ {
			out = append(out, bit)
		}
	}
	return out
}

// Collapse reverses Repeat by majority vote: each complete group of
// factor bits becomes a 1 when ones hold a strict majority. An
// incomplete trailing group is discarded — it cannot carry a reliable
// vote.
func Collapse(stream Bits, factor int) Bits {
	if factor <= 1 {
		return stream
	}
	out := make(Bits, 0, len(stream)/factor)
	for i := 0; i+factor <= len(stream); i += factor {
		ones := 0
		for j := 0; j < factor; j++ {
			if stream[i+j] {
				ones++
			}
		}
		out = append(out, ones*2 > factor)
	}
	return out
}

// indexOf returns the offset of the first occurrence of pattern in
// stream, or -1.
func indexOf(stream, pattern Bits) int {
	if len(pattern) == 0 || len(pattern) > len(stream) {
		return -1
	}
search:
	for i := 0; i <= len(stream)-len(pattern); i++ {
		for j := range pattern {
			if stream[i+j] != pattern[j] {
				continue search
			}
		}
		return i
	}
	return -1
}
