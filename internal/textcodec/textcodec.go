// Package textcodec hides messages inside plain text using zero-width
// code points. Each pair of frame bits selects one of four invisible
// markers, and one marker is inserted after each cover character until
// the frame is exhausted; the rest of the cover passes through
// verbatim. The visible text is unchanged.
package textcodec

import (
	"strings"

	"github.com/faanross/simulacra_media/internal/bitstream"
	"github.com/faanross/simulacra_media/internal/spec"
	"github.com/faanross/simulacra_media/internal/stego"
)

// markers maps a 2-bit symbol to its invisible carrier rune:
// 00 ZERO WIDTH SPACE, 01 ZERO WIDTH NON-JOINER, 10 ZERO WIDTH JOINER,
// 11 ZERO WIDTH NO-BREAK SPACE.
var markers = [4]rune{'\u200B', '\u200C', '\u200D', '\uFEFF'}

func markerSymbol(r rune) (byte, bool) {
	for sym, marker := range markers {
		if r == marker {
			return byte(sym), true
		}
	}
	return 0, false
}

// Capacity returns the maximum message size in bytes for a cover text
// with the given rune count. Each cover rune can host one marker, i.e.
// two frame bits.
func Capacity(coverRunes int) int {
	return coverRunes*2/spec.BITS_PER_BYTE - spec.HEADER_SIZE
}

// Encode embeds message into coverText and returns the stego text.
// The cover itself is never altered, only interleaved with markers.
func Encode(coverText string, message []byte, opts stego.Options) (string, error) {
	payload, err := stego.SealPayload(message, opts)
	if err != nil {
		return "", err
	}

	frame := bitstream.FrameEncode(payload, spec.MAGIC_TEXT)
	cover := []rune(coverText)

	// Frame bits are a multiple of 8, so always pairable.
	markersNeeded := len(frame) / 2
	if markersNeeded > len(cover) {
		return "", &stego.CapacityError{
			Required:  markersNeeded,
			Available: len(cover),
			Unit:      "cover characters",
		}
	}

	var out strings.Builder
	out.Grow(len(coverText) + markersNeeded*3)
	for i, r := range cover {
		out.WriteRune(r)
		if i < markersNeeded {
			sym := 0
			if frame[i*2] {
				sym |= 2
			}
			if frame[i*2+1] {
				sym |= 1
			}
			out.WriteRune(markers[sym])
		}
	}
	return out.String(), nil
}

// Decode extracts a hidden message from stego text. The second return
// is false when the text carries no markers, no valid frame, or the
// password does not open the payload.
func Decode(stegoText string, opts stego.Options) ([]byte, bool, error) {
	var bits bitstream.Bits
	for _, r := range stegoText {
		sym, ok := markerSymbol(r)
		if !ok {
			continue
		}
		bits = append(bits, sym&2 != 0, sym&1 != 0)
	}

	payload, ok := bitstream.FrameDecode(bits, spec.MAGIC_TEXT)
	if !ok {
		return nil, false, nil
	}
	message, ok := stego.OpenPayload(payload, opts)
	if !ok {
		return nil, false, nil
	}
	return message, true, nil
}

// Visible strips the four marker runes, recovering the original cover
// text from a stego text.
func Visible(stegoText string) string {
	return strings.Map(func(r rune) rune {
		if _, isMarker := markerSymbol(r); isMarker {
			return -1
		}
		return r
	}, stegoText)
}
