// Package imagecodec hides messages in the red-channel LSBs of an RGBA
// image, one bit per pixel in scan order.
package imagecodec

import (
	"image"

	"github.com/faanross/simulacra_media/internal/bitstream"
	"github.com/faanross/simulacra_media/internal/spec"
	"github.com/faanross/simulacra_media/internal/stego"
)

// EmbedBit modifies the LSB of a color value to store a bit
func EmbedBit(colorValue uint8, bit bool) uint8 {
	if bit {
		return colorValue | 1
	}
	return colorValue & 0xFE
}

// Capacity returns the maximum message size in bytes for an image with
// the given pixel count.
func Capacity(pixels int) int {
	return pixels/spec.BITS_PER_BYTE - spec.HEADER_SIZE
}

// Encode embeds message into img, mutating the pixel buffer in place
// and leaving every bit except red-channel LSBs untouched. The caller
// passes a buffer it is willing to have modified — a copy, not the
// original source image. Nothing is written if the message does not
// fit.
func Encode(img *image.RGBA, message []byte, opts stego.Options) error {
	payload, err := stego.SealPayload(message, opts)
	if err != nil {
		return err
	}

	frame := bitstream.FrameEncode(payload, spec.MAGIC_IMAGE)

	bounds := img.Bounds()
	width := bounds.Dx()
	pixels := width * bounds.Dy()
	if len(frame) > pixels {
		return &stego.CapacityError{
			Required:  len(frame),
			Available: pixels,
			Unit:      "pixel slots",
		}
	}

	for k, bit := range frame {
		x := bounds.Min.X + k%width
		y := bounds.Min.Y + k/width
		offset := img.PixOffset(x, y)
		img.Pix[offset] = EmbedBit(img.Pix[offset], bit)
	}
	return nil
}

// Decode reads red-channel LSBs in scan order and attempts to recover
// a message. The image is never mutated.
func Decode(img image.Image, opts stego.Options) ([]byte, bool, error) {
	bounds := img.Bounds()
	bits := make(bitstream.Bits, 0, bounds.Dx()*bounds.Dy())

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, _, _, _ := img.At(x, y).RGBA()
			bits = append(bits, uint8(r>>8)&1 == 1)
		}
	}

	payload, ok := bitstream.FrameDecode(bits, spec.MAGIC_IMAGE)
	if !ok {
		return nil, false, nil
	}
	message, ok := stego.OpenPayload(payload, opts)
	if !ok {
		return nil, false, nil
	}
	return message, true, nil
}
