// Package wavcodec implements the PCM collaborator over RIFF/WAVE
// files with 16-bit PCM samples. Multi-channel input is mixed down to
// mono on decode; encode always writes mono at the given sample rate.
// WAV is the output container of choice because it is lossless — any
// lossy re-encode would destroy the embedded LSBs.
package wavcodec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/faanross/simulacra_media/internal/media"
)

var (
	// ErrNotWAV indicates the data does not start with a RIFF/WAVE header.
	ErrNotWAV = errors.New("not a RIFF/WAVE file")
	// ErrUnsupportedFormat indicates a non-PCM or non-16-bit encoding.
	ErrUnsupportedFormat = errors.New("unsupported WAV encoding (need 16-bit PCM)")
	// ErrMalformed indicates a structurally broken chunk layout.
	ErrMalformed = errors.New("malformed WAV chunk layout")
)

// Codec is the media.PCMCodec implementation for WAV carriers.
type Codec struct{}

var _ media.PCMCodec = Codec{}

// Decode parses a WAV file into mono int16 samples and the sample
// rate. Stereo and multi-channel input is averaged down to mono.
func (Codec) Decode(data []byte) ([]int16, int, error) {
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, 0, ErrNotWAV
	}

	var (
		channels   int
		sampleRate int
		haveFormat bool
		raw        []byte
	)

	// Walk the chunk list. Chunks are 8 bytes of header (id + size)
	// followed by the body, padded to an even offset.
	offset := 12
	for offset+8 <= len(data) {
		id := string(data[offset : offset+4])
		size := int(binary.LittleEndian.Uint32(data[offset+4 : offset+8]))
		body := offset + 8
		if size < 0 || body+size > len(data) {
			return nil, 0, fmt.Errorf("%w: chunk %q runs past end of file", ErrMalformed, id)
		}

		switch id {
		case "fmt ":
			if size < 16 {
				return nil, 0, fmt.Errorf("%w: fmt chunk is %d bytes", ErrMalformed, size)
			}
			audioFormat := binary.LittleEndian.Uint16(data[body : body+2])
			channels = int(binary.LittleEndian.Uint16(data[body+2 : body+4]))
			sampleRate = int(binary.LittleEndian.Uint32(data[body+4 : body+8]))
			bitsPerSample := binary.LittleEndian.Uint16(data[body+14 : body+16])
			if audioFormat != 1 || bitsPerSample != 16 {
				return nil, 0, fmt.Errorf("%w: format %d, %d bits",
					ErrUnsupportedFormat, audioFormat, bitsPerSample)
			}
			if channels < 1 {
				return nil, 0, fmt.Errorf("%w: %d channels", ErrMalformed, channels)
			}
			haveFormat = true
		case "data":
			raw = data[body : body+size]
		}

		offset = body + size + size&1
	}

	if !haveFormat {
		return nil, 0, fmt.Errorf("%w: no fmt chunk", ErrMalformed)
	}
	if raw == nil {
		return nil, 0, fmt.Errorf("%w: no data chunk", ErrMalformed)
	}

	frameBytes := channels * 2
	frameCount := len(raw) / frameBytes
	samples := make([]int16, frameCount)
	for i := 0; i < frameCount; i++ {
		// Mix all channels of the frame down to one sample.
		sum := 0
		for c := 0; c < channels; c++ {
			at := i*frameBytes + c*2
			sum += int(int16(binary.LittleEndian.Uint16(raw[at : at+2])))
		}
		samples[i] = int16(sum / channels)
	}
	return samples, sampleRate, nil
}

// Encode writes mono 16-bit PCM samples as a WAV file at the given
// sample rate.
func (Codec) Encode(samples []int16, sampleRate int) ([]byte, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate %d", sampleRate)
	}

	dataSize := len(samples) * 2
	var buf bytes.Buffer
	buf.Grow(44 + dataSize)

	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // mono
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate*2)) // byte rate
	binary.Write(&buf, binary.LittleEndian, uint16(2))            // block align
	binary.Write(&buf, binary.LittleEndian, uint16(16))           // bits per sample

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(dataSize))
	for _, sample := range samples {
		binary.Write(&buf, binary.LittleEndian, uint16(sample))
	}
	return buf.Bytes(), nil
}
