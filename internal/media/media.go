// Package media defines the external collaborator boundaries the audio
// and video codecs depend on. The codecs treat these as black boxes:
// container parsing, transcoding fallbacks, and duration/resolution
// caps are collaborator policy, not codec logic.
//
// Collaborators are constructed by the caller and passed in explicitly.
// There is no process-wide shared transcoder instance; each codec call
// uses exactly the collaborator it was handed.
package media

// PCMCodec decodes a carrier file into mono int16 PCM samples plus its
// sample rate, and re-encodes modified samples losslessly. A lossy
// output format would destroy the embedded LSBs.
type PCMCodec interface {
	Decode(data []byte) (samples []int16, sampleRate int, err error)
	Encode(samples []int16, sampleRate int) ([]byte, error)
}

// FrameSequence is an ordered run of raw RGBA frames sharing one
// geometry. Each frame buffer holds Width*Height*4 bytes.
type FrameSequence struct {
	Frames [][]byte
	Width  int
	Height int
	FPS    int
}

// PixelsPerFrame returns the addressable pixel count of one frame.
func (s *FrameSequence) PixelsPerFrame() int {
	return s.Width * s.Height
}

// TotalPixels returns the pixel count across the whole sequence.
func (s *FrameSequence) TotalPixels() int {
	return len(s.Frames) * s.PixelsPerFrame()
}

// Clone deep-copies the sequence so an encoder can mutate frames
// without aliasing the caller's buffers.
func (s *FrameSequence) Clone() *FrameSequence {
	frames := make([][]byte, len(s.Frames))
	for i, frame := range s.Frames {
		frames[i] = append([]byte(nil), frame...)
	}
	return &FrameSequence{Frames: frames, Width: s.Width, Height: s.Height, FPS: s.FPS}
}

// FrameCodec extracts a frame sequence from a carrier file and
// assembles a modified sequence back into a lossless container at the
// original geometry and rate.
type FrameCodec interface {
	Extract(data []byte) (*FrameSequence, error)
	Assemble(seq *FrameSequence) ([]byte, error)
}
