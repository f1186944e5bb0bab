package spec

// Framing constants
//
// Every codec writes the same envelope: a per-medium magic string, a
// 32-bit big-endian payload byte count, then the payload itself. The
// magic tells decode "this carrier holds a message"; the length tells it
// where the message ends. A literal end-marker was rejected because the
// marker bit pattern can legitimately occur inside ciphertext.
const (
	MAGIC_TEXT  = "TSTEGA1" // zero-width text carrier
	MAGIC_IMAGE = "ISTEGA1" // RGBA image carrier
	MAGIC_AUDIO = "USTEGA1" // PCM audio carrier
	MAGIC_VIDEO = "VSTEGA1" // frame-sequence carrier

	MAGIC_SIZE    = 7                        // All four magics are 7 bytes
	LENGTH_SIZE   = 4                        // u32 payload byte count
	HEADER_SIZE   = MAGIC_SIZE + LENGTH_SIZE // Total framing overhead (bytes)
	BITS_PER_BYTE = 8                        // Standard byte size
)

// Embedding constants
const (
	// REDUNDANCY is the repetition factor for audio and video. Each
	// frame bit is written three times at independent positions and
	// recovered by majority vote, so a single corrupted copy per
	// triplet is survivable. Text and image embed without redundancy.
	REDUNDANCY = 3

	// AUDIO_EMBED_FRACTION bounds how many PCM samples may carry a
	// bit. Touching every sample makes the LSB noise floor uniform
	// and easier to flag statistically.
	AUDIO_EMBED_FRACTION = 0.8

	// VIDEO_EMBED_FRACTION bounds per-frame pixel usage, same
	// reasoning as audio but per frame.
	VIDEO_EMBED_FRACTION = 0.3

	// DEFAULT_SEED drives index scattering when no password is given.
	// Encode and decode must derive the identical seed or the decoder
	// reads the wrong positions.
	DEFAULT_SEED = "simulacra-default-seed"
)

// Security constants
const (
	SALT_SIZE    = 32     // Salt for PBKDF2
	NONCE_SIZE   = 12     // GCM nonce size
	KEY_SIZE     = 32     // AES-256 key size
	TAG_SIZE     = 16     // GCM authentication tag
	PBKDF2_ITERS = 100000 // PBKDF2 iterations (adjustable for security/speed)
)
