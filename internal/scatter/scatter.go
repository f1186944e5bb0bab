package scatter

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/faanross/simulacra_media/internal/spec"
	"github.com/faanross/simulacra_media/internal/stego"
)

// DeriveSeed produces the scatter seed for a password. Encode and
// decode must agree on this exactly: hex(SHA-256(password)) when a
// password is supplied, the fixed default otherwise.
func DeriveSeed(password string) string {
	if password == "" {
		return spec.DEFAULT_SEED
	}
	digest := sha256.Sum256([]byte(password))
	return hex.EncodeToString(digest[:])
}

// FrameSeed derives the per-frame seed for video embedding so that each
// frame gets an independent pixel ordering from the same base seed.
func FrameSeed(seed string, frameIndex int) string {
	return seed + ":" + strconv.Itoa(frameIndex)
}

// generator is a linear-congruential PRNG seeded from a string. Each
// Indices call owns its own instance, so concurrent calls cannot
// disturb each other's sequences.
type generator struct {
	state uint32
}

func newGenerator(seed string) *generator {
	// Multiply-add rolling hash over the seed characters.
	var h uint32
	for _, c := range seed {
		h = h*31 + uint32(c)
	}
	return &generator{state: h}
}

// next advances the LCG and returns a value in [0, 1).
func (g *generator) next() float64 {
	g.state = g.state*1664525 + 1013904223
	return float64(g.state) / 4294967296.0
}

// Indices returns count distinct positions in [0, universe), in a
// deterministic pseudo-random order for the given seed. Two calls with
// the same (seed, universe) agree on their common prefix regardless of
// count, which lets a decoder regenerate more indices than the encoder
// consumed.
//
// The positions come from a partial Fisher–Yates shuffle over an
// implicit identity array: only displaced entries are stored in a
// sparse map, so memory is O(count) even for huge carriers.
func Indices(seed string, universe, count int) ([]int, error) {
	if count < 0 {
		return nil, fmt.Errorf("negative index count %d", count)
	}
	if count > universe {
		return nil, &stego.CapacityError{Required: count, Available: universe, Unit: "positions"}
	}

	g := newGenerator(seed)
	displaced := make(map[int]int, count*2)
	at := func(i int) int {
		if v, ok := displaced[i]; ok {
			return v
		}
		return i
	}

	out := make([]int, 0, count)
	for i := universe - 1; i > universe-1-count; i-- {
		j := int(g.next() * float64(i+1))
		if j > i {
			j = i
		}
		vi, vj := at(i), at(j)
		displaced[i], displaced[j] = vj, vi
		out = append(out, vj)
	}
	return out, nil
}
