// Package steganalysis measures how detectable an image's LSB plane
// is. Encrypted embedded data pushes the LSB stream toward maximum
// entropy and a 50/50 bit split; natural images sit well below both.
package steganalysis

import (
	"image"
	"math"
)

// Report summarizes the LSB statistics of one image.
type Report struct {
	Width  int
	Height int

	// Entropy is the Shannon entropy of the packed RGB LSB stream in
	// bits per byte (maximum 8.0).
	Entropy float64

	// ZeroRatio is the fraction of zero LSBs across the sampled
	// channels.
	ZeroRatio float64

	// ChannelMeans holds the average R, G, B values of the sampled
	// region. Near-equal means across channels are typical of
	// random-filled stego images.
	ChannelMeans [3]float64
}

// LooksRandom reports whether the LSB plane is statistically close to
// random, which is what encrypted embedded data looks like.
func (r *Report) LooksRandom() bool {
	return r.Entropy > 7.5 && r.ZeroRatio > 0.45 && r.ZeroRatio < 0.55
}

// Analyze computes LSB statistics over the whole image.
func Analyze(img image.Image) *Report {
	bounds := img.Bounds()
	report := &Report{Width: bounds.Dx(), Height: bounds.Dy()}

	lsbBytes := make([]byte, 0, report.Width*report.Height*3/8)
	var bitBuffer byte
	bitCount := 0
	zeros, total := 0, 0
	var sums [3]float64

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			channels := [3]uint8{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)}

			for c, value := range channels {
				sums[c] += float64(value)
				bit := value & 1
				if bit == 0 {
					zeros++
				}
				total++

				bitBuffer = bitBuffer<<1 | bit
				bitCount++
				if bitCount == 8 {
					lsbBytes = append(lsbBytes, bitBuffer)
					bitBuffer = 0
					bitCount = 0
				}
			}
		}
	}

	pixels := float64(report.Width * report.Height)
	if pixels > 0 {
		for c := range sums {
			report.ChannelMeans[c] = sums[c] / pixels
		}
	}
	if total > 0 {
		report.ZeroRatio = float64(zeros) / float64(total)
	}
	report.Entropy = entropy(lsbBytes)
	return report
}

// entropy computes byte-level Shannon entropy in bits.
func entropy(data []byte) float64 {
	if len(data) == 0 {
		return 0
	}
	var frequency [256]int
	for _, b := range data {
		frequency[b]++
	}
	result := 0.0
	total := float64(len(data))
	for _, count := range frequency {
		if count == 0 {
			continue
		}
		p := float64(count) / total
		result -= p * math.Log2(p)
	}
	return result
}
