package main

import (
	"bytes"
	"flag"
	"fmt"
	"image"
	_ "image/png"
	"log"
	"os"
	"strings"

	"github.com/faanross/simulacra_media/internal/steganalysis"
)

// Runs LSB steganalysis on an image without attempting extraction.
func main() {
	inputFile := flag.String("input", "", "Path to image file")

	flag.Parse()

	if *inputFile == "" {
		log.Fatal("❌ Please provide input image with -input flag")
	}

	data, err := os.ReadFile(*inputFile)
	if err != nil {
		log.Fatalf("❌ Error reading file: %v", err)
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		log.Fatalf("❌ Error decoding image: %v", err)
	}

	fmt.Println("\n🔍 LSB Steganalysis")
	fmt.Println("=" + strings.Repeat("=", 40))

	report := steganalysis.Analyze(img)

	fmt.Printf("\n📷 Image: %s (%s, %dx%d)\n", *inputFile, format, report.Width, report.Height)
	fmt.Printf("\n   LSB Entropy: %.4f bits (max: 8.0)\n", report.Entropy)
	fmt.Printf("   Randomness: %.1f%%\n", report.Entropy/8.0*100)
	fmt.Printf("   LSB Distribution: %.1f%% zeros, %.1f%% ones\n",
		report.ZeroRatio*100, (1-report.ZeroRatio)*100)
	fmt.Printf("   Channel averages: R=%.0f G=%.0f B=%.0f\n",
		report.ChannelMeans[0], report.ChannelMeans[1], report.ChannelMeans[2])

	if report.LooksRandom() {
		fmt.Printf("\n   🔐 Appears to contain encrypted/random data\n")
	} else {
		fmt.Printf("\n   📸 Appears to be a natural image\n")
	}
}
