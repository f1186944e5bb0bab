package main

import (
	"bytes"
	"flag"
	"fmt"
	"image"
	_ "image/png"
	"log"
	"os"
	"unicode/utf8"

	"github.com/faanross/simulacra_media/internal/audiocodec"
	"github.com/faanross/simulacra_media/internal/framearc"
	"github.com/faanross/simulacra_media/internal/imagecodec"
	"github.com/faanross/simulacra_media/internal/textcodec"
	"github.com/faanross/simulacra_media/internal/videocodec"
	"github.com/faanross/simulacra_media/internal/wavcodec"
)

// Reports how many message bytes a carrier can hold, using the exact
// constants the encoder applies, so a caller can pre-validate before
// committing to an expensive embed.
func main() {
	medium := flag.String("medium", "", "Carrier medium: text, image, audio, video")
	carrierFile := flag.String("carrier", "", "Path to carrier file")

	flag.Parse()

	if *medium == "" || *carrierFile == "" {
		log.Fatal("❌ Required flags: -medium, -carrier")
	}

	data, err := os.ReadFile(*carrierFile)
	if err != nil {
		log.Fatalf("❌ Error reading carrier: %v", err)
	}

	var capacity int
	switch *medium {
	case "text":
		runes := utf8.RuneCount(data)
		capacity = textcodec.Capacity(runes)
		fmt.Printf("📄 Cover text: %d characters\n", runes)

	case "image":
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			log.Fatalf("❌ Error decoding image: %v", err)
		}
		pixels := img.Bounds().Dx() * img.Bounds().Dy()
		capacity = imagecodec.Capacity(pixels)
		fmt.Printf("🖼  Image: %dx%d (%d pixels)\n", img.Bounds().Dx(), img.Bounds().Dy(), pixels)

	case "audio":
		samples, sampleRate, err := wavcodec.Codec{}.Decode(data)
		if err != nil {
			log.Fatalf("❌ Error decoding audio: %v", err)
		}
		capacity = audiocodec.Capacity(len(samples))
		fmt.Printf("🎵 Audio: %d samples @ %d Hz\n", len(samples), sampleRate)

	case "video":
		seq, err := framearc.Codec{}.Extract(data)
		if err != nil {
			log.Fatalf("❌ Error extracting frames: %v", err)
		}
		capacity = videocodec.Capacity(seq.TotalPixels())
		fmt.Printf("🎬 Video: %d frames, %dx%d @ %d fps\n",
			len(seq.Frames), seq.Width, seq.Height, seq.FPS)

	default:
		log.Fatalf("❌ Unknown medium: %s", *medium)
	}

	if capacity < 0 {
		capacity = 0
	}
	fmt.Printf("📊 Capacity: %d message bytes\n", capacity)
}
