package main

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"flag"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"log"
	"os"
	"strings"

	"github.com/faanross/simulacra_media/internal/audiocodec"
	"github.com/faanross/simulacra_media/internal/framearc"
	"github.com/faanross/simulacra_media/internal/imagecodec"
	"github.com/faanross/simulacra_media/internal/scrypto"
	"github.com/faanross/simulacra_media/internal/steganalysis"
	"github.com/faanross/simulacra_media/internal/stego"
	"github.com/faanross/simulacra_media/internal/textcodec"
	"github.com/faanross/simulacra_media/internal/videocodec"
	"github.com/faanross/simulacra_media/internal/wavcodec"
)

func main() {
	medium := flag.String("medium", "", "Carrier medium: text, image, audio, video")
	carrierFile := flag.String("carrier", "", "Path to carrier file (text/png/wav/farc)")
	messageFile := flag.String("msg-file", "", "Path to message file")
	messageText := flag.String("msg", "", "Message text (alternative to -msg-file)")
	outputFile := flag.String("output", "", "Output artifact path")
	password := flag.String("password", "", "Password (empty = no encryption)")
	prompt := flag.Bool("prompt", false, "Prompt for password with hidden input")
	compress := flag.Bool("compress", false, "Compress message before embedding")
	cipherName := flag.String("cipher", "gcm", "Password cipher: gcm or age")
	frameCompression := flag.String("frame-compression", "zstd", "Video container compression: none, lz4, zstd")
	analyze := flag.Bool("analyze", false, "Show LSB analysis of image output")

	flag.Parse()

	if *medium == "" || *carrierFile == "" || *outputFile == "" {
		log.Fatal("❌ Required flags: -medium, -carrier, -output")
	}

	fmt.Println("\n🔐 Simulacra Media Encoder")
	fmt.Println("=" + strings.Repeat("=", 40))

	message := readMessage(*messageFile, *messageText)
	carrier, err := os.ReadFile(*carrierFile)
	if err != nil {
		log.Fatalf("❌ Error reading carrier: %v", err)
	}

	opts := stego.Options{
		Password: resolvePassword(*password, *prompt, true),
		Compress: *compress,
		Cipher:   resolveCipher(*cipherName),
	}

	fmt.Printf("\n📄 Message: %d bytes\n", len(message))
	fmt.Printf("📦 Carrier: %s (%d bytes)\n", *carrierFile, len(carrier))

	var artifact []byte
	switch *medium {
	case "text":
		stegoText, err := textcodec.Encode(string(carrier), message, opts)
		if err != nil {
			log.Fatalf("❌ Encoding failed: %v", err)
		}
		artifact = []byte(stegoText)

	case "image":
		img := decodeImage(carrier)
		fmt.Printf("   Capacity: %d bytes\n", imagecodec.Capacity(img.Bounds().Dx()*img.Bounds().Dy()))
		if err := imagecodec.Encode(img, message, opts); err != nil {
			log.Fatalf("❌ Encoding failed: %v", err)
		}
		if *analyze {
			printAnalysis(steganalysis.Analyze(img))
		}
		artifact = encodePNG(img)

	case "audio":
		artifact, err = audiocodec.EncodeFile(wavcodec.Codec{}, carrier, message, opts)
		if err != nil {
			log.Fatalf("❌ Encoding failed: %v", err)
		}

	case "video":
		tag, err := framearc.ParseCompressionTag(*frameCompression)
		if err != nil {
			log.Fatalf("❌ %v", err)
		}
		artifact, err = videocodec.EncodeFile(framearc.Codec{Compression: tag}, carrier, message, opts)
		if err != nil {
			log.Fatalf("❌ Encoding failed: %v", err)
		}

	default:
		log.Fatalf("❌ Unknown medium: %s", *medium)
	}

	if err := os.WriteFile(*outputFile, artifact, 0644); err != nil {
		log.Fatalf("❌ Cannot write output: %v", err)
	}

	digest := sha256.Sum256(artifact)
	fmt.Printf("\n✅ Embedding complete!\n")
	fmt.Printf("   Output: %s (%d bytes)\n", *outputFile, len(artifact))
	fmt.Printf("   SHA256: %s\n", hex.EncodeToString(digest[:]))
	if opts.Password != "" {
		fmt.Printf("   Cipher: %s\n", *cipherName)
	}
}

func readMessage(messageFile, messageText string) []byte {
	if messageFile != "" {
		message, err := os.ReadFile(messageFile)
		if err != nil {
			log.Fatalf("❌ Error reading message file: %v", err)
		}
		return message
	}
	if messageText == "" {
		log.Fatal("❌ Provide a message with -msg or -msg-file")
	}
	return []byte(messageText)
}

func resolvePassword(password string, prompt, confirm bool) string {
	if !prompt {
		return password
	}
	pass, err := scrypto.GetSecurePassword("\n🔑 Enter password (min 8 chars): ")
	if err != nil {
		log.Fatalf("❌ Password error: %v", err)
	}
	if confirm {
		check, err := scrypto.GetSecurePassword("🔑 Confirm password: ")
		if err != nil {
			log.Fatalf("❌ Password error: %v", err)
		}
		if string(pass) != string(check) {
			log.Fatal("❌ Passwords do not match")
		}
	}
	return string(pass)
}

func resolveCipher(name string) scrypto.Cipher {
	switch name {
	case "gcm":
		return scrypto.GCMCipher{}
	case "age":
		return scrypto.AgeCipher{}
	default:
		log.Fatalf("❌ Unknown cipher: %s (want gcm or age)", name)
		return nil
	}
}

func decodeImage(data []byte) *image.RGBA {
	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		log.Fatalf("❌ Error decoding image: %v", err)
	}
	fmt.Printf("   Format: %s, %dx%d\n", format, src.Bounds().Dx(), src.Bounds().Dy())

	// Work on an RGBA copy; the source buffer stays untouched.
	img := image.NewRGBA(src.Bounds())
	draw.Draw(img, src.Bounds(), src, src.Bounds().Min, draw.Src)
	return img
}

func encodePNG(img *image.RGBA) []byte {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		log.Fatalf("❌ PNG encoding failed: %v", err)
	}
	return buf.Bytes()
}

func printAnalysis(report *steganalysis.Report) {
	fmt.Printf("\n🔒 LSB Analysis:\n")
	fmt.Printf("   Entropy: %.4f bits (max: 8.0)\n", report.Entropy)
	fmt.Printf("   LSB distribution: %.1f%% zeros, %.1f%% ones\n",
		report.ZeroRatio*100, (1-report.ZeroRatio)*100)
	if report.LooksRandom() {
		fmt.Printf("   🔐 Appears to contain encrypted/random data\n")
	} else {
		fmt.Printf("   📸 Appears to be a natural image\n")
	}
}
