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

	"github.com/faanross/simulacra_media/internal/audiocodec"
	"github.com/faanross/simulacra_media/internal/framearc"
	"github.com/faanross/simulacra_media/internal/imagecodec"
	"github.com/faanross/simulacra_media/internal/scrypto"
	"github.com/faanross/simulacra_media/internal/stego"
	"github.com/faanross/simulacra_media/internal/textcodec"
	"github.com/faanross/simulacra_media/internal/videocodec"
	"github.com/faanross/simulacra_media/internal/wavcodec"
)

func main() {
	medium := flag.String("medium", "", "Carrier medium: text, image, audio, video")
	inputFile := flag.String("input", "", "Path to stego artifact")
	outputFile := flag.String("output", "", "Save extracted message to file")
	password := flag.String("password", "", "Password (empty = no decryption)")
	prompt := flag.Bool("prompt", false, "Prompt for password with hidden input")
	cipherName := flag.String("cipher", "gcm", "Password cipher: gcm or age")
	verbose := flag.Bool("verbose", false, "Show full extracted message")

	flag.Parse()

	if *medium == "" || *inputFile == "" {
		log.Fatal("❌ Required flags: -medium, -input")
	}

	fmt.Println("\n🔓 Simulacra Media Decoder")
	fmt.Println("=" + strings.Repeat("=", 40))

	data, err := os.ReadFile(*inputFile)
	if err != nil {
		log.Fatalf("❌ Error reading input: %v", err)
	}
	fmt.Printf("\n📦 Artifact: %s (%d bytes)\n", *inputFile, len(data))

	opts := stego.Options{
		Password: resolvePassword(*password, *prompt),
		Cipher:   resolveCipher(*cipherName),
	}

	var (
		message []byte
		found   bool
	)
	switch *medium {
	case "text":
		message, found, err = textcodec.Decode(string(data), opts)
	case "image":
		var img image.Image
		img, _, err = image.Decode(bytes.NewReader(data))
		if err != nil {
			log.Fatalf("❌ Error decoding image: %v", err)
		}
		message, found, err = imagecodec.Decode(img, opts)
	case "audio":
		message, found, err = audiocodec.DecodeFile(wavcodec.Codec{}, data, opts)
	case "video":
		message, found, err = videocodec.DecodeFile(framearc.Codec{}, data, opts)
	default:
		log.Fatalf("❌ Unknown medium: %s", *medium)
	}

	if err != nil {
		log.Fatalf("❌ Extraction failed: %v", err)
	}
	if !found {
		fmt.Println("\n❌ No hidden message found (wrong file, wrong password, or unmodified carrier)")
		os.Exit(1)
	}

	fmt.Printf("\n✅ MESSAGE RECOVERED (%d bytes)\n", len(message))
	fmt.Println(strings.Repeat("=", 60))
	text := string(message)
	if *verbose || len(text) <= 500 {
		fmt.Println(text)
	} else {
		fmt.Printf("%s\n... [%d more characters] ...\n%s\n",
			text[:200], len(text)-400, text[len(text)-200:])
		fmt.Printf("\n(Use -verbose flag to see full message)\n")
	}
	fmt.Println(strings.Repeat("=", 60))

	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, message, 0644); err != nil {
			log.Fatalf("❌ Error saving output: %v", err)
		}
		fmt.Printf("\n💾 Message saved to: %s\n", *outputFile)
	}
}

func resolvePassword(password string, prompt bool) string {
	if !prompt {
		return password
	}
	pass, err := scrypto.GetSecurePassword("\n🔑 Enter password: ")
	if err != nil {
		log.Fatalf("❌ Password error: %v", err)
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
