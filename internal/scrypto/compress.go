package scrypto

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
)

// Compress gzips data, but only keeps the result when it is actually
// smaller. Ciphertext and already-compressed messages gain nothing from
// a second pass, and the decoder recognizes compression by the gzip
// magic bytes, so returning the original unchanged is always safe.
func Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	writer := gzip.NewWriter(&buf)

	if _, err := writer.Write(data); err != nil {
		return nil, fmt.Errorf("compression write failed: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("compression close failed: %w", err)
	}

	compressed := buf.Bytes()
	if len(compressed) < len(data) {
		return compressed, nil
	}
	return data, nil
}

// MaybeDecompress inflates data when it starts with the gzip magic
// (1f 8b); anything else passes through untouched. A payload that fails
// to inflate despite the magic is returned as-is rather than lost.
func MaybeDecompress(data []byte) []byte {
	if len(data) < 2 || data[0] != 0x1f || data[1] != 0x8b {
		return data
	}
	reader, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return data
	}
	defer reader.Close()

	decompressed, err := io.ReadAll(reader)
	if err != nil {
		return data
	}
	return decompressed
}
