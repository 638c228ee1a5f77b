package compressor_test

import (
	"bytes"
	"compress/flate"
	"io"
	"testing"

	"github.com/elliotnunn/zopfligo/internal/compressor"
)

func roundTrip(t *testing.T, data []byte, cfg compressor.Config) {
	t.Helper()
	compressed, err := compressor.Compress(data, cfg)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}

	r := flate.NewReader(bytes.NewReader(compressed))
	defer r.Close()
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("stdlib flate.Reader rejected our stream: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("round trip mismatch: got %d bytes, want %d bytes", len(got), len(data))
	}
}

func TestCompressRoundTripEmpty(t *testing.T) {
	roundTrip(t, nil, compressor.Config{})
}

func TestCompressRoundTripText(t *testing.T) {
	data := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog. "), 200)
	roundTrip(t, data, compressor.Config{NumIterations: 3})
}

func TestCompressRoundTripAcrossMultipleBlocks(t *testing.T) {
	data := bytes.Repeat([]byte("block boundary stress test data. "), 2000)
	roundTrip(t, data, compressor.Config{BlockSize: 4096, NumIterations: 2})
}

func TestCompressRoundTripBinary(t *testing.T) {
	data := make([]byte, 4096)
	x := uint32(12345)
	for i := range data {
		x ^= x << 13
		x ^= x >> 17
		x ^= x << 5
		data[i] = byte(x >> 3)
	}
	roundTrip(t, data, compressor.Config{NumIterations: 2})
}
