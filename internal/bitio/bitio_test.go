package bitio_test

import (
	"testing"

	"github.com/elliotnunn/zopfligo/internal/bitio"
)

// readBits re-implements the LSB-first reads DEFLATE expects, to check
// Writer packs bits the way a real decoder would read them.
type bitReader struct {
	data     []byte
	bytePos  int
	bitBuf   uint32
	bitCount uint
}

func (r *bitReader) readBits(n uint) uint32 {
	for r.bitCount < n {
		r.bitBuf |= uint32(r.data[r.bytePos]) << r.bitCount
		r.bytePos++
		r.bitCount += 8
	}
	v := r.bitBuf & ((1 << n) - 1)
	r.bitBuf >>= n
	r.bitCount -= n
	return v
}

func TestWriteBitsRoundTrip(t *testing.T) {
	w := bitio.NewWriter()
	w.WriteBits(0b101, 3)
	w.WriteBits(0b1, 1)
	w.WriteBits(0b1100110, 7)

	r := &bitReader{data: w.Bytes()}
	if got := r.readBits(3); got != 0b101 {
		t.Fatalf("first field = %b, want %b", got, 0b101)
	}
	if got := r.readBits(1); got != 1 {
		t.Fatalf("second field = %b, want 1", got)
	}
	if got := r.readBits(7); got != 0b1100110 {
		t.Fatalf("third field = %b, want %b", got, 0b1100110)
	}
}

func TestAlignToBytePads(t *testing.T) {
	w := bitio.NewWriter()
	w.WriteBits(1, 1)
	w.AlignToByte()
	if w.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 after aligning a single bit", w.Len())
	}
}
