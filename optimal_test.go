package zopfligo_test

import (
	"bytes"
	"testing"

	"github.com/elliotnunn/zopfligo"
	"github.com/elliotnunn/zopfligo/internal/lz77store"
	"github.com/elliotnunn/zopfligo/internal/matchfinder"
)

// decode reconstructs the literal bytes a store's symbol sequence
// represents, the way a DEFLATE decoder would, so tests can check a parse
// round-trips to the original input.
func decode(store *lz77store.Store) []byte {
	var out []byte
	for i := 0; i < store.Len(); i++ {
		litlen, dist, _ := store.At(i)
		if dist == 0 {
			out = append(out, byte(litlen))
			continue
		}
		start := len(out) - dist
		for k := 0; k < litlen; k++ {
			out = append(out, out[start+k])
		}
	}
	return out
}

func runOptimal(t *testing.T, data []byte) *lz77store.Store {
	t.Helper()
	mf := matchfinder.New(0)
	scratch := lz77store.New()
	best := lz77store.New()

	err := zopfligo.Optimal(mf, data, 0, len(data), zopfligo.Options{NumIterations: 4},
		lz77store.Greedy, lz77store.VerifyLenDist, lz77store.CalculateBlockSize, scratch, best)
	if err != nil {
		t.Fatalf("Optimal: %v", err)
	}
	return best
}

func TestOptimalRoundTripEmpty(t *testing.T) {
	store := runOptimal(t, nil)
	if store.Len() != 0 {
		t.Fatalf("expected no symbols for empty input, got %d", store.Len())
	}
}

func TestOptimalRoundTripSingleLiteral(t *testing.T) {
	data := []byte("x")
	store := runOptimal(t, data)
	if got := decode(store); !bytes.Equal(got, data) {
		t.Fatalf("decode() = %q, want %q", got, data)
	}
}

func TestOptimalRoundTripRun(t *testing.T) {
	data := bytes.Repeat([]byte{0}, 1000)
	store := runOptimal(t, data)
	if got := decode(store); !bytes.Equal(got, data) {
		t.Fatalf("decode() mismatch for constant run, len(got)=%d want=%d", len(got), len(data))
	}
}

func TestOptimalRoundTripAlternating(t *testing.T) {
	data := bytes.Repeat([]byte("AB"), 500)
	store := runOptimal(t, data)
	if got := decode(store); !bytes.Equal(got, data) {
		t.Fatalf("decode() mismatch for alternating pattern")
	}
}

func TestOptimalRoundTripIncompressible(t *testing.T) {
	data := make([]byte, 512)
	x := uint32(0xdeadbeef)
	for i := range data {
		x ^= x << 13
		x ^= x >> 17
		x ^= x << 5
		data[i] = byte(x)
	}
	store := runOptimal(t, data)
	if got := decode(store); !bytes.Equal(got, data) {
		t.Fatalf("decode() mismatch for pseudo-random input")
	}
}

func TestOptimalDeterministic(t *testing.T) {
	data := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog. "), 40)
	a := runOptimal(t, data)
	b := runOptimal(t, data)
	if a.Len() != b.Len() {
		t.Fatalf("non-deterministic symbol count: %d vs %d", a.Len(), b.Len())
	}
	for i := 0; i < a.Len(); i++ {
		al, ad, ap := a.At(i)
		bl, bd, bp := b.At(i)
		if al != bl || ad != bd || ap != bp {
			t.Fatalf("non-deterministic symbol %d: (%d,%d,%d) vs (%d,%d,%d)", i, al, ad, ap, bl, bd, bp)
		}
	}
}

func TestOptimalFixedRoundTrip(t *testing.T) {
	data := bytes.Repeat([]byte("abcabcabcabc"), 30)
	mf := matchfinder.New(0)
	out := lz77store.New()
	if err := zopfligo.OptimalFixed(mf, data, 0, len(data), 0, lz77store.VerifyLenDist, out); err != nil {
		t.Fatalf("OptimalFixed: %v", err)
	}
	if got := decode(out); !bytes.Equal(got, data) {
		t.Fatalf("decode() mismatch for OptimalFixed")
	}
}

func TestOptimalImprovesOrMatchesGreedy(t *testing.T) {
	data := bytes.Repeat([]byte("abcabcabcabcabcabd"), 50)

	mf := matchfinder.New(0)
	greedy := lz77store.New()
	lz77store.Greedy(mf, data, 0, len(data), greedy)
	greedyCost := lz77store.CalculateBlockSize(greedy, 0, greedy.Len())

	best := runOptimal(t, data)
	bestCost := lz77store.CalculateBlockSize(best, 0, best.Len())

	if bestCost > greedyCost+1e-6 {
		t.Fatalf("optimal parse (%v bits) worse than greedy (%v bits)", bestCost, greedyCost)
	}
}
