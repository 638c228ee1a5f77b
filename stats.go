package zopfligo

import (
	"github.com/elliotnunn/zopfligo/internal/dtables"
	"github.com/elliotnunn/zopfligo/internal/huffman"
)

// SymbolStats is the pair of DEFLATE symbol frequency tables and their
// derived per-symbol bit lengths (spec.md section 3, "Symbol statistics").
type SymbolStats struct {
	LitLenFreq [dtables.NumLitLenSymbols]uint32
	DistFreq   [dtables.NumDistSymbols]uint32

	LitLenBits [dtables.NumLitLenSymbols]uint8
	DistBits   [dtables.NumDistSymbols]uint8
}

// NewSymbolStats returns a zeroed SymbolStats; call GetStatistics or
// CalculateStatistics before using it as a cost model.
func NewSymbolStats() *SymbolStats {
	return &SymbolStats{}
}

// GetStatistics counts symbol occurrences across store[0:store.Len()]: one
// literal-frequency bump per literal, one length-symbol and one
// distance-symbol bump per match, plus a single end-of-block count (spec.md
// section 4.2). It does not derive bit lengths; call CalculateStatistics
// afterwards.
func GetStatistics(store Store, out *SymbolStats) {
	out.LitLenFreq = [dtables.NumLitLenSymbols]uint32{}
	out.DistFreq = [dtables.NumDistSymbols]uint32{}

	for i := 0; i < store.Len(); i++ {
		litlen, dist, _ := store.At(i)
		if dist == 0 {
			out.LitLenFreq[litlen]++
		} else {
			out.LitLenFreq[dtables.LengthSymbol(litlen)]++
			out.DistFreq[dtables.DistSymbol(dist)]++
		}
	}
	out.LitLenFreq[dtables.EndOfBlockSymbol]++

	// Guarantee at least two non-zero entries per alphabet (spec.md section
	// 3) even for a block with no back-references at all: the
	// literal/length table already has the end-of-block bump plus at least
	// one literal bump for any non-empty block, but the distance table can
	// come out completely empty.
	seeded := false
	for _, f := range out.DistFreq {
		if f > 0 {
			seeded = true
			break
		}
	}
	if !seeded {
		out.DistFreq[0] = 1
	}
}

// CalculateStatistics derives length-limited per-symbol bit lengths from
// the current frequencies (spec.md section 4.2).
func CalculateStatistics(s *SymbolStats) {
	litlen := huffman.BuildLengths(s.LitLenFreq[:], huffman.MaxCodeLength)
	dist := huffman.BuildLengths(s.DistFreq[:], huffman.MaxCodeLength)
	copy(s.LitLenBits[:], litlen)
	copy(s.DistBits[:], dist)
}

// AddWeighedStatFreqs sets out's frequencies to the weighted sum of a's and
// b's, truncating each to an integer count (spec.md section 4.2). out may
// alias a or b.
func AddWeighedStatFreqs(a *SymbolStats, wa float64, b *SymbolStats, wb float64, out *SymbolStats) {
	var litlen [dtables.NumLitLenSymbols]uint32
	var dist [dtables.NumDistSymbols]uint32
	for i := range litlen {
		litlen[i] = uint32(wa*float64(a.LitLenFreq[i]) + wb*float64(b.LitLenFreq[i]))
	}
	for i := range dist {
		dist[i] = uint32(wa*float64(a.DistFreq[i]) + wb*float64(b.DistFreq[i]))
	}
	out.LitLenFreq = litlen
	out.DistFreq = dist
}

// ClearStatFreqs zeros both frequency tables, leaving the derived bit
// lengths untouched until CalculateStatistics is called again.
func ClearStatFreqs(s *SymbolStats) {
	s.LitLenFreq = [dtables.NumLitLenSymbols]uint32{}
	s.DistFreq = [dtables.NumDistSymbols]uint32{}
}

// CopyStats copies frequencies and derived lengths from src to dst.
func CopyStats(src, dst *SymbolStats) {
	*dst = *src
}
