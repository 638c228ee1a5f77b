package zopfligo

import "github.com/elliotnunn/zopfligo/internal/dtables"

// unusedSymbolBits is the bit length given to a symbol with zero frequency
// in a statistics-derived cost model: large enough that the forward pass
// never routes through it, but finite, per spec.md's "large but finite"
// requirement (so that arithmetic on it never produces NaN or Inf).
const unusedSymbolBits = 512

// fixedLitLenBits is the RFC 1951 section 3.2.6 fixed Huffman code length
// for literal/length symbol sym.
func fixedLitLenBits(sym int) int {
	switch {
	case sym < 144:
		return 8
	case sym < 256:
		return 9
	case sym < 280:
		return 7
	default:
		return 8
	}
}

// FixedCost is the cost model for DEFLATE's fixed (BTYPE=1) Huffman block:
// exact, data-independent code lengths, so it needs no statistics.
type FixedCost struct{}

func (FixedCost) Cost(litlen, dist int) float64 {
	if dist == 0 {
		return float64(fixedLitLenBits(litlen))
	}
	lenSym := dtables.LengthSymbol(litlen)
	lenExtra, _ := dtables.LengthExtra(litlen)
	distExtra, _ := dtables.DistExtra(dist)
	const fixedDistBits = 5 // all 32 distance codes are fixed at 5 bits
	return float64(fixedLitLenBits(lenSym) + lenExtra + fixedDistBits + distExtra)
}

func (c FixedCost) MinCost() float64 { return minCostOf(c) }

// StatCost is the cost model derived from a running SymbolStats: the same
// bit decomposition as FixedCost, but the code-length tables come from
// stats instead of the fixed tree (spec.md section 4.1).
type StatCost struct {
	stats *SymbolStats
}

// NewStatCost builds a cost model backed by stats. stats must outlive the
// returned CostModel; CalculateStatistics should be called on it before use
// and again each time its frequencies change.
func NewStatCost(stats *SymbolStats) StatCost {
	return StatCost{stats: stats}
}

func (c StatCost) Cost(litlen, dist int) float64 {
	bits := func(n uint8) float64 {
		if n == 0 {
			return unusedSymbolBits
		}
		return float64(n)
	}
	if dist == 0 {
		return bits(c.stats.LitLenBits[litlen])
	}
	lenSym := dtables.LengthSymbol(litlen)
	lenExtra, _ := dtables.LengthExtra(litlen)
	distSym := dtables.DistSymbol(dist)
	distExtra, _ := dtables.DistExtra(dist)
	return bits(c.stats.LitLenBits[lenSym]) + float64(lenExtra) +
		bits(c.stats.DistBits[distSym]) + float64(distExtra)
}

func (c StatCost) MinCost() float64 { return minCostOf(c) }

// distSymbolStarts and lengthSymbolStarts are the first length/distance
// value for every symbol (RFC 1951 section 3.2.5): only these values can
// change which symbol, and hence which cost, a cost model reports, so a
// probe over them is sufficient to find the true minimum.
var distSymbolStarts = [dtables.NumDistSymbols - 2]int{
	1, 2, 3, 4, 5, 7, 9, 13, 17, 25, 33, 49, 65, 97, 129, 193,
	257, 385, 513, 769, 1025, 1537, 2049, 3073, 4097, 6145, 8193, 12289, 16385, 24577,
}
var lengthSymbolStarts = [dtables.NumLitLenSymbols - 259]int{
	3, 4, 5, 6, 7, 8, 9, 10, 11, 13, 15, 17, 19, 23, 27, 31,
	35, 43, 51, 59, 67, 83, 99, 115, 131, 163, 195, 227, 258,
}

// minCostOf finds the minimum bit cost a cost model can assign to any
// legal (litlen, dist) match, by probing every distance symbol against
// length 3, fixing the cheapest distance, then probing every length symbol
// against that distance. Two independent single-variable scans suffice
// because the cost decomposes additively into a length term and a distance
// term (spec.md section 4.1).
func minCostOf(m CostModel) float64 {
	bestDist, bestCost := 1, m.Cost(dtables.MinMatch, 1)
	for _, d := range distSymbolStarts {
		if c := m.Cost(dtables.MinMatch, d); c < bestCost {
			bestCost, bestDist = c, d
		}
	}
	best := m.Cost(dtables.MinMatch, bestDist)
	for _, l := range lengthSymbolStarts {
		if c := m.Cost(l, bestDist); c < best {
			best = c
		}
	}
	return best
}
