package lz77store

import (
	"github.com/elliotnunn/zopfligo"
	"github.com/elliotnunn/zopfligo/internal/dtables"
	"github.com/elliotnunn/zopfligo/internal/huffman"
)

// clcOrder is the fixed transmission order of code-length code lengths in
// a dynamic Huffman header (RFC 1951 section 3.2.7).
var clcOrder = [19]int{16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15}

// rleEntry is one run-length-encoded code-length symbol: a value in
// [0,18], plus however many extra bits its run count consumes.
type rleEntry struct {
	symbol    int
	extraBits int
}

// rleEncodeLengths run-length-encodes a Huffman code-length sequence the
// way a dynamic header transmits it: literal lengths 0-15, symbol 16
// repeats the previous length 3-6 times, 17 repeats a zero run 3-10 times,
// 18 repeats a zero run 11-138 times. It greedily takes the longest legal
// run at each step, matching what a size-minimising encoder produces.
func rleEncodeLengths(lengths []uint8) []rleEntry {
	var out []rleEntry
	n := len(lengths)
	for i := 0; i < n; {
		val := lengths[i]
		run := 1
		for i+run < n && lengths[i+run] == val {
			run++
		}
		if val == 0 {
			rem := run
			for rem >= 11 {
				take := rem
				if take > 138 {
					take = 138
				}
				out = append(out, rleEntry{18, 7})
				rem -= take
			}
			for rem >= 3 {
				take := rem
				if take > 10 {
					take = 10
				}
				out = append(out, rleEntry{17, 3})
				rem -= take
			}
			for ; rem > 0; rem-- {
				out = append(out, rleEntry{0, 0})
			}
		} else {
			out = append(out, rleEntry{int(val), 0})
			rem := run - 1
			for rem >= 3 {
				take := rem
				if take > 6 {
					take = 6
				}
				out = append(out, rleEntry{16, 2})
				rem -= take
			}
			for ; rem > 0; rem-- {
				out = append(out, rleEntry{int(val), 0})
			}
		}
		i += run
	}
	return out
}

// trimTrailingZeros returns the shortest prefix of lengths, at least min
// long, after which every remaining entry is zero.
func trimTrailingZeros(lengths []uint8, min int) []uint8 {
	n := len(lengths)
	for n > min && lengths[n-1] == 0 {
		n--
	}
	return lengths[:n]
}

// headerBits computes the bit cost of transmitting litlenLengths and
// distLengths as a dynamic Huffman header (RFC 1951 section 3.2.7): HLIT,
// HDIST, HCLEN, the code-length code lengths themselves, and the
// run-length-encoded body.
func headerBits(litlenLengths, distLengths []uint8) float64 {
	ll := trimTrailingZeros(litlenLengths, 257)
	dd := trimTrailingZeros(distLengths, 1)

	combined := make([]uint8, 0, len(ll)+len(dd))
	combined = append(combined, ll...)
	combined = append(combined, dd...)

	entries := rleEncodeLengths(combined)

	var clFreq [19]uint32
	for _, e := range entries {
		clFreq[e.symbol]++
	}
	clLengths := huffman.BuildLengths(clFreq[:], 7)

	numCLCL := 19
	for numCLCL > 4 && clLengths[clcOrder[numCLCL-1]] == 0 {
		numCLCL--
	}

	bits := 5.0 + 5.0 + 4.0 + float64(numCLCL)*3.0
	for _, e := range entries {
		bits += float64(clLengths[e.symbol]) + float64(e.extraBits)
	}
	return bits
}

// CalculateBlockSize is the true DEFLATE dynamic-Huffman (BTYPE=2) bit cost
// of store[from:to], computed from that range's own symbol frequencies and
// independently-built length-limited Huffman code lengths: the oracle the iteration
// driver judges every candidate parse against, never the cost model that
// produced it.
func CalculateBlockSize(store zopfligo.Store, from, to int) float64 {
	var litlenFreq [dtables.NumLitLenSymbols]uint32
	var distFreq [dtables.NumDistSymbols]uint32

	for i := from; i < to; i++ {
		litlen, dist, _ := store.At(i)
		if dist == 0 {
			litlenFreq[litlen]++
		} else {
			litlenFreq[dtables.LengthSymbol(litlen)]++
			distFreq[dtables.DistSymbol(dist)]++
		}
	}
	litlenFreq[dtables.EndOfBlockSymbol]++
	if allZero(distFreq[:]) {
		distFreq[0] = 1
	}

	litlenLengths := huffman.BuildLengths(litlenFreq[:], huffman.MaxCodeLength)
	distLengths := huffman.BuildLengths(distFreq[:], huffman.MaxCodeLength)

	bits := 3.0 // BFINAL + BTYPE
	bits += headerBits(litlenLengths, distLengths)

	for i := from; i < to; i++ {
		litlen, dist, _ := store.At(i)
		if dist == 0 {
			bits += float64(litlenLengths[litlen])
			continue
		}
		lenSym := dtables.LengthSymbol(litlen)
		lenExtra, _ := dtables.LengthExtra(litlen)
		distSym := dtables.DistSymbol(dist)
		distExtra, _ := dtables.DistExtra(dist)
		bits += float64(litlenLengths[lenSym]) + float64(lenExtra)
		bits += float64(distLengths[distSym]) + float64(distExtra)
	}
	bits += float64(litlenLengths[dtables.EndOfBlockSymbol])

	return bits
}

func allZero(freqs []uint32) bool {
	for _, f := range freqs {
		if f > 0 {
			return false
		}
	}
	return true
}
