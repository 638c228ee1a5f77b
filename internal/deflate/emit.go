// Package deflate packs an already-parsed LZ77 symbol store into an
// actual DEFLATE bitstream (RFC 1951): canonical Huffman code assignment,
// dynamic header encoding, and a plain stored-block fallback.
package deflate

import (
	"github.com/elliotnunn/zopfligo"
	"github.com/elliotnunn/zopfligo/internal/bitio"
	"github.com/elliotnunn/zopfligo/internal/dtables"
	"github.com/elliotnunn/zopfligo/internal/huffman"
)

var clcOrder = [19]int{16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15}

type rleSym struct {
	symbol    int
	extraBits int
	extraVal  int
}

func encodeLengthsRLE(lengths []uint8) []rleSym {
	var out []rleSym
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
				out = append(out, rleSym{18, 7, take - 11})
				rem -= take
			}
			for rem >= 3 {
				take := rem
				if take > 10 {
					take = 10
				}
				out = append(out, rleSym{17, 3, take - 3})
				rem -= take
			}
			for ; rem > 0; rem-- {
				out = append(out, rleSym{0, 0, 0})
			}
		} else {
			out = append(out, rleSym{int(val), 0, 0})
			rem := run - 1
			for rem >= 3 {
				take := rem
				if take > 6 {
					take = 6
				}
				out = append(out, rleSym{16, 2, take - 3})
				rem -= take
			}
			for ; rem > 0; rem-- {
				out = append(out, rleSym{int(val), 0, 0})
			}
		}
		i += run
	}
	return out
}

func trimTrailingZeros(lengths []uint8, min int) []uint8 {
	n := len(lengths)
	for n > min && lengths[n-1] == 0 {
		n--
	}
	return lengths[:n]
}

func writeCode(w *bitio.Writer, codes []uint16, lengths []uint8, sym int) {
	l := lengths[sym]
	w.WriteBits(uint32(reverseBits(codes[sym], l)), uint(l))
}

func emitDynamicHeader(w *bitio.Writer, litlenLengths, distLengths []uint8) (litlenCodes, distCodes []uint16) {
	ll := trimTrailingZeros(litlenLengths, 257)
	dd := trimTrailingZeros(distLengths, 1)

	combined := make([]uint8, 0, len(ll)+len(dd))
	combined = append(combined, ll...)
	combined = append(combined, dd...)
	entries := encodeLengthsRLE(combined)

	var clFreq [19]uint32
	for _, e := range entries {
		clFreq[e.symbol]++
	}
	clLengths := huffman.BuildLengths(clFreq[:], 7)
	clCodes := buildCodes(clLengths)

	numCLCL := 19
	for numCLCL > 4 && clLengths[clcOrder[numCLCL-1]] == 0 {
		numCLCL--
	}

	w.WriteBits(uint32(len(ll)-257), 5)
	w.WriteBits(uint32(len(dd)-1), 5)
	w.WriteBits(uint32(numCLCL-4), 4)
	for i := 0; i < numCLCL; i++ {
		w.WriteBits(uint32(clLengths[clcOrder[i]]), 3)
	}
	for _, e := range entries {
		writeCode(w, clCodes, clLengths, e.symbol)
		if e.extraBits > 0 {
			w.WriteBits(uint32(e.extraVal), uint(e.extraBits))
		}
	}

	return buildCodes(litlenLengths), buildCodes(distLengths)
}

// EmitDynamicBlock writes store[from:to] as one BTYPE=2 (dynamic Huffman)
// block to w, preceded by its 3-bit block header. final sets BFINAL.
func EmitDynamicBlock(w *bitio.Writer, store zopfligo.Store, from, to int, final bool) {
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
	nonZeroDist := false
	for _, f := range distFreq {
		if f > 0 {
			nonZeroDist = true
			break
		}
	}
	if !nonZeroDist {
		distFreq[0] = 1
	}

	litlenLengths := huffman.BuildLengths(litlenFreq[:], huffman.MaxCodeLength)
	distLengths := huffman.BuildLengths(distFreq[:], huffman.MaxCodeLength)

	if final {
		w.WriteBit(1)
	} else {
		w.WriteBit(0)
	}
	w.WriteBits(2, 2)

	litlenCodes, distCodes := emitDynamicHeader(w, litlenLengths, distLengths)

	for i := from; i < to; i++ {
		litlen, dist, _ := store.At(i)
		if dist == 0 {
			writeCode(w, litlenCodes, litlenLengths, litlen)
			continue
		}
		lenSym := dtables.LengthSymbol(litlen)
		lenExtraBits, lenExtraVal := dtables.LengthExtra(litlen)
		distSym := dtables.DistSymbol(dist)
		distExtraBits, distExtraVal := dtables.DistExtra(dist)

		writeCode(w, litlenCodes, litlenLengths, lenSym)
		if lenExtraBits > 0 {
			w.WriteBits(lenExtraVal, uint(lenExtraBits))
		}
		writeCode(w, distCodes, distLengths, distSym)
		if distExtraBits > 0 {
			w.WriteBits(distExtraVal, uint(distExtraBits))
		}
	}
	writeCode(w, litlenCodes, litlenLengths, dtables.EndOfBlockSymbol)
}

// EmitStoredBlock writes raw[from:to] as an uncompressed BTYPE=0 block,
// the fallback for incompressible data or blocks shorter than the
// overhead a Huffman header would add.
func EmitStoredBlock(w *bitio.Writer, raw []byte, from, to int, final bool) {
	if final {
		w.WriteBit(1)
	} else {
		w.WriteBit(0)
	}
	w.WriteBits(0, 2)
	w.AlignToByte()

	length := to - from
	w.WriteBits(uint32(length&0xff), 8)
	w.WriteBits(uint32((length>>8)&0xff), 8)
	nlen := (^length) & 0xffff
	w.WriteBits(uint32(nlen&0xff), 8)
	w.WriteBits(uint32((nlen>>8)&0xff), 8)
	for i := from; i < to; i++ {
		w.WriteBits(uint32(raw[i]), 8)
	}
}
