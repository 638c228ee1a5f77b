// Package dtables holds the fixed tables from RFC 1951 section 3.2.5 that
// both the cost models and the block-size oracle need to agree on: which
// length/distance falls under which Huffman symbol, and how many extra bits
// that symbol costs.
package dtables

const (
	MinMatch = 3
	MaxMatch = 258

	// NumLitLenSymbols matches DEFLATE's literal/length alphabet size: 256
	// literals, 1 end-of-block marker, 29 length codes, and 2 unused slots
	// zlib reserves so the alphabet size is a round 288.
	NumLitLenSymbols = 288
	NumDistSymbols   = 32

	EndOfBlockSymbol = 256

	// MaxWindowSize is the largest back-reference distance DEFLATE allows.
	MaxWindowSize = 32768
)

// lengthBase[i] and lengthExtraBits[i] describe length symbol 257+i.
var (
	lengthBase = [29]uint16{
		3, 4, 5, 6, 7, 8, 9, 10, 11, 13, 15, 17, 19, 23, 27, 31,
		35, 43, 51, 59, 67, 83, 99, 115, 131, 163, 195, 227, 258,
	}
	lengthExtraBits = [29]uint8{
		0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 2, 2,
		3, 3, 3, 3, 4, 4, 4, 4, 5, 5, 5, 5, 0,
	}
)

// distBase[i] and distExtraBits[i] describe distance symbol i.
var (
	distBase = [30]uint16{
		1, 2, 3, 4, 5, 7, 9, 13, 17, 25, 33, 49, 65, 97, 129, 193,
		257, 385, 513, 769, 1025, 1537, 2049, 3073, 4097, 6145, 8193, 12289, 16385, 24577,
	}
	distExtraBits = [30]uint8{
		0, 0, 0, 0, 1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 6,
		7, 7, 8, 8, 9, 9, 10, 10, 11, 11, 12, 12, 13, 13,
	}
)

// LengthSymbol returns the literal/length alphabet symbol (in [257,285])
// used to encode a match of the given length (in [MinMatch,MaxMatch]).
func LengthSymbol(length int) int {
	// Linear scan: the table has 29 entries and this is called on the hot
	// path, but a binary search buys nothing at this size.
	for i := len(lengthBase) - 1; i >= 0; i-- {
		if int(lengthBase[i]) <= length {
			return 257 + i
		}
	}
	return 257
}

// LengthExtra returns the number of extra bits following a length symbol
// and the value (length - base) those bits encode.
func LengthExtra(length int) (bits int, val uint32) {
	sym := LengthSymbol(length) - 257
	return int(lengthExtraBits[sym]), uint32(length) - uint32(lengthBase[sym])
}

// DistSymbol returns the distance alphabet symbol (in [0,29]) used to
// encode a back-reference of the given distance (in [1,32768]).
func DistSymbol(dist int) int {
	for i := len(distBase) - 1; i >= 0; i-- {
		if int(distBase[i]) <= dist {
			return i
		}
	}
	return 0
}

// DistExtra returns the number of extra bits following a distance symbol
// and the value (dist - base) those bits encode.
func DistExtra(dist int) (bits int, val uint32) {
	sym := DistSymbol(dist)
	return int(distExtraBits[sym]), uint32(dist) - uint32(distBase[sym])
}

// LengthSymbolBits returns the extra-bit count for a length symbol index
// (symbol-257), used when iterating all symbols rather than one length.
func LengthSymbolBits(sym int) int { return int(lengthExtraBits[sym]) }

// DistSymbolBits returns the extra-bit count for a distance symbol.
func DistSymbolBits(sym int) int { return int(distExtraBits[sym]) }
