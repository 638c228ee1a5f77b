// Package blocksplit divides an input buffer into the block boundaries the
// compressor parses and emits independently. It deliberately does not
// implement zopfli's recursive entropy-estimate splitter: blocks are fixed
// size, the largest improvement an optimal parser offers comes from the
// iterative search itself, not from where the block boundaries fall.
package blocksplit

// DefaultBlockSize is the fallback chunk size when the caller doesn't pick
// one: large enough that dynamic Huffman header overhead is negligible,
// small enough that the O(n * windowSize) forward pass stays tractable.
const DefaultBlockSize = 1 << 20

// Boundaries splits [0, length) into contiguous blocks of at most
// blockSize bytes each, returning the sequence of cut points including 0
// and length. A non-positive blockSize is replaced with DefaultBlockSize.
func Boundaries(length, blockSize int) []int {
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	if length == 0 {
		return []int{0}
	}

	bounds := []int{0}
	for pos := 0; pos < length; pos += blockSize {
		end := pos + blockSize
		if end > length {
			end = length
		}
		bounds = append(bounds, end)
	}
	return bounds
}
