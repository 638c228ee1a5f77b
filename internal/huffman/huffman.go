// Package huffman builds length-limited Huffman code lengths from symbol
// frequencies: the same construction DEFLATE's own dynamic-Huffman blocks
// need, and the one the cost models in this repository use to turn raw
// symbol counts into per-symbol bit-length estimates.
package huffman

import "sort"

// MaxCodeLength is the DEFLATE limit (RFC 1951 section 3.2.7): both the
// literal/length and distance alphabets cap codes at 15 bits.
const MaxCodeLength = 15

// node is an entry in the Huffman merge tree. Leaves occupy ids
// [0, numLeaves); internal nodes occupy ids [numLeaves, 2*numLeaves-2].
type node struct {
	freq uint64
	id   int
}

// BuildLengths returns, for each index of freqs, the number of bits its
// Huffman code would occupy in an optimal prefix code built over freqs and
// clamped to at most limit bits. Indices with freqs[i] == 0 get length 0.
//
// The tree is built with the standard linear-time two-queue merge (valid
// once the leaves are pre-sorted), then any code that comes out deeper than
// limit is clamped and the bit budget rebalanced with the classic
// overflow-correction used by DEFLATE encoders (zlib's gen_bitlen): each
// step moves one code from the deepest level below the limit one bit
// deeper and pairs it with a code taken from the limit level, until the
// Kraft sum is back to exactly 1.
func BuildLengths(freqs []uint32, limit int) []uint8 {
	lengths := make([]uint8, len(freqs))

	type leafIdx struct {
		sym  int
		freq uint64
	}
	var leaves []leafIdx
	for i, f := range freqs {
		if f > 0 {
			leaves = append(leaves, leafIdx{sym: i, freq: uint64(f)})
		}
	}

	switch len(leaves) {
	case 0:
		return lengths
	case 1:
		lengths[leaves[0].sym] = 1
		return lengths
	}

	sort.Slice(leaves, func(a, b int) bool { return leaves[a].freq < leaves[b].freq })

	numLeaves := len(leaves)
	dad := make([]int32, 2*numLeaves-1)
	for i := range dad {
		dad[i] = -1
	}

	queue1 := make([]node, numLeaves)
	for i, l := range leaves {
		queue1[i] = node{freq: l.freq, id: i}
	}
	var queue2 []node
	i1, i2 := 0, 0
	nextID := numLeaves

	popMin := func() node {
		useQueue2 := i2 < len(queue2) && (i1 >= len(queue1) || queue2[i2].freq <= queue1[i1].freq)
		if useQueue2 {
			n := queue2[i2]
			i2++
			return n
		}
		n := queue1[i1]
		i1++
		return n
	}

	for made := 0; made < numLeaves-1; made++ {
		a := popMin()
		b := popMin()
		id := nextID
		nextID++
		dad[a.id] = int32(id)
		dad[b.id] = int32(id)
		queue2 = append(queue2, node{freq: a.freq + b.freq, id: id})
	}

	depthOf := func(id int) int {
		d := 0
		for dad[id] != -1 {
			id = int(dad[id])
			d++
		}
		return d
	}

	type withDepth struct {
		sym   int
		freq  uint64
		depth int
	}
	ordered := make([]withDepth, numLeaves)
	maxDepth := 0
	for i, l := range leaves {
		d := depthOf(i)
		if d > maxDepth {
			maxDepth = d
		}
		ordered[i] = withDepth{sym: l.sym, freq: l.freq, depth: d}
	}

	if maxDepth <= limit {
		for _, l := range ordered {
			lengths[l.sym] = uint8(l.depth)
		}
		return lengths
	}

	blCount := make([]int, maxDepth+2)
	for i := range ordered {
		bits := ordered[i].depth
		if bits > limit {
			bits = limit
		}
		ordered[i].depth = bits
		blCount[bits]++
	}

	// excess is how far clamping pushed the Kraft sum above 1, in units of
	// 2^-limit; each correction step below lowers it by exactly one unit.
	excess := -(1 << limit)
	for bits := 1; bits <= limit; bits++ {
		excess += blCount[bits] << (limit - bits)
	}
	for excess > 0 {
		bits := limit - 1
		for blCount[bits] == 0 {
			bits--
		}
		blCount[bits]--
		blCount[bits+1] += 2
		blCount[limit]--
		excess--
	}

	// Reassign final lengths: the symbols that were clamped or nearly
	// clamped (largest depth after clamping, and among ties the rarest) take the
	// longest remaining codes, mirroring zlib's heap-order reassignment.
	sort.Slice(ordered, func(a, b int) bool {
		if ordered[a].depth != ordered[b].depth {
			return ordered[a].depth > ordered[b].depth
		}
		return ordered[a].freq < ordered[b].freq
	})

	pos := 0
	for bits := limit; bits >= 1; bits-- {
		for n := blCount[bits]; n > 0; n-- {
			lengths[ordered[pos].sym] = uint8(bits)
			pos++
		}
	}
	for ; pos < len(ordered); pos++ {
		lengths[ordered[pos].sym] = uint8(limit)
	}

	return lengths
}
