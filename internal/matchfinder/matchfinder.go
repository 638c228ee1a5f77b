// Package matchfinder implements a sliding-window hash-chain longest-match
// search, the classic zlib structure: a hash-bucket head table pointing at
// the most recent position with a given 3-byte hash, and a per-position
// prev table chaining each position back to the previous one sharing that
// hash. Buckets are addressed with xxhash rather than zlib's shift-xor
// rolling hash.
package matchfinder

import (
	"github.com/cespare/xxhash/v2"

	"github.com/elliotnunn/zopfligo/internal/dtables"
)

const (
	hashBits = 16
	hashSize = 1 << hashBits
	hashMask = hashSize - 1
)

// defaultChainLimit caps how many candidates FindLongest walks down one
// hash chain before giving up: without a cap, pathological inputs (long
// runs of a repeated byte) make the chain degenerate to O(n) per position.
const defaultChainLimit = 4096

// Finder is a MatchFinder (see the root package's MatchFinder interface).
// It is not safe for concurrent use; callers running multiple blocks in
// parallel should give each worker its own Finder.
type Finder struct {
	windowSize int
	windowMask int
	chainLimit int

	head []int // [hashSize]: bucket -> most recent absolute position, -1 if empty
	prev []int // [windowSize]: (pos & windowMask) -> previous absolute position with the same hash, -1 if none
	same []int // [windowSize]: (pos & windowMask) -> run length of bytes equal to buf[pos], capped at 0xffff
}

// New returns a Finder. chainLimit bounds the hash-chain walk per
// FindLongest call; zero means defaultChainLimit.
func New(chainLimit int) *Finder {
	if chainLimit <= 0 {
		chainLimit = defaultChainLimit
	}
	return &Finder{chainLimit: chainLimit}
}

func (f *Finder) Reset(windowSize int) {
	f.windowSize = windowSize
	f.windowMask = windowSize - 1

	if cap(f.head) < hashSize {
		f.head = make([]int, hashSize)
	}
	f.head = f.head[:hashSize]
	for i := range f.head {
		f.head[i] = -1
	}

	if cap(f.prev) < windowSize {
		f.prev = make([]int, windowSize)
		f.same = make([]int, windowSize)
	}
	f.prev = f.prev[:windowSize]
	f.same = f.same[:windowSize]
	for i := range f.prev {
		f.prev[i] = -1
		f.same[i] = 0
	}
}

func (f *Finder) Warmup(buf []byte, from, to int) {
	for i := from; i < to; i++ {
		f.Update(buf, i, len(buf))
	}
}

func (f *Finder) Update(buf []byte, pos, end int) {
	if pos < 0 || pos >= end {
		return
	}
	m := pos & f.windowMask
	h := hash3(buf, pos, end)

	f.prev[m] = f.head[h]
	f.head[h] = pos

	if pos > 0 && buf[pos] == buf[pos-1] {
		run := int(f.same[(pos-1)&f.windowMask]) + 1
		if run > 0xffff {
			run = 0xffff
		}
		f.same[m] = run
	} else {
		f.same[m] = 1
	}
}

func (f *Finder) SameAt(posMasked int) int {
	return f.same[posMasked&f.windowMask]
}

// FindLongest walks the hash chain at pos, returning the longest match
// found within [MinMatch, cap] and its distance. When sublen is non-nil,
// sublen[k] is set to the smallest distance at which a match of length k
// was found, for every k in [MinMatch, length]: the chain is walked
// nearest-candidate-first, so the first candidate reaching a given length
// already holds that length's smallest distance.
func (f *Finder) FindLongest(buf []byte, pos, end, capLen int, sublen []uint16) (int, int) {
	if pos >= end {
		return 0, 0
	}
	maxLen := end - pos
	if capLen < maxLen {
		maxLen = capLen
	}
	if maxLen > dtables.MaxMatch {
		maxLen = dtables.MaxMatch
	}
	if maxLen < dtables.MinMatch {
		return 0, 0
	}

	h := hash3(buf, pos, end)
	cand := f.head[h]
	if cand == pos {
		// Update has already inserted pos itself; start at its predecessor.
		cand = f.prev[pos&f.windowMask]
	}

	bestLen, bestDist := 0, 0
	tries := f.chainLimit

	for cand >= 0 && tries > 0 {
		tries--
		dist := pos - cand
		if dist <= 0 || dist > f.windowSize {
			break
		}

		length := matchLength(buf, cand, pos, end, maxLen)
		if length > bestLen {
			if sublen != nil {
				for k := max(bestLen+1, dtables.MinMatch); k <= length && k < len(sublen); k++ {
					sublen[k] = uint16(dist)
				}
			}
			bestLen, bestDist = length, dist
			if length >= maxLen {
				break
			}
		}

		cand = f.prev[cand&f.windowMask]
	}

	return bestLen, bestDist
}

func matchLength(buf []byte, a, b, end, maxLen int) int {
	n := 0
	for n < maxLen && b+n < end && buf[a+n] == buf[b+n] {
		n++
	}
	return n
}

func hash3(buf []byte, pos, end int) uint32 {
	var b [3]byte
	for i := 0; i < 3; i++ {
		if pos+i < end {
			b[i] = buf[pos+i]
		}
	}
	return uint32(xxhash.Sum64(b[:])) & hashMask
}
