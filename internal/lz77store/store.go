// Package lz77store holds the LZ77 symbol store (zopfligo.Store), the
// greedy warm-start parser that seeds the iteration driver's first
// statistics, the match verifier, and the true-bit-cost block size oracle
// the driver optimises against.
package lz77store

import (
	"fmt"

	"github.com/elliotnunn/zopfligo"
	"github.com/elliotnunn/zopfligo/internal/dtables"
)

// Store is a growable sequence of LZ77 symbols: a literal is stored with
// dist == 0 and litlen equal to the byte value; a match is stored with
// dist > 0 and litlen equal to the match length.
type Store struct {
	litlens []int
	dists   []int
	positions []int
}

// New returns an empty Store.
func New() *Store {
	return &Store{}
}

func (s *Store) AddLiteral(b byte, pos int) {
	s.litlens = append(s.litlens, int(b))
	s.dists = append(s.dists, 0)
	s.positions = append(s.positions, pos)
}

func (s *Store) AddMatch(length, dist, pos int) {
	s.litlens = append(s.litlens, length)
	s.dists = append(s.dists, dist)
	s.positions = append(s.positions, pos)
}

func (s *Store) Len() int { return len(s.litlens) }

func (s *Store) At(i int) (litlen, dist, pos int) {
	return s.litlens[i], s.dists[i], s.positions[i]
}

func (s *Store) Reset() {
	s.litlens = s.litlens[:0]
	s.dists = s.dists[:0]
	s.positions = s.positions[:0]
}

// VerifyLenDist is a zopfligo.Verifier: it confirms that copying length
// bytes from pos-dist reproduces buf[pos:pos+length] exactly. Disagreement
// means the match finder and the realised path disagree about the input,
// an internal invariant violation rather than a malformed-input condition.
func VerifyLenDist(buf []byte, end, pos, dist, length int) error {
	if dist == 0 {
		return fmt.Errorf("zopfligo: verify len/dist: zero distance at pos %d", pos)
	}
	if dist > pos {
		return fmt.Errorf("zopfligo: verify len/dist: distance %d exceeds position %d", dist, pos)
	}
	if pos+length > end {
		return fmt.Errorf("zopfligo: verify len/dist: length %d at pos %d runs past end %d", length, pos, end)
	}
	for i := 0; i < length; i++ {
		if buf[pos-dist+i] != buf[pos+i] {
			return fmt.Errorf("zopfligo: verify len/dist: mismatch at offset %d (pos=%d dist=%d length=%d)", i, pos, dist, length)
		}
	}
	return nil
}

// Greedy is a zopfligo.Greedy: the warm-start parse zopfli runs once before
// its first statistical iteration. It is a classic one-byte lazy-matching
// DEFLATE parser (zlib's deflate_slow, not deflate_fast): a candidate match
// is held back for one position, and only committed once the next position
// fails to offer something strictly longer, so a match is only ever taken
// when it isn't immediately beaten by deferring it.
func Greedy(mf zopfligo.MatchFinder, buf []byte, from, to int, out zopfligo.Store) {
	if from >= to {
		return
	}

	mf.Reset(dtables.MaxWindowSize)
	windowStart := from - dtables.MaxWindowSize
	if windowStart < 0 {
		windowStart = 0
	}
	mf.Warmup(buf, windowStart, from)

	pos := from
	havePending := false
	pendingPos, pendingLen, pendingDist := 0, 0, 0

	for pos < to {
		mf.Update(buf, pos, to)
		length, dist := mf.FindLongest(buf, pos, to, dtables.MaxMatch, nil)

		if havePending {
			if length > pendingLen {
				// The next position beats the held-back match: give up on
				// it (emit its byte as a literal) and hold the new one
				// instead.
				out.AddLiteral(buf[pendingPos], pendingPos)
				pendingPos, pendingLen, pendingDist = pos, length, dist
				pos++
				continue
			}

			out.AddMatch(pendingLen, pendingDist, pendingPos)
			resumeAt := pendingPos + pendingLen
			for j := pos + 1; j < resumeAt; j++ {
				mf.Update(buf, j, to)
			}
			pos = resumeAt
			havePending = false
			continue
		}

		if length >= dtables.MinMatch {
			havePending = true
			pendingPos, pendingLen, pendingDist = pos, length, dist
			pos++
			continue
		}

		out.AddLiteral(buf[pos], pos)
		pos++
	}

	if havePending {
		out.AddMatch(pendingLen, pendingDist, pendingPos)
	}
}
