package zopfligo

import (
	"fmt"

	"github.com/elliotnunn/zopfligo/internal/dtables"
)

// FollowPath re-walks the match finder over buf[instart:inend], realising
// the length sequence path (as recovered by TraceBackwards) into literal
// and match symbols appended to store (spec.md section 4.6).
//
// For each step whose length is at least MinMatch it re-queries the match
// finder, capped at that length, purely to recover the distance the
// forward pass implied; it then verifies the match against the input
// before storing it. A length that the match finder can no longer
// reproduce at all, or a match verify failing is an internal invariant
// violation and is returned as an error.
func FollowPath(mf MatchFinder, buf []byte, instart, inend int, path []int, windowSize int, verify Verifier, store SymbolSink) error {
	if instart == inend {
		return nil
	}

	windowStart := instart - windowSize
	if windowStart < 0 {
		windowStart = 0
	}

	mf.Reset(windowSize)
	mf.Warmup(buf, windowStart, instart)

	pos := instart
	for _, length := range path {
		if pos >= inend {
			return fmt.Errorf("zopfligo: follow path: position %d past end %d", pos, inend)
		}
		mf.Update(buf, pos, inend)

		if length >= dtables.MinMatch {
			found, dist := mf.FindLongest(buf, pos, inend, length, nil)
			if found < length {
				return fmt.Errorf("zopfligo: follow path: match finder could only reproduce length %d, wanted %d at pos %d", found, length, pos)
			}
			if verify != nil {
				if err := verify(buf, inend, pos, dist, length); err != nil {
					return fmt.Errorf("zopfligo: follow path: %w", err)
				}
			}
			store.AddMatch(length, dist, pos)
		} else {
			length = 1
			store.AddLiteral(buf[pos], pos)
		}

		if pos+length > inend {
			return fmt.Errorf("zopfligo: follow path: length %d at pos %d runs past end %d", length, pos, inend)
		}
		for j := 1; j < length; j++ {
			mf.Update(buf, pos+j, inend)
		}
		pos += length
	}

	return nil
}
