package zopfligo

import (
	"fmt"

	"github.com/elliotnunn/zopfligo/internal/dtables"
)

// TraceBackwards walks lengthArray (as filled by GetBestLengths) from
// size back to 0, recovering the sequence of symbol lengths on the optimal
// path, then returns them in forward order (spec.md section 4.5).
//
// A zero-length entry, an entry longer than the position it sits at, or an
// entry longer than MaxMatch means lengthArray was not filled by a genuine
// forward pass over this block: that is an internal invariant violation,
// not a malformed-input condition, so it is reported as an error rather
// than silently truncating the path.
func TraceBackwards(size int, lengthArray []int) ([]int, error) {
	if size == 0 {
		return nil, nil
	}

	var reversed []int
	index := size
	for {
		length := lengthArray[index]
		if length == 0 {
			return nil, fmt.Errorf("zopfligo: trace backwards: zero length at index %d", index)
		}
		if length > index {
			return nil, fmt.Errorf("zopfligo: trace backwards: length %d exceeds index %d", length, index)
		}
		if length > dtables.MaxMatch {
			return nil, fmt.Errorf("zopfligo: trace backwards: length %d exceeds MaxMatch", length)
		}
		reversed = append(reversed, length)
		index -= length
		if index == 0 {
			break
		}
	}

	path := make([]int, len(reversed))
	for i, l := range reversed {
		path[len(reversed)-1-i] = l
	}
	return path, nil
}
