package blocksplit_test

import (
	"testing"

	"github.com/elliotnunn/zopfligo/internal/blocksplit"
)

func TestBoundariesCoversWholeInput(t *testing.T) {
	bounds := blocksplit.Boundaries(10000, 4096)
	if bounds[0] != 0 {
		t.Fatalf("first boundary = %d, want 0", bounds[0])
	}
	if last := bounds[len(bounds)-1]; last != 10000 {
		t.Fatalf("last boundary = %d, want 10000", last)
	}
	for i := 1; i < len(bounds); i++ {
		if bounds[i] <= bounds[i-1] {
			t.Fatalf("boundaries not strictly increasing at %d: %d <= %d", i, bounds[i], bounds[i-1])
		}
		if bounds[i]-bounds[i-1] > 4096 {
			t.Fatalf("block %d too large: %d bytes", i, bounds[i]-bounds[i-1])
		}
	}
}

func TestBoundariesEmptyInput(t *testing.T) {
	bounds := blocksplit.Boundaries(0, 4096)
	if len(bounds) != 1 || bounds[0] != 0 {
		t.Fatalf("Boundaries(0, ...) = %v, want [0]", bounds)
	}
}

func TestBoundariesDefaultsOnNonPositiveBlockSize(t *testing.T) {
	bounds := blocksplit.Boundaries(100, 0)
	if len(bounds) != 2 || bounds[1] != 100 {
		t.Fatalf("Boundaries(100, 0) = %v, want single block [0 100]", bounds)
	}
}
