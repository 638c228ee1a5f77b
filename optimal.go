package zopfligo

import (
	"fmt"
	"log/slog"

	"github.com/elliotnunn/zopfligo/internal/dtables"
)

// Options configures Optimal (spec.md section 4.3 and 4.7).
type Options struct {
	// WindowSize is the LZ77 sliding window, a power of two at most 32768.
	// Zero means dtables.MaxWindowSize.
	WindowSize int
	// NumIterations bounds how many shortest-path passes are run. Zero
	// means 15, zopfli's own default.
	NumIterations int
	// Verbose logs each iteration that improves on the best cost so far.
	Verbose bool
	// VerboseMore logs every iteration, improving or not.
	VerboseMore bool
	// Logger receives the iteration log lines. Nil disables logging
	// regardless of Verbose/VerboseMore.
	Logger *slog.Logger
}

func (o Options) windowSize() int {
	if o.WindowSize > 0 {
		return o.WindowSize
	}
	return dtables.MaxWindowSize
}

func (o Options) numIterations() int {
	if o.NumIterations > 0 {
		return o.NumIterations
	}
	return 15
}

// Optimal is the iteration driver (spec.md section 4.3): it warm-starts
// from a greedy parse, then repeatedly runs a shortest-path forward pass
// under a statistics-derived cost model, traces and realises the result,
// and keeps the realisation with the lowest true DEFLATE bit cost (judged
// by blockSize, never by the cost model's own estimate). Statistics blend
// across iterations once a randomised restart has kicked in, and stagnation
// (an unchanged true cost after iteration 5) triggers one.
//
// scratch and out must be distinct, freshly constructed Store values; out
// holds the best realisation found and is reset and overwritten whenever a
// strictly cheaper one is found, so it must start empty.
func Optimal(mf MatchFinder, buf []byte, instart, inend int, opts Options, greedy Greedy, verify Verifier, blockSize BlockSizeFunc, scratch, out Store) error {
	blocksize := inend - instart
	windowSize := opts.windowSize()

	lengthArray := make([]int, blocksize+1)
	costs := make([]float32, blocksize+1)

	stats := NewSymbolStats()
	beststats := NewSymbolStats()
	laststats := NewSymbolStats()

	scratch.Reset()
	greedy(mf, buf, instart, inend, scratch)
	GetStatistics(scratch, stats)
	CalculateStatistics(stats)

	ranState := NewRandState(1)
	lastrandomstep := -1
	bestcost := float64(largeCost)
	var lastcost float64

	for i := 0; i < opts.numIterations(); i++ {
		scratch.Reset()

		model := NewStatCost(stats)
		estimate := GetBestLengths(mf, buf, instart, inend, model, windowSize, lengthArray, costs)
		if estimate >= float64(largeCost) {
			return fmt.Errorf("zopfligo: optimal: forward pass failed to connect block (iteration %d)", i)
		}

		path, err := TraceBackwards(blocksize, lengthArray)
		if err != nil {
			return fmt.Errorf("zopfligo: optimal: %w", err)
		}
		if err := FollowPath(mf, buf, instart, inend, path, windowSize, verify, scratch); err != nil {
			return fmt.Errorf("zopfligo: optimal: %w", err)
		}

		trueCost := blockSize(scratch, 0, scratch.Len())

		if opts.Logger != nil && (opts.VerboseMore || (opts.Verbose && trueCost < bestcost)) {
			opts.Logger.Info("zopfligo iteration", "iteration", i, "bits", int(trueCost))
		}

		if trueCost < bestcost {
			out.Reset()
			copyStoreInto(scratch, out)
			CopyStats(stats, beststats)
			bestcost = trueCost
		}

		CopyStats(stats, laststats)
		ClearStatFreqs(stats)
		GetStatistics(scratch, stats)
		CalculateStatistics(stats)

		if lastrandomstep != -1 {
			AddWeighedStatFreqs(stats, 1.0, laststats, 0.5, stats)
			CalculateStatistics(stats)
		}

		if i > 5 && trueCost == lastcost {
			CopyStats(beststats, stats)
			RandomizeStatFreqs(ranState, stats)
			CalculateStatistics(stats)
			lastrandomstep = i
		}
		lastcost = trueCost
	}

	return nil
}

// OptimalFixed runs a single shortest-path pass under the fixed-Huffman
// cost model (spec.md section 4.3): useful for blocks too short for a
// dynamic Huffman table to pay for itself.
func OptimalFixed(mf MatchFinder, buf []byte, instart, inend int, windowSize int, verify Verifier, out Store) error {
	if windowSize <= 0 {
		windowSize = dtables.MaxWindowSize
	}
	blocksize := inend - instart
	lengthArray := make([]int, blocksize+1)
	costs := make([]float32, blocksize+1)

	estimate := GetBestLengths(mf, buf, instart, inend, FixedCost{}, windowSize, lengthArray, costs)
	if estimate >= float64(largeCost) {
		return fmt.Errorf("zopfligo: optimal fixed: forward pass failed to connect block")
	}

	path, err := TraceBackwards(blocksize, lengthArray)
	if err != nil {
		return fmt.Errorf("zopfligo: optimal fixed: %w", err)
	}
	out.Reset()
	if err := FollowPath(mf, buf, instart, inend, path, windowSize, verify, out); err != nil {
		return fmt.Errorf("zopfligo: optimal fixed: %w", err)
	}
	return nil
}

// copyStoreInto appends every symbol in src to dst, preserving order.
func copyStoreInto(src Store, dst SymbolSink) {
	for i := 0; i < src.Len(); i++ {
		litlen, dist, pos := src.At(i)
		if dist == 0 {
			dst.AddLiteral(byte(litlen), pos)
		} else {
			dst.AddMatch(litlen, dist, pos)
		}
	}
}
