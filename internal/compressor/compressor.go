// Package compressor wires the root package's iterative parser to a
// concrete match finder, symbol store, block splitter and DEFLATE emitter,
// producing the one entry point cmd/zopfligo and its tests actually call.
package compressor

import (
	"fmt"
	"log/slog"

	"github.com/elliotnunn/zopfligo"
	"github.com/elliotnunn/zopfligo/internal/bitio"
	"github.com/elliotnunn/zopfligo/internal/blocksplit"
	"github.com/elliotnunn/zopfligo/internal/deflate"
	"github.com/elliotnunn/zopfligo/internal/dtables"
	"github.com/elliotnunn/zopfligo/internal/lz77store"
	"github.com/elliotnunn/zopfligo/internal/matchfinder"
	"github.com/elliotnunn/zopfligo/internal/workerpool"
)

// Config controls a Compress call.
type Config struct {
	// BlockSize is the maximum number of input bytes parsed as one DEFLATE
	// block. Zero means blocksplit.DefaultBlockSize.
	BlockSize int
	// NumIterations bounds the shortest-path iterations per block. Zero
	// means zopfligo's own default (15).
	NumIterations int
	// Verbose and VerboseMore forward to zopfligo.Options.
	Verbose, VerboseMore bool
	// Logger receives iteration logs when Verbose or VerboseMore is set.
	Logger *slog.Logger
	// NumWorkers bounds how many blocks are parsed concurrently. Zero means
	// runtime.GOMAXPROCS(0), one worker per available processor.
	NumWorkers int
}

// Compress runs the iterative optimal parser over buf, block by block, and
// emits a complete DEFLATE stream (a sequence of BFINAL/BTYPE-tagged
// blocks with no surrounding zlib or gzip framing).
func Compress(buf []byte, cfg Config) ([]byte, error) {
	bounds := blocksplit.Boundaries(len(buf), cfg.BlockSize)

	w := bitio.NewWriter()

	opts := zopfligo.Options{
		WindowSize:    dtables.MaxWindowSize,
		NumIterations: cfg.NumIterations,
		Verbose:       cfg.Verbose,
		VerboseMore:   cfg.VerboseMore,
		Logger:        cfg.Logger,
	}

	numBlocks := len(bounds) - 1
	if numBlocks == 0 {
		// Empty input: one empty final dynamic block, matching what a
		// degenerate zero-length stream still needs to be well-formed.
		store := lz77store.New()
		deflate.EmitDynamicBlock(w, store, 0, 0, true)
		return w.Bytes(), nil
	}

	// Every block is parsed independently (its own window warmup, its own
	// dynamic Huffman header), so blocks are parallelized across a bounded
	// worker pool (spec section 5): each task owns a fresh matchfinder.Finder
	// and pair of lz77store.Store values, and zopfligo.Optimal's PRNG and
	// statistics are already call-local, so nothing is shared between
	// concurrently running blocks.
	results := make([]*lz77store.Store, numBlocks)
	tasks := make([]workerpool.Task, numBlocks)
	for i := 0; i < numBlocks; i++ {
		i := i
		tasks[i] = func() error {
			from, to := bounds[i], bounds[i+1]

			mf := matchfinder.New(0)
			scratch := lz77store.New()
			best := lz77store.New()

			if err := zopfligo.Optimal(mf, buf, from, to, opts, lz77store.Greedy, lz77store.VerifyLenDist, lz77store.CalculateBlockSize, scratch, best); err != nil {
				return fmt.Errorf("zopfligo: compress block [%d,%d): %w", from, to, err)
			}
			results[i] = best
			return nil
		}
	}

	pool := workerpool.New(cfg.NumWorkers)
	defer pool.Close()
	if err := pool.Run(tasks); err != nil {
		return nil, err
	}

	for i, store := range results {
		final := i == numBlocks-1
		deflate.EmitDynamicBlock(w, store, 0, store.Len(), final)
	}

	return w.Bytes(), nil
}
