package zopfligo

// CostModel scores a single LZ77 symbol in bits. dist == 0 means litlen is a
// literal byte value in [0,255]; dist > 0 means litlen is a match length in
// [MinMatch,MaxMatch] at the given distance. MinCost is a lower bound over
// every legal (litlen, dist) pair with litlen >= MinMatch, used to prune the
// forward pass (see GetBestLengths).
type CostModel interface {
	Cost(litlen, dist int) float64
	MinCost() float64
}

// MatchFinder is the sliding-window longest-match search the forward pass
// and the path-realisation step both consult. internal/matchfinder.Finder
// implements this; it is expressed as an interface here so the core parser
// has no import-time dependency on any particular match-finding strategy.
type MatchFinder interface {
	// Reset (re)allocates internal state sized to windowSize.
	Reset(windowSize int)
	// Warmup primes the hash chain with buf[from:to] without reporting
	// matches, so positions before instart are visible to the parse.
	Warmup(buf []byte, from, to int)
	// Update inserts position pos into the hash chain.
	Update(buf []byte, pos, end int)
	// FindLongest returns the longest match at pos, capped at cap bytes. If
	// sublen is non-nil, sublen[k] is filled for k in [MinMatch,length]
	// with the smallest distance at which a match of length k was seen.
	FindLongest(buf []byte, pos, end, cap int, sublen []uint16) (length, dist int)
	// SameAt reports the cached run-length of bytes equal to the one at a
	// window-masked position, used by the forward pass's long-run fast
	// path.
	SameAt(posMasked int) int
}

// SymbolSink receives the LZ77 symbols a parse realises.
type SymbolSink interface {
	AddLiteral(b byte, pos int)
	AddMatch(length, dist, pos int)
}

// Store is a SymbolSink that can also be read back: iterated for
// statistics and block-size estimation, and reset between iterations.
type Store interface {
	SymbolSink
	Len() int
	At(i int) (litlen, dist, pos int)
	Reset()
}

// Verifier confirms that a claimed (dist, length) match actually reproduces
// the input bytes. A mismatch is an internal invariant violation (spec.md
// error kind 2): the caller should treat it as fatal, not recoverable.
type Verifier func(buf []byte, end, pos, dist, length int) error

// Greedy runs a warm-start LZ77 parse, the same contract as
// internal/lz77store.Greedy, injected so the core has no direct dependency
// on that package.
type Greedy func(mf MatchFinder, buf []byte, from, to int, out Store)

// BlockSizeFunc is the true-bit-cost oracle the iteration driver optimises
// against (spec.md section 4.11): a dynamic-Huffman DEFLATE bit count of
// out[from:to], independent of whatever cost model produced out.
type BlockSizeFunc func(store Store, from, to int) float64
