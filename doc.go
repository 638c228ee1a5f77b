// Copyright (c) Elliot Nunn
// Licensed under the MIT license

// Package zopfligo is an iterative optimal LZ77 parser for a
// DEFLATE-compatible compressor: it trades CPU time for compression
// density by running a shortest-path parse to a fixed point under a
// statistics-derived cost model, the way zopfli does.
//
// The package itself only computes the LZ77 symbol sequence (see Optimal
// and OptimalFixed); internal/lz77store, internal/matchfinder and
// internal/deflate provide the symbol store, match finder and bit emitter
// that turn that sequence into an actual DEFLATE stream.
package zopfligo
