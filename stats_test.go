package zopfligo

import (
	"testing"

	"github.com/elliotnunn/zopfligo/internal/dtables"
)

type fakeStore struct {
	litlens, dists, positions []int
}

func (s *fakeStore) AddLiteral(b byte, pos int) {
	s.litlens = append(s.litlens, int(b))
	s.dists = append(s.dists, 0)
	s.positions = append(s.positions, pos)
}
func (s *fakeStore) AddMatch(length, dist, pos int) {
	s.litlens = append(s.litlens, length)
	s.dists = append(s.dists, dist)
	s.positions = append(s.positions, pos)
}
func (s *fakeStore) Len() int { return len(s.litlens) }
func (s *fakeStore) At(i int) (int, int, int) {
	return s.litlens[i], s.dists[i], s.positions[i]
}
func (s *fakeStore) Reset() { s.litlens, s.dists, s.positions = nil, nil, nil }

func TestGetStatisticsCountsLiteralsAndMatches(t *testing.T) {
	store := &fakeStore{}
	store.AddLiteral('a', 0)
	store.AddMatch(5, 10, 1)

	stats := NewSymbolStats()
	GetStatistics(store, stats)

	if stats.LitLenFreq['a'] != 1 {
		t.Fatalf("literal freq = %d, want 1", stats.LitLenFreq['a'])
	}
	if stats.LitLenFreq[dtables.EndOfBlockSymbol] != 1 {
		t.Fatalf("end-of-block freq = %d, want 1", stats.LitLenFreq[dtables.EndOfBlockSymbol])
	}
	total := 0
	for _, f := range stats.DistFreq {
		total += int(f)
	}
	if total != 1 {
		t.Fatalf("distance freq total = %d, want 1", total)
	}
}

func TestGetStatisticsSeedsEmptyDistTable(t *testing.T) {
	store := &fakeStore{}
	store.AddLiteral('x', 0)

	stats := NewSymbolStats()
	GetStatistics(store, stats)

	if stats.DistFreq[0] != 1 {
		t.Fatalf("DistFreq[0] = %d, want 1 (seeded so the huffman builder never sees an empty alphabet)", stats.DistFreq[0])
	}
}

func TestAddWeighedStatFreqsTruncates(t *testing.T) {
	a := NewSymbolStats()
	b := NewSymbolStats()
	a.LitLenFreq[0] = 10
	b.LitLenFreq[0] = 3

	out := NewSymbolStats()
	AddWeighedStatFreqs(a, 1.0, b, 0.5, out)

	// 10*1.0 + 3*0.5 = 11.5, truncated to 11.
	if out.LitLenFreq[0] != 11 {
		t.Fatalf("weighted freq = %d, want 11", out.LitLenFreq[0])
	}
}

func TestCopyStatsIsIndependent(t *testing.T) {
	src := NewSymbolStats()
	src.LitLenFreq[5] = 42
	dst := NewSymbolStats()
	CopyStats(src, dst)

	src.LitLenFreq[5] = 0
	if dst.LitLenFreq[5] != 42 {
		t.Fatalf("CopyStats did not take an independent snapshot")
	}
}
