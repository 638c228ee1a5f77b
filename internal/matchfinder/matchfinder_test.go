package matchfinder_test

import (
	"bytes"
	"testing"

	"github.com/elliotnunn/zopfligo/internal/dtables"
	"github.com/elliotnunn/zopfligo/internal/matchfinder"
)

func TestFindLongestFindsRepeat(t *testing.T) {
	data := []byte("abcdefgh-abcdefgh")
	f := matchfinder.New(0)
	f.Reset(dtables.MaxWindowSize)
	f.Warmup(data, 0, 0)
	for i := 0; i < 9; i++ {
		f.Update(data, i, len(data))
	}

	pos := 9 // start of second "abcdefgh"
	f.Update(data, pos, len(data))
	length, dist := f.FindLongest(data, pos, len(data), dtables.MaxMatch, nil)
	if length != 8 {
		t.Fatalf("length = %d, want 8", length)
	}
	if dist != 9 {
		t.Fatalf("dist = %d, want 9", dist)
	}
}

func TestFindLongestNoMatchBelowMinMatch(t *testing.T) {
	data := []byte("xyzxy")
	f := matchfinder.New(0)
	f.Reset(dtables.MaxWindowSize)
	f.Warmup(data, 0, 0)
	for i := 0; i < 3; i++ {
		f.Update(data, i, len(data))
	}
	f.Update(data, 3, len(data))
	length, _ := f.FindLongest(data, 3, len(data), dtables.MaxMatch, nil)
	if length != 0 {
		t.Fatalf("length = %d, want 0 (only a 2-byte repeat exists)", length)
	}
}

func TestSameAtTracksRuns(t *testing.T) {
	data := bytes.Repeat([]byte{'z'}, 10)
	f := matchfinder.New(0)
	f.Reset(16)
	f.Warmup(data, 0, 0)
	for i := 0; i < len(data); i++ {
		f.Update(data, i, len(data))
	}
	if got := f.SameAt(9 & 15); got != 10 {
		t.Fatalf("SameAt = %d, want 10", got)
	}
}

func TestFindLongestFillsSublen(t *testing.T) {
	data := []byte("aaaaaaaaaaaaaaaaaaaa")
	f := matchfinder.New(0)
	f.Reset(dtables.MaxWindowSize)
	f.Warmup(data, 0, 0)
	for i := 0; i < 9; i++ {
		f.Update(data, i, len(data))
	}
	f.Update(data, 9, len(data))
	sublen := make([]uint16, dtables.MaxMatch+1)
	length, _ := f.FindLongest(data, 9, len(data), dtables.MaxMatch, sublen)
	if length < 3 {
		t.Fatalf("length = %d, want at least 3", length)
	}
	for k := dtables.MinMatch; k <= length; k++ {
		if sublen[k] == 0 {
			t.Fatalf("sublen[%d] unset", k)
		}
	}
}
