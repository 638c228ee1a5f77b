package zopfligo

import "github.com/elliotnunn/zopfligo/internal/dtables"

// largeCost is the finite sentinel spec.md section 3 calls for: strictly
// greater than any bit cost a real DEFLATE block could need, but finite so
// arithmetic on unfilled cost-array cells never produces NaN or Inf.
const largeCost = float32(1e30)

// GetBestLengths runs the forward shortest-path pass (spec.md section 4.4):
// it fills costs[0..blocksize] and lengthArray[0..blocksize] so that
// costs[j] is the minimum cost, under model, to reach position instart+j,
// and lengthArray[j] is the length of the last symbol on that optimal path.
// Both slices must already be sized to at least blocksize+1; costs[0] and
// lengthArray[0] are written as 0 and the rest are overwritten.
//
// It returns costs[blocksize], the total cost of the optimal parse. For an
// empty block (instart == inend) it returns 0 and touches neither slice.
func GetBestLengths(mf MatchFinder, buf []byte, instart, inend int, model CostModel, windowSize int, lengthArray []int, costs []float32) float64 {
	blocksize := inend - instart
	if blocksize == 0 {
		return 0
	}

	windowStart := instart - windowSize
	if windowStart < 0 {
		windowStart = 0
	}

	mf.Reset(windowSize)
	mf.Warmup(buf, windowStart, instart)

	for i := 1; i <= blocksize; i++ {
		costs[i] = largeCost
	}
	costs[0] = 0
	lengthArray[0] = 0

	mincost := model.MinCost()
	windowMask := windowSize - 1
	sublen := make([]uint16, dtables.MaxMatch+1)

	i := instart
	for i < inend {
		j := i - instart
		mf.Update(buf, i, inend)

		// Long-run fast path (spec.md section 4.4): when the byte at i has
		// repeated for more than 2*MaxMatch positions, with a MaxMatch run
		// already behind i and at least 2*MaxMatch+1 positions still ahead,
		// tile MaxMatch/dist-1 matches without consulting the match finder
		// per position.
		if mf.SameAt(i&windowMask) > dtables.MaxMatch*2 &&
			i > instart+dtables.MaxMatch+1 &&
			i+dtables.MaxMatch*2+1 < inend &&
			mf.SameAt((i-dtables.MaxMatch)&windowMask) > dtables.MaxMatch {
			symbolCost := float32(model.Cost(dtables.MaxMatch, 1))
			for k := 0; k < dtables.MaxMatch; k++ {
				costs[j+dtables.MaxMatch] = costs[j] + symbolCost
				lengthArray[j+dtables.MaxMatch] = dtables.MaxMatch
				i++
				j++
				mf.Update(buf, i, inend)
			}
		}

		length, _ := mf.FindLongest(buf, i, inend, dtables.MaxMatch, sublen)

		// Literal edge j -> j+1.
		if i+1 <= inend {
			newCost := model.Cost(int(buf[i]), 0) + float64(costs[j])
			if newCost < float64(costs[j+1]) {
				costs[j+1] = float32(newCost)
				lengthArray[j+1] = 1
			}
		}

		// Match edges j -> j+k for k in [MinMatch, min(length, inend-i)].
		kend := length
		if rem := inend - i; rem < kend {
			kend = rem
		}
		mincostaddcostj := mincost + float64(costs[j])
		for k := dtables.MinMatch; k <= kend; k++ {
			// Calling the cost model is comparatively expensive; skip it
			// once costs[j+k] is already at or below what any legal match
			// from j could achieve.
			if float64(costs[j+k]) <= mincostaddcostj {
				continue
			}
			newCost := model.Cost(k, int(sublen[k])) + float64(costs[j])
			if newCost < float64(costs[j+k]) {
				costs[j+k] = float32(newCost)
				lengthArray[j+k] = k
			}
		}

		i++
	}

	return float64(costs[blocksize])
}
