/*****************************************************************************************************************/

//	@package	artrack

/*****************************************************************************************************************/

// Package matcher implements descriptor-space nearest-neighbour matching with
// the Lowe-style ratio test used throughout the tracker core: every
// reference lookup, in both the per-frame correspondence search and the
// reference-set confirmation queue, goes through BestMatch.
package matcher

/*****************************************************************************************************************/

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/quietloom/artrack/pkg/keypoint"
)

/*****************************************************************************************************************/

// UniquenessRatio (τ) is the multiplicative margin the best match's distance
// must beat the second-best by in order to be accepted. It is deliberately
// large: calibration responsibility lies with the caller.
const UniquenessRatio = 3.5

/*****************************************************************************************************************/

// Result is the outcome of a BestMatch call.
type Result struct {
	Index    int     // index into the refs slice, -1 if refs was empty
	Distance float64 // the smallest distance found, +Inf if refs was empty
	OK       bool    // true iff the match passed the uniqueness ratio test
}

/*****************************************************************************************************************/

// BestMatch finds the reference keypoint whose descriptor is closest (by L1
// distance) to probe, and accepts it only if it is clearly separated from
// the next-closest candidate by the multiplicative margin UniquenessRatio.
//
// Distance is the sum of absolute per-dimension differences, computed via
// gonum's floats.Distance with an L-norm of 1 - cheaper than an L2 distance
// and empirically comparable for SIFT-like descriptors in this application.
//
// Ties between candidate distances break in favour of the first occurrence:
// a strictly-less comparison is used when updating the running best, so a
// later candidate with an equal distance never displaces an earlier one.
func BestMatch(probe [keypoint.DescriptorSize]float64, refs []keypoint.Keypoint) Result {
	if len(refs) == 0 {
		return Result{Index: -1, Distance: math.Inf(1), OK: false}
	}

	bestIndex := -1
	best := math.Inf(1)
	secondBest := math.Inf(1)

	for i, ref := range refs {
		d := floats.Distance(probe[:], ref.Descriptor[:], 1)

		switch {
		case d < best:
			secondBest = best
			best = d
			bestIndex = i
		case d < secondBest:
			secondBest = d
		}
	}

	return Result{
		Index:    bestIndex,
		Distance: best,
		OK:       best*UniquenessRatio <= secondBest,
	}
}

/*****************************************************************************************************************/
