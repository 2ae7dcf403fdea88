/*****************************************************************************************************************/

//	@package	artrack

/*****************************************************************************************************************/

// Package tracker implements the per-frame orchestration algorithm: for one
// live augmentation instance and the current frame's full keypoint set, it
// gathers patch-local candidates, matches them against the instance's
// reference set, falls back to a full-frame search when the patch-local
// search comes up short, fits and validates an affine transform, commits it,
// and grows the reference set with newly confirmed features.
//
// This is the tracker core described in the system overview; everything
// else in this module (the matcher, the ellipse predicate, the affine
// solver, the reference set, the registry) is a leaf this package composes.
package tracker

/*****************************************************************************************************************/

import (
	"math"

	"github.com/quietloom/artrack/internal/augmentation"
	"github.com/quietloom/artrack/pkg/affine"
	"github.com/quietloom/artrack/pkg/keypoint"
	"github.com/quietloom/artrack/pkg/refset"
)

/*****************************************************************************************************************/

var posInf = math.Inf(1)

/*****************************************************************************************************************/

const (
	// minMatches (K_MIN_MATCHES) is the minimum number of accepted matches
	// required before a geometric fit is even attempted.
	minMatches = affine.MinMatches

	// skewMax bounds |m01 + m10|; this does not account for a large
	// positive skew on one axis cancelling a large negative skew on the
	// other, a limitation inherited unchanged from the source tracker.
	skewMax = 1000.0

	// scaleRatioMax bounds |m00 - m11|.
	scaleRatioMax = 1000.0
)

/*****************************************************************************************************************/

// UpdateInstance runs the seven-step per-frame algorithm against inst for
// the current frame's full keypoint set, and returns its resulting status.
// It never returns an error: per-frame failures are recorded on the
// instance itself (see augmentation.Instance.Fail), exactly as the external
// contract in pkg/pipeline expects.
func UpdateInstance(inst *augmentation.Instance, frame []keypoint.Keypoint) augmentation.Status {
	// Step 1: gather patch-local keypoints under the instance's current
	// inverse transform. On the very first frame T is zero, so every point
	// untransforms to the image-plane origin; if the registration ellipse
	// does not contain the origin, patch collapses to empty, which forces
	// the fallback in step 3.
	patch := gatherPatchLocal(inst, frame)

	// Step 2: match patch-local candidates against the confirmed reference
	// set.
	accepted, topK := matchAgainstReferences(inst, patch)

	// Step 3: fall back to the full frame if the patch-local search could
	// not find enough matches. This is the global re-acquisition path used
	// when the predicted patch location is badly wrong.
	if accepted < minMatches {
		accepted, topK = matchAgainstReferences(inst, frame)
	}

	// Step 4: require the minimum match count before attempting a fit.
	if accepted < minMatches {
		inst.Fail()
		return inst.LastStatus()
	}

	fit, err := affine.SolveAffine(topK.pairs)
	if err != nil {
		inst.Fail()
		return inst.LastStatus()
	}

	// Step 5: validate skew and scale-ratio bounds. The source tracker uses
	// the same failure status for both causes; that conflation is
	// preserved here rather than introduced a richer taxonomy.
	if !validate(fit) {
		inst.Fail()
		return inst.LastStatus()
	}

	// Step 6: commit the transform and its pseudoinverse.
	inv, err := fit.PseudoInverse()
	if err != nil {
		inst.Fail()
		return inst.LastStatus()
	}
	inst.Commit(fit, inv)

	// Step 7: grow the reference set under the newly committed transform.
	growReferences(inst, frame)

	return inst.LastStatus()
}

/*****************************************************************************************************************/

func gatherPatchLocal(inst *augmentation.Instance, frame []keypoint.Keypoint) []keypoint.Keypoint {
	patch := make([]keypoint.Keypoint, 0, len(frame))
	for _, kp := range frame {
		ox, oy := inst.UntransformPoint(kp.X, kp.Y)
		if inst.Ellipse.Contains(ox, oy) {
			patch = append(patch, kp)
		}
	}
	return patch
}

/*****************************************************************************************************************/

// matchAgainstReferences matches every candidate in candidates against
// inst's confirmed reference set, returning the number of matches accepted
// by the ratio test and a bounded, distance-sorted buffer of the best
// correspondences for the geometric fit.
//
// Every accepted match overwrites the matched reference's descriptor with
// the candidate's descriptor, regardless of whether that correspondence
// ultimately makes the top-K buffer and regardless of whether the fit this
// function feeds is later rejected by validation. This online drift is
// inherited unchanged from the source tracker (see SPEC_FULL.md §4.F
// note 2): it arguably should be gated on
// a successful commit, but is preserved bit-for-bit here.
//
// A reference's stored X, Y are in the instance's reference frame (see
// pkg/refset.Seed), not image-plane coordinates, so they are mapped back
// through inst.Ellipse.FromReferenceFrame before entering the correspondence:
// the transform this package solves for must map image-plane points to
// image-plane points, since that is what TransformPoint and the committed
// T are used for everywhere else.
func matchAgainstReferences(inst *augmentation.Instance, candidates []keypoint.Keypoint) (int, *topKBuffer) {
	buffer := newTopKBuffer(maxMatchedKeypoints)
	accepted := 0

	for _, kp := range candidates {
		result := inst.Refs.MatchProbe(kp)
		if !result.OK {
			continue
		}

		accepted++

		ref := inst.Refs.Initial[result.Index]
		refX, refY := inst.Ellipse.FromReferenceFrame(ref.X, ref.Y)
		buffer.insert(affine.Correspondence{X: refX, Y: refY, U: kp.X, V: kp.Y}, result.Distance)

		inst.Refs.OverwriteDescriptor(result.Index, kp.Descriptor)
	}

	return accepted, buffer
}

/*****************************************************************************************************************/

func validate(t affine.Transform) bool {
	m00, m01, m10, m11, _, _ := t.Params()
	if math.Abs(m01+m10) > skewMax {
		return false
	}
	if math.Abs(m00-m11) > scaleRatioMax {
		return false
	}
	return true
}

/*****************************************************************************************************************/

// growReferences re-gathers the patch under the just-committed transform
// and, for every candidate, either stages it as a confirmation candidate
// (when it doesn't strongly match an existing reference) or carries it
// forward as a same-frame potential for the reference set's next grace
// period.
func growReferences(inst *augmentation.Instance, frame []keypoint.Keypoint) {
	patch := gatherPatchLocal(inst, frame)

	nextPotential := make([]keypoint.Keypoint, 0, len(patch))

	for _, kp := range patch {
		result := inst.Refs.MatchProbe(kp)

		// No strong existing reference: d1 alone decides this, independent
		// of whether the ratio test itself passed.
		if result.Distance > refset.PromotionDistance {
			// UntransformPoint maps the image-plane keypoint back to the
			// image-plane position it would have occupied at registration;
			// ConsiderNew stores confirmed references in the reference
			// frame (see pkg/refset.Seed), so that position still needs the
			// same centre-shift-and-scale normalisation applied here.
			ix, iy := inst.UntransformPoint(kp.X, kp.Y)
			refX, refY := inst.Ellipse.ToReferenceFrame(ix, iy)
			inst.Refs.ConsiderNew(kp, refX, refY, &nextPotential)
			continue
		}

		if len(nextPotential) < len(inst.Refs.Potential) {
			nextPotential = append(nextPotential, kp)
		}
	}

	inst.Refs.ReplacePotential(nextPotential)
}

/*****************************************************************************************************************/
