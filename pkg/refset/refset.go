/*****************************************************************************************************************/

//	@package	artrack

/*****************************************************************************************************************/

// Package refset implements the fixed-capacity reference set owned by a
// single augmentation instance: a ring buffer of confirmed reference
// keypoints plus a one-frame confirmation queue for new candidates.
package refset

/*****************************************************************************************************************/

import (
	"github.com/quietloom/artrack/pkg/ellipse"
	"github.com/quietloom/artrack/pkg/keypoint"
	"github.com/quietloom/artrack/pkg/matcher"
)

/*****************************************************************************************************************/

const (
	// Capacity is N, the number of confirmed reference keypoints retained.
	Capacity = 512

	// PotentialCapacity is M, the number of candidate keypoints carried
	// across a single grace frame.
	PotentialCapacity = 512

	// PromotionDistance (D_MAX) is the maximum descriptor distance between a
	// current-frame keypoint and a previous frame's potential for the
	// potential to be promoted into the confirmed reference set.
	PromotionDistance = 2.0
)

/*****************************************************************************************************************/

// ReferenceSet is the fixed-capacity ring buffer of confirmed reference
// keypoints, plus the one-frame potential queue used to stage new
// candidates before they are confirmed.
type ReferenceSet struct {
	Initial [Capacity]keypoint.Keypoint
	Cursor  int
	Count   int

	Potential      [PotentialCapacity]keypoint.Keypoint
	PotentialCount int
}

/*****************************************************************************************************************/

// Seed populates the reference set from the keypoints found inside e at
// registration time. Each in-ellipse keypoint is copied into the reference
// frame: shifted by the ellipse centre, then divided by e.MeanRadius(), the
// normalisation that makes later frames scale-and-translation comparable
// regardless of the patch's absolute size or location at registration.
//
// Insertion stops once Capacity entries have been written; Count reports how
// many were actually seeded, and the potential queue starts empty.
func (r *ReferenceSet) Seed(keypoints []keypoint.Keypoint, e ellipse.Ellipse) {
	r.Cursor = 0
	r.Count = 0
	r.PotentialCount = 0

	if e.MeanRadius() == 0 {
		return
	}

	for _, kp := range keypoints {
		if r.Count >= Capacity {
			break
		}

		if !e.Contains(kp.X, kp.Y) {
			continue
		}

		normalized := kp
		normalized.X, normalized.Y = e.ToReferenceFrame(kp.X, kp.Y)

		r.insertInitial(normalized)
	}
}

/*****************************************************************************************************************/

// insertInitial writes kp into the ring buffer at Cursor, overwriting the
// oldest entry once the buffer has wrapped, and advances Cursor modulo
// Capacity.
func (r *ReferenceSet) insertInitial(kp keypoint.Keypoint) {
	r.Initial[r.Cursor] = kp
	r.Cursor = (r.Cursor + 1) % Capacity

	if r.Count < Capacity {
		r.Count++
	}
}

/*****************************************************************************************************************/

// OverwriteDescriptor replaces the descriptor of the i-th confirmed
// reference with a freshly matched descriptor, letting the reference track
// the latest confirmed appearance (online drift). i must be < Count.
func (r *ReferenceSet) OverwriteDescriptor(i int, descriptor [keypoint.DescriptorSize]float64) {
	r.Initial[i].Descriptor = descriptor
}

/*****************************************************************************************************************/

// MatchProbe runs the descriptor matcher against the confirmed reference
// keypoints.
func (r *ReferenceSet) MatchProbe(kp keypoint.Keypoint) matcher.Result {
	return matcher.BestMatch(kp.Descriptor, r.Initial[:r.Count])
}

/*****************************************************************************************************************/

// ConsiderNew stages a keypoint that appeared inside the patch but did not
// strongly match any existing reference. kp carries current-frame
// coordinates and the descriptor; referenceX/referenceY are kp's coordinates
// already untransformed into the reference frame.
//
// Staged acceptance: kp is first matched against the previous frame's
// potential set. If that match is accepted by the ratio test and its
// distance is below PromotionDistance, the candidate is considered
// confirmed across two consecutive frames and promoted directly into the
// confirmed reference ring buffer (in reference-frame coordinates).
// Otherwise kp is staged into nextPotential (current-frame coordinates) so
// it gets exactly one grace frame to be confirmed next time.
func (r *ReferenceSet) ConsiderNew(kp keypoint.Keypoint, referenceX, referenceY float64, nextPotential *[]keypoint.Keypoint) {
	result := matcher.BestMatch(kp.Descriptor, r.Potential[:r.PotentialCount])

	if result.OK && result.Distance < PromotionDistance {
		promoted := kp
		promoted.X = referenceX
		promoted.Y = referenceY
		r.insertInitial(promoted)
		return
	}

	if len(*nextPotential) < PotentialCapacity {
		*nextPotential = append(*nextPotential, kp)
	}
}

/*****************************************************************************************************************/

// ReplacePotential swaps in a freshly built potential list for the next
// frame's grace period, rebuilt entirely from this frame's observations.
func (r *ReferenceSet) ReplacePotential(next []keypoint.Keypoint) {
	r.PotentialCount = 0
	for _, kp := range next {
		if r.PotentialCount >= PotentialCapacity {
			break
		}
		r.Potential[r.PotentialCount] = kp
		r.PotentialCount++
	}
}

/*****************************************************************************************************************/
