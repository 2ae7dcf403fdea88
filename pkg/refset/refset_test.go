/*****************************************************************************************************************/

//	@package	artrack

/*****************************************************************************************************************/

package refset

/*****************************************************************************************************************/

import (
	"math"
	"testing"

	"github.com/quietloom/artrack/pkg/ellipse"
	"github.com/quietloom/artrack/pkg/keypoint"
)

/*****************************************************************************************************************/

func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) <= epsilon
}

/*****************************************************************************************************************/

func oneHot(dim int) [keypoint.DescriptorSize]float64 {
	var d [keypoint.DescriptorSize]float64
	d[dim] = 1
	return d
}

/*****************************************************************************************************************/

func TestSeedNormalizesAndFiltersByEllipse(t *testing.T) {
	e := ellipse.Ellipse{CenterX: 100, CenterY: 100, SemiMajor: 20, SemiMinor: 20}

	keypoints := []keypoint.Keypoint{
		{X: 100, Y: 100, Descriptor: oneHot(0)}, // inside, at the centre
		{X: 500, Y: 500, Descriptor: oneHot(1)}, // outside
	}

	var r ReferenceSet
	r.Seed(keypoints, e)

	if r.Count != 1 {
		t.Fatalf("expected 1 seeded keypoint, got %d", r.Count)
	}
	if !almostEqual(r.Initial[0].X, 0, 1e-9) || !almostEqual(r.Initial[0].Y, 0, 1e-9) {
		t.Fatalf("expected the centre keypoint to normalize to (0, 0), got (%f, %f)", r.Initial[0].X, r.Initial[0].Y)
	}
}

/*****************************************************************************************************************/

func TestSeedRingBufferWrap(t *testing.T) {
	e := ellipse.Ellipse{CenterX: 0, CenterY: 0, SemiMajor: 1000, SemiMinor: 1000}

	keypoints := make([]keypoint.Keypoint, Capacity+5)
	for i := range keypoints {
		keypoints[i] = keypoint.Keypoint{X: float64(i), Y: float64(i)}
	}

	var r ReferenceSet
	r.Seed(keypoints, e)

	// Seed stops after Capacity entries; the last 5 keypoints go through the
	// ring buffer's insertion path, as promoted references do.
	for _, kp := range keypoints[Capacity:] {
		normalized := kp
		normalized.X, normalized.Y = e.ToReferenceFrame(kp.X, kp.Y)
		r.insertInitial(normalized)
	}

	if r.Count != Capacity {
		t.Fatalf("expected Count capped at %d, got %d", Capacity, r.Count)
	}

	// The ring buffer wrapped, so the oldest 5 entries were overwritten by
	// the last 5 supplied keypoints; slot 0 now holds keypoint index
	// Capacity (the (Capacity+1)-th supplied point, 0-indexed).
	wantX, _ := e.ToReferenceFrame(float64(Capacity), float64(Capacity))
	if !almostEqual(r.Initial[0].X, wantX, 1e-9) {
		t.Fatalf("expected slot 0 to hold the wrapped-in keypoint, got X=%f want %f", r.Initial[0].X, wantX)
	}
}

/*****************************************************************************************************************/

func TestConsiderNewPromotesAfterOneGraceFrame(t *testing.T) {
	var r ReferenceSet
	kp := keypoint.Keypoint{X: 5, Y: 5, Descriptor: oneHot(7)}

	var potential []keypoint.Keypoint
	r.ConsiderNew(kp, 0.1, 0.1, &potential)

	if r.Count != 0 {
		t.Fatalf("expected no immediate promotion with an empty potential set, got Count=%d", r.Count)
	}
	if len(potential) != 1 {
		t.Fatalf("expected the candidate staged into the next potential list")
	}

	r.ReplacePotential(potential)

	var nextPotential []keypoint.Keypoint
	sameKP := keypoint.Keypoint{X: 5, Y: 5, Descriptor: oneHot(7)}
	r.ConsiderNew(sameKP, 0.2, 0.2, &nextPotential)

	if r.Count != 1 {
		t.Fatalf("expected the matching candidate to be promoted on the second frame, got Count=%d", r.Count)
	}
	if !almostEqual(r.Initial[0].X, 0.2, 1e-9) || !almostEqual(r.Initial[0].Y, 0.2, 1e-9) {
		t.Fatalf("expected the promoted keypoint to carry the reference-frame coordinates passed in, got (%f, %f)", r.Initial[0].X, r.Initial[0].Y)
	}
}

/*****************************************************************************************************************/

func TestMatchProbeAgainstEmptyReferenceSet(t *testing.T) {
	var r ReferenceSet
	result := r.MatchProbe(keypoint.Keypoint{Descriptor: oneHot(0)})

	if result.OK {
		t.Fatalf("expected no match against an empty reference set")
	}
}

/*****************************************************************************************************************/
