/*****************************************************************************************************************/

//	@package	artrack

/*****************************************************************************************************************/

// Package augmentation implements the per-patch state owned by one tracked
// surface: its selection ellipse, reference set, current forward/inverse
// transform, and last status. The per-frame matching and fitting algorithm
// itself lives in internal/tracker, which operates on an *Instance.
package augmentation

/*****************************************************************************************************************/

import (
	"github.com/quietloom/artrack/pkg/affine"
	"github.com/quietloom/artrack/pkg/ellipse"
	"github.com/quietloom/artrack/pkg/keypoint"
	"github.com/quietloom/artrack/pkg/refset"
	"github.com/quietloom/artrack/pkg/trackerr"
)

/*****************************************************************************************************************/

// MinRegistrationKeypoints (K_MIN_REG) is the minimum number of in-ellipse
// keypoints registration requires in order to seed a usable reference set.
const MinRegistrationKeypoints = 10

/*****************************************************************************************************************/

// Status is the per-instance outcome recorded after each frame.
type Status int

/*****************************************************************************************************************/

const (
	// StatusInsufficientMatches means the transform was left unchanged from
	// its previous successful value (or the zero transform, if there has
	// never been a successful frame); the render layer should suppress
	// output for this instance.
	StatusInsufficientMatches Status = iota

	// StatusOk means the transform is valid for this frame.
	StatusOk
)

/*****************************************************************************************************************/

// Instance is one tracked patch: the ellipse it was registered against, its
// reference set, its current forward transform T and inverse T^-1, and the
// status of its most recent update.
type Instance struct {
	Ellipse ellipse.Ellipse
	Refs    refset.ReferenceSet

	transform Transform
	inverse   Transform
	status    Status
}

/*****************************************************************************************************************/

// Transform is re-exported here so callers outside this package do not need
// to import pkg/affine directly just to hold an Instance's transform.
type Transform = affine.Transform

/*****************************************************************************************************************/

// New creates an augmentation instance by seeding a reference set from the
// keypoints of frameKeypoints that fall within e. It fails with
// ErrTooFewKeypoints if fewer than MinRegistrationKeypoints were seeded.
//
// The initial transform is the zero 3x3 matrix, not the identity; its
// inverse is the pseudoinverse of zero, which is again zero. This is
// intentional: it collapses the first frame's patch-local gather to the
// single point (0, 0), forcing the tracker's full-frame fallback path on the
// very first update.
func New(e ellipse.Ellipse, frameKeypoints []keypoint.Keypoint) (*Instance, error) {
	var refs refset.ReferenceSet
	refs.Seed(frameKeypoints, e)

	if refs.Count < MinRegistrationKeypoints {
		return nil, trackerr.ErrTooFewKeypoints
	}

	zero := affine.Zero()

	return &Instance{
		Ellipse:   e,
		Refs:      refs,
		transform: zero,
		inverse:   zero,
		status:    StatusInsufficientMatches,
	}, nil
}

/*****************************************************************************************************************/

// TransformPoint maps (x, y) from the reference frame to the current frame
// using T.
func (inst *Instance) TransformPoint(x, y float64) (float64, float64) {
	return inst.transform.Apply(x, y)
}

/*****************************************************************************************************************/

// UntransformPoint maps (x, y) from the current frame back to the reference
// frame using T^-1.
func (inst *Instance) UntransformPoint(x, y float64) (float64, float64) {
	return inst.inverse.Apply(x, y)
}

/*****************************************************************************************************************/

// LastStatus returns the status recorded after the most recent UpdateFrame.
func (inst *Instance) LastStatus() Status {
	return inst.status
}

/*****************************************************************************************************************/

// CurrentTransform returns T, the reference-frame to current-frame
// transform.
func (inst *Instance) CurrentTransform() Transform {
	return inst.transform
}

/*****************************************************************************************************************/

// CurrentInverse returns T^-1, the current-frame to reference-frame
// transform.
func (inst *Instance) CurrentInverse() Transform {
	return inst.inverse
}

/*****************************************************************************************************************/

// Commit installs a newly fitted transform and its pseudoinverse, and marks
// the instance Ok. It is called only by internal/tracker once a frame's fit
// has passed validation.
func (inst *Instance) Commit(t Transform, inv Transform) {
	inst.transform = t
	inst.inverse = inv
	inst.status = StatusOk
}

/*****************************************************************************************************************/

// Fail records that this frame failed to produce a confident fit (too few
// matches, or a fit that failed skew/scale validation). The transform is
// left unchanged from its previous value.
func (inst *Instance) Fail() {
	inst.status = StatusInsufficientMatches
}

/*****************************************************************************************************************/
