/*****************************************************************************************************************/

//	@package	artrack

/*****************************************************************************************************************/

// Package keypoint holds the shared feature-point data model consumed by the
// matcher, the reference set, and the tracker core. It has no dependency on
// any detector implementation: the feature detector and region detector are
// external collaborators (see pkg/source) that only ever hand the core a
// []Keypoint to copy.
package keypoint

/*****************************************************************************************************************/

// DescriptorSize is the fixed dimensionality of a keypoint's descriptor vector.
const DescriptorSize = 128

/*****************************************************************************************************************/

// Keypoint is an image feature: a location, a scale-space pose, and a
// descriptor. Keypoints are copied by value; no identity or equality is
// defined on them.
type Keypoint struct {
	X, Y float64 // image-plane coordinates

	// Scale and Angle are carried through from the detector for interface
	// parity but are never read by the tracker core.
	Scale float64
	Angle float64

	Descriptor [DescriptorSize]float64
}

/*****************************************************************************************************************/

// Clone returns an independent copy of the keypoint. Since Keypoint holds no
// pointers or slices, a plain value copy already satisfies this, but Clone
// documents the copy-on-retain contract at call sites that pull keypoints out
// of a detector-owned buffer.
func (k Keypoint) Clone() Keypoint {
	return k
}

/*****************************************************************************************************************/
