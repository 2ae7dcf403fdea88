/*****************************************************************************************************************/

//	@package	artrack

/*****************************************************************************************************************/

// Package ellipse implements the oriented point-in-ellipse predicate used to
// delimit a tracked patch at registration time and on every subsequent frame.
package ellipse

/*****************************************************************************************************************/

import "math"

/*****************************************************************************************************************/

// Ellipse is an oriented ellipse in image-plane coordinates. SemiMajor and
// SemiMinor must be non-negative; Angle is in radians.
type Ellipse struct {
	CenterX, CenterY     float64
	SemiMajor, SemiMinor float64
	Angle                float64
}

/*****************************************************************************************************************/

// Contains reports whether the point (x, y) lies within the ellipse.
//
// The rotation is applied with a sign flip of -sign(SemiMajor-SemiMinor) on
// the angle. This mirrors the upstream region detector's convention for
// ellipses whose major axis runs along y rather than x; it is specified
// literally here because downstream geometry (the reference frame
// normalisation in pkg/refset) depends on it.
func (e Ellipse) Contains(x, y float64) bool {
	dx := x - e.CenterX
	dy := y - e.CenterY

	sign := 1.0
	if e.SemiMajor < e.SemiMinor {
		sign = -1.0
	}

	beta := -e.Angle * sign
	sinBeta, cosBeta := math.Sin(beta), math.Cos(beta)

	rx := cosBeta*dx - sinBeta*dy
	ry := sinBeta*dx + cosBeta*dy

	a2 := 4 * e.SemiMajor * e.SemiMajor
	b2 := 4 * e.SemiMinor * e.SemiMinor

	if a2 == 0 || b2 == 0 {
		return false
	}

	return (rx*rx)/a2+(ry*ry)/b2 < 1
}

/*****************************************************************************************************************/

// MeanRadius returns the mean of the semi-major and semi-minor axes, the
// normalisation scale used when seeding a reference set's reference frame.
func (e Ellipse) MeanRadius() float64 {
	return (e.SemiMajor + e.SemiMinor) / 2
}

/*****************************************************************************************************************/

// ToReferenceFrame maps an image-plane point into e's reference frame: shift
// by the centre, then divide by MeanRadius. This is the normalisation a
// reference set's Seed applies to every keypoint it stores, and it is also
// applied to any keypoint later promoted into the reference set so that
// every stored coordinate shares the same frame.
func (e Ellipse) ToReferenceFrame(x, y float64) (float64, float64) {
	scale := e.MeanRadius()
	return (x - e.CenterX) / scale, (y - e.CenterY) / scale
}

/*****************************************************************************************************************/

// FromReferenceFrame is the inverse of ToReferenceFrame: it recovers the
// image-plane coordinates of a point stored in e's reference frame. The
// geometric fit in internal/tracker uses this to build correspondences
// directly in image-plane coordinates, so that the transform it solves for
// maps image-plane points to image-plane points.
func (e Ellipse) FromReferenceFrame(nx, ny float64) (float64, float64) {
	scale := e.MeanRadius()
	return nx*scale + e.CenterX, ny*scale + e.CenterY
}

/*****************************************************************************************************************/
