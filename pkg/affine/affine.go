/*****************************************************************************************************************/

//	@package	artrack

/*****************************************************************************************************************/

// Package affine implements the 6-parameter affine fit and the transform
// representation shared by every augmentation instance. It is the Go
// idiomatic substitute for the source tracker's Armadillo-based solve: where
// the original built an Armadillo fmat and called pinv, this package builds
// a gonum.org/v1/gonum/mat.Dense and drives a mat.SVD - the same
// Moore-Penrose pseudoinverse, computed by singular value decomposition.
package affine

/*****************************************************************************************************************/

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/quietloom/artrack/pkg/trackerr"
)

/*****************************************************************************************************************/

// MinMatches is the minimum number of correspondences SolveAffine requires.
const MinMatches = 5

/*****************************************************************************************************************/

// Correspondence is one matched pair: a reference-frame point (X, Y) and the
// current-frame point (U, V) it was matched against.
type Correspondence struct {
	X, Y float64
	U, V float64
}

/*****************************************************************************************************************/

// Transform is a 2-D affine transform represented as a 3x3 homogeneous
// matrix whose bottom row is fixed at [0 0 1].
type Transform struct {
	m *mat.Dense // 3x3
}

/*****************************************************************************************************************/

// Zero returns the degenerate all-zero transform. This is the transform an
// augmentation instance starts with before its first successful frame: it
// maps every point to the origin, which is intentional (see
// internal/augmentation.New).
func Zero() Transform {
	return Transform{m: mat.NewDense(3, 3, nil)}
}

/*****************************************************************************************************************/

// Identity returns the identity transform.
func Identity() Transform {
	m := mat.NewDense(3, 3, nil)
	m.Set(0, 0, 1)
	m.Set(1, 1, 1)
	m.Set(2, 2, 1)
	return Transform{m: m}
}

/*****************************************************************************************************************/

// FromParameters assembles a transform from the six-parameter vector
// [m00, m01, m10, m11, tx, ty], the layout SolveAffine produces.
func FromParameters(m00, m01, m10, m11, tx, ty float64) Transform {
	m := mat.NewDense(3, 3, []float64{
		m00, m01, tx,
		m10, m11, ty,
		0, 0, 1,
	})
	return Transform{m: m}
}

/*****************************************************************************************************************/

// Params returns the six affine parameters [m00, m01, m10, m11, tx, ty].
func (t Transform) Params() (m00, m01, m10, m11, tx, ty float64) {
	return t.m.At(0, 0), t.m.At(0, 1), t.m.At(1, 0), t.m.At(1, 1), t.m.At(0, 2), t.m.At(1, 2)
}

/*****************************************************************************************************************/

// Apply maps the homogeneous point (x, y, 1) through the transform.
func (t Transform) Apply(x, y float64) (float64, float64) {
	m00, m01, m10, m11, tx, ty := t.Params()
	return m00*x + m01*y + tx, m10*x + m11*y + ty
}

/*****************************************************************************************************************/

// PseudoInverse returns the Moore-Penrose pseudoinverse of the transform's
// 3x3 matrix. For the zero transform this is again the zero transform.
func (t Transform) PseudoInverse() (Transform, error) {
	inv, err := pseudoInverse(t.m)
	if err != nil {
		return Transform{}, fmt.Errorf("affine: failed to invert transform: %w", err)
	}
	return Transform{m: inv}, nil
}

/*****************************************************************************************************************/

// ToColumnMajor4x4 lifts the 2-D affine transform into a column-major 4x4
// matrix suitable for a 3-D rendering pipeline, with the z row and column
// held at identity (z is passed through unchanged).
func (t Transform) ToColumnMajor4x4() [16]float64 {
	m00, m01, m10, m11, tx, ty := t.Params()

	// Column-major: out[col*4+row].
	var out [16]float64
	out[0], out[1], out[2], out[3] = m00, m10, 0, 0
	out[4], out[5], out[6], out[7] = m01, m11, 0, 0
	out[8], out[9], out[10], out[11] = 0, 0, 1, 0
	out[12], out[13], out[14], out[15] = tx, ty, 0, 1
	return out
}

/*****************************************************************************************************************/

// SolveAffine fits a 6-parameter affine transform to k >= MinMatches point
// correspondences using a least-squares solve over the 2k x 6 design matrix:
//
//	A = [x0 y0 0  0  1 0]      b = [u0]
//	    [0  0  x0 y0 0 1]           [v0]
//	    [...              ]          [..]
//
// The solution T = pinv(A) * b is the minimum-norm least-squares solution,
// which tolerates degenerate configurations (e.g. collinear points) by
// yielding a bounded result rather than a numerical explosion; callers still
// reject degenerate fits via skew/scale validation (see internal/tracker).
func SolveAffine(pairs []Correspondence) (Transform, error) {
	k := len(pairs)
	if k < MinMatches {
		return Transform{}, fmt.Errorf("affine: need at least %d correspondences, got %d: %w", MinMatches, k, trackerr.ErrInsufficientMatches)
	}

	a := mat.NewDense(2*k, 6, nil)
	b := mat.NewDense(2*k, 1, nil)

	for j, p := range pairs {
		a.Set(j*2, 0, p.X)
		a.Set(j*2, 1, p.Y)
		a.Set(j*2, 4, 1)

		a.Set(j*2+1, 2, p.X)
		a.Set(j*2+1, 3, p.Y)
		a.Set(j*2+1, 5, 1)

		b.Set(j*2, 0, p.U)
		b.Set(j*2+1, 0, p.V)
	}

	pinv, err := pseudoInverse(a)
	if err != nil {
		return Transform{}, fmt.Errorf("affine: pseudoinverse of design matrix failed: %w", err)
	}

	var x mat.Dense
	x.Mul(pinv, b)

	return FromParameters(x.At(0, 0), x.At(1, 0), x.At(2, 0), x.At(3, 0), x.At(4, 0), x.At(5, 0)), nil
}

/*****************************************************************************************************************/
