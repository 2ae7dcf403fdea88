/*****************************************************************************************************************/

//	@package	artrack

/*****************************************************************************************************************/

package affine

/*****************************************************************************************************************/

import (
	"errors"
	"math"
	"testing"

	"github.com/quietloom/artrack/pkg/trackerr"
)

/*****************************************************************************************************************/

func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) <= epsilon
}

/*****************************************************************************************************************/

func TestSolveAffineTooFewCorrespondences(t *testing.T) {
	pairs := []Correspondence{
		{X: 0, Y: 0, U: 0, V: 0},
		{X: 1, Y: 0, U: 1, V: 0},
	}

	_, err := SolveAffine(pairs)
	if err == nil {
		t.Fatalf("expected an error for fewer than MinMatches correspondences")
	}
	if !errors.Is(err, trackerr.ErrInsufficientMatches) {
		t.Fatalf("expected ErrInsufficientMatches, got %v", err)
	}
}

/*****************************************************************************************************************/

func TestSolveAffineRecoversIdentity(t *testing.T) {
	points := [][2]float64{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {2, 3}}

	pairs := make([]Correspondence, len(points))
	for i, p := range points {
		pairs[i] = Correspondence{X: p[0], Y: p[1], U: p[0], V: p[1]}
	}

	transform, err := SolveAffine(pairs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m00, m01, m10, m11, tx, ty := transform.Params()
	if !almostEqual(m00, 1, 1e-6) || !almostEqual(m11, 1, 1e-6) ||
		!almostEqual(m01, 0, 1e-6) || !almostEqual(m10, 0, 1e-6) ||
		!almostEqual(tx, 0, 1e-6) || !almostEqual(ty, 0, 1e-6) {
		t.Fatalf("expected identity, got m00=%f m01=%f m10=%f m11=%f tx=%f ty=%f", m00, m01, m10, m11, tx, ty)
	}
}

/*****************************************************************************************************************/

func TestSolveAffineRecoversArbitraryTransform(t *testing.T) {
	want := FromParameters(2, 0.3, -0.1, 1.5, 10, -4)

	points := [][2]float64{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {2, 3}, {-1, 4}}
	pairs := make([]Correspondence, len(points))
	for i, p := range points {
		u, v := want.Apply(p[0], p[1])
		pairs[i] = Correspondence{X: p[0], Y: p[1], U: u, V: v}
	}

	got, err := SolveAffine(pairs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wm00, wm01, wm10, wm11, wtx, wty := want.Params()
	gm00, gm01, gm10, gm11, gtx, gty := got.Params()

	if !almostEqual(wm00, gm00, 1e-6) || !almostEqual(wm01, gm01, 1e-6) ||
		!almostEqual(wm10, gm10, 1e-6) || !almostEqual(wm11, gm11, 1e-6) ||
		!almostEqual(wtx, gtx, 1e-6) || !almostEqual(wty, gty, 1e-6) {
		t.Fatalf("expected recovered transform to match; want (%f %f %f %f %f %f), got (%f %f %f %f %f %f)",
			wm00, wm01, wm10, wm11, wtx, wty, gm00, gm01, gm10, gm11, gtx, gty)
	}
}

/*****************************************************************************************************************/

func TestPseudoInverseOfZeroIsZero(t *testing.T) {
	inv, err := Zero().PseudoInverse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m00, m01, m10, m11, tx, ty := inv.Params()
	if m00 != 0 || m01 != 0 || m10 != 0 || m11 != 0 || tx != 0 || ty != 0 {
		t.Fatalf("expected the pseudoinverse of the zero transform to be zero, got %f %f %f %f %f %f", m00, m01, m10, m11, tx, ty)
	}
}

/*****************************************************************************************************************/

func TestPseudoInverseRoundTrip(t *testing.T) {
	transform := FromParameters(2, 0, 0, 2, 5, -5)

	inv, err := transform.PseudoInverse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	x, y := transform.Apply(3, 4)
	rx, ry := inv.Apply(x, y)

	if !almostEqual(rx, 3, 1e-6) || !almostEqual(ry, 4, 1e-6) {
		t.Fatalf("expected round trip through T then T^-1 to recover (3, 4), got (%f, %f)", rx, ry)
	}
}

/*****************************************************************************************************************/

func TestToColumnMajor4x4LiftsZAsIdentity(t *testing.T) {
	transform := FromParameters(1, 0, 0, 1, 7, -3)
	m := transform.ToColumnMajor4x4()

	// Column-major 4x4: column 2 (z) and row 2 must be identity-lifted.
	if m[8] != 0 || m[9] != 0 || m[10] != 1 || m[11] != 0 {
		t.Fatalf("expected the z column to be identity-lifted, got %v", m[8:12])
	}
	if m[12] != 7 || m[13] != -3 {
		t.Fatalf("expected translation (7, -3), got (%f, %f)", m[12], m[13])
	}
}

/*****************************************************************************************************************/
