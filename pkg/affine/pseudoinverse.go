/*****************************************************************************************************************/

//	@package	artrack

/*****************************************************************************************************************/

package affine

/*****************************************************************************************************************/

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

/*****************************************************************************************************************/

// singularValueEpsilon is the threshold below which a singular value is
// treated as zero when building the pseudoinverse. This is what turns a
// degenerate (rank-deficient) design matrix into the minimum-norm solution
// instead of a numerical explosion.
const singularValueEpsilon = 1e-10

/*****************************************************************************************************************/

// pseudoInverse computes the Moore-Penrose pseudoinverse of a via its thin
// singular value decomposition: pinv(A) = V * Sigma+ * U^T, where Sigma+ is
// the diagonal matrix of reciprocal singular values (zero wherever the
// singular value itself is at or below singularValueEpsilon).
func pseudoInverse(a *mat.Dense) (*mat.Dense, error) {
	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		return nil, errors.New("singular value decomposition failed to converge")
	}

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	values := svd.Values(nil)

	sigmaPlus := mat.NewDense(len(values), len(values), nil)
	for i, s := range values {
		if s > singularValueEpsilon {
			sigmaPlus.Set(i, i, 1/s)
		}
	}

	var vSigma mat.Dense
	vSigma.Mul(&v, sigmaPlus)

	var pinv mat.Dense
	pinv.Mul(&vSigma, u.T())

	return &pinv, nil
}

/*****************************************************************************************************************/
