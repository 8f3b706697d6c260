package polynomial

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/kyber/v3"
	"go.dedis.ch/kyber/v3/group/edwards25519"
	"go.dedis.ch/kyber/v3/share"
	"golang.org/x/xerrors"
)

var suite = edwards25519.NewBlakeSHA256Ed25519()

func scalar(v int64) kyber.Scalar {
	return suite.Scalar().SetInt64(v)
}

func Test_Bivariate_Symmetric(t *testing.T) {
	stream := suite.XOF([]byte("symmetric"))

	for degree := 0; degree <= 4; degree++ {
		p := RandomBivariate(suite, degree, stream)

		for i := int64(0); i <= 6; i++ {
			for j := int64(0); j <= 6; j++ {
				fij := p.Eval(scalar(i), scalar(j))
				fji := p.Eval(scalar(j), scalar(i))
				require.True(t, fij.Equal(fji), "f(%d,%d) != f(%d,%d)", i, j, j, i)
			}
		}
	}
}

func Test_Bivariate_HornerMatchesStandard(t *testing.T) {
	stream := suite.XOF([]byte("horner"))
	p := RandomBivariate(suite, 3, stream)

	for k := 0; k < 20; k++ {
		x := suite.Scalar().Pick(stream)
		y := suite.Scalar().Pick(stream)
		require.True(t, p.Eval(x, y).Equal(p.EvalStandard(x, y)))
	}
}

func Test_Bivariate_Secret(t *testing.T) {
	secret := scalar(42)
	p := RandomBivariateWithSecret(suite, 2, secret, suite.XOF([]byte("secret")))

	require.True(t, p.Eval(scalar(0), scalar(0)).Equal(secret))
	require.True(t, p.Secret().Equal(secret))
	require.Equal(t, 2, p.Degree())
}

func Test_Bivariate_Deterministic(t *testing.T) {
	p1 := RandomBivariate(suite, 3, suite.XOF([]byte("seed")))
	p2 := RandomBivariate(suite, 3, suite.XOF([]byte("seed")))

	for a := 0; a <= 3; a++ {
		for b := 0; b <= 3; b++ {
			require.True(t, p1.Coefficient(a, b).Equal(p2.Coefficient(a, b)))
		}
	}
}

func Test_Bivariate_Restrict(t *testing.T) {
	stream := suite.XOF([]byte("restrict"))
	p := RandomBivariate(suite, 2, stream)

	for i := int64(1); i <= 4; i++ {
		row := p.Restrict(scalar(i))
		for j := int64(0); j <= 5; j++ {
			require.True(t, row.Eval(scalar(j)).Equal(p.Eval(scalar(i), scalar(j))))
		}
	}
}

func Test_Univariate_HornerMatchesStandard(t *testing.T) {
	coeffs := []kyber.Scalar{scalar(3), scalar(0), scalar(5), scalar(7)}
	p := NewUnivariate(suite, coeffs)

	require.Equal(t, 3, p.Degree())

	// 3 + 5*2^2 + 7*2^3
	require.True(t, p.Eval(scalar(2)).Equal(scalar(79)))
	require.True(t, p.EvalStandard(scalar(2)).Equal(scalar(79)))
}

func Test_Univariate_EffectiveDegree(t *testing.T) {
	p := NewUnivariate(suite, []kyber.Scalar{scalar(1), scalar(2), scalar(0), scalar(0)})
	require.Equal(t, 1, p.Degree())

	zero := NewUnivariate(suite, []kyber.Scalar{scalar(0), scalar(0)})
	require.Equal(t, 0, zero.Degree())
	require.True(t, zero.Eval(scalar(9)).Equal(scalar(0)))
}

// sparse are non-contiguous evaluation points
var sparse = []int{2, 5, 9, 11, 17, 23}

func Test_Interpolation_RoundTrip(t *testing.T) {
	stream := suite.XOF([]byte("roundtrip"))

	for degree := 0; degree <= 5; degree++ {
		coeffs := make([]kyber.Scalar, degree+1)
		for k := range coeffs {
			coeffs[k] = suite.Scalar().Pick(stream)
		}
		p := NewUnivariate(suite, coeffs)

		n := degree + 1
		contiguous := make([]int, n)
		for k := range contiguous {
			contiguous[k] = k + 1
		}

		for _, xs := range [][]int{contiguous, sparse[:n]} {
			ys := make([]kyber.Scalar, n)
			for k, x := range xs {
				ys[k] = p.Eval(scalar(int64(x)))
			}

			q, err := EvalsToCoeffs(suite, xs, ys, n)
			require.NoError(t, err)
			require.Equal(t, degree, q.Degree(), "points %v", xs)

			for x := int64(0); x <= 12; x++ {
				require.True(t, q.Eval(scalar(x)).Equal(p.Eval(scalar(x))), "degree %d, x=%d, points %v", degree, x, xs)
			}
		}
	}
}

func Test_Interpolation_MorePointsLowDegree(t *testing.T) {
	// 2x + 1 sampled at 5 points must come back with degree 1
	xs := []int{1, 2, 3, 4, 5}
	ys := []kyber.Scalar{scalar(3), scalar(5), scalar(7), scalar(9), scalar(11)}

	p, err := EvalsToCoeffs(suite, xs, ys, 5)
	require.NoError(t, err)
	require.Equal(t, 1, p.Degree())
	require.True(t, p.Eval(scalar(0)).Equal(scalar(1)))
}

func Test_Interpolation_DetectsHighDegree(t *testing.T) {
	xs := []int{1, 2, 3}
	ys := []kyber.Scalar{scalar(3), scalar(5), scalar(8)}

	p, err := EvalsToCoeffs(suite, xs, ys, 3)
	require.NoError(t, err)
	require.Equal(t, 2, p.Degree())
}

func Test_Interpolation_Degenerate(t *testing.T) {
	xs := []int{1, 2, 2}
	ys := []kyber.Scalar{scalar(1), scalar(2), scalar(3)}

	_, err := EvalsToCoeffs(suite, xs, ys, 3)
	require.Error(t, err)
	require.True(t, xerrors.Is(err, ErrDegenerateInterpolation))
}

func Test_Interpolation_NotEnoughPoints(t *testing.T) {
	_, err := EvalsToCoeffs(suite, []int{1, 2}, []kyber.Scalar{scalar(1), scalar(2)}, 3)
	require.True(t, xerrors.Is(err, ErrNotEnoughPoints))

	_, err = EvalsToCoeffs(suite, nil, nil, 0)
	require.True(t, xerrors.Is(err, ErrNotEnoughPoints))
}

func Test_Interpolation_AgreesWithKyberRecovery(t *testing.T) {
	stream := suite.XOF([]byte("kyber"))
	secret := suite.Scalar().Pick(stream)

	const threshold = 4
	const n = 7

	priPoly := share.NewPriPoly(suite, threshold, secret, stream)
	shares := priPoly.Shares(n)

	xs := make([]int, threshold)
	ys := make([]kyber.Scalar, threshold)
	for k := 0; k < threshold; k++ {
		// kyber evaluates share I at x = I+1
		xs[k] = shares[k+2].I + 1
		ys[k] = shares[k+2].V
	}

	p, err := EvalsToCoeffs(suite, xs, ys, threshold)
	require.NoError(t, err)

	recovered, err := share.RecoverSecret(suite, shares, threshold, n)
	require.NoError(t, err)

	require.True(t, p.Eval(scalar(0)).Equal(recovered))
	require.True(t, recovered.Equal(secret))
}
