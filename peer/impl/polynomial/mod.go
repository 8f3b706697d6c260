package polynomial

import (
	"go.dedis.ch/kyber/v3"
	"golang.org/x/xerrors"
)

var (
	// ErrDegenerateInterpolation is returned when the evaluation points are
	// not pairwise distinct.
	ErrDegenerateInterpolation = xerrors.New("degenerate interpolation")

	// ErrNotEnoughPoints is returned when fewer points than requested are
	// given.
	ErrNotEnoughPoints = xerrors.New("not enough points")
)

// Univariate is a polynomial in one variable. coeffs[k] is the coefficient of
// x^k; degree is the highest index holding a non-zero coefficient and may be
// smaller than len(coeffs)-1.
type Univariate struct {
	group  kyber.Group
	coeffs []kyber.Scalar
	degree int
}

// NewUnivariate returns the polynomial with the given coefficients, lowest
// degree first. The effective degree is computed from the coefficients.
func NewUnivariate(group kyber.Group, coeffs []kyber.Scalar) *Univariate {
	p := &Univariate{
		group:  group,
		coeffs: coeffs,
	}
	p.degree = effectiveDegree(group, coeffs)
	return p
}

// Degree returns the effective degree. The zero polynomial has degree 0.
func (p *Univariate) Degree() int {
	return p.degree
}

// Coefficients returns a copy of the coefficients, lowest degree first.
func (p *Univariate) Coefficients() []kyber.Scalar {
	out := make([]kyber.Scalar, len(p.coeffs))
	for i, c := range p.coeffs {
		out[i] = c.Clone()
	}
	return out
}

// Eval evaluates the polynomial at x with Horner's rule, from the effective
// degree down.
func (p *Univariate) Eval(x kyber.Scalar) kyber.Scalar {
	if len(p.coeffs) == 0 {
		return p.group.Scalar().Zero()
	}

	result := p.coeffs[p.degree].Clone()
	for k := p.degree - 1; k >= 0; k-- {
		result.Mul(result, x)
		result.Add(result, p.coeffs[k])
	}
	return result
}

// EvalStandard evaluates the polynomial as a sum of monomials. It is kept as
// a reference for Eval.
func (p *Univariate) EvalStandard(x kyber.Scalar) kyber.Scalar {
	result := p.group.Scalar().Zero()
	power := p.group.Scalar().One()
	term := p.group.Scalar()

	for _, c := range p.coeffs {
		term.Mul(c, power)
		result.Add(result, term)
		power.Mul(power, x)
	}
	return result
}

// EvalsToCoeffs returns the polynomial of degree < n going through the first
// n points (xs[i], ys[i]). Each Lagrange basis polynomial is built by
// multiplying (X - xs[j]) into a coefficient buffer, scaled by
// ys[i] / prod(xs[i] - xs[j]), and accumulated.
func EvalsToCoeffs(group kyber.Group, xs []int, ys []kyber.Scalar, n int) (*Univariate, error) {
	if n <= 0 || len(xs) < n || len(ys) < n {
		return nil, xerrors.Errorf("%w: want %d, got %d xs and %d ys",
			ErrNotEnoughPoints, n, len(xs), len(ys))
	}

	points := make([]kyber.Scalar, n)
	for i := 0; i < n; i++ {
		points[i] = group.Scalar().SetInt64(int64(xs[i]))
	}

	full := make([]kyber.Scalar, n)
	terms := make([]kyber.Scalar, n)
	for k := 0; k < n; k++ {
		full[k] = group.Scalar().Zero()
		terms[k] = group.Scalar()
	}

	diff := group.Scalar()
	negX := group.Scalar()
	zero := group.Scalar().Zero()

	for i := 0; i < n; i++ {
		denom := group.Scalar().One()
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			diff.Sub(points[i], points[j])
			if diff.Equal(zero) {
				return nil, xerrors.Errorf("%w: x=%d appears twice", ErrDegenerateInterpolation, xs[i])
			}
			denom.Mul(denom, diff)
		}

		for k := range terms {
			terms[k].Zero()
		}
		terms[0].Div(ys[i], denom)

		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			negX.Neg(points[j])
			for k := n - 1; k >= 1; k-- {
				terms[k].Add(terms[k], terms[k-1])
				terms[k-1].Mul(terms[k-1], negX)
			}
		}

		for k := 0; k < n; k++ {
			full[k].Add(full[k], terms[k])
		}
	}

	return NewUnivariate(group, full), nil
}

func effectiveDegree(group kyber.Group, coeffs []kyber.Scalar) int {
	zero := group.Scalar().Zero()
	for k := len(coeffs) - 1; k >= 0; k-- {
		if !coeffs[k].Equal(zero) {
			return k
		}
	}
	return 0
}
