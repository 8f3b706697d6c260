package polynomial

import (
	"crypto/cipher"

	"go.dedis.ch/kyber/v3"
)

// Exponent is the canonical key of a symmetric coefficient: DX >= DY.
type Exponent struct {
	DX int
	DY int
}

// canonical returns the exponent under which the coefficient of x^a y^b is
// stored.
func canonical(a, b int) Exponent {
	if a < b {
		a, b = b, a
	}
	return Exponent{DX: a, DY: b}
}

// Bivariate is a symmetric bivariate polynomial f(x,y) = f(y,x) of degree d in
// each variable. Only coefficients with DX >= DY are stored; the coefficient
// of x^a y^b is the one of x^b y^a. It is read-only once built.
type Bivariate struct {
	group  kyber.Group
	degree int
	coeffs map[Exponent]kyber.Scalar
}

// RandomBivariate samples one uniform coefficient per canonical exponent with
// both exponents in [0, degree].
func RandomBivariate(group kyber.Group, degree int, stream cipher.Stream) *Bivariate {
	coeffs := make(map[Exponent]kyber.Scalar, (degree+1)*(degree+2)/2)
	for dx := 0; dx <= degree; dx++ {
		for dy := 0; dy <= dx; dy++ {
			coeffs[Exponent{DX: dx, DY: dy}] = group.Scalar().Pick(stream)
		}
	}

	return &Bivariate{
		group:  group,
		degree: degree,
		coeffs: coeffs,
	}
}

// RandomBivariateWithSecret samples a random symmetric polynomial whose
// constant term, and therefore f(0,0), is secret.
func RandomBivariateWithSecret(group kyber.Group, degree int, secret kyber.Scalar,
	stream cipher.Stream) *Bivariate {

	p := RandomBivariate(group, degree, stream)
	p.coeffs[Exponent{}] = secret.Clone()
	return p
}

// Degree returns the degree in each variable.
func (p *Bivariate) Degree() int {
	return p.degree
}

// Coefficient returns the coefficient of x^a y^b.
func (p *Bivariate) Coefficient(a, b int) kyber.Scalar {
	return p.coeffs[canonical(a, b)]
}

// Secret returns f(0,0).
func (p *Bivariate) Secret() kyber.Scalar {
	return p.Coefficient(0, 0).Clone()
}

// Eval evaluates f(x,y) with nested Horner accumulation: the inner loop runs
// over y for a fixed power of x, the outer loop over x.
func (p *Bivariate) Eval(x, y kyber.Scalar) kyber.Scalar {
	result := p.group.Scalar().Zero()
	inner := p.group.Scalar()

	for dx := p.degree; dx >= 0; dx-- {
		inner.Set(p.Coefficient(dx, p.degree))
		for dy := p.degree - 1; dy >= 0; dy-- {
			inner.Mul(inner, y)
			inner.Add(inner, p.Coefficient(dx, dy))
		}
		result.Mul(result, x)
		result.Add(result, inner)
	}
	return result
}

// EvalStandard evaluates f(x,y) as the sum of coeff(a,b) x^a y^b. It is the
// reference Eval must agree with.
func (p *Bivariate) EvalStandard(x, y kyber.Scalar) kyber.Scalar {
	result := p.group.Scalar().Zero()
	term := p.group.Scalar()

	powX := p.group.Scalar().One()
	for a := 0; a <= p.degree; a++ {
		powY := p.group.Scalar().One()
		for b := 0; b <= p.degree; b++ {
			term.Mul(p.Coefficient(a, b), powX)
			term.Mul(term, powY)
			result.Add(result, term)
			powY.Mul(powY, y)
		}
		powX.Mul(powX, x)
	}
	return result
}

// Restrict returns the univariate polynomial g(y) = f(x, y).
func (p *Bivariate) Restrict(x kyber.Scalar) *Univariate {
	coeffs := make([]kyber.Scalar, p.degree+1)
	for b := 0; b <= p.degree; b++ {
		c := p.group.Scalar().Zero()
		for a := p.degree; a >= 0; a-- {
			c.Mul(c, x)
			c.Add(c, p.Coefficient(a, b))
		}
		coeffs[b] = c
	}
	return NewUnivariate(p.group, coeffs)
}
