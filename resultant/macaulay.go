package resultant

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fchapoton/dalgebra/logger"
	"github.com/fchapoton/dalgebra/matrix"
	"github.com/fchapoton/dalgebra/ring"
)

// Macaulay computes the Macaulay resultant of n homogeneous polynomials in
// the n given variables; the coefficients may live in any extension of the
// base ring (the remaining variables are treated as parameters). The result
// is the classical quotient det(A)/det(A') of the Macaulay matrix by its
// non-reduced minor.
func Macaulay(polys []*ring.Polynomial, vars []ring.VarID) (*ring.Polynomial, error) {
	n := len(vars)
	if n == 0 || len(polys) != n {
		return nil, fmt.Errorf("%w: macaulay resultant needs n equations in n variables, got %d in %d",
			ErrBadSystem, len(polys), n)
	}
	degs := make([]int, n)
	for i, p := range polys {
		if !p.IsHomogeneousIn(vars) {
			return nil, fmt.Errorf("%w: equation %d is not homogeneous", ErrBadSystem, i)
		}
		d := p.DegreeInSet(vars)
		if d < 1 {
			return nil, fmt.Errorf("%w: equation %d has degree %d in the main variables", ErrBadSystem, i, d)
		}
		degs[i] = d
	}

	// critical degree: every monomial of this degree is divisible by some
	// x_i^{d_i}
	t := 1 - n
	for _, d := range degs {
		t += d
	}
	monos := monomialsOfDegree(t, n)
	log := logger.Logger().With().Str("component", "macaulay").Logger()
	log.Debug().Int("degree", t).Int("monomials", len(monos)).Msg("building macaulay matrix")

	colOf := make(map[string]int, len(monos))
	for j, mu := range monos {
		colOf[expKey(mu)] = j
	}

	varPos := make(map[ring.VarID]int, n)
	for i, v := range vars {
		varPos[v] = i
	}

	a, err := matrix.New(len(monos), len(monos))
	if err != nil {
		return nil, err
	}
	reduced := make([]bool, len(monos))
	for r, mu := range monos {
		owner := -1
		divisors := 0
		for i := 0; i < n; i++ {
			if mu[i] >= degs[i] {
				if owner < 0 {
					owner = i
				}
				divisors++
			}
		}
		if owner < 0 {
			return nil, fmt.Errorf("%w: monomial of degree %d not covered", ErrBadSystem, t)
		}
		reduced[r] = divisors == 1

		// row = f_owner * (mu / x_owner^{d_owner})
		shift := make([]ring.VarPow, 0, n)
		for i, e := range mu {
			if i == owner {
				e -= degs[i]
			}
			if e > 0 {
				shift = append(shift, ring.VarPow{Var: vars[i], Exp: e})
			}
		}
		row := polys[owner].Mul(ring.MonoPolynomial(shift...))
		for _, sp := range row.SplitBy(vars) {
			exps := make([]int, n)
			for _, vp := range sp.Mono {
				exps[varPos[vp.Var]] = vp.Exp
			}
			j, ok := colOf[expKey(exps)]
			if !ok {
				return nil, fmt.Errorf("%w: row monomial of unexpected degree", ErrBadSystem)
			}
			a.Set(r, j, sp.Coeff)
		}
	}

	detA, err := a.Determinant()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDegenerate, err)
	}

	var minorIdx []int
	for r, red := range reduced {
		if !red {
			minorIdx = append(minorIdx, r)
		}
	}
	if len(minorIdx) == 0 {
		return detA, nil
	}
	sub, err := matrix.New(len(minorIdx), len(minorIdx))
	if err != nil {
		return nil, err
	}
	for i, r := range minorIdx {
		for j, c := range minorIdx {
			sub.Set(i, j, a.At(r, c))
		}
	}
	detSub, err := sub.Determinant()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDegenerate, err)
	}
	if detSub.IsZero() {
		return nil, fmt.Errorf("%w: vanishing macaulay minor", ErrDegenerate)
	}
	res, err := ring.DivExact(detA, detSub)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDegenerate, err)
	}
	return res, nil
}

// monomialsOfDegree enumerates the exponent vectors of total degree d in n
// variables, in a fixed deterministic order (first exponent descending).
func monomialsOfDegree(d, n int) [][]int {
	if n == 1 {
		return [][]int{{d}}
	}
	var out [][]int
	for e := d; e >= 0; e-- {
		for _, rest := range monomialsOfDegree(d-e, n-1) {
			mu := append([]int{e}, rest...)
			out = append(out, mu)
		}
	}
	return out
}

func expKey(exps []int) string {
	var sb strings.Builder
	for i, e := range exps {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(e))
	}
	return sb.String()
}
