package ring

import (
	"errors"
	"math/big"
)

// ErrInexactDivision is returned by DivExact when the divisor does not divide
// the dividend.
var ErrInexactDivision = errors.New("ring: inexact polynomial division")

// DivExact returns f/g when g divides f exactly, and ErrInexactDivision
// otherwise. Division by zero is always inexact. The algorithm is the
// classical single-divisor reduction under the graded lexicographic order:
// when f = q*g the leading term of every intermediate remainder is divisible
// by the leading term of g, so the reduction terminates with remainder zero.
func DivExact(f, g *Polynomial) (*Polynomial, error) {
	if g.IsZero() {
		return nil, ErrInexactDivision
	}
	ltg, _ := g.leadingTerm()
	q := newPoly(mergeRings(f.ring, g.ring))
	rem := f
	for !rem.IsZero() {
		ltr, _ := rem.leadingTerm()
		mono, ok := monoDiv(ltr.mono, ltg.mono)
		if !ok {
			return nil, ErrInexactDivision
		}
		c := new(big.Rat).Quo(ltr.coeff, ltg.coeff)
		t := newPoly(q.ring)
		t.accumulate(mono, c)
		q.accumulate(mono, c)
		rem = rem.Sub(t.Mul(g))
	}
	return q, nil
}
