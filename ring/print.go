package ring

import (
	"math/big"
	"strconv"
	"strings"
)

func ratString(c *big.Rat) string {
	if c.IsInt() {
		return c.Num().String()
	}
	return c.RatString()
}

func monoString(m Monomial) string {
	var sb strings.Builder
	for i, vp := range m {
		if i > 0 {
			sb.WriteByte('*')
		}
		sb.WriteString(VarString(vp.Var))
		if vp.Exp > 1 {
			sb.WriteByte('^')
			sb.WriteString(strconv.Itoa(vp.Exp))
		}
	}
	return sb.String()
}

// String renders p deterministically: monomials in decreasing canonical
// order, explicit * between factors. The output parses back to an equal
// polynomial with Ring.Parse.
func (p *Polynomial) String() string {
	if p.IsZero() {
		return "0"
	}
	var sb strings.Builder
	for i, t := range p.sortedTerms() {
		neg := t.coeff.Sign() < 0
		abs := new(big.Rat).Abs(t.coeff)
		switch {
		case i == 0 && neg:
			sb.WriteByte('-')
		case i > 0 && neg:
			sb.WriteString(" - ")
		case i > 0:
			sb.WriteString(" + ")
		}
		switch {
		case len(t.mono) == 0:
			sb.WriteString(ratString(abs))
		case abs.Cmp(ratOne()) == 0:
			sb.WriteString(monoString(t.mono))
		default:
			sb.WriteString(ratString(abs))
			sb.WriteByte('*')
			sb.WriteString(monoString(t.mono))
		}
	}
	return sb.String()
}
