package ring

import (
	"encoding/binary"
	"math/big"
	"sort"
)

// VarPow is a variable raised to a positive power inside a monomial.
type VarPow struct {
	Var VarID
	Exp int
}

// Monomial is a product of variable powers, sorted by CompareVars.
type Monomial []VarPow

func monoKey(m Monomial) string {
	if len(m) == 0 {
		return ""
	}
	b := make([]byte, 0, 8*len(m))
	for _, vp := range m {
		b = binary.AppendUvarint(b, uint64(vp.Var))
		b = binary.AppendUvarint(b, uint64(vp.Exp))
	}
	return string(b)
}

func monoNormalize(m Monomial) Monomial {
	out := make(Monomial, 0, len(m))
	for _, vp := range m {
		if vp.Exp != 0 {
			out = append(out, vp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return CompareVars(out[i].Var, out[j].Var) < 0 })
	// merge duplicates
	merged := out[:0]
	for _, vp := range out {
		if n := len(merged); n > 0 && merged[n-1].Var == vp.Var {
			merged[n-1].Exp += vp.Exp
		} else {
			merged = append(merged, vp)
		}
	}
	return merged
}

func monoDeg(m Monomial) int {
	d := 0
	for _, vp := range m {
		d += vp.Exp
	}
	return d
}

func monoDegIn(m Monomial, v VarID) int {
	for _, vp := range m {
		if vp.Var == v {
			return vp.Exp
		}
	}
	return 0
}

func monoDegInSet(m Monomial, set map[VarID]struct{}) int {
	d := 0
	for _, vp := range m {
		if _, ok := set[vp.Var]; ok {
			d += vp.Exp
		}
	}
	return d
}

func monoMul(a, b Monomial) Monomial {
	out := make(Monomial, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch c := CompareVars(a[i].Var, b[j].Var); {
		case c < 0:
			out = append(out, a[i])
			i++
		case c > 0:
			out = append(out, b[j])
			j++
		default:
			out = append(out, VarPow{Var: a[i].Var, Exp: a[i].Exp + b[j].Exp})
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}

// monoDiv returns a/b and whether b divides a.
func monoDiv(a, b Monomial) (Monomial, bool) {
	out := make(Monomial, 0, len(a))
	i := 0
	for _, vp := range b {
		for i < len(a) && CompareVars(a[i].Var, vp.Var) < 0 {
			out = append(out, a[i])
			i++
		}
		if i == len(a) || a[i].Var != vp.Var || a[i].Exp < vp.Exp {
			return nil, false
		}
		if e := a[i].Exp - vp.Exp; e > 0 {
			out = append(out, VarPow{Var: vp.Var, Exp: e})
		}
		i++
	}
	out = append(out, a[i:]...)
	return out, true
}

// monoCmp is a graded lexicographic monomial order: higher total degree first,
// ties broken lexicographically on the canonical variable order.
func monoCmp(a, b Monomial) int {
	if da, db := monoDeg(a), monoDeg(b); da != db {
		if da < db {
			return -1
		}
		return 1
	}
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if c := CompareVars(a[i].Var, b[j].Var); c != 0 {
			// the monomial holding the earlier variable is lex-greater
			return -c
		}
		if a[i].Exp != b[j].Exp {
			if a[i].Exp > b[j].Exp {
				return 1
			}
			return -1
		}
		i++
		j++
	}
	switch {
	case i < len(a):
		return 1
	case j < len(b):
		return -1
	}
	return 0
}

func ratOne() *big.Rat { return big.NewRat(1, 1) }

type term struct {
	mono  Monomial
	coeff *big.Rat
}

// Polynomial is an immutable sparse multivariate polynomial with exact
// rational coefficients. Operator variables and base-ring variables are
// handled uniformly; the ring tag records which operator ring the value
// belongs to (nil for plain constants).
type Polynomial struct {
	ring  *Ring
	terms map[string]term
}

func newPoly(r *Ring) *Polynomial {
	return &Polynomial{ring: r, terms: make(map[string]term)}
}

// accumulate is used during construction only; published polynomials are
// never mutated.
func (p *Polynomial) accumulate(mono Monomial, c *big.Rat) {
	if c.Sign() == 0 {
		return
	}
	k := monoKey(mono)
	if t, ok := p.terms[k]; ok {
		sum := new(big.Rat).Add(t.coeff, c)
		if sum.Sign() == 0 {
			delete(p.terms, k)
			return
		}
		p.terms[k] = term{mono: t.mono, coeff: sum}
		return
	}
	p.terms[k] = term{mono: mono, coeff: new(big.Rat).Set(c)}
}

// Zero returns the zero polynomial.
func Zero() *Polynomial { return newPoly(nil) }

// FromInt64 returns the constant polynomial n.
func FromInt64(n int64) *Polynomial {
	return FromRat(new(big.Rat).SetInt64(n))
}

// FromRat returns the constant polynomial c.
func FromRat(c *big.Rat) *Polynomial {
	p := newPoly(nil)
	p.accumulate(nil, c)
	return p
}

func varPoly(r *Ring, v VarID, exp int) *Polynomial {
	p := newPoly(r)
	p.accumulate(Monomial{{Var: v, Exp: exp}}, big.NewRat(1, 1))
	return p
}

// MonoPolynomial returns the monomial with coefficient one built from the
// given variable powers.
func MonoPolynomial(vps ...VarPow) *Polynomial {
	p := newPoly(nil)
	p.accumulate(monoNormalize(Monomial(vps)), ratOne())
	return p
}

// Ring returns the operator ring this polynomial is tagged with, possibly nil
// for a plain constant.
func (p *Polynomial) Ring() *Ring { return p.ring }

func (p *Polynomial) IsZero() bool { return len(p.terms) == 0 }

// IsConstant reports whether p has no variables.
func (p *Polynomial) IsConstant() bool {
	for _, t := range p.terms {
		if len(t.mono) > 0 {
			return false
		}
	}
	return true
}

func (p *Polynomial) Equal(q *Polynomial) bool {
	if len(p.terms) != len(q.terms) {
		return false
	}
	for k, t := range p.terms {
		u, ok := q.terms[k]
		if !ok || t.coeff.Cmp(u.coeff) != 0 {
			return false
		}
	}
	return true
}

func (p *Polynomial) Add(q *Polynomial) *Polynomial {
	out := newPoly(mergeRings(p.ring, q.ring))
	for _, t := range p.terms {
		out.accumulate(t.mono, t.coeff)
	}
	for _, t := range q.terms {
		out.accumulate(t.mono, t.coeff)
	}
	return out
}

func (p *Polynomial) Sub(q *Polynomial) *Polynomial {
	return p.Add(q.Neg())
}

func (p *Polynomial) Neg() *Polynomial {
	out := newPoly(p.ring)
	for k, t := range p.terms {
		out.terms[k] = term{mono: t.mono, coeff: new(big.Rat).Neg(t.coeff)}
	}
	return out
}

func (p *Polynomial) Mul(q *Polynomial) *Polynomial {
	out := newPoly(mergeRings(p.ring, q.ring))
	c := new(big.Rat)
	for _, t := range p.terms {
		for _, u := range q.terms {
			c.Mul(t.coeff, u.coeff)
			out.accumulate(monoMul(t.mono, u.mono), c)
		}
	}
	return out
}

// ScaleRat returns c*p.
func (p *Polynomial) ScaleRat(c *big.Rat) *Polynomial {
	if c.Sign() == 0 {
		return newPoly(p.ring)
	}
	out := newPoly(p.ring)
	for k, t := range p.terms {
		out.terms[k] = term{mono: t.mono, coeff: new(big.Rat).Mul(t.coeff, c)}
	}
	return out
}

func (p *Polynomial) Pow(n int) *Polynomial {
	if n < 0 {
		panic("ring: negative exponent")
	}
	out := FromInt64(1)
	out.ring = p.ring
	base := p
	for n > 0 {
		if n&1 == 1 {
			out = out.Mul(base)
		}
		n >>= 1
		if n == 0 {
			break
		}
		base = base.Mul(base)
	}
	return out
}

func (p *Polynomial) sortedTerms() []term {
	ts := make([]term, 0, len(p.terms))
	for _, t := range p.terms {
		ts = append(ts, t)
	}
	sort.Slice(ts, func(i, j int) bool { return monoCmp(ts[i].mono, ts[j].mono) > 0 })
	return ts
}

func (p *Polynomial) leadingTerm() (term, bool) {
	var lt term
	found := false
	for _, t := range p.terms {
		if !found || monoCmp(t.mono, lt.mono) > 0 {
			lt = t
			found = true
		}
	}
	return lt, found
}

// Variables returns the variables of p in canonical order.
func (p *Polynomial) Variables() []VarID {
	seen := make(map[VarID]struct{})
	for _, t := range p.terms {
		for _, vp := range t.mono {
			seen[vp.Var] = struct{}{}
		}
	}
	out := make([]VarID, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return CompareVars(out[i], out[j]) < 0 })
	return out
}

// Degree returns the total degree of p, -1 for the zero polynomial.
func (p *Polynomial) Degree() int {
	if p.IsZero() {
		return -1
	}
	d := 0
	for _, t := range p.terms {
		if n := monoDeg(t.mono); n > d {
			d = n
		}
	}
	return d
}

// DegreeIn returns the degree of p in the single variable v.
func (p *Polynomial) DegreeIn(v VarID) int {
	d := 0
	for _, t := range p.terms {
		if n := monoDegIn(t.mono, v); n > d {
			d = n
		}
	}
	return d
}

// DegreeInSet returns the maximal joint degree of p in the given variables.
func (p *Polynomial) DegreeInSet(vars []VarID) int {
	set := varSet(vars)
	d := 0
	for _, t := range p.terms {
		if n := monoDegInSet(t.mono, set); n > d {
			d = n
		}
	}
	return d
}

func varSet(vars []VarID) map[VarID]struct{} {
	set := make(map[VarID]struct{}, len(vars))
	for _, v := range vars {
		set[v] = struct{}{}
	}
	return set
}

// Monomials returns the monomials of p, largest first in the canonical order.
func (p *Polynomial) Monomials() []Monomial {
	ts := p.sortedTerms()
	out := make([]Monomial, len(ts))
	for i, t := range ts {
		out[i] = t.mono
	}
	return out
}

// NumMonomials returns the number of monomials of p.
func (p *Polynomial) NumMonomials() int { return len(p.terms) }

// CoefficientOf returns the rational coefficient of the given monomial,
// zero if absent.
func (p *Polynomial) CoefficientOf(m Monomial) *big.Rat {
	if t, ok := p.terms[monoKey(monoNormalize(m))]; ok {
		return new(big.Rat).Set(t.coeff)
	}
	return new(big.Rat)
}

// Order returns the maximal operator-application index of the given family
// appearing in p, -1 if the family does not appear.
func (p *Polynomial) Order(family string) int {
	order := -1
	for _, t := range p.terms {
		for _, vp := range t.mono {
			if k := varInfo(vp.Var); k.family == family && k.index > order {
				order = k.index
			}
		}
	}
	return order
}

// OrderAll returns the maximal operator-application index over every family
// appearing in p, -1 when p has no operator variables.
func (p *Polynomial) OrderAll() int {
	order := -1
	for _, t := range p.terms {
		for _, vp := range t.mono {
			if k := varInfo(vp.Var); k.index > order {
				order = k.index
			}
		}
	}
	return order
}

// IsLinear reports whether every monomial of p has joint degree at most one
// in the variables belonging to the given families.
func (p *Polynomial) IsLinear(families []string) bool {
	fams := make(map[string]struct{}, len(families))
	for _, f := range families {
		fams[f] = struct{}{}
	}
	for _, t := range p.terms {
		d := 0
		for _, vp := range t.mono {
			if k := varInfo(vp.Var); k.index >= 0 {
				if _, ok := fams[k.family]; ok {
					d += vp.Exp
				}
			}
		}
		if d > 1 {
			return false
		}
	}
	return true
}

// IsHomogeneousIn reports whether all monomials of p have the same joint
// degree in the given variables. The zero polynomial is homogeneous.
func (p *Polynomial) IsHomogeneousIn(vars []VarID) bool {
	set := varSet(vars)
	first := true
	d := 0
	for _, t := range p.terms {
		n := monoDegInSet(t.mono, set)
		if first {
			d = n
			first = false
		} else if n != d {
			return false
		}
	}
	return true
}

// HomogenizeWith returns the homogenization of p with respect to the given
// variables, using h as the homogenizing variable. A polynomial that is
// already homogeneous is returned unchanged.
func (p *Polynomial) HomogenizeWith(vars []VarID, h VarID) *Polynomial {
	if p.IsHomogeneousIn(vars) {
		return p
	}
	set := varSet(vars)
	d := 0
	for _, t := range p.terms {
		if n := monoDegInSet(t.mono, set); n > d {
			d = n
		}
	}
	out := newPoly(p.ring)
	for _, t := range p.terms {
		e := d - monoDegInSet(t.mono, set)
		mono := t.mono
		if e > 0 {
			mono = monoMul(mono, Monomial{{Var: h, Exp: e}})
		}
		out.accumulate(mono, t.coeff)
	}
	return out
}

// UnivariateIn collapses p to a univariate polynomial in v with polynomial
// coefficients: the returned slice holds the coefficient of v^k at position k.
func (p *Polynomial) UnivariateIn(v VarID) []*Polynomial {
	d := p.DegreeIn(v)
	coeffs := make([]*Polynomial, d+1)
	for i := range coeffs {
		coeffs[i] = newPoly(p.ring)
	}
	for _, t := range p.terms {
		k := 0
		rest := make(Monomial, 0, len(t.mono))
		for _, vp := range t.mono {
			if vp.Var == v {
				k = vp.Exp
			} else {
				rest = append(rest, vp)
			}
		}
		coeffs[k].accumulate(rest, t.coeff)
	}
	return coeffs
}

// Split groups the terms of p by their projection onto the given variables.
// The result is sorted by the projected monomial, largest first; it is the
// coefficient decomposition the Macaulay construction works on.
type Split struct {
	Mono  Monomial
	Coeff *Polynomial
}

func (p *Polynomial) SplitBy(vars []VarID) []Split {
	set := varSet(vars)
	groups := make(map[string]*Split)
	for _, t := range p.terms {
		main := make(Monomial, 0, len(t.mono))
		rest := make(Monomial, 0, len(t.mono))
		for _, vp := range t.mono {
			if _, ok := set[vp.Var]; ok {
				main = append(main, vp)
			} else {
				rest = append(rest, vp)
			}
		}
		k := monoKey(main)
		g, ok := groups[k]
		if !ok {
			g = &Split{Mono: main, Coeff: newPoly(p.ring)}
			groups[k] = g
		}
		g.Coeff.accumulate(rest, t.coeff)
	}
	out := make([]Split, 0, len(groups))
	for _, g := range groups {
		if !g.Coeff.IsZero() {
			out = append(out, *g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return monoCmp(out[i].Mono, out[j].Mono) > 0 })
	return out
}

// Subst applies the ring homomorphism sending each mapped variable to its
// image and keeping every other variable fixed.
func (p *Polynomial) Subst(images map[VarID]*Polynomial) *Polynomial {
	out := newPoly(p.ring)
	for _, t := range p.terms {
		part := FromRat(t.coeff)
		part.ring = p.ring
		for _, vp := range t.mono {
			if img, ok := images[vp.Var]; ok {
				part = part.Mul(img.Pow(vp.Exp))
			} else {
				part = part.Mul(varPoly(p.ring, vp.Var, vp.Exp))
			}
		}
		out = out.Add(part)
	}
	return out
}
