package ring

import (
	"fmt"
	"math/big"

	"github.com/fchapoton/dalgebra/debug"
)

// Apply applies the ring operator to p the given number of times. For a
// differential ring this is the derivation extended by the Leibniz rule with
// d(u_k) = u_{k+1}; for a difference ring it is the shift endomorphism
// u_k -> u_{k+1} extended by the declared action on base variables.
func (r *Ring) Apply(p *Polynomial, times int) (*Polynomial, error) {
	if times < 0 {
		return nil, fmt.Errorf("ring: cannot apply the operator %d times", times)
	}
	// the operator acts in the unified ring, so every base variable of p has
	// a declared action
	u, err := Unify(r, p.ring)
	if err != nil {
		return nil, err
	}
	for ; times > 0; times-- {
		switch u.kind {
		case Differential:
			p = u.differentiate(p)
		case Difference:
			p = u.shift(p)
		default:
			return nil, fmt.Errorf("ring: unknown operator kind %s", u.kind)
		}
	}
	return p, nil
}

// varImage returns the operator image of a single variable.
func (r *Ring) varImage(v VarID) *Polynomial {
	k := varInfo(v)
	if k.index >= 0 {
		return varPoly(r, internVar(k.family, k.index+1), 1)
	}
	if b, ok := r.baseByName[k.family]; ok {
		// actions keep the ring they were declared or parsed in; the image
		// is used in arithmetic of the applying ring, so retag it here
		return &Polynomial{ring: r, terms: b.Action.terms}
	}
	// Apply unifies first, so an undeclared base variable is a programming
	// error, not a coercion opportunity
	if debug.Debug {
		panic(fmt.Sprintf("ring: no operator action declared for base variable %q\n%s", k.family, debug.Stack()))
	}
	panic(fmt.Sprintf("ring: no operator action declared for base variable %q", k.family))
}

func (r *Ring) differentiate(p *Polynomial) *Polynomial {
	out := newPoly(mergeRings(r, p.ring))
	c := new(big.Rat)
	for _, t := range p.terms {
		// Leibniz rule over the variables of the monomial; the rational
		// coefficient has derivative zero.
		for i, vp := range t.mono {
			img := r.varImage(vp.Var)
			if img.IsZero() {
				continue
			}
			rest := make(Monomial, 0, len(t.mono))
			rest = append(rest, t.mono[:i]...)
			if vp.Exp > 1 {
				rest = append(rest, VarPow{Var: vp.Var, Exp: vp.Exp - 1})
			}
			rest = append(rest, t.mono[i+1:]...)
			rest = monoNormalize(rest)
			c.SetInt64(int64(vp.Exp))
			c.Mul(c, t.coeff)
			for _, it := range img.terms {
				cc := new(big.Rat).Mul(c, it.coeff)
				out.accumulate(monoMul(rest, it.mono), cc)
			}
		}
	}
	return out
}

func (r *Ring) shift(p *Polynomial) *Polynomial {
	images := make(map[VarID]*Polynomial)
	for _, v := range p.Variables() {
		images[v] = r.varImage(v)
	}
	q := &Polynomial{ring: mergeRings(r, p.ring), terms: p.terms}
	return q.Subst(images)
}
