// Package ring implements rings of operator polynomials: multivariate
// polynomials over an indexed family of variables u_0, u_1, u_2, ... per
// declared symbol u, together with an operator (a derivation for differential
// rings, a shift endomorphism for difference rings) acting by
// u_k -> u_{k+1} and by a declared action on the base-ring variables.
package ring

import (
	"errors"
	"fmt"
	"sort"

	"github.com/fchapoton/dalgebra/debug"
)

var (
	// ErrRingMismatch is returned when two operator rings cannot be unified
	// into a common structure.
	ErrRingMismatch = errors.New("ring: incompatible operator rings")
)

// Kind distinguishes the two flavors of operator rings.
type Kind uint8

const (
	Differential Kind = iota
	Difference
)

func (k Kind) String() string {
	switch k {
	case Differential:
		return "differential"
	case Difference:
		return "difference"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// BaseVar is a base-ring variable together with its image under the operator:
// the derivative of the variable for a differential ring, its shifted value
// for a difference ring.
type BaseVar struct {
	Name   string
	Action *Polynomial
}

// Indet declares a base variable x with dx = 1 (a differential indeterminate).
func Indet(name string) BaseVar {
	return BaseVar{Name: name, Action: FromInt64(1)}
}

// Const declares a base variable with derivative zero (a differential constant).
func Const(name string) BaseVar {
	return BaseVar{Name: name, Action: Zero()}
}

// Fixed declares a shift-invariant base variable of a difference ring.
func Fixed(name string) BaseVar {
	p := newPoly(nil)
	p.accumulate(Monomial{{Var: internVar(name, -1), Exp: 1}}, ratOne())
	return BaseVar{Name: name, Action: p}
}

// Stepped declares a base variable n of a difference ring with shift n -> n+1.
func Stepped(name string) BaseVar {
	b := Fixed(name)
	b.Action = b.Action.Add(FromInt64(1))
	return b
}

// Ring describes an operator-polynomial ring: its kind, its base variables
// with their operator action, and its operator variable families.
type Ring struct {
	kind     Kind
	base     []BaseVar
	families []string

	baseByName map[string]*BaseVar
	familySet  map[string]struct{}
}

// NewDifferential builds a ring of differential polynomials in the given
// families over a base ring with the given variables.
func NewDifferential(base []BaseVar, families ...string) (*Ring, error) {
	return newRing(Differential, base, families)
}

// NewDifference builds a ring of difference polynomials in the given
// families over a base ring with the given variables.
func NewDifference(base []BaseVar, families ...string) (*Ring, error) {
	return newRing(Difference, base, families)
}

func newRing(kind Kind, base []BaseVar, families []string) (*Ring, error) {
	if len(families) == 0 {
		return nil, fmt.Errorf("%w: at least one variable family is required", ErrRingMismatch)
	}
	r := &Ring{
		kind:       kind,
		base:       append([]BaseVar(nil), base...),
		families:   append([]string(nil), families...),
		baseByName: make(map[string]*BaseVar, len(base)),
		familySet:  make(map[string]struct{}, len(families)),
	}
	for i := range r.base {
		b := &r.base[i]
		if b.Name == "" {
			return nil, fmt.Errorf("%w: empty base variable name", ErrRingMismatch)
		}
		if _, ok := r.baseByName[b.Name]; ok {
			return nil, fmt.Errorf("%w: duplicate base variable %q", ErrRingMismatch, b.Name)
		}
		if b.Action == nil {
			b.Action = Zero()
		}
		r.baseByName[b.Name] = b
	}
	for _, f := range families {
		if f == "" {
			return nil, fmt.Errorf("%w: empty family name", ErrRingMismatch)
		}
		if _, ok := r.baseByName[f]; ok {
			return nil, fmt.Errorf("%w: name %q is both a base variable and a family", ErrRingMismatch, f)
		}
		if _, ok := r.familySet[f]; ok {
			return nil, fmt.Errorf("%w: duplicate family %q", ErrRingMismatch, f)
		}
		r.familySet[f] = struct{}{}
	}
	return r, nil
}

// Kind returns the flavor of the ring.
func (r *Ring) Kind() Kind { return r.kind }

// Families returns the operator variable families, in declaration order.
func (r *Ring) Families() []string {
	return append([]string(nil), r.families...)
}

// BaseVars returns the base variables with their operator actions.
func (r *Ring) BaseVars() []BaseVar {
	return append([]BaseVar(nil), r.base...)
}

// HasFamily reports whether the ring declares the given family.
func (r *Ring) HasFamily(name string) bool {
	_, ok := r.familySet[name]
	return ok
}

// Base returns the given base variable as a polynomial. Referencing an
// undeclared base variable is a programming error and panics.
func (r *Ring) Base(name string) *Polynomial {
	if _, ok := r.baseByName[name]; !ok {
		panic(fmt.Sprintf("ring: %q is not a base variable of %s", name, r))
	}
	return varPoly(r, internVar(name, -1), 1)
}

// Fam returns the k-th operator variable of the given family as a polynomial:
// r.Fam("u", 2) is u_2. Referencing an undeclared family panics.
func (r *Ring) Fam(name string, k int) *Polynomial {
	if !r.HasFamily(name) {
		panic(fmt.Sprintf("ring: %q is not a family of %s", name, r))
	}
	if k < 0 {
		panic("ring: negative operator index")
	}
	return varPoly(r, internVar(name, k), 1)
}

// Int returns the constant n tagged with this ring.
func (r *Ring) Int(n int64) *Polynomial {
	p := FromInt64(n)
	p.ring = r
	return p
}

// Equal reports whether two rings describe the same structure.
func (r *Ring) Equal(o *Ring) bool {
	if r == o {
		return true
	}
	if r == nil || o == nil {
		return false
	}
	if r.kind != o.kind || len(r.base) != len(o.base) || len(r.families) != len(o.families) {
		return false
	}
	for _, b := range r.base {
		ob, ok := o.baseByName[b.Name]
		if !ok || !b.Action.Equal(ob.Action) {
			return false
		}
	}
	for _, f := range r.families {
		if !o.HasFamily(f) {
			return false
		}
	}
	return true
}

func (r *Ring) String() string {
	names := make([]string, len(r.base))
	for i, b := range r.base {
		names[i] = b.Name
	}
	return fmt.Sprintf("%s ring in (%s) over [%s]", r.kind, joinStrings(r.families), joinStrings(names))
}

func joinStrings(ss []string) string {
	out := ""
	for i, s := range ss {
		if i > 0 {
			out += ", "
		}
		out += s
	}
	return out
}

// Unify computes the pushout of two ring descriptors: the least operator ring
// containing both. Kinds must match and shared base variables must carry the
// same action; otherwise ErrRingMismatch is returned. The unified ring lists
// base variables and families in sorted order.
func Unify(a, b *Ring) (*Ring, error) {
	if a == nil {
		return b, nil
	}
	if b == nil {
		return a, nil
	}
	if a == b || a.Equal(b) {
		return a, nil
	}
	if a.kind != b.kind {
		return nil, fmt.Errorf("%w: %s vs %s", ErrRingMismatch, a.kind, b.kind)
	}
	base := append([]BaseVar(nil), a.base...)
	for _, bv := range b.base {
		if abv, ok := a.baseByName[bv.Name]; ok {
			if !abv.Action.Equal(bv.Action) {
				return nil, fmt.Errorf("%w: base variable %q has conflicting operator actions", ErrRingMismatch, bv.Name)
			}
			continue
		}
		base = append(base, bv)
	}
	families := append([]string(nil), a.families...)
	for _, f := range b.families {
		if !a.HasFamily(f) {
			families = append(families, f)
		}
	}
	sort.Slice(base, func(i, j int) bool { return base[i].Name < base[j].Name })
	sort.Strings(families)
	return newRing(a.kind, base, families)
}

// mergeRings is the arithmetic-time variant of Unify: operands of a binary
// operation must live in unifiable rings. A mismatch is a programming error
// and panics.
func mergeRings(a, b *Ring) *Ring {
	r, err := Unify(a, b)
	if err != nil {
		if debug.Debug {
			panic(fmt.Sprintf("%v\n%s", err, debug.Stack()))
		}
		panic(err)
	}
	return r
}
