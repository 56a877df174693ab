// Package system implements systems of differential or difference polynomial
// equations and the elimination machinery around them: SP1 extensions by
// repeated operator application, the SP2 balance condition, and the operator
// resultant computed either through a classical algebraic resultant or
// through recursive iterative elimination.
package system

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/fchapoton/dalgebra/ring"
)

var (
	// ErrEmptySystem is returned when a system is built without equations.
	ErrEmptySystem = errors.New("system: no equations")

	// ErrUnknownVariable is returned when a requested variable is not a
	// family of the unified ring.
	ErrUnknownVariable = errors.New("system: unknown variable")

	// ErrIndexOutOfRange is returned by equation lookups with bad indices.
	ErrIndexOutOfRange = errors.New("system: equation index out of range")

	// ErrBadBounds is returned for malformed extension bound vectors.
	ErrBadBounds = errors.New("system: invalid extension bounds")

	// ErrUnknownAlgorithm is returned for unrecognized algorithm names.
	ErrUnknownAlgorithm = errors.New("system: unknown resultant algorithm")

	// ErrNoExtension is returned when the extension search exhausts its
	// bound without reaching the SP2 condition.
	ErrNoExtension = errors.New("system: no SP2 extension found")

	// ErrNotEnoughEquations is returned when a variable cannot be
	// eliminated for lack of equations containing it.
	ErrNotEnoughEquations = errors.New("system: not enough equations to eliminate variable")

	// ErrDegenerate is returned when the computed resultant is zero.
	ErrDegenerate = errors.New("system: zero resultant, degenerate system")

	// ErrEliminationLeak signals an internal invariant violation: a
	// variable that should have been eliminated survived.
	ErrEliminationLeak = errors.New("system: eliminated variable remains")
)

// System is an immutable ordered collection of operator polynomials together
// with a distinguished subset of main variable families; the remaining
// families act as parameters. Every transformation returns a new System.
type System struct {
	ring       *ring.Ring
	equations  []*ring.Polynomial
	variables  []string
	parameters []string

	mu       sync.Mutex
	extCache map[string]*System
	res      *ring.Polynomial

	algOnce sync.Once
	algVars []ring.VarID

	homOnce     sync.Once
	homogeneous bool

	linOnce   sync.Once
	maxLinear [][]string
}

type config struct {
	ring         *ring.Ring
	variables    []string
	hasVariables bool
}

// Option configures the construction of a System.
type Option func(*config)

// WithRing supplies an explicit ring to unify the equations into.
func WithRing(r *ring.Ring) Option {
	return func(c *config) { c.ring = r }
}

// WithVariables fixes the main variable families of the system. The default
// is every family of the unified ring.
func WithVariables(names ...string) Option {
	return func(c *config) {
		c.variables = names
		c.hasVariables = true
	}
}

// New builds a system from a non-empty list of equations. The common ring is
// the pushout of every equation's ring and the optional explicit one;
// construction fails if they cannot be unified or if a requested variable is
// not a family of the result.
func New(equations []*ring.Polynomial, opts ...Option) (*System, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	if len(equations) == 0 {
		return nil, ErrEmptySystem
	}
	parent := cfg.ring
	for i, eq := range equations {
		var err error
		if parent, err = ring.Unify(parent, eq.Ring()); err != nil {
			return nil, fmt.Errorf("equation %d: %w", i, err)
		}
	}
	if parent == nil {
		return nil, fmt.Errorf("%w: equations carry no operator ring", ring.ErrRingMismatch)
	}

	var variables []string
	if cfg.hasVariables {
		seen := make(map[string]struct{}, len(cfg.variables))
		for _, name := range cfg.variables {
			if !parent.HasFamily(name) {
				return nil, fmt.Errorf("%w: %q is not a variable of %s", ErrUnknownVariable, name, parent)
			}
			if _, dup := seen[name]; !dup {
				seen[name] = struct{}{}
				variables = append(variables, name)
			}
		}
	} else {
		variables = parent.Families()
	}
	varSet := make(map[string]struct{}, len(variables))
	for _, v := range variables {
		varSet[v] = struct{}{}
	}
	var parameters []string
	for _, f := range parent.Families() {
		if _, ok := varSet[f]; !ok {
			parameters = append(parameters, f)
		}
	}

	return &System{
		ring:       parent,
		equations:  append([]*ring.Polynomial(nil), equations...),
		variables:  variables,
		parameters: parameters,
		extCache:   make(map[string]*System),
	}, nil
}

// Ring returns the unified ring of the system.
func (s *System) Ring() *ring.Ring { return s.ring }

// Size returns the number of stored equations.
func (s *System) Size() int { return len(s.equations) }

// Variables returns the main variable families.
func (s *System) Variables() []string {
	return append([]string(nil), s.variables...)
}

// Parameters returns the parameter families.
func (s *System) Parameters() []string {
	return append([]string(nil), s.parameters...)
}

// IsDifferential reports whether the system lives over a differential ring.
func (s *System) IsDifferential() bool { return s.ring.Kind() == ring.Differential }

// IsDifference reports whether the system lives over a difference ring.
func (s *System) IsDifference() bool { return s.ring.Kind() == ring.Difference }

// Ref is an extended equation reference: either a plain index i, or a pair
// (i, k) standing for the i-th equation with the operator applied k times.
type Ref struct {
	index   int
	times   int
	applied bool
}

// At references the i-th stored equation.
func At(i int) Ref { return Ref{index: i} }

// Applied references the i-th equation with the operator applied k times.
func Applied(i, k int) Ref { return Ref{index: i, times: k, applied: true} }

// Equation resolves one extended reference.
func (s *System) Equation(ref Ref) (*ring.Polynomial, error) {
	if ref.index < 0 || ref.index >= len(s.equations) {
		return nil, fmt.Errorf("%w: %d (size %d)", ErrIndexOutOfRange, ref.index, len(s.equations))
	}
	eq := s.equations[ref.index]
	if !ref.applied || ref.times == 0 {
		return eq, nil
	}
	if ref.times < 0 {
		return nil, fmt.Errorf("%w: cannot apply the operator %d times", ErrBadBounds, ref.times)
	}
	return s.ring.Apply(eq, ref.times)
}

// Equations resolves a list of extended references, in the given order and
// with repetitions preserved. Without arguments it returns all equations.
func (s *System) Equations(refs ...Ref) ([]*ring.Polynomial, error) {
	if len(refs) == 0 {
		return append([]*ring.Polynomial(nil), s.equations...), nil
	}
	out := make([]*ring.Polynomial, len(refs))
	for i, ref := range refs {
		eq, err := s.Equation(ref)
		if err != nil {
			return nil, err
		}
		out[i] = eq
	}
	return out, nil
}

// RefSlice resolves slice semantics against the current size: it returns the
// plain references start, start+step, ... excluding stop, with negative
// indices counting from the end. A zero step panics.
func (s *System) RefSlice(start, stop, step int) []Ref {
	if step == 0 {
		panic("system: zero slice step")
	}
	n := len(s.equations)
	clamp := func(i int, low, high int) int {
		if i < 0 {
			i += n
		}
		if i < low {
			return low
		}
		if i > high {
			return high
		}
		return i
	}
	var out []Ref
	if step > 0 {
		for i := clamp(start, 0, n); i < clamp(stop, 0, n); i += step {
			out = append(out, At(i))
		}
	} else {
		for i := clamp(start, -1, n-1); i > clamp(stop, -1, n-1); i += step {
			out = append(out, At(i))
		}
	}
	return out
}

// AllRefs returns plain references to every equation, in order.
func (s *System) AllRefs() []Ref {
	out := make([]Ref, len(s.equations))
	for i := range out {
		out[i] = At(i)
	}
	return out
}

// Subsystem builds a new system from the referenced equations (nil for all)
// over the given variables (nil for the receiver's).
func (s *System) Subsystem(refs []Ref, variables []string) (*System, error) {
	eqs, err := s.Equations(refs...)
	if err != nil {
		return nil, err
	}
	if variables == nil {
		variables = s.variables
	}
	return New(eqs, WithRing(s.ring), WithVariables(variables...))
}

// ChangeVariables returns a system with the same equations but a different
// main-variable partition.
func (s *System) ChangeVariables(variables ...string) (*System, error) {
	return s.Subsystem(nil, variables)
}

// Order returns the maximal operator order of the system, restricted to one
// family when given, over every family when family is empty. It is -1 when
// no matching operator variable appears.
func (s *System) Order(family string) int {
	order := -1
	for _, eq := range s.equations {
		var o int
		if family == "" {
			o = eq.OrderAll()
		} else {
			o = eq.Order(family)
		}
		if o > order {
			order = o
		}
	}
	return order
}

func (s *System) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "System over [%s] with variables [%s]:\n{\n", s.ring, strings.Join(s.variables, ", "))
	for _, eq := range s.equations {
		fmt.Fprintf(&sb, "\t%s == 0\n", eq)
	}
	sb.WriteString("}")
	return sb.String()
}
