package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fchapoton/dalgebra/ring"
)

func diffRing(t *testing.T, families ...string) *ring.Ring {
	t.Helper()
	r, err := ring.NewDifferential([]ring.BaseVar{ring.Indet("x")}, families...)
	require.NoError(t, err)
	return r
}

func mustSystem(t *testing.T, r *ring.Ring, eqs []string, vars ...string) *System {
	t.Helper()
	polys := make([]*ring.Polynomial, len(eqs))
	for i, src := range eqs {
		polys[i] = r.MustParse(src)
	}
	opts := []Option{WithRing(r)}
	if len(vars) > 0 {
		opts = append(opts, WithVariables(vars...))
	}
	s, err := New(polys, opts...)
	require.NoError(t, err)
	return s
}

func TestNewValidation(t *testing.T) {
	r := diffRing(t, "u", "v")

	_, err := New(nil, WithRing(r))
	assert.ErrorIs(t, err, ErrEmptySystem)

	_, err = New([]*ring.Polynomial{r.MustParse("u_0")}, WithRing(r), WithVariables("w"))
	assert.ErrorIs(t, err, ErrUnknownVariable)

	// duplicate variables collapse
	s := mustSystem(t, r, []string{"u_0 + v_0"}, "u", "u")
	assert.Equal(t, []string{"u"}, s.Variables())
	assert.Equal(t, []string{"v"}, s.Parameters())

	// default: every family is a main variable
	s = mustSystem(t, r, []string{"u_0 + v_0"})
	assert.Equal(t, []string{"u", "v"}, s.Variables())
	assert.Empty(t, s.Parameters())
}

func TestEquationRefs(t *testing.T) {
	r := diffRing(t, "u")
	s := mustSystem(t, r, []string{"u_1 - u_0", "u_0 - x"}, "u")

	eq, err := s.Equation(At(0))
	require.NoError(t, err)
	assert.True(t, eq.Equal(r.MustParse("u_1 - u_0")))

	// (i, 0) is the plain equation
	eq0, err := s.Equation(Applied(0, 0))
	require.NoError(t, err)
	assert.True(t, eq0.Equal(r.MustParse("u_1 - u_0")))

	// (i, n) round-trips against direct repeated operator application
	want := r.MustParse("u_1 - u_0")
	for n := 1; n <= 4; n++ {
		var err error
		want, err = r.Apply(want, 1)
		require.NoError(t, err)
		got, err := s.Equation(Applied(0, n))
		require.NoError(t, err)
		assert.True(t, got.Equal(want), "n=%d", n)
	}

	_, err = s.Equation(At(2))
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = s.Equation(At(-1))
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestSubsystemAndChangeVariables(t *testing.T) {
	r := diffRing(t, "u", "v")
	s := mustSystem(t, r, []string{"u_0 - v_0", "u_1 - x", "v_1 - x"}, "u", "v")

	sub, err := s.Subsystem([]Ref{At(0), At(2)}, []string{"v"})
	require.NoError(t, err)
	assert.Equal(t, 2, sub.Size())
	assert.Equal(t, []string{"v"}, sub.Variables())
	assert.Equal(t, []string{"u"}, sub.Parameters())

	// changing to the same variables is the identity up to value
	same, err := s.ChangeVariables(s.Variables()...)
	require.NoError(t, err)
	assert.Equal(t, s.Variables(), same.Variables())
	eqs, err := s.Equations()
	require.NoError(t, err)
	sameEqs, err := same.Equations()
	require.NoError(t, err)
	require.Len(t, sameEqs, len(eqs))
	for i := range eqs {
		assert.True(t, eqs[i].Equal(sameEqs[i]))
	}
}

func TestRefSlice(t *testing.T) {
	r := diffRing(t, "u")
	s := mustSystem(t, r, []string{"u_0", "u_1", "u_2", "u_3"}, "u")

	assert.Equal(t, []Ref{At(0), At(1), At(2), At(3)}, s.RefSlice(0, 4, 1))
	assert.Equal(t, []Ref{At(1), At(3)}, s.RefSlice(1, 4, 2))
	assert.Equal(t, []Ref{At(3), At(2), At(1), At(0)}, s.RefSlice(3, -5, -1))
	assert.Empty(t, s.RefSlice(2, 2, 1))
}

func TestOrder(t *testing.T) {
	r := diffRing(t, "u", "v")
	s := mustSystem(t, r, []string{"u_2 + v_0", "u_0 - x"}, "u", "v")

	assert.Equal(t, 2, s.Order("u"))
	assert.Equal(t, 0, s.Order("v"))
	assert.Equal(t, -1, s.Order("w"))
	assert.Equal(t, 2, s.Order(""))
}

func TestString(t *testing.T) {
	r := diffRing(t, "u")
	s := mustSystem(t, r, []string{"u_1 - u_0"}, "u")

	got := s.String()
	assert.Contains(t, got, "with variables [u]")
	// canonical monomial order puts u_0 before u_1 within the same degree
	assert.Contains(t, got, "-u_0 + u_1 == 0")
}

func TestRingUnification(t *testing.T) {
	ra := diffRing(t, "u")
	rb := diffRing(t, "v")

	s, err := New([]*ring.Polynomial{ra.MustParse("u_0"), rb.MustParse("v_1")})
	require.NoError(t, err)
	assert.Equal(t, []string{"u", "v"}, s.Ring().Families())

	// differential and difference rings never unify
	rc, err := ring.NewDifference([]ring.BaseVar{ring.Stepped("n")}, "w")
	require.NoError(t, err)
	_, err = New([]*ring.Polynomial{ra.MustParse("u_0"), rc.MustParse("w_0")})
	assert.ErrorIs(t, err, ring.ErrRingMismatch)
}
