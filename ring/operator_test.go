package ring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerivativeChainRule(t *testing.T) {
	r, err := NewDifferential([]BaseVar{Indet("x")}, "y")
	require.NoError(t, err)

	d3, err := r.Apply(r.MustParse("y_0^3"), 3)
	require.NoError(t, err)
	assert.True(t, d3.Equal(r.MustParse("3*y_0^2*y_3 + 18*y_0*y_1*y_2 + 6*y_1^3")))
}

func TestDerivativeLeibniz(t *testing.T) {
	r, err := NewDifferential([]BaseVar{Indet("x")}, "y")
	require.NoError(t, err)

	d, err := r.Apply(r.MustParse("x*y_0"), 1)
	require.NoError(t, err)
	assert.True(t, d.Equal(r.MustParse("x*y_1 + y_0")))
}

func TestDerivativeConstants(t *testing.T) {
	r, err := NewDifferential([]BaseVar{Indet("x"), Const("c")}, "y")
	require.NoError(t, err)

	d, err := r.Apply(r.MustParse("c*y_0 + c^2"), 1)
	require.NoError(t, err)
	assert.True(t, d.Equal(r.MustParse("c*y_1")))

	d, err = r.Apply(r.MustParse("7"), 1)
	require.NoError(t, err)
	assert.True(t, d.IsZero())
}

func TestShift(t *testing.T) {
	r, err := NewDifference([]BaseVar{Stepped("n")}, "u")
	require.NoError(t, err)

	s, err := r.Apply(r.MustParse("n*u_0"), 1)
	require.NoError(t, err)
	assert.True(t, s.Equal(r.MustParse("n*u_1 + u_1")))

	// shifts compose: applying twice advances every index by two
	s2, err := r.Apply(r.MustParse("u_0^2 + u_1"), 2)
	require.NoError(t, err)
	assert.True(t, s2.Equal(r.MustParse("u_2^2 + u_3")))
}

func TestShiftFixedBase(t *testing.T) {
	r, err := NewDifference([]BaseVar{Fixed("q")}, "u")
	require.NoError(t, err)

	s, err := r.Apply(r.MustParse("q*u_0"), 1)
	require.NoError(t, err)
	assert.True(t, s.Equal(r.MustParse("q*u_1")))
}

func TestShiftActionParsedElsewhere(t *testing.T) {
	// deserialization parses base-variable actions in a bootstrap ring; the
	// shift must still work on polynomials of the ring built from them
	boot, err := NewDifferential([]BaseVar{Indet("n")}, "w")
	require.NoError(t, err)
	step := boot.MustParse("n + 1")

	r, err := NewDifference([]BaseVar{{Name: "n", Action: step}}, "u")
	require.NoError(t, err)

	s, err := r.Apply(r.MustParse("u_1 - n*u_0"), 1)
	require.NoError(t, err)
	assert.True(t, s.Equal(r.MustParse("u_2 - n*u_1 - u_1")))
}

func TestApplyUndeclaredBase(t *testing.T) {
	r, err := NewDifferential([]BaseVar{Indet("x")}, "y")
	require.NoError(t, err)

	stray := MonoPolynomial(VarPow{Var: FreshVar("t"), Exp: 1})
	assert.Panics(t, func() {
		_, _ = r.Apply(stray, 1)
	})
}

func TestApplyEdgeCases(t *testing.T) {
	r, err := NewDifferential([]BaseVar{Indet("x")}, "y")
	require.NoError(t, err)

	p := r.MustParse("y_2 - y_0")
	same, err := r.Apply(p, 0)
	require.NoError(t, err)
	assert.True(t, same.Equal(p))

	_, err = r.Apply(p, -1)
	assert.Error(t, err)
}
