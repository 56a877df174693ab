package ring

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func diffRing(t *testing.T, families ...string) *Ring {
	t.Helper()
	r, err := NewDifferential([]BaseVar{Indet("x")}, families...)
	require.NoError(t, err)
	return r
}

func TestArithmetic(t *testing.T) {
	r := diffRing(t, "u")

	p := r.MustParse("u_0 + x")
	q := r.MustParse("u_0 - x")

	assert.True(t, p.Add(q).Equal(r.MustParse("2*u_0")))
	assert.True(t, p.Sub(q).Equal(r.MustParse("2*x")))
	assert.True(t, p.Mul(q).Equal(r.MustParse("u_0^2 - x^2")))
	assert.True(t, p.Neg().Add(p).IsZero())
	assert.True(t, r.MustParse("u_0 + 1").Pow(2).Equal(r.MustParse("u_0^2 + 2*u_0 + 1")))
	assert.True(t, p.Pow(0).Equal(r.Int(1)))
}

func TestDegreeAndOrder(t *testing.T) {
	r := diffRing(t, "u", "v")
	p := r.MustParse("x^3*u_2 + u_0*v_1^2")

	assert.Equal(t, 4, p.Degree())
	assert.Equal(t, 1, p.DegreeIn(r.Fam("u", 2).Variables()[0]))
	assert.Equal(t, 2, p.Order("u"))
	assert.Equal(t, 1, p.Order("v"))
	assert.Equal(t, -1, p.Order("w"))
	assert.Equal(t, 2, p.OrderAll())
	assert.Equal(t, -1, Zero().OrderAll())
}

func TestIsLinear(t *testing.T) {
	r := diffRing(t, "u", "v")

	// linear in u and in v separately, not jointly
	p := r.MustParse("x*u_1*v_0 + u_0")
	assert.True(t, p.IsLinear([]string{"u"}))
	assert.True(t, p.IsLinear([]string{"v"}))
	assert.False(t, p.IsLinear([]string{"u", "v"}))

	assert.False(t, r.MustParse("u_0^2").IsLinear([]string{"u"}))
	assert.True(t, r.MustParse("x^5 + 1").IsLinear([]string{"u", "v"}))
}

func TestHomogenize(t *testing.T) {
	r := diffRing(t, "u")
	u0 := r.Fam("u", 0).Variables()[0]
	u1 := r.Fam("u", 1).Variables()[0]
	vars := []VarID{u0, u1}

	hom := r.MustParse("u_0^2 - u_1^2")
	assert.True(t, hom.IsHomogeneousIn(vars))
	assert.True(t, hom.HomogenizeWith(vars, FreshVar("h")).Equal(hom))

	h := FreshVar("h")
	inhom := r.MustParse("u_0^2 + u_1 + 3")
	assert.False(t, inhom.IsHomogeneousIn(vars))
	lifted := inhom.HomogenizeWith(vars, h)
	assert.True(t, lifted.IsHomogeneousIn(append([]VarID{h}, vars...)))
	// setting h=1 recovers the original
	recovered := lifted.Subst(map[VarID]*Polynomial{h: FromInt64(1)})
	assert.True(t, recovered.Equal(inhom))
}

func TestUnivariateIn(t *testing.T) {
	r := diffRing(t, "u")
	u0 := r.Fam("u", 0).Variables()[0]

	p := r.MustParse("x*u_0^2 + u_1*u_0 + 7")
	coeffs := p.UnivariateIn(u0)
	require.Len(t, coeffs, 3)
	assert.True(t, coeffs[0].Equal(r.MustParse("7")))
	assert.True(t, coeffs[1].Equal(r.MustParse("u_1")))
	assert.True(t, coeffs[2].Equal(r.MustParse("x")))
}

func TestSubst(t *testing.T) {
	r := diffRing(t, "u")
	u0 := r.Fam("u", 0).Variables()[0]

	p := r.MustParse("u_0^2 + u_0 + 1")
	got := p.Subst(map[VarID]*Polynomial{u0: r.MustParse("x - 1")})
	assert.True(t, got.Equal(r.MustParse("x^2 - x + 1")))
}

func TestDivExact(t *testing.T) {
	r := diffRing(t, "u")
	f := r.MustParse("u_0^2 - x^2")
	g := r.MustParse("u_0 - x")

	q, err := DivExact(f, g)
	require.NoError(t, err)
	assert.True(t, q.Equal(r.MustParse("u_0 + x")))

	_, err = DivExact(r.MustParse("u_0^2 + 1"), g)
	assert.ErrorIs(t, err, ErrInexactDivision)
}

func TestCoefficientOf(t *testing.T) {
	r := diffRing(t, "u")
	u0 := r.Fam("u", 0).Variables()[0]

	p := r.MustParse("3/2*u_0^2 - x")
	c := p.CoefficientOf(Monomial{{Var: u0, Exp: 2}})
	assert.Equal(t, 0, c.Cmp(big.NewRat(3, 2)))
	assert.Equal(t, 0, p.CoefficientOf(Monomial{{Var: u0, Exp: 5}}).Sign())
}

func TestVariablesCanonicalOrder(t *testing.T) {
	r := diffRing(t, "u", "v")
	p := r.MustParse("v_2 + u_1 + x + v_0")

	var names []string
	for _, v := range p.Variables() {
		names = append(names, VarString(v))
	}
	assert.Equal(t, []string{"u_1", "v_0", "v_2", "x"}, names)
}
