package resultant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fchapoton/dalgebra/ring"
)

func testRing(t *testing.T) *ring.Ring {
	t.Helper()
	r, err := ring.NewDifferential([]ring.BaseVar{ring.Indet("x")}, "u")
	require.NoError(t, err)
	return r
}

func TestDixonUnimplemented(t *testing.T) {
	r := testRing(t)
	_, err := Dixon([]*ring.Polynomial{r.MustParse("u_0")}, nil)
	assert.ErrorIs(t, err, ErrNotImplemented)
}

func TestSylvesterResultant(t *testing.T) {
	r := testRing(t)
	u0 := r.Fam("u", 0).Variables()[0]

	// res_{u_0}(u_0 - x, u_0 - 2) vanishes exactly when x = 2
	res, err := Sylvester(r.MustParse("u_0 - x"), r.MustParse("u_0 - 2"), u0)
	require.NoError(t, err)
	want := r.MustParse("x - 2")
	assert.True(t, res.Equal(want) || res.Equal(want.Neg()))

	// shared root: resultant must vanish
	res, err = Sylvester(r.MustParse("u_0^2 - x^2"), r.MustParse("u_0 - x"), u0)
	require.NoError(t, err)
	assert.True(t, res.IsZero())
}

func TestMacaulayLinearForms(t *testing.T) {
	r := testRing(t)
	u0 := r.Fam("u", 0).Variables()[0]
	u1 := r.Fam("u", 1).Variables()[0]

	res, err := Macaulay(
		[]*ring.Polynomial{r.MustParse("u_0 + 2*u_1"), r.MustParse("3*u_0 + 4*u_1")},
		[]ring.VarID{u0, u1},
	)
	require.NoError(t, err)
	// the resultant of two linear forms is their 2x2 determinant, up to sign
	assert.True(t, res.Mul(res).Equal(r.Int(4)))
}

func TestMacaulayQuadraticAndLinear(t *testing.T) {
	r := testRing(t)
	u0 := r.Fam("u", 0).Variables()[0]
	u1 := r.Fam("u", 1).Variables()[0]

	// res(z^2 + w^2, z - w) = 2*w^2 at w = 1, classically 2 up to sign
	res, err := Macaulay(
		[]*ring.Polynomial{r.MustParse("u_0^2 + u_1^2"), r.MustParse("u_0 - u_1")},
		[]ring.VarID{u0, u1},
	)
	require.NoError(t, err)
	assert.True(t, res.Mul(res).Equal(r.Int(4)))
}

func TestMacaulayDegenerate(t *testing.T) {
	r := testRing(t)
	u0 := r.Fam("u", 0).Variables()[0]
	u1 := r.Fam("u", 1).Variables()[0]

	// common root (1 : 1) forces a vanishing resultant
	res, err := Macaulay(
		[]*ring.Polynomial{r.MustParse("u_0 - u_1"), r.MustParse("2*u_0 - 2*u_1")},
		[]ring.VarID{u0, u1},
	)
	if err == nil {
		assert.True(t, res.IsZero())
	} else {
		assert.ErrorIs(t, err, ErrDegenerate)
	}
}

func TestMacaulayValidation(t *testing.T) {
	r := testRing(t)
	u0 := r.Fam("u", 0).Variables()[0]
	u1 := r.Fam("u", 1).Variables()[0]

	// equation/variable count mismatch
	_, err := Macaulay([]*ring.Polynomial{r.MustParse("u_0")}, []ring.VarID{u0, u1})
	assert.ErrorIs(t, err, ErrBadSystem)

	// not homogeneous
	_, err = Macaulay(
		[]*ring.Polynomial{r.MustParse("u_0 + 1"), r.MustParse("u_1")},
		[]ring.VarID{u0, u1},
	)
	assert.ErrorIs(t, err, ErrBadSystem)
}
