package encoding

import (
	"bytes"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fchapoton/dalgebra/ring"
	"github.com/fchapoton/dalgebra/system"
)

func buildSystem(t *testing.T, eqs []string) *system.System {
	t.Helper()
	r, err := ring.NewDifferential([]ring.BaseVar{ring.Indet("x"), ring.Const("c")}, "u", "v")
	require.NoError(t, err)
	polys := make([]*ring.Polynomial, len(eqs))
	for i, src := range eqs {
		polys[i] = r.MustParse(src)
	}
	s, err := system.New(polys, system.WithRing(r), system.WithVariables("u"))
	require.NoError(t, err)
	return s
}

func TestRoundTrip(t *testing.T) {
	s := buildSystem(t, []string{"x*u_0 + x^2*u_2 - (1-x)*v_0", "v_1 - v_2 + c*u_1"})

	var buf bytes.Buffer
	n, err := Write(&buf, s)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	back, err := Read(&buf)
	require.NoError(t, err)

	assert.Equal(t, s.Variables(), back.Variables())
	assert.Equal(t, s.Parameters(), back.Parameters())
	assert.True(t, s.Ring().Equal(back.Ring()))

	want, err := s.Equations()
	require.NoError(t, err)
	got, err := back.Equations()
	require.NoError(t, err)
	require.Len(t, got, len(want))
	for i := range want {
		assert.True(t, want[i].Equal(got[i]), "equation %d", i)
	}
}

func TestRoundTripDifference(t *testing.T) {
	r, err := ring.NewDifference([]ring.BaseVar{ring.Stepped("n")}, "u")
	require.NoError(t, err)
	s, err := system.New([]*ring.Polynomial{r.MustParse("u_1 - n*u_0")}, system.WithRing(r))
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = Write(&buf, s)
	require.NoError(t, err)
	back, err := Read(&buf)
	require.NoError(t, err)

	assert.Equal(t, ring.Difference, back.Ring().Kind())
	// the shift action on the base variable survives the round trip
	shifted, err := back.Equation(system.Applied(0, 1))
	require.NoError(t, err)
	assert.True(t, shifted.Equal(r.MustParse("u_2 - n*u_1 - u_1")))
}

func TestReadRejectsGarbage(t *testing.T) {
	_, err := Read(bytes.NewReader(nil))
	assert.ErrorIs(t, err, ErrBadMagic)

	_, err = Read(bytes.NewReader([]byte("nope")))
	assert.ErrorIs(t, err, ErrBadMagic)

	_, err = Read(bytes.NewReader([]byte{'d', 'a', 'g', 99}))
	assert.ErrorIs(t, err, ErrBadVersion)

	_, err = Read(bytes.NewReader([]byte{'d', 'a', 'g', 1, 0xff, 0xff}))
	assert.ErrorIs(t, err, ErrBadEnvelope)
}

func TestRoundTripProperty(t *testing.T) {
	r, err := ring.NewDifferential([]ring.BaseVar{ring.Indet("x")}, "u")
	require.NoError(t, err)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)
	properties.Property("read(write(system)) preserves every equation", prop.ForAll(
		func(coeffs []int64) bool {
			if len(coeffs) == 0 {
				return true
			}
			polys := make([]*ring.Polynomial, 0, len(coeffs))
			for i, c := range coeffs {
				p := r.Fam("u", i+1).Sub(r.Fam("u", i).Mul(r.Int(c))).Add(r.Base("x"))
				polys = append(polys, p)
			}
			s, err := system.New(polys, system.WithRing(r))
			if err != nil {
				return false
			}
			var buf bytes.Buffer
			if _, err := Write(&buf, s); err != nil {
				return false
			}
			back, err := Read(&buf)
			if err != nil {
				return false
			}
			got, err := back.Equations()
			if err != nil || len(got) != len(polys) {
				return false
			}
			for i := range polys {
				if !polys[i].Equal(got[i]) {
					return false
				}
			}
			return true
		},
		gen.SliceOfN(3, gen.Int64Range(-9, 9)),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
