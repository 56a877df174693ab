// Package resultant implements the algebraic resultant solvers the
// elimination engine dispatches to: the Macaulay resultant of a square
// homogeneous system, the pairwise Sylvester resultant, and a placeholder
// for the Dixon resultant.
package resultant

import (
	"errors"
	"fmt"

	"github.com/fchapoton/dalgebra/matrix"
	"github.com/fchapoton/dalgebra/ring"
)

var (
	// ErrNotImplemented marks a solver that is declared but not available.
	ErrNotImplemented = errors.New("resultant: not implemented")

	// ErrBadSystem is returned when the input does not meet a solver's
	// structural requirements.
	ErrBadSystem = errors.New("resultant: invalid input system")

	// ErrDegenerate is returned when the construction degenerates (zero
	// denominator minor, non-exact division).
	ErrDegenerate = errors.New("resultant: degenerate system")
)

// Dixon would compute the Dixon resultant of the given system. It is not
// implemented and always returns ErrNotImplemented.
func Dixon(polys []*ring.Polynomial, vars []ring.VarID) (*ring.Polynomial, error) {
	return nil, fmt.Errorf("%w: dixon resultant", ErrNotImplemented)
}

// Sylvester computes the resultant of p and q with respect to the single
// variable v, as the determinant of their Sylvester matrix.
func Sylvester(p, q *ring.Polynomial, v ring.VarID) (*ring.Polynomial, error) {
	m, err := matrix.Sylvester(p.UnivariateIn(v), q.UnivariateIn(v))
	if err != nil {
		return nil, err
	}
	return m.Determinant()
}
