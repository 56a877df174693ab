// Package matrix provides dense matrices of polynomials, the Sylvester
// construction and a fraction-free determinant, as needed by the elimination
// procedures of the system package.
package matrix

import (
	"errors"
	"fmt"

	"github.com/fchapoton/dalgebra/ring"
)

var (
	// ErrShape is returned for invalid dimensions or out-of-shape inputs.
	ErrShape = errors.New("matrix: invalid shape")
)

// Matrix is a dense rows x cols matrix of polynomials. A nil entry is zero.
type Matrix struct {
	rows, cols int
	data       []*ring.Polynomial
}

func New(rows, cols int) (*Matrix, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrShape, rows, cols)
	}
	return &Matrix{rows: rows, cols: cols, data: make([]*ring.Polynomial, rows*cols)}, nil
}

func (m *Matrix) Rows() int { return m.rows }
func (m *Matrix) Cols() int { return m.cols }

func (m *Matrix) At(r, c int) *ring.Polynomial {
	if p := m.data[r*m.cols+c]; p != nil {
		return p
	}
	return ring.Zero()
}

func (m *Matrix) Set(r, c int, p *ring.Polynomial) {
	m.data[r*m.cols+c] = p
}

// Sylvester builds the Sylvester matrix of two univariate polynomials given
// by their coefficient lists (constant term first, as produced by
// ring.Polynomial.UnivariateIn). The determinant of the result is the
// resultant of the two polynomials. At least one of the inputs must have
// positive degree.
func Sylvester(pc, qc []*ring.Polynomial) (*Matrix, error) {
	pc, qc = trim(pc), trim(qc)
	m, n := len(pc)-1, len(qc)-1
	if m < 0 || n < 0 {
		return nil, fmt.Errorf("%w: sylvester matrix of a zero polynomial", ErrShape)
	}
	if m == 0 && n == 0 {
		return nil, fmt.Errorf("%w: sylvester matrix of two constants", ErrShape)
	}
	out, _ := New(m+n, m+n)
	// n rows of p coefficients, then m rows of q coefficients, highest first
	for i := 0; i < n; i++ {
		for j := 0; j <= m; j++ {
			out.Set(i, i+j, pc[m-j])
		}
	}
	for i := 0; i < m; i++ {
		for j := 0; j <= n; j++ {
			out.Set(n+i, i+j, qc[n-j])
		}
	}
	return out, nil
}

func trim(coeffs []*ring.Polynomial) []*ring.Polynomial {
	i := len(coeffs)
	for i > 0 && (coeffs[i-1] == nil || coeffs[i-1].IsZero()) {
		i--
	}
	return coeffs[:i]
}

// Determinant computes the determinant by fraction-free Bareiss elimination;
// every division performed is exact, so the entries never leave the
// polynomial ring.
func (m *Matrix) Determinant() (*ring.Polynomial, error) {
	if m.rows != m.cols {
		return nil, fmt.Errorf("%w: determinant of a %dx%d matrix", ErrShape, m.rows, m.cols)
	}
	n := m.rows
	if n == 0 {
		return ring.FromInt64(1), nil
	}
	// work on a copy
	w := make([][]*ring.Polynomial, n)
	for i := 0; i < n; i++ {
		w[i] = make([]*ring.Polynomial, n)
		for j := 0; j < n; j++ {
			w[i][j] = m.At(i, j)
		}
	}
	sign := 1
	prev := ring.FromInt64(1)
	for k := 0; k < n-1; k++ {
		pivot := -1
		for i := k; i < n; i++ {
			if !w[i][k].IsZero() {
				pivot = i
				break
			}
		}
		if pivot < 0 {
			return ring.Zero(), nil
		}
		if pivot != k {
			w[pivot], w[k] = w[k], w[pivot]
			sign = -sign
		}
		for i := k + 1; i < n; i++ {
			for j := k + 1; j < n; j++ {
				num := w[k][k].Mul(w[i][j]).Sub(w[i][k].Mul(w[k][j]))
				q, err := ring.DivExact(num, prev)
				if err != nil {
					return nil, fmt.Errorf("matrix: bareiss division failed: %w", err)
				}
				w[i][j] = q
			}
			w[i][k] = ring.Zero()
		}
		prev = w[k][k]
	}
	det := w[n-1][n-1]
	if sign < 0 {
		det = det.Neg()
	}
	return det, nil
}
