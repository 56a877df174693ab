package system

import (
	"fmt"
	"io"

	"github.com/fchapoton/dalgebra/internal/algoutils"
	"github.com/fchapoton/dalgebra/logger"
	"github.com/fchapoton/dalgebra/resultant"
	"github.com/fchapoton/dalgebra/ring"
)

// Algorithm selects how the algebraic resultant of an extended system is
// computed.
type Algorithm string

const (
	AlgorithmAuto      Algorithm = "auto"
	AlgorithmIterative Algorithm = "iterative"
	AlgorithmDixon     Algorithm = "dixon"
	AlgorithmMacaulay  Algorithm = "macaulay"
)

type resultantConfig struct {
	bound int
	alg   Algorithm
	sink  io.Writer
}

// ResultantOption configures a resultant computation.
type ResultantOption func(*resultantConfig)

// WithBound sets the search bound for SP1 extensions (default 10).
func WithBound(bound int) ResultantOption {
	return func(c *resultantConfig) { c.bound = bound }
}

// WithAlgorithm forces a resultant algorithm (default AlgorithmAuto).
func WithAlgorithm(alg Algorithm) ResultantOption {
	return func(c *resultantConfig) { c.alg = alg }
}

// WithMatrixSink installs a diagnostic sink receiving a sparse snapshot of
// the Sylvester matrix computed in the final elimination step. It is purely
// informational and never affects the result.
func WithMatrixSink(w io.Writer) ResultantOption {
	return func(c *resultantConfig) { c.sink = w }
}

func (c resultantConfig) options() []ResultantOption {
	return []ResultantOption{WithBound(c.bound), WithAlgorithm(c.alg), WithMatrixSink(c.sink)}
}

// Resultant computes the operator resultant of the system: a polynomial in
// the parameters only that vanishes whenever the system has a common
// solution in the main variables. The result is memoized per system; systems
// are immutable, so the first computed value is returned to every caller.
//
// AlgorithmAuto resolves to AlgorithmMacaulay for systems linear in their
// main variables and to AlgorithmIterative otherwise. A failure of the
// Macaulay construction propagates; there is no silent fallback.
func (s *System) Resultant(opts ...ResultantOption) (*ring.Polynomial, error) {
	cfg := resultantConfig{bound: 10, alg: AlgorithmAuto}
	for _, opt := range opts {
		opt(&cfg)
	}
	switch cfg.alg {
	case AlgorithmAuto, AlgorithmIterative, AlgorithmDixon, AlgorithmMacaulay:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, cfg.alg)
	}

	s.mu.Lock()
	if s.res != nil {
		res := s.res
		s.mu.Unlock()
		return res, nil
	}
	s.mu.Unlock()

	log := logger.Logger().With().Str("component", "resultant").Logger()
	alg := cfg.alg
	if alg == AlgorithmAuto {
		alg = s.decideAlgorithm()
		log.Debug().Str("algorithm", string(alg)).Msg("algorithm decided automatically")
	} else {
		log.Debug().Str("algorithm", string(alg)).Msg("algorithm forced")
	}

	var (
		out *ring.Polynomial
		err error
	)
	switch alg {
	case AlgorithmDixon:
		out, err = resultant.Dixon(s.equations, s.AlgebraicVariables())
	case AlgorithmMacaulay:
		out, err = s.macaulayResultant(cfg)
	case AlgorithmIterative:
		out, err = s.iterative(cfg)
	}
	if err != nil {
		return nil, err
	}
	if out.IsZero() {
		return nil, fmt.Errorf("%w: algorithm %s", ErrDegenerate, alg)
	}

	s.mu.Lock()
	if s.res == nil {
		s.res = out
	}
	out = s.res
	s.mu.Unlock()
	return out, nil
}

// decideAlgorithm picks the (hopefully) most efficient algorithm: linear
// systems go to the Macaulay resultant, anything else to iterative
// elimination.
func (s *System) decideAlgorithm() Algorithm {
	if s.IsLinear() {
		return AlgorithmMacaulay
	}
	return AlgorithmIterative
}

// macaulayResultant extends the system to an SP2 configuration, homogenizes
// the algebraic collapse and hands it to the Macaulay solver.
func (s *System) macaulayResultant(cfg resultantConfig) (*ring.Polynomial, error) {
	L, err := s.findExtension(cfg.bound)
	if err != nil {
		return nil, err
	}
	ext, err := s.ExtendByOperation(L)
	if err != nil {
		return nil, err
	}
	vars := ext.AlgebraicVariables()
	eqs := append([]*ring.Polynomial(nil), ext.equations...)
	if !ext.IsHomogeneous() {
		h := ring.FreshVar("h")
		eqs = algoutils.Map(eqs, func(eq *ring.Polynomial) *ring.Polynomial {
			return eq.HomogenizeWith(vars, h)
		})
		vars = append(vars, h)
	}
	log := logger.Logger().With().Str("component", "resultant").Logger()
	log.Debug().
		Ints("L", L).
		Int("equations", len(eqs)).
		Int("variables", len(vars)).
		Msg("computing macaulay resultant of the extension")
	return resultant.Macaulay(eqs, vars)
}
