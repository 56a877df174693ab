package system

import (
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/fchapoton/dalgebra/internal/algoutils"
	"github.com/fchapoton/dalgebra/logger"
	"github.com/fchapoton/dalgebra/matrix"
	"github.com/fchapoton/dalgebra/ring"
)

// iterative eliminates the main variables recursively: linear variables are
// stripped first through pairwise resultants against a small set of pivots,
// then the remaining variables fall one at a time, and a single surviving
// variable family is removed algebraically through Sylvester determinants.
// Forcing AlgorithmIterative explicitly skips the linear-stripping phase.
func (s *System) iterative(cfg resultantConfig) (*ring.Polynomial, error) {
	log := logger.Logger().With().Str("component", "iterative").Logger()

	if cfg.alg != AlgorithmIterative {
		if lin := s.MaximalLinearVariables(); len(lin) > 0 {
			log.Debug().Strs("variables", lin[0]).Msg("stripping linear variables first")
			return s.stripLinear(cfg, lin[0])
		}
		log.Debug().Msg("no linear variables remain, proceeding by univariate eliminations")
	} else {
		log.Debug().Msg("forced iterative elimination, not looking for linear variables")
	}

	if len(s.variables) > 1 {
		return s.eliminateOneVariable(cfg)
	}
	return s.eliminateAlgebraically(cfg)
}

// stripLinear removes the given linear variable families in one pass: the
// equations with the fewest monomials act as base pivots, and every other
// equation combines with them into one resultant free of those families.
func (s *System) stripLinear(cfg resultantConfig, linVars []string) (*ring.Polynomial, error) {
	proj, err := s.ChangeVariables(linVars...)
	if err != nil {
		return nil, err
	}
	ranked := algoutils.IndicesSortedBy(proj.Size(), func(i int) int {
		return proj.equations[i].NumMonomials()
	})
	if len(ranked) <= len(linVars) {
		return nil, fmt.Errorf("%w: %d equations for the %d linear variables %v",
			ErrNotEnoughEquations, len(ranked), len(linVars), linVars)
	}
	base := ranked[:len(linVars)]
	rest := ranked[len(linVars):]

	newEqs := make([]*ring.Polynomial, len(rest))
	var g errgroup.Group
	for slot, eqIdx := range rest {
		slot, eqIdx := slot, eqIdx
		g.Go(func() error {
			refs := algoutils.Map(append(append([]int(nil), base...), eqIdx), At)
			sub, err := proj.Subsystem(refs, nil)
			if err != nil {
				return err
			}
			// auto algorithm on the pairwise subsystems, as for a fresh call
			res, err := sub.Resultant(WithBound(cfg.bound), WithMatrixSink(cfg.sink))
			if err != nil {
				return err
			}
			newEqs[slot] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var remaining []string
	for _, v := range s.variables {
		linear := false
		for _, l := range linVars {
			if v == l {
				linear = true
				break
			}
		}
		if !linear {
			remaining = append(remaining, v)
		}
	}
	if len(remaining) == 0 {
		return nil, fmt.Errorf("%w: linear stripping consumed every variable", ErrNotEnoughEquations)
	}
	next, err := New(newEqs, WithRing(s.ring), WithVariables(remaining...))
	if err != nil {
		return nil, err
	}
	return next.Resultant(cfg.options()...)
}

// variableChoice is the decision record of the multivariate pivot heuristic.
type variableChoice struct {
	family string
	weight int
}

// chooseEliminationVariable weighs each family by summing, over every
// occurrence of family_k in an equation, k raised to the degree of the
// equation in that occurrence; the lightest family is eliminated first
// (earliest declaration wins ties). This is a size heuristic, not an
// optimality claim.
func chooseEliminationVariable(s *System) variableChoice {
	best := variableChoice{family: s.variables[0], weight: eliminationWeight(s, s.variables[0])}
	for _, f := range s.variables[1:] {
		if w := eliminationWeight(s, f); w < best.weight {
			best = variableChoice{family: f, weight: w}
		}
	}
	return best
}

func eliminationWeight(s *System, family string) int {
	c := 0
	for _, eq := range s.equations {
		for _, v := range eq.Variables() {
			if ring.VarIndex(v) >= 0 && ring.VarFamily(v) == family {
				c += intPow(ring.VarIndex(v), eq.DegreeIn(v))
			}
		}
	}
	return c
}

func intPow(base, exp int) int {
	out := 1
	for ; exp > 0; exp-- {
		out *= base
	}
	return out
}

// eliminateOneVariable removes the heuristically best family through
// pairwise resultants against the lowest-order equation containing it, then
// recurses on the remaining families.
func (s *System) eliminateOneVariable(cfg resultantConfig) (*ring.Polynomial, error) {
	log := logger.Logger().With().Str("component", "iterative").Logger()
	choice := chooseEliminationVariable(s)
	v := choice.family
	log.Debug().Str("variable", v).Int("weight", choice.weight).Msg("picked variable to eliminate")

	var remaining []string
	for _, f := range s.variables {
		if f != v {
			remaining = append(remaining, f)
		}
	}

	if s.Order(v) < 0 {
		// the family does not appear at all: drop it and move on
		log.Debug().Str("variable", v).Msg("variable absent from the system, dropping it")
		next, err := s.ChangeVariables(remaining...)
		if err != nil {
			return nil, err
		}
		return next.Resultant(cfg.options()...)
	}

	var withV []int
	var untouched []int
	for i, eq := range s.equations {
		if eq.Order(v) >= 0 {
			withV = append(withV, i)
		} else {
			untouched = append(untouched, i)
		}
	}
	sort.SliceStable(withV, func(a, b int) bool {
		return s.equations[withV[a]].Order(v) < s.equations[withV[b]].Order(v)
	})
	if len(withV) < 2 {
		return nil, fmt.Errorf("%w: %q appears in %d equation(s)", ErrNotEnoughEquations, v, len(withV))
	}
	pivot := withV[0]
	log.Debug().Int("pivot", pivot).Int("pairs", len(withV)-1).Msg("eliminating pairwise against the pivot")

	newEqs := make([]*ring.Polynomial, len(withV)-1)
	var g errgroup.Group
	for slot, eqIdx := range withV[1:] {
		slot, eqIdx := slot, eqIdx
		g.Go(func() error {
			sub, err := s.Subsystem([]Ref{At(pivot), At(eqIdx)}, []string{v})
			if err != nil {
				return err
			}
			res, err := sub.Resultant(cfg.options()...)
			if err != nil {
				return err
			}
			newEqs[slot] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for _, i := range untouched {
		newEqs = append(newEqs, s.equations[i])
	}

	next, err := New(newEqs, WithRing(s.ring), WithVariables(remaining...))
	if err != nil {
		return nil, err
	}
	return next.Resultant(cfg.options()...)
}

// pivotChoice is the decision record of the terminal-phase heuristic.
type pivotChoice struct {
	varIdx      int
	appearances int
}

// choosePivotVariable picks the algebraic variable appearing in the fewest
// equations; ties go to the last occurrence in enumeration order.
// Eliminating rare variables first keeps the intermediate determinants
// small.
func choosePivotVariable(algVars []ring.VarID, algEqs []*ring.Polynomial) pivotChoice {
	best := pivotChoice{varIdx: -1}
	for i, v := range algVars {
		n := 0
		for _, eq := range algEqs {
			if eq.DegreeIn(v) > 0 {
				n++
			}
		}
		if best.varIdx < 0 || n <= best.appearances {
			best = pivotChoice{varIdx: i, appearances: n}
		}
	}
	return best
}

// eliminateAlgebraically handles a single remaining variable family: the
// system is extended to an SP2 configuration and its algebraic variables are
// removed one by one through pairwise Sylvester determinants.
func (s *System) eliminateAlgebraically(cfg resultantConfig) (*ring.Polynomial, error) {
	log := logger.Logger().With().Str("component", "iterative").Logger()
	log.Debug().Strs("variables", s.variables).Msg("eliminating the last family algebraically")

	L, err := s.findExtension(cfg.bound)
	if err != nil {
		return nil, err
	}
	ext, err := s.ExtendByOperation(L)
	if err != nil {
		return nil, err
	}
	algEqs := append([]*ring.Polynomial(nil), ext.equations...)
	algVars := ext.AlgebraicVariables()
	eliminated := ext.AlgebraicVariables()

	for len(algEqs) > 1 && len(algVars) > 0 {
		choice := choosePivotVariable(algVars, algEqs)
		v := algVars[choice.varIdx]
		algVars = append(algVars[:choice.varIdx], algVars[choice.varIdx+1:]...)
		log.Debug().Str("variable", ring.VarString(v)).
			Int("appearances", choice.appearances).
			Int("equations", len(algEqs)).
			Msg("picked algebraic variable")

		// pivot equation: strictly positive, minimal degree in v
		pivotIdx, pivotDeg := -1, 0
		for j, eq := range algEqs {
			if d := eq.DegreeIn(v); d > 0 && (pivotIdx < 0 || d < pivotDeg) {
				pivotIdx, pivotDeg = j, d
			}
		}
		if pivotIdx < 0 {
			// the variable vanished from the surviving equations; dropping
			// it from consideration is all that is left to do
			log.Debug().Str("variable", ring.VarString(v)).Msg("variable no longer present")
			continue
		}
		pivot := algEqs[pivotIdx]
		algEqs = append(algEqs[:pivotIdx], algEqs[pivotIdx+1:]...)
		pivotU := pivot.UnivariateIn(v)

		for j, eq := range algEqs {
			if eq.DegreeIn(v) == 0 {
				continue
			}
			sylMat, err := matrix.Sylvester(pivotU, eq.UnivariateIn(v))
			if err != nil {
				return nil, err
			}
			log.Debug().Int("rows", sylMat.Rows()).Int("cols", sylMat.Cols()).
				Msg("computing sylvester determinant")
			if len(algVars) == 0 && cfg.sink != nil {
				if err := matrix.WriteSparse(cfg.sink, sylMat); err != nil {
					log.Warn().Err(err).Msg("matrix sink write failed")
				}
			}
			det, err := sylMat.Determinant()
			if err != nil {
				return nil, err
			}
			algEqs[j] = det
		}
	}

	// every variable we set out to eliminate must be gone from the survivors
	gone := make(map[ring.VarID]struct{}, len(eliminated))
	for _, v := range eliminated {
		gone[v] = struct{}{}
	}
	for _, eq := range algEqs {
		for _, v := range eq.Variables() {
			if _, bad := gone[v]; bad {
				return nil, fmt.Errorf("%w: %s", ErrEliminationLeak, ring.VarString(v))
			}
		}
	}

	best := algEqs[0]
	bestRank := rankResult(best)
	for _, eq := range algEqs[1:] {
		if r := rankResult(eq); r < bestRank {
			best, bestRank = eq, r
		}
	}
	return best, nil
}

// rankResult orders candidate resultants: small degree and few monomials win.
func rankResult(p *ring.Polynomial) int {
	d := p.Degree()
	return d*d + p.NumMonomials()
}
