package system

import (
	"sort"

	"github.com/bits-and-blooms/bitset"
	"github.com/fchapoton/dalgebra/ring"
)

// AlgebraicVariables returns every variable instance family_k appearing in
// the system whose family is a main variable, in canonical order. These are
// the variables of the algebraic collapse of the system.
func (s *System) AlgebraicVariables() []ring.VarID {
	s.algOnce.Do(func() {
		mains := make(map[string]struct{}, len(s.variables))
		for _, f := range s.variables {
			mains[f] = struct{}{}
		}
		seen := make(map[ring.VarID]struct{})
		for _, eq := range s.equations {
			for _, v := range eq.Variables() {
				if ring.VarIndex(v) < 0 {
					continue
				}
				if _, ok := mains[ring.VarFamily(v)]; ok {
					seen[v] = struct{}{}
				}
			}
		}
		vars := make([]ring.VarID, 0, len(seen))
		for v := range seen {
			vars = append(vars, v)
		}
		sort.Slice(vars, func(i, j int) bool { return ring.CompareVars(vars[i], vars[j]) < 0 })
		s.algVars = vars
	})
	return append([]ring.VarID(nil), s.algVars...)
}

// parameterVariables returns the variable instances of the parameter
// families, in canonical order.
func (s *System) parameterVariables() []ring.VarID {
	params := make(map[string]struct{}, len(s.parameters))
	for _, f := range s.parameters {
		params[f] = struct{}{}
	}
	seen := make(map[ring.VarID]struct{})
	for _, eq := range s.equations {
		for _, v := range eq.Variables() {
			if ring.VarIndex(v) < 0 {
				continue
			}
			if _, ok := params[ring.VarFamily(v)]; ok {
				seen[v] = struct{}{}
			}
		}
	}
	vars := make([]ring.VarID, 0, len(seen))
	for v := range seen {
		vars = append(vars, v)
	}
	sort.Slice(vars, func(i, j int) bool { return ring.CompareVars(vars[i], vars[j]) < 0 })
	return vars
}

// IsHomogeneous reports whether every equation is homogeneous as a plain
// polynomial in the algebraic variables of the system.
func (s *System) IsHomogeneous() bool {
	s.homOnce.Do(func() {
		vars := s.AlgebraicVariables()
		s.homogeneous = true
		for _, eq := range s.equations {
			if !eq.IsHomogeneousIn(vars) {
				s.homogeneous = false
				return
			}
		}
	})
	return s.homogeneous
}

// IsLinear reports whether every equation is linear in the given variable
// families, defaulting to the system's main variables.
func (s *System) IsLinear(families ...string) bool {
	if families == nil {
		families = s.variables
	}
	for _, eq := range s.equations {
		if !eq.IsLinear(families) {
			return false
		}
	}
	return true
}

// MaximalLinearVariables returns the maximal subsets of the main variables
// in which the system is linear, largest first. Supersets of a known
// non-linear subset are pruned without testing: linearity is monotone under
// taking subsets.
func (s *System) MaximalLinearVariables() [][]string {
	s.linOnce.Do(func() {
		n := len(s.variables)
		var rejected, allowed []*bitset.BitSet
		for size := 1; size <= n; size++ {
			forEachCombination(n, size, func(idx []int) {
				b := bitset.New(uint(n))
				for _, i := range idx {
					b.Set(uint(i))
				}
				for _, r := range rejected {
					if b.IsSuperSet(r) {
						return
					}
				}
				fams := make([]string, len(idx))
				for j, i := range idx {
					fams[j] = s.variables[i]
				}
				if s.IsLinear(fams...) {
					allowed = append(allowed, b)
				} else {
					rejected = append(rejected, b)
				}
			})
		}
		// allowed is ordered by size; keep only inclusion-maximal sets,
		// largest first
		var maximal []*bitset.BitSet
		for i := len(allowed) - 1; i >= 0; i-- {
			keep := true
			for _, m := range maximal {
				if m.IsSuperSet(allowed[i]) {
					keep = false
					break
				}
			}
			if keep {
				maximal = append(maximal, allowed[i])
			}
		}
		out := make([][]string, len(maximal))
		for i, m := range maximal {
			var fams []string
			for j := 0; j < n; j++ {
				if m.Test(uint(j)) {
					fams = append(fams, s.variables[j])
				}
			}
			out[i] = fams
		}
		s.maxLinear = out
	})
	return s.maxLinear
}

// forEachCombination enumerates the size-k subsets of {0..n-1} in
// lexicographic order.
func forEachCombination(n, k int, f func(idx []int)) {
	idx := make([]int, k)
	var rec func(pos, start int)
	rec = func(pos, start int) {
		if pos == k {
			f(idx)
			return
		}
		for i := start; i <= n-(k-pos); i++ {
			idx[pos] = i
			rec(pos+1, i+1)
		}
	}
	rec(0, 0)
}

// IsSP2 checks the balance condition required by the classical algebraic
// resultant: with n algebraic variables and m equations, n == m for a
// homogeneous system and n == m-1 otherwise.
func (s *System) IsSP2() bool {
	n := len(s.AlgebraicVariables())
	m := s.Size()
	if s.IsHomogeneous() {
		return n == m
	}
	return n == m-1
}
