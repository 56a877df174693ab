package system

import (
	"fmt"

	"github.com/fchapoton/dalgebra/logger"
)

// findExtension searches for a bounds vector whose SP1 extension satisfies
// SP2. Candidates are enumerated by increasing total weight, so the search
// favors small extensions. Correctness only needs some satisfying vector
// within the bound, not a minimal one.
func (s *System) findExtension(bound int) ([]int, error) {
	if bound < 0 {
		return nil, fmt.Errorf("%w: negative search bound %d", ErrBadBounds, bound)
	}
	log := logger.Logger().With().Str("component", "extension-search").Logger()
	size := s.Size()
	var found []int
	for weight := 0; weight < bound*size && found == nil; weight++ {
		forEachBoundedVector(weight, size, bound-1, func(L []int) bool {
			log.Trace().Ints("L", L).Msg("trying extension")
			ext, err := s.ExtendByOperation(L)
			if err != nil {
				return false
			}
			if ext.IsSP2() {
				found = append([]int(nil), L...)
				log.Debug().Ints("L", L).Msg("found valid extension")
				return true
			}
			return false
		})
	}
	if found == nil {
		return nil, fmt.Errorf("%w: within bound %d", ErrNoExtension, bound)
	}
	return found, nil
}

// forEachBoundedVector enumerates the vectors of the given length with
// components in [0, maxPart] summing to total; f returning true stops the
// enumeration early.
func forEachBoundedVector(total, length, maxPart int, f func([]int) bool) bool {
	if maxPart < 0 {
		return false
	}
	v := make([]int, length)
	var rec func(pos, left int) bool
	rec = func(pos, left int) bool {
		if pos == length-1 {
			if left > maxPart {
				return false
			}
			v[pos] = left
			return f(v)
		}
		hi := left
		if hi > maxPart {
			hi = maxPart
		}
		for e := hi; e >= 0; e-- {
			if left-e > (length-1-pos)*maxPart {
				continue
			}
			v[pos] = e
			if rec(pos+1, left-e) {
				return true
			}
		}
		return false
	}
	if length == 0 {
		return total == 0 && f(v)
	}
	return rec(0, total)
}
