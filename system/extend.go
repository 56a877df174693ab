package system

import (
	"fmt"
)

// ExtendByOperation builds the SP1 extension of the system for the given
// per-equation bounds: the result contains, for every equation i, the
// operator applied 0, 1, ..., Ls[i] times to it, in that order. The bounds
// vector must have exactly Size() non-negative entries. Extensions are
// memoized per receiver by the exact bounds.
func (s *System) ExtendByOperation(Ls []int) (*System, error) {
	if len(Ls) != len(s.equations) {
		return nil, fmt.Errorf("%w: got %d bounds for %d equations", ErrBadBounds, len(Ls), len(s.equations))
	}
	for _, l := range Ls {
		if l < 0 {
			return nil, fmt.Errorf("%w: negative bound %d", ErrBadBounds, l)
		}
	}

	key := fmt.Sprint(Ls)
	s.mu.Lock()
	ext, ok := s.extCache[key]
	s.mu.Unlock()
	if ok {
		return ext, nil
	}

	var refs []Ref
	for i, l := range Ls {
		for k := 0; k <= l; k++ {
			refs = append(refs, Applied(i, k))
		}
	}
	ext, err := s.Subsystem(refs, s.variables)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if cached, ok := s.extCache[key]; ok {
		ext = cached
	} else {
		s.extCache[key] = ext
	}
	s.mu.Unlock()
	return ext, nil
}
