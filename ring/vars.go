package ring

import (
	"fmt"
	"strconv"
	"sync"
)

// VarID is a stable interned identifier for a variable. Base-ring variables
// (like x) and operator variables (like u_2) share the same identifier space;
// higher orders of a family are interned lazily as they are referenced.
type VarID uint32

type varKey struct {
	family string
	index  int // -1 for a base-ring variable, >= 0 for family_index
}

var arena = struct {
	mu   sync.RWMutex
	ids  map[varKey]VarID
	keys []varKey
}{ids: make(map[varKey]VarID)}

func internVar(family string, index int) VarID {
	k := varKey{family: family, index: index}
	arena.mu.RLock()
	id, ok := arena.ids[k]
	arena.mu.RUnlock()
	if ok {
		return id
	}
	arena.mu.Lock()
	defer arena.mu.Unlock()
	if id, ok := arena.ids[k]; ok {
		return id
	}
	id = VarID(len(arena.keys))
	arena.keys = append(arena.keys, k)
	arena.ids[k] = id
	return id
}

func varInfo(v VarID) varKey {
	arena.mu.RLock()
	defer arena.mu.RUnlock()
	return arena.keys[v]
}

var freshCounter struct {
	mu sync.Mutex
	n  int
}

// FreshVar interns a variable guaranteed not to collide with any previously
// interned one. It is used for homogenization.
func FreshVar(name string) VarID {
	freshCounter.mu.Lock()
	freshCounter.n++
	n := freshCounter.n
	freshCounter.mu.Unlock()
	return internVar(name+"~"+strconv.Itoa(n), -1)
}

// VarFamily returns the family of v, or its plain name for a base variable.
func VarFamily(v VarID) string { return varInfo(v).family }

// VarIndex returns the operator-application index of v, -1 for a base variable.
func VarIndex(v VarID) int { return varInfo(v).index }

// VarString renders v as it appears in polynomial expressions: "x" or "u_2".
func VarString(v VarID) string {
	k := varInfo(v)
	if k.index < 0 {
		return k.family
	}
	return fmt.Sprintf("%s_%d", k.family, k.index)
}

// CompareVars orders variables canonically: family name first, index second.
// The order is independent of interning order, so every sorted output is
// stable across runs.
func CompareVars(a, b VarID) int {
	if a == b {
		return 0
	}
	ka, kb := varInfo(a), varInfo(b)
	if ka.family != kb.family {
		if ka.family < kb.family {
			return -1
		}
		return 1
	}
	if ka.index != kb.index {
		if ka.index < kb.index {
			return -1
		}
		return 1
	}
	return 0
}
