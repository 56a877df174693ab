// Package dalgebra manipulates systems of differential and difference
// polynomial equations and computes operator resultants: polynomial relations
// among the parameters that survive once every operator variable has been
// eliminated from the system.
//
// dalgebra is organized as a set of packages:
//   - ring: operator-polynomial rings and their elements
//   - system: equation systems, SP1 extensions and the resultant engine
//   - resultant: the underlying algebraic resultant solvers
//   - matrix: polynomial matrices and Sylvester constructions
//   - encoding: (de)serialization of systems
package dalgebra

import (
	"github.com/blang/semver/v4"
)

// Version of the dalgebra module
var Version = semver.MustParse("0.1.0")
