package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fchapoton/dalgebra/ring"
	"github.com/fchapoton/dalgebra/system"
)

// readSystem parses a plain-text system description. Line directives:
//
//	kind: differential | difference
//	base: x [y ...]          independent base variables
//	constants: c [k ...]     constant base variables
//	families: u [v ...]      operator variable families
//	variables: u [...]       main variables (defaults to every family)
//	eq: u_1 - u_0^2          one equation per line
//
// Blank lines and lines starting with '#' are skipped.
func readSystem(r io.Reader) (*system.System, error) {
	var (
		kind       = ring.Differential
		kindSet    bool
		base       []ring.BaseVar
		families   []string
		variables  []string
		equations  []string
		lineNumber int
	)

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lineNumber++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, rest, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("line %d: missing ':' directive", lineNumber)
		}
		rest = strings.TrimSpace(rest)
		switch strings.TrimSpace(key) {
		case "kind":
			kindSet = true
			switch rest {
			case "differential":
				kind = ring.Differential
			case "difference":
				kind = ring.Difference
			default:
				return nil, fmt.Errorf("line %d: unknown kind %q", lineNumber, rest)
			}
		case "base":
			if !kindSet {
				return nil, fmt.Errorf("line %d: kind must be declared before base variables", lineNumber)
			}
			for _, name := range strings.Fields(rest) {
				base = append(base, baseFor(kind, name))
			}
		case "constants":
			if !kindSet {
				return nil, fmt.Errorf("line %d: kind must be declared before base variables", lineNumber)
			}
			// constant means zero derivative, but identity under a shift
			for _, name := range strings.Fields(rest) {
				if kind == ring.Difference {
					base = append(base, ring.Fixed(name))
				} else {
					base = append(base, ring.Const(name))
				}
			}
		case "families":
			families = append(families, strings.Fields(rest)...)
		case "variables":
			variables = append(variables, strings.Fields(rest)...)
		case "eq":
			equations = append(equations, rest)
		default:
			return nil, fmt.Errorf("line %d: unknown directive %q", lineNumber, key)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(equations) == 0 {
		return nil, fmt.Errorf("no equations given")
	}

	var (
		r2  *ring.Ring
		err error
	)
	if kind == ring.Difference {
		r2, err = ring.NewDifference(base, families...)
	} else {
		r2, err = ring.NewDifferential(base, families...)
	}
	if err != nil {
		return nil, err
	}

	eqs := make([]*ring.Polynomial, len(equations))
	for i, src := range equations {
		if eqs[i], err = r2.Parse(src); err != nil {
			return nil, fmt.Errorf("equation %d: %w", i, err)
		}
	}
	opts := []system.Option{system.WithRing(r2)}
	if len(variables) > 0 {
		opts = append(opts, system.WithVariables(variables...))
	}
	return system.New(eqs, opts...)
}

// baseFor picks the natural action for a declared base variable: derivative 1
// in a differential ring, shift by one step in a difference ring.
func baseFor(kind ring.Kind, name string) ring.BaseVar {
	if kind == ring.Difference {
		return ring.Stepped(name)
	}
	return ring.Indet(name)
}
