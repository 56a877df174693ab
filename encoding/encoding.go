// Package encoding serializes equation systems to a versioned CBOR envelope.
//
// Polynomials travel as their canonical text form: it is stable across runs,
// survives ring rebuilds that preserve names, and keeps the envelope readable
// with any CBOR diagnostic tool.
package encoding

import (
	"errors"
	"fmt"
	"io"

	"github.com/blang/semver/v4"
	"github.com/fxamacker/cbor/v2"

	"github.com/fchapoton/dalgebra"
	"github.com/fchapoton/dalgebra/ring"
	"github.com/fchapoton/dalgebra/system"
)

var (
	ErrBadMagic    = errors.New("encoding: bad magic")
	ErrBadVersion  = errors.New("encoding: unsupported format version")
	ErrBadEnvelope = errors.New("encoding: malformed envelope")
)

// magic prefixes every serialized system. The trailing byte is the format
// version; bump it on any incompatible envelope change.
var magic = [4]byte{'d', 'a', 'g', 1}

type baseVarEnvelope struct {
	Name   string `cbor:"1,keyasint"`
	Action string `cbor:"2,keyasint"`
}

type envelope struct {
	Version   string            `cbor:"1,keyasint"`
	Kind      uint8             `cbor:"2,keyasint"`
	Base      []baseVarEnvelope `cbor:"3,keyasint"`
	Families  []string          `cbor:"4,keyasint"`
	Variables []string          `cbor:"5,keyasint"`
	Equations []string          `cbor:"6,keyasint"`
}

// Write serializes the system to w.
func Write(w io.Writer, s *system.System) (int64, error) {
	r := s.Ring()
	env := envelope{
		Version:   dalgebra.Version.String(),
		Kind:      uint8(r.Kind()),
		Families:  r.Families(),
		Variables: s.Variables(),
	}
	for _, b := range r.BaseVars() {
		env.Base = append(env.Base, baseVarEnvelope{Name: b.Name, Action: b.Action.String()})
	}
	eqs, err := s.Equations()
	if err != nil {
		return 0, err
	}
	for _, eq := range eqs {
		env.Equations = append(env.Equations, eq.String())
	}

	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return 0, err
	}
	body, err := em.Marshal(&env)
	if err != nil {
		return 0, err
	}
	n, err := w.Write(magic[:])
	if err != nil {
		return int64(n), err
	}
	m, err := w.Write(body)
	return int64(n + m), err
}

// Read deserializes a system written by Write. The ring is rebuilt from the
// envelope; base-variable actions are parsed in a bootstrap ring carrying
// only the base variables themselves.
func Read(rd io.Reader) (*system.System, error) {
	data, err := io.ReadAll(rd)
	if err != nil {
		return nil, err
	}
	if len(data) < len(magic) || data[0] != magic[0] || data[1] != magic[1] || data[2] != magic[2] {
		return nil, ErrBadMagic
	}
	if data[3] != magic[3] {
		return nil, fmt.Errorf("%w: %d", ErrBadVersion, data[3])
	}

	var env envelope
	if err := cbor.Unmarshal(data[len(magic):], &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadEnvelope, err)
	}
	if _, err := semver.Parse(env.Version); err != nil {
		return nil, fmt.Errorf("%w: bad version %q", ErrBadEnvelope, env.Version)
	}

	base, err := decodeBase(env.Base)
	if err != nil {
		return nil, err
	}
	var r *ring.Ring
	switch ring.Kind(env.Kind) {
	case ring.Differential:
		r, err = ring.NewDifferential(base, env.Families...)
	case ring.Difference:
		r, err = ring.NewDifference(base, env.Families...)
	default:
		return nil, fmt.Errorf("%w: unknown ring kind %d", ErrBadEnvelope, env.Kind)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadEnvelope, err)
	}

	eqs := make([]*ring.Polynomial, len(env.Equations))
	for i, src := range env.Equations {
		if eqs[i], err = r.Parse(src); err != nil {
			return nil, fmt.Errorf("%w: equation %d: %v", ErrBadEnvelope, i, err)
		}
	}
	return system.New(eqs, system.WithRing(r), system.WithVariables(env.Variables...))
}

// decodeBase parses base-variable actions inside a bootstrap ring over the
// declared base names with a throwaway family, so that an action may
// reference any base variable.
func decodeBase(in []baseVarEnvelope) ([]ring.BaseVar, error) {
	names := make([]ring.BaseVar, len(in))
	for i, b := range in {
		names[i] = ring.Indet(b.Name)
	}
	boot, err := ring.NewDifferential(names, "bootstrap")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadEnvelope, err)
	}
	out := make([]ring.BaseVar, len(in))
	for i, b := range in {
		action, err := boot.Parse(b.Action)
		if err != nil {
			return nil, fmt.Errorf("%w: action of %q: %v", ErrBadEnvelope, b.Name, err)
		}
		out[i] = ring.BaseVar{Name: b.Name, Action: action}
	}
	return out, nil
}
