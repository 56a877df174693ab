package ring

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"unicode"
)

// Parse builds a polynomial of this ring from its textual form, e.g.
// "x*u_0 + x^2*u_2 - (1-x)*v_0". Identifiers of the form name_k resolve to
// operator variables when name is a declared family; any other identifier
// must be a declared base variable. The accepted syntax is +, -, *, ^,
// parentheses, integer and p/q rational literals.
func (r *Ring) Parse(s string) (*Polynomial, error) {
	p := &parser{ring: r, input: s}
	p.next()
	poly, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, p.errorf("unexpected %q", p.tok.text)
	}
	return poly, nil
}

// MustParse is Parse for hand-written expressions; it panics on error.
func (r *Ring) MustParse(s string) *Polynomial {
	p, err := r.Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokOp // one of + - * ^ / ( )
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

type parser struct {
	ring  *Ring
	input string
	pos   int
	tok   token
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("ring: parse error at offset %d: %s", p.tok.pos, fmt.Sprintf(format, args...))
}

func (p *parser) next() {
	for p.pos < len(p.input) && unicode.IsSpace(rune(p.input[p.pos])) {
		p.pos++
	}
	start := p.pos
	if p.pos >= len(p.input) {
		p.tok = token{kind: tokEOF, pos: start}
		return
	}
	c := p.input[p.pos]
	switch {
	case strings.ContainsRune("+-*^/()", rune(c)):
		p.pos++
		p.tok = token{kind: tokOp, text: string(c), pos: start}
	case c >= '0' && c <= '9':
		for p.pos < len(p.input) && p.input[p.pos] >= '0' && p.input[p.pos] <= '9' {
			p.pos++
		}
		p.tok = token{kind: tokNumber, text: p.input[start:p.pos], pos: start}
	case unicode.IsLetter(rune(c)):
		for p.pos < len(p.input) {
			c := rune(p.input[p.pos])
			if !unicode.IsLetter(c) && !unicode.IsDigit(c) && c != '_' {
				break
			}
			p.pos++
		}
		p.tok = token{kind: tokIdent, text: p.input[start:p.pos], pos: start}
	default:
		p.tok = token{kind: tokOp, text: string(c), pos: start}
	}
}

func (p *parser) accept(op string) bool {
	if p.tok.kind == tokOp && p.tok.text == op {
		p.next()
		return true
	}
	return false
}

func (p *parser) parseExpr() (*Polynomial, error) {
	neg := false
	if p.accept("-") {
		neg = true
	} else {
		p.accept("+")
	}
	out, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	if neg {
		out = out.Neg()
	}
	for {
		switch {
		case p.accept("+"):
			t, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			out = out.Add(t)
		case p.accept("-"):
			t, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			out = out.Sub(t)
		default:
			return out, nil
		}
	}
}

func (p *parser) parseTerm() (*Polynomial, error) {
	out, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for p.accept("*") {
		f, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		out = out.Mul(f)
	}
	return out, nil
}

func (p *parser) parseFactor() (*Polynomial, error) {
	if p.accept("-") {
		f, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return f.Neg(), nil
	}
	base, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if p.accept("^") {
		if p.tok.kind != tokNumber {
			return nil, p.errorf("exponent must be a non-negative integer")
		}
		n, err := strconv.Atoi(p.tok.text)
		if err != nil {
			return nil, p.errorf("bad exponent %q", p.tok.text)
		}
		p.next()
		return base.Pow(n), nil
	}
	return base, nil
}

func (p *parser) parseAtom() (*Polynomial, error) {
	switch p.tok.kind {
	case tokNumber:
		num, ok := new(big.Int).SetString(p.tok.text, 10)
		if !ok {
			return nil, p.errorf("bad number %q", p.tok.text)
		}
		p.next()
		den := big.NewInt(1)
		// a '/' directly between two integer literals is a rational literal
		if p.tok.kind == tokOp && p.tok.text == "/" {
			p.next()
			if p.tok.kind != tokNumber {
				return nil, p.errorf("expected denominator")
			}
			d, ok := new(big.Int).SetString(p.tok.text, 10)
			if !ok || d.Sign() == 0 {
				return nil, p.errorf("bad denominator %q", p.tok.text)
			}
			den = d
			p.next()
		}
		c := p.ring.Int(0)
		c = c.Add(FromRat(new(big.Rat).SetFrac(num, den)))
		return c, nil
	case tokIdent:
		poly, err := p.resolveIdent(p.tok.text)
		if err != nil {
			return nil, err
		}
		p.next()
		return poly, nil
	case tokOp:
		if p.accept("(") {
			inner, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if !p.accept(")") {
				return nil, p.errorf("missing closing parenthesis")
			}
			return inner, nil
		}
	}
	return nil, p.errorf("unexpected %q", p.tok.text)
}

func (p *parser) resolveIdent(name string) (*Polynomial, error) {
	if i := strings.LastIndexByte(name, '_'); i > 0 {
		family, idx := name[:i], name[i+1:]
		if p.ring.HasFamily(family) {
			k, err := strconv.Atoi(idx)
			if err != nil || k < 0 {
				return nil, p.errorf("bad operator index in %q", name)
			}
			return p.ring.Fam(family, k), nil
		}
	}
	if _, ok := p.ring.baseByName[name]; ok {
		return p.ring.Base(name), nil
	}
	if p.ring.HasFamily(name) {
		return nil, p.errorf("family %q must be indexed, e.g. %s_0", name, name)
	}
	return nil, p.errorf("unknown variable %q", name)
}
