package selector

import (
	"fmt"
	"strings"

	"github.com/pourover/soup"
)

// Parse compiles a small CSS-like expression into a selector value.
//
// Supported syntax:
//
//	tag            element name
//	*              any node
//	#value         id attribute
//	.token         class token
//	[name]         attribute present
//	[name=value]   attribute equals
//	[name~=expr]   attribute matches regexp (regex capability required)
//
// An unquoted value runs to the next whitespace or ']', so URLs and regex
// metacharacters need no quoting: [href=/docs], [href~=^https]. Values
// containing whitespace or ']' must be quoted with '...' or "...".
//	A B            B with ancestor A
//	A > B          B with parent A
//	A + B          B directly preceded by sibling A
//	A, B           either
//
// Pattern errors and capability errors surface here, at construction.
func Parse(input string) (soup.Selector, error) {
	toks, err := lex(input)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	sel, err := p.parseGroup()
	if err != nil {
		return nil, err
	}
	if !p.at(tokEOF) {
		return nil, p.unexpected()
	}
	return sel, nil
}

// MustParse is Parse for expressions known valid at compile time.
func MustParse(input string) soup.Selector {
	sel, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return sel
}

type tokKind int

const (
	tokEOF tokKind = iota
	tokIdent
	tokString
	tokStar
	tokHash
	tokDot
	tokLBracket
	tokRBracket
	tokEquals
	tokMatches
	tokGreater
	tokPlus
	tokComma
	tokSpace
)

type token struct {
	kind tokKind
	text string
	pos  int
}

func isIdentRune(r byte) bool {
	return r == '-' || r == '_' || r == ':' ||
		(r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func lex(input string) ([]token, error) {
	var toks []token
	i := 0
	depth := 0
	for i < len(input) {
		c := input[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			j := i
			for j < len(input) && (input[j] == ' ' || input[j] == '\t' || input[j] == '\n' || input[j] == '\r') {
				j++
			}
			toks = append(toks, token{kind: tokSpace, pos: i})
			i = j
		case c == '*':
			toks = append(toks, token{kind: tokStar, pos: i})
			i++
		case c == '#':
			toks = append(toks, token{kind: tokHash, pos: i})
			i++
		case c == '.':
			toks = append(toks, token{kind: tokDot, pos: i})
			i++
		case c == '[':
			toks = append(toks, token{kind: tokLBracket, pos: i})
			depth++
			i++
		case c == ']':
			toks = append(toks, token{kind: tokRBracket, pos: i})
			if depth > 0 {
				depth--
			}
			i++
		case c == '=':
			toks = append(toks, token{kind: tokEquals, pos: i})
			i++
			toks, i = lexBracketValue(toks, input, i, depth)
		case c == '~':
			if i+1 >= len(input) || input[i+1] != '=' {
				return nil, fmt.Errorf("selector: expected '=' after '~' at offset %d", i)
			}
			toks = append(toks, token{kind: tokMatches, pos: i})
			i += 2
			toks, i = lexBracketValue(toks, input, i, depth)
		case c == '>':
			toks = append(toks, token{kind: tokGreater, pos: i})
			i++
		case c == '+':
			toks = append(toks, token{kind: tokPlus, pos: i})
			i++
		case c == ',':
			toks = append(toks, token{kind: tokComma, pos: i})
			i++
		case c == '"' || c == '\'':
			end := strings.IndexByte(input[i+1:], c)
			if end < 0 {
				return nil, fmt.Errorf("selector: unterminated string at offset %d", i)
			}
			toks = append(toks, token{kind: tokString, text: input[i+1 : i+1+end], pos: i})
			i += end + 2
		case isIdentRune(c):
			j := i
			for j < len(input) && isIdentRune(input[j]) {
				j++
			}
			toks = append(toks, token{kind: tokIdent, text: input[i:j], pos: i})
			i = j
		default:
			return nil, fmt.Errorf("selector: unexpected %q at offset %d", string(c), i)
		}
	}
	toks = append(toks, token{kind: tokEOF, pos: len(input)})
	return toks, nil
}

// lexBracketValue reads the unquoted value after '=' or '~=' inside an
// attribute bracket: everything up to whitespace, ']' or a quote. Attribute
// values routinely carry URLs and regex metacharacters ("/docs", "^https")
// that are not selector syntax, so outside-bracket rules do not apply to
// them. Quoted values fall through to the normal string case.
func lexBracketValue(toks []token, input string, i, depth int) ([]token, int) {
	if depth == 0 {
		return toks, i
	}
	for i < len(input) && (input[i] == ' ' || input[i] == '\t' || input[i] == '\n' || input[i] == '\r') {
		i++
	}
	j := i
	for j < len(input) {
		c := input[j]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == ']' || c == '"' || c == '\'' {
			break
		}
		j++
	}
	if j > i {
		toks = append(toks, token{kind: tokIdent, text: input[i:j], pos: i})
	}
	return toks, j
}

type parser struct {
	toks []token
	i    int
}

func (p *parser) peek() token    { return p.toks[p.i] }
func (p *parser) next() token    { t := p.toks[p.i]; p.i++; return t }
func (p *parser) at(k tokKind) bool { return p.toks[p.i].kind == k }

func (p *parser) skipSpace() {
	for p.at(tokSpace) {
		p.i++
	}
}

func (p *parser) unexpected() error {
	t := p.peek()
	if t.kind == tokEOF {
		return fmt.Errorf("selector: unexpected end of expression")
	}
	return fmt.Errorf("selector: unexpected token at offset %d", t.pos)
}

// parseGroup: sequence { ',' sequence }
func (p *parser) parseGroup() (soup.Selector, error) {
	first, err := p.parseSequence()
	if err != nil {
		return nil, err
	}
	alts := []soup.Selector{first}
	for {
		p.skipSpace()
		if !p.at(tokComma) {
			break
		}
		p.next()
		p.skipSpace()
		alt, err := p.parseSequence()
		if err != nil {
			return nil, err
		}
		alts = append(alts, alt)
	}
	if len(alts) == 1 {
		return alts[0], nil
	}
	return Or(alts...), nil
}

// parseSequence: simple { combinator simple }
func (p *parser) parseSequence() (soup.Selector, error) {
	p.skipSpace()
	left, err := p.parseSimple()
	if err != nil {
		return nil, err
	}
	for {
		spaced := p.at(tokSpace)
		p.skipSpace()
		switch {
		case p.at(tokGreater):
			p.next()
			p.skipSpace()
			right, err := p.parseSimple()
			if err != nil {
				return nil, err
			}
			left = Child(left, right)
		case p.at(tokPlus):
			p.next()
			p.skipSpace()
			right, err := p.parseSimple()
			if err != nil {
				return nil, err
			}
			left = AdjacentTo(left, right)
		case spaced && p.startsSimple():
			right, err := p.parseSimple()
			if err != nil {
				return nil, err
			}
			left = Descendant(left, right)
		default:
			return left, nil
		}
	}
}

func (p *parser) startsSimple() bool {
	switch p.peek().kind {
	case tokIdent, tokStar, tokHash, tokDot, tokLBracket:
		return true
	}
	return false
}

// parseSimple: a conjunction of tag/id/class/attribute parts.
func (p *parser) parseSimple() (soup.Selector, error) {
	var parts []soup.Selector
	switch p.peek().kind {
	case tokIdent:
		parts = append(parts, Tag(p.next().text))
	case tokStar:
		p.next()
		parts = append(parts, Any())
	}
	for {
		switch p.peek().kind {
		case tokHash:
			p.next()
			if !p.at(tokIdent) {
				return nil, p.unexpected()
			}
			parts = append(parts, ID(p.next().text))
		case tokDot:
			p.next()
			if !p.at(tokIdent) {
				return nil, p.unexpected()
			}
			parts = append(parts, Class(p.next().text))
		case tokLBracket:
			part, err := p.parseAttr()
			if err != nil {
				return nil, err
			}
			parts = append(parts, part)
		default:
			if len(parts) == 0 {
				return nil, p.unexpected()
			}
			if len(parts) == 1 {
				return parts[0], nil
			}
			return And(parts...), nil
		}
	}
}

// parseAttr: '[' name ( ('=' | '~=') value )? ']'
func (p *parser) parseAttr() (soup.Selector, error) {
	p.next() // consume '['
	p.skipSpace()
	if !p.at(tokIdent) {
		return nil, p.unexpected()
	}
	name := p.next().text
	p.skipSpace()
	switch p.peek().kind {
	case tokRBracket:
		p.next()
		return AttrPresent(name), nil
	case tokEquals:
		p.next()
		p.skipSpace()
		value, err := p.attrValue()
		if err != nil {
			return nil, err
		}
		if err := p.closeBracket(); err != nil {
			return nil, err
		}
		return Attr(name, value), nil
	case tokMatches:
		p.next()
		p.skipSpace()
		expr, err := p.attrValue()
		if err != nil {
			return nil, err
		}
		if err := p.closeBracket(); err != nil {
			return nil, err
		}
		return AttrPattern(name, expr)
	default:
		return nil, p.unexpected()
	}
}

func (p *parser) attrValue() (string, error) {
	switch p.peek().kind {
	case tokIdent, tokString:
		return p.next().text, nil
	}
	return "", p.unexpected()
}

func (p *parser) closeBracket() error {
	p.skipSpace()
	if !p.at(tokRBracket) {
		return p.unexpected()
	}
	p.next()
	return nil
}
