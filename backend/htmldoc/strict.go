// Package htmldoc parses HTML into queryable documents. It ships two
// parsers: ParseStrict, a fast hand-rolled tokenizer that errors on
// malformed input, and Parse, a lenient parser built on x/net/html that
// works through broken markup.
package htmldoc

import (
	"fmt"
	"strings"

	"github.com/pourover/soup"
	"github.com/pourover/soup/internal/dom"
)

// voidElements cannot contain children and take no closing tag.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// rawElements contain opaque text that is not parsed as markup.
var rawElements = map[string]bool{
	"script": true, "style": true,
}

// ParseStrict parses src and fails on the first malformed construct.
func ParseStrict(src string) (*soup.Soup, error) {
	d, err := ParseStrictDocument(src)
	if err != nil {
		return nil, err
	}
	return d.Soup(), nil
}

// ParseStrictDocument is ParseStrict returning the underlying arena.
func ParseStrictDocument(src string) (*dom.Document, error) {
	p := &strictParser{src: src, b: dom.NewBuilder()}
	if err := p.parseNodes(dom.Root, ""); err != nil {
		return nil, err
	}
	return p.b.Document(), nil
}

type strictParser struct {
	src string
	pos int
	b   *dom.Builder
}

func (p *strictParser) errorf(format string, args ...any) error {
	return fmt.Errorf("htmldoc: offset %d: %s", p.pos, fmt.Sprintf(format, args...))
}

func (p *strictParser) rest() string { return p.src[p.pos:] }

func (p *strictParser) eof() bool { return p.pos >= len(p.src) }

func (p *strictParser) skipSpace() {
	for !p.eof() {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r', '\f':
			p.pos++
		default:
			return
		}
	}
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

// parseNodes consumes siblings under parent until EOF (closeTag == "") or
// until the matching close tag.
func (p *strictParser) parseNodes(parent dom.NodeID, closeTag string) error {
	for !p.eof() {
		rest := p.rest()
		switch {
		case strings.HasPrefix(rest, "</"):
			if closeTag == "" {
				return p.errorf("unexpected close tag")
			}
			return p.parseCloseTag(closeTag)
		case strings.HasPrefix(rest, "<!--"):
			end := strings.Index(rest[4:], "-->")
			if end < 0 {
				return p.errorf("unterminated comment")
			}
			p.b.Comment(parent, rest[4:4+end])
			p.pos += 4 + end + 3
		case hasPrefixFold(rest, "<!doctype "):
			end := strings.IndexByte(rest, '>')
			if end < 0 {
				return p.errorf("unterminated doctype")
			}
			p.b.Doctype(parent, rest[len("<!doctype "):end])
			p.pos += end + 1
		case strings.HasPrefix(rest, "<"):
			if len(rest) < 2 || !isNameStart(rest[1]) {
				return p.errorf("malformed tag")
			}
			if err := p.parseElement(parent); err != nil {
				return err
			}
		default:
			end := strings.IndexByte(rest, '<')
			if end < 0 {
				end = len(rest)
			}
			p.b.Text(parent, decodeEntities(rest[:end]))
			p.pos += end
		}
	}
	if closeTag != "" {
		return p.errorf("missing close tag for %q", closeTag)
	}
	return nil
}

// parseCloseTag consumes "</name [ws] >" and checks the name.
func (p *strictParser) parseCloseTag(want string) error {
	p.pos += 2 // "</"
	name := p.readName()
	if !strings.EqualFold(name, want) {
		return p.errorf("close tag %q does not match open tag %q", name, want)
	}
	p.skipSpace()
	if p.eof() || p.src[p.pos] != '>' {
		return p.errorf("malformed close tag %q", name)
	}
	p.pos++
	return nil
}

func isNameStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNameRune(c byte) bool {
	return isNameStart(c) || (c >= '0' && c <= '9')
}

func (p *strictParser) readName() string {
	start := p.pos
	for !p.eof() && isNameRune(p.src[p.pos]) {
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *strictParser) parseElement(parent dom.NodeID) error {
	p.pos++ // "<"
	name := p.readName()
	if name == "" {
		return p.errorf("missing element name")
	}
	attrs, selfClosed, err := p.parseAttrs()
	if err != nil {
		return err
	}
	lower := strings.ToLower(name)
	switch {
	case voidElements[lower]:
		p.b.Element(parent, name, attrs)
		return nil
	case rawElements[lower]:
		if selfClosed {
			p.b.RawElement(parent, name, attrs, "")
			return nil
		}
		content, err := p.readRawContent(name)
		if err != nil {
			return err
		}
		p.b.RawElement(parent, name, attrs, strings.TrimSpace(content))
		return nil
	case selfClosed:
		p.b.Element(parent, name, attrs)
		return nil
	default:
		el := p.b.Element(parent, name, attrs)
		return p.parseNodes(el, name)
	}
}

// parseAttrs consumes attributes up to and including ">" or "/>".
func (p *strictParser) parseAttrs() ([]soup.Attr, bool, error) {
	var attrs []soup.Attr
	for {
		p.skipSpace()
		if p.eof() {
			return nil, false, p.errorf("unterminated start tag")
		}
		switch {
		case strings.HasPrefix(p.rest(), "/>"):
			p.pos += 2
			return attrs, true, nil
		case p.src[p.pos] == '>':
			p.pos++
			return attrs, false, nil
		}
		name := p.readAttrName()
		if name == "" {
			return nil, false, p.errorf("malformed attribute")
		}
		value := ""
		p.skipSpace()
		if !p.eof() && p.src[p.pos] == '=' {
			p.pos++
			p.skipSpace()
			v, err := p.readAttrValue()
			if err != nil {
				return nil, false, err
			}
			value = v
		}
		if !hasAttr(attrs, name) {
			attrs = append(attrs, soup.Attr{Name: name, Value: decodeEntities(value)})
		}
	}
}

func hasAttr(attrs []soup.Attr, name string) bool {
	for _, a := range attrs {
		if a.Name == name {
			return true
		}
	}
	return false
}

func (p *strictParser) readAttrName() string {
	start := p.pos
	for !p.eof() {
		c := p.src[p.pos]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' ||
			c == '"' || c == '\'' || c == '>' || c == '/' || c == '=' {
			break
		}
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *strictParser) readAttrValue() (string, error) {
	if p.eof() {
		return "", p.errorf("missing attribute value")
	}
	quote := p.src[p.pos]
	if quote == '"' || quote == '\'' {
		p.pos++
		end := strings.IndexByte(p.rest(), quote)
		if end < 0 {
			return "", p.errorf("unterminated quoted attribute value")
		}
		v := p.src[p.pos : p.pos+end]
		p.pos += end + 1
		return v, nil
	}
	start := p.pos
	for !p.eof() {
		c := p.src[p.pos]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' ||
			c == '"' || c == '\'' || c == '=' || c == '<' || c == '>' || c == '`' {
			break
		}
		p.pos++
	}
	if p.pos == start {
		return "", p.errorf("missing attribute value")
	}
	return p.src[start:p.pos], nil
}

// readRawContent consumes up to the matching close tag of a raw element,
// returning the opaque body.
func (p *strictParser) readRawContent(name string) (string, error) {
	rest := p.rest()
	marker := "</" + strings.ToLower(name)
	idx := strings.Index(strings.ToLower(rest), marker)
	if idx < 0 {
		return "", p.errorf("missing close tag for raw element %q", name)
	}
	content := rest[:idx]
	p.pos += idx
	return content, p.parseCloseTag(name)
}
