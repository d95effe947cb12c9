// Package xmldoc parses XML into queryable documents via encoding/xml's
// token stream.
package xmldoc

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/pourover/soup"
	"github.com/pourover/soup/internal/dom"
)

// Parse reads an XML document and returns its queryable form.
func Parse(r io.Reader) (*soup.Soup, error) {
	d, err := ParseDocument(r)
	if err != nil {
		return nil, err
	}
	return d.Soup(), nil
}

// ParseString is Parse over a string.
func ParseString(src string) (*soup.Soup, error) {
	return Parse(strings.NewReader(src))
}

// ParseDocument is Parse returning the underlying arena.
func ParseDocument(r io.Reader) (*dom.Document, error) {
	dec := xml.NewDecoder(r)
	b := dom.NewBuilder()
	stack := []dom.NodeID{dom.Root}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("xmldoc: %w", err)
		}
		parent := stack[len(stack)-1]
		switch t := tok.(type) {
		case xml.StartElement:
			attrs := make([]soup.Attr, 0, len(t.Attr))
			for _, a := range t.Attr {
				// Names are reduced to their local part; namespace
				// handling is out of scope.
				attrs = append(attrs, soup.Attr{Name: a.Name.Local, Value: a.Value})
			}
			el := b.Element(parent, t.Name.Local, attrs)
			stack = append(stack, el)
		case xml.EndElement:
			if len(stack) == 1 {
				return nil, fmt.Errorf("xmldoc: unbalanced close tag %q", t.Name.Local)
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			b.Text(parent, string(t))
		case xml.Comment:
			b.Comment(parent, string(t))
		case xml.Directive:
			d := string(t)
			if rest, ok := strings.CutPrefix(d, "DOCTYPE "); ok {
				b.Doctype(parent, rest)
			}
		}
		// xml.ProcInst is skipped: processing instructions are not
		// addressable by any predicate.
	}
	if len(stack) != 1 {
		return nil, fmt.Errorf("xmldoc: unexpected end of input")
	}
	return b.Document(), nil
}
