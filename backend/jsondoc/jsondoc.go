// Package jsondoc makes JSON values queryable. Objects become key-named
// elements, arrays repeat their field name per item, scalars become text.
package jsondoc

import (
	"fmt"

	"github.com/ohler55/ojg/oj"
	"github.com/pourover/soup"
	"github.com/pourover/soup/internal/dom"
)

// RootTag names the synthetic element wrapping the top-level value.
const RootTag = "document"

// Parse decodes JSON and returns its queryable form.
func Parse(data []byte) (*soup.Soup, error) {
	d, err := ParseDocument(data)
	if err != nil {
		return nil, err
	}
	return d.Soup(), nil
}

// ParseDocument is Parse returning the underlying arena.
func ParseDocument(data []byte) (*dom.Document, error) {
	v, err := oj.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("jsondoc: %w", err)
	}
	return dom.FromValue(v, RootTag), nil
}

// FromValue wraps an already-decoded value (maps, slices, scalars).
func FromValue(v any) *soup.Soup {
	return dom.FromValue(v, RootTag).Soup()
}
