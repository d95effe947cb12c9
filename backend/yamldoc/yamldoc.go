// Package yamldoc makes YAML documents queryable using the same value
// mapping as jsondoc: mappings become key-named elements, sequences repeat
// their field name per item, scalars become text.
package yamldoc

import (
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/pourover/soup"
	"github.com/pourover/soup/internal/dom"
)

// RootTag names the synthetic element wrapping the top-level value.
const RootTag = "document"

// Parse decodes YAML and returns its queryable form.
func Parse(data []byte) (*soup.Soup, error) {
	d, err := ParseDocument(data)
	if err != nil {
		return nil, err
	}
	return d.Soup(), nil
}

// ParseDocument is Parse returning the underlying arena.
func ParseDocument(data []byte) (*dom.Document, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("yamldoc: %w", err)
	}
	return dom.FromValue(v, RootTag), nil
}
