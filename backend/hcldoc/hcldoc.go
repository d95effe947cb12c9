// Package hcldoc makes HCL configuration queryable. A block becomes an
// element named after the block type, block labels become attributes
// ("name", then "label1", "label2", ...), and body attributes become
// element attributes with their literal values.
package hcldoc

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/pourover/soup"
	"github.com/pourover/soup/internal/dom"
	"github.com/zclconf/go-cty/cty"
)

// Parse reads an HCL config file and returns its queryable form. The tree
// is rooted at a single "file" element carrying a "path" attribute.
func Parse(filename string, src []byte) (*soup.Soup, error) {
	d, err := ParseDocument(filename, src)
	if err != nil {
		return nil, err
	}
	return d.Soup(), nil
}

// ParseDocument is Parse returning the underlying arena.
func ParseDocument(filename string, src []byte) (*dom.Document, error) {
	f, diags := hclsyntax.ParseConfig(src, filename, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return nil, fmt.Errorf("hcldoc: %w", diags)
	}
	body, ok := f.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("hcldoc: unexpected body type %T", f.Body)
	}
	b := dom.NewBuilder()
	attrs := append([]soup.Attr{{Name: "path", Value: filename}}, bodyAttrs(body, src)...)
	root := b.Element(dom.Root, "file", attrs)
	appendBlocks(b, root, body, src)
	return b.Document(), nil
}

func appendBlocks(b *dom.Builder, parent dom.NodeID, body *hclsyntax.Body, src []byte) {
	for _, blk := range body.Blocks {
		attrs := labelAttrs(blk.Labels)
		attrs = append(attrs, bodyAttrs(blk.Body, src)...)
		el := b.Element(parent, blk.Type, attrs)
		appendBlocks(b, el, blk.Body, src)
	}
}

func labelAttrs(labels []string) []soup.Attr {
	var attrs []soup.Attr
	for i, l := range labels {
		name := "name"
		if i > 0 {
			name = "label" + strconv.Itoa(i)
		}
		attrs = append(attrs, soup.Attr{Name: name, Value: l})
	}
	return attrs
}

// bodyAttrs renders a body's attributes in source order. Literal values are
// evaluated; anything else (references, function calls) keeps its source
// text.
func bodyAttrs(body *hclsyntax.Body, src []byte) []soup.Attr {
	hclAttrs := make([]*hclsyntax.Attribute, 0, len(body.Attributes))
	for _, a := range body.Attributes {
		hclAttrs = append(hclAttrs, a)
	}
	sort.Slice(hclAttrs, func(i, j int) bool {
		return hclAttrs[i].SrcRange.Start.Byte < hclAttrs[j].SrcRange.Start.Byte
	})
	attrs := make([]soup.Attr, 0, len(hclAttrs))
	for _, a := range hclAttrs {
		attrs = append(attrs, soup.Attr{Name: a.Name, Value: attrValue(a, src)})
	}
	return attrs
}

func attrValue(a *hclsyntax.Attribute, src []byte) string {
	v, diags := a.Expr.Value(nil)
	if !diags.HasErrors() {
		if s, ok := ctyString(v); ok {
			return s
		}
	}
	r := a.Expr.Range()
	if r.Start.Byte >= 0 && r.End.Byte <= len(src) && r.Start.Byte <= r.End.Byte {
		return string(src[r.Start.Byte:r.End.Byte])
	}
	return ""
}

func ctyString(v cty.Value) (string, bool) {
	if v.IsNull() || !v.IsKnown() {
		return "", false
	}
	switch v.Type() {
	case cty.String:
		return v.AsString(), true
	case cty.Number:
		return v.AsBigFloat().Text('g', -1), true
	case cty.Bool:
		return strconv.FormatBool(v.True()), true
	default:
		return "", false
	}
}
