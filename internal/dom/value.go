package dom

import (
	"fmt"
	"sort"
	"strconv"
)

// FromValue converts a decoded JSON/YAML-like value (maps, slices, scalars)
// into a Document rooted at a single element named rootTag. Object fields
// become key-named child elements, array items repeat the key of the array,
// and scalars become text nodes.
//
// Go maps carry no insertion order, so object keys are sorted to keep
// document order deterministic across runs.
func FromValue(v any, rootTag string) *Document {
	b := NewBuilder()
	root := b.Element(Root, rootTag, nil)
	appendValue(b, root, v)
	return b.Document()
}

func appendValue(b *Builder, parent NodeID, v any) {
	switch val := v.(type) {
	case map[string]any:
		for _, k := range sortedKeys(val) {
			appendField(b, parent, k, val[k])
		}
	case map[any]any:
		m := make(map[string]any, len(val))
		for k, child := range val {
			m[fmt.Sprint(k)] = child
		}
		appendValue(b, parent, m)
	case []any:
		for _, item := range val {
			appendField(b, parent, "item", item)
		}
	case nil:
		// null carries no text payload
	default:
		b.Text(parent, scalarString(val))
	}
}

func appendField(b *Builder, parent NodeID, key string, v any) {
	switch val := v.(type) {
	case []any:
		// Arrays repeat the field name, one element per item.
		for _, item := range val {
			el := b.Element(parent, key, nil)
			appendValue(b, el, item)
		}
	default:
		el := b.Element(parent, key, nil)
		appendValue(b, el, val)
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func scalarString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case uint64:
		return strconv.FormatUint(s, 10)
	case int:
		return strconv.Itoa(s)
	case float64:
		return strconv.FormatFloat(s, 'g', -1, 64)
	default:
		return fmt.Sprint(s)
	}
}
