package dom

import (
	"testing"

	"github.com/pourover/soup"
)

func TestFromValueObject(t *testing.T) {
	d := FromValue(map[string]any{
		"name": "widget",
		"size": int64(3),
		"tags": []any{"a", "b"},
		"nested": map[string]any{
			"ok": true,
		},
		"none": nil,
	}, "document")

	if err := d.Validate(); err != nil {
		t.Fatalf("Validate = %v", err)
	}
	root := d.Roots()[0].(Node)
	if tag, _ := root.Tag(); tag != "document" {
		t.Fatalf("root tag = %q", tag)
	}

	// Keys are sorted: name, nested, none, size, tags, tags.
	kids := root.Children()
	want := []string{"name", "nested", "none", "size", "tags", "tags"}
	if len(kids) != len(want) {
		t.Fatalf("children = %d, want %d", len(kids), len(want))
	}
	for i, w := range want {
		if tag, _ := kids[i].Tag(); tag != w {
			t.Errorf("child %d tag = %q, want %q", i, tag, w)
		}
	}

	if got := textOf(t, kids[0]); got != "widget" {
		t.Errorf("name = %q", got)
	}
	nestedOK := kids[1].Children()[0]
	if tag, _ := nestedOK.Tag(); tag != "ok" {
		t.Errorf("nested child tag = %q", tag)
	}
	if got := textOf(t, nestedOK); got != "true" {
		t.Errorf("nested ok = %q", got)
	}
	// null fields produce an element with no text child.
	if n := len(kids[2].Children()); n != 0 {
		t.Errorf("null field children = %d, want 0", n)
	}
	if got := textOf(t, kids[3]); got != "3" {
		t.Errorf("size = %q", got)
	}
	if a, b := textOf(t, kids[4]), textOf(t, kids[5]); a != "a" || b != "b" {
		t.Errorf("tags = %q %q", a, b)
	}
}

func TestFromValueTopLevelArray(t *testing.T) {
	d := FromValue([]any{float64(1.5), "x"}, "document")
	root := d.Roots()[0].(Node)
	kids := root.Children()
	if len(kids) != 2 {
		t.Fatalf("children = %d, want 2", len(kids))
	}
	for i, w := range []string{"1.5", "x"} {
		if tag, _ := kids[i].Tag(); tag != "item" {
			t.Errorf("child %d tag = %q, want item", i, tag)
		}
		if got := textOf(t, kids[i]); got != w {
			t.Errorf("item %d = %q, want %q", i, got, w)
		}
	}
}

func TestFromValueScalar(t *testing.T) {
	// A scalar document is a single text node directly under the root
	// element, with no wrapping element in between.
	d := FromValue("plain", "document")
	root := d.Roots()[0].(Node)
	if got := textOf(t, root); got != "plain" {
		t.Errorf("scalar = %q", got)
	}
}

func TestFromValueInterfaceKeyedMap(t *testing.T) {
	d := FromValue(map[any]any{1: "one", "two": int64(2)}, "document")
	root := d.Roots()[0].(Node)
	kids := root.Children()
	if len(kids) != 2 {
		t.Fatalf("children = %d, want 2", len(kids))
	}
	if tag, _ := kids[0].Tag(); tag != "1" {
		t.Errorf("first key = %q, want 1", tag)
	}
	if tag, _ := kids[1].Tag(); tag != "two" {
		t.Errorf("second key = %q, want two", tag)
	}
}

func textOf(t *testing.T, n soup.Node) string {
	t.Helper()
	kids := n.Children()
	if len(kids) != 1 {
		t.Fatalf("expected single text child, got %d children", len(kids))
	}
	s, ok := kids[0].Text()
	if !ok {
		t.Fatal("child is not a text node")
	}
	return s
}
