package soup_test

import (
	"errors"
	"testing"

	"github.com/pourover/soup"
	"github.com/pourover/soup/internal/dom"
	"github.com/pourover/soup/selector"
)

// buildPage builds the canonical fixture:
//
//	<div class="outer">
//	  <p class="a">X</p>
//	  <p class="b">Y</p>
//	</div>
//
// Five nodes total: div, p.a, "X", p.b, "Y".
func buildPage(t *testing.T) *soup.Soup {
	t.Helper()
	b := dom.NewBuilder()
	div := b.Element(dom.Root, "div", []soup.Attr{{Name: "class", Value: "outer"}})
	p1 := b.Element(div, "p", []soup.Attr{{Name: "class", Value: "a"}})
	b.Text(p1, "X")
	p2 := b.Element(div, "p", []soup.Attr{{Name: "class", Value: "b"}})
	b.Text(p2, "Y")
	return b.Document().Soup()
}

func tagOf(n soup.Node) string {
	tag, _ := n.Tag()
	return tag
}

func TestFindTagAndClass(t *testing.T) {
	doc := buildPage(t)

	ms, err := doc.Find(selector.And(selector.Tag("p"), selector.Class("a")))
	if err != nil {
		t.Fatalf("Find returned error: %v", err)
	}
	if ms.Len() != 1 {
		t.Fatalf("matches = %d, want 1", ms.Len())
	}
	if got, _ := ms.At(0).Attr("class"); got != "a" {
		t.Errorf("class = %q, want %q", got, "a")
	}
}

func TestFindDescendantDocumentOrder(t *testing.T) {
	doc := buildPage(t)

	ms, err := doc.Find(selector.Descendant(selector.Tag("div"), selector.Tag("p")))
	if err != nil {
		t.Fatalf("Find returned error: %v", err)
	}
	if ms.Len() != 2 {
		t.Fatalf("matches = %d, want 2", ms.Len())
	}
	first, _ := ms.At(0).Attr("class")
	second, _ := ms.At(1).Attr("class")
	if first != "a" || second != "b" {
		t.Errorf("order = [%s %s], want [a b]", first, second)
	}
}

func TestLimitIsPrefixOfUnlimited(t *testing.T) {
	doc := buildPage(t)

	full, err := doc.Find(selector.Any())
	if err != nil {
		t.Fatalf("Find returned error: %v", err)
	}
	if full.Len() != 5 {
		t.Fatalf("unlimited matches = %d, want 5", full.Len())
	}
	for k := 0; k <= full.Len(); k++ {
		limited, err := doc.FindWith(selector.Any(), soup.Query{Limit: k})
		if err != nil {
			t.Fatalf("limit %d: %v", k, err)
		}
		if limited.Len() != k {
			t.Fatalf("limit %d: matches = %d", k, limited.Len())
		}
		for i := 0; i < k; i++ {
			if limited.At(i) != full.At(i) {
				t.Errorf("limit %d: element %d differs from unlimited prefix", k, i)
			}
		}
	}
}

func TestScopeChildren(t *testing.T) {
	doc := buildPage(t)

	// The document's only immediate child is the div.
	ms, err := doc.FindWith(selector.Any(), soup.Query{Scope: soup.ScopeChildren, Limit: soup.NoLimit})
	if err != nil {
		t.Fatalf("FindWith returned error: %v", err)
	}
	if ms.Len() != 1 || tagOf(ms.At(0)) != "div" {
		t.Fatalf("children scope matched %d nodes, want just the div", ms.Len())
	}

	ms, err = doc.FindWith(selector.Tag("p"), soup.Query{Scope: soup.ScopeChildren, Limit: soup.NoLimit})
	if err != nil {
		t.Fatalf("FindWith returned error: %v", err)
	}
	if ms.Len() != 0 {
		t.Errorf("p is not an immediate child, matches = %d", ms.Len())
	}
}

func TestNilSelectorMatchesEverything(t *testing.T) {
	doc := buildPage(t)
	ms, err := doc.Find(nil)
	if err != nil {
		t.Fatalf("Find returned error: %v", err)
	}
	if ms.Len() != 5 {
		t.Errorf("matches = %d, want 5", ms.Len())
	}
}

func TestFirst(t *testing.T) {
	doc := buildPage(t)

	n, err := doc.First(selector.Tag("p"))
	if err != nil {
		t.Fatalf("First returned error: %v", err)
	}
	if got, _ := n.Attr("class"); got != "a" {
		t.Errorf("first p class = %q, want %q", got, "a")
	}

	if _, err := doc.First(selector.Tag("table")); !errors.Is(err, soup.ErrNoMatch) {
		t.Errorf("err = %v, want ErrNoMatch", err)
	}
}

// loopNode fakes a backend whose children links never bottom out.
type loopNode struct {
	depth int
}

func (l loopNode) Tag() (string, bool)         { return "loop", true }
func (l loopNode) Attr(string) (string, bool)  { return "", false }
func (l loopNode) Attrs() []soup.Attr          { return nil }
func (l loopNode) Parent() (soup.Node, bool)   { return nil, false }
func (l loopNode) Text() (string, bool)        { return "", false }
func (l loopNode) Children() []soup.Node       { return []soup.Node{loopNode{depth: l.depth + 1}} }

func TestStructuralFaultOnEndlessTree(t *testing.T) {
	_, err := soup.Evaluate([]soup.Node{loopNode{}}, selector.Tag("nope"), soup.Query{Limit: soup.NoLimit})
	if !errors.Is(err, soup.ErrStructuralFault) {
		t.Fatalf("err = %v, want ErrStructuralFault", err)
	}

	// A tight ceiling trips sooner.
	_, err = soup.Evaluate([]soup.Node{loopNode{}}, nil, soup.Query{Limit: soup.NoLimit, MaxDepth: 10})
	if !errors.Is(err, soup.ErrStructuralFault) {
		t.Fatalf("err = %v, want ErrStructuralFault", err)
	}
}

func TestAllText(t *testing.T) {
	doc := buildPage(t)
	div, err := doc.First(selector.Tag("div"))
	if err != nil {
		t.Fatalf("First returned error: %v", err)
	}
	if got := soup.AllText(div); got != "XY" {
		t.Errorf("AllText = %q, want %q", got, "XY")
	}
}
