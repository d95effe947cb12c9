package htmldoc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pourover/soup"
	"github.com/pourover/soup/backend/htmldoc"
	"github.com/pourover/soup/selector"
)

func TestParseStrictBasic(t *testing.T) {
	doc, err := htmldoc.ParseStrict(`<div class="outer"><p class="a">X</p><p class="b">Y</p></div>`)
	require.NoError(t, err)

	ms, err := doc.Find(selector.Descendant(selector.Tag("div"), selector.Tag("p")))
	require.NoError(t, err)
	require.Equal(t, 2, ms.Len())
	assert.Equal(t, []string{"a", "b"}, ms.AttrValues("class"))
	assert.Equal(t, []string{"X", "Y"}, ms.Texts())
}

func TestParseStrictAttributeForms(t *testing.T) {
	doc, err := htmldoc.ParseStrict(`<input type="text" name='q' value=go disabled>`)
	require.NoError(t, err)

	input, err := doc.First(selector.Tag("input"))
	require.NoError(t, err)
	for _, tc := range []struct{ name, want string }{
		{"type", "text"},
		{"name", "q"},
		{"value", "go"},
		{"disabled", ""},
	} {
		v, ok := input.Attr(tc.name)
		assert.True(t, ok, tc.name)
		assert.Equal(t, tc.want, v, tc.name)
	}
	_, ok := input.Attr("checked")
	assert.False(t, ok)
}

func TestParseStrictDuplicateAttrFirstWins(t *testing.T) {
	doc, err := htmldoc.ParseStrict(`<a href="one" href="two">x</a>`)
	require.NoError(t, err)
	a, err := doc.First(selector.Tag("a"))
	require.NoError(t, err)
	v, _ := a.Attr("href")
	assert.Equal(t, "one", v)
}

func TestParseStrictVoidAndSelfClosing(t *testing.T) {
	doc, err := htmldoc.ParseStrict(`<div><br><img src="x.png"><span/></div>`)
	require.NoError(t, err)

	div, err := doc.First(selector.Tag("div"))
	require.NoError(t, err)
	kids := div.Children()
	require.Len(t, kids, 3)
	for i, want := range []string{"br", "img", "span"} {
		tag, _ := kids[i].Tag()
		assert.Equal(t, want, tag)
		assert.Empty(t, kids[i].Children())
	}
}

func TestParseStrictRawElements(t *testing.T) {
	doc, err := htmldoc.ParseStrict(`<head><script>if (a < b) { x(); }</script><style>p > a {}</style></head>`)
	require.NoError(t, err)

	script, err := doc.First(selector.Tag("script"))
	require.NoError(t, err)
	body, ok := script.Text()
	require.True(t, ok)
	assert.Equal(t, "if (a < b) { x(); }", body)
	assert.Empty(t, script.Children())

	style, err := doc.First(selector.Tag("style"))
	require.NoError(t, err)
	body, _ = style.Text()
	assert.Equal(t, "p > a {}", body)
}

func TestParseStrictCommentAndDoctype(t *testing.T) {
	doc, err := htmldoc.ParseStrict(`<!DOCTYPE html><!-- a comment --><p>hi</p>`)
	require.NoError(t, err)

	// Comments and doctypes are stored but carry no tag or text payload.
	ms, err := doc.Find(selector.Any())
	require.NoError(t, err)
	require.Equal(t, 4, ms.Len())

	p, err := doc.First(selector.Tag("p"))
	require.NoError(t, err)
	assert.Equal(t, "hi", soup.AllText(p))
}

func TestParseStrictEntities(t *testing.T) {
	doc, err := htmldoc.ParseStrict(`<p title="a &amp; b">1 &lt; 2 &gt; 0 &#65;&#x42;</p>`)
	require.NoError(t, err)

	p, err := doc.First(selector.Tag("p"))
	require.NoError(t, err)
	title, _ := p.Attr("title")
	assert.Equal(t, "a & b", title)
	assert.Equal(t, "1 < 2 > 0 AB", soup.AllText(p))
}

func TestParseStrictUnknownEntityPassesThrough(t *testing.T) {
	doc, err := htmldoc.ParseStrict(`<p>&bogus; &amp</p>`)
	require.NoError(t, err)
	p, err := doc.First(selector.Tag("p"))
	require.NoError(t, err)
	assert.Equal(t, "&bogus; &", soup.AllText(p))
}

func TestParseStrictCaseInsensitiveClose(t *testing.T) {
	doc, err := htmldoc.ParseStrict(`<DIV>x</div>`)
	require.NoError(t, err)
	_, err = doc.First(selector.Tag("DIV"))
	assert.NoError(t, err)
}

func TestParseStrictErrors(t *testing.T) {
	bad := []string{
		`<div>`,
		`<div>x</span>`,
		`</div>`,
		`<div`,
		`<1tag>`,
		`< div>x</div>`,
		`<!-- unterminated`,
		`<!doctype html`,
		`<script>never closed`,
		`<a href="unterminated>x</a>`,
	}
	for _, src := range bad {
		_, err := htmldoc.ParseStrict(src)
		assert.Error(t, err, "src %q", src)
	}
}

func TestParseStrictDocumentValidates(t *testing.T) {
	d, err := htmldoc.ParseStrictDocument(`<html><body><p>x</p></body></html>`)
	require.NoError(t, err)
	assert.NoError(t, d.Validate())
}
