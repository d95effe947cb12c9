package yamldoc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pourover/soup"
	"github.com/pourover/soup/backend/yamldoc"
	"github.com/pourover/soup/selector"
)

const manifest = `
name: query-api
spec:
  replicas: 2
  ports:
    - 8080
    - 8443
  labels:
    tier: backend
`

func TestParseMapping(t *testing.T) {
	doc, err := yamldoc.Parse([]byte(manifest))
	require.NoError(t, err)

	name, err := doc.First(selector.Tag("name"))
	require.NoError(t, err)
	assert.Equal(t, "query-api", soup.AllText(name))

	tier, err := doc.First(selector.Descendant(selector.Tag("labels"), selector.Tag("tier")))
	require.NoError(t, err)
	assert.Equal(t, "backend", soup.AllText(tier))
}

func TestParseSequence(t *testing.T) {
	doc, err := yamldoc.Parse([]byte(manifest))
	require.NoError(t, err)

	ports, err := doc.Find(selector.Tag("ports"))
	require.NoError(t, err)
	require.Equal(t, 2, ports.Len())
	assert.Equal(t, []string{"8080", "8443"}, ports.Texts())
}

func TestParseScalarDocument(t *testing.T) {
	doc, err := yamldoc.Parse([]byte(`just a string`))
	require.NoError(t, err)
	root, err := doc.First(selector.Tag(yamldoc.RootTag))
	require.NoError(t, err)
	assert.Equal(t, "just a string", soup.AllText(root))
}

func TestParseError(t *testing.T) {
	_, err := yamldoc.Parse([]byte("a: b\n  bad indent: [unclosed"))
	assert.Error(t, err)
}
