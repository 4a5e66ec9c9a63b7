package domdbg

import (
	"bytes"
	"testing"

	"github.com/npillmayer/cascade/attr"
	"github.com/npillmayer/cascade/css"
	"github.com/npillmayer/cascade/dom/style/cssom/loader"
	"github.com/npillmayer/cascade/dom/styledtree"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const doc = `
resource: debug.css
rules:
  class:
    title:
      declarations:
        - { attribute: color, value: "#333" }
  nth_child:
    - { n: 2, offset: 1, declarations: [ { attribute: opacity, value: "0.8" } ] }
  ancestor:
    tag:
      page:
        declarations:
          - { attribute: margin-top, value: 2pt }
`

func TestDumps(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.dom")
	defer teardown()
	//
	ids := attr.NewIDs()
	reg := css.StockHandlers(ids, attr.NewRegistry())
	d, err := loader.LoadYAMLBytes([]byte(doc), ids)
	require.NoError(t, err)
	out := DumpDocument(d, ids)
	t.Logf("\n%s", out)
	assert.Contains(t, out, ".title")
	assert.Contains(t, out, ":nth-child(2n+1)")
	assert.Contains(t, out, "ancestor ~")
	//
	root := styledtree.NewNode("page", reg)
	label := styledtree.NewNode("label", reg)
	styledtree.AddChild(root, label)
	styledtree.Node(label).SetClass("title")
	styledtree.SetDocument(root, d)
	styledtree.Update(root, styledtree.Options{})
	out = DumpTree(root)
	t.Logf("\n%s", out)
	assert.Contains(t, out, "<label>")
	assert.Contains(t, out, `color = "#333"`)
	var buf bytes.Buffer
	require.NoError(t, ToGraphViz(root, &buf))
	assert.Contains(t, buf.String(), "node00002")
	assert.Contains(t, buf.String(), "node00001 -> node00002")
}
