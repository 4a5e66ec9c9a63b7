package css_test

import (
	"fmt"
	"testing"

	"github.com/npillmayer/cascade/attr"
	"github.com/npillmayer/cascade/attr/applier"
	vcss "github.com/npillmayer/cascade/css"
	"github.com/npillmayer/cascade/dom/style"
	"github.com/npillmayer/cascade/dom/style/css"
	"github.com/npillmayer/cascade/dom/style/cssom"
	"github.com/npillmayer/cascade/dom/style/cssom/loader"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder wraps an attribute set, counting the writes it receives.
type recorder struct {
	*applier.Attributes
	ids     *attr.IDs
	sets    []string
	removes []string
}

func newRecorder(ids *attr.IDs) *recorder {
	reg := attr.NewRegistry()
	for _, name := range []string{"color", "background-color", "opacity", "margin-top", "state", "a", "b", "c"} {
		reg.Register(vcss.NewHandler(ids.Intern(name), name))
	}
	return &recorder{Attributes: applier.New(nil, reg, applier.WithIDs(ids)), ids: ids}
}

func (r *recorder) SetAttribute(scope attr.Scope, id attr.ID, owner attr.Owner, value style.Property,
	animator attr.Animator) bool {
	r.sets = append(r.sets, fmt.Sprintf("%s=%s", r.ids.Name(id), value))
	return r.Attributes.SetAttribute(scope, id, owner, value, animator)
}

func (r *recorder) RemoveAttribute(scope attr.Scope, id attr.ID, owner attr.Owner, animator attr.Animator) bool {
	r.removes = append(r.removes, r.ids.Name(id))
	return r.Attributes.RemoveAttribute(scope, id, owner, animator)
}

func (r *recorder) value(name string) style.Property {
	return r.ResolvedAttributeValue(r.ids.Intern(name))
}

func (r *recorder) clear() {
	r.sets, r.removes = nil, nil
}

func load(t *testing.T, ids *attr.IDs, src string) *cssom.Document {
	doc, err := loader.LoadYAMLBytes([]byte(src), ids)
	require.NoError(t, err)
	return doc
}

func ctx(r *recorder) css.UpdateContext {
	return css.UpdateContext{Applier: r, Pool: css.NewDeclarationPool(0, 0)}
}

func TestSetters(t *testing.T) {
	n := css.NewNode()
	assert.True(t, n.SetClass("primary  large primary"))
	assert.False(t, n.SetClass("primary  large primary"))
	assert.Equal(t, []string{"primary", "large"}, n.Classes())
	assert.True(t, n.SetTagName("button"))
	assert.False(t, n.SetTagName("button"))
	assert.True(t, n.SetNodeID("ok"))
	assert.True(t, n.SetIndexAmongSiblings(2))
	assert.False(t, n.SetIndexAmongSiblings(2))
	assert.True(t, n.SetSiblingsCount(3))
	assert.Equal(t, "Node(button#ok.primary.large 2/3)", n.String())
	assert.Equal(t, attr.PriorityCSS, n.AttributePriority(0))
	n.SetSubtreeRoot(true)
	assert.Equal(t, attr.PriorityCSSParentOverridden, n.AttributePriority(0))
	assert.Equal(t, "css", n.AttributeSource(0))
}

func TestSpecificity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.css")
	defer teardown()
	//
	ids := attr.NewIDs()
	doc := load(t, ids, `
resource: specificity
rules:
  class:
    primary:
      declarations:
        - { attribute: color, value: blue, priority: 1 }
        - { attribute: opacity, value: "0.5", priority: 4, order: 2 }
  tag:
    label:
      declarations:
        - { attribute: color, value: red }
        - { attribute: opacity, value: "0.7", priority: 4, order: 1 }
        - { attribute: margin-top, value: 1pt, priority: 4, order: 9 }
    "*":
      declarations:
        - { attribute: margin-top, value: 2pt, priority: 5, order: 0 }
`)
	r := newRecorder(ids)
	m := css.NewManager()
	m.SetCSSDocument(doc, false)
	m.SetElementTag("label", false)
	m.UpdateCSS(ctx(r))
	assert.Equal(t, style.Property("red"), r.value("color"))
	m.SetCSSClass("primary", false)
	m.UpdateCSS(ctx(r))
	assert.Equal(t, style.Property("blue"), r.value("color"))
	assert.Equal(t, style.Property("0.5"), r.value("opacity"), "higher order wins for equal priority")
	assert.Equal(t, style.Property("2pt"), r.value("margin-top"), "higher priority always wins")
}

func TestNthChildAndPosition(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.css")
	defer teardown()
	//
	ids := attr.NewIDs()
	doc := load(t, ids, `
resource: position
rules:
  first_child:
    declarations:
      - { attribute: a, value: first }
  last_child:
    declarations:
      - { attribute: b, value: last }
  nth_child:
    - n: 2
      offset: 1
      declarations:
        - { attribute: c, value: odd }
    - n: 0
      offset: 3
      declarations:
        - { attribute: color, value: third }
`)
	for i := 0; i < 5; i++ {
		r := newRecorder(ids)
		m := css.NewManager()
		m.SetCSSDocument(doc, false)
		m.SetSiblingsIndexes(5, i)
		m.UpdateCSS(ctx(r))
		assert.Equal(t, i == 0, r.value("a") == "first", "first-child at %d", i)
		assert.Equal(t, i == 4, r.value("b") == "last", "last-child at %d", i)
		assert.Equal(t, i%2 == 0, r.value("c") == "odd", "2n+1 at %d", i)
		assert.Equal(t, i == 2, r.value("color") == "third", "nth-child(3) at %d", i)
	}
}

func TestParentAndAncestor(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.css")
	defer teardown()
	//
	ids := attr.NewIDs()
	doc := load(t, ids, `
resource: family
rules:
  parent:
    tag:
      list:
        declarations:
          - { attribute: a, value: in-list }
  ancestor:
    id:
      root:
        declarations:
          - { attribute: b, value: under-root }
`)
	root, list, item := css.NewManager(), css.NewManager(), css.NewManager()
	for _, m := range []*css.Manager{root, list, item} {
		m.SetCSSDocument(doc, false)
	}
	root.SetElementID("root", false)
	list.SetElementTag("list", false)
	list.SetParent(root)
	item.SetParent(list)
	assert.Equal(t, list.Node(false), item.ParentForDocument(doc))
	assert.Nil(t, item.ParentForDocument(cssom.NewDocument("other", nil)))
	r := newRecorder(ids)
	item.UpdateCSS(ctx(r))
	assert.Equal(t, style.Property("in-list"), r.value("a"))
	assert.Equal(t, style.Property("under-root"), r.value("b"), "ancestors are searched beyond the parent")
	r = newRecorder(ids)
	list.UpdateCSS(ctx(r))
	assert.Equal(t, style.NullStyle, r.value("a"))
	assert.Equal(t, style.Property("under-root"), r.value("b"))
}

func TestAttributeEquality(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.css")
	defer teardown()
	//
	ids := attr.NewIDs()
	doc := load(t, ids, `
resource: states
rules:
  attribute:
    - attribute: state
      value: pressed
      declarations:
        - { attribute: opacity, value: "0.5" }
`)
	r := newRecorder(ids)
	m := css.NewManager()
	m.SetCSSDocument(doc, false)
	m.UpdateCSS(ctx(r))
	assert.Equal(t, style.NullStyle, r.value("opacity"))
	state := ids.Intern("state")
	assert.True(t, m.AttributeChanged(state))
	assert.False(t, m.AttributeChanged(ids.Intern("color")))
	r.SetAttribute(nil, state, attr.NewOwner(attr.PriorityElement, "element"), "pressed", nil)
	m.UpdateCSS(ctx(r))
	assert.Equal(t, style.Property("0.5"), r.value("opacity"))
}

func TestAttributeEqualityNeedsValue(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.css")
	defer teardown()
	//
	ids := attr.NewIDs()
	state, opacity := ids.Intern("state"), ids.Intern("opacity")
	doc := cssom.NewDocument("built", &cssom.StyleNode{
		Rules: &cssom.RuleIndex{
			AttributeRules: []cssom.AttributeRule{{
				Attribute: state,
				Value:     style.NullStyle,
				Node: &cssom.StyleNode{
					Declarations: []cssom.Declaration{{Attribute: opacity, Value: "0.5"}},
				},
			}},
		},
	})
	r := newRecorder(ids)
	m := css.NewManager()
	m.SetCSSDocument(doc, false)
	m.UpdateCSS(ctx(r))
	assert.Equal(t, style.NullStyle, r.value("opacity"), "an unset attribute matches no value")
	_, err := loader.LoadYAMLBytes([]byte(`
resource: states
rules:
  attribute:
    - { attribute: state, value: "", declarations: [ { attribute: opacity, value: "0.5" } ] }
`), ids)
	assert.Error(t, err)
}

func TestLaterRuleWins(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.css")
	defer teardown()
	//
	ids := attr.NewIDs()
	doc := load(t, ids, `
resource: later
rules:
  class:
    zeta:
      declarations:
        - { attribute: color, value: zeta }
    alpha:
      declarations:
        - { attribute: color, value: alpha }
`)
	r := newRecorder(ids)
	m := css.NewManager()
	m.SetCSSDocument(doc, false)
	m.SetCSSClass("alpha zeta", false)
	m.UpdateCSS(ctx(r))
	assert.Equal(t, style.Property("alpha"), r.value("color"), "later rule of equal priority wins")
}

func TestApplyCSSDiff(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.css")
	defer teardown()
	//
	ids := attr.NewIDs()
	d1 := load(t, ids, `
resource: d1
declarations:
  - { attribute: a, value: "1" }
  - { attribute: b, value: "2" }
`)
	d2 := load(t, ids, `
resource: d2
declarations:
  - { attribute: a, value: "1" }
  - { attribute: c, value: "3" }
`)
	r := newRecorder(ids)
	pool := css.NewDeclarationPool(4, 2)
	n := css.NewNode()
	n.ApplyCSS(nil, d1, r, nil, pool)
	assert.Equal(t, style.Property("2"), r.value("b"))
	assert.Len(t, n.AppliedDeclarations(), 2)
	r.clear()
	n.ApplyCSS(nil, d2, r, nil, pool)
	assert.Equal(t, []string{"b"}, r.removes)
	assert.Contains(t, r.sets, "c=3")
	assert.Equal(t, style.Property("1"), r.value("a"))
	assert.Equal(t, style.NullStyle, r.value("b"))
	assert.Equal(t, style.Property("3"), r.value("c"))
	assert.Equal(t, 1, pool.Len(), "previous map is returned to the pool")
	assert.True(t, n.RemoveAll(nil, r, nil, pool))
	assert.Equal(t, 0, r.Len())
}

func TestDetachDocument(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.css")
	defer teardown()
	//
	ids := attr.NewIDs()
	doc := load(t, ids, "resource: d\ndeclarations:\n  - { attribute: a, value: x }\n")
	r := newRecorder(ids)
	m := css.NewManager()
	assert.False(t, m.NeedsCSSUpdate())
	assert.True(t, m.SetCSSDocument(doc, false))
	assert.False(t, m.SetCSSDocument(doc, false))
	assert.True(t, m.NeedsCSSUpdate())
	m.UpdateCSS(ctx(r))
	assert.Equal(t, style.Property("x"), r.value("a"))
	other := css.NewManager()
	other.CopyDocument(m)
	assert.Equal(t, doc, other.Document())
	m.SetCSSDocument(nil, false)
	m.UpdateCSS(ctx(r))
	assert.Equal(t, style.NullStyle, r.value("a"))
}

func TestSubtreeRootOverride(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.css")
	defer teardown()
	//
	ids := attr.NewIDs()
	inner := load(t, ids, "resource: inner\ndeclarations:\n  - { attribute: color, value: inner }\n")
	outer := load(t, ids, `
resource: outer
rules:
  id:
    embedded:
      declarations:
        - { attribute: color, value: outer }
`)
	r := newRecorder(ids)
	m := css.NewManager()
	m.SetCSSDocument(inner, false)
	m.SetCSSDocument(outer, true)
	m.SetElementID("embedded", true)
	assert.True(t, m.HasNodeID("embedded"))
	assert.Equal(t, "", m.NodeID())
	m.UpdateCSS(ctx(r))
	assert.Equal(t, style.Property("outer"), r.value("color"), "subtree root styling wins over own document")
}

func TestInlineStyles(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.css")
	defer teardown()
	//
	ids := attr.NewIDs()
	r := newRecorder(ids)
	a, b := ids.Intern("a"), ids.Intern("b")
	old := cssom.NewBundle([]cssom.Declaration{{Attribute: a, Value: "1"}})
	neu := cssom.NewBundle([]cssom.Declaration{{Attribute: b, Value: "2"}})
	m := css.NewManager()
	assert.True(t, m.Apply(old, ctx(r)))
	r.clear()
	assert.False(t, m.Apply(old, ctx(r)))
	assert.Empty(t, r.sets, "re-applying the same bundle is a no-op")
	assert.True(t, m.Apply([]*cssom.Bundle{old, neu}, ctx(r)))
	assert.Equal(t, []string{"b=2"}, r.sets)
	assert.Equal(t, style.Property("1"), r.value("a"))
	r.clear()
	assert.True(t, m.Apply([]interface{}{neu, "not a bundle"}, ctx(r)))
	assert.Empty(t, r.sets)
	assert.Equal(t, style.NullStyle, r.value("a"))
	assert.Len(t, m.Styles(), 1)
	assert.True(t, m.Apply(nil, ctx(r)))
	assert.Equal(t, 0, r.Len())
	assert.False(t, m.Apply(42, ctx(r)))
}

func TestInlineAndCSSCompete(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.css")
	defer teardown()
	//
	ids := attr.NewIDs()
	doc := load(t, ids, "resource: d\ndeclarations:\n  - { attribute: color, value: css }\n")
	r := newRecorder(ids)
	m := css.NewManager()
	m.SetCSSDocument(doc, false)
	m.UpdateCSS(ctx(r))
	bundle := cssom.NewBundle([]cssom.Declaration{{Attribute: ids.Intern("color"), Value: "inline"}})
	m.Apply(bundle, ctx(r))
	assert.Equal(t, style.Property("inline"), r.value("color"), "equal band, most recent wins")
	r.SetAttribute(nil, ids.Intern("color"), attr.NewOwner(attr.PriorityElement, "element"), "code", nil)
	m.UpdateCSS(ctx(r))
	assert.Equal(t, style.Property("code"), r.value("color"))
}
