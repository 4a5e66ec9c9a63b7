package applier_test

import (
	"errors"
	"testing"

	"github.com/npillmayer/cascade/attr"
	"github.com/npillmayer/cascade/attr/applier"
	"github.com/npillmayer/cascade/css"
	"github.com/npillmayer/cascade/dom/style"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tyse/core/dimen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xlab/treeprint"
)

// view is a fake element, recording the values applied to it.
type view struct {
	props map[string]interface{}
}

func newView() *view {
	return &view{props: make(map[string]interface{})}
}

func setup(ids *attr.IDs) *attr.Registry {
	reg := attr.NewRegistry()
	for _, name := range []string{"color", "width", "opacity", "broken"} {
		name := name
		opts := []css.HandlerOption{
			css.OnApply(func(_ attr.Scope, el attr.Element, v interface{}, _ attr.Animator) error {
				if name == "broken" {
					return errors.New("cannot apply")
				}
				el.(*view).props[name] = v
				return nil
			}),
			css.OnReset(func(_ attr.Scope, el attr.Element, _ attr.Animator) {
				delete(el.(*view).props, name)
			}),
		}
		if name == "width" {
			opts = append(opts, css.WithPreprocessor(css.Dimension), css.AffectsLayout(), css.NeedsView())
		}
		reg.Register(css.NewHandler(ids.Intern(name), name, opts...))
	}
	return reg
}

func TestSetAndRemove(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.applier")
	defer teardown()
	//
	ids := attr.NewIDs()
	el := newView()
	a := applier.New(el, setup(ids), applier.WithIDs(ids))
	color := ids.Intern("color")
	cssOwner := attr.NewOwner(attr.PriorityCSS, "css")
	elemOwner := attr.NewOwner(attr.PriorityElement, "element")
	assert.True(t, a.SetAttribute(nil, color, cssOwner, "red", nil))
	assert.Equal(t, style.Property("red"), el.props["color"])
	assert.True(t, a.SetAttribute(nil, color, elemOwner, "blue", nil))
	assert.Equal(t, style.Property("blue"), el.props["color"])
	assert.False(t, a.SetAttribute(nil, color, cssOwner, "green", nil))
	assert.Equal(t, style.Property("blue"), a.ResolvedAttributeValue(color))
	assert.True(t, a.SetAttribute(nil, color, elemOwner, style.NullStyle, nil))
	assert.Equal(t, style.Property("green"), el.props["color"])
	assert.True(t, a.RemoveAttribute(nil, color, cssOwner, nil))
	assert.False(t, a.HasResolvedAttributeValue(color))
	_, ok := el.props["color"]
	assert.False(t, ok, "removing the last value resets the element")
	assert.False(t, a.RemoveAttribute(nil, color, cssOwner, nil))
}

func TestUnknownAttribute(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.applier")
	defer teardown()
	//
	ids := attr.NewIDs()
	a := applier.New(newView(), setup(ids))
	assert.False(t, a.SetAttribute(nil, ids.Intern("no-such-thing"), attr.PlaceholderOwner(), "x", nil))
	assert.Equal(t, 0, a.Len())
}

func TestRemoveAllForOwner(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.applier")
	defer teardown()
	//
	ids := attr.NewIDs()
	el := newView()
	a := applier.New(el, setup(ids))
	owner := attr.NewOwner(attr.PriorityCSS, "css")
	other := attr.NewOwner(attr.PriorityElement, "element")
	a.SetAttribute(nil, ids.Intern("color"), owner, "red", nil)
	a.SetAttribute(nil, ids.Intern("opacity"), owner, "0.5", nil)
	a.SetAttribute(nil, ids.Intern("opacity"), other, "1", nil)
	assert.True(t, a.RemoveAllAttributesForOwner(nil, owner, nil))
	assert.Equal(t, 1, a.Len())
	assert.Equal(t, style.Property("1"), el.props["opacity"])
	assert.False(t, a.RemoveAllAttributesForOwner(nil, owner, nil))
}

func TestViewLifecycle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.applier")
	defer teardown()
	//
	ids := attr.NewIDs()
	el := newView()
	layouts := 0
	a := applier.New(el, setup(ids), applier.OnLayoutInvalidated(func(attr.ID) { layouts++ }))
	width := ids.Intern("width")
	a.SetAttribute(nil, width, attr.NewOwner(attr.PriorityCSS, "css"), "10pt", nil)
	assert.Equal(t, 1, layouts)
	_, ok := el.props["width"]
	assert.False(t, ok, "view attributes wait for a view")
	require.NoError(t, a.DidAddView(nil, nil))
	d, ok := el.props["width"].(css.DimenT)
	require.True(t, ok)
	var du dimen.DU
	assert.NotNil(t, d.Match().Just(&du))
	assert.Equal(t, 10*dimen.PT, du)
	assert.Error(t, a.DidAddView(nil, nil))
	require.NoError(t, a.WillRemoveView(nil))
	_, ok = el.props["width"]
	assert.False(t, ok)
	assert.False(t, a.HasView())
}

func TestUpdateAllCollectsErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.applier")
	defer teardown()
	//
	ids := attr.NewIDs()
	a := applier.New(newView(), setup(ids), applier.WithIDs(ids))
	owner := attr.NewOwner(attr.PriorityCSS, "css")
	a.SetAttribute(nil, ids.Intern("broken"), owner, "x", nil)
	a.SetAttribute(nil, ids.Intern("color"), owner, "red", nil)
	a.ReapplyAttribute(nil, ids.Intern("color"))
	a.ReapplyAttribute(nil, ids.Intern("broken"))
	at, ok := a.Attribute(ids.Intern("broken"))
	require.True(t, ok)
	at.MarkDirty()
	err := a.UpdateAll(nil, nil, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}

func TestUpdateWithoutApply(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.applier")
	defer teardown()
	//
	ids := attr.NewIDs()
	el := newView()
	a := applier.New(el, setup(ids))
	opacity := ids.Intern("opacity")
	a.UpdateWithoutApply(opacity, "0.3")
	assert.Equal(t, style.Property("0.3"), a.ResolvedAttributeValue(opacity))
	_, ok := el.props["opacity"]
	assert.False(t, ok)
	require.NoError(t, a.UpdateAll(nil, nil, false))
	_, ok = el.props["opacity"]
	assert.False(t, ok, "recorded value counts as applied")
}

func TestDefaultsAndDump(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.applier")
	defer teardown()
	//
	ids := attr.NewIDs()
	el := newView()
	a := applier.New(el, setup(ids), applier.WithIDs(ids))
	assert.True(t, a.ApplyDefaults(nil, ids))
	assert.Equal(t, style.Property("default"), a.ResolvedAttributeValue(ids.Intern("color")))
	a.SetAttribute(nil, ids.Intern("color"), attr.NewOwner(attr.PriorityCSS, "css"), "red", nil)
	m := a.ResolvedAttributes()
	assert.Equal(t, style.Property("red"), m["color"])
	assert.Equal(t, style.Property("auto"), m["width"])
	tp := a.Dump(treeprint.New())
	t.Logf("\n%s", tp.String())
	assert.Contains(t, tp.String(), "placeholder")
}

func TestSetHandlersAndCopy(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.applier")
	defer teardown()
	//
	ids := attr.NewIDs()
	a := applier.New(newView(), setup(ids))
	owner := attr.NewOwner(attr.PriorityCSS, "css")
	a.SetAttribute(nil, ids.Intern("width"), owner, "5pt", nil)
	a.SetAttribute(nil, ids.Intern("color"), owner, "red", nil)
	b := applier.New(newView(), setup(ids))
	a.CopyViewLayoutAttributes(b)
	assert.Equal(t, 1, b.Len())
	assert.Equal(t, style.Property("5pt"), b.ResolvedAttributeValue(ids.Intern("width")))
	reg := attr.NewRegistry().Register(css.NewHandler(ids.Intern("color"), "color"))
	a.SetHandlers(reg)
	assert.Equal(t, 1, a.Len())
	a.Destroy()
	assert.False(t, a.SetAttribute(nil, ids.Intern("color"), owner, "blue", nil))
}
