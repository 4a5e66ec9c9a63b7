package cssom

import (
	"testing"

	"github.com/npillmayer/cascade/attr"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestNthChild(t *testing.T) {
	odd := NthChildRule{N: 2, Offset: 1}
	third := NthChildRule{N: 0, Offset: 3}
	firstTwo := NthChildRule{N: -1, Offset: 2}
	for i := 0; i < 6; i++ {
		assert.Equal(t, i%2 == 0, odd.Matches(i), "2n+1 at index %d", i)
		assert.Equal(t, i == 2, third.Matches(i), "3 at index %d", i)
		assert.Equal(t, i < 2, firstTwo.Matches(i), "-n+2 at index %d", i)
	}
}

func TestDeclarationOverrides(t *testing.T) {
	a := &Declaration{Priority: 4, Order: 1}
	b := &Declaration{Priority: 4, Order: 2}
	c := &Declaration{Priority: 5, Order: 0}
	assert.True(t, b.Overrides(a))
	assert.False(t, a.Overrides(b))
	assert.True(t, c.Overrides(b))
	assert.False(t, b.Overrides(b))
}

func TestDocumentMonitored(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.cssom")
	defer teardown()
	//
	nested := &RuleIndex{AttributeRules: []AttributeRule{{Attribute: 7, Value: "on", Node: &StyleNode{}}}}
	root := &StyleNode{Rules: &RuleIndex{
		ByTag:    map[string]*StyleNode{"label": {Rules: &RuleIndex{AttributeRules: []AttributeRule{{Attribute: 3}}}}},
		Ancestor: nested,
	}}
	doc := NewDocument("test", root)
	assert.True(t, doc.IsMonitored(3))
	assert.True(t, doc.IsMonitored(7))
	assert.False(t, doc.IsMonitored(1))
	m := doc.MonitoredAttributes()
	delete(m, 3)
	assert.True(t, doc.IsMonitored(3), "monitored set is handed out as a copy")
	assert.True(t, (&RuleIndex{}).Empty())
	assert.False(t, nested.Empty())
	assert.NotNil(t, NewDocument("empty", nil).Root())
}

func TestBundleOwner(t *testing.T) {
	decls := []Declaration{{Attribute: 1, Value: "red"}}
	b1, b2 := NewBundle(decls), NewBundle(decls)
	decls[0].Value = "blue"
	assert.Equal(t, "red", b1.Declarations()[0].Value.String())
	var o1, o2 attr.Owner = b1, b2
	assert.True(t, o1 != o2, "bundles are distinct owners")
	assert.Equal(t, attr.PriorityCSS, b1.AttributePriority(1))
	assert.Equal(t, "style", b1.AttributeSource(1))
}
