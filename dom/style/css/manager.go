package css

import (
	"github.com/npillmayer/cascade/attr"
	"github.com/npillmayer/cascade/dom/style/cssom"
)

// UpdateContext carries everything a manager needs to write attributes.
type UpdateContext struct {
	Scope    attr.Scope
	Applier  attr.Applier
	Animator attr.Animator
	Pool     *DeclarationPool // may be nil
}

// container pairs a node with the document it is matched against.
type container struct {
	node *Node
	doc  *cssom.Document
}

// Manager manages the styling of one element: its CSS nodes and the
// inline style bundles applied to it.
type Manager struct {
	own        *container // the element's own identity
	fromParent *container // the element as root of a child subtree
	parent     *Manager
	styles     []*cssom.Bundle
}

// NewManager creates a manager without any nodes. Nodes are created on
// first use.
func NewManager() *Manager {
	return &Manager{}
}

func (m *Manager) container(fromParent bool) *container {
	if fromParent {
		if m.fromParent == nil {
			m.fromParent = &container{node: NewNode()}
			m.fromParent.node.SetParentResolver(m)
			m.fromParent.node.SetSubtreeRoot(true)
		}
		return m.fromParent
	}
	if m.own == nil {
		m.own = &container{node: NewNode()}
		m.own.node.SetParentResolver(m)
	}
	return m.own
}

// Node returns the own node or the subtree-root node, if it exists.
func (m *Manager) Node(fromParent bool) *Node {
	c := m.own
	if fromParent {
		c = m.fromParent
	}
	if c == nil {
		return nil
	}
	return c.node
}

// SetParent sets the manager of the parent element, used to resolve
// parent and ancestor selectors. nil detaches m.
func (m *Manager) SetParent(parent *Manager) {
	m.parent = parent
}

// Parent returns the manager of the parent element.
func (m *Manager) Parent() *Manager {
	return m.parent
}

func (m *Manager) containerForDocument(doc *cssom.Document) *container {
	if m.own != nil && m.own.doc == doc {
		return m.own
	}
	if m.fromParent != nil && m.fromParent.doc == doc {
		return m.fromParent
	}
	return nil
}

// ParentForDocument is part of interface ParentResolver. It walks up the
// parent managers until it finds one holding a node for doc.
func (m *Manager) ParentForDocument(doc *cssom.Document) *Node {
	for p := m.parent; p != nil; p = p.parent {
		if c := p.containerForDocument(doc); c != nil {
			return c.node
		}
	}
	return nil
}

var _ ParentResolver = &Manager{}

// SetCSSDocument attaches a document to one of the nodes, returning true
// if it changed. The node's monitored attributes follow the document.
func (m *Manager) SetCSSDocument(doc *cssom.Document, fromParent bool) bool {
	c := m.container(fromParent)
	if c.doc == doc {
		return false
	}
	c.doc = doc
	if doc != nil {
		c.node.SetMonitoredAttributes(doc.MonitoredAttributes())
	} else {
		c.node.SetMonitoredAttributes(nil)
	}
	return true
}

// Document returns the document of the own node, or nil.
func (m *Manager) Document() *cssom.Document {
	if m.own == nil {
		return nil
	}
	return m.own.doc
}

// CopyDocument attaches the document of other's own node, if it has one.
func (m *Manager) CopyDocument(other *Manager) {
	if doc := other.Document(); doc != nil {
		m.SetCSSDocument(doc, false)
	}
}

// SetCSSClass returns true if the class attribute changed.
func (m *Manager) SetCSSClass(class string, fromParent bool) bool {
	return m.container(fromParent).node.SetClass(class)
}

// SetElementTag returns true if the tag changed.
func (m *Manager) SetElementTag(tag string, fromParent bool) bool {
	return m.container(fromParent).node.SetTagName(tag)
}

// SetElementID returns true if the id changed.
func (m *Manager) SetElementID(id string, fromParent bool) bool {
	return m.container(fromParent).node.SetNodeID(id)
}

// SetSiblingsIndexes updates the position of existing nodes, returning
// true if any of them changed.
func (m *Manager) SetSiblingsIndexes(count, index int) bool {
	changed := false
	for _, c := range []*container{m.own, m.fromParent} {
		if c == nil {
			continue
		}
		if c.node.SetSiblingsCount(count) {
			changed = true
		}
		if c.node.SetIndexAmongSiblings(index) {
			changed = true
		}
	}
	return changed
}

// NodeID returns the id of the own node.
func (m *Manager) NodeID() string {
	if m.own == nil {
		return ""
	}
	return m.own.node.NodeID()
}

// HasNodeID is true if either node carries id.
func (m *Manager) HasNodeID(id string) bool {
	return (m.own != nil && m.own.node.NodeID() == id) ||
		(m.fromParent != nil && m.fromParent.node.NodeID() == id)
}

// NeedsCSSUpdate is true if the manager has a node to run passes for.
func (m *Manager) NeedsCSSUpdate() bool {
	return m.own != nil || m.fromParent != nil
}

// AttributeChanged is true if a change of attribute id requires a new pass.
func (m *Manager) AttributeChanged(id attr.ID) bool {
	changed := false
	if m.own != nil && m.own.node.AttributeChanged(id) {
		changed = true
	}
	if m.fromParent != nil && m.fromParent.node.AttributeChanged(id) {
		changed = true
	}
	return changed
}

// UpdateCSS runs a cascade pass for both nodes, the subtree-root node
// first. A node whose document has been detached withdraws its values.
func (m *Manager) UpdateCSS(ctx UpdateContext) {
	for _, c := range []*container{m.fromParent, m.own} {
		if c == nil {
			continue
		}
		if c.doc == nil {
			c.node.RemoveAll(ctx.Scope, ctx.Applier, ctx.Animator, ctx.Pool)
			continue
		}
		c.node.ApplyCSS(ctx.Scope, c.doc, ctx.Applier, ctx.Animator, ctx.Pool)
	}
}

// --- Inline styles ---------------------------------------------------------

// Styles returns the bundles currently applied.
func (m *Manager) Styles() []*cssom.Bundle {
	return append([]*cssom.Bundle(nil), m.styles...)
}

// Apply sets the inline styles of the element. style may be nil (remove
// all inline styles), a *cssom.Bundle or a slice of bundles, either as
// []*cssom.Bundle or []interface{}. Bundles are compared by identity: a
// bundle applied before is left untouched, bundles not present any more
// are withdrawn. Invalid items are reported and skipped; a style of an
// unsupported type removes all inline styles. Returns true if any resolved
// attribute value changed.
func (m *Manager) Apply(style interface{}, ctx UpdateContext) bool {
	switch s := style.(type) {
	case nil:
		return m.removeAllStyles(ctx)
	case *cssom.Bundle:
		if s == nil {
			return m.removeAllStyles(ctx)
		}
		return m.setStyles([]*cssom.Bundle{s}, ctx)
	case []*cssom.Bundle:
		styles := make([]*cssom.Bundle, 0, len(s))
		for i, b := range s {
			if b == nil {
				tracer().Errorf("failed to apply style: item %d is nil", i)
				continue
			}
			styles = append(styles, b)
		}
		return m.setStyles(styles, ctx)
	case []interface{}:
		styles := make([]*cssom.Bundle, 0, len(s))
		for i, item := range s {
			b, ok := item.(*cssom.Bundle)
			if !ok || b == nil {
				tracer().Errorf("failed to apply style: item %d (%v) is not a style bundle", i, item)
				continue
			}
			styles = append(styles, b)
		}
		return m.setStyles(styles, ctx)
	}
	tracer().Errorf("failed to apply style: %v is not a style bundle", style)
	return m.removeAllStyles(ctx)
}

func (m *Manager) removeAllStyles(ctx UpdateContext) bool {
	changed := false
	for len(m.styles) > 0 {
		b := m.styles[len(m.styles)-1]
		m.styles = m.styles[:len(m.styles)-1]
		if ctx.Applier.RemoveAllAttributesForOwner(ctx.Scope, b, ctx.Animator) {
			changed = true
		}
	}
	return changed
}

func (m *Manager) setStyles(styles []*cssom.Bundle, ctx UpdateContext) bool {
	changed := false
	var removed []*cssom.Bundle
	for _, b := range m.styles {
		if !containsStyle(styles, b) {
			removed = append(removed, b)
		}
	}
	for _, b := range styles {
		if containsStyle(m.styles, b) {
			continue
		}
		for _, d := range b.Declarations() {
			if ctx.Applier.SetAttribute(ctx.Scope, d.Attribute, b, d.Value, ctx.Animator) {
				changed = true
			}
		}
	}
	for _, b := range removed {
		if ctx.Applier.RemoveAllAttributesForOwner(ctx.Scope, b, ctx.Animator) {
			changed = true
		}
	}
	m.styles = styles
	return changed
}

func containsStyle(styles []*cssom.Bundle, b *cssom.Bundle) bool {
	for _, s := range styles {
		if s == b {
			return true
		}
	}
	return false
}
