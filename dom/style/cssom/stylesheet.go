package cssom

import (
	"fmt"

	"github.com/npillmayer/cascade/attr"
	"github.com/npillmayer/cascade/dom/style"
)

// Declaration is a single attribute value of a rule. Priority and Order are
// specificity inputs: between two declarations for the same attribute, the
// one with higher priority wins, and for equal priority the one with the
// higher order.
type Declaration struct {
	Attribute attr.ID
	Value     style.Property
	Priority  int
	Order     int
}

// Overrides is true if d wins against other in the cascade.
func (d *Declaration) Overrides(other *Declaration) bool {
	return d.Priority > other.Priority || (d.Priority == other.Priority && d.Order > other.Order)
}

// StyleNode is a bucket of declarations, optionally refined by a nested
// rule index (for compound selectors like "button.primary").
type StyleNode struct {
	Declarations []Declaration
	Rules        *RuleIndex // may be nil
}

// AttributeRule matches elements whose resolved value for Attribute
// equals Value.
type AttributeRule struct {
	Attribute attr.ID
	Value     style.Property
	Node      *StyleNode
}

// NthChildRule matches elements at 1-based positions N*k+Offset, k ≥ 0.
type NthChildRule struct {
	N      int
	Offset int
	Node   *StyleNode
}

// Matches is true if the element at 0-based index among its siblings is
// selected by r.
func (r NthChildRule) Matches(index int) bool {
	adjusted := index + 1
	if r.N == 0 {
		return adjusted == r.Offset
	}
	d := adjusted - r.Offset
	return d%r.N == 0 && d/r.N >= 0
}

// RuleIndex is one level of selector buckets.
type RuleIndex struct {
	ByID           map[string]*StyleNode
	ByClass        map[string]*StyleNode
	ByTag          map[string]*StyleNode // "*" matches every tag
	AttributeRules []AttributeRule
	FirstChild     *StyleNode
	LastChild      *StyleNode
	NthChild       []NthChildRule
	DirectParent   *RuleIndex // evaluated against the nearest styled ancestor
	Ancestor       *RuleIndex // evaluated against every styled ancestor
}

// Empty is true if r holds no rules at all.
func (r *RuleIndex) Empty() bool {
	return r == nil || (len(r.ByID) == 0 && len(r.ByClass) == 0 && len(r.ByTag) == 0 &&
		len(r.AttributeRules) == 0 && r.FirstChild == nil && r.LastChild == nil &&
		len(r.NthChild) == 0 && r.DirectParent == nil && r.Ancestor == nil)
}

// Document is an immutable style document.
type Document struct {
	resourceID string
	root       *StyleNode
	monitored  map[attr.ID]struct{}
}

// NewDocument wraps a rule tree into a document. The tree must not be
// modified afterwards.
func NewDocument(resourceID string, root *StyleNode) *Document {
	if root == nil {
		root = &StyleNode{}
	}
	doc := &Document{
		resourceID: resourceID,
		root:       root,
		monitored:  make(map[attr.ID]struct{}),
	}
	doc.collectMonitored(root, 0)
	tracer().Debugf("document %s monitors %d attributes", resourceID, len(doc.monitored))
	return doc
}

// collectMonitored records every attribute referenced by an attribute
// equality rule. Rule trees are finite and acyclic; depth guards against
// loaders building a cycle by accident.
func (doc *Document) collectMonitored(n *StyleNode, depth int) {
	if n == nil || n.Rules == nil || depth > maxDepth {
		return
	}
	doc.collectIndex(n.Rules, depth+1)
}

const maxDepth = 64

func (doc *Document) collectIndex(r *RuleIndex, depth int) {
	if r == nil || depth > maxDepth {
		return
	}
	for _, n := range r.ByID {
		doc.collectMonitored(n, depth)
	}
	for _, n := range r.ByClass {
		doc.collectMonitored(n, depth)
	}
	for _, n := range r.ByTag {
		doc.collectMonitored(n, depth)
	}
	for _, ar := range r.AttributeRules {
		doc.monitored[ar.Attribute] = struct{}{}
		doc.collectMonitored(ar.Node, depth)
	}
	doc.collectMonitored(r.FirstChild, depth)
	doc.collectMonitored(r.LastChild, depth)
	for _, nr := range r.NthChild {
		doc.collectMonitored(nr.Node, depth)
	}
	doc.collectIndex(r.DirectParent, depth+1)
	doc.collectIndex(r.Ancestor, depth+1)
}

// ResourceID identifies the resource a document was loaded from.
func (doc *Document) ResourceID() string {
	return doc.resourceID
}

// Root returns the root style node. Its declarations apply to every
// element, its rule index holds the selectors.
func (doc *Document) Root() *StyleNode {
	return doc.root
}

// IsMonitored is true if changes of attribute id may change the outcome
// of matching this document.
func (doc *Document) IsMonitored(id attr.ID) bool {
	_, ok := doc.monitored[id]
	return ok
}

// MonitoredAttributes returns the ids of all attributes referenced by
// attribute equality rules.
func (doc *Document) MonitoredAttributes() map[attr.ID]struct{} {
	m := make(map[attr.ID]struct{}, len(doc.monitored))
	for id := range doc.monitored {
		m[id] = struct{}{}
	}
	return m
}

// AttributesForClass returns the declarations of the top-level rule for a
// class as an inline style bundle.
func (doc *Document) AttributesForClass(class string) (*Bundle, error) {
	if doc.root.Rules != nil {
		if n, ok := doc.root.Rules.ByClass[class]; ok {
			return NewBundle(n.Declarations), nil
		}
	}
	return nil, fmt.Errorf("no rule for class '%s' in document %s", class, doc.resourceID)
}

func (doc *Document) String() string {
	return fmt.Sprintf("Document(%s)", doc.resourceID)
}

// --- Inline styles ---------------------------------------------------------

// Bundle is an immutable set of declarations from an inline style. A bundle
// is an attribute owner at the ordinary CSS priority band; bundles are
// compared by identity.
type Bundle struct {
	declarations []Declaration
}

// NewBundle creates a bundle, copying decls.
func NewBundle(decls []Declaration) *Bundle {
	return &Bundle{declarations: append([]Declaration(nil), decls...)}
}

// Declarations returns the declarations of b. Callers must not modify them.
func (b *Bundle) Declarations() []Declaration {
	return b.declarations
}

// Len returns the number of declarations.
func (b *Bundle) Len() int {
	return len(b.declarations)
}

// AttributePriority is part of interface attr.Owner.
func (b *Bundle) AttributePriority(attr.ID) int {
	return attr.PriorityCSS
}

// AttributeSource is part of interface attr.Owner.
func (b *Bundle) AttributeSource(attr.ID) string {
	return "style"
}

var _ attr.Owner = &Bundle{}
