package css

import (
	"fmt"
	"sort"
	"strings"

	"github.com/npillmayer/cascade/attr"
	"github.com/npillmayer/cascade/dom/style"
	"github.com/npillmayer/cascade/dom/style/cssom"
)

// ParentResolver finds the node representing the nearest styled ancestor
// for a given document. Resolvers are looked up on every pass and must not
// own the returned node.
type ParentResolver interface {
	ParentForDocument(doc *cssom.Document) *Node
}

// Node is the identity of an element as far as selectors are concerned.
// A Node is also the attribute owner of all values it applies.
type Node struct {
	tag         string
	id          string
	class       string   // raw class attribute
	classes     []string // resolved class tokens, no duplicates
	index       int      // index among siblings
	count       int      // number of siblings, including this node
	subtreeRoot bool     // styles the root of a child subtree from a parent scope
	resolver    ParentResolver
	monitored   map[attr.ID]struct{}
	last        DeclarationMap // declarations applied by the last pass
}

// NewNode creates a node without any identity.
func NewNode() *Node {
	return &Node{}
}

func (n *Node) String() string {
	var b strings.Builder
	b.WriteString(n.tag)
	if n.id != "" {
		b.WriteString("#" + n.id)
	}
	for _, c := range n.classes {
		b.WriteString("." + c)
	}
	if b.Len() == 0 {
		b.WriteString("*")
	}
	return fmt.Sprintf("Node(%s %d/%d)", b.String(), n.index, n.count)
}

// SetClass sets the raw class attribute, a list of class names separated by
// spaces. It returns true if the value changed.
func (n *Node) SetClass(class string) bool {
	if n.class == class {
		return false
	}
	n.class = class
	n.classes = n.classes[:0]
	for _, c := range strings.Split(class, " ") {
		if c == "" || n.hasClass(c) {
			continue
		}
		n.classes = append(n.classes, c)
	}
	return true
}

func (n *Node) hasClass(c string) bool {
	for _, x := range n.classes {
		if x == c {
			return true
		}
	}
	return false
}

// Class returns the raw class attribute.
func (n *Node) Class() string {
	return n.class
}

// Classes returns the resolved class names.
func (n *Node) Classes() []string {
	return append([]string(nil), n.classes...)
}

// SetTagName sets the element tag, returning true if it changed.
func (n *Node) SetTagName(tag string) bool {
	if n.tag == tag {
		return false
	}
	n.tag = tag
	return true
}

// TagName returns the element tag.
func (n *Node) TagName() string {
	return n.tag
}

// SetNodeID sets the element id, returning true if it changed.
func (n *Node) SetNodeID(id string) bool {
	if n.id == id {
		return false
	}
	n.id = id
	return true
}

// NodeID returns the element id.
func (n *Node) NodeID() string {
	return n.id
}

// SetIndexAmongSiblings returns true if the index changed.
func (n *Node) SetIndexAmongSiblings(index int) bool {
	if n.index == index {
		return false
	}
	n.index = index
	return true
}

// IndexAmongSiblings returns the 0-based position of the element.
func (n *Node) IndexAmongSiblings() int {
	return n.index
}

// SetSiblingsCount returns true if the count changed.
func (n *Node) SetSiblingsCount(count int) bool {
	if n.count == count {
		return false
	}
	n.count = count
	return true
}

// SiblingsCount returns the number of children of the element's parent.
func (n *Node) SiblingsCount() int {
	return n.count
}

// SetSubtreeRoot marks n as styling the root of a child subtree on behalf
// of a parent scope. This moves n to a stronger priority band.
func (n *Node) SetSubtreeRoot(isRoot bool) {
	n.subtreeRoot = isRoot
}

// IsSubtreeRoot is true for nodes styling a child subtree root.
func (n *Node) IsSubtreeRoot() bool {
	return n.subtreeRoot
}

// SetParentResolver sets the capability to find ancestor nodes.
func (n *Node) SetParentResolver(r ParentResolver) {
	n.resolver = r
}

// SetMonitoredAttributes sets the attributes referenced by the node's
// document in attribute equality rules. nil clears the set.
func (n *Node) SetMonitoredAttributes(ids map[attr.ID]struct{}) {
	n.monitored = ids
}

// AttributeChanged is true if a change of attribute id may change the
// outcome of matching, i.e. a new pass is required.
func (n *Node) AttributeChanged(id attr.ID) bool {
	_, ok := n.monitored[id]
	return ok
}

// AttributePriority is part of interface attr.Owner.
func (n *Node) AttributePriority(attr.ID) int {
	if n.subtreeRoot {
		return attr.PriorityCSSParentOverridden
	}
	return attr.PriorityCSS
}

// AttributeSource is part of interface attr.Owner.
func (n *Node) AttributeSource(attr.ID) string {
	return "css"
}

var _ attr.Owner = &Node{}

// AppliedDeclarations returns a copy of the declarations applied by the
// last pass.
func (n *Node) AppliedDeclarations() DeclarationMap {
	m := make(DeclarationMap, len(n.last))
	for k, v := range n.last {
		m[k] = v
	}
	return m
}

func (n *Node) resolveParent(doc *cssom.Document) *Node {
	if n.resolver == nil {
		return nil
	}
	return n.resolver.ParentForDocument(doc)
}

// --- Matching --------------------------------------------------------------

// insert enters d into best if it wins against the current declaration for
// its attribute.
func insert(d *cssom.Declaration, best DeclarationMap) {
	if cur, ok := best[d.Attribute]; !ok || d.Overrides(cur) {
		best[d.Attribute] = d
	}
}

func (n *Node) insertNode(doc *cssom.Document, sn *cssom.StyleNode, applier attr.Applier, best DeclarationMap) {
	for i := range sn.Declarations {
		insert(&sn.Declarations[i], best)
	}
	if sn.Rules != nil {
		n.insertDeclarations(doc, sn.Rules, applier, best)
	}
}

// insertDeclarations matches n against one level of rules.
func (n *Node) insertDeclarations(doc *cssom.Document, r *cssom.RuleIndex, applier attr.Applier,
	best DeclarationMap) {
	//
	if len(r.ByID) > 0 {
		if sn, ok := r.ByID[n.id]; ok {
			n.insertNode(doc, sn, applier, best)
		}
	}
	if len(r.ByClass) > 0 {
		for _, c := range n.classes {
			if sn, ok := r.ByClass[c]; ok {
				n.insertNode(doc, sn, applier, best)
			}
		}
	}
	if len(r.ByTag) > 0 {
		if n.tag != "" {
			if sn, ok := r.ByTag[n.tag]; ok {
				n.insertNode(doc, sn, applier, best)
			}
		}
		if sn, ok := r.ByTag["*"]; ok {
			n.insertNode(doc, sn, applier, best)
		}
	}
	for _, ar := range r.AttributeRules {
		v := applier.ResolvedAttributeValue(ar.Attribute)
		if v != style.NullStyle && v == ar.Value { // undefined never matches
			n.insertNode(doc, ar.Node, applier, best)
		}
	}
	if r.FirstChild != nil && n.index == 0 {
		n.insertNode(doc, r.FirstChild, applier, best)
	}
	if r.LastChild != nil && n.index == n.count-1 {
		n.insertNode(doc, r.LastChild, applier, best)
	}
	for _, nr := range r.NthChild {
		if nr.Matches(n.index) {
			n.insertNode(doc, nr.Node, applier, best)
		}
	}
	if r.DirectParent != nil {
		if parent := n.resolveParent(doc); parent != nil {
			parent.insertDeclarations(doc, r.DirectParent, applier, best)
		}
	}
	if r.Ancestor != nil {
		for anc := n.resolveParent(doc); anc != nil; anc = anc.resolveParent(doc) {
			anc.insertDeclarations(doc, r.Ancestor, applier, best)
		}
	}
}

// Match computes the winning declaration per attribute for n, without
// applying anything. The returned map is taken from pool.
func (n *Node) Match(doc *cssom.Document, applier attr.Applier, pool *DeclarationPool) DeclarationMap {
	best := pool.Get()
	n.insertNode(doc, doc.Root(), applier, best)
	return best
}

// ApplyCSS runs a cascade pass: it matches n against doc and writes the
// outcome into applier. Attributes set by the previous pass but not matched
// any more are removed; all matched attributes are set again, relying on
// the applier to suppress writes which do not change anything.
func (n *Node) ApplyCSS(scope attr.Scope, doc *cssom.Document, applier attr.Applier, animator attr.Animator,
	pool *DeclarationPool) {
	//
	best := n.Match(doc, applier, pool)
	tracer().Debugf("%v: %d declarations from %s", n, len(best), doc.ResourceID())
	if n.last != nil {
		for _, id := range sortedIDs(n.last) {
			if _, ok := best[id]; !ok {
				applier.RemoveAttribute(scope, id, n, animator)
			}
		}
		pool.Put(n.last)
	}
	for _, id := range sortedIDs(best) {
		applier.SetAttribute(scope, id, n, best[id].Value, animator)
	}
	n.last = best
}

// RemoveAll removes every value n applied and forgets the last pass.
func (n *Node) RemoveAll(scope attr.Scope, applier attr.Applier, animator attr.Animator,
	pool *DeclarationPool) bool {
	//
	if n.last == nil {
		return false
	}
	changed := applier.RemoveAllAttributesForOwner(scope, n, animator)
	pool.Put(n.last)
	n.last = nil
	return changed
}

func sortedIDs(m DeclarationMap) []attr.ID {
	ids := make([]attr.ID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
