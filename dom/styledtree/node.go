package styledtree

import (
	"fmt"

	"github.com/npillmayer/cascade/attr"
	"github.com/npillmayer/cascade/attr/applier"
	"github.com/npillmayer/cascade/dom/style"
	"github.com/npillmayer/cascade/dom/style/css"
	"github.com/npillmayer/cascade/dom/style/cssom"
	"github.com/npillmayer/cascade/dom/style/stylecache"
	"github.com/npillmayer/cascade/tree"
	"go.uber.org/multierr"
)

// StyNode is a style node, the building block of the styled tree.
type StyNode struct {
	tree.Node[*StyNode] // we build on top of general purpose tree
	tag                 string
	manager             *css.Manager
	attrs               *applier.Attributes
	owner               attr.Owner // owner of values set by code
	needsCSS            bool
}

// NewNode creates a styled node for an element with a given tag. Attribute
// handlers are resolved with h.
func NewNode(tag string, h attr.Handlers, opts ...applier.Option) *tree.Node[*StyNode] {
	sn := &StyNode{tag: tag, manager: css.NewManager(), needsCSS: true}
	sn.Payload = sn // Payload will always reference the node itself
	sn.attrs = applier.New(sn, h, opts...)
	sn.owner = attr.NewOwner(attr.PriorityElement, "element")
	sn.manager.SetElementTag(tag, false)
	return &sn.Node
}

// Node gets the styled node from a generic tree node.
func Node(n *tree.Node[*StyNode]) *StyNode {
	if n == nil {
		return nil
	}
	return n.Payload
}

func (sn *StyNode) String() string {
	id := sn.manager.NodeID()
	if id != "" {
		return fmt.Sprintf("<%s #%s>", sn.tag, id)
	}
	return fmt.Sprintf("<%s>", sn.tag)
}

// Tag returns the element tag.
func (sn *StyNode) Tag() string {
	return sn.tag
}

// Manager returns the style manager of the element.
func (sn *StyNode) Manager() *css.Manager {
	return sn.manager
}

// Attributes returns the attribute set of the element.
func (sn *StyNode) Attributes() *applier.Attributes {
	return sn.attrs
}

// NeedsCSS is true if a change since the last pass may alter the outcome
// of the cascade for this element.
func (sn *StyNode) NeedsCSS() bool {
	return sn.needsCSS
}

func (sn *StyNode) invalidate(changed bool) bool {
	if changed {
		sn.needsCSS = true
	}
	return changed
}

// SetDocument attaches a style document to the element.
func (sn *StyNode) SetDocument(doc *cssom.Document) bool {
	return sn.invalidate(sn.manager.SetCSSDocument(doc, false))
}

// SetClass sets the class attribute of the element.
func (sn *StyNode) SetClass(class string) bool {
	return sn.invalidate(sn.manager.SetCSSClass(class, false))
}

// SetID sets the id of the element.
func (sn *StyNode) SetID(id string) bool {
	return sn.invalidate(sn.manager.SetElementID(id, false))
}

// Embed styles the element as the root of a child subtree, on behalf of
// an enclosing scope using doc. tag, id and class are the element's
// identity as seen from that scope.
func (sn *StyNode) Embed(doc *cssom.Document, tag, id, class string) bool {
	changed := sn.manager.SetCSSDocument(doc, true)
	changed = sn.manager.SetElementTag(tag, true) || changed
	changed = sn.manager.SetElementID(id, true) || changed
	changed = sn.manager.SetCSSClass(class, true) || changed
	if n := sn.Parent(); n != nil {
		sn.manager.SetSiblingsIndexes(n.ChildCount(), n.IndexOfChild(&sn.Node))
	}
	return sn.invalidate(changed)
}

// SetAttribute sets a value from code. Code values win against CSS and
// inline styles. Setting NullStyle removes the value again.
func (sn *StyNode) SetAttribute(scope attr.Scope, id attr.ID, value style.Property, animator attr.Animator) bool {
	changed := sn.attrs.SetAttribute(scope, id, sn.owner, value, animator)
	if changed && sn.manager.AttributeChanged(id) {
		tracer().Debugf("%v: change of monitored attribute #%d", sn, id)
		sn.needsCSS = true
	}
	return changed
}

// SetStyle applies an inline style, interned by cache. A nil map removes
// all inline styles.
func (sn *StyNode) SetStyle(scope attr.Scope, raw map[string]style.Property, cache *stylecache.Cache,
	animator attr.Animator) bool {
	//
	ctx := css.UpdateContext{Scope: scope, Applier: sn.attrs, Animator: animator}
	if raw == nil {
		return sn.manager.Apply(nil, ctx)
	}
	return sn.manager.Apply(cache.Resolve(raw), ctx)
}

// --- Tree structure --------------------------------------------------------

// AddChild appends child to parent.
func AddChild(parent, child *tree.Node[*StyNode]) {
	InsertChildAt(parent, child, parent.ChildCount())
}

// InsertChildAt inserts child at position i among the children of parent.
func InsertChildAt(parent, child *tree.Node[*StyNode], i int) {
	if old := child.Parent(); old != nil {
		Remove(child)
	}
	parent.InsertChildAt(i, child)
	Node(child).manager.SetParent(Node(parent).manager)
	Node(child).needsCSS = true
	reindex(parent)
}

// Remove detaches n from its parent.
func Remove(n *tree.Node[*StyNode]) {
	parent := n.Parent()
	if parent == nil {
		return
	}
	n.Isolate()
	Node(n).manager.SetParent(nil)
	Node(n).needsCSS = true
	reindex(parent)
}

// reindex updates the sibling positions of all children of parent.
func reindex(parent *tree.Node[*StyNode]) {
	children := parent.Children()
	for i, ch := range children {
		Node(ch).invalidate(Node(ch).manager.SetSiblingsIndexes(len(children), i))
	}
}

// --- Passes ----------------------------------------------------------------

// Options for a pass over a styled tree.
type Options struct {
	Scope    attr.Scope
	Animator attr.Animator
	Pool     *css.DeclarationPool
	Force    bool // update clean elements too
}

// Update runs a cascade pass over the tree rooted at root, parents before
// children. A change of an element invalidates its descendants, as parent
// and ancestor selectors may depend on it. Returns the number of elements
// updated.
func Update(root *tree.Node[*StyNode], opts Options) int {
	count := 0
	var update func(n *tree.Node[*StyNode], force bool)
	update = func(n *tree.Node[*StyNode], force bool) {
		sn := Node(n)
		dirty := force || sn.needsCSS
		if dirty && sn.manager.NeedsCSSUpdate() {
			sn.manager.UpdateCSS(css.UpdateContext{
				Scope:    opts.Scope,
				Applier:  sn.attrs,
				Animator: opts.Animator,
				Pool:     opts.Pool,
			})
			count++
		}
		sn.needsCSS = false
		for _, ch := range n.Children() {
			update(ch, dirty)
		}
	}
	update(root, opts.Force)
	tracer().Debugf("cascade pass updated %d elements", count)
	return count
}

// Mount signals every element of the tree that its view has been created.
// All failures are reported, combined into a single error.
func Mount(root *tree.Node[*StyNode], scope attr.Scope, animator attr.Animator) error {
	var errs error
	root.Walk(func(n *tree.Node[*StyNode]) bool {
		if err := Node(n).attrs.DidAddView(scope, animator); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%v: %w", Node(n), err))
		}
		return true
	})
	return errs
}

// Unmount signals every element of the tree that its view goes away.
func Unmount(root *tree.Node[*StyNode], scope attr.Scope) error {
	var errs error
	root.Walk(func(n *tree.Node[*StyNode]) bool {
		if err := Node(n).attrs.WillRemoveView(scope); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%v: %w", Node(n), err))
		}
		return true
	})
	return errs
}

// SetDocument attaches doc to every element of the tree.
func SetDocument(root *tree.Node[*StyNode], doc *cssom.Document) {
	root.Walk(func(n *tree.Node[*StyNode]) bool {
		Node(n).SetDocument(doc)
		return true
	})
}
