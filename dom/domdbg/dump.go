package domdbg

import (
	"fmt"
	"sort"

	"github.com/npillmayer/cascade/attr"
	"github.com/npillmayer/cascade/dom/style/cssom"
	"github.com/npillmayer/cascade/dom/styledtree"
	"github.com/npillmayer/cascade/tree"
	"github.com/xlab/treeprint"
)

// DumpDocument renders the rule tree of a style document.
func DumpDocument(doc *cssom.Document, ids *attr.IDs) string {
	tp := treeprint.New()
	dumpNode(tp.AddBranch(doc.ResourceID()), doc.Root(), ids)
	return tp.String()
}

func dumpNode(branch treeprint.Tree, n *cssom.StyleNode, ids *attr.IDs) {
	for _, d := range n.Declarations {
		branch.AddNode(fmt.Sprintf("%s: %s  (prio=%d order=%d)", ids.Name(d.Attribute), d.Value,
			d.Priority, d.Order))
	}
	if n.Rules != nil {
		dumpIndex(branch, n.Rules, ids)
	}
}

func dumpIndex(branch treeprint.Tree, r *cssom.RuleIndex, ids *attr.IDs) {
	bucket := func(prefix string, m map[string]*cssom.StyleNode) {
		for _, k := range sortedKeys(m) {
			dumpNode(branch.AddBranch(prefix+k), m[k], ids)
		}
	}
	bucket("#", r.ByID)
	bucket(".", r.ByClass)
	bucket("", r.ByTag)
	for _, ar := range r.AttributeRules {
		dumpNode(branch.AddBranch(fmt.Sprintf("[%s=%s]", ids.Name(ar.Attribute), ar.Value)), ar.Node, ids)
	}
	if r.FirstChild != nil {
		dumpNode(branch.AddBranch(":first-child"), r.FirstChild, ids)
	}
	if r.LastChild != nil {
		dumpNode(branch.AddBranch(":last-child"), r.LastChild, ids)
	}
	for _, nr := range r.NthChild {
		dumpNode(branch.AddBranch(fmt.Sprintf(":nth-child(%dn+%d)", nr.N, nr.Offset)), nr.Node, ids)
	}
	if r.DirectParent != nil {
		dumpIndex(branch.AddBranch("parent >"), r.DirectParent, ids)
	}
	if r.Ancestor != nil {
		dumpIndex(branch.AddBranch("ancestor ~"), r.Ancestor, ids)
	}
}

func sortedKeys(m map[string]*cssom.StyleNode) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DumpTree renders a styled tree, listing every owner's value of every
// attribute per element.
func DumpTree(root *tree.Node[*styledtree.StyNode]) string {
	tp := treeprint.New()
	dumpElement(tp, root)
	return tp.String()
}

func dumpElement(branch treeprint.Tree, n *tree.Node[*styledtree.StyNode]) {
	sn := styledtree.Node(n)
	b := branch.AddBranch(sn.String())
	sn.Attributes().Dump(b)
	for _, ch := range n.Children() {
		dumpElement(b, ch)
	}
}
