package viewattr

import (
	"fmt"

	"github.com/npillmayer/cascade/attr"
	"github.com/xlab/treeprint"
)

/*
type Storage
	= Empty
	| Single value
	| Many values resolvedIndex
*/

// Match returns a matcher on the storage kind of an attribute. Use it like
// this:
//
//     var v Value
//     var vs []Value
//     switch m := a.Match(); m {
//     case m.Single(&v):
//         …
//     case m.Many(&vs, nil):
//         …
//     case m.Empty():
//         …
//     }
//
// Values handed out are copies; modifying them does not affect a.
func (a *Attribute) Match() *Matcher {
	return &Matcher{a: a}
}

// Matcher is part of pattern matching on the storage of attributes and
// intended to be instantiated with Attribute.Match() only.
type Matcher struct {
	a *Attribute
}

// Empty matches attributes without any value.
func (m *Matcher) Empty() *Matcher {
	if m.a.kind == storageEmpty {
		return m
	}
	return nil
}

// Single matches attributes holding a single inline value.
func (m *Matcher) Single(v *Value) *Matcher {
	if m.a.kind == storageSingle {
		if v != nil {
			*v = m.a.single
		}
		return m
	}
	return nil
}

// Many matches attributes holding a collection of values, handing out the
// values and the index of the resolved one.
func (m *Matcher) Many(vs *[]Value, resolved *int) *Matcher {
	if m.a.kind == storageMany {
		if vs != nil {
			*vs = append([]Value(nil), m.a.many.values...)
		}
		if resolved != nil {
			*resolved = m.a.many.resolved
		}
		return m
	}
	return nil
}

// Dump adds a branch describing all owners' values to a tree printer.
// The resolved value is marked with an asterisk.
func (a *Attribute) Dump(printer treeprint.Tree) treeprint.Tree {
	branch := printer.AddBranch(fmt.Sprintf("%s = %q", a.handler.Name(), a.ResolvedValue()))
	id := a.handler.ID()
	line := func(v *Value, active bool) string {
		mark := " "
		if active {
			mark = "*"
		}
		return fmt.Sprintf("%s %-12s prio=%-4d %q", mark, attr.SourceOf(v.Owner, id),
			attr.PriorityOf(v.Owner, id), v.Raw)
	}
	switch a.kind {
	case storageSingle:
		branch.AddNode(line(&a.single, true))
	case storageMany:
		for i := range a.many.values {
			branch.AddNode(line(&a.many.values[i], i == a.many.resolved))
		}
	}
	return branch
}
