/*
Package css computes the style cascade for elements.

Every element taking part in styling owns a Manager. The manager holds up to
two Nodes: one for the element's own identity (tag, id, classes, position
among siblings) and one for the element acting as the root of a child
subtree, styled by the document of an enclosing scope. Each node matches
itself against its style document and writes the winning declarations into
the element's attributes, as an attribute owner of its own. Owners are
arbitrated by the attribute layer (see package viewattr), so CSS values,
inline style bundles and values set by code may freely coexist.

Matching

A pass walks the rule index of a document level by level. At each level,
rules are tried in a fixed order: id, classes, tag (then "*"), attribute
equality, first child, last child, nth child, direct parent, ancestors.
Every declaration reached competes for its attribute; the declaration with
the higher priority wins, or with the higher order for equal priorities.

Concurrency

A pass runs synchronously on the element's home goroutine. Declaration maps
are recycled through a DeclarationPool owned by the caller, usually one per
update pass; a pool must not be shared between goroutines.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 Norbert Pillmayer <norbert@pillmayer.com>

*/
package css

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cascade.css'.
func tracer() tracing.Trace {
	return tracing.Select("cascade.css")
}
