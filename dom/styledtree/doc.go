/*
Package styledtree is a straightforward default implementation of a styled
element tree.

Overview

Every node of a styled tree is an element taking part in the cascade: it
owns an attribute set (package applier) and a style manager (package css).
Inserting and removing children keeps the managers' parent links and the
sibling positions up to date, so selectors like ":first-child" or
"list > item" work without further bookkeeping by clients.

Update runs a cascade pass over a whole tree, parents before children.
Values set by code use an element owner of their own, which wins against
CSS and inline styles.

This is the default implementation used by the engine. However, for
interactive use it may be appropriate to create a styled tree derived
from another type of styled node. The engine's design should fully
support this kind of switch.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 Norbert Pillmayer <norbert@pillmayer.com>

*/
package styledtree

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cascade.dom'.
func tracer() tracing.Trace {
	return tracing.Select("cascade.dom")
}
