/*
Package attr defines the vocabulary shared by every part of the style cascade:
attribute ids, attribute owners and the narrow contracts to the element layer.

Attribute Owners

A styleable attribute of an element may be supplied by several owners at the
same time: a native override, script code, the element's CSS node(s) or an
inline style bundle. Every owner reports a priority band; the numerically
lowest band wins. Bands are fixed:

   0     explicit native override
   1     value set on the root of a subtree from a parent scope
   2     plain element owner (imperatively set)
   3     CSS node representing the root of a child subtree
   4     ordinary CSS node, inline style bundles
   1000  placeholder / default fallback

Contracts

Handler is the per-attribute semantic code which turns a raw value into a
visual effect. Applier is the sink CSS nodes and inline styles write into.
Both are implemented outside of the cascade; package applier contains a
reference implementation of Applier.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 Norbert Pillmayer <norbert@pillmayer.com>

*/
package attr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cascade.attr'.
func tracer() tracing.Trace {
	return tracing.Select("cascade.attr")
}
