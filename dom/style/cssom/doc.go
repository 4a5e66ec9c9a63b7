/*
Package cssom is the object model of style documents.

A style document is an immutable tree of selector buckets. Each level of the
tree (a RuleIndex) groups style nodes by element id, by class, by tag, by
the value of another attribute and by position among siblings. Rules for
parents and ancestors point to a nested RuleIndex, which is evaluated
against the respective ancestor element.

Documents are built once (see package loader) and may be shared by many
element trees concurrently. Nothing in this package mutates a document
after construction.

Inline styles are represented by Bundles. A Bundle is a flat list of
declarations and an attribute owner in its own right. Bundles are usually
interned (see package stylecache), so they may be compared by identity.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 Norbert Pillmayer <norbert@pillmayer.com>
*/
package cssom

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'cascade.cssom'.
func tracer() tracing.Trace {
	return tracing.Select("cascade.cssom")
}
