/*
Package dom groups the document side of the cascade.

Overview

Styling a document involves several layers, each living in its own
sub-package:

    style              property values and defaults
    style/cssom        style documents, rule indexes and style bundles
    style/cssom/loader decoding style documents from YAML or Ion
    style/css          per-node rule matching and the CSS owner manager
    style/stylecache   de-duplication of inline style bundles
    styledtree         a tree of styled nodes driving the cascade
    domdbg             debugging output for documents and trees

Tree Implementation

Styled nodes are built on top of a general purpose tree type
(package tree). In a fully object oriented programming language we would
subclass this tree type, but in Go we resort to composition, thus
including a generic tree node in every styled node. The downside of this
approach is that we will have to provide an adapter to return the
styled node from the generic type (styledtree.Node).

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 Norbert Pillmayer <norbert@pillmayer.com>

*/
package dom
