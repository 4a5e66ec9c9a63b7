/*
Package domdbg implements helpers to debug styled element trees and style
documents.

Rule indexes, attribute sets and styled trees may be rendered as text trees
(using treeprint) for test logs, or as GraphViz diagrams.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 Norbert Pillmayer <norbert@pillmayer.com>


*/
package domdbg
