/*
Package css provides value types and stock attribute handlers.

Attribute handlers turn raw attribute values into concrete values. This
package offers preprocessors for the most common kinds of values
(dimensions, colors, numbers, flags) and FuncHandler, a handler assembled
from functions, which is all most attributes need.

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

// tracer traces with key 'cascade.handler'.
func tracer() tracing.Trace {
	return tracing.Select("cascade.handler")
}
