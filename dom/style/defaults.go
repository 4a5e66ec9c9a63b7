package style

// Values of "default" have the following semantics:
// treat this as an inherent default, which should not be applied to a view
// but rather will be treated implicitely by rendering code.
var nonDimensions = map[string]string{
	"position":         "relative",
	"visibility":       "visible",
	"opacity":          "1",
	"background-color": "default",
	"border-color":     "default",
	"color":            "default",
	"overflow":         "visible",
	"touch-enabled":    "true",
}

var isDimension = map[string]string{
	"width":          "auto",
	"height":         "auto",
	"min-width":      "none",
	"min-height":     "none",
	"max-width":      "none",
	"max-height":     "none",
	"top":            "0",
	"right":          "0",
	"bottom":         "0",
	"left":           "0",
	"margin-top":     "0",
	"margin-left":    "0",
	"margin-right":   "0",
	"margin-bottom":  "0",
	"padding-top":    "0",
	"padding-left":   "0",
	"padding-right":  "0",
	"padding-bottom": "0",
	"border-width":   "0",
	"border-radius":  "0",
}

// DefaultValue returns the default value for an attribute name. Defaults
// are installed with the lowest authority of all owners (the placeholder
// band), i.e. any other owner setting a value will win.
func DefaultValue(name string) (Property, bool) {
	if dim, ok := isDimension[name]; ok {
		return Property(dim), true
	}
	if p, ok := nonDimensions[name]; ok {
		return Property(p), true
	}
	tracer().Debugf("no default value for attribute '%s'", name)
	return NullStyle, false
}

// IsDimension is a predicate for attributes carrying a length.
func IsDimension(name string) bool {
	_, ok := isDimension[name]
	return ok
}

// Defaults returns all known default values, sorted by attribute name.
func Defaults() []KeyValue {
	m := make(map[string]Property, len(isDimension)+len(nonDimensions))
	for k, v := range isDimension {
		m[k] = Property(v)
	}
	for k, v := range nonDimensions {
		m[k] = Property(v)
	}
	return SortedKeyValues(m)
}
