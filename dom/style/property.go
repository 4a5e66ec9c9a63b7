/*
Package style holds the raw value type for styleable attributes.

Values enter the cascade as raw strings, either from a style document, from
an inline style bundle or from script code. Attribute handlers turn a raw
value into something concrete (a dimension, a color, …) later.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 Norbert Pillmayer <norbert@pillmayer.com>

*/
package style

import (
	"sort"
	"strings"

	"github.com/npillmayer/schuko/tracing"
)

// tracer will return a tracer. We are tracing to 'cascade.style'
func tracer() tracing.Trace {
	return tracing.Select("cascade.style")
}

// Property is a raw value for a styleable attribute. For example, with
//
//     background-color: red
//
// a property value of "red" is set. The main purpose of wrapping
// the raw string value into type Property is to provide a set of
// convenient helpers.
type Property string

// NullStyle is an empty property value. Within the cascade it stands for
// "undefined": setting NullStyle for an attribute removes the owner's value.
const NullStyle Property = ""

func (p Property) String() string {
	return string(p)
}

// IsEmpty checks wether a property is empty, i.e. the null-string.
func (p Property) IsEmpty() bool {
	return p == ""
}

// Normalized returns p trimmed and lower-cased.
func (p Property) Normalized() Property {
	return Property(strings.ToLower(strings.TrimSpace(string(p))))
}

// KeyValue is a container for a style property.
type KeyValue struct {
	Key   string
	Value Property
}

// SortedKeyValues returns the entries of a raw style map as key-value pairs,
// ordered by key. Go maps do not keep insertion order; sorting gives every
// content-equal map the same sequence.
func SortedKeyValues(m map[string]Property) []KeyValue {
	kv := make([]KeyValue, 0, len(m))
	for k, v := range m {
		kv = append(kv, KeyValue{Key: k, Value: v})
	}
	sort.Slice(kv, func(i, j int) bool {
		return kv[i].Key < kv[j].Key
	})
	return kv
}
