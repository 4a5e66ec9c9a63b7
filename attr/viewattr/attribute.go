/*
Package viewattr resolves a single attribute of a single element between
competing owners.

Every owner (CSS node, inline style bundle, script code, native override)
may hold one value for the attribute. The owner with the numerically lowest
priority band wins. Among owners of the same band, the value inserted or
changed most recently wins.

Storage

An attribute is either empty, holds a single value inline, or holds a
collection of values together with the index of the resolved one. The vast
majority of attributes only ever see a single owner, which therefore needs no
extra allocation. Once promoted to a collection, an attribute stays a
collection until its last value is removed.

Attributes are not safe for concurrent use; they live on the home thread of
their element.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 Norbert Pillmayer <norbert@pillmayer.com>

*/
package viewattr

import (
	"math"

	"github.com/npillmayer/cascade/attr"
	"github.com/npillmayer/cascade/dom/style"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cascade.attr'.
func tracer() tracing.Trace {
	return tracing.Select("cascade.attr")
}

// preprocessed is the memoized outcome of Handler.Preprocess.
type preprocessed struct {
	value interface{}
	err   error
}

// Value is one owner's raw value for an attribute, together with a lazily
// computed preprocessed form.
type Value struct {
	Owner attr.Owner
	Raw   style.Property
	seq   uint64        // insertion/update sequence, tie-break among equal priorities
	cache *preprocessed // nil if not yet computed
}

func (v *Value) preprocess(h attr.Handler) (interface{}, error) {
	if v.cache == nil {
		pv, err := h.Preprocess(v.Raw)
		v.cache = &preprocessed{value: pv, err: err}
	}
	return v.cache.value, v.cache.err
}

func (v *Value) invalidate() {
	v.cache = nil
}

// storage is the kind of representation an attribute currently uses.
type storage uint8

const (
	storageEmpty storage = iota
	storageSingle
	storageMany
)

type collection struct {
	values   []Value
	resolved int // index of the winning value
}

// Attribute is the per (element, attribute) resolution unit.
type Attribute struct {
	handler           attr.Handler
	kind              storage
	single            Value       // valid if kind == storageSingle
	many              *collection // valid if kind == storageMany
	seq               uint64
	hasAppliedValue   bool
	appliedValueDirty bool
	pendingAnimated   *preprocessed
}

// New creates an empty attribute driven by handler h.
func New(h attr.Handler) *Attribute {
	return &Attribute{handler: h}
}

// ID returns the attribute id, as reported by the handler.
func (a *Attribute) ID() attr.ID {
	return a.handler.ID()
}

// Name returns the attribute name, as reported by the handler.
func (a *Attribute) Name() string {
	return a.handler.Name()
}

// Handler returns the handler driving this attribute.
func (a *Attribute) Handler() attr.Handler {
	return a.handler
}

// SetHandler replaces the handler, e.g. after an element changed its class
// of view.
func (a *Attribute) SetHandler(h attr.Handler) {
	a.handler = h
}

// RequiresView is true if the handler can only apply values to a live view.
func (a *Attribute) RequiresView() bool {
	return a.handler.RequiresView()
}

// CanAffectLayout is true if changes of the attribute invalidate layout.
func (a *Attribute) CanAffectLayout() bool {
	return a.handler.InvalidatesLayout()
}

func (a *Attribute) nextSeq() uint64 {
	a.seq++
	return a.seq
}

// Empty is true if no owner holds a value.
func (a *Attribute) Empty() bool {
	return a.kind == storageEmpty
}

// Len returns the number of owners holding a value.
func (a *Attribute) Len() int {
	switch a.kind {
	case storageSingle:
		return 1
	case storageMany:
		return len(a.many.values)
	}
	return 0
}

// SetValue installs or updates the value for owner. It returns true only if
// the resolved value changed.
func (a *Attribute) SetValue(owner attr.Owner, value style.Property) bool {
	switch a.kind {
	case storageEmpty:
		a.single = Value{Owner: owner, Raw: value, seq: a.nextSeq()}
		a.kind = storageSingle
		a.appliedValueDirty = true
		return true
	case storageSingle:
		if a.single.Owner != owner {
			a.promote()
			return a.SetValue(owner, value)
		}
		if a.single.Raw == value {
			return false
		}
		a.single.Raw = value
		a.single.seq = a.nextSeq()
		a.single.invalidate()
		a.appliedValueDirty = true
		return true
	}
	c := a.many
	before := c.values[c.resolved].Raw
	for i := range c.values {
		if c.values[i].Owner != owner {
			continue
		}
		if c.values[i].Raw == value {
			return false
		}
		c.values[i].Raw = value
		c.values[i].seq = a.nextSeq()
		c.values[i].invalidate()
		if i == c.resolved {
			a.appliedValueDirty = true
			return true
		}
		return a.reresolve(before) // an equal-priority owner may take over
	}
	c.values = append(c.values, Value{Owner: owner, Raw: value, seq: a.nextSeq()})
	return a.reresolve(before)
}

// promote turns a single value into a collection of one.
func (a *Attribute) promote() {
	tracer().Debugf("attribute %s: promoting to collection", a.handler.Name())
	c := &collection{values: make([]Value, 1, 2)}
	c.values[0] = a.single
	a.single = Value{}
	a.many = c
	a.kind = storageMany
}

// reresolve recomputes the resolved index, given the raw value which was
// resolved before. It returns true and marks the attribute dirty if the
// resolved raw value changed. A new winner holding the same raw value is
// not a change.
func (a *Attribute) reresolve(before style.Property) bool {
	c := a.many
	c.resolved = a.resolveIndex()
	if c.values[c.resolved].Raw == before {
		return false
	}
	a.appliedValueDirty = true
	return true
}

// resolveIndex finds the value with the lowest owner priority, breaking ties
// in favour of the most recent insertion or update.
func (a *Attribute) resolveIndex() int {
	id := a.handler.ID()
	best, bestPrio := 0, math.MaxInt
	var bestSeq uint64
	for i := range a.many.values {
		v := &a.many.values[i]
		p := attr.PriorityOf(v.Owner, id)
		if p < bestPrio || (p == bestPrio && v.seq > bestSeq) {
			best, bestPrio, bestSeq = i, p, v.seq
		}
	}
	return best
}

// RemoveValue removes owner's value. It returns true if the resolved value
// changed. Removing the last value makes the attribute empty.
func (a *Attribute) RemoveValue(owner attr.Owner) bool {
	switch a.kind {
	case storageEmpty:
		return false
	case storageSingle:
		if a.single.Owner != owner {
			return false
		}
		a.single = Value{}
		a.kind = storageEmpty
		return true
	}
	c := a.many
	for i := range c.values {
		if c.values[i].Owner != owner {
			continue
		}
		before := c.values[c.resolved].Raw
		c.values = append(c.values[:i], c.values[i+1:]...)
		if len(c.values) == 0 {
			a.many = nil
			a.kind = storageEmpty
			return true
		}
		if i == c.resolved {
			return a.reresolve(before)
		} else if i < c.resolved {
			c.resolved--
		}
		return false
	}
	return false
}

// Value returns the raw value held by owner, or NullStyle.
func (a *Attribute) Value(owner attr.Owner) style.Property {
	switch a.kind {
	case storageSingle:
		if a.single.Owner == owner {
			return a.single.Raw
		}
	case storageMany:
		for i := range a.many.values {
			if a.many.values[i].Owner == owner {
				return a.many.values[i].Raw
			}
		}
	}
	return style.NullStyle
}

// active returns the resolved value entry or nil.
func (a *Attribute) active() *Value {
	switch a.kind {
	case storageSingle:
		return &a.single
	case storageMany:
		return &a.many.values[a.many.resolved]
	}
	return nil
}

// ResolvedValue returns the raw value of the winning owner, or NullStyle
// if the attribute is empty.
func (a *Attribute) ResolvedValue() style.Property {
	if v := a.active(); v != nil {
		return v.Raw
	}
	return style.NullStyle
}

// ResolvedOwner returns the winning owner, or nil.
func (a *Attribute) ResolvedOwner() attr.Owner {
	if v := a.active(); v != nil {
		return v.Owner
	}
	return nil
}

// ResolvedPreprocessedValue returns the preprocessed form of the resolved
// value, computing and caching it on first use. An empty attribute yields
// (nil, nil).
func (a *Attribute) ResolvedPreprocessedValue() (interface{}, error) {
	v := a.active()
	if v == nil {
		return nil, nil
	}
	return v.preprocess(a.handler)
}

// ResolvedPriority returns the priority band of the winning owner, or
// math.MaxInt for an empty attribute.
func (a *Attribute) ResolvedPriority() int {
	v := a.active()
	if v == nil {
		return math.MaxInt
	}
	return attr.PriorityOf(v.Owner, a.handler.ID())
}

// ReplaceValue overwrites the value of every owner with value and marks it
// as applied. It is used when the platform itself changed a value (e.g. a
// scroll offset) and the cascade has to catch up without re-applying.
func (a *Attribute) ReplaceValue(value style.Property) {
	pv := &preprocessed{value: value}
	switch a.kind {
	case storageSingle:
		a.single.Raw = value
		a.single.cache = pv
	case storageMany:
		for i := range a.many.values {
			a.many.values[i].Raw = value
			a.many.values[i].cache = pv
		}
	}
	a.appliedValueDirty = false
	a.hasAppliedValue = true
}

// MarkDirty drops all cached preprocessed values and forces the next
// update to re-apply.
func (a *Attribute) MarkDirty() {
	a.appliedValueDirty = true
	switch a.kind {
	case storageSingle:
		a.single.invalidate()
	case storageMany:
		for i := range a.many.values {
			a.many.values[i].invalidate()
		}
	}
}

// HasAppliedValue is true if the last update applied a value.
func (a *Attribute) HasAppliedValue() bool {
	return a.hasAppliedValue
}

// Dirty is true if the resolved value changed since it was last applied.
func (a *Attribute) Dirty() bool {
	return a.appliedValueDirty
}

// Copy returns a detached attribute holding the currently resolved value
// without an owner. Later changes to a do not affect the copy.
func (a *Attribute) Copy() *Attribute {
	cp := New(a.handler)
	if a.Empty() {
		return cp
	}
	pv, err := a.ResolvedPreprocessedValue()
	if err == nil {
		cp.single = Value{
			Raw:   a.ResolvedValue(),
			seq:   cp.nextSeq(),
			cache: &preprocessed{value: pv},
		}
		cp.kind = storageSingle
	}
	cp.appliedValueDirty = true
	return cp
}
