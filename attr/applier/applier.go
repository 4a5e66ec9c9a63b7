/*
Package applier holds all attributes of one element and arbitrates between
owners writing into them.

Attributes implements attr.Applier. Every change of a resolved value is
pushed to the element right away, through the attribute's handler.
Attributes which lose their last value are dropped, after their handler had
a chance to reset the element.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 Norbert Pillmayer <norbert@pillmayer.com>

*/
package applier

import (
	"fmt"
	"sort"

	"github.com/npillmayer/cascade/attr"
	"github.com/npillmayer/cascade/attr/viewattr"
	"github.com/npillmayer/cascade/dom/style"
	"github.com/npillmayer/schuko/tracing"
	"github.com/xlab/treeprint"
	"go.uber.org/multierr"
)

// tracer traces with key 'cascade.applier'.
func tracer() tracing.Trace {
	return tracing.Select("cascade.applier")
}

// Attributes is the attribute set of a single element.
type Attributes struct {
	handlers          attr.Handlers
	ids               *attr.IDs // for naming attributes in messages, may be nil
	element           attr.Element
	attrs             map[attr.ID]*viewattr.Attribute
	hasView           bool
	animationsEnabled bool
	onLayout          func(attr.ID) // called for changes of layout relevant attributes
	destroyed         bool
}

// Option configures an attribute set at creation time.
type Option func(*Attributes)

// WithIDs lets the attribute set name attributes in trace messages.
func WithIDs(ids *attr.IDs) Option {
	return func(a *Attributes) { a.ids = ids }
}

// WithAnimations enables animated application of changes.
func WithAnimations(enabled bool) Option {
	return func(a *Attributes) { a.animationsEnabled = enabled }
}

// OnLayoutInvalidated registers a callback for changes of attributes whose
// handler reports InvalidatesLayout.
func OnLayoutInvalidated(f func(attr.ID)) Option {
	return func(a *Attributes) { a.onLayout = f }
}

// New creates an empty attribute set for element el, resolving handlers with h.
func New(el attr.Element, h attr.Handlers, opts ...Option) *Attributes {
	a := &Attributes{
		handlers: h,
		element:  el,
		attrs:    make(map[attr.ID]*viewattr.Attribute),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Element returns the element this set applies attributes to.
func (a *Attributes) Element() attr.Element {
	return a.element
}

// HasView is true while the element has a live view.
func (a *Attributes) HasView() bool {
	return a.hasView
}

func (a *Attributes) name(id attr.ID) string {
	if a.ids != nil {
		return a.ids.Name(id)
	}
	return fmt.Sprintf("#%d", id)
}

// emplace returns the attribute for id, creating it if necessary. It
// returns nil if no handler is known for id.
func (a *Attributes) emplace(id attr.ID) *viewattr.Attribute {
	if at, ok := a.attrs[id]; ok {
		return at
	}
	h, ok := a.handlers.Handler(id)
	if !ok {
		tracer().Errorf("could not set attribute '%s': %v", a.name(id), attr.ErrUnknownAttribute)
		return nil
	}
	at := viewattr.New(h)
	a.attrs[id] = at
	return at
}

// SetAttribute is part of interface attr.Applier. Setting NullStyle removes
// owner's value.
func (a *Attributes) SetAttribute(scope attr.Scope, id attr.ID, owner attr.Owner, value style.Property,
	animator attr.Animator) bool {
	//
	if a.destroyed {
		return false
	}
	if value.IsEmpty() {
		return a.RemoveAttribute(scope, id, owner, animator)
	}
	at := a.emplace(id)
	if at == nil {
		return false
	}
	if animator != nil {
		at.WillAnimate()
	}
	if !at.SetValue(owner, value) {
		return false
	}
	a.processChange(scope, id, at, animator)
	return true
}

// RemoveAttribute is part of interface attr.Applier.
func (a *Attributes) RemoveAttribute(scope attr.Scope, id attr.ID, owner attr.Owner,
	animator attr.Animator) bool {
	//
	at, ok := a.attrs[id]
	if !ok || a.destroyed {
		return false
	}
	if animator != nil {
		at.WillAnimate()
	}
	if !at.RemoveValue(owner) {
		return false
	}
	if at.Empty() {
		delete(a.attrs, id)
	}
	a.processChange(scope, id, at, animator)
	return true
}

// RemoveAllAttributesForOwner is part of interface attr.Applier.
func (a *Attributes) RemoveAllAttributesForOwner(scope attr.Scope, owner attr.Owner,
	animator attr.Animator) bool {
	//
	changed := false
	for _, id := range a.sortedIDs() {
		at, ok := a.attrs[id]
		if !ok || !at.RemoveValue(owner) {
			continue // may have been dropped by a handler reacting to an earlier change
		}
		changed = true
		if at.Empty() {
			delete(a.attrs, id)
		}
		a.processChange(scope, id, at, animator)
	}
	return changed
}

// ResolvedAttributeValue is part of interface attr.Applier.
func (a *Attributes) ResolvedAttributeValue(id attr.ID) style.Property {
	if at, ok := a.attrs[id]; ok {
		return at.ResolvedValue()
	}
	return style.NullStyle
}

// HasResolvedAttributeValue is true if any owner holds a value for id.
func (a *Attributes) HasResolvedAttributeValue(id attr.ID) bool {
	_, ok := a.attrs[id]
	return ok
}

// Attribute returns the attribute for id, if any owner holds a value for it.
func (a *Attributes) Attribute(id attr.ID) (*viewattr.Attribute, bool) {
	at, ok := a.attrs[id]
	return at, ok
}

// Len returns the number of attributes with at least one value.
func (a *Attributes) Len() int {
	return len(a.attrs)
}

func (a *Attributes) processChange(scope attr.Scope, id attr.ID, at *viewattr.Attribute,
	animator attr.Animator) {
	//
	if at.CanAffectLayout() && a.onLayout != nil {
		a.onLayout(id)
	}
	if err := a.update(scope, at, animator, false); err != nil {
		a.applyFailed(id, err)
	}
}

func (a *Attributes) update(scope attr.Scope, at *viewattr.Attribute, animator attr.Animator,
	justAddedView bool) error {
	//
	if !a.animationsEnabled {
		animator = nil
	}
	return at.Update(scope, a.element, a.hasView, justAddedView, animator)
}

func (a *Attributes) applyFailed(id attr.ID, err error) {
	tracer().Errorf("could not apply attribute '%s': %v", a.name(id), err)
}

// ReapplyAttribute forces the attribute id to be applied again, without
// animation.
func (a *Attributes) ReapplyAttribute(scope attr.Scope, id attr.ID) {
	at, ok := a.attrs[id]
	if !ok {
		return
	}
	at.MarkDirty()
	if err := a.update(scope, at, nil, false); err != nil {
		a.applyFailed(id, err)
	}
}

// UpdateWithoutApply records value as the current state of attribute id
// without applying it. This is for values the platform changed on its own,
// like a scroll position.
func (a *Attributes) UpdateWithoutApply(id attr.ID, value style.Property) {
	at := a.emplace(id)
	if at == nil {
		return
	}
	at.SetValue(attr.PlaceholderOwner(), value)
	at.ReplaceValue(value)
}

// ApplyDefaults installs the default value of every known attribute with
// the placeholder owner. Defaults never win against another owner.
func (a *Attributes) ApplyDefaults(scope attr.Scope, ids *attr.IDs) bool {
	changed := false
	for _, kv := range style.Defaults() {
		id, ok := ids.Lookup(kv.Key)
		if !ok {
			continue
		}
		if _, ok := a.handlers.Handler(id); !ok {
			continue
		}
		if a.SetAttribute(scope, id, attr.PlaceholderOwner(), kv.Value, nil) {
			changed = true
		}
	}
	return changed
}

// DidAddView applies every attribute to the element's new view.
// Values describe the initial state of the view and are not animated,
// except for values captured before an animation started.
func (a *Attributes) DidAddView(scope attr.Scope, animator attr.Animator) error {
	if a.hasView {
		return fmt.Errorf("element already has a view")
	}
	a.hasView = true
	return a.UpdateAll(scope, animator, true)
}

// WillRemoveView resets attributes which need a live view.
func (a *Attributes) WillRemoveView(scope attr.Scope) error {
	if !a.hasView {
		return fmt.Errorf("element has no view")
	}
	a.hasView = false
	return a.UpdateAll(scope, nil, false)
}

// UpdateAll runs an update on every attribute, in order of attribute ids.
// All failures are reported, combined into a single error.
func (a *Attributes) UpdateAll(scope attr.Scope, animator attr.Animator, justAddedView bool) error {
	var errs error
	for _, id := range a.sortedIDs() {
		at, ok := a.attrs[id]
		if !ok {
			continue
		}
		if err := a.update(scope, at, animator, justAddedView); err != nil {
			a.applyFailed(id, err)
			errs = multierr.Append(errs, fmt.Errorf("attribute '%s': %w", a.name(id), err))
		}
	}
	return errs
}

// SetHandlers switches to a new set of handlers, e.g. after the element
// changed its kind of view. Attributes without a handler in h are dropped;
// attributes needing a view will be re-applied on the next update.
func (a *Attributes) SetHandlers(h attr.Handlers) {
	a.handlers = h
	for _, id := range a.sortedIDs() {
		at := a.attrs[id]
		handler, ok := h.Handler(id)
		if !ok {
			tracer().Infof("dropping attribute '%s': no handler", a.name(id))
			delete(a.attrs, id)
			continue
		}
		at.SetHandler(handler)
		if handler.RequiresView() {
			at.MarkDirty()
		}
	}
}

// CopyViewLayoutAttributes copies detached versions of the layout relevant
// view attributes into dst.
func (a *Attributes) CopyViewLayoutAttributes(dst *Attributes) {
	for id, at := range a.attrs {
		if at.CanAffectLayout() && at.RequiresView() {
			dst.attrs[id] = at.Copy()
		}
	}
}

// ResolvedAttributes returns the resolved raw value of every attribute,
// keyed by attribute name.
func (a *Attributes) ResolvedAttributes() map[string]style.Property {
	m := make(map[string]style.Property, len(a.attrs))
	for _, at := range a.attrs {
		m[at.Name()] = at.ResolvedValue()
	}
	return m
}

// Dump adds a branch per attribute, listing every owner's value.
func (a *Attributes) Dump(printer treeprint.Tree) treeprint.Tree {
	for _, id := range a.sortedIDs() {
		a.attrs[id].Dump(printer)
	}
	return printer
}

// Destroy detaches the set from its element. Later writes are ignored.
func (a *Attributes) Destroy() {
	a.destroyed = true
	a.element = nil
	a.attrs = make(map[attr.ID]*viewattr.Attribute)
}

func (a *Attributes) sortedIDs() []attr.ID {
	ids := make([]attr.ID, 0, len(a.attrs))
	for id := range a.attrs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

var _ attr.Applier = &Attributes{}
