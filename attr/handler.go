package attr

import (
	"errors"
	"sync"

	"github.com/npillmayer/cascade/dom/style"
)

// ErrUnknownAttribute is returned if no handler is registered for an attribute id.
var ErrUnknownAttribute = errors.New("no handler for attribute")

// Scope is the view transaction an update pass runs in. The cascade never
// looks into it; it is handed through to handlers.
type Scope interface{}

// Element is the element (view node) attributes are applied to.
type Element interface{}

// Animator carries the animation an attribute change should be part of.
// A nil Animator applies changes immediately.
type Animator interface{}

// Handler is the semantic code for one attribute: it turns a raw value into
// a concrete value and applies it to an element.
type Handler interface {
	ID() ID
	Name() string
	Preprocess(raw style.Property) (interface{}, error)                       // raw => concrete value
	Apply(scope Scope, el Element, value interface{}, animator Animator) error // concrete value => element
	Reset(scope Scope, el Element, animator Animator)                         // remove the effect of a value
	RequiresView() bool                                                       // only applicable with a live view?
	InvalidatesLayout() bool                                                  // does a change affect layout?
}

// Handlers resolves attribute handlers by id.
type Handlers interface {
	Handler(id ID) (Handler, bool)
}

// Registry is a concurrency-safe map of handlers, implementing Handlers.
type Registry struct {
	sync.RWMutex
	handlers map[ID]Handler
}

// NewRegistry creates an empty handler registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[ID]Handler)}
}

// Register adds a handler, replacing an existing one for the same id.
func (r *Registry) Register(h Handler) *Registry {
	r.Lock()
	defer r.Unlock()
	r.handlers[h.ID()] = h
	return r
}

// Handler is part of interface Handlers.
func (r *Registry) Handler(id ID) (Handler, bool) {
	r.RLock()
	defer r.RUnlock()
	h, ok := r.handlers[id]
	return h, ok
}

var _ Handlers = &Registry{}

// Applier is the sink CSS nodes and style bundles write attribute values into.
// Every call carries the owner of the value, so the applier can arbitrate
// between competing owners.
type Applier interface {
	// SetAttribute sets owner's value for attribute id. Setting NullStyle
	// removes the owner's value. Returns true if the resolved value changed.
	SetAttribute(scope Scope, id ID, owner Owner, value style.Property, animator Animator) bool
	// RemoveAttribute removes owner's value for attribute id.
	RemoveAttribute(scope Scope, id ID, owner Owner, animator Animator) bool
	// ResolvedAttributeValue returns the currently winning value, or NullStyle.
	ResolvedAttributeValue(id ID) style.Property
	// RemoveAllAttributesForOwner removes every value held by owner.
	RemoveAllAttributesForOwner(scope Scope, owner Owner, animator Animator) bool
}
