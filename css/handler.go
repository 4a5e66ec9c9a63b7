package css

import (
	"fmt"
	"strconv"

	"github.com/npillmayer/cascade/attr"
	"github.com/npillmayer/cascade/dom/style"
)

// PreprocessFunc turns a raw value into a concrete value.
type PreprocessFunc func(style.Property) (interface{}, error)

// ApplyFunc applies a concrete value to an element.
type ApplyFunc func(scope attr.Scope, el attr.Element, value interface{}, animator attr.Animator) error

// ResetFunc removes the effect of an attribute from an element.
type ResetFunc func(scope attr.Scope, el attr.Element, animator attr.Animator)

// FuncHandler is an attribute handler assembled from functions.
type FuncHandler struct {
	id                attr.ID
	name              string
	preprocess        PreprocessFunc
	apply             ApplyFunc
	reset             ResetFunc
	requiresView      bool
	invalidatesLayout bool
}

// HandlerOption is a type to help initializing handlers at creation time.
type HandlerOption struct {
	config func(*FuncHandler)
}

// NewHandler creates a handler for attribute id. Without options the
// handler passes raw values through unchanged and ignores applies.
//
// Use it like this:
//
//     h := css.NewHandler(ids.Intern("width"), "width",
//         css.WithPreprocessor(css.Dimension), css.AffectsLayout())
//
func NewHandler(id attr.ID, name string, opts ...HandlerOption) *FuncHandler {
	h := &FuncHandler{id: id, name: name}
	for _, option := range opts {
		option.config(h)
	}
	return h
}

// WithPreprocessor sets the preprocessing step of a handler.
func WithPreprocessor(f PreprocessFunc) HandlerOption {
	return HandlerOption{config: func(h *FuncHandler) { h.preprocess = f }}
}

// OnApply sets the function applying concrete values.
func OnApply(f ApplyFunc) HandlerOption {
	return HandlerOption{config: func(h *FuncHandler) { h.apply = f }}
}

// OnReset sets the function resetting an attribute.
func OnReset(f ResetFunc) HandlerOption {
	return HandlerOption{config: func(h *FuncHandler) { h.reset = f }}
}

// NeedsView marks a handler as only applicable to elements with a live view.
func NeedsView() HandlerOption {
	return HandlerOption{config: func(h *FuncHandler) { h.requiresView = true }}
}

// AffectsLayout marks a handler's attribute as layout relevant.
func AffectsLayout() HandlerOption {
	return HandlerOption{config: func(h *FuncHandler) { h.invalidatesLayout = true }}
}

// ID is part of interface attr.Handler.
func (h *FuncHandler) ID() attr.ID {
	return h.id
}

// Name is part of interface attr.Handler.
func (h *FuncHandler) Name() string {
	return h.name
}

// Preprocess is part of interface attr.Handler. Undefined values are never
// handed to the preprocessing function.
func (h *FuncHandler) Preprocess(raw style.Property) (interface{}, error) {
	if h.preprocess == nil || raw.IsEmpty() {
		return raw, nil
	}
	v, err := h.preprocess(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to preprocess value '%s' of %s: %w", raw, h.name, err)
	}
	return v, nil
}

// Apply is part of interface attr.Handler.
func (h *FuncHandler) Apply(scope attr.Scope, el attr.Element, value interface{}, animator attr.Animator) error {
	if h.apply == nil {
		return nil
	}
	if err := h.apply(scope, el, value, animator); err != nil {
		return fmt.Errorf("failed to apply value %v of %s: %w", value, h.name, err)
	}
	return nil
}

// Reset is part of interface attr.Handler.
func (h *FuncHandler) Reset(scope attr.Scope, el attr.Element, animator attr.Animator) {
	if h.reset != nil {
		h.reset(scope, el, animator)
	}
}

// RequiresView is part of interface attr.Handler.
func (h *FuncHandler) RequiresView() bool {
	return h.requiresView
}

// InvalidatesLayout is part of interface attr.Handler.
func (h *FuncHandler) InvalidatesLayout() bool {
	return h.invalidatesLayout
}

var _ attr.Handler = &FuncHandler{}

// --- Stock preprocessors ---------------------------------------------------

// Dimension is a preprocessor producing a DimenT.
func Dimension(raw style.Property) (interface{}, error) {
	return ParseDimen(raw)
}

// Color is a preprocessor producing a color.Color (nil for "default").
func Color(raw style.Property) (interface{}, error) {
	return ParseColor(raw)
}

// Number is a preprocessor producing a float64.
func Number(raw style.Property) (interface{}, error) {
	return strconv.ParseFloat(string(raw.Normalized()), 64)
}

// Flag is a preprocessor producing a bool.
func Flag(raw style.Property) (interface{}, error) {
	return strconv.ParseBool(string(raw.Normalized()))
}

// Keyword returns a preprocessor accepting one of a fixed set of keywords.
func Keyword(allowed ...string) PreprocessFunc {
	return func(raw style.Property) (interface{}, error) {
		p := raw.Normalized()
		for _, a := range allowed {
			if string(p) == a {
				return p, nil
			}
		}
		tracer().Debugf("keyword '%s' not in %v", raw, allowed)
		return nil, fmt.Errorf("unknown keyword '%s'", raw)
	}
}

// StockHandlers registers a handler for every attribute with a known default
// value (see style.Defaults), choosing the preprocessor by attribute kind.
// Dimensions are marked as layout relevant.
func StockHandlers(ids *attr.IDs, registry *attr.Registry, opts ...HandlerOption) *attr.Registry {
	for _, kv := range style.Defaults() {
		hopts := append([]HandlerOption{}, opts...)
		switch {
		case style.IsDimension(kv.Key):
			hopts = append(hopts, WithPreprocessor(Dimension), AffectsLayout())
		case kv.Key == "opacity":
			hopts = append(hopts, WithPreprocessor(Number))
		case kv.Key == "touch-enabled":
			hopts = append(hopts, WithPreprocessor(Flag))
		case kv.Key == "background-color" || kv.Key == "border-color" || kv.Key == "color":
			hopts = append(hopts, WithPreprocessor(Color))
		}
		registry.Register(NewHandler(ids.Intern(kv.Key), kv.Key, hopts...))
	}
	return registry
}
