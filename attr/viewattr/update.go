package viewattr

import (
	"github.com/npillmayer/cascade/attr"
)

// Update is the per-pass entry point. It applies the resolved value through
// the handler if a value should be visible and has not been applied yet (or
// changed since), and resets the handler if a previously applied value went
// away.
//
// If the element's view was just added and no pre-animation value has been
// captured, the value is applied without animation: it describes the initial
// state of the view and must not itself animate in.
//
// A failing handler aborts the update of this attribute only; the
// attribute counts as applied and is not retried until it changes again.
func (a *Attribute) Update(scope attr.Scope, el attr.Element, hasView bool, justAddedView bool,
	animator attr.Animator) error {
	//
	needValue := !a.Empty() && (!a.handler.RequiresView() || hasView)
	if needValue {
		if a.hasAppliedValue && !a.appliedValueDirty {
			return nil
		}
		a.hasAppliedValue = true
		a.appliedValueDirty = false
		pending := a.pendingAnimated
		a.pendingAnimated = nil
		value, err := a.ResolvedPreprocessedValue()
		if err != nil {
			return err
		}
		if pending == nil && justAddedView {
			return a.handler.Apply(scope, el, value, nil)
		}
		flushErr := a.flushPendingAnimated(scope, el, pending, animator != nil)
		if err := a.handler.Apply(scope, el, value, animator); err != nil {
			return err
		}
		return flushErr
	}
	if !a.hasAppliedValue {
		return nil
	}
	a.hasAppliedValue = false
	a.appliedValueDirty = false
	pending := a.pendingAnimated
	a.pendingAnimated = nil
	flushErr := a.flushPendingAnimated(scope, el, pending, animator != nil)
	a.handler.Reset(scope, el, animator)
	return flushErr
}

// WillAnimate captures the resolved value as the pre-animation state, if the
// handler needs a live view and no value has been applied yet. The captured
// value is flushed without animation right before the next animated apply.
func (a *Attribute) WillAnimate() {
	if !a.handler.RequiresView() || a.Empty() || a.hasAppliedValue {
		return
	}
	pv, err := a.ResolvedPreprocessedValue()
	a.pendingAnimated = &preprocessed{value: pv, err: err}
}

// HasPendingAnimatedValue is true if WillAnimate captured a value which has
// not been flushed yet.
func (a *Attribute) HasPendingAnimatedValue() bool {
	return a.pendingAnimated != nil
}

func (a *Attribute) flushPendingAnimated(scope attr.Scope, el attr.Element, pending *preprocessed,
	willAnimate bool) error {
	//
	if !willAnimate || pending == nil {
		return nil
	}
	if pending.err != nil {
		return pending.err
	}
	return a.handler.Apply(scope, el, pending.value, nil)
}
