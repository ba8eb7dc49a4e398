// Package control defines the editable-control contract, the process-wide
// value-type to control-type registry, the bidirectional attribute binding
// engine, and the control factory.
package control

import "github.com/propform/propform/attr"

// Control is an editable element bound to one attribute's value. A control
// owns no attribute state, only a live editable copy of the bound value.
// SetValue updates the displayed copy without firing the change
// notification; the notification is reserved for edits originating at the
// control itself.
type Control interface {
	Value() any
	SetValue(v any)
	OnChanged(fn func(v any)) (cancel func())
}

// AttrConfigurable is implemented by controls that self-configure from an
// attribute's configuration (bounds, step, precision, filters, and so on).
type AttrConfigurable interface {
	ApplyAttribute(a *attr.Attribute)
}

// TypeConfigurable is implemented by controls that need the value type in
// schema-only contexts, such as list-element templates.
type TypeConfigurable interface {
	ApplyType(t attr.Type)
}

// Emitter implements the change-notification side of the Control contract
// and is embedded by concrete controls.
type Emitter struct {
	nextID int
	subs   []emitterSub
}

type emitterSub struct {
	id int
	fn func(v any)
}

// OnChanged registers fn and returns a cancel function that removes it.
func (e *Emitter) OnChanged(fn func(v any)) (cancel func()) {
	e.nextID++
	id := e.nextID
	e.subs = append(e.subs, emitterSub{id: id, fn: fn})
	return func() {
		for i, sub := range e.subs {
			if sub.id == id {
				e.subs = append(e.subs[:i], e.subs[i+1:]...)
				return
			}
		}
	}
}

// Emit notifies every subscriber of the new value.
func (e *Emitter) Emit(v any) {
	for _, sub := range append([]emitterSub(nil), e.subs...) {
		sub.fn(v)
	}
}
