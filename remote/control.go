package remote

import (
	"fmt"

	"github.com/propform/propform/attr"
	"github.com/propform/propform/control"
	"github.com/propform/propform/serialize"
)

// pushFunc delivers an encoded attribute change to the client. A nil
// pushFunc makes the control a silent sink, which tests use.
type pushFunc func(path string, encoded any)

// wireControl is the session-side stand-in for one client widget. The
// binding engine pushes model changes into SetValue, which forwards
// them to the client; client edits arrive through receive, which emits
// through OnChanged so the binding engine writes them to the model.
type wireControl struct {
	control.Emitter
	path  string
	typ   attr.Type
	value any
	push  pushFunc
}

func newWireControl(path string, t attr.Type, push pushFunc) *wireControl {
	return &wireControl{path: path, typ: t, push: push}
}

func (c *wireControl) Value() any { return c.value }

// SetValue records the model-side value and forwards it to the client.
func (c *wireControl) SetValue(v any) {
	c.value = v
	if c.push == nil {
		return
	}
	encoded, err := serialize.EncodeValue(c.typ, v)
	if err != nil {
		return
	}
	c.push(c.path, toJSONValue(encoded))
}

// seed records the initial value without notifying anyone.
func (c *wireControl) seed(v any) { c.value = v }

// receive coerces a decoded client value into the attribute's Go shape
// and emits it as a user edit.
func (c *wireControl) receive(raw any) error {
	v, err := serialize.Coerce(c.typ, fromJSONValue(raw))
	if err != nil {
		return fmt.Errorf("attribute %q: %w", c.path, err)
	}
	c.value = v
	c.Emit(v)
	return nil
}

// encoded returns the wire form of the current value.
func (c *wireControl) encoded() (any, error) {
	v, err := serialize.EncodeValue(c.typ, c.value)
	if err != nil {
		return nil, err
	}
	return toJSONValue(v), nil
}
