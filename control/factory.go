package control

import (
	"fmt"

	"github.com/propform/propform/attr"
)

// FromAttribute resolves, instantiates, and configures a control for the
// attribute. A forced constructor in the attribute's configuration takes
// precedence over registry resolution, and NoControl suppresses rendering
// entirely (nil, nil). When inst is non-nil the control is seeded with the
// current value and bound, so edits flow back through the wrapped setter.
func FromAttribute(a *attr.Attribute, inst any) (Control, error) {
	if a.Params.NoControl {
		return nil, nil
	}
	var ctrl Control
	if a.Params.Control != nil {
		raw := a.Params.Control()
		c, ok := raw.(Control)
		if !ok {
			return nil, fmt.Errorf("attribute %q: forced control %T does not implement Control", a.Name, raw)
		}
		ctrl = c
	} else {
		neu, err := std.Resolve(a.Type)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", a.Name, err)
		}
		ctrl = neu()
	}
	if ac, ok := ctrl.(AttrConfigurable); ok {
		ac.ApplyAttribute(a)
	} else if tc, ok := ctrl.(TypeConfigurable); ok {
		tc.ApplyType(a.Type)
	}
	if inst != nil {
		ctrl.SetValue(a.Value(inst))
		Bind(a, inst, ctrl)
	}
	return ctrl, nil
}

// FromType resolves and instantiates a control for a bare value type with
// no live binding, for schema-only contexts such as list-element templates.
func FromType(t attr.Type) (Control, error) {
	neu, err := std.Resolve(t)
	if err != nil {
		return nil, err
	}
	ctrl := neu()
	if tc, ok := ctrl.(TypeConfigurable); ok {
		tc.ApplyType(t)
	}
	return ctrl, nil
}
