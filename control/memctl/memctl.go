// Package memctl provides in-memory leaf controls satisfying the control
// contract for every built-in value kind. They carry the editable state and
// configuration a toolkit widget would, without any rendering, and are the
// controls forms fall back to when no toolkit driver is wired in. Each
// control exposes an Input-style method that plays the role of a user edit:
// it updates the displayed copy and fires the change notification.
package memctl

import (
	"sort"

	"github.com/propform/propform/attr"
	"github.com/propform/propform/control"
	"github.com/propform/propform/vals"
)

func init() {
	control.Register(attr.String, func() control.Control { return NewText() })
	control.Register(attr.Float, func() control.Control { return NewSpinner() })
	control.Register(attr.Int, func() control.Control { return NewIntSpinner() })
	control.Register(attr.Bool, func() control.Control { return NewBool() })
	control.Register(attr.Path, func() control.Control { return NewPathPicker() })
	control.Register(attr.Color, func() control.Control { return NewColorSwatch() })
	control.Register(attr.Font, func() control.Control { return NewFontButton() })
	control.Register(attr.AnyEnum, func() control.Control { return NewEnumCombo(nil) })
	control.Register(attr.MapOf(attr.String, attr.Bool), func() control.Control { return NewFlags() })
}

// Text is a single-line text entry.
type Text struct {
	control.Emitter
	text string
}

func NewText() *Text { return &Text{} }

func (t *Text) Value() any { return t.text }

func (t *Text) SetValue(v any) {
	if s, ok := v.(string); ok {
		t.text = s
	}
}

// InputText simulates the user typing a new value.
func (t *Text) InputText(s string) {
	t.text = s
	t.Emit(s)
}

// Multiline is a multi-line text entry. It is not registered: a string
// attribute opts into it through a forced-control override, the same way a
// plain-text area is chosen over a line edit.
type Multiline struct {
	Text
}

func NewMultiline() *Multiline { return &Multiline{} }

// Bool is a checkbox-style toggle.
type Bool struct {
	control.Emitter
	checked bool
}

func NewBool() *Bool { return &Bool{} }

func (b *Bool) Value() any { return b.checked }

func (b *Bool) SetValue(v any) {
	if c, ok := v.(bool); ok {
		b.checked = c
	}
}

// InputBool simulates the user clicking the toggle into a specific state.
func (b *Bool) InputBool(c bool) {
	b.checked = c
	b.Emit(c)
}

// Toggle simulates a click.
func (b *Bool) Toggle() {
	b.InputBool(!b.checked)
}

// EnumCombo presents an enumeration's members and holds the selected
// member's underlying value.
type EnumCombo struct {
	control.Emitter
	enum  *attr.EnumDef
	value any
}

func NewEnumCombo(enum *attr.EnumDef) *EnumCombo {
	c := &EnumCombo{enum: enum}
	if enum != nil && len(enum.Values) > 0 {
		c.value = enum.Values[0].Value
	}
	return c
}

// ApplyAttribute picks up the enumeration from the attribute's value type.
func (c *EnumCombo) ApplyAttribute(a *attr.Attribute) {
	c.ApplyType(a.Type)
}

// ApplyType picks up the enumeration from a bare value type.
func (c *EnumCombo) ApplyType(t attr.Type) {
	if t.Enum != nil {
		c.enum = t.Enum
		if c.value == nil && len(t.Enum.Values) > 0 {
			c.value = t.Enum.Values[0].Value
		}
	}
}

// Options lists the member labels in declaration order.
func (c *EnumCombo) Options() []string {
	if c.enum == nil {
		return nil
	}
	out := make([]string, len(c.enum.Values))
	for i, v := range c.enum.Values {
		out[i] = v.Label
	}
	return out
}

func (c *EnumCombo) Value() any { return c.value }

// SetValue ignores values outside the configured enumeration, the same way
// SelectLabel ignores labels the combo does not list. An unconfigured combo
// has nothing to check against and accepts anything.
func (c *EnumCombo) SetValue(v any) {
	if c.enum == nil {
		c.value = v
		return
	}
	if ev, ok := c.enum.ByValue(v); ok {
		c.value = ev.Value
	}
}

// SelectLabel simulates the user picking a member by label. Unknown labels
// are ignored, as a combo box cannot be driven to a value it does not list.
func (c *EnumCombo) SelectLabel(label string) {
	if c.enum == nil {
		return
	}
	if ev, ok := c.enum.ByLabel(label); ok {
		c.value = ev.Value
		c.Emit(c.value)
	}
}

// PathPicker is a file/directory chooser button.
type PathPicker struct {
	control.Emitter
	path          vals.Path
	Filter        string
	DirectoryMode bool
}

func NewPathPicker() *PathPicker { return &PathPicker{} }

// ApplyAttribute picks up the picker filter and directory mode.
func (p *PathPicker) ApplyAttribute(a *attr.Attribute) {
	p.Filter = a.Params.Filter
	p.DirectoryMode = a.Params.DirectoryMode
}

func (p *PathPicker) Value() any { return p.path }

func (p *PathPicker) SetValue(v any) {
	switch val := v.(type) {
	case vals.Path:
		p.path = val
	case string:
		p.path = vals.Path(val)
	}
}

// InputPath simulates the user accepting a path from the chooser dialog.
func (p *PathPicker) InputPath(path vals.Path) {
	p.path = path
	p.Emit(path)
}

// ColorSwatch is a color chooser button.
type ColorSwatch struct {
	control.Emitter
	color vals.Color
}

func NewColorSwatch() *ColorSwatch { return &ColorSwatch{color: vals.White} }

func (c *ColorSwatch) Value() any { return c.color }

func (c *ColorSwatch) SetValue(v any) {
	if col, ok := v.(vals.Color); ok {
		c.color = col
	}
}

// Pick simulates the user accepting a color from the dialog.
func (c *ColorSwatch) Pick(col vals.Color) {
	c.color = col
	c.Emit(col)
}

// FontButton is a font chooser button.
type FontButton struct {
	control.Emitter
	font vals.Font
}

func NewFontButton() *FontButton { return &FontButton{font: vals.DefaultFont} }

func (f *FontButton) Value() any { return f.font }

func (f *FontButton) SetValue(v any) {
	if fn, ok := v.(vals.Font); ok {
		f.font = fn
	}
}

// Pick simulates the user accepting a font from the dialog.
func (f *FontButton) Pick(fn vals.Font) {
	f.font = fn
	f.Emit(fn)
}

// Flags edits a string-keyed boolean mapping as one toggle per key.
type Flags struct {
	control.Emitter
	flags map[string]bool
}

func NewFlags() *Flags { return &Flags{flags: map[string]bool{}} }

func (f *Flags) Value() any { return f.flags }

func (f *Flags) SetValue(v any) {
	if m, ok := v.(map[string]bool); ok {
		next := make(map[string]bool, len(m))
		for k, b := range m {
			next[k] = b
		}
		f.flags = next
	}
}

// Keys returns the flag names in sorted order, the order the toggles are
// laid out in.
func (f *Flags) Keys() []string {
	keys := make([]string, 0, len(f.flags))
	for k := range f.flags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SetFlag simulates the user clicking one of the toggles. The mapping is
// replaced, not mutated, so earlier reads stay valid.
func (f *Flags) SetFlag(key string, v bool) {
	next := make(map[string]bool, len(f.flags)+1)
	for k, b := range f.flags {
		next[k] = b
	}
	next[key] = v
	f.flags = next
	f.Emit(f.flags)
}
