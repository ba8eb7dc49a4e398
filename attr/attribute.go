package attr

import "strings"

// Params holds the recognized per-attribute configuration keys. Zero values
// mean "not set"; optional numerics use pointers so that an explicit zero is
// distinguishable from absence.
type Params struct {
	// Control overrides registry resolution with an explicit constructor.
	// The returned value must satisfy the control contract of the consumer.
	Control func() any
	// NoControl suppresses rendering of the attribute entirely.
	NoControl bool

	// Numeric bounds, step, and display precision.
	Min      *float64
	Max      *float64
	Step     *float64
	Decimals *int

	// Display toggles for numeric controls.
	ShowSlider  *bool
	ShowSpinbox *bool

	// File picker configuration.
	Filter        string
	DirectoryMode bool

	// List editor configuration.
	AddButtonText      string
	UseSubtypeSelector bool

	// DontEncode excludes the attribute from serialization.
	DontEncode bool
}

// Ptr returns a pointer to v, for the optional Params fields.
func Ptr[T any](v T) *T { return &v }

// SetFunc is the wrapped-setter hook installed by the binding engine. The
// origin identifies the control a change came from so it is not pushed back.
type SetFunc func(inst, value any, origin any)

// Attribute is one named, typed, gettable (optionally settable) piece of
// state declared on a TypeDef. Getter and setter operate on the owning
// instance passed as any.
type Attribute struct {
	Name   string
	Type   Type
	Get    func(inst any) any
	Set    func(inst any, value any)
	Params Params

	hook SetFunc
}

// WithParams sets the attribute configuration and returns the attribute,
// for use in declaration chains.
func (a *Attribute) WithParams(p Params) *Attribute {
	a.Params = p
	return a
}

// ReadOnly reports whether the attribute has no setter.
func (a *Attribute) ReadOnly() bool { return a.Set == nil }

// Value reads the attribute's current value from inst.
func (a *Attribute) Value(inst any) any {
	if a.Get == nil {
		return nil
	}
	return a.Get(inst)
}

// SetValue writes a new value through the installed binding hook when one
// exists, so that programmatic assignment propagates to bound controls, and
// falls back to the raw setter otherwise.
func (a *Attribute) SetValue(inst, value any) {
	a.SetValueFrom(inst, value, nil)
}

// SetValueFrom is SetValue with an originating control, which the binding
// hook skips when pushing the new value out.
func (a *Attribute) SetValueFrom(inst, value any, origin any) {
	if a.hook != nil {
		a.hook(inst, value, origin)
		return
	}
	if a.Set != nil {
		a.Set(inst, value)
	}
}

// InstallHook installs the wrapped setter. The first installation wins;
// later calls report false and leave the existing hook in place.
func (a *Attribute) InstallHook(h SetFunc) bool {
	if a.hook != nil {
		return false
	}
	a.hook = h
	return true
}

// HookInstalled reports whether a binding hook has been installed.
func (a *Attribute) HookInstalled() bool { return a.hook != nil }

// Label returns the human-cased form of the attribute name:
// "file_path" becomes "File path".
func (a *Attribute) Label() string {
	return humanize(a.Name, false)
}

func humanize(name string, titleWords bool) string {
	words := strings.Split(name, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		if i == 0 || titleWords {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
