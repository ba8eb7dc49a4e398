// Package form builds editing forms from reflected attributes: one
// label/control row per attribute, one nested sub-form per action, and a
// list editor for list-valued attributes. Forms and list editors are
// themselves controls, which is what lets a composite attribute nest.
package form

import (
	"errors"

	"github.com/propform/propform/attr"
	"github.com/propform/propform/control"
)

// Row is one rendered attribute: the declared name, its human-cased label,
// and the bound control.
type Row struct {
	Name    string
	Label   string
	Control control.Control

	attribute *attr.Attribute
	cancel    func()
}

// Form renders every reflected attribute of an instance in declaration
// order. Assigning a new instance tears the form down and rebuilds it from
// scratch. The form's own change notification carries the instance; edits
// to individual attributes additionally fire the property-changed
// subscribers with (name, value).
type Form struct {
	control.Emitter
	def       *attr.TypeDef
	value     any
	rows      []Row
	actions   []*ActionForm
	buildErrs []error

	propNextID int
	propSubs   []propSub
}

type propSub struct {
	id int
	fn func(name string, v any)
}

// New builds a form for inst described by def. A nil inst yields an empty
// form that populates on the first SetValue.
func New(def *attr.TypeDef, inst any) *Form {
	f := &Form{def: def}
	if inst != nil {
		f.SetValue(inst)
	}
	return f
}

// ApplyAttribute configures the form from an object-valued attribute.
func (f *Form) ApplyAttribute(a *attr.Attribute) {
	f.ApplyType(a.Type)
}

// ApplyType records the declared object type for schema-only construction.
func (f *Form) ApplyType(t attr.Type) {
	if t.Def != nil {
		f.def = t.Def
	}
}

// Def returns the descriptor the form is currently built against.
func (f *Form) Def() *attr.TypeDef { return f.def }

// Value returns the edited instance.
func (f *Form) Value() any { return f.value }

// SetValue assigns a new instance: existing rows and action sub-forms are
// torn down, the form-level change notification fires, and the form
// rebuilds against the new instance's type.
func (f *Form) SetValue(v any) {
	f.teardown()
	f.value = v
	f.Emit(v)
	f.build()
}

// Rows returns the built attribute rows in declaration order.
func (f *Form) Rows() []Row { return f.rows }

// Actions returns the action sub-forms in declaration order.
func (f *Form) Actions() []*ActionForm { return f.actions }

// Row finds a built row by attribute name.
func (f *Form) Row(name string) (Row, bool) {
	for _, r := range f.rows {
		if r.Name == name {
			return r, true
		}
	}
	return Row{}, false
}

// OnPropertyChanged subscribes to per-attribute edits.
func (f *Form) OnPropertyChanged(fn func(name string, v any)) (cancel func()) {
	f.propNextID++
	id := f.propNextID
	f.propSubs = append(f.propSubs, propSub{id: id, fn: fn})
	return func() {
		for i, sub := range f.propSubs {
			if sub.id == id {
				f.propSubs = append(f.propSubs[:i], f.propSubs[i+1:]...)
				return
			}
		}
	}
}

// BuildErr reports the attributes that failed to produce a control during
// the last build. A failing attribute never aborts the rest of the form.
func (f *Form) BuildErr() error {
	return errors.Join(f.buildErrs...)
}

func (f *Form) teardown() {
	for _, r := range f.rows {
		if r.cancel != nil {
			r.cancel()
		}
		control.Release(r.attribute, f.value, r.Control)
	}
	f.rows = nil
	for _, af := range f.actions {
		af.teardown()
	}
	f.actions = nil
	f.buildErrs = nil
}

func (f *Form) build() {
	if f.value == nil {
		return
	}
	def := f.def
	if td, ok := attr.DefOf(f.value); ok {
		def = td
	}
	if def == nil {
		f.buildErrs = append(f.buildErrs, errors.New("form: no type descriptor for instance"))
		return
	}
	f.def = def

	for _, a := range def.Reflect() {
		ctrl, err := control.FromAttribute(a, f.value)
		if err != nil {
			f.buildErrs = append(f.buildErrs, err)
			continue
		}
		if ctrl == nil {
			continue
		}
		name := a.Name
		cancel := ctrl.OnChanged(func(v any) {
			f.emitProperty(name, v)
			f.Emit(f.value)
		})
		f.rows = append(f.rows, Row{
			Name:      name,
			Label:     a.Label(),
			Control:   ctrl,
			attribute: a,
			cancel:    cancel,
		})
	}

	for _, proxy := range attr.ActionObjects(f.value, def) {
		f.actions = append(f.actions, NewActionForm(proxy))
	}
}

func (f *Form) emitProperty(name string, v any) {
	for _, sub := range append([]propSub(nil), f.propSubs...) {
		sub.fn(name, v)
	}
}

// ActionForm is the nested sub-form for one action proxy: an argument form
// plus a trigger.
type ActionForm struct {
	Form
	proxy *attr.ActionObject
}

// NewActionForm builds the argument form for an action proxy.
func NewActionForm(proxy *attr.ActionObject) *ActionForm {
	af := &ActionForm{proxy: proxy}
	af.def = proxy.TypeDef()
	af.SetValue(proxy)
	return af
}

// Proxy returns the underlying action proxy.
func (af *ActionForm) Proxy() *attr.ActionObject { return af.proxy }

// Title returns the humanized action name.
func (af *ActionForm) Title() string { return af.proxy.Action().Title() }

// TriggerLabel returns the label for the trigger control.
func (af *ActionForm) TriggerLabel() string { return "Run: " + af.Title() }

// Trigger invokes the action with its current argument values. Results are
// discarded; the action reports through side effects on its owner.
func (af *ActionForm) Trigger() { af.proxy.Invoke() }
