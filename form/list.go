package form

import (
	"fmt"

	"github.com/propform/propform/attr"
	"github.com/propform/propform/control"
	"github.com/propform/propform/vals"
)

// ListEditor edits a list-valued attribute as an ordered sequence of item
// rows, each wrapping one element control. Adding instantiates a default
// element value (or a chosen subtype when the element type has a known-types
// set and the attribute asks for it), and removing a row re-emits the
// aggregate with relative order preserved.
type ListEditor struct {
	control.Emitter
	elem   attr.Type
	params attr.Params
	rows   []*ListRow

	// ChooseSubtype is consulted on Add when the attribute requests a
	// subtype selector. Returning ok=false cancels the add. When nil, the
	// first known subtype is used.
	ChooseSubtype func(options []*attr.TypeDef) (*attr.TypeDef, bool)
}

// ListRow is one element row: its control plus, for composite elements,
// the runtime type name shown as the row's section title.
type ListRow struct {
	Title   string
	Control control.Control
	cancel  func()
}

// NewListEditor builds an editor for elements of the given type.
func NewListEditor(elem attr.Type) *ListEditor {
	return &ListEditor{elem: elem}
}

// ApplyAttribute picks up the element type and the list configuration
// (add-button label, subtype selector flag).
func (l *ListEditor) ApplyAttribute(a *attr.Attribute) {
	l.params = a.Params
	l.ApplyType(a.Type)
}

// ApplyType picks up the element type from a bare list type.
func (l *ListEditor) ApplyType(t attr.Type) {
	if t.Kind == attr.KindList && t.Elem != nil {
		l.elem = *t.Elem
	}
}

// AddButtonLabel returns the configured label for the add control.
func (l *ListEditor) AddButtonLabel() string {
	if l.params.AddButtonText != "" {
		return l.params.AddButtonText
	}
	return "Add value"
}

// Rows returns the item rows in order.
func (l *ListEditor) Rows() []*ListRow { return l.rows }

// Len returns the number of item rows.
func (l *ListEditor) Len() int { return len(l.rows) }

// Value re-reads every row's control value in row order.
func (l *ListEditor) Value() any {
	out := make([]any, len(l.rows))
	for i, r := range l.rows {
		out[i] = r.Control.Value()
	}
	return out
}

// SetValue replaces all rows with one per element of v. No aggregate
// notification fires; this is the programmatic direction.
func (l *ListEditor) SetValue(v any) {
	l.clear()
	items, ok := v.([]any)
	if !ok {
		return
	}
	for _, item := range items {
		l.addRow(item)
	}
}

// Add appends a row holding a fresh default element and re-emits the
// aggregate. With a subtype selector configured, the concrete type is
// chosen from the element type's known-types set; a canceled choice adds
// nothing.
func (l *ListEditor) Add() error {
	v, ok, err := l.newElement()
	if err != nil || !ok {
		return err
	}
	if err := l.addRow(v); err != nil {
		return err
	}
	l.Emit(l.Value())
	return nil
}

// Remove deletes the row at index i, preserving the relative order of the
// rest, and re-emits the aggregate.
func (l *ListEditor) Remove(i int) {
	if i < 0 || i >= len(l.rows) {
		return
	}
	r := l.rows[i]
	if r.cancel != nil {
		r.cancel()
	}
	l.rows = append(l.rows[:i], l.rows[i+1:]...)
	l.Emit(l.Value())
}

func (l *ListEditor) newElement() (any, bool, error) {
	if l.params.UseSubtypeSelector && l.elem.Kind == attr.KindObject && l.elem.Def != nil {
		options := l.elem.Def.KnownTypes()
		if len(options) > 0 {
			td := options[0]
			if l.ChooseSubtype != nil {
				chosen, ok := l.ChooseSubtype(options)
				if !ok {
					return nil, false, nil
				}
				td = chosen
			}
			if !td.CanNew() {
				return nil, false, fmt.Errorf("list editor: subtype %q has no constructor", td.Name())
			}
			return td.New(), true, nil
		}
	}
	v, err := defaultValue(l.elem)
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (l *ListEditor) addRow(v any) error {
	ctrl, err := control.FromType(l.elem)
	if err != nil {
		return err
	}
	ctrl.SetValue(v)
	row := &ListRow{Control: ctrl}
	if td, ok := attr.DefOf(v); ok {
		row.Title = td.Name()
	}
	row.cancel = ctrl.OnChanged(func(any) {
		l.Emit(l.Value())
	})
	l.rows = append(l.rows, row)
	return nil
}

func (l *ListEditor) clear() {
	for _, r := range l.rows {
		if r.cancel != nil {
			r.cancel()
		}
	}
	l.rows = nil
}

// defaultValue constructs the zero element for a declared type.
func defaultValue(t attr.Type) (any, error) {
	switch t.Kind {
	case attr.KindString:
		return "", nil
	case attr.KindBool:
		return false, nil
	case attr.KindInt:
		return 0, nil
	case attr.KindFloat:
		return 0.0, nil
	case attr.KindPath:
		return vals.Path(""), nil
	case attr.KindColor:
		return vals.White, nil
	case attr.KindFont:
		return vals.DefaultFont, nil
	case attr.KindEnum:
		if t.Enum != nil && len(t.Enum.Values) > 0 {
			return t.Enum.Values[0].Value, nil
		}
		return nil, nil
	case attr.KindList:
		return []any{}, nil
	case attr.KindMap:
		return map[string]bool{}, nil
	case attr.KindObject:
		if t.Def != nil && t.Def.CanNew() {
			return t.Def.New(), nil
		}
		return nil, fmt.Errorf("list editor: element type %s has no constructor", t)
	default:
		return nil, nil
	}
}
