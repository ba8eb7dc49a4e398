package form

import (
	"testing"

	"github.com/propform/propform/attr"
	"github.com/propform/propform/control/memctl"
)

func stringListEditor() *ListEditor {
	le := NewListEditor(attr.String)
	return le
}

func TestListEditorSetValueBuildsRows(t *testing.T) {
	le := stringListEditor()
	le.SetValue([]any{"a", "b", "c"})

	if le.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", le.Len())
	}
	got := le.Value().([]any)
	for i, want := range []any{"a", "b", "c"} {
		if got[i] != want {
			t.Fatalf("Value() = %v", got)
		}
	}
}

func TestListEditorAddAppendsDefault(t *testing.T) {
	le := stringListEditor()
	le.SetValue([]any{"x"})

	var emitted any
	le.OnChanged(func(v any) { emitted = v })

	if err := le.Add(); err != nil {
		t.Fatalf("Add: %v", err)
	}
	got := le.Value().([]any)
	if len(got) != 2 || got[0] != "x" || got[1] != "" {
		t.Fatalf("Value() = %v", got)
	}
	if emitted == nil {
		t.Error("Add must re-emit the aggregate")
	}
}

func TestListEditorRemovePreservesOrder(t *testing.T) {
	le := stringListEditor()
	le.SetValue([]any{"a", "b", "c", "d"})

	le.Remove(1)
	got := le.Value().([]any)
	want := []any{"a", "c", "d"}
	if len(got) != len(want) {
		t.Fatalf("Value() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Value() = %v, want %v", got, want)
		}
	}

	// Out-of-range indices are ignored.
	le.Remove(-1)
	le.Remove(99)
	if le.Len() != 3 {
		t.Errorf("Len() = %d after no-op removes", le.Len())
	}
}

func TestListEditorRowEditReEmits(t *testing.T) {
	le := stringListEditor()
	le.SetValue([]any{"old"})

	var emitted any
	le.OnChanged(func(v any) { emitted = v })

	le.Rows()[0].Control.(*memctl.Text).InputText("new")

	got, ok := emitted.([]any)
	if !ok || len(got) != 1 || got[0] != "new" {
		t.Fatalf("emitted = %v", emitted)
	}
}

func TestListEditorAddButtonLabel(t *testing.T) {
	le := stringListEditor()
	if le.AddButtonLabel() != "Add value" {
		t.Errorf("default label = %q", le.AddButtonLabel())
	}

	td := attr.NewType("T")
	a := td.Attr("tags", attr.ListOf(attr.String), nil, nil).
		WithParams(attr.Params{AddButtonText: "Add tag"})
	le.ApplyAttribute(a)
	if le.AddButtonLabel() != "Add tag" {
		t.Errorf("configured label = %q", le.AddButtonLabel())
	}
}

func TestListEditorEnumDefault(t *testing.T) {
	size := attr.NewEnum("Size",
		attr.EnumValue{Label: "Small", Value: "s"},
		attr.EnumValue{Label: "Large", Value: "l"},
	)
	le := NewListEditor(attr.EnumOf(size))
	if err := le.Add(); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if got := le.Value().([]any)[0]; got != "s" {
		t.Errorf("enum default = %v, want first member", got)
	}
}

func TestListEditorSubtypeSelector(t *testing.T) {
	contact := attr.NewType("Contact")
	var email, phone *attr.TypeDef
	email = attr.NewType("Email", attr.WithBase(contact), attr.WithNew(func() any {
		return &typedElem{def: email}
	}))
	phone = attr.NewType("Phone", attr.WithBase(contact), attr.WithNew(func() any {
		return &typedElem{def: phone}
	}))
	contact.RegisterSubtype(email)
	contact.RegisterSubtype(phone)

	td := attr.NewType("Holder")
	a := td.Attr("contacts", attr.ListOf(attr.ObjectOf(contact)), nil, nil).
		WithParams(attr.Params{UseSubtypeSelector: true})

	le := NewListEditor(attr.ObjectOf(contact))
	le.ApplyAttribute(a)

	var offered []*attr.TypeDef
	le.ChooseSubtype = func(options []*attr.TypeDef) (*attr.TypeDef, bool) {
		offered = options
		return phone, true
	}
	if err := le.Add(); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if len(offered) != 2 {
		t.Fatalf("offered %d subtypes, want 2", len(offered))
	}
	if le.Len() != 1 {
		t.Fatalf("Len() = %d", le.Len())
	}
	if got := le.Rows()[0].Title; got != "Phone" {
		t.Errorf("row title = %q, want the chosen subtype's name", got)
	}

	// Cancelling the chooser adds nothing.
	le.ChooseSubtype = func([]*attr.TypeDef) (*attr.TypeDef, bool) { return nil, false }
	if err := le.Add(); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if le.Len() != 1 {
		t.Errorf("cancelled add changed the row count to %d", le.Len())
	}
}

type typedElem struct {
	attr.Base
	def *attr.TypeDef
}

func (e *typedElem) TypeDef() *attr.TypeDef { return e.def }

func TestListRowTitleFromRuntimeType(t *testing.T) {
	le := NewListEditor(attr.ObjectOf(taskDef))
	le.SetValue([]any{&task{name: "x"}})

	if got := le.Rows()[0].Title; got != "Task" {
		t.Errorf("row title = %q", got)
	}
}
