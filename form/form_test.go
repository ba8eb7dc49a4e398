package form

import (
	"strings"
	"testing"

	"github.com/propform/propform/attr"
	"github.com/propform/propform/control/memctl"
)

type task struct {
	attr.Base
	name     string
	done     bool
	hours    float64
	notes    string
	secret   string
	archived []string
}

var taskDef = func() *attr.TypeDef {
	td := attr.NewType("Task", attr.WithNew(func() any { return &task{} }))
	td.Attr("name", attr.String,
		func(i any) any { return i.(*task).name },
		func(i, v any) { i.(*task).name = v.(string) })
	td.Attr("done", attr.Bool,
		func(i any) any { return i.(*task).done },
		func(i, v any) { i.(*task).done = v.(bool) })
	td.Attr("hours", attr.Float,
		func(i any) any { return i.(*task).hours },
		func(i, v any) { i.(*task).hours = v.(float64) },
	).WithParams(attr.Params{Min: attr.Ptr(0.0), Max: attr.Ptr(24.0)})
	td.Attr("notes", attr.String,
		func(i any) any { return i.(*task).notes },
		func(i, v any) { i.(*task).notes = v.(string) },
	).WithParams(attr.Params{Control: func() any { return memctl.NewMultiline() }})
	td.Attr("secret", attr.String,
		func(i any) any { return i.(*task).secret },
		func(i, v any) { i.(*task).secret = v.(string) },
	).WithParams(attr.Params{NoControl: true})
	td.Action("archive_task", func(inst any, args map[string]any) {
		reason, _ := args["reason"].(string)
		t := inst.(*task)
		t.archived = append(t.archived, reason)
	}, attr.ArgSpec{Name: "reason", Type: attr.String, Default: "done"})
	return td
}()

func (t *task) TypeDef() *attr.TypeDef { return taskDef }

func rowNames(f *Form) []string {
	names := make([]string, len(f.Rows()))
	for i, r := range f.Rows() {
		names[i] = r.Name
	}
	return names
}

func TestFormBuildsRowsInDeclarationOrder(t *testing.T) {
	f := New(taskDef, &task{})
	if err := f.BuildErr(); err != nil {
		t.Fatalf("build errors: %v", err)
	}

	got := strings.Join(rowNames(f), ",")
	want := "name,done,hours,notes" // secret is suppressed
	if got != want {
		t.Fatalf("rows = %s, want %s", got, want)
	}
}

func TestFormRowLabels(t *testing.T) {
	f := New(taskDef, &task{})
	r, ok := f.Row("hours")
	if !ok {
		t.Fatal("row hours missing")
	}
	if r.Label != "Hours" {
		t.Errorf("Label = %q", r.Label)
	}
}

func TestFormForcedControl(t *testing.T) {
	f := New(taskDef, &task{})
	r, _ := f.Row("notes")
	if _, ok := r.Control.(*memctl.Multiline); !ok {
		t.Errorf("notes control is %T, want *memctl.Multiline", r.Control)
	}
}

func TestFormEditPropagates(t *testing.T) {
	inst := &task{}
	f := New(taskDef, inst)

	var propName string
	var propValue any
	f.OnPropertyChanged(func(name string, v any) {
		propName, propValue = name, v
	})
	formFired := 0
	f.OnChanged(func(any) { formFired++ })

	r, _ := f.Row("name")
	r.Control.(*memctl.Text).InputText("write tests")

	if inst.name != "write tests" {
		t.Fatalf("model name = %q", inst.name)
	}
	if propName != "name" || propValue != "write tests" {
		t.Errorf("property notification = (%q, %v)", propName, propValue)
	}
	if formFired != 1 {
		t.Errorf("form notification fired %d times, want 1", formFired)
	}
}

func TestFormSeedsControls(t *testing.T) {
	inst := &task{name: "seeded", hours: 3}
	f := New(taskDef, inst)

	r, _ := f.Row("name")
	if r.Control.Value() != "seeded" {
		t.Errorf("name control = %v", r.Control.Value())
	}
	h, _ := f.Row("hours")
	if h.Control.Value() != 3.0 {
		t.Errorf("hours control = %v", h.Control.Value())
	}
}

func TestFormRebuildReleasesOldRows(t *testing.T) {
	first := &task{}
	f := New(taskDef, first)
	oldRow, _ := f.Row("name")

	second := &task{}
	f.SetValue(second)

	oldRow.Control.(*memctl.Text).InputText("stale")
	if first.name != "" || second.name != "" {
		t.Errorf("released row still wired: first=%q second=%q", first.name, second.name)
	}

	newRow, _ := f.Row("name")
	newRow.Control.(*memctl.Text).InputText("fresh")
	if second.name != "fresh" {
		t.Errorf("rebuilt row not wired, second.name = %q", second.name)
	}
}

func TestFormUsesRuntimeTypeOfValue(t *testing.T) {
	// Declared as nothing, the form discovers the descriptor from the
	// instance itself.
	f := New(nil, &task{})
	if f.Def() != taskDef {
		t.Fatalf("Def() = %v", f.Def())
	}
	if len(f.Rows()) == 0 {
		t.Fatal("no rows built from runtime type")
	}
}

func TestActionForms(t *testing.T) {
	inst := &task{}
	f := New(taskDef, inst)

	actions := f.Actions()
	if len(actions) != 1 {
		t.Fatalf("got %d action forms, want 1", len(actions))
	}
	af := actions[0]
	if af.Title() != "Archive Task" {
		t.Errorf("Title = %q", af.Title())
	}
	if af.TriggerLabel() != "Run: Archive Task" {
		t.Errorf("TriggerLabel = %q", af.TriggerLabel())
	}

	r, ok := af.Row("reason")
	if !ok {
		t.Fatal("argument row missing")
	}
	if r.Control.Value() != "done" {
		t.Errorf("default argument = %v", r.Control.Value())
	}

	r.Control.(*memctl.Text).InputText("obsolete")
	af.Trigger()

	if len(inst.archived) != 1 || inst.archived[0] != "obsolete" {
		t.Errorf("archive calls = %v", inst.archived)
	}
}

func TestActionArgsSharedWithSerialization(t *testing.T) {
	inst := &task{}
	f := New(taskDef, inst)
	af := f.Actions()[0]
	r, _ := af.Row("reason")
	r.Control.(*memctl.Text).InputText("later")

	// The same proxy must be visible outside the form.
	p := attr.ActionObjects(inst, taskDef)[0]
	if p.Arg("reason") != "later" {
		t.Errorf("proxy arg = %v, want %q", p.Arg("reason"), "later")
	}
}

type project struct {
	attr.Base
	title string
	lead  *task
	tasks []any
}

var projectDef = func() *attr.TypeDef {
	td := attr.NewType("Project", attr.WithNew(func() any { return &project{lead: &task{}} }))
	td.Attr("title", attr.String,
		func(i any) any { return i.(*project).title },
		func(i, v any) { i.(*project).title = v.(string) })
	td.Attr("lead", attr.ObjectOf(taskDef),
		func(i any) any { return i.(*project).lead },
		func(i, v any) { i.(*project).lead = v.(*task) })
	td.Attr("tasks", attr.ListOf(attr.ObjectOf(taskDef)),
		func(i any) any { return append([]any(nil), i.(*project).tasks...) },
		func(i, v any) { i.(*project).tasks = append([]any(nil), v.([]any)...) })
	return td
}()

func (p *project) TypeDef() *attr.TypeDef { return projectDef }

func TestNestedObjectAttributeGetsSubForm(t *testing.T) {
	p := &project{lead: &task{name: "lead task"}}
	f := New(projectDef, p)
	if err := f.BuildErr(); err != nil {
		t.Fatalf("build errors: %v", err)
	}

	r, ok := f.Row("lead")
	if !ok {
		t.Fatal("lead row missing")
	}
	sub, ok := r.Control.(*Form)
	if !ok {
		t.Fatalf("lead control is %T, want *Form", r.Control)
	}
	nameRow, _ := sub.Row("name")
	if nameRow.Control.Value() != "lead task" {
		t.Errorf("nested control = %v", nameRow.Control.Value())
	}
}

func TestListAttributeGetsListEditor(t *testing.T) {
	p := &project{lead: &task{}, tasks: []any{&task{name: "a"}, &task{name: "b"}}}
	f := New(projectDef, p)

	r, ok := f.Row("tasks")
	if !ok {
		t.Fatal("tasks row missing")
	}
	le, ok := r.Control.(*ListEditor)
	if !ok {
		t.Fatalf("tasks control is %T, want *ListEditor", r.Control)
	}
	if le.Len() != 2 {
		t.Errorf("list editor rows = %d, want 2", le.Len())
	}
}

type plainHolder struct {
	prefs map[string]string
	name  string
}

func TestBuildErrorDoesNotAbortForm(t *testing.T) {
	// No control is registered for a string-to-string mapping; the
	// attribute fails to build but the rest of the form still does.
	td := attr.NewType("Mixed")
	td.Attr("prefs", attr.MapOf(attr.String, attr.String),
		func(i any) any { return i.(*plainHolder).prefs }, nil)
	td.Attr("name", attr.String,
		func(i any) any { return i.(*plainHolder).name },
		func(i, v any) { i.(*plainHolder).name = v.(string) })

	f := New(td, &plainHolder{})
	if f.BuildErr() == nil {
		t.Fatal("expected a build error for the unresolvable attribute")
	}
	if _, ok := f.Row("prefs"); ok {
		t.Error("failed attribute must not produce a row")
	}
	if _, ok := f.Row("name"); !ok {
		t.Error("remaining attributes must still build")
	}
}
