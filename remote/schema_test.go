package remote

import (
	"encoding/json"
	"testing"

	"github.com/propform/propform/attr"
	"github.com/propform/propform/tree"
)

func TestSchemaFields(t *testing.T) {
	s := Schema("gadget", gadgetDef)

	if s.Model != "gadget" {
		t.Errorf("Model = %q", s.Model)
	}

	names := make([]string, len(s.Attrs))
	for i, f := range s.Attrs {
		names[i] = f.Name
	}
	want := []string{"name", "count", "tags"} // secret suppressed
	if len(names) != len(want) {
		t.Fatalf("attrs = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("attrs = %v, want %v", names, want)
		}
	}

	count := s.Attrs[1]
	if count.Kind != "int" || count.Label != "Count" {
		t.Errorf("count field = %+v", count)
	}
	if count.Min == nil || *count.Min != 0 || count.Max == nil || *count.Max != 100 {
		t.Errorf("count bounds = %v..%v", count.Min, count.Max)
	}

	tags := s.Attrs[2]
	if tags.Kind != "list" || tags.Elem == nil || tags.Elem.Kind != "string" {
		t.Errorf("tags field = %+v", tags)
	}
}

func TestSchemaActions(t *testing.T) {
	s := Schema("gadget", gadgetDef)

	if len(s.Actions) != 1 {
		t.Fatalf("actions = %+v", s.Actions)
	}
	a := s.Actions[0]
	if a.Name != "ping" || a.Title != "Ping" || a.TriggerLabel != "Run: Ping" {
		t.Errorf("action = %+v", a)
	}
	if len(a.Args) != 1 || a.Args[0].Name != "target" || a.Args[0].Default != "local" {
		t.Errorf("args = %+v", a.Args)
	}
}

func TestSchemaEnumAndSubtypes(t *testing.T) {
	base := attr.NewType("Widget")
	knob := attr.NewType("Knob", attr.WithBase(base), attr.WithNew(func() any { return nil }))
	base.RegisterSubtype(knob)

	level := attr.NewEnum("Level",
		attr.EnumValue{Label: "Low", Value: "low"},
		attr.EnumValue{Label: "High", Value: "high"},
	)

	td := attr.NewType("Panel", attr.WithNew(func() any { return nil }))
	td.Attr("level", attr.EnumOf(level), func(any) any { return nil }, func(any, any) {})
	td.Attr("widgets", attr.ListOf(attr.ObjectOf(base)), func(any) any { return nil }, nil).
		WithParams(attr.Params{UseSubtypeSelector: true, AddButtonText: "Add widget"})

	s := Schema("panel", td)

	lv := s.Attrs[0]
	if len(lv.Enum) != 2 || lv.Enum[0].Label != "Low" || lv.Enum[0].Value != "low" {
		t.Errorf("enum options = %+v", lv.Enum)
	}

	w := s.Attrs[1]
	if !w.UseSubtypeSelector || w.AddButtonText != "Add widget" {
		t.Errorf("widgets params = %+v", w)
	}
	if w.Elem == nil || w.Elem.Object != "Widget" {
		t.Fatalf("widgets elem = %+v", w.Elem)
	}
	if len(w.Elem.Subtypes) != 1 || w.Elem.Subtypes[0] != "Knob" {
		t.Errorf("subtypes = %v", w.Elem.Subtypes)
	}
	if !w.ReadOnly {
		t.Error("setterless attribute must report read-only")
	}
}

func TestSchemaSerializesToJSON(t *testing.T) {
	data, err := json.Marshal(Schema("gadget", gadgetDef))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["model"] != "gadget" {
		t.Errorf("decoded = %v", decoded)
	}
}

func TestJSONValueConversion(t *testing.T) {
	in := map[string]any{
		"b": []any{float64(1), "two"},
		"a": map[string]any{"nested": true},
	}
	converted := fromJSONValue(in)
	n, ok := converted.(*tree.Node)
	if !ok {
		t.Fatalf("converted is %T", converted)
	}
	keys := n.Keys()
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Errorf("keys = %v, want sorted", keys)
	}
	sub, ok := n.GetNode("a")
	if !ok {
		t.Fatal("nested node missing")
	}
	v, _ := sub.Get("nested")
	if v != true {
		t.Errorf("nested = %v", v)
	}

	back := toJSONValue(converted)
	m, ok := back.(map[string]any)
	if !ok {
		t.Fatalf("back is %T", back)
	}
	list, ok := m["b"].([]any)
	if !ok || len(list) != 2 || list[1] != "two" {
		t.Errorf("b = %v", m["b"])
	}
}
