package remote

import (
	"github.com/propform/propform/attr"
	"github.com/propform/propform/serialize"
)

// ModelSchema is the JSON description of a model a client uses to lay
// out its widgets.
type ModelSchema struct {
	Model   string         `json:"model"`
	Attrs   []FieldSchema  `json:"attrs"`
	Actions []ActionSchema `json:"actions,omitempty"`
}

// FieldSchema describes one attribute or action argument.
type FieldSchema struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Type     string `json:"type"`
	Kind     string `json:"kind"`
	ReadOnly bool   `json:"read_only,omitempty"`

	Elem *FieldSchema `json:"elem,omitempty"`

	Enum     []EnumOption `json:"enum,omitempty"`
	Object   string       `json:"object,omitempty"`
	Subtypes []string     `json:"subtypes,omitempty"`

	Min      *float64 `json:"min,omitempty"`
	Max      *float64 `json:"max,omitempty"`
	Step     *float64 `json:"step,omitempty"`
	Decimals *int     `json:"decimals,omitempty"`

	Filter             string `json:"filter,omitempty"`
	DirectoryMode      bool   `json:"directory_mode,omitempty"`
	AddButtonText      string `json:"add_button_text,omitempty"`
	UseSubtypeSelector bool   `json:"use_subtype_selector,omitempty"`

	Default any `json:"default,omitempty"`
}

// EnumOption is one selectable enumeration member.
type EnumOption struct {
	Label string `json:"label"`
	Value any    `json:"value"`
}

// ActionSchema describes one invokable action and its arguments.
type ActionSchema struct {
	Name         string        `json:"name"`
	Title        string        `json:"title"`
	TriggerLabel string        `json:"trigger_label"`
	Args         []FieldSchema `json:"args,omitempty"`
}

// Schema builds the wire description of a model definition.
func Schema(name string, def *attr.TypeDef) ModelSchema {
	out := ModelSchema{Model: name}
	for _, a := range def.Reflect() {
		if a.Params.NoControl {
			continue
		}
		out.Attrs = append(out.Attrs, fieldSchema(a))
	}
	for _, act := range def.Actions() {
		as := ActionSchema{
			Name:         act.Name,
			Title:        act.Title(),
			TriggerLabel: "Run: " + act.Title(),
		}
		for _, a := range act.Def().Reflect() {
			fs := fieldSchema(a)
			if spec, ok := argSpec(act, a.Name); ok && spec.Default != nil {
				if enc, err := serialize.EncodeValue(a.Type, spec.Default); err == nil {
					fs.Default = toJSONValue(enc)
				}
			}
			as.Args = append(as.Args, fs)
		}
		out.Actions = append(out.Actions, as)
	}
	return out
}

func argSpec(act *attr.Action, name string) (attr.ArgSpec, bool) {
	for _, spec := range act.Args {
		if spec.Name == name {
			return spec, true
		}
	}
	return attr.ArgSpec{}, false
}

func fieldSchema(a *attr.Attribute) FieldSchema {
	fs := FieldSchema{
		Name:     a.Name,
		Label:    a.Label(),
		Type:     a.Type.String(),
		Kind:     a.Type.Kind.String(),
		ReadOnly: a.ReadOnly(),

		Min:      a.Params.Min,
		Max:      a.Params.Max,
		Step:     a.Params.Step,
		Decimals: a.Params.Decimals,

		Filter:             a.Params.Filter,
		DirectoryMode:      a.Params.DirectoryMode,
		AddButtonText:      a.Params.AddButtonText,
		UseSubtypeSelector: a.Params.UseSubtypeSelector,
	}
	fillTypeSchema(&fs, a.Type)
	return fs
}

func fillTypeSchema(fs *FieldSchema, t attr.Type) {
	switch {
	case t.Enum != nil:
		for _, v := range t.Enum.Values {
			fs.Enum = append(fs.Enum, EnumOption{Label: v.Label, Value: attr.ScalarOf(v.Value)})
		}
	case t.Def != nil:
		fs.Object = t.Def.Name()
		for _, sub := range t.Def.KnownTypes() {
			if sub.CanNew() {
				fs.Subtypes = append(fs.Subtypes, sub.Name())
			}
		}
	case t.Kind == attr.KindList && t.Elem != nil:
		elem := FieldSchema{
			Type: t.Elem.String(),
			Kind: t.Elem.Kind.String(),
		}
		fillTypeSchema(&elem, *t.Elem)
		fs.Elem = &elem
	}
}
