// Package demo declares the sample model served by the cmds: a user
// profile exercising every built-in value kind, a polymorphic contact
// list, and an action with its own argument state.
package demo

import (
	"log"

	"github.com/propform/propform/attr"
	"github.com/propform/propform/vals"
)

// Theme is the profile's appearance setting.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// ThemeEnum is the enumeration definition backing Theme attributes.
var ThemeEnum = attr.NewEnum("Theme",
	attr.EnumValue{Label: "Light", Value: ThemeLight},
	attr.EnumValue{Label: "Dark", Value: ThemeDark},
	attr.EnumValue{Label: "System", Value: ThemeSystem},
)

// Profile is the root demo instance.
type Profile struct {
	attr.Base
	Name     string
	Age      int
	Bio      string
	Avatar   vals.Path
	Accent   vals.Color
	Heading  vals.Font
	Theme    Theme
	Tags     []string
	Contacts []any
	Features map[string]bool
	APIKey   string
	Exports  int
}

// NewProfile returns a profile with presentable defaults.
func NewProfile() *Profile {
	return &Profile{
		Name:     "New profile",
		Age:      30,
		Accent:   vals.Color{R: 70, G: 130, B: 180, A: 255},
		Heading:  vals.DefaultFont,
		Theme:    ThemeSystem,
		Features: map[string]bool{"beta": false, "newsletter": true},
	}
}

// TypeDef implements attr.Typed.
func (p *Profile) TypeDef() *attr.TypeDef { return ProfileType }

// ProfileType is the profile's attribute descriptor table.
var ProfileType = buildProfileType()

func buildProfileType() *attr.TypeDef {
	td := attr.NewType("Profile", attr.WithNew(func() any { return NewProfile() }))

	td.Attr("name", attr.String,
		func(i any) any { return i.(*Profile).Name },
		func(i, v any) { i.(*Profile).Name = v.(string) })

	td.Attr("age", attr.Int,
		func(i any) any { return i.(*Profile).Age },
		func(i, v any) { i.(*Profile).Age = v.(int) },
	).WithParams(attr.Params{Min: attr.Ptr(0.0), Max: attr.Ptr(150.0), Decimals: attr.Ptr(0)})

	td.Attr("bio", attr.String,
		func(i any) any { return i.(*Profile).Bio },
		func(i, v any) { i.(*Profile).Bio = v.(string) },
	).WithParams(attr.Params{Control: multilineControl})

	td.Attr("avatar", attr.Path,
		func(i any) any { return i.(*Profile).Avatar },
		func(i, v any) { i.(*Profile).Avatar = v.(vals.Path) },
	).WithParams(attr.Params{Filter: "Images (*.png *.jpg)"})

	td.Attr("accent", attr.Color,
		func(i any) any { return i.(*Profile).Accent },
		func(i, v any) { i.(*Profile).Accent = v.(vals.Color) })

	td.Attr("heading", attr.Font,
		func(i any) any { return i.(*Profile).Heading },
		func(i, v any) { i.(*Profile).Heading = v.(vals.Font) })

	td.Attr("theme", attr.EnumOf(ThemeEnum),
		func(i any) any { return i.(*Profile).Theme },
		func(i, v any) { i.(*Profile).Theme = v.(Theme) })

	td.Attr("tags", attr.ListOf(attr.String),
		func(i any) any {
			p := i.(*Profile)
			out := make([]any, len(p.Tags))
			for j, t := range p.Tags {
				out[j] = t
			}
			return out
		},
		func(i, v any) {
			p := i.(*Profile)
			items := v.([]any)
			p.Tags = make([]string, len(items))
			for j, item := range items {
				p.Tags[j] = item.(string)
			}
		},
	).WithParams(attr.Params{AddButtonText: "Add tag"})

	td.Attr("contacts", attr.ListOf(attr.ObjectOf(ContactType)),
		func(i any) any { return append([]any(nil), i.(*Profile).Contacts...) },
		func(i, v any) { i.(*Profile).Contacts = append([]any(nil), v.([]any)...) },
	).WithParams(attr.Params{AddButtonText: "Add contact", UseSubtypeSelector: true})

	td.Attr("features", attr.MapOf(attr.String, attr.Bool),
		func(i any) any { return i.(*Profile).Features },
		func(i, v any) { i.(*Profile).Features = v.(map[string]bool) })

	td.Attr("api_key", attr.String,
		func(i any) any { return i.(*Profile).APIKey },
		func(i, v any) { i.(*Profile).APIKey = v.(string) },
	).WithParams(attr.Params{NoControl: true, DontEncode: true})

	td.Attr("exports", attr.Int,
		func(i any) any { return i.(*Profile).Exports },
		nil)

	td.Action("export_profile", func(inst any, args map[string]any) {
		p := inst.(*Profile)
		p.Exports++
		dest, _ := args["destination"].(vals.Path)
		log.Printf("demo: export %q to %s (export #%d)", p.Name, dest, p.Exports)
	},
		attr.ArgSpec{Name: "destination", Type: attr.Path},
		attr.ArgSpec{Name: "include_secrets", Type: attr.Bool, Default: false},
	)

	return td
}
