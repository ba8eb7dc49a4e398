package demo

import (
	"github.com/propform/propform/attr"
	"github.com/propform/propform/control/memctl"
)

func multilineControl() any { return memctl.NewMultiline() }

// EmailContact and PhoneContact share the abstract Contact type so a
// contact list can pick which one to add.

type EmailContact struct {
	attr.Base
	Label   string
	Address string
}

func (c *EmailContact) TypeDef() *attr.TypeDef { return EmailContactType }

type PhoneContact struct {
	attr.Base
	Label  string
	Number string
	Mobile bool
}

func (c *PhoneContact) TypeDef() *attr.TypeDef { return PhoneContactType }

// ContactType is abstract: it has no constructor and declares no
// attributes of its own, but anchors the subtype registry.
var ContactType = attr.NewType("Contact")

var EmailContactType = buildEmailContactType()

var PhoneContactType = buildPhoneContactType()

func init() {
	ContactType.RegisterSubtype(EmailContactType)
	ContactType.RegisterSubtype(PhoneContactType)
}

func buildEmailContactType() *attr.TypeDef {
	td := attr.NewType("EmailContact",
		attr.WithBase(ContactType),
		attr.WithNew(func() any { return &EmailContact{Label: "Email"} }))

	td.Attr("label", attr.String,
		func(i any) any { return i.(*EmailContact).Label },
		func(i, v any) { i.(*EmailContact).Label = v.(string) })

	td.Attr("address", attr.String,
		func(i any) any { return i.(*EmailContact).Address },
		func(i, v any) { i.(*EmailContact).Address = v.(string) })

	return td
}

func buildPhoneContactType() *attr.TypeDef {
	td := attr.NewType("PhoneContact",
		attr.WithBase(ContactType),
		attr.WithNew(func() any { return &PhoneContact{Label: "Phone"} }))

	td.Attr("label", attr.String,
		func(i any) any { return i.(*PhoneContact).Label },
		func(i, v any) { i.(*PhoneContact).Label = v.(string) })

	td.Attr("number", attr.String,
		func(i any) any { return i.(*PhoneContact).Number },
		func(i, v any) { i.(*PhoneContact).Number = v.(string) })

	td.Attr("mobile", attr.Bool,
		func(i any) any { return i.(*PhoneContact).Mobile },
		func(i, v any) { i.(*PhoneContact).Mobile = v.(bool) })

	return td
}
