package form

import (
	"github.com/propform/propform/attr"
	"github.com/propform/propform/control"
)

// The composite controls register once at package initialization. The form
// registers through the generic path so any more specific control always
// wins over it for object-valued attributes.
func init() {
	control.RegisterGeneric(attr.AnyObject, func() control.Control {
		return New(nil, nil)
	})
	control.Register(attr.AnyList, func() control.Control {
		return NewListEditor(attr.Any)
	})
}
