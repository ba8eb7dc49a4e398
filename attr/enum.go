package attr

import "reflect"

// EnumValue is one member of an enumeration: a display label plus the
// underlying Go value stored in attributes and serialized documents.
type EnumValue struct {
	Label string
	Value any
}

// EnumDef describes an enumeration. Two attributes share an enumeration by
// sharing the same *EnumDef.
type EnumDef struct {
	Name   string
	Values []EnumValue
}

// NewEnum builds an enumeration definition from label/value pairs in
// declaration order.
func NewEnum(name string, values ...EnumValue) *EnumDef {
	return &EnumDef{Name: name, Values: values}
}

// ByLabel looks up a member by its display label.
func (e *EnumDef) ByLabel(label string) (EnumValue, bool) {
	for _, v := range e.Values {
		if v.Label == label {
			return v, true
		}
	}
	return EnumValue{}, false
}

// ByValue looks up a member by its underlying value. Integer values are
// compared numerically so that a decoded int64 matches a declared int.
func (e *EnumDef) ByValue(value any) (EnumValue, bool) {
	want := ScalarOf(value)
	for _, v := range e.Values {
		if ScalarOf(v.Value) == want {
			return v, true
		}
	}
	return EnumValue{}, false
}

// ScalarOf reduces a typed constant to its underlying scalar so that a
// declared member (for example a string-based enum type) compares equal to
// the plain scalar read back from a document.
func ScalarOf(v any) any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.Bool:
		return rv.Bool()
	default:
		return v
	}
}
