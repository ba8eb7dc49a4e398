// Package attr implements the attribute model: per-type descriptor tables,
// structural value-type descriptors, known-subtype registries, and the
// action proxy mechanism.
//
// The attribute model is declared explicitly in Go via NewType and the
// TypeDef builder methods, and is consumed by the control, form, and
// serialize packages.
package attr

// Kind classifies the value type of an attribute for control selection
// and for serialization coercion.
type Kind int

const (
	KindInvalid Kind = iota
	KindString
	KindBool
	KindInt
	KindFloat
	KindPath
	KindColor
	KindFont
	KindEnum
	KindList
	KindMap
	KindObject
	KindAny
)

// String returns the schema-visible kind name.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindPath:
		return "path"
	case KindColor:
		return "color"
	case KindFont:
		return "font"
	case KindEnum:
		return "enum"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	case KindObject:
		return "object"
	case KindAny:
		return "any"
	default:
		return "invalid"
	}
}

// Type is a structural value-type descriptor. Composite kinds carry their
// component types; a nil component acts as a wildcard matching any
// compatible component.
type Type struct {
	Kind Kind
	Elem *Type    // list element / map value type
	Key  *Type    // map key type
	Enum *EnumDef // KindEnum only
	Def  *TypeDef // KindObject only
}

// Primitive type descriptors.
var (
	String = Type{Kind: KindString}
	Bool   = Type{Kind: KindBool}
	Int    = Type{Kind: KindInt}
	Float  = Type{Kind: KindFloat}
	Path   = Type{Kind: KindPath}
	Color  = Type{Kind: KindColor}
	Font   = Type{Kind: KindFont}
	Any    = Type{Kind: KindAny}
)

// Wildcard composite descriptors, used for control registration.
var (
	AnyEnum   = Type{Kind: KindEnum}
	AnyList   = Type{Kind: KindList}
	AnyMap    = Type{Kind: KindMap}
	AnyObject = Type{Kind: KindObject}
)

// ListOf returns the descriptor for a list with the given element type.
func ListOf(elem Type) Type {
	return Type{Kind: KindList, Elem: &elem}
}

// MapOf returns the descriptor for a mapping with the given key and value types.
func MapOf(key, value Type) Type {
	return Type{Kind: KindMap, Key: &key, Elem: &value}
}

// EnumOf returns the descriptor for values of the given enumeration.
func EnumOf(def *EnumDef) Type {
	return Type{Kind: KindEnum, Enum: def}
}

// ObjectOf returns the descriptor for instances of the given object type.
func ObjectOf(def *TypeDef) Type {
	return Type{Kind: KindObject, Def: def}
}

// String renders the descriptor for diagnostics.
func (t Type) String() string {
	switch t.Kind {
	case KindEnum:
		if t.Enum != nil {
			return "enum(" + t.Enum.Name + ")"
		}
	case KindObject:
		if t.Def != nil {
			return "object(" + t.Def.Name() + ")"
		}
	case KindList:
		if t.Elem != nil {
			return "list(" + t.Elem.String() + ")"
		}
	case KindMap:
		if t.Key != nil && t.Elem != nil {
			return "map(" + t.Key.String() + "," + t.Elem.String() + ")"
		}
	}
	return t.Kind.String()
}

// Subtype reports whether a value of type t is assignable where the
// candidate type is expected. Object types walk their declared ancestry,
// list element types are compared covariantly, and any mapping matches any
// other mapping with compatible key and value types. A candidate with a nil
// component accepts any component on that position.
func Subtype(t, candidate Type) bool {
	if candidate.Kind == KindAny {
		return true
	}
	if t.Kind != candidate.Kind {
		return false
	}
	switch t.Kind {
	case KindObject:
		if candidate.Def == nil {
			return true
		}
		if t.Def == nil {
			return false
		}
		return t.Def.DerivesFrom(candidate.Def)
	case KindEnum:
		return candidate.Enum == nil || t.Enum == candidate.Enum
	case KindList:
		if candidate.Elem == nil {
			return true
		}
		if t.Elem == nil {
			return false
		}
		return Subtype(*t.Elem, *candidate.Elem)
	case KindMap:
		if !componentMatch(t.Key, candidate.Key) {
			return false
		}
		return componentMatch(t.Elem, candidate.Elem)
	default:
		return true
	}
}

func componentMatch(t, candidate *Type) bool {
	if candidate == nil {
		return true
	}
	if t == nil {
		return false
	}
	return Subtype(*t, *candidate)
}

// Specificity ranks a type descriptor for control resolution: among all
// registered candidates matching a requested type, the one with the highest
// specificity wins. Object types rank by ancestry depth, composite types add
// the specificity of their components, and wildcards rank lowest.
func Specificity(t Type) int {
	switch t.Kind {
	case KindAny:
		return 0
	case KindObject:
		if t.Def == nil {
			return 1
		}
		return 1 + t.Def.Depth()
	case KindEnum:
		if t.Enum == nil {
			return 1
		}
		return 2
	case KindList:
		if t.Elem == nil {
			return 1
		}
		return 1 + Specificity(*t.Elem)
	case KindMap:
		n := 1
		if t.Key != nil {
			n += Specificity(*t.Key)
		}
		if t.Elem != nil {
			n += Specificity(*t.Elem)
		}
		return n
	default:
		return 2
	}
}
