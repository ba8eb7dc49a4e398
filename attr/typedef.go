package attr

// TypeDef is the descriptor table for one object type: its attributes and
// actions in declaration order, an optional base type whose declarations it
// inherits, a default constructor, and an explicitly registered set of known
// concrete subtypes used for polymorphic resolution.
type TypeDef struct {
	name    string
	base    *TypeDef
	newFn   func() any
	attrs   []*Attribute
	actions []*Action
	known   []*TypeDef
}

// TypeOption configures a TypeDef at declaration time.
type TypeOption func(*TypeDef)

// WithBase declares the ancestor whose attributes and actions this type
// inherits and may override.
func WithBase(base *TypeDef) TypeOption {
	return func(td *TypeDef) { td.base = base }
}

// WithNew declares the default constructor used for deserialization and for
// list-editor element creation.
func WithNew(fn func() any) TypeOption {
	return func(td *TypeDef) { td.newFn = fn }
}

// NewType declares a new object type descriptor.
func NewType(name string, opts ...TypeOption) *TypeDef {
	td := &TypeDef{name: name}
	for _, opt := range opts {
		opt(td)
	}
	return td
}

// Name returns the declared type name, used as the serialization
// discriminator for polymorphic values.
func (td *TypeDef) Name() string { return td.name }

// Base returns the declared ancestor, or nil.
func (td *TypeDef) Base() *TypeDef { return td.base }

// CanNew reports whether a default constructor was declared.
func (td *TypeDef) CanNew() bool { return td.newFn != nil }

// New constructs a default instance, or returns nil when the type declares
// no constructor (abstract bases).
func (td *TypeDef) New() any {
	if td.newFn == nil {
		return nil
	}
	return td.newFn()
}

// Attr declares an attribute and returns it so configuration can be chained
// with WithParams. A nil setter declares a read-only attribute.
func (td *TypeDef) Attr(name string, t Type, get func(any) any, set func(any, any)) *Attribute {
	a := &Attribute{Name: name, Type: t, Get: get, Set: set}
	td.attrs = append(td.attrs, a)
	return a
}

// Action declares a callable operation with its formal argument list.
func (td *TypeDef) Action(name string, fn func(inst any, args map[string]any), args ...ArgSpec) *Action {
	ac := &Action{Name: name, Func: fn, Args: args}
	td.actions = append(td.actions, ac)
	return ac
}

// Reflect returns the type's attributes with ancestry merged: the walk runs
// most-ancestral-first, a derived redeclaration of a name replaces the
// ancestor's definition in place, and names the derived type did not
// override keep the ancestor's declaration order. The result is stable
// across calls and shares the declared *Attribute values.
func (td *TypeDef) Reflect() []*Attribute {
	var order []string
	byName := map[string]*Attribute{}
	for _, level := range td.ancestry() {
		for _, a := range level.attrs {
			if _, seen := byName[a.Name]; !seen {
				order = append(order, a.Name)
			}
			byName[a.Name] = a
		}
	}
	out := make([]*Attribute, len(order))
	for i, name := range order {
		out[i] = byName[name]
	}
	return out
}

// Lookup finds an attribute by name through the merged ancestry.
func (td *TypeDef) Lookup(name string) (*Attribute, bool) {
	var found *Attribute
	for _, level := range td.ancestry() {
		for _, a := range level.attrs {
			if a.Name == name {
				found = a
			}
		}
	}
	return found, found != nil
}

// Actions returns the type's actions with ancestry merged the same way as
// Reflect.
func (td *TypeDef) Actions() []*Action {
	var order []string
	byName := map[string]*Action{}
	for _, level := range td.ancestry() {
		for _, ac := range level.actions {
			if _, seen := byName[ac.Name]; !seen {
				order = append(order, ac.Name)
			}
			byName[ac.Name] = ac
		}
	}
	out := make([]*Action, len(order))
	for i, name := range order {
		out[i] = byName[name]
	}
	return out
}

// ActionByName finds a declared action through the merged ancestry.
func (td *TypeDef) ActionByName(name string) (*Action, bool) {
	for _, ac := range td.Actions() {
		if ac.Name == name {
			return ac, true
		}
	}
	return nil, false
}

// ancestry lists the type chain most-ancestral-first.
func (td *TypeDef) ancestry() []*TypeDef {
	var chain []*TypeDef
	for t := td; t != nil; t = t.base {
		chain = append([]*TypeDef{t}, chain...)
	}
	return chain
}

// DerivesFrom reports whether td is anc or declares it as an ancestor.
func (td *TypeDef) DerivesFrom(anc *TypeDef) bool {
	for t := td; t != nil; t = t.base {
		if t == anc {
			return true
		}
	}
	return false
}

// Depth is the length of the ancestry chain, used for specificity ranking.
func (td *TypeDef) Depth() int {
	n := 0
	for t := td; t != nil; t = t.base {
		n++
	}
	return n
}

// RegisterSubtype adds a concrete subtype to this type's known-types set.
// The set is consulted for polymorphic deserialization and for subtype
// choice when adding list elements; it is populated explicitly, never by
// scanning.
func (td *TypeDef) RegisterSubtype(sub *TypeDef) {
	for _, k := range td.known {
		if k == sub {
			return
		}
	}
	td.known = append(td.known, sub)
}

// KnownTypes returns the registered subtypes in registration order.
func (td *TypeDef) KnownTypes() []*TypeDef { return td.known }

// KnownType resolves a registered subtype by name. The type's own name
// always resolves to itself.
func (td *TypeDef) KnownType(name string) (*TypeDef, bool) {
	if name == td.name {
		return td, true
	}
	for _, k := range td.known {
		if k.name == name {
			return k, true
		}
	}
	return nil, false
}

// Typed is implemented by instances that can name their own descriptor,
// which lets generic consumers (forms, serialization) recover the concrete
// runtime type of a polymorphic value.
type Typed interface {
	TypeDef() *TypeDef
}

// DefOf returns the descriptor of an instance implementing Typed.
func DefOf(inst any) (*TypeDef, bool) {
	t, ok := inst.(Typed)
	if !ok {
		return nil, false
	}
	return t.TypeDef(), true
}
