// Package serialize converts instances to and from the generic
// serialization tree by reading and writing reflected attributes, with
// type-directed coercion of every stored value. Polymorphic values carry a
// discriminator key resolved against the declared type's known-types set.
package serialize

import (
	"errors"
	"fmt"

	"github.com/propform/propform/attr"
	"github.com/propform/propform/tree"
)

// ErrUnknownSubtype is returned when a tree's discriminator names a type
// absent from the target's known-types set.
var ErrUnknownSubtype = errors.New("unknown subtype")

// ErrInvalidEnumValue is returned when a stored enumeration value no longer
// exists in the current enumeration definition.
var ErrInvalidEnumValue = errors.New("invalid enumeration value")

// Options controls tree generation.
type Options struct {
	// IncludeTypeName prepends the discriminator key with the instance's
	// concrete runtime type name. Nested values get a discriminator
	// automatically whenever their declared type carries a known-types set.
	IncludeTypeName bool
}

// ToTree reads every reflected attribute of inst into an ordered tree.
// Attributes flagged DontEncode are skipped. Action proxies are serialized
// after the attributes, keyed by action name, each as its own argument
// tree. A failing attribute is reported in the returned error but does not
// abort the rest: the tree always carries every attribute that serialized
// cleanly.
func ToTree(td *attr.TypeDef, inst any, opts Options) (*tree.Node, error) {
	def := td
	if rt, ok := attr.DefOf(inst); ok {
		def = rt
	}
	n := tree.New()
	if opts.IncludeTypeName {
		n.Set(tree.TypeKey, def.Name())
	}
	var errs []error
	for _, a := range def.Reflect() {
		if a.Params.DontEncode {
			continue
		}
		enc, err := EncodeValue(a.Type, a.Value(inst))
		if err != nil {
			errs = append(errs, fmt.Errorf("attribute %q: %w", a.Name, err))
			continue
		}
		n.Set(a.Name, enc)
	}
	for _, proxy := range attr.ActionObjects(inst, def) {
		sub, err := ToTree(proxy.TypeDef(), proxy, Options{})
		if err != nil {
			errs = append(errs, fmt.Errorf("action %q: %w", proxy.Action().Name, err))
		}
		if sub != nil {
			n.Set(proxy.Action().Name, sub)
		}
	}
	return n, errors.Join(errs...)
}

// FromTree constructs an instance of td from a tree. A discriminator key
// resolves the concrete subtype through td's known-types set first. Each
// tree key matching a reflected attribute is coerced to the attribute's
// declared type and written through its setter; keys matching an action
// name recurse into that proxy's argument slots; unknown keys are ignored.
// Per-attribute failures are joined into the returned error while the rest
// of the tree still applies.
func FromTree(td *attr.TypeDef, n *tree.Node) (any, error) {
	actual := td
	if name := n.GetString(tree.TypeKey); name != "" && len(td.KnownTypes()) > 0 {
		sub, ok := td.KnownType(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q is not a registered subtype of %q", ErrUnknownSubtype, name, td.Name())
		}
		actual = sub
	}
	if !actual.CanNew() {
		return nil, fmt.Errorf("type %q has no constructor", actual.Name())
	}
	inst := actual.New()

	attrs := map[string]*attr.Attribute{}
	for _, a := range actual.Reflect() {
		attrs[a.Name] = a
	}
	proxies := map[string]*attr.ActionObject{}
	for _, p := range attr.ActionObjects(inst, actual) {
		proxies[p.Action().Name] = p
	}

	var errs []error
	for _, key := range n.Keys() {
		if key == tree.TypeKey {
			continue
		}
		raw, _ := n.Get(key)
		if a, ok := attrs[key]; ok {
			v, err := Coerce(a.Type, raw)
			if err != nil {
				errs = append(errs, fmt.Errorf("attribute %q: %w", key, err))
				continue
			}
			if !a.ReadOnly() {
				a.SetValue(inst, v)
			}
			continue
		}
		if p, ok := proxies[key]; ok {
			sub, ok := raw.(*tree.Node)
			if !ok {
				errs = append(errs, fmt.Errorf("action %q: value is %T, want a tree", key, raw))
				continue
			}
			if err := applyActionArgs(p, sub); err != nil {
				errs = append(errs, fmt.Errorf("action %q: %w", key, err))
			}
			continue
		}
		// Unknown keys are ignored for forward compatibility.
	}
	return inst, errors.Join(errs...)
}

func applyActionArgs(p *attr.ActionObject, n *tree.Node) error {
	var errs []error
	def := p.TypeDef()
	for _, key := range n.Keys() {
		a, ok := def.Lookup(key)
		if !ok {
			continue
		}
		raw, _ := n.Get(key)
		v, err := Coerce(a.Type, raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("argument %q: %w", key, err))
			continue
		}
		a.SetValue(p, v)
	}
	return errors.Join(errs...)
}

// MarshalDocument serializes inst straight to its textual document form.
func MarshalDocument(td *attr.TypeDef, inst any, opts Options) ([]byte, error) {
	n, err := ToTree(td, inst, opts)
	if err != nil {
		return nil, err
	}
	return tree.Marshal(n)
}

// UnmarshalDocument parses a textual document and reconstructs an instance
// of td.
func UnmarshalDocument(td *attr.TypeDef, data []byte) (any, error) {
	n, err := tree.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return FromTree(td, n)
}
