// Package tree defines the generic serialization tree: an insertion-ordered
// string-keyed mapping whose values are scalars, nested trees, or sequences
// of either. It is the universal interchange format between the serializer
// and the textual document encoding.
package tree

// TypeKey is the reserved discriminator key. Its value is a type name used
// only to pick a concrete subtype on deserialization.
const TypeKey = "__class__"

// List is an ordered sequence of tree values.
type List []any

// Node is an ordered mapping from attribute name to a tree value: nil,
// bool, int64, float64, string, *Node, or List. Setting an existing key
// overwrites in place and keeps the key's original position.
type Node struct {
	keys []string
	vals map[string]any
}

// New returns an empty node.
func New() *Node {
	return &Node{vals: map[string]any{}}
}

// Set stores a value under key, preserving first-insertion order.
func (n *Node) Set(key string, v any) {
	if _, ok := n.vals[key]; !ok {
		n.keys = append(n.keys, key)
	}
	n.vals[key] = v
}

// Get returns the value stored under key.
func (n *Node) Get(key string) (any, bool) {
	v, ok := n.vals[key]
	return v, ok
}

// Has reports whether key is present.
func (n *Node) Has(key string) bool {
	_, ok := n.vals[key]
	return ok
}

// Delete removes key, preserving the order of the remaining keys.
func (n *Node) Delete(key string) {
	if _, ok := n.vals[key]; !ok {
		return
	}
	delete(n.vals, key)
	for i, k := range n.keys {
		if k == key {
			n.keys = append(n.keys[:i], n.keys[i+1:]...)
			return
		}
	}
}

// Keys returns the keys in insertion order.
func (n *Node) Keys() []string {
	return append([]string(nil), n.keys...)
}

// Len returns the number of keys.
func (n *Node) Len() int { return len(n.keys) }

// GetString returns the string stored under key, or "" when absent or not a
// string.
func (n *Node) GetString(key string) string {
	if v, ok := n.vals[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetNode returns the nested node stored under key.
func (n *Node) GetNode(key string) (*Node, bool) {
	v, ok := n.vals[key]
	if !ok {
		return nil, false
	}
	child, ok := v.(*Node)
	return child, ok
}
