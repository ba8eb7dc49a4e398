package remote

import (
	"sort"

	"github.com/propform/propform/tree"
)

// fromJSONValue rewrites a decoded JSON value into the document tree
// shape the coercer understands: objects become ordered nodes (keys
// sorted, since JSON objects carry no order) and arrays become lists.
func fromJSONValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		n := tree.New()
		for _, k := range keys {
			n.Set(k, fromJSONValue(x[k]))
		}
		return n
	case []any:
		out := make(tree.List, len(x))
		for i, item := range x {
			out[i] = fromJSONValue(item)
		}
		return out
	default:
		return v
	}
}

// toJSONValue flattens a tree value into plain maps and slices for
// encoding/json. Node key order is lost on the wire, which is fine for
// JSON clients.
func toJSONValue(v any) any {
	switch x := v.(type) {
	case *tree.Node:
		out := make(map[string]any, x.Len())
		for _, k := range x.Keys() {
			val, _ := x.Get(k)
			out[k] = toJSONValue(val)
		}
		return out
	case tree.List:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = toJSONValue(item)
		}
		return out
	default:
		return v
	}
}
