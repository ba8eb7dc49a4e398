package serialize

import (
	"fmt"
	"sort"

	"github.com/propform/propform/attr"
	"github.com/propform/propform/tree"
	"github.com/propform/propform/vals"
)

// EncodeValue converts an attribute value to its tree-native form under the
// fixed encoding rules: paths become strings, enumerations their underlying
// value, colors an [r, g, b, a] sequence, fonts an ordered field structure,
// objects a nested tree (with a discriminator when the declared type has a
// known-types set), and lists and maps recurse element-wise.
func EncodeValue(t attr.Type, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	switch t.Kind {
	case attr.KindString:
		s, ok := v.(string)
		if !ok {
			return nil, encodeErr(t, v)
		}
		return s, nil
	case attr.KindBool:
		b, ok := v.(bool)
		if !ok {
			return nil, encodeErr(t, v)
		}
		return b, nil
	case attr.KindInt:
		n, ok := toInt64(v)
		if !ok {
			return nil, encodeErr(t, v)
		}
		return n, nil
	case attr.KindFloat:
		f, ok := toFloat64(v)
		if !ok {
			return nil, encodeErr(t, v)
		}
		return f, nil
	case attr.KindPath:
		switch p := v.(type) {
		case vals.Path:
			return string(p), nil
		case string:
			return p, nil
		}
		return nil, encodeErr(t, v)
	case attr.KindColor:
		c, ok := v.(vals.Color)
		if !ok {
			return nil, encodeErr(t, v)
		}
		return tree.List{int64(c.R), int64(c.G), int64(c.B), int64(c.A)}, nil
	case attr.KindFont:
		f, ok := v.(vals.Font)
		if !ok {
			return nil, encodeErr(t, v)
		}
		n := tree.New()
		n.Set("family", f.Family)
		n.Set("pointSize", int64(f.PointSize))
		n.Set("bold", f.Bold)
		n.Set("italic", f.Italic)
		n.Set("underline", f.Underline)
		n.Set("strikeOut", f.StrikeOut)
		return n, nil
	case attr.KindEnum:
		return attr.ScalarOf(v), nil
	case attr.KindObject:
		return encodeObject(t.Def, v)
	case attr.KindList:
		elem := attr.Any
		if t.Elem != nil {
			elem = *t.Elem
		}
		items, ok := toSlice(v)
		if !ok {
			return nil, encodeErr(t, v)
		}
		out := make(tree.List, 0, len(items))
		for i, item := range items {
			enc, err := EncodeValue(elem, item)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			out = append(out, enc)
		}
		return out, nil
	case attr.KindMap:
		return encodeMap(t, v)
	case attr.KindAny:
		return encodeAny(v)
	default:
		return nil, encodeErr(t, v)
	}
}

func encodeObject(declared *attr.TypeDef, v any) (any, error) {
	def := declared
	if rt, ok := attr.DefOf(v); ok {
		def = rt
	}
	if def == nil {
		return nil, fmt.Errorf("cannot encode %T: no type descriptor", v)
	}
	withType := declared != nil && len(declared.KnownTypes()) > 0
	n, err := ToTree(def, v, Options{IncludeTypeName: withType})
	if err != nil {
		return n, err
	}
	return n, nil
}

func encodeMap(t attr.Type, v any) (any, error) {
	elem := attr.Any
	if t.Elem != nil {
		elem = *t.Elem
	}
	entries := map[string]any{}
	switch m := v.(type) {
	case map[string]bool:
		for k, b := range m {
			entries[k] = b
		}
	case map[string]any:
		for k, item := range m {
			entries[k] = item
		}
	default:
		return nil, encodeErr(t, v)
	}
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	n := tree.New()
	for _, k := range keys {
		enc, err := EncodeValue(elem, entries[k])
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		n.Set(k, enc)
	}
	return n, nil
}

func encodeAny(v any) (any, error) {
	switch v.(type) {
	case nil, bool, int64, float64, string, *tree.Node, tree.List:
		return v, nil
	case int:
		return int64(v.(int)), nil
	}
	if td, ok := attr.DefOf(v); ok {
		return ToTree(td, v, Options{IncludeTypeName: true})
	}
	switch s := attr.ScalarOf(v).(type) {
	case bool, int64, float64, string:
		return s, nil
	}
	return nil, fmt.Errorf("cannot encode %T as a tree value", v)
}

// Coerce converts a raw tree value to the attribute's declared type:
// strings wrap into paths, enumeration scalars look up the declared member
// (ErrInvalidEnumValue when absent), composite value structures rebuild
// their value type, object trees recurse through FromTree, and sequences
// coerce element-wise. A value that already matches the target passes
// through unchanged.
func Coerce(t attr.Type, raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}
	switch t.Kind {
	case attr.KindString:
		if s, ok := raw.(string); ok {
			return s, nil
		}
		return nil, coerceErr(t, raw)
	case attr.KindBool:
		if b, ok := raw.(bool); ok {
			return b, nil
		}
		return nil, coerceErr(t, raw)
	case attr.KindInt:
		if n, ok := toInt64(raw); ok {
			return int(n), nil
		}
		return nil, coerceErr(t, raw)
	case attr.KindFloat:
		if f, ok := toFloat64(raw); ok {
			return f, nil
		}
		return nil, coerceErr(t, raw)
	case attr.KindPath:
		switch p := raw.(type) {
		case vals.Path:
			return p, nil
		case string:
			return vals.Path(p), nil
		}
		return nil, coerceErr(t, raw)
	case attr.KindColor:
		return coerceColor(raw)
	case attr.KindFont:
		return coerceFont(raw)
	case attr.KindEnum:
		if t.Enum == nil {
			return raw, nil
		}
		ev, ok := t.Enum.ByValue(raw)
		if !ok {
			return nil, fmt.Errorf("%w: %v is not a member of %s", ErrInvalidEnumValue, raw, t.Enum.Name)
		}
		return ev.Value, nil
	case attr.KindObject:
		if n, ok := raw.(*tree.Node); ok && t.Def != nil {
			return FromTree(t.Def, n)
		}
		return nil, coerceErr(t, raw)
	case attr.KindList:
		elem := attr.Any
		if t.Elem != nil {
			elem = *t.Elem
		}
		items, ok := toSlice(raw)
		if !ok {
			return nil, coerceErr(t, raw)
		}
		out := make([]any, 0, len(items))
		for i, item := range items {
			v, err := Coerce(elem, item)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			out = append(out, v)
		}
		return out, nil
	case attr.KindMap:
		return coerceMap(t, raw)
	default:
		return raw, nil
	}
}

func coerceColor(raw any) (any, error) {
	if c, ok := raw.(vals.Color); ok {
		return c, nil
	}
	items, ok := toSlice(raw)
	if !ok || len(items) != 4 {
		return nil, fmt.Errorf("cannot coerce %T to color: want [r, g, b, a]", raw)
	}
	var ch [4]uint8
	for i, item := range items {
		n, ok := toInt64(item)
		if !ok || n < 0 || n > 255 {
			return nil, fmt.Errorf("cannot coerce %v to a color channel", item)
		}
		ch[i] = uint8(n)
	}
	return vals.Color{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
}

func coerceFont(raw any) (any, error) {
	if f, ok := raw.(vals.Font); ok {
		return f, nil
	}
	n, ok := raw.(*tree.Node)
	if !ok {
		return nil, fmt.Errorf("cannot coerce %T to font", raw)
	}
	f := vals.Font{Family: n.GetString("family")}
	if v, ok := n.Get("pointSize"); ok {
		if size, ok := toInt64(v); ok {
			f.PointSize = int(size)
		}
	}
	f.Bold = getBool(n, "bold")
	f.Italic = getBool(n, "italic")
	f.Underline = getBool(n, "underline")
	f.StrikeOut = getBool(n, "strikeOut")
	return f, nil
}

func coerceMap(t attr.Type, raw any) (any, error) {
	n, ok := raw.(*tree.Node)
	if !ok {
		switch m := raw.(type) {
		case map[string]bool, map[string]any:
			return m, nil
		}
		return nil, coerceErr(t, raw)
	}
	if t.Elem != nil && t.Elem.Kind == attr.KindBool {
		out := make(map[string]bool, n.Len())
		for _, k := range n.Keys() {
			v, _ := n.Get(k)
			b, ok := v.(bool)
			if !ok {
				return nil, fmt.Errorf("key %q: cannot coerce %T to bool", k, v)
			}
			out[k] = b
		}
		return out, nil
	}
	out := make(map[string]any, n.Len())
	for _, k := range n.Keys() {
		v, _ := n.Get(k)
		out[k] = v
	}
	return out, nil
}

func getBool(n *tree.Node, key string) bool {
	if v, ok := n.Get(key); ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}

func toSlice(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case tree.List:
		return s, true
	}
	return nil, false
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		if n == float64(int64(n)) {
			return int64(n), true
		}
	}
	return 0, false
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func encodeErr(t attr.Type, v any) error {
	return fmt.Errorf("cannot encode %T as %s", v, t)
}

func coerceErr(t attr.Type, raw any) error {
	return fmt.Errorf("cannot coerce %T to %s", raw, t)
}
