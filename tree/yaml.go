package tree

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// The document encoding is YAML: an indented key/value text format whose
// scalars map one-to-one onto the tree-native scalar set. Key order is
// preserved in both directions by going through yaml.Node rather than maps.

// Marshal renders the node as a YAML document.
func Marshal(n *Node) ([]byte, error) {
	return yaml.Marshal(n)
}

// Unmarshal parses a YAML document whose top level is a mapping.
func Unmarshal(data []byte) (*Node, error) {
	n := New()
	if err := yaml.Unmarshal(data, n); err != nil {
		return nil, err
	}
	return n, nil
}

// MarshalYAML implements yaml.Marshaler, emitting an order-preserving
// mapping node.
func (n *Node) MarshalYAML() (any, error) {
	return encodeYAML(n)
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (n *Node) UnmarshalYAML(node *yaml.Node) error {
	v, err := decodeYAML(node)
	if err != nil {
		return err
	}
	decoded, ok := v.(*Node)
	if !ok {
		return fmt.Errorf("tree: document root is %s, want a mapping", node.Tag)
	}
	*n = *decoded
	return nil
}

func encodeYAML(v any) (*yaml.Node, error) {
	switch val := v.(type) {
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(val)}, nil
	case int64:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(val, 10)}, nil
	case int:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(val)}, nil
	case float64:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: strconv.FormatFloat(val, 'g', -1, 64)}, nil
	case string:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: val}, nil
	case *Node:
		out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, key := range val.keys {
			child, err := encodeYAML(val.vals[key])
			if err != nil {
				return nil, err
			}
			out.Content = append(out.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
				child)
		}
		return out, nil
	case List:
		out := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range val {
			child, err := encodeYAML(item)
			if err != nil {
				return nil, err
			}
			out.Content = append(out.Content, child)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("tree: cannot encode %T", v)
	}
}

func decodeYAML(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return New(), nil
		}
		return decodeYAML(node.Content[0])
	case yaml.MappingNode:
		out := New()
		for i := 0; i+1 < len(node.Content); i += 2 {
			v, err := decodeYAML(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			out.Set(node.Content[i].Value, v)
		}
		return out, nil
	case yaml.SequenceNode:
		out := make(List, 0, len(node.Content))
		for _, item := range node.Content {
			v, err := decodeYAML(item)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.ScalarNode:
		switch node.Tag {
		case "!!null":
			return nil, nil
		case "!!bool":
			return strconv.ParseBool(node.Value)
		case "!!int":
			return strconv.ParseInt(node.Value, 10, 64)
		case "!!float":
			return strconv.ParseFloat(node.Value, 64)
		default:
			return node.Value, nil
		}
	case yaml.AliasNode:
		return decodeYAML(node.Alias)
	default:
		return nil, fmt.Errorf("tree: unsupported YAML node kind %d", node.Kind)
	}
}
