package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Node kinds understood by the resolver.
const (
	KindObject  = "object"
	KindArray   = "array"
	KindString  = "string"
	KindNumber  = "number"
	KindInteger = "integer"
	KindBoolean = "boolean"
)

// Node is one node of a JSON-Schema-like business model tree.
// Properties keep their declaration order so that resolved paths are stable.
type Node struct {
	Type        string
	Description string
	Properties  []Property
	Items       *Node
}

// Property is a named child of an object node.
type Property struct {
	Name string
	Node *Node
}

// Property returns the child node with the given name, or nil.
func (n *Node) Property(name string) *Node {
	if n == nil {
		return nil
	}
	for _, p := range n.Properties {
		if p.Name == name {
			return p.Node
		}
	}
	return nil
}

// MarshalJSON emits the node with properties in declaration order.
func (n *Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	writeKey := func(k string) {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		kb, _ := json.Marshal(k)
		buf.Write(kb)
		buf.WriteByte(':')
	}
	if n.Type != "" {
		writeKey("type")
		tb, _ := json.Marshal(n.Type)
		buf.Write(tb)
	}
	if n.Description != "" {
		writeKey("description")
		db, _ := json.Marshal(n.Description)
		buf.Write(db)
	}
	if len(n.Properties) > 0 {
		writeKey("properties")
		buf.WriteByte('{')
		for i, p := range n.Properties {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, _ := json.Marshal(p.Name)
			buf.Write(kb)
			buf.WriteByte(':')
			child, err := p.Node.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(child)
		}
		buf.WriteByte('}')
	}
	if n.Items != nil {
		writeKey("items")
		child, err := n.Items.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(child)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a schema node, preserving property order.
func (n *Node) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	parsed, err := decodeJSONNode(dec)
	if err != nil {
		return err
	}
	*n = *parsed
	return nil
}

func decodeJSONNode(dec *json.Decoder) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("reading schema node: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("schema node must be an object, got %v", tok)
	}
	node := &Node{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("reading schema key: %w", err)
		}
		key, _ := keyTok.(string)
		switch key {
		case "type":
			if err := dec.Decode(&node.Type); err != nil {
				return nil, fmt.Errorf("decoding type: %w", err)
			}
		case "description":
			if err := dec.Decode(&node.Description); err != nil {
				return nil, fmt.Errorf("decoding description: %w", err)
			}
		case "items":
			items, err := decodeJSONNode(dec)
			if err != nil {
				return nil, fmt.Errorf("decoding items: %w", err)
			}
			node.Items = items
		case "properties":
			props, err := decodeJSONProperties(dec)
			if err != nil {
				return nil, err
			}
			node.Properties = props
		default:
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, fmt.Errorf("skipping %q: %w", key, err)
			}
		}
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("closing schema node: %w", err)
	}
	return node, nil
}

func decodeJSONProperties(dec *json.Decoder) ([]Property, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("reading properties: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("properties must be an object, got %v", tok)
	}
	var props []Property
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("reading property name: %w", err)
		}
		name, _ := keyTok.(string)
		child, err := decodeJSONNode(dec)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", name, err)
		}
		props = append(props, Property{Name: name, Node: child})
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("closing properties: %w", err)
	}
	return props, nil
}

// UnmarshalYAML decodes a schema node from YAML, preserving property order.
func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("schema node must be a mapping (line %d)", value.Line)
	}
	node := Node{}
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i], value.Content[i+1]
		switch key.Value {
		case "type":
			node.Type = val.Value
		case "description":
			node.Description = val.Value
		case "items":
			items := &Node{}
			if err := val.Decode(items); err != nil {
				return err
			}
			node.Items = items
		case "properties":
			if val.Kind != yaml.MappingNode {
				return fmt.Errorf("properties must be a mapping (line %d)", val.Line)
			}
			for j := 0; j+1 < len(val.Content); j += 2 {
				child := &Node{}
				if err := val.Content[j+1].Decode(child); err != nil {
					return err
				}
				node.Properties = append(node.Properties, Property{Name: val.Content[j].Value, Node: child})
			}
		}
	}
	*n = node
	return nil
}
