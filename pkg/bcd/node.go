package bcd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Node is one level of the compat tree. Children keep the order in which they
// appeared in the source document.
type Node struct {
	// Compat holds the node's own "__compat" entry, if any.
	Compat *Feature

	keys     []string
	children map[string]*Node
}

// NewNode returns a node carrying the supplied compat entry (which may be nil).
func NewNode(compat *Feature) *Node {
	return &Node{Compat: compat}
}

// Append adds child under key and returns n so trees can be built inline.
// Appending an existing key replaces the child but keeps its position.
func (n *Node) Append(key string, child *Node) *Node {
	if n.children == nil {
		n.children = make(map[string]*Node)
	}
	if _, exists := n.children[key]; !exists {
		n.keys = append(n.keys, key)
	}
	n.children[key] = child
	return n
}

// Keys returns child keys in source order.
func (n *Node) Keys() []string {
	if n == nil {
		return nil
	}
	return append([]string(nil), n.keys...)
}

// Child returns the child stored under key, or nil.
func (n *Node) Child(key string) *Node {
	if n == nil || n.children == nil {
		return nil
	}
	return n.children[key]
}

// Len returns the number of children.
func (n *Node) Len() int {
	if n == nil {
		return 0
	}
	return len(n.keys)
}

// Lookup walks a dotted path such as "html.elements.blink" and returns the
// node at its end, or nil when any segment is missing. An empty path returns
// n itself.
func (n *Node) Lookup(path string) *Node {
	if n == nil {
		return nil
	}
	path = strings.Trim(path, ".")
	if path == "" {
		return n
	}
	current := n
	for _, segment := range strings.Split(path, ".") {
		current = current.Child(segment)
		if current == nil {
			return nil
		}
	}
	return current
}

// Walk visits every descendant of n depth-first in source order, passing its
// dotted path relative to n. Returning false from fn skips the subtree.
func (n *Node) Walk(fn func(path string, node *Node) bool) {
	if n == nil || fn == nil {
		return
	}
	n.walk("", fn)
}

func (n *Node) walk(prefix string, fn func(string, *Node) bool) {
	for _, key := range n.keys {
		child := n.children[key]
		path := joinPath(prefix, key)
		if !fn(path, child) {
			continue
		}
		child.walk(path, fn)
	}
}

// FeaturePaths lists the paths below n that carry a compat entry.
func (n *Node) FeaturePaths() []string {
	var paths []string
	n.Walk(func(path string, node *Node) bool {
		if node.Compat != nil {
			paths = append(paths, path)
		}
		return true
	})
	return paths
}

var errRootNotObject = errors.New("bcd: document root must be an object")

// DecodeJSON parses a JSON compat document preserving key order.
func DecodeJSON(data []byte) (*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("bcd: decode json: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errRootNotObject
	}
	node, err := decodeJSONObject(dec, "")
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("bcd: decode json: unexpected data after document")
	}
	return node, nil
}

// decodeJSONObject reads the members of an object whose opening brace has
// already been consumed, including the closing brace.
func decodeJSONObject(dec *json.Decoder, path string) (*Node, error) {
	node := &Node{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("bcd: decode json at %q: %w", path, err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("bcd: decode json at %q: expected object key", path)
		}
		childPath := joinPath(path, key)

		if key == CompatKey {
			var raw json.RawMessage
			if err := dec.Decode(&raw); err != nil {
				return nil, fmt.Errorf("bcd: decode json at %q: %w", childPath, err)
			}
			if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
				continue
			}
			var feature Feature
			if err := json.Unmarshal(raw, &feature); err != nil {
				return nil, fmt.Errorf("bcd: decode %s at %q: %w", CompatKey, path, err)
			}
			node.Compat = &feature
			continue
		}

		tok, err = dec.Token()
		if err != nil {
			return nil, fmt.Errorf("bcd: decode json at %q: %w", childPath, err)
		}
		delim, isDelim := tok.(json.Delim)
		switch {
		case isDelim && delim == '{':
			child, err := decodeJSONObject(dec, childPath)
			if err != nil {
				return nil, err
			}
			node.Append(key, child)
		case isDelim && delim == '[':
			if err := skipJSONArray(dec); err != nil {
				return nil, fmt.Errorf("bcd: decode json at %q: %w", childPath, err)
			}
		}
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("bcd: decode json at %q: %w", path, err)
	}
	return node, nil
}

// skipJSONArray discards tokens up to and including the array's closing
// bracket.
func skipJSONArray(dec *json.Decoder) error {
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		if delim, ok := tok.(json.Delim); ok {
			switch delim {
			case '[', '{':
				depth++
			case ']', '}':
				depth--
			}
		}
	}
	return nil
}

// DecodeYAML parses a YAML compat document preserving key order.
func DecodeYAML(data []byte) (*Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("bcd: decode yaml: %w", err)
	}
	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil, errRootNotObject
		}
		root = root.Content[0]
	}
	root = resolveAlias(root)
	if root.Kind != yaml.MappingNode {
		return nil, errRootNotObject
	}
	return decodeYAMLMapping(root, "")
}

func decodeYAMLMapping(mapping *yaml.Node, path string) (*Node, error) {
	node := &Node{}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key := mapping.Content[i].Value
		value := resolveAlias(mapping.Content[i+1])
		childPath := joinPath(path, key)

		if key == CompatKey {
			if value.Tag == "!!null" {
				continue
			}
			var feature Feature
			if err := value.Decode(&feature); err != nil {
				return nil, fmt.Errorf("bcd: decode %s at %q: %w", CompatKey, path, err)
			}
			node.Compat = &feature
			continue
		}

		if value.Kind != yaml.MappingNode {
			continue
		}
		child, err := decodeYAMLMapping(value, childPath)
		if err != nil {
			return nil, err
		}
		node.Append(key, child)
	}
	return node, nil
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
