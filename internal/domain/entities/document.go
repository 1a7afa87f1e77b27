package entities

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"localesync/internal/domain"
)

// Tree is one value of a locale document: a text Leaf, a nested *Node, or a
// Raw JSON value that is carried through untouched.
type Tree interface {
	json.Marshaler
	clone() Tree
}

// Leaf is human-readable UI text.
type Leaf string

// Raw is any JSON value that is neither a string nor an object (numbers,
// booleans, arrays, null). It is never translated.
type Raw []byte

// Node is an ordered mapping from keys to subtrees. A nil *Node reads as an
// empty node.
type Node struct {
	entries *orderedmap.OrderedMap[string, Tree]
}

// Path is a key path from the document root to a value.
type Path []string

func (p Path) String() string { return strings.Join(p, ".") }

func (l Leaf) clone() Tree { return l }

func (r Raw) clone() Tree { return append(Raw(nil), r...) }

func (n *Node) clone() Tree { return n.Clone() }

// NewNode returns an empty node.
func NewNode() *Node {
	return &Node{entries: orderedmap.New[string, Tree]()}
}

// Set stores v under key. A new key is appended after the existing ones; an
// existing key keeps its position.
func (n *Node) Set(key string, v Tree) *Node {
	if n.entries == nil {
		n.entries = orderedmap.New[string, Tree]()
	}
	n.entries.Set(key, v)
	return n
}

// Get returns the value stored under key.
func (n *Node) Get(key string) (Tree, bool) {
	if n == nil || n.entries == nil {
		return nil, false
	}
	return n.entries.Get(key)
}

// Child returns the nested node under key, or nil when key is absent or holds
// a leaf.
func (n *Node) Child(key string) *Node {
	v, ok := n.Get(key)
	if !ok {
		return nil
	}
	child, _ := v.(*Node)
	return child
}

// Text returns the string leaf under key.
func (n *Node) Text(key string) (string, bool) {
	v, ok := n.Get(key)
	if !ok {
		return "", false
	}
	leaf, ok := v.(Leaf)
	return string(leaf), ok
}

// Len returns the number of keys directly under n.
func (n *Node) Len() int {
	if n == nil || n.entries == nil {
		return 0
	}
	return n.entries.Len()
}

// Keys returns the keys of n in insertion order.
func (n *Node) Keys() []string {
	keys := make([]string, 0, n.Len())
	n.Range(func(key string, _ Tree) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

// Range calls fn for each entry in insertion order until fn returns false.
func (n *Node) Range(fn func(key string, v Tree) bool) {
	if n == nil || n.entries == nil {
		return
	}
	for pair := n.entries.Oldest(); pair != nil; pair = pair.Next() {
		if !fn(pair.Key, pair.Value) {
			return
		}
	}
}

// Clone returns a deep copy of n that shares no mutable state with it.
func (n *Node) Clone() *Node {
	out := NewNode()
	n.Range(func(key string, v Tree) bool {
		out.Set(key, v.clone())
		return true
	})
	return out
}

// CloneTree returns a deep copy of t.
func CloneTree(t Tree) Tree {
	if t == nil {
		return nil
	}
	return t.clone()
}

// Lookup follows path from n and returns the value found there.
func (n *Node) Lookup(path Path) (Tree, bool) {
	if len(path) == 0 {
		return n, n != nil
	}
	v, ok := n.Get(path[0])
	if !ok {
		return nil, false
	}
	if len(path) == 1 {
		return v, true
	}
	child, isNode := v.(*Node)
	if !isNode {
		return nil, false
	}
	return child.Lookup(path[1:])
}

// Walk visits every key under n depth-first in document order. Nodes are
// visited before their children.
func (n *Node) Walk(fn func(path Path, v Tree)) {
	n.walk(nil, fn)
}

func (n *Node) walk(prefix Path, fn func(Path, Tree)) {
	n.Range(func(key string, v Tree) bool {
		path := append(append(Path(nil), prefix...), key)
		fn(path, v)
		if child, ok := v.(*Node); ok {
			child.walk(path, fn)
		}
		return true
	})
}

// Paths returns the path of every leaf (text or raw) in document order.
func (n *Node) Paths() []Path {
	var paths []Path
	n.Walk(func(path Path, v Tree) {
		if _, isNode := v.(*Node); !isNode {
			paths = append(paths, path)
		}
	})
	return paths
}

// LeafCount returns the number of leaves under n.
func (n *Node) LeafCount() int {
	count := 0
	n.Walk(func(_ Path, v Tree) {
		if _, isNode := v.(*Node); !isNode {
			count++
		}
	})
	return count
}

// Equal reports whether a and b hold the same keys and values. Key order is
// not compared.
func Equal(a, b Tree) bool {
	switch a := a.(type) {
	case Leaf:
		b, ok := b.(Leaf)
		return ok && a == b
	case Raw:
		b, ok := b.(Raw)
		return ok && bytes.Equal(compactJSON(a), compactJSON(b))
	case *Node:
		b, ok := b.(*Node)
		if !ok || a.Len() != b.Len() {
			return false
		}
		equal := true
		a.Range(func(key string, av Tree) bool {
			bv, found := b.Get(key)
			equal = found && Equal(av, bv)
			return equal
		})
		return equal
	default:
		return a == nil && b == nil
	}
}

func compactJSON(data []byte) []byte {
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return data
	}
	return buf.Bytes()
}

// MarshalJSON encodes the leaf without escaping HTML characters.
func (l Leaf) MarshalJSON() ([]byte, error) {
	return marshalString(string(l))
}

func (r Raw) MarshalJSON() ([]byte, error) {
	if len(r) == 0 {
		return []byte("null"), nil
	}
	return append([]byte(nil), r...), nil
}

// MarshalJSON encodes n as a JSON object with keys in insertion order.
func (n *Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	var err error
	first := true
	n.Range(func(key string, v Tree) bool {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		var b []byte
		if b, err = marshalString(key); err != nil {
			return false
		}
		buf.Write(b)
		buf.WriteByte(':')
		if b, err = v.MarshalJSON(); err != nil {
			err = fmt.Errorf("key %q: %w", key, err)
			return false
		}
		buf.Write(b)
		return true
	})
	if err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object into n, keeping key order.
func (n *Node) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return fmt.Errorf("%w: expected an object", domain.ErrMalformedDocument)
	}
	raw := orderedmap.New[string, json.RawMessage]()
	if err := raw.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMalformedDocument, err)
	}
	n.entries = orderedmap.New[string, Tree]()
	for pair := raw.Oldest(); pair != nil; pair = pair.Next() {
		v, err := decodeTree(pair.Value)
		if err != nil {
			return fmt.Errorf("key %q: %w", pair.Key, err)
		}
		n.entries.Set(pair.Key, v)
	}
	return nil
}

// ParseDocument decodes a locale document. The top level must be an object.
func ParseDocument(data []byte) (*Node, error) {
	if !json.Valid(data) {
		var probe any
		err := json.Unmarshal(data, &probe)
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedDocument, err)
	}
	doc := NewNode()
	if err := doc.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return doc, nil
}

func decodeTree(data []byte) (Tree, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty value", domain.ErrMalformedDocument)
	}
	switch data[0] {
	case '{':
		child := NewNode()
		if err := child.UnmarshalJSON(data); err != nil {
			return nil, err
		}
		return child, nil
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrMalformedDocument, err)
		}
		return Leaf(s), nil
	default:
		return Raw(append([]byte(nil), data...)), nil
	}
}

func marshalString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return unescapeLineSeparators(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

// unescapeLineSeparators writes U+2028 and U+2029 back as literal runes.
// encoding/json escapes them even with HTML escaping disabled.
func unescapeLineSeparators(b []byte) []byte {
	if !bytes.Contains(b, []byte(`\u202`)) {
		return b
	}
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		if b[i] != '\\' || i+1 >= len(b) {
			out = append(out, b[i])
			continue
		}
		if b[i+1] == 'u' && i+5 < len(b) && string(b[i+2:i+5]) == "202" && (b[i+5] == '8' || b[i+5] == '9') {
			if b[i+5] == '8' {
				out = append(out, "\u2028"...)
			} else {
				out = append(out, "\u2029"...)
			}
			i += 5
			continue
		}
		out = append(out, b[i], b[i+1])
		i++
	}
	return out
}
