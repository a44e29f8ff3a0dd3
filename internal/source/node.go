package source

import (
	"strconv"
	"strings"
)

// Node is one element of the parsed source tree. Values are untyped strings;
// consumers coerce them with the typed accessors below. Absent elements are
// represented by a nil Node, never by placeholder values, so every accessor
// is nil-safe.
type Node struct {
	Name     string
	Text     string
	Attrs    map[string]string
	Children []*Node
}

// Child returns the first child with the given name, or nil when absent.
func (n *Node) Child(name string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Path walks a chain of child names and returns the node at the end, or nil
// when any step is absent.
func (n *Node) Path(names ...string) *Node {
	cur := n
	for _, name := range names {
		cur = cur.Child(name)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// Each returns all children with the given name, in document order.
func (n *Node) Each(name string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Attr returns an attribute value and whether it was present.
func (n *Node) Attr(name string) (string, bool) {
	if n == nil {
		return "", false
	}
	v, ok := n.Attrs[name]
	return v, ok
}

// TextValue returns the trimmed character data of the node. Nil-safe.
func (n *Node) TextValue() string {
	if n == nil {
		return ""
	}
	return strings.TrimSpace(n.Text)
}

// FloatAttr coerces an attribute to float64. The second return is false when
// the attribute is absent or not numeric.
func (n *Node) FloatAttr(name string) (float64, bool) {
	v, ok := n.Attr(name)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// IntAttr coerces an attribute to int.
func (n *Node) IntAttr(name string) (int, bool) {
	v, ok := n.Attr(name)
	if !ok {
		return 0, false
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, false
	}
	return i, true
}

// FloatText coerces the node's character data to float64.
func (n *Node) FloatText() (float64, bool) {
	t := n.TextValue()
	if t == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
