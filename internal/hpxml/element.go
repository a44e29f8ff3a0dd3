// Package hpxml models the target document: an ordered element tree, the
// schema skeleton with its canonical child order, the assembler that places
// normalized records into the skeleton, and a deterministic serializer.
package hpxml

// Attr is one XML attribute. Attribute order is preserved as written so the
// serializer stays byte-deterministic.
type Attr struct {
	Name  string
	Value string
}

// Element is one node of the output tree.
type Element struct {
	Name     string
	Text     string
	Attrs    []Attr
	Children []*Element
}

// NewElement returns a childless element.
func NewElement(name string) *Element {
	return &Element{Name: name}
}

// SetAttr appends or replaces an attribute, keeping first-set order.
func (e *Element) SetAttr(name, value string) *Element {
	for i := range e.Attrs {
		if e.Attrs[i].Name == name {
			e.Attrs[i].Value = value
			return e
		}
	}
	e.Attrs = append(e.Attrs, Attr{Name: name, Value: value})
	return e
}

// Add appends a child element and returns it.
func (e *Element) Add(name string) *Element {
	c := NewElement(name)
	e.Children = append(e.Children, c)
	return c
}

// AddText appends a child element holding character data.
func (e *Element) AddText(name, text string) *Element {
	c := e.Add(name)
	c.Text = text
	return c
}

// Find walks a chain of child names and returns the element at the end, or
// nil when any step is absent.
func (e *Element) Find(names ...string) *Element {
	cur := e
	for _, name := range names {
		var next *Element
		for _, c := range cur.Children {
			if c.Name == name {
				next = c
				break
			}
		}
		if next == nil {
			return nil
		}
		cur = next
	}
	return cur
}

// ensure returns the named child, creating it when absent. Used by the
// assembler so empty optional sections are only materialized when a record
// lands in them.
func (e *Element) ensure(name string) *Element {
	if c := e.Find(name); c != nil {
		return c
	}
	return e.Add(name)
}
