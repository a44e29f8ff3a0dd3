// Package source parses H2K building-model XML into an immutable tree of
// untyped string values. The tree is created once per conversion and only
// read afterwards.
package source

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/enermodel/h2khpxml/internal/convert/errdefs"
)

// Document is a parsed H2K file. The tree is immutable once parsed.
type Document struct {
	Root *Node
}

// Parse reads H2K XML and returns the document tree. Malformed XML yields a
// ParseError; a well-formed document without the required structural
// elements yields a SchemaMismatchError.
func Parse(r io.Reader) (*Document, error) {
	root, err := decode(r)
	if err != nil {
		return nil, &errdefs.ParseError{Err: err}
	}
	doc := &Document{Root: root}
	if err := doc.checkStructure(); err != nil {
		return nil, err
	}
	return doc, nil
}

// ParseString is a convenience for tests and small callers.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// checkStructure enforces the elements every H2K export carries. The
// building identifier doubles as the output document's building ID, so its
// absence is fatal before any processor runs.
func (d *Document) checkStructure() error {
	if d.Root == nil || d.Root.Name != "HouseFile" {
		return &errdefs.SchemaMismatchError{Element: "HouseFile"}
	}
	file := d.Root.Path("ProgramInformation", "File")
	if file == nil {
		return &errdefs.SchemaMismatchError{Element: "ProgramInformation/File"}
	}
	if id, ok := file.Attr("id"); !ok || strings.TrimSpace(id) == "" {
		return &errdefs.SchemaMismatchError{Element: "ProgramInformation/File@id"}
	}
	if d.Root.Child("House") == nil {
		return &errdefs.SchemaMismatchError{Element: "House"}
	}
	return nil
}

// BuildingID returns the source building identifier. checkStructure has
// already guaranteed its presence.
func (d *Document) BuildingID() string {
	id, _ := d.Root.Path("ProgramInformation", "File").Attr("id")
	return strings.TrimSpace(id)
}

// House returns the root of the building description.
func (d *Document) House() *Node {
	return d.Root.Child("House")
}

// WeatherLocation returns the weather location code and name, when present.
func (d *Document) WeatherLocation() (code, name string) {
	loc := d.Root.Path("ProgramInformation", "Weather", "Location")
	if loc == nil {
		return "", ""
	}
	code, _ = loc.Attr("code")
	return strings.TrimSpace(code), loc.TextValue()
}

// ProgramMode returns the program-mode element (for example an ERS run),
// or nil when the file was exported in general mode.
func (d *Document) ProgramMode() *Node {
	return d.Root.Child("ProgramMode")
}

// decode walks the XML token stream into a Node tree. Grounded on a plain
// stack-based walk so repeated siblings keep document order and whitespace
// never becomes phantom text nodes.
func decode(r io.Reader) (*Node, error) {
	dec := xml.NewDecoder(r)
	var root *Node
	var stack []*Node

	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		switch tok := tok.(type) {
		case xml.StartElement:
			n := &Node{Name: tok.Name.Local}
			if len(tok.Attr) > 0 {
				n.Attrs = make(map[string]string, len(tok.Attr))
				for _, a := range tok.Attr {
					n.Attrs[a.Name.Local] = a.Value
				}
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, errors.New("multiple root elements")
				}
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			}
			stack = append(stack, n)
		case xml.CharData:
			if len(stack) == 0 {
				continue
			}
			text := strings.TrimSpace(string(tok))
			if text == "" {
				continue
			}
			cur := stack[len(stack)-1]
			if cur.Text != "" {
				cur.Text += " "
			}
			cur.Text += text
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, errors.New("unbalanced end element")
			}
			stack = stack[:len(stack)-1]
		}
	}

	if root == nil {
		return nil, errors.New("empty document")
	}
	if len(stack) != 0 {
		return nil, errors.New("unclosed elements at end of document")
	}
	return root, nil
}
