package hpxml

import (
	"bytes"
	"strings"
)

const xmlDeclaration = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

// Serialize renders the tree as indented XML. The function is pure: the
// same tree always yields the same bytes, because attribute order is the
// order they were set and child order was fixed by the assembler.
func Serialize(root *Element) []byte {
	var buf bytes.Buffer
	buf.WriteString(xmlDeclaration)
	writeElement(&buf, root, 0)
	return buf.Bytes()
}

func writeElement(buf *bytes.Buffer, el *Element, depth int) {
	indent := strings.Repeat("  ", depth)
	buf.WriteString(indent)
	buf.WriteByte('<')
	buf.WriteString(el.Name)
	for _, attr := range el.Attrs {
		buf.WriteByte(' ')
		buf.WriteString(attr.Name)
		buf.WriteString(`="`)
		buf.WriteString(escape(attr.Value))
		buf.WriteByte('"')
	}

	switch {
	case len(el.Children) == 0 && el.Text == "":
		buf.WriteString("/>\n")
	case len(el.Children) == 0:
		buf.WriteByte('>')
		buf.WriteString(escape(el.Text))
		buf.WriteString("</")
		buf.WriteString(el.Name)
		buf.WriteString(">\n")
	default:
		buf.WriteString(">\n")
		if el.Text != "" {
			buf.WriteString(indent)
			buf.WriteString("  ")
			buf.WriteString(escape(el.Text))
			buf.WriteByte('\n')
		}
		for _, child := range el.Children {
			writeElement(buf, child, depth+1)
		}
		buf.WriteString(indent)
		buf.WriteString("</")
		buf.WriteString(el.Name)
		buf.WriteString(">\n")
	}
}

// escape replaces the five reserved XML characters. Quotes are escaped
// unconditionally so the same routine serves text and attribute values.
func escape(s string) string {
	return xmlReplacer.Replace(s)
}

var xmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)
