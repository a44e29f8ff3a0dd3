// Package validate runs the structural schema check over a serialized
// output document. The built-in check enforces root metadata, required
// sections, identifier uniqueness, and reference resolution; an external
// schema validator command can be layered on top. Findings are advisory or
// fatal depending on the caller's strictness policy, not ours.
package validate

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"github.com/enermodel/h2khpxml/internal/hpxml"
)

// Finding is one validation result: where, and what.
type Finding struct {
	Location string
	Message  string
}

func (f Finding) String() string {
	return fmt.Sprintf("%s: %s", f.Location, f.Message)
}

// Check runs the built-in structural validation against serialized XML.
// A document that cannot be re-parsed at all yields an error rather than
// findings, since that indicates a serializer defect.
func Check(data []byte) ([]Finding, error) {
	root, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("re-parse serialized output: %w", err)
	}

	var findings []Finding
	add := func(loc, format string, args ...any) {
		findings = append(findings, Finding{Location: loc, Message: fmt.Sprintf(format, args...)})
	}

	if root.name != "HPXML" {
		add("/", "root element is %q, want HPXML", root.name)
		return findings, nil
	}
	if ns := root.attrs["xmlns"]; ns != hpxml.Namespace {
		add("/HPXML", "namespace is %q, want %q", ns, hpxml.Namespace)
	}
	if root.attrs["schemaVersion"] == "" {
		add("/HPXML", "schemaVersion attribute missing")
	}
	if root.child("XMLTransactionHeaderInformation") == nil {
		add("/HPXML", "XMLTransactionHeaderInformation section missing")
	}

	building := root.child("Building")
	if building == nil {
		add("/HPXML", "Building section missing")
		return findings, nil
	}
	bid := building.child("BuildingID")
	if bid == nil || bid.attrs["id"] == "" {
		add("/HPXML/Building", "BuildingID with id attribute missing")
	}
	if building.child("BuildingDetails") == nil {
		add("/HPXML/Building", "BuildingDetails section missing")
	}

	ids := map[string]string{}
	collectIDs(root, "/HPXML", ids, &findings)
	checkRefs(root, "/HPXML", ids, &findings)

	return findings, nil
}

// collectIDs walks the tree recording every SystemIdentifier id, flagging
// duplicates.
func collectIDs(n *node, path string, ids map[string]string, findings *[]Finding) {
	for _, c := range n.children {
		childPath := path + "/" + c.name
		if c.name == "SystemIdentifier" || c.name == "BuildingID" {
			if id := c.attrs["id"]; id != "" {
				if prev, dup := ids[id]; dup {
					*findings = append(*findings, Finding{
						Location: childPath,
						Message:  fmt.Sprintf("duplicate identifier %q (also at %s)", id, prev),
					})
				} else {
					ids[id] = childPath
				}
			}
		}
		collectIDs(c, childPath, ids, findings)
	}
}

// checkRefs walks the tree verifying every idref attribute resolves.
func checkRefs(n *node, path string, ids map[string]string, findings *[]Finding) {
	for _, c := range n.children {
		childPath := path + "/" + c.name
		if ref := c.attrs["idref"]; ref != "" {
			if _, ok := ids[ref]; !ok {
				*findings = append(*findings, Finding{
					Location: childPath,
					Message:  fmt.Sprintf("idref %q does not resolve", ref),
				})
			}
		}
		checkRefs(c, childPath, ids, findings)
	}
}

// node is a minimal re-parsed element for validation walks.
type node struct {
	name     string
	attrs    map[string]string
	children []*node
}

func (n *node) child(name string) *node {
	for _, c := range n.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

func parse(data []byte) (*node, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	var root *node
	var stack []*node
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
			n := &node{name: tok.Name.Local, attrs: map[string]string{}}
			for _, a := range tok.Attr {
				n.attrs[a.Name.Local] = a.Value
			}
			if len(stack) == 0 {
				root = n
			} else {
				p := stack[len(stack)-1]
				p.children = append(p.children, n)
			}
			stack = append(stack, n)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		}
	}
	if root == nil {
		return nil, errors.New("empty document")
	}
	return root, nil
}
