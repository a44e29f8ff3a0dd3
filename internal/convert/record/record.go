// Package record defines the normalized output unit every processor emits.
package record

// Record is one normalized target-schema component. Props hold already
// normalized values keyed by target element name; Refs point at other
// records' identifiers. Meta carries source-side facts (engineering label,
// orientation) used for attachment resolution and never serialized.
//
// Records are append-only: once emitted they are not mutated. A program-mode
// override replaces a record wholesale, keeping its identifier and position.
type Record struct {
	ID    string
	Type  string
	Props map[string]string
	Refs  map[string]string
	Meta  map[string]string
}

// New returns a record with allocated maps so processors can assign
// properties without nil checks.
func New(id, typ string) Record {
	return Record{
		ID:    id,
		Type:  typ,
		Props: make(map[string]string),
		Refs:  make(map[string]string),
		Meta:  make(map[string]string),
	}
}
