package hpxml

import (
	"sort"
	"strings"
	"time"

	"github.com/enermodel/h2khpxml/internal/convert/errdefs"
	"github.com/enermodel/h2khpxml/internal/convert/record"
)

// Meta carries the document-level facts the assembler writes outside the
// record sections. Values are pre-normalized strings; empty means absent
// and the element is omitted.
type Meta struct {
	BuildingID       string
	GeneratedAt      time.Time
	GeneratorName    string
	GeneratorVersion string
	WeatherName      string
	WeatherCode      string
	YearBuilt        string
	ConditionedFloors string
	ConditionedFloorArea string
}

// Assemble merges the schema skeleton with all emitted records into one
// output tree, reordering each record's fields to the schema's canonical
// child order. It fails with an AssemblyError on a duplicate identifier, an
// unresolved reference, or a record of a type the schema does not place.
func Assemble(meta Meta, records []record.Record) (*Element, error) {
	ids := make(map[string]struct{}, len(records))
	for _, rec := range records {
		if _, dup := ids[rec.ID]; dup {
			return nil, &errdefs.AssemblyError{ID: rec.ID, Reason: "duplicate identifier"}
		}
		ids[rec.ID] = struct{}{}
	}
	for _, rec := range records {
		for field, target := range rec.Refs {
			if _, ok := ids[target]; !ok {
				return nil, &errdefs.AssemblyError{
					ID:     rec.ID,
					Reason: "unresolved reference " + field + " -> " + target,
				}
			}
		}
	}

	root := newSkeleton(meta)
	details := root.Find("Building", "BuildingDetails")

	for _, rec := range records {
		path, ok := sectionPath[rec.Type]
		if !ok {
			return nil, &errdefs.AssemblyError{ID: rec.ID, Reason: "no schema section for type " + rec.Type}
		}
		section := details
		for _, name := range path {
			section = section.ensure(name)
		}
		section.Children = append(section.Children, buildRecordElement(rec))
	}

	sortSections(details)
	return root, nil
}

// newSkeleton builds the fixed structural scaffold every output document
// starts from: transaction header, software info, and the building shell.
func newSkeleton(meta Meta) *Element {
	root := NewElement("HPXML")
	root.SetAttr("xmlns", Namespace)
	root.SetAttr("schemaVersion", SchemaVersion)

	header := root.Add("XMLTransactionHeaderInformation")
	header.AddText("XMLType", "HPXML")
	header.AddText("XMLGeneratedBy", meta.GeneratorName)
	header.AddText("CreatedDateAndTime", meta.GeneratedAt.UTC().Format(time.RFC3339))
	header.AddText("Transaction", "create")

	software := root.Add("SoftwareInfo")
	software.AddText("SoftwareProgramUsed", meta.GeneratorName)
	if meta.GeneratorVersion != "" {
		software.AddText("SoftwareProgramVersion", meta.GeneratorVersion)
	}

	building := root.Add("Building")
	building.Add("BuildingID").SetAttr("id", meta.BuildingID)
	details := building.Add("BuildingDetails")

	summary := details.Add("BuildingSummary")
	construction := summary.Add("BuildingConstruction")
	if meta.YearBuilt != "" {
		construction.AddText("YearBuilt", meta.YearBuilt)
	}
	if meta.ConditionedFloors != "" {
		construction.AddText("NumberofConditionedFloors", meta.ConditionedFloors)
	}
	if meta.ConditionedFloorArea != "" {
		construction.AddText("ConditionedFloorArea", meta.ConditionedFloorArea)
	}

	if meta.WeatherName != "" || meta.WeatherCode != "" {
		climate := details.Add("ClimateandRiskZones")
		station := climate.Add("WeatherStation")
		station.Add("SystemIdentifier").SetAttr("id", "WeatherStation")
		if meta.WeatherName != "" {
			station.AddText("Name", meta.WeatherName)
		}
		if meta.WeatherCode != "" {
			station.Add("extension").AddText("StationCode", meta.WeatherCode)
		}
	}

	return root
}

// buildRecordElement renders one record in canonical field order. Fields not
// listed in the canonical table follow alphabetically so the output stays
// deterministic for extension properties.
func buildRecordElement(rec record.Record) *Element {
	el := NewElement(elementName(rec.Type))
	el.Add("SystemIdentifier").SetAttr("id", rec.ID)

	emitted := make(map[string]struct{})
	for _, field := range fieldOrder[rec.Type] {
		emitField(el, rec, field)
		emitted[field] = struct{}{}
	}

	var rest []string
	for field := range rec.Props {
		if _, done := emitted[field]; !done {
			rest = append(rest, field)
		}
	}
	for field := range rec.Refs {
		if _, done := emitted[field]; !done {
			rest = append(rest, field)
		}
	}
	sort.Strings(rest)
	for _, field := range rest {
		emitField(el, rec, field)
	}
	return el
}

// emitField writes one prop or ref, expanding slash paths into nested
// elements. A field absent from the record is simply skipped.
func emitField(el *Element, rec record.Record, field string) {
	if target, ok := rec.Refs[field]; ok {
		nest(el, field).SetAttr("idref", target)
		return
	}
	if value, ok := rec.Props[field]; ok {
		nest(el, field).Text = value
	}
}

// nest resolves a slash path beneath el, creating intermediate elements as
// needed, and returns the leaf.
func nest(el *Element, path string) *Element {
	parts := strings.Split(path, "/")
	cur := el
	for _, p := range parts[:len(parts)-1] {
		cur = cur.ensure(p)
	}
	return cur.Add(parts[len(parts)-1])
}

// sortSections reorders BuildingDetails children and the Enclosure children
// to the schema's canonical order, leaving record order within each list
// untouched.
func sortSections(details *Element) {
	reorder(details, sectionOrder)
	if enclosure := details.Find("Enclosure"); enclosure != nil {
		reorder(enclosure, enclosureOrder)
	}
}

// reorder stable-sorts children by their position in the given order table.
// Unknown names keep their relative order after known ones.
func reorder(parent *Element, order []string) {
	rank := make(map[string]int, len(order))
	for i, name := range order {
		rank[name] = i
	}
	sort.SliceStable(parent.Children, func(i, j int) bool {
		ri, iok := rank[parent.Children[i].Name]
		rj, jok := rank[parent.Children[j].Name]
		if iok && jok {
			return ri < rj
		}
		return iok && !jok
	})
}
