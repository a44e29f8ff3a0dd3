package enclosure

import (
	"github.com/enermodel/h2khpxml/internal/convert/record"
	"github.com/enermodel/h2khpxml/internal/convert/state"
)

// resolveParentWall finds the owning wall for a child component (window or
// door) by matching the component's declared parent label against the walls
// already registered on the tracker.
//
// Exactly one label match attaches silently. Anything else is ambiguous: an
// AttachmentAmbiguity warning is registered and a deterministic default is
// applied instead of failing the conversion — first a matching-orientation
// candidate, falling back to the first wall created in source-document
// order. The false return only happens when the document has no walls at
// all, in which case the child cannot be represented and is skipped.
func resolveParentWall(st *state.Tracker, stage, childLabel, parentLabel, orientation string) (record.Record, bool) {
	walls := st.LookupByType("Wall")
	if len(walls) == 0 {
		st.Warn(state.AttachmentAmbiguity, stage,
			"%q names parent %q but the document has no walls; component skipped", childLabel, parentLabel)
		return record.Record{}, false
	}

	var matches []record.Record
	if parentLabel != "" {
		for _, w := range walls {
			if w.Meta[metaLabel] == parentLabel {
				matches = append(matches, w)
			}
		}
	}
	if len(matches) == 1 {
		return matches[0], true
	}

	candidates := matches
	if len(candidates) == 0 {
		candidates = walls
	}
	if orientation != "" {
		var oriented []record.Record
		for _, w := range candidates {
			if w.Meta[metaOrientation] == orientation {
				oriented = append(oriented, w)
			}
		}
		if len(oriented) > 0 {
			candidates = oriented
		}
	}

	chosen := candidates[0]
	st.Warn(state.AttachmentAmbiguity, stage,
		"%q could not unambiguously resolve parent %q; attached to %s", childLabel, parentLabel, chosen.ID)
	return chosen, true
}
