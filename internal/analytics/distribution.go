package analytics

import (
	"event-insights/internal/domain"
	"event-insights/internal/fieldparse"
)

// UndefinedBucket counts registrants who supplied no answer for a field.
const UndefinedBucket = "undefined"

// maxDistinctValues caps how many distinct answers a field may have and
// still be charted; beyond it the field is effectively free text.
const maxDistinctValues = 20

// BuildFieldDistribution computes, per field label, how often each
// distinct answer value occurs across all registrants, plus a synthetic
// "undefined" bucket for registrants who skipped the field. Labels list
// every defined field; Distribution keeps only fields with more than one
// and at most twenty distinct values, the "undefined" bucket included;
// constant-answer and free-text fields carry no chart signal.
func BuildFieldDistribution(defs []*domain.FieldDefinition, regs []*domain.Registration) domain.FieldDistributionView {
	view := domain.FieldDistributionView{
		Labels:       []string{},
		Distribution: map[string]map[string]int{},
	}
	if len(defs) == 0 {
		return view
	}

	known := make(map[int64]bool, len(defs))
	for _, def := range defs {
		known[def.ID] = true
	}

	// Answer blobs may reference fields from other events' forms; only
	// pairs keyed by this event's definitions survive.
	valuesByField := make(map[int64][]string)
	for _, r := range regs {
		for _, a := range fieldparse.Parse(r.RawDynamicFields) {
			if known[a.FieldID] {
				valuesByField[a.FieldID] = append(valuesByField[a.FieldID], a.Value)
			}
		}
	}

	for _, def := range defs {
		view.Labels = append(view.Labels, def.Label)

		values := valuesByField[def.ID]
		counts := make(map[string]int, len(values))
		for _, v := range values {
			counts[v]++
		}

		if undefined := len(regs) - len(values); undefined > 0 {
			counts[UndefinedBucket] = undefined
		}

		if len(counts) > 1 && len(counts) <= maxDistinctValues {
			view.Distribution[def.Label] = counts
		}
	}

	return view
}
