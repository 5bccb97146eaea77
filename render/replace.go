// Package render turns a document plus its fill state into output: an HTML
// preview fragment with per-field highlighting, and the final per-location
// text edits once every field is answered.
package render

import (
	"sort"
	"strings"

	"github.com/SrinathBegudem/LEXSY-WEB-APP/model"
)

// replacer produces the output text for one placeholder occurrence. filled
// reports whether the occurrence has a stored value.
type replacer func(p *model.Placeholder, value string, filled bool) string

// renderUnit rewrites one paragraph or cell, splicing each occurrence at its
// recorded span. Splicing by exact span means a literal that appears twice in
// the unit can never be double-replaced or assigned the wrong occurrence's
// value. escape, when set, is applied to the text between occurrences.
func renderUnit(text string, phs []model.Placeholder, values model.Values, fn replacer, escape func(string) string) string {
	if len(phs) == 0 {
		if escape != nil {
			return escape(text)
		}
		return text
	}

	sorted := make([]model.Placeholder, len(phs))
	copy(sorted, phs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Position.Start < sorted[j].Position.Start
	})

	var b strings.Builder
	last := 0
	for i := range sorted {
		p := &sorted[i]
		if p.Position.Start < last || p.Position.End > len(text) {
			// Overlapping or stale span; leave the text as scanned.
			continue
		}
		between := text[last:p.Position.Start]
		if escape != nil {
			between = escape(between)
		}
		b.WriteString(between)
		b.WriteString(fn(p, values.Get(p), values.Has(p)))
		last = p.Position.End
	}
	tail := text[last:]
	if escape != nil {
		tail = escape(tail)
	}
	b.WriteString(tail)
	return b.String()
}
