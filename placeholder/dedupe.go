package placeholder

import (
	"sort"
	"strings"

	"github.com/SrinathBegudem/LEXSY-WEB-APP/model"
)

// Keyword sets that split same-looking dollar blanks into distinct logical
// fields based on surrounding prose. Checked in this order when building
// signatures.
var purchaseAmountSignals = []string{"purchase amount", "payment by", "exchange for"}
var valuationCapSignals = []string{"post-money valuation cap", "valuation cap", "post money"}

// signature computes the grouping key that decides whether two raw matches
// are the same logical field. It always embeds the physical location:
// candidates in different paragraphs or cells are never merged, whatever
// their text or inferred meaning.
func signature(p *model.Placeholder) string {
	locKey := p.Location.Type + "_" + p.Location.Key()
	orig := p.Original

	if strings.HasPrefix(orig, "$[") || (strings.HasPrefix(orig, "[") && len(orig) > 10) {
		blankDollar := strings.HasPrefix(orig, "$[") && (strings.Contains(orig, "_") || len(orig) > 8)
		if blankDollar {
			ctx := strings.ToLower(p.Context)
			for _, kw := range purchaseAmountSignals {
				if strings.Contains(ctx, kw) {
					return "purchase_amount_" + locKey
				}
			}
			for _, kw := range valuationCapSignals {
				if strings.Contains(ctx, kw) {
					return "valuation_cap_" + locKey
				}
			}
			return "amount_field_" + locKey
		}
		return strings.ToLower(p.Name) + "_" + locKey
	}

	return p.NormalizedKey + "_" + locKey
}

// dedupe collapses candidates that are the same physical match found twice by
// overlapping patterns. Within one signature group, a candidate is a
// duplicate only if its start position sits within the proximity threshold of
// an already-kept candidate; genuinely distinct occurrences further apart are
// all retained as separate fillable fields.
func dedupe(candidates []model.Placeholder, proximity int) []model.Placeholder {
	if len(candidates) == 0 {
		return nil
	}

	groups := make(map[string][]model.Placeholder)
	var order []string
	for _, p := range candidates {
		sig := signature(&p)
		if _, seen := groups[sig]; !seen {
			order = append(order, sig)
		}
		groups[sig] = append(groups[sig], p)
	}

	var unique []model.Placeholder
	for _, sig := range order {
		group := groups[sig]
		if len(group) == 1 {
			unique = append(unique, group[0])
			continue
		}

		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Position.Start < group[j].Position.Start
		})

		var keptStarts []int
		for _, p := range group {
			dup := false
			for _, start := range keptStarts {
				if abs(p.Position.Start-start) < proximity {
					dup = true
					break
				}
			}
			if !dup {
				keptStarts = append(keptStarts, p.Position.Start)
				unique = append(unique, p)
			}
		}
	}

	return unique
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
