package fill

import (
	"errors"

	"github.com/SrinathBegudem/LEXSY-WEB-APP/model"
)

// ErrUnknownField is returned when a field reference matches neither an ID
// nor a key in the index.
var ErrUnknownField = errors.New("unknown field reference")

// AutoFill records one sibling occurrence filled as a side effect of a
// primary answer.
type AutoFill struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Result describes the outcome of one applied answer.
type Result struct {
	Value     string     `json:"value"`
	AutoFills []AutoFill `json:"auto_fills"`
	NextIndex int        `json:"next_index"` // -1 when every field is filled
}

// Apply validates and records an answer for one field, propagates it to
// unfilled same-named occurrences and recomputes the next-field pointer.
// The input values map is never mutated; the updated copy is returned.
func Apply(idx model.Index, values model.Values, fieldRef, raw string) (model.Values, *Result, error) {
	pos, p := idx.Find(fieldRef)
	if p == nil {
		return values, nil, ErrUnknownField
	}

	canonical, err := Validate(p, raw)
	if err != nil {
		return values, nil, err
	}

	next := values.Clone()
	// The primary answer is stored under both identifiers so legacy key
	// references keep resolving.
	next[p.ID] = canonical
	next[p.Key] = canonical

	autoFills := propagate(idx, next, pos, p, canonical)

	return next, &Result{
		Value:     canonical,
		AutoFills: autoFills,
		NextIndex: NextUnfilled(idx, next),
	}, nil
}

// Edit replaces the value of an already-answered field. Propagation reaches
// unfilled siblings only; occurrences holding their own answer keep it. When
// reask is set the next-field pointer is forced back to the edited field's
// position so the conversation revisits it.
func Edit(idx model.Index, values model.Values, fieldRef, raw string, reask bool) (model.Values, *Result, error) {
	pos, p := idx.Find(fieldRef)
	if p == nil {
		return values, nil, ErrUnknownField
	}

	canonical, err := Validate(p, raw)
	if err != nil {
		return values, nil, err
	}

	next := values.Clone()
	next[p.ID] = canonical
	next[p.Key] = canonical

	autoFills := propagate(idx, next, pos, p, canonical)

	nextIndex := NextUnfilled(idx, next)
	if reask {
		nextIndex = pos
	}

	return next, &Result{
		Value:     canonical,
		AutoFills: autoFills,
		NextIndex: nextIndex,
	}, nil
}

// propagate copies a canonical value onto every other unfilled occurrence
// with a matching name. Matches are recorded under the occurrence ID only,
// so a later direct answer to the same key is still possible.
func propagate(idx model.Index, values model.Values, pos int, p *model.Placeholder, canonical string) []AutoFill {
	var autoFills []AutoFill
	norm := model.NormalizeName(p.Name)
	for i := range idx {
		if i == pos {
			continue
		}
		q := &idx[i]
		if values.Has(q) {
			continue
		}
		if !sameField(q, p, norm) {
			continue
		}
		values[q.ID] = canonical
		autoFills = append(autoFills, AutoFill{ID: q.ID, Name: q.Name, Value: canonical})
	}
	return autoFills
}

func sameField(q, p *model.Placeholder, normName string) bool {
	if q.Name == p.Name {
		return true
	}
	return model.NormalizeName(q.Name) == normName
}

// NextUnfilled returns the position of the first unfilled placeholder,
// scanning from the top every time, or -1 when all are filled. Rescanning
// from zero is what lets an edit that clears a field resurface it.
func NextUnfilled(idx model.Index, values model.Values) int {
	for i := range idx {
		if !values.Has(&idx[i]) {
			return i
		}
	}
	return -1
}

// ComputeProgress summarizes fill state.
func ComputeProgress(idx model.Index, values model.Values) model.Progress {
	total := len(idx)
	filled := 0
	for i := range idx {
		if values.Has(&idx[i]) {
			filled++
		}
	}
	pct := 0.0
	if total > 0 {
		pct = float64(filled) / float64(total) * 100
	}
	return model.Progress{
		Filled:     filled,
		Total:      total,
		Percentage: pct,
		NextIndex:  NextUnfilled(idx, values),
	}
}
