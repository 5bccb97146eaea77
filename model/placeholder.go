package model

import "strings"

// Field types inferred from a placeholder's name and context.
const (
	TypeCompany    = "company"
	TypePerson     = "person"
	TypeDate       = "date"
	TypeAmount     = "amount"
	TypePercentage = "percentage"
	TypeAddress    = "address"
	TypeContact    = "contact"
	TypeNumber     = "number"
	TypeSignature  = "signature"
	TypeTitle      = "title"
	TypeText       = "text"
)

// Pattern types, most specific first. The scanner applies them in this order.
const (
	PatternDollarBracket    = "dollar_bracket"
	PatternSquareBracket    = "square_bracket"
	PatternDoubleCurly      = "double_curly"
	PatternUnderscore       = "underscore"
	PatternAngleBracket     = "angle_bracket"
	PatternInsertStyle      = "insert_style"
	PatternBlankDescription = "blank_with_description"
	PatternFieldBlank       = "field_with_blank"
)

// Span is a character range within the containing text.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Placeholder is a single physical occurrence of a fillable blank.
//
// ID is the primary identifier, unique per occurrence and stable for the
// session. Key is the legacy name+location identifier; distinct occurrences
// may share it, which is what lets one answer propagate to same-named
// fields. Every lookup tries ID first, then Key (see Values.Has).
type Placeholder struct {
	ID            string   `json:"id"`
	Key           string   `json:"key"`
	NormalizedKey string   `json:"normalized_key"`
	Name          string   `json:"name"`
	Original      string   `json:"original"`
	Type          string   `json:"type"`
	PatternType   string   `json:"pattern_type"`
	Location      Location `json:"location"`
	Position      Span     `json:"position"`
	Context       string   `json:"context"`
	Sequence      int      `json:"sequence"`
}

// Index is the final ordered, located, typed list of placeholders. Built once
// per document, immutable thereafter.
type Index []Placeholder

// Find resolves a field reference: ID first, then Key. Returns the position
// in the index and the placeholder, or -1 if no entry matches.
func (idx Index) Find(ref string) (int, *Placeholder) {
	for i := range idx {
		if idx[i].ID == ref {
			return i, &idx[i]
		}
	}
	for i := range idx {
		if idx[i].Key == ref {
			return i, &idx[i]
		}
	}
	return -1, nil
}

// At returns the placeholders addressed to one physical location, preserving
// index order.
func (idx Index) At(loc Location) []Placeholder {
	var out []Placeholder
	for _, p := range idx {
		if p.Location.Equal(loc) {
			out = append(out, p)
		}
	}
	return out
}

// Values maps placeholder IDs (primary) and legacy Keys (alias) to canonical
// stored values.
type Values map[string]string

// Has reports whether a placeholder is filled: its ID or its Key is present.
func (v Values) Has(p *Placeholder) bool {
	if _, ok := v[p.ID]; ok {
		return true
	}
	_, ok := v[p.Key]
	return ok
}

// Get returns the stored value for a placeholder, trying ID then Key.
func (v Values) Get(p *Placeholder) string {
	if val, ok := v[p.ID]; ok {
		return val
	}
	return v[p.Key]
}

// Clone returns a copy; transitions never mutate the caller's map.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// NormalizeName canonicalizes a field name for sibling matching during
// auto-fill: lower case, underscores and runs of whitespace collapsed to one
// space, punctuation removed.
func NormalizeName(name string) string {
	var b strings.Builder
	space := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '_':
			space = true
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r)
		}
	}
	return b.String()
}
