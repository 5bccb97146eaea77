// Package placeholder implements detection of fill-in blanks in parsed legal
// documents: pattern scanning, context-based name inference, type
// classification and context-aware deduplication. The output is the ordered
// placeholder index the rest of the system fills and renders.
package placeholder

import (
	"regexp"
	"strings"

	"github.com/SrinathBegudem/LEXSY-WEB-APP/model"
	"github.com/google/uuid"
)

// Options are the detection tuning constants. They come from configuration;
// DefaultOptions matches the values tuned against real SAFE and NDA
// templates.
type Options struct {
	ContextWindow       int
	AmountContextWindow int
	DedupeProximity     int
}

// DefaultOptions returns the standard tuning values.
func DefaultOptions() Options {
	return Options{
		ContextWindow:       50,
		AmountContextWindow: 200,
		DedupeProximity:     10,
	}
}

// syntaxes, most specific first. The dollar-bracket form must be tried before
// the generic bracket form or it would be swallowed by it.
var syntaxes = []struct {
	typ string
	re  *regexp.Regexp
}{
	{model.PatternDollarBracket, regexp.MustCompile(`(?i)\$\[([^\]]*)\]`)},
	{model.PatternSquareBracket, regexp.MustCompile(`(?i)\[([^\]]+)\]`)},
	{model.PatternDoubleCurly, regexp.MustCompile(`(?i)\{\{([^}]+)\}\}`)},
	{model.PatternUnderscore, regexp.MustCompile(`(?i)__([A-Za-z][A-Za-z_\s]*[A-Za-z])__`)},
	{model.PatternAngleBracket, regexp.MustCompile(`(?i)<([A-Z_\s]+)>`)},
	{model.PatternInsertStyle, regexp.MustCompile(`(?i)\[INSERT ([^\]]+)\]`)},
	{model.PatternBlankDescription, regexp.MustCompile(`(?i)_{3,}\s*\(([^)]+)\)`)},
	{model.PatternFieldBlank, regexp.MustCompile(`(?i)([A-Za-z\s]+):\s*_{3,}`)},
}

// Decorative prefixes that carry no field meaning.
var decorativePrefixes = []string{"Insert", "Enter", "Add", "Input", "Type", "Provide", "Fill"}

// Whole-word abbreviation expansions applied during name cleaning.
var abbreviations = map[string]string{
	"Co.":   "Company",
	"Corp.": "Corporation",
	"Inc.":  "Incorporated",
	"Addr":  "Address",
	"Amt":   "Amount",
	"Pct":   "Percentage",
	"No.":   "Number",
	"Tel":   "Telephone",
	"Qty":   "Quantity",
}

// Names that are prose, not fields.
var stopWords = map[string]bool{
	"the": true, "this": true, "that": true, "section": true, "see": true,
}

// scanUnit extracts placeholder candidates from one paragraph or table cell.
func scanUnit(text string, loc model.Location, opts Options) []model.Placeholder {
	var found []model.Placeholder

	for _, syntax := range syntaxes {
		for _, m := range syntax.re.FindAllStringSubmatchIndex(text, -1) {
			full := text[m[0]:m[1]]
			span := model.Span{Start: m[0], End: m[1]}

			var group string
			if m[2] >= 0 {
				group = strings.TrimSpace(text[m[2]:m[3]])
			}

			var name string
			switch syntax.typ {
			case model.PatternDollarBracket:
				if group != "" && !allUnderscores(group) {
					name = group
				} else {
					// Blank or underscores only: the name lives in the
					// surrounding prose, and amount fields need a wider
					// window to find it.
					wide := contextWindow(text, span, opts.AmountContextWindow)
					name = inferName(full, wide)
				}
			default:
				if group == "" {
					continue
				}
				name = group
			}

			cleaned := cleanName(name)
			if len(cleaned) < 2 || stopWords[strings.ToLower(cleaned)] {
				continue
			}

			normalized := normalizeKey(cleaned)
			found = append(found, model.Placeholder{
				ID:            newOccurrenceID(),
				Key:           normalized + "_" + loc.Key(),
				NormalizedKey: normalized,
				Name:          cleaned,
				Original:      full,
				Type:          Classify(cleaned),
				PatternType:   syntax.typ,
				Location:      loc,
				Position:      span,
				Context:       contextWindow(text, span, opts.ContextWindow),
			})
		}
	}

	return found
}

// contextWindow extracts the text around a match, with ellipses marking
// truncation. The window is used by inference and disambiguation only and is
// never a replacement target.
func contextWindow(text string, span model.Span, size int) string {
	start := span.Start - size
	if start < 0 {
		start = 0
	}
	end := span.End + size
	if end > len(text) {
		end = len(text)
	}

	ctx := text[start:end]
	if start > 0 {
		ctx = "..." + ctx
	}
	if end < len(text) {
		ctx = ctx + "..."
	}
	return ctx
}

// cleanName normalizes a raw placeholder name: whitespace collapsed,
// all-caps converted to title case, decorative prefixes stripped and
// whole-word abbreviations expanded.
func cleanName(name string) string {
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return ""
	}

	if isAllUpper(name) && len(name) > 2 {
		name = titleCase(strings.ToLower(name))
	}

	for _, prefix := range decorativePrefixes {
		first, rest, ok := strings.Cut(name, " ")
		if ok && strings.EqualFold(first, prefix) {
			name = rest
			break
		}
	}

	words := strings.Split(name, " ")
	for i, w := range words {
		if full, ok := abbreviations[w]; ok {
			words[i] = full
		}
	}

	return strings.TrimSpace(strings.Join(words, " "))
}

// normalizeKey canonicalizes a name so recurring legal terms map to one key
// across the document. Distinct occurrences share this key on purpose; it is
// never used as occurrence identity.
func normalizeKey(name string) string {
	var b strings.Builder
	sep := false
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if sep && b.Len() > 0 {
				b.WriteByte('_')
			}
			sep = false
			b.WriteRune(r)
		} else {
			sep = true
		}
	}
	key := b.String()

	if mapped, ok := keyMappings[key]; ok {
		return mapped
	}
	if key == "" {
		return "placeholder"
	}
	return key
}

// keyMappings folds known variations of recurring legal terms onto one
// canonical key. Purchase amount and valuation cap stay separate fields.
var keyMappings = map[string]string{
	"company":                  "company_name",
	"company_name":             "company_name",
	"investor":                 "investor_name",
	"investor_name":            "investor_name",
	"purchase_amount":          "purchase_amount",
	"date_of_safe":             "date_of_safe",
	"safe_date":                "date_of_safe",
	"state_of_incorporation":   "state_of_incorporation",
	"valuation_cap":            "valuation_cap",
	"valuation_cap_amount":     "valuation_cap",
	"post_money_valuation_cap": "valuation_cap",
	"postmoney_valuation_cap":  "valuation_cap",
	"governing_law":            "governing_law_jurisdiction",
	"governing_law_jurisdiction": "governing_law_jurisdiction",
	// Bare signature-block labels stay distinct from person-name fields.
	"name":  "signatory_name",
	"title": "signatory_title",
}

func newOccurrenceID() string {
	return "ph_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
}

func allUnderscores(s string) bool {
	for _, r := range s {
		if r != '_' {
			return false
		}
	}
	return s != ""
}

func isAllUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if r >= 'a' && r <= 'z' {
			return false
		}
		if r >= 'A' && r <= 'Z' {
			hasLetter = true
		}
	}
	return hasLetter
}

// titleCase capitalizes the first letter of each space-separated word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = capitalizeWord(w)
	}
	return strings.Join(words, " ")
}

func capitalizeWord(w string) string {
	if w == "" {
		return w
	}
	r := []rune(strings.ToLower(w))
	if r[0] >= 'a' && r[0] <= 'z' {
		r[0] = r[0] - 'a' + 'A'
	}
	return string(r)
}
