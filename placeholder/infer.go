package placeholder

import (
	"regexp"
	"strings"
)

// inferInput is what every inference rule sees: the literal match plus the
// context split around it.
type inferInput struct {
	match   string
	context string
	before  string // up to 100 chars of context preceding the match
	after   string // up to 50 chars of context following the match
}

// inferRule is one named naming heuristic. Rules run in a fixed order and
// the first hit wins; the order is part of the contract (valuation-cap
// keywords are checked before purchase-amount keywords).
type inferRule struct {
	name  string
	apply func(in inferInput) (string, bool)
}

var inferRules = []inferRule{
	{"valuation_cap_keywords", inferValuationCap},
	{"purchase_amount_keywords", inferPurchaseAmount},
	{"preceding_phrase", inferPrecedingPhrase},
	{"trailing_parenthetical", inferParenthetical},
	{"type_hint", inferTypeHint},
	{"match_shape", inferShape},
}

// inferName names a blank match from its surrounding prose. It never fails:
// the last resort is the generic name "Value".
func inferName(match, context string) string {
	in := inferInput{match: match, context: context}

	before := context
	after := ""
	if idx := strings.Index(context, match); idx >= 0 {
		before = context[:idx]
		after = context[idx+len(match):]
	}
	if len(before) > 100 {
		before = before[len(before)-100:]
	}
	if len(after) > 50 {
		after = after[:50]
	}
	in.before = strings.TrimSpace(before)
	in.after = strings.TrimSpace(after)

	for _, rule := range inferRules {
		if name, ok := rule.apply(in); ok {
			return name
		}
	}
	return "Value"
}

var valuationCapPhrases = []string{
	"post-money valuation cap",
	"post money valuation cap",
	"valuation cap",
	"post money",
}

func inferValuationCap(in inferInput) (string, bool) {
	ctx := strings.ToLower(in.context)
	for _, phrase := range valuationCapPhrases {
		if strings.Contains(ctx, phrase) {
			return "Post-Money Valuation Cap", true
		}
	}
	return "", false
}

var purchaseAmountPhrases = []string{
	"purchase amount",
	"payment by",
	"exchange for",
}

func inferPurchaseAmount(in inferInput) (string, bool) {
	ctx := strings.ToLower(in.context)
	for _, phrase := range purchaseAmountPhrases {
		if strings.Contains(ctx, phrase) {
			return "Purchase Amount", true
		}
	}
	return "", false
}

// Phrase shapes that introduce a field right before the blank, e.g.
// "The Purchase Amount is ____" or "State of Incorporation: ____".
var precedingPhrasePatterns = []*regexp.Regexp{
	regexp.MustCompile(`([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)\s+is\s*$`),
	regexp.MustCompile(`([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)\s*[:\-]\s*$`),
	regexp.MustCompile(`(?i)by\s+([A-Za-z\s]+?):\s*$`),
	regexp.MustCompile(`^([A-Za-z\s]+):\s*$`),
	regexp.MustCompile(`([A-Z][A-Za-z\s]{3,30})\s+(?:of|for)\s*$`),
	regexp.MustCompile(`([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)\s*\($`),
}

var leadingArticle = regexp.MustCompile(`(?i)^(the|a|an)\s+`)

var rejectedInferredNames = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "this": true, "that": true,
}

func inferPrecedingPhrase(in inferInput) (string, bool) {
	for _, re := range precedingPhrasePatterns {
		m := re.FindStringSubmatch(in.before)
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		name = leadingArticle.ReplaceAllString(name, "")
		name = titleCase(name)
		if len(name) >= 3 && !rejectedInferredNames[strings.ToLower(name)] {
			return name, true
		}
	}
	return "", false
}

var parentheticalHint = regexp.MustCompile(`^\s*\(([^)]+)\)`)

func inferParenthetical(in inferInput) (string, bool) {
	m := parentheticalHint.FindStringSubmatch(in.after)
	if m == nil {
		return "", false
	}
	hint := strings.TrimSpace(m[1])
	if len(hint) < 3 || len(hint) > 40 {
		return "", false
	}
	hint = strings.Trim(hint, `"'`)
	return titleCase(hint), true
}

func inferTypeHint(in inferInput) (string, bool) {
	if strings.HasPrefix(in.match, "$") {
		return "Purchase Amount", true
	}

	tail := func(n int) string {
		s := strings.ToLower(in.before)
		if len(s) > n {
			s = s[len(s)-n:]
		}
		return s
	}

	switch {
	case strings.Contains(tail(40), "company"):
		return "Company Information", true
	case strings.Contains(tail(40), "investor"):
		return "Investor Information", true
	case strings.Contains(tail(20), "name"):
		return "Name", true
	case strings.Contains(tail(20), "title"):
		return "Title/Position", true
	case strings.Contains(tail(20), "date"):
		return "Date", true
	}
	return "", false
}

func inferShape(in inferInput) (string, bool) {
	if len(in.match) > 15 {
		return "Required Information", true
	}
	if strings.HasPrefix(in.match, "_") {
		return "Required Field", true
	}
	return "", false
}
