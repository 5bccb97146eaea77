package placeholder

import (
	"strings"

	"github.com/SrinathBegudem/LEXSY-WEB-APP/model"
)

// Compound legal phrases checked before the generic keyword buckets. Order
// matters: "State of Incorporation" must resolve to address before the
// generic buckets get a chance to misfile it, and month-count fields must
// resolve to number before the date bucket sees the word "month".
var compoundTypes = []struct {
	phrase string
	typ    string
}{
	{"email address", model.TypeContact},
	{"address", model.TypeAddress},
	{"state of incorporation", model.TypeAddress},
	{"governing law", model.TypeAddress},
	{"valuation cap", model.TypeAmount},
	{"discount rate", model.TypePercentage},
	{"purchase amount", model.TypeAmount},
	{"date of safe", model.TypeDate},
	{"safe date", model.TypeDate},
	{"investor name", model.TypePerson},
	{"company name", model.TypeCompany},
}

// Duration-ish words that, combined with "month", mark a numeric field. A
// bare integer answer like "12" must never be parsed as a calendar date.
var durationWords = []string{"term", "number", "count", "quantity", "duration", "period"}

// Generic keyword buckets, checked in this order after the compound phrases.
var typeBuckets = []struct {
	typ      string
	keywords []string
}{
	{model.TypeCompany, []string{"company", "corporation", "entity", "business", "firm", "organization", "llc", "inc", "corp"}},
	{model.TypePerson, []string{"name", "person", "individual", "party", "signatory", "representative", "employee"}},
	{model.TypeDate, []string{"date", "day", "month", "year", "effective", "expiration", "deadline", "due", "termination"}},
	{model.TypeAmount, []string{"amount", "price", "fee", "cost", "payment", "sum", "total", "valuation", "cap", "$", "dollar", "usd"}},
	{model.TypePercentage, []string{"percentage", "percent", "rate", "discount", "interest", "commission", "%"}},
	{model.TypeAddress, []string{"address", "location", "street", "city", "state", "zip", "country", "jurisdiction"}},
	{model.TypeContact, []string{"email", "phone", "telephone", "fax", "contact", "mobile", "tel"}},
	{model.TypeNumber, []string{"number", "count", "quantity", "shares", "units", "#", "no."}},
	{model.TypeSignature, []string{"signature", "signed", "authorized", "executed", "acknowledged"}},
	{model.TypeTitle, []string{"title", "position", "role", "designation", "office"}},
}

// Classify infers the semantic type of a field from its name.
func Classify(name string) string {
	lower := strings.ToLower(name)

	for _, c := range compoundTypes {
		if strings.Contains(lower, c.phrase) {
			return c.typ
		}
	}

	if strings.Contains(lower, "month") {
		for _, w := range durationWords {
			if strings.Contains(lower, w) {
				return model.TypeNumber
			}
		}
	}

	for _, bucket := range typeBuckets {
		for _, kw := range bucket.keywords {
			if !strings.Contains(lower, kw) {
				continue
			}
			// Incorporation-state names carry no company keyword, but guard
			// against variants that slip one in.
			if bucket.typ == model.TypeCompany &&
				strings.Contains(lower, "state") && strings.Contains(lower, "incorporation") {
				continue
			}
			return bucket.typ
		}
	}

	return model.TypeText
}
