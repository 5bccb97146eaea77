// Package fill implements value validation, canonical formatting and the
// pure fill-state transitions: applying an answer, propagating it to
// same-named fields and advancing the next-field pointer.
package fill

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/SrinathBegudem/LEXSY-WEB-APP/model"
)

// ValidationError describes why a raw answer was rejected, with an example
// the chat layer can show verbatim.
type ValidationError struct {
	Field   string `json:"field"`
	Type    string `json:"type"`
	Message string `json:"message"`
	Example string `json:"example"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
var datePattern = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
var nonDigits = regexp.MustCompile(`\D`)

// Full names for states that appear in SAFE and NDA templates. Other
// two-letter codes pass through upper-cased.
var stateNames = map[string]string{
	"de": "Delaware", "delaware": "Delaware",
	"ca": "California", "california": "California",
	"ny": "New York", "new york": "New York",
	"tx": "Texas", "texas": "Texas",
	"fl": "Florida", "florida": "Florida",
	"il": "Illinois", "illinois": "Illinois",
	"nv": "Nevada", "nevada": "Nevada",
	"wy": "Wyoming", "wyoming": "Wyoming",
}

// Validate checks a raw answer against the placeholder's semantic type and
// returns the canonical stored form. The checks run in a fixed order; the
// month-count check runs before the date check so "12" for a term length is
// never parsed as a calendar date.
func Validate(p *model.Placeholder, raw string) (string, error) {
	value := strings.TrimSpace(raw)
	name := strings.ToLower(p.Name)

	if value == "" {
		return "", &ValidationError{
			Field:   p.Name,
			Type:    "required",
			Message: fmt.Sprintf("%s is required. Please provide a value.", p.Name),
		}
	}

	switch {
	case strings.Contains(name, "email"):
		return validateEmail(p, value)
	case isMonthCount(name):
		return validateMonthCount(p, value)
	case p.Type == model.TypeDate || (strings.Contains(name, "date") && !strings.Contains(name, "month")):
		return validateDate(p, value)
	case p.Type == model.TypeAddress || strings.Contains(name, "state") ||
		strings.Contains(name, "jurisdiction"):
		return normalizeAddress(name, value), nil
	case p.Type == model.TypeAmount || strings.Contains(name, "amount") ||
		strings.Contains(name, "price") || strings.Contains(name, "valuation") ||
		strings.Contains(name, "fee") || strings.Contains(name, "$"):
		return validateAmount(p, value)
	case p.Type == model.TypePercentage || strings.Contains(name, "rate") ||
		strings.Contains(name, "discount") || strings.Contains(name, "percent") ||
		strings.Contains(name, "%"):
		return validatePercentage(p, value)
	case p.Type == model.TypeContact || strings.Contains(name, "phone") ||
		strings.Contains(name, "tel") || strings.Contains(name, "mobile") ||
		strings.Contains(name, "fax"):
		return validatePhone(p, value)
	case p.Type == model.TypeNumber || strings.Contains(name, "number") ||
		strings.Contains(name, "shares") || strings.Contains(name, "quantity"):
		return validateNumber(p, value)
	}

	return strings.Join(strings.Fields(value), " "), nil
}

// isMonthCount reports whether the field asks for a count of months rather
// than a calendar date.
func isMonthCount(name string) bool {
	if !strings.Contains(name, "month") {
		return false
	}
	for _, w := range []string{"term", "number", "count", "quantity", "duration", "period"} {
		if strings.Contains(name, w) {
			return true
		}
	}
	return strings.Contains(name, "months") && !strings.Contains(name, "date")
}

func validateEmail(p *model.Placeholder, value string) (string, error) {
	if !emailPattern.MatchString(value) {
		return "", &ValidationError{
			Field:   p.Name,
			Type:    "email",
			Message: "That doesn't look like a valid email address.",
			Example: "name@example.com",
		}
	}
	return value, nil
}

func validateMonthCount(p *model.Placeholder, value string) (string, error) {
	n, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", ""), 64)
	if err != nil || n <= 0 {
		return "", &ValidationError{
			Field:   p.Name,
			Type:    "number",
			Message: fmt.Sprintf("%s should be a positive number of months.", p.Name),
			Example: "12",
		}
	}
	return formatNumber(n), nil
}

func validateDate(p *model.Placeholder, value string) (string, error) {
	m := datePattern.FindStringSubmatch(value)
	if m == nil {
		return "", &ValidationError{
			Field:   p.Name,
			Type:    "date",
			Message: "Please provide the date in MM/DD/YYYY format.",
			Example: "12/25/2024",
		}
	}
	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])
	if month < 1 || month > 12 {
		return "", &ValidationError{
			Field:   p.Name,
			Type:    "date",
			Message: "The month must be between 01 and 12.",
			Example: "12/25/2024",
		}
	}
	if day < 1 || day > 31 {
		return "", &ValidationError{
			Field:   p.Name,
			Type:    "date",
			Message: "The day must be between 01 and 31.",
			Example: "12/25/2024",
		}
	}
	// Strict form only; "1/5/2024" is rejected rather than reformatted.
	if len(m[1]) != 2 || len(m[2]) != 2 {
		return "", &ValidationError{
			Field:   p.Name,
			Type:    "date",
			Message: "Please provide the date in MM/DD/YYYY format.",
			Example: "12/25/2024",
		}
	}
	return value, nil
}

// normalizeAddress expands known state names and title-cases the rest.
// Street addresses only get their whitespace collapsed.
func normalizeAddress(name, value string) string {
	if strings.Contains(name, "state") || strings.Contains(name, "jurisdiction") ||
		strings.Contains(name, "governing") {
		lower := strings.ToLower(strings.TrimSpace(value))
		if full, ok := stateNames[lower]; ok {
			return full
		}
		if len(lower) == 2 {
			return strings.ToUpper(lower)
		}
		return titleWords(value)
	}
	return strings.Join(strings.Fields(value), " ")
}

func validateAmount(p *model.Placeholder, value string) (string, error) {
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(value)
	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || n < 0 {
		return "", &ValidationError{
			Field:   p.Name,
			Type:    "amount",
			Message: fmt.Sprintf("%s should be a dollar amount.", p.Name),
			Example: "$100,000",
		}
	}
	if n == math.Trunc(n) {
		return "$" + groupThousands(fmt.Sprintf("%.0f", n)), nil
	}
	whole := math.Trunc(n)
	cents := math.Round((n - whole) * 100)
	if cents >= 100 {
		whole++
		cents = 0
	}
	return fmt.Sprintf("$%s.%02.0f", groupThousands(fmt.Sprintf("%.0f", whole)), cents), nil
}

func validatePercentage(p *model.Placeholder, value string) (string, error) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(value, "%", ""))
	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || n < 0 {
		return "", &ValidationError{
			Field:   p.Name,
			Type:    "percentage",
			Message: fmt.Sprintf("%s should be a percentage.", p.Name),
			Example: "20%",
		}
	}
	// Fractions are treated as ratios: 0.2 means 20 percent.
	if n > 0 && n <= 1 {
		n *= 100
	}
	return formatNumber(n) + "%", nil
}

func validatePhone(p *model.Placeholder, value string) (string, error) {
	digits := nonDigits.ReplaceAllString(value, "")
	switch {
	case len(digits) == 10:
		return fmt.Sprintf("(%s) %s-%s", digits[:3], digits[3:6], digits[6:]), nil
	case len(digits) >= 11 && len(digits) <= 15:
		return digits, nil
	}
	return "", &ValidationError{
		Field:   p.Name,
		Type:    "phone",
		Message: "Please provide a phone number with 10 to 15 digits.",
		Example: "(555) 123-4567",
	}
}

func validateNumber(p *model.Placeholder, value string) (string, error) {
	cleaned := strings.ReplaceAll(value, ",", "")
	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return "", &ValidationError{
			Field:   p.Name,
			Type:    "number",
			Message: fmt.Sprintf("%s should be a number.", p.Name),
			Example: "1000",
		}
	}
	if n == math.Trunc(n) && math.Abs(n) >= 1000 {
		return groupThousands(fmt.Sprintf("%.0f", n)), nil
	}
	return formatNumber(n), nil
}

// formatNumber renders a float without trailing zeros or float noise.
func formatNumber(n float64) string {
	n = math.Round(n*1e6) / 1e6
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// groupThousands inserts commas into a plain digit string.
func groupThousands(digits string) string {
	neg := strings.HasPrefix(digits, "-")
	if neg {
		digits = digits[1:]
	}
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

func titleWords(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		r := []rune(w)
		if r[0] >= 'a' && r[0] <= 'z' {
			r[0] = r[0] - 'a' + 'A'
		}
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
