package render

import (
	"strings"
	"testing"

	"github.com/SrinathBegudem/LEXSY-WEB-APP/model"
)

// phIn builds a placeholder over the nth occurrence (0-based) of literal in
// text, addressed to the given paragraph.
func phIn(id, key, name, literal, text string, para, nth, seq int) model.Placeholder {
	start := -1
	from := 0
	for i := 0; i <= nth; i++ {
		rel := strings.Index(text[from:], literal)
		if rel < 0 {
			panic("literal not found: " + literal)
		}
		start = from + rel
		from = start + len(literal)
	}
	return model.Placeholder{
		ID:       id,
		Key:      key,
		Name:     name,
		Original: literal,
		Location: model.ParagraphLocation(para),
		Position: model.Span{Start: start, End: start + len(literal)},
		Sequence: seq,
	}
}

func TestPreviewStates(t *testing.T) {
	text := "Agreement between [Company Name] and [Investor Name]."
	doc := &model.Document{Paragraphs: []model.Paragraph{{Index: 0, Text: text}}}
	idx := model.Index{
		phIn("ph_co", "company_name_0", "Company Name", "[Company Name]", text, 0, 0, 1),
		phIn("ph_inv", "investor_name_0", "Investor Name", "[Investor Name]", text, 0, 0, 2),
	}
	values := model.Values{"ph_co": "Acme Corp"}

	out := Preview(doc, idx, values, 1)

	if !strings.Contains(out, `class="placeholder-filled" data-ph="ph_co"`) {
		t.Error("filled occurrence not marked")
	}
	if !strings.Contains(out, ">Acme Corp</span>") {
		t.Error("filled occurrence does not show its value")
	}
	if !strings.Contains(out, `class="placeholder-current" data-ph="ph_inv"`) {
		t.Error("current occurrence not marked")
	}
	if !strings.Contains(out, ">[Investor Name]</span>") {
		t.Error("current unfilled occurrence should show its original text")
	}
	if !strings.Contains(out, "Agreement between ") {
		t.Error("surrounding prose missing")
	}
}

func TestPreviewUnfilledState(t *testing.T) {
	text := "Governed by the laws of [State]."
	doc := &model.Document{Paragraphs: []model.Paragraph{{Index: 0, Text: text}}}
	idx := model.Index{
		phIn("ph_st", "state_0", "State", "[State]", text, 0, 0, 1),
	}

	// Another field is current, so this one renders as plainly unfilled.
	out := Preview(doc, idx, model.Values{}, -1)
	if !strings.Contains(out, `class="placeholder-unfilled"`) {
		t.Error("unfilled occurrence not marked")
	}
}

func TestPreviewLocationScoping(t *testing.T) {
	text0 := "Notice to [Company Name]."
	text5 := "Signed for [Company Name]."
	doc := &model.Document{Paragraphs: []model.Paragraph{
		{Index: 0, Text: text0},
		{Index: 5, Text: text5},
	}}
	idx := model.Index{
		phIn("ph_a", "company_name_0", "Company Name", "[Company Name]", text0, 0, 0, 1),
		phIn("ph_b", "company_name_5", "Company Name", "[Company Name]", text5, 5, 0, 2),
	}
	values := model.Values{"ph_a": "Acme Corp"}

	out := Preview(doc, idx, values, 1)

	if strings.Count(out, ">Acme Corp</span>") != 1 {
		t.Error("value leaked across locations")
	}
	if !strings.Contains(out, ">[Company Name]</span>") {
		t.Error("the unfilled occurrence should keep its original text")
	}
}

func TestPreviewRepeatedLiteralDistinctValues(t *testing.T) {
	text := "From [Date] to [Date]."
	doc := &model.Document{Paragraphs: []model.Paragraph{{Index: 0, Text: text}}}
	idx := model.Index{
		phIn("ph_from", "date_0", "Date", "[Date]", text, 0, 0, 1),
		phIn("ph_to", "date_0b", "Date", "[Date]", text, 0, 1, 2),
	}
	values := model.Values{"ph_from": "01/01/2025", "ph_to": "12/31/2025"}

	out := Preview(doc, idx, values, -1)

	fromAt := strings.Index(out, ">01/01/2025</span>")
	toAt := strings.Index(out, ">12/31/2025</span>")
	if fromAt < 0 || toAt < 0 {
		t.Fatal("both occurrence values should appear")
	}
	if fromAt > toAt {
		t.Error("occurrence values assigned in the wrong order")
	}
	if strings.Count(out, ">01/01/2025</span>") != 1 {
		t.Error("first value applied more than once")
	}
}

func TestPreviewEscapesPlaceholderValues(t *testing.T) {
	text := "Supplier: [Vendor]."
	doc := &model.Document{Paragraphs: []model.Paragraph{{Index: 0, Text: text}}}
	idx := model.Index{
		phIn("ph_v", "vendor_0", "Vendor", "[Vendor]", text, 0, 0, 1),
	}
	values := model.Values{"ph_v": "<script>alert(1)</script>"}

	out := Preview(doc, idx, values, -1)
	if strings.Contains(out, "<script>") {
		t.Error("value not escaped")
	}
}

func TestPreviewTableAndHeadings(t *testing.T) {
	doc := &model.Document{
		Paragraphs: []model.Paragraph{
			{Index: 0, Text: "SAFE AGREEMENT", Style: "Title"},
			{Index: 1, Text: "1. Events", Style: "Heading 1"},
		},
		Tables: []model.Table{
			{Index: 0, Rows: [][]model.TableCell{
				{{Row: 0, Col: 0, Text: "Field"}, {Row: 0, Col: 1, Text: "Value"}},
				{{Row: 1, Col: 0, Text: "Investor"}, {Row: 1, Col: 1, Text: "[Investor Name]"}},
			}},
		},
	}
	idx := model.Index{
		{ID: "ph_i", Key: "investor_name_t", Name: "Investor Name", Original: "[Investor Name]",
			Location: model.TableLocation(0, 1, 1), Position: model.Span{Start: 0, End: 15}, Sequence: 1},
	}

	out := Preview(doc, idx, model.Values{"ph_i": "Jane Doe"}, -1)

	if !strings.Contains(out, `<h1 class="title">SAFE AGREEMENT</h1>`) {
		t.Error("title style not mapped to h1")
	}
	if !strings.Contains(out, `<h2 class="heading">1. Events</h2>`) {
		t.Error("heading style not mapped to h2")
	}
	if !strings.Contains(out, "<th>Field</th>") {
		t.Error("first table row should render as header cells")
	}
	if !strings.Contains(out, ">Jane Doe</span>") {
		t.Error("table cell occurrence not filled")
	}
}
