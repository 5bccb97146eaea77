package service

import (
	"bytes"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/SrinathBegudem/LEXSY-WEB-APP/model"
	"github.com/nguyenthenguyen/docx"
)

var (
	tablePattern     = regexp.MustCompile(`(?s)<w:tbl[ >].*?</w:tbl>`)
	rowPattern       = regexp.MustCompile(`(?s)<w:tr[ >].*?</w:tr>`)
	cellPattern      = regexp.MustCompile(`(?s)<w:tc[ >].*?</w:tc>`)
	paragraphPattern = regexp.MustCompile(`(?s)<w:p(?: [^>]*)?>(.*?)</w:p>`)
	textPattern      = regexp.MustCompile(`(?s)<w:t(?: [^>]*)?>(.*?)</w:t>`)
	stylePattern     = regexp.MustCompile(`<w:pStyle [^>]*w:val="([^"]+)"`)
)

var xmlUnescaper = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&apos;", "'",
	"&amp;", "&",
)

// ParseDocx reads a .docx payload into the structural document model.
func ParseDocx(data []byte) (*model.Document, error) {
	r, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to read docx: %w", err)
	}
	defer r.Close()

	return parseContent(r.Editable().GetContent())
}

// parseContent builds the document model from the raw document.xml body.
// Paragraph indices count every paragraph in the source, including empty
// ones, so they stay stable addresses for later rewriting. Tables are parsed
// separately and their paragraphs excluded from the paragraph list.
func parseContent(content string) (*model.Document, error) {
	doc := &model.Document{}

	tableBlocks := tablePattern.FindAllString(content, -1)
	body := tablePattern.ReplaceAllString(content, "")

	var rawParts []string
	for i, m := range paragraphPattern.FindAllStringSubmatch(body, -1) {
		text := extractText(m[1])
		if strings.TrimSpace(text) == "" {
			continue
		}
		style := ""
		if sm := stylePattern.FindStringSubmatch(m[0]); sm != nil {
			style = sm[1]
		}
		doc.Paragraphs = append(doc.Paragraphs, model.Paragraph{
			Index: i,
			Text:  text,
			Style: style,
		})
		rawParts = append(rawParts, text)
	}

	for tableIdx, block := range tableBlocks {
		table := model.Table{Index: tableIdx}
		for rowIdx, rowXML := range rowPattern.FindAllString(block, -1) {
			var row []model.TableCell
			for colIdx, cellXML := range cellPattern.FindAllString(rowXML, -1) {
				text := extractText(cellXML)
				row = append(row, model.TableCell{Row: rowIdx, Col: colIdx, Text: text})
				if strings.TrimSpace(text) != "" {
					rawParts = append(rawParts, text)
				}
			}
			table.Rows = append(table.Rows, row)
		}
		doc.Tables = append(doc.Tables, table)
	}

	doc.RawText = strings.Join(rawParts, "\n")
	return doc, nil
}

// extractText joins the text runs of one XML fragment.
func extractText(fragment string) string {
	var parts []string
	for _, m := range textPattern.FindAllStringSubmatch(fragment, -1) {
		parts = append(parts, xmlUnescaper.Replace(m[1]))
	}
	return strings.Join(parts, "")
}

// Escapes inserted values and search literals the way Word escapes text
// runs. Quotes stay literal in text nodes, so only the three markup
// characters are rewritten.
var xmlTextEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

// RenderDocx rewrites the template with the stored values and returns the
// final .docx bytes. Replacement is scoped to each occurrence's own
// paragraph or table cell, so the same literal in two different units never
// receives the wrong unit's value; within one unit, occurrences consume
// matches left to right. Headers and footers are not location-addressed and
// get a global pass.
func RenderDocx(data []byte, idx model.Index, values model.Values) ([]byte, error) {
	r, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to read docx: %w", err)
	}
	defer r.Close()

	d := r.Editable()
	d.SetContent(renderContent(d.GetContent(), idx, values))

	for i := range idx {
		p := &idx[i]
		if !values.Has(p) {
			continue
		}
		_ = d.ReplaceHeader(p.Original, values.Get(p))
		_ = d.ReplaceFooter(p.Original, values.Get(p))
	}

	var buf bytes.Buffer
	if err := d.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write docx: %w", err)
	}
	return buf.Bytes(), nil
}

// unitEdit is one rewritten span of document.xml.
type unitEdit struct {
	start, end int
	xml        string
}

// renderContent applies the stored values to the document.xml body, unit by
// unit. Units are addressed the same way parseContent numbers them:
// paragraphs by source index with table paragraphs excluded, table cells by
// (table, row, col).
func renderContent(content string, idx model.Index, values model.Values) string {
	byLoc := make(map[model.Location][]*model.Placeholder)
	for i := range idx {
		p := &idx[i]
		if values.Has(p) {
			byLoc[p.Location] = append(byLoc[p.Location], p)
		}
	}
	if len(byLoc) == 0 {
		return content
	}

	tableSpans := tablePattern.FindAllStringIndex(content, -1)
	var edits []unitEdit

	paraIdx := 0
	for _, m := range paragraphPattern.FindAllStringIndex(content, -1) {
		if insideAny(tableSpans, m[0]) {
			continue
		}
		if phs := byLoc[model.ParagraphLocation(paraIdx)]; len(phs) > 0 {
			edits = append(edits, unitEdit{m[0], m[1], replaceInUnit(content[m[0]:m[1]], phs, values)})
		}
		paraIdx++
	}

	for tableIdx, ts := range tableSpans {
		block := content[ts[0]:ts[1]]
		for rowIdx, rm := range rowPattern.FindAllStringIndex(block, -1) {
			rowXML := block[rm[0]:rm[1]]
			for colIdx, cm := range cellPattern.FindAllStringIndex(rowXML, -1) {
				loc := model.TableLocation(tableIdx, rowIdx, colIdx)
				if phs := byLoc[loc]; len(phs) > 0 {
					start := ts[0] + rm[0] + cm[0]
					end := ts[0] + rm[0] + cm[1]
					edits = append(edits, unitEdit{start, end, replaceInUnit(rowXML[cm[0]:cm[1]], phs, values)})
				}
			}
		}
	}

	sort.Slice(edits, func(i, j int) bool { return edits[i].start < edits[j].start })

	var b strings.Builder
	last := 0
	for _, e := range edits {
		b.WriteString(content[last:e.start])
		b.WriteString(e.xml)
		last = e.end
	}
	b.WriteString(content[last:])
	return b.String()
}

// replaceInUnit consumes each filled occurrence's first remaining literal
// match within one unit's XML, in position order. A literal split across
// text runs is left in place rather than guessed at.
func replaceInUnit(fragment string, phs []*model.Placeholder, values model.Values) string {
	cursor := 0
	for _, p := range phs {
		lit := xmlTextEscaper.Replace(p.Original)
		rel := strings.Index(fragment[cursor:], lit)
		if rel < 0 {
			continue
		}
		at := cursor + rel
		val := xmlTextEscaper.Replace(values.Get(p))
		fragment = fragment[:at] + val + fragment[at+len(lit):]
		cursor = at + len(val)
	}
	return fragment
}

func insideAny(spans [][]int, pos int) bool {
	for _, s := range spans {
		if pos >= s[0] && pos < s[1] {
			return true
		}
	}
	return false
}
