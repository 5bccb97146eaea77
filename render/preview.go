package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/SrinathBegudem/LEXSY-WEB-APP/model"
)

const previewStyles = `<style>
.document-preview { font-family: Georgia, 'Times New Roman', serif; line-height: 1.7; color: #1a1a1a; }
.document-preview h1.title { font-size: 1.4em; text-align: center; margin: 0.8em 0; }
.document-preview h2.heading { font-size: 1.15em; margin: 1em 0 0.4em; }
.document-preview p.paragraph { margin: 0.5em 0; }
.document-preview table { border-collapse: collapse; margin: 1em 0; width: 100%; }
.document-preview th, .document-preview td { border: 1px solid #ccc; padding: 6px 10px; text-align: left; }
.placeholder-current { background: #fff3bf; border-bottom: 2px solid #f59f00; padding: 0 2px; font-weight: 600; }
.placeholder-filled { background: #d3f9d8; border-bottom: 2px solid #37b24d; padding: 0 2px; }
.placeholder-unfilled { background: #f1f3f5; border-bottom: 2px dashed #adb5bd; padding: 0 2px; color: #868e96; }
</style>`

// Preview renders the document as a self-contained HTML fragment. Every
// placeholder occurrence becomes a span whose class reflects its state:
// current (the field being asked about), filled, or unfilled. currentIndex is
// the index-position of the field in play, or -1 when the fill is complete.
func Preview(doc *model.Document, idx model.Index, values model.Values, currentIndex int) string {
	var currentID string
	if currentIndex >= 0 && currentIndex < len(idx) {
		currentID = idx[currentIndex].ID
	}

	fn := func(p *model.Placeholder, value string, filled bool) string {
		class := "placeholder-unfilled"
		text := p.Original
		title := p.Name
		switch {
		case p.ID == currentID:
			class = "placeholder-current"
			if filled {
				text = value
			}
		case filled:
			class = "placeholder-filled"
			text = value
			title = fmt.Sprintf("%s: %s", p.Name, value)
		}
		return fmt.Sprintf(`<span class="%s" data-ph="%s" data-key="%s" data-index="%d" title="%s">%s</span>`,
			class, p.ID, html.EscapeString(p.Key), p.Sequence, html.EscapeString(title), html.EscapeString(text))
	}

	var b strings.Builder
	b.WriteString(`<div class="document-preview">`)
	b.WriteString(previewStyles)

	for _, para := range doc.Paragraphs {
		phs := idx.At(model.ParagraphLocation(para.Index))
		inner := renderUnit(para.Text, phs, values, fn, html.EscapeString)
		tag, class := paragraphTag(para.Style)
		fmt.Fprintf(&b, `<%s class="%s">%s</%s>`, tag, class, inner, tag)
	}

	for _, table := range doc.Tables {
		b.WriteString("<table>")
		for rowIdx, row := range table.Rows {
			cellTag := "td"
			if rowIdx == 0 {
				cellTag = "th"
			}
			b.WriteString("<tr>")
			for _, cell := range row {
				phs := idx.At(model.TableLocation(table.Index, cell.Row, cell.Col))
				inner := renderUnit(cell.Text, phs, values, fn, html.EscapeString)
				fmt.Fprintf(&b, "<%s>%s</%s>", cellTag, inner, cellTag)
			}
			b.WriteString("</tr>")
		}
		b.WriteString("</table>")
	}

	b.WriteString("</div>")
	return b.String()
}

// paragraphTag maps a source paragraph style to an HTML tag and class.
func paragraphTag(style string) (tag, class string) {
	lower := strings.ToLower(style)
	switch {
	case strings.Contains(lower, "title"):
		return "h1", "title"
	case strings.Contains(lower, "heading"):
		return "h2", "heading"
	default:
		return "p", "paragraph"
	}
}
