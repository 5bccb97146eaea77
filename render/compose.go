package render

import (
	"fmt"
	"strings"

	"github.com/SrinathBegudem/LEXSY-WEB-APP/model"
)

// maxMissingInError bounds the field names listed when composition is
// attempted on an incomplete document.
const maxMissingInError = 10

// IncompleteError reports an attempted composition with unanswered fields.
// Missing holds at most maxMissingInError field names.
type IncompleteError struct {
	Missing []string
	Total   int
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("%d fields are still unfilled: %s", e.Total, strings.Join(e.Missing, ", "))
}

// Edit is one per-location text rewrite of the final document.
type Edit struct {
	Location model.Location `json:"location"`
	NewText  string         `json:"new_text"`
}

// Compose produces the final text edits once every placeholder is answered.
// Only units that actually change are emitted. Running Compose twice over the
// same inputs yields identical edits.
func Compose(doc *model.Document, idx model.Index, values model.Values) ([]Edit, error) {
	var missing []string
	total := 0
	for i := range idx {
		if !values.Has(&idx[i]) {
			total++
			if len(missing) < maxMissingInError {
				missing = append(missing, idx[i].Name)
			}
		}
	}
	if total > 0 {
		return nil, &IncompleteError{Missing: missing, Total: total}
	}

	fn := func(p *model.Placeholder, value string, filled bool) string {
		if filled {
			return value
		}
		return p.Original
	}

	var edits []Edit
	for _, para := range doc.Paragraphs {
		loc := model.ParagraphLocation(para.Index)
		phs := idx.At(loc)
		if len(phs) == 0 {
			continue
		}
		newText := renderUnit(para.Text, phs, values, fn, nil)
		if newText != para.Text {
			edits = append(edits, Edit{Location: loc, NewText: newText})
		}
	}
	for _, table := range doc.Tables {
		for _, row := range table.Rows {
			for _, cell := range row {
				loc := model.TableLocation(table.Index, cell.Row, cell.Col)
				phs := idx.At(loc)
				if len(phs) == 0 {
					continue
				}
				newText := renderUnit(cell.Text, phs, values, fn, nil)
				if newText != cell.Text {
					edits = append(edits, Edit{Location: loc, NewText: newText})
				}
			}
		}
	}

	return edits, nil
}
