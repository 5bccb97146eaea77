package placeholder

import (
	"context"
	"sort"

	"github.com/SrinathBegudem/LEXSY-WEB-APP/model"
	"github.com/SrinathBegudem/LEXSY-WEB-APP/pkg/logger"
)

// Detector runs the full detection pipeline over a parsed document.
type Detector struct {
	opts Options
}

// NewDetector creates a detector with the given tuning options.
func NewDetector(opts Options) *Detector {
	return &Detector{opts: opts}
}

// Detect scans every paragraph and table cell, deduplicates overlapping
// matches and returns the final ordered index. Sequence numbers are assigned
// last, after ordering, and are 1-based.
func (d *Detector) Detect(ctx context.Context, doc *model.Document) model.Index {
	var candidates []model.Placeholder

	for _, para := range doc.Paragraphs {
		loc := model.ParagraphLocation(para.Index)
		candidates = append(candidates, scanUnit(para.Text, loc, d.opts)...)
	}
	for _, table := range doc.Tables {
		for _, row := range table.Rows {
			for _, cell := range row {
				loc := model.TableLocation(table.Index, cell.Row, cell.Col)
				candidates = append(candidates, scanUnit(cell.Text, loc, d.opts)...)
			}
		}
	}

	unique := dedupe(candidates, d.opts.DedupeProximity)

	sort.SliceStable(unique, func(i, j int) bool {
		if !unique[i].Location.Equal(unique[j].Location) {
			return unique[i].Location.Less(unique[j].Location)
		}
		return unique[i].Position.Start < unique[j].Position.Start
	})

	index := make(model.Index, 0, len(unique))
	for _, p := range unique {
		if p.Name == "" || allUnderscores(p.Name) {
			continue
		}
		p.Sequence = len(index) + 1
		index = append(index, p)
	}

	logger.Info(ctx, "placeholder detection complete",
		"candidates", len(candidates),
		"unique", len(unique),
		"final", len(index))

	return index
}
