package model

import "fmt"

// Location types for placeholder addressing
const (
	LocationParagraph = "paragraph"
	LocationTable     = "table"
)

// Paragraph is one paragraph of a parsed document. Index is the position in
// the source document (empty paragraphs keep their index even though they are
// not listed), so it is a stable address for the lifetime of a session.
type Paragraph struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
	Style string `json:"style"`
}

// TableCell is one cell of a parsed table.
type TableCell struct {
	Row  int    `json:"row"`
	Col  int    `json:"col"`
	Text string `json:"text"`
}

// Table is a parsed table: an ordered grid of cells.
type Table struct {
	Index int           `json:"index"`
	Rows  [][]TableCell `json:"rows"`
}

// Document is the parsed structural representation of an uploaded document.
// It is built once per upload and never mutated afterwards.
type Document struct {
	Paragraphs []Paragraph `json:"paragraphs"`
	Tables     []Table     `json:"tables"`
	RawText    string      `json:"raw_text"`
}

// Location addresses one physical unit of a document: a paragraph or a
// table cell.
type Location struct {
	Type      string `json:"type"` // paragraph or table
	Paragraph int    `json:"paragraph,omitempty"`
	Table     int    `json:"table,omitempty"`
	Row       int    `json:"row,omitempty"`
	Col       int    `json:"col,omitempty"`
}

// ParagraphLocation addresses a paragraph by index.
func ParagraphLocation(index int) Location {
	return Location{Type: LocationParagraph, Paragraph: index}
}

// TableLocation addresses a table cell by (table, row, col).
func TableLocation(table, row, col int) Location {
	return Location{Type: LocationTable, Table: table, Row: row, Col: col}
}

// Key returns the string form of the location used in legacy keys and
// signatures, e.g. "paragraph_3" or "table_0-1-2".
func (l Location) Key() string {
	if l.Type == LocationTable {
		return fmt.Sprintf("%d-%d-%d", l.Table, l.Row, l.Col)
	}
	return fmt.Sprintf("%d", l.Paragraph)
}

// Equal reports whether two locations address the same physical unit.
func (l Location) Equal(other Location) bool {
	if l.Type != other.Type {
		return false
	}
	if l.Type == LocationTable {
		return l.Table == other.Table && l.Row == other.Row && l.Col == other.Col
	}
	return l.Paragraph == other.Paragraph
}

// Less orders locations by appearance: paragraphs before tables, then by
// index (or table/row/col triple).
func (l Location) Less(other Location) bool {
	if l.Type != other.Type {
		return l.Type < other.Type // "paragraph" sorts before "table"
	}
	if l.Type == LocationTable {
		if l.Table != other.Table {
			return l.Table < other.Table
		}
		if l.Row != other.Row {
			return l.Row < other.Row
		}
		return l.Col < other.Col
	}
	return l.Paragraph < other.Paragraph
}
