package ir

// TableBlock represents a table with a header row and body rows.
type TableBlock struct {
	Header TableRow   `json:"header"`
	Rows   []TableRow `json:"rows"`
}

// TableRow is an ordered list of cells.
type TableRow struct {
	Cells []TableCell `json:"cells"`
}

// TableCell holds nested blocks. Cells may contain paragraphs and images
// but never nested tables.
type TableCell struct {
	Blocks []Block `json:"blocks"`
}

// NewTable creates a table with an empty header.
func NewTable() *TableBlock {
	return &TableBlock{Rows: make([]TableRow, 0)}
}

// IsEmpty returns true if the table has neither header cells nor body rows.
func (t *TableBlock) IsEmpty() bool {
	return len(t.Header.Cells) == 0 && len(t.Rows) == 0
}
