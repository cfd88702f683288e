package assemble

import (
	"github.com/beevik/etree"

	"github.com/docfold/docx2md/internal/ir"
)

// table converts a w:tbl element. The first row becomes the header; cells
// hold formatted paragraphs and any embedded images.
func (a *assembler) table(tbl *etree.Element) *ir.TableBlock {
	out := ir.NewTable()
	rows := tbl.FindElements("w:tr")
	if len(rows) == 0 {
		return out
	}

	out.Header = a.tableRow(rows[0])
	for _, tr := range rows[1:] {
		out.Rows = append(out.Rows, a.tableRow(tr))
	}
	return out
}

func (a *assembler) tableRow(tr *etree.Element) ir.TableRow {
	var row ir.TableRow
	for _, tc := range tr.FindElements("w:tc") {
		var cell ir.TableCell
		for _, p := range tc.FindElements("w:p") {
			for _, img := range a.imagesFor(p) {
				cell.Blocks = append(cell.Blocks, ir.ImageBlockOf(img))
			}
			if para := a.formattedInlines(p); para != nil {
				cell.Blocks = append(cell.Blocks, ir.ParagraphBlock(para))
			}
		}
		row.Cells = append(row.Cells, cell)
	}
	return row
}
