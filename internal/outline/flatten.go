package outline

import (
	"fmt"

	"github.com/docfold/docx2md/internal/ir"
)

// FlatSection is one entry of the flattened projection: a chapter
// directory (top-level sections and promoted orphans) or a chapter file
// (second-level sections). Content of deeper sections is folded into the
// nearest enclosing entry, preserving document order.
type FlatSection struct {
	IsDir  bool
	Number []int
	Title  string
	Blocks []ir.Block
}

// Code returns the six-digit code of the section, two digits per level,
// zero-padded for absent levels ("040100" for 4.1).
func (f FlatSection) Code() string {
	part := func(i int) int {
		if i < len(f.Number) {
			return f.Number[i]
		}
		return 0
	}
	return fmt.Sprintf("%02d%02d%02d", part(0), part(1), part(2))
}

// Flatten projects the section forest into the chapter layout: every root
// becomes a directory entry, every level-2 child a file entry, and level-3+
// sections fold their blocks into the nearest emitted entry. The projection
// never reorders or drops blocks.
func Flatten(roots []*Section) []FlatSection {
	var out []FlatSection
	for _, root := range roots {
		dir := FlatSection{
			IsDir:  true,
			Number: root.Number,
			Title:  root.Title,
			Blocks: append([]ir.Block(nil), root.Blocks...),
		}
		var files []FlatSection
		for _, child := range root.Children {
			if child.Level == 2 {
				files = append(files, FlatSection{
					Number: padNumber(child.Number, 2),
					Title:  child.Title,
					Blocks: fold(child),
				})
				continue
			}
			// A deeper child directly under the root appears only before
			// any level-2 sibling, so appending keeps document order.
			dir.Blocks = append(dir.Blocks, fold(child)...)
		}
		out = append(out, dir)
		out = append(out, files...)
	}
	return out
}

// fold returns the section's blocks followed by all descendant blocks,
// depth-first in document order.
func fold(sec *Section) []ir.Block {
	blocks := append([]ir.Block(nil), sec.Blocks...)
	for _, child := range sec.Children {
		blocks = append(blocks, fold(child)...)
	}
	return blocks
}

func padNumber(nums []int, width int) []int {
	out := append([]int(nil), nums...)
	for len(out) < width {
		out = append(out, 0)
	}
	return out
}
