package outline

import (
	"strings"

	"github.com/docfold/docx2md/internal/classify"
	"github.com/docfold/docx2md/internal/ir"
)

// ChapterRules controls how a document splits into chapters.
type ChapterRules struct {
	// Level is the heading level that starts a new chapter.
	Level int
	// ZeroChapterSections lists titles (lower-cased, numbering stripped)
	// that group with the title page into chapter zero.
	ZeroChapterSections []string
}

// DefaultChapterRules splits on level-1 headings and folds the annotation
// and table-of-contents sections into chapter zero.
func DefaultChapterRules() ChapterRules {
	return ChapterRules{
		Level:               1,
		ZeroChapterSections: []string{"аннотация", "содержание", `ао "нтц ит роса"`},
	}
}

// SplitChapters splits a document into per-chapter documents. Blocks before
// the first real chapter heading, and sections named in the zero-chapter
// list, become the leading chapter.
func SplitChapters(doc *ir.Document, rules ChapterRules) []*ir.Document {
	if len(doc.Blocks) == 0 {
		return nil
	}
	if rules.Level == 0 {
		rules.Level = 1
	}
	zero := make(map[string]struct{}, len(rules.ZeroChapterSections))
	for _, title := range rules.ZeroChapterSections {
		zero[strings.ToLower(strings.TrimSpace(title))] = struct{}{}
	}

	var zeroBlocks, mainBlocks []ir.Block
	collectingZero := true
	for _, block := range doc.Blocks {
		if block.Type == ir.BlockTypeHeading && block.Heading.Level == rules.Level {
			cleaned := strings.ToLower(classify.StripNumberPrefix(block.Heading.Text))
			if _, ok := zero[cleaned]; ok {
				zeroBlocks = append(zeroBlocks, block)
				collectingZero = true
				continue
			}
			collectingZero = false
			mainBlocks = append(mainBlocks, block)
			continue
		}
		if collectingZero {
			zeroBlocks = append(zeroBlocks, block)
		} else {
			mainBlocks = append(mainBlocks, block)
		}
	}

	var chapters []*ir.Document
	if len(zeroBlocks) > 0 {
		chapters = append(chapters, &ir.Document{Blocks: zeroBlocks})
	}

	var current []ir.Block
	for _, block := range mainBlocks {
		if block.Type == ir.BlockTypeHeading && block.Heading.Level == rules.Level && len(current) > 0 {
			chapters = append(chapters, &ir.Document{Blocks: current})
			current = []ir.Block{block}
			continue
		}
		current = append(current, block)
	}
	if len(current) > 0 {
		chapters = append(chapters, &ir.Document{Blocks: current})
	}
	return chapters
}
