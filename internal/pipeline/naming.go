package pipeline

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gosimple/slug"

	"github.com/docfold/docx2md/internal/classify"
	"github.com/docfold/docx2md/internal/ir"
)

const defaultSlugMaxLength = 60

// zeroChapterFallbackTitle names the leading chapter when it holds no
// section headings (title page only).
const zeroChapterFallbackTitle = "Титульный лист"

// ChapterTitle derives the display title of a chapter document. The leading
// chapter joins its section names; numbered chapters combine the section
// index with the cleaned heading text.
func ChapterTitle(chapter *ir.Document, index int) string {
	if index == 0 {
		var names []string
		for _, block := range chapter.Blocks {
			if block.Type == ir.BlockTypeHeading && block.Heading.Level == 1 {
				names = append(names, classify.StripNumberPrefix(block.Heading.Text))
			}
		}
		if len(names) == 0 {
			return zeroChapterFallbackTitle
		}
		return strings.Join(names, " и ")
	}

	for _, block := range chapter.Blocks {
		if block.Type == ir.BlockTypeHeading && block.Heading.Level == 1 {
			clean := classify.StripNumberPrefix(block.Heading.Text)
			return fmt.Sprintf("%d %s", index, clean)
		}
	}
	return strconv.Itoa(index)
}

// ChapterIndexFromH1 derives the chapter index from the number of the first
// top-level heading ("4.1" yields 4). Returns false when the chapter has no
// numbered top-level heading.
func ChapterIndexFromH1(chapter *ir.Document) (int, bool) {
	for _, block := range chapter.Blocks {
		if block.Type != ir.BlockTypeHeading || block.Heading.Level != 1 {
			continue
		}
		number := block.Heading.Number
		if number == "" {
			return 0, false
		}
		head, _, _ := strings.Cut(number, ".")
		n, err := strconv.Atoi(head)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// ChapterFilename builds the chapter file name from the index and title,
// e.g. "03-ustanovka.md". Titles transliterate and truncate to the slug
// limit; an empty slug falls back to "chapter".
func ChapterFilename(index int, title string, slugMax int) string {
	if slugMax <= 0 {
		slugMax = defaultSlugMaxLength
	}
	s := slug.Make(title)
	if len(s) > slugMax {
		s = strings.TrimRight(s[:slugMax], "-")
	}
	if s == "" {
		s = "chapter"
	}
	return fmt.Sprintf("%02d-%s.md", index, s)
}
