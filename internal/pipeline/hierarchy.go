package pipeline

import (
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"

	"github.com/docfold/docx2md/internal/ir"
	"github.com/docfold/docx2md/internal/outline"
	"github.com/docfold/docx2md/internal/render"
)

// ExportHierarchy writes the flattened section projection as a directory
// tree under root: every chapter becomes "{code}.{slug}/" holding an
// index.md, and every second-level section a "{code}.{slug}.md" file inside
// the chapter directory. Deeper sections were already folded by Flatten.
func ExportHierarchy(flat []outline.FlatSection, root string, assetMap map[string]string) error {
	currentDir := root
	for _, sec := range flat {
		name := sectionFileName(sec)
		content := render.Render(&ir.Document{Blocks: sec.Blocks}, assetMap)
		if sec.IsDir {
			currentDir = filepath.Join(root, name)
			if err := WriteText(filepath.Join(currentDir, "index.md"), content); err != nil {
				return err
			}
			continue
		}
		if err := WriteText(filepath.Join(currentDir, name+".md"), content); err != nil {
			return err
		}
	}
	return nil
}

// sectionFileName builds the sortable name "{code}.{slug}" for a section.
func sectionFileName(sec outline.FlatSection) string {
	s := slug.Make(sec.Title)
	if len(s) > defaultSlugMaxLength {
		s = strings.TrimRight(s[:defaultSlugMaxLength], "-")
	}
	if s == "" {
		s = "section"
	}
	return sec.Code() + "." + s
}
