package render

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/multierr"

	"github.com/docfold/docx2md/internal/ir"
)

var mimeExtensions = map[string]string{
	"image/png":     ".png",
	"image/jpeg":    ".jpg",
	"image/gif":     ".gif",
	"image/bmp":     ".bmp",
	"image/tiff":    ".tiff",
	"image/svg+xml": ".svg",
	"image/emf":     ".emf",
	"image/wmf":     ".wmf",
}

// ExportAssets writes resources to outputDir, one physical file per unique
// content hash: the first occurrence of a hash wins the canonical path and
// later duplicates map to it without another write. Returns resource-id to
// relative-path mappings; paths are relative to outputDir's parent so the
// rendered markdown can reference them.
func ExportAssets(resources []ir.ResourceRef, outputDir string) (map[string]string, error) {
	assetMap := make(map[string]string, len(resources))
	if len(resources) == 0 {
		return assetMap, nil
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create assets directory: %w", err)
	}

	written := make(map[string]string) // sha256 -> relative path
	var errs error
	for _, res := range resources {
		if path, ok := written[res.SHA256]; ok {
			assetMap[res.ID] = path
			continue
		}

		filename := res.ID + mimeExtensions[res.MimeType]
		relative := filepath.Join(filepath.Base(outputDir), filename)
		if err := os.WriteFile(filepath.Join(outputDir, filename), res.Content, 0o644); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("failed to write asset %s: %w", res.ID, err))
			continue
		}
		assetMap[res.ID] = relative
		written[res.SHA256] = relative
	}
	return assetMap, errs
}
