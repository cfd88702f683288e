package docx

import (
	"archive/zip"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/h2non/filetype"
	"github.com/maruel/natural"

	"github.com/docfold/docx2md/internal/ir"
)

// extMimeTypes is the fallback for media whose magic bytes are not
// recognized (e.g. SVG, which has no fixed signature).
var extMimeTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".tiff": "image/tiff",
	".tif":  "image/tiff",
	".svg":  "image/svg+xml",
	".emf":  "image/emf",
	".wmf":  "image/wmf",
}

// extractMedia reads every file under word/media/ into a ResourceRef.
// Entries are ordered naturally (image2 before image10) so that the
// first-occurrence-wins dedup contract is deterministic.
func extractMedia(zr *zip.Reader) ([]ir.ResourceRef, map[string]ir.ResourceRef) {
	var names []string
	files := make(map[string]*zip.File)
	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, mediaPrefix) {
			names = append(names, f.Name)
			files[f.Name] = f
		}
	}
	sort.Sort(natural.StringSlice(names))

	var resources []ir.ResourceRef
	byPath := make(map[string]ir.ResourceRef)
	for _, name := range names {
		content := readAll(files[name])
		if len(content) == 0 {
			continue
		}
		base := path.Base(name)
		ext := strings.ToLower(path.Ext(base))
		sum := sha256.Sum256(content)
		res := ir.ResourceRef{
			ID:       strings.TrimSuffix(base, path.Ext(base)),
			MimeType: sniffMime(content, ext),
			Content:  content,
			SHA256:   hex.EncodeToString(sum[:]),
		}
		resources = append(resources, res)
		byPath[name] = res
	}
	return resources, byPath
}

// sniffMime detects the media type from content, falling back to the file
// extension and finally to application/octet-stream.
func sniffMime(content []byte, ext string) string {
	if kind, err := filetype.Match(content); err == nil && kind != filetype.Unknown {
		return kind.MIME.Value
	}
	if mime, ok := extMimeTypes[ext]; ok {
		return mime
	}
	return "application/octet-stream"
}

func readAll(f *zip.File) []byte {
	rc, err := f.Open()
	if err != nil {
		return nil
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil
	}
	return data
}
