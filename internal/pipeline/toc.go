package pipeline

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// ChapterInfo describes one written chapter for the index and manifest.
type ChapterInfo struct {
	Index int    `json:"index"`
	Title string `json:"title"`
	File  string `json:"file"`
}

// Manifest describes a completed conversion.
type Manifest struct {
	Metadata ManifestMetadata `json:"metadata"`
	Chapters []ChapterInfo    `json:"chapters"`
	Assets   []string         `json:"assets"`
}

// ManifestMetadata identifies the conversion source.
type ManifestMetadata struct {
	Source      string `json:"source"`
	Title       string `json:"title"`
	GeneratedAt string `json:"generated_at"`
}

// BuildIndex renders the table-of-contents markdown: the document title
// followed by one link per chapter.
func BuildIndex(title string, chapters []ChapterInfo) string {
	var sb strings.Builder
	sb.WriteString("# ")
	sb.WriteString(title)
	sb.WriteString("\n\n")
	for _, ch := range chapters {
		sb.WriteString(fmt.Sprintf("- [%s](chapters/%s)\n", ch.Title, ch.File))
	}
	return sb.String()
}

// BuildManifest assembles the manifest. Asset paths are sorted so repeated
// conversions produce identical output.
func BuildManifest(source, title string, chapters []ChapterInfo, assetMap map[string]string) *Manifest {
	seen := make(map[string]struct{}, len(assetMap))
	var assets []string
	for _, path := range assetMap {
		if _, ok := seen[path]; ok {
			continue
		}
		seen[path] = struct{}{}
		assets = append(assets, path)
	}
	sort.Strings(assets)

	return &Manifest{
		Metadata: ManifestMetadata{
			Source:      source,
			Title:       title,
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		},
		Chapters: chapters,
		Assets:   assets,
	}
}

// MarshalIndent serializes the manifest for writing.
func (m *Manifest) MarshalIndent() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal manifest: %w", err)
	}
	return data, nil
}
