package pipeline

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestBuildIndex(t *testing.T) {
	chapters := []ChapterInfo{
		{Index: 0, Title: "АННОТАЦИЯ", File: "00-annotatsiya.md"},
		{Index: 1, Title: "1 Введение", File: "01-1-vvedenie.md"},
	}
	got := BuildIndex("руководство", chapters)

	if !strings.HasPrefix(got, "# руководство\n\n") {
		t.Errorf("index header: %q", got)
	}
	if !strings.Contains(got, "- [1 Введение](chapters/01-1-vvedenie.md)\n") {
		t.Errorf("index missing chapter link: %q", got)
	}
}

func TestBuildManifest(t *testing.T) {
	assetMap := map[string]string{
		"image1": "assets/image1.png",
		"image2": "assets/image1.png", // duplicate content, same path
		"image3": "assets/image3.png",
	}
	m := BuildManifest("doc.docx", "doc", []ChapterInfo{{Index: 1, Title: "1 A", File: "01-a.md"}}, assetMap)

	if len(m.Assets) != 2 {
		t.Fatalf("got %d assets, want deduplicated 2", len(m.Assets))
	}
	if m.Assets[0] != "assets/image1.png" || m.Assets[1] != "assets/image3.png" {
		t.Errorf("assets not sorted: %v", m.Assets)
	}
	if m.Metadata.Source != "doc.docx" {
		t.Errorf("source: %q", m.Metadata.Source)
	}
	if m.Metadata.GeneratedAt == "" {
		t.Error("generated_at is empty")
	}

	data, err := m.MarshalIndent()
	if err != nil {
		t.Fatal(err)
	}
	var roundTrip Manifest
	if err := json.Unmarshal(data, &roundTrip); err != nil {
		t.Fatalf("manifest is not valid JSON: %v", err)
	}
	if len(roundTrip.Chapters) != 1 || roundTrip.Chapters[0].File != "01-a.md" {
		t.Errorf("chapters did not round-trip: %+v", roundTrip.Chapters)
	}
}
