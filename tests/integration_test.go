package tests

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/docfold/docx2md/internal/config"
	"github.com/docfold/docx2md/internal/pipeline"
)

const documentXML = `<w:document
  xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"
  xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"
  xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"
  xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
<w:body>
  <w:p><w:r><w:t>Руководство администратора</w:t></w:r></w:p>

  <w:p><w:pPr><w:outlineLvl w:val="0"/></w:pPr><w:r><w:t>Введение</w:t></w:r></w:p>
  <w:p><w:r><w:t>Система устанавливается из репозитория.</w:t></w:r></w:p>

  <w:p><w:pPr><w:outlineLvl w:val="1"/></w:pPr><w:r><w:t>Требования</w:t></w:r></w:p>
  <w:p><w:pPr><w:numPr><w:ilvl w:val="0"/><w:numId w:val="7"/></w:numPr></w:pPr><w:r><w:t>процессор x86_64</w:t></w:r></w:p>
  <w:p><w:pPr><w:numPr><w:ilvl w:val="0"/><w:numId w:val="7"/></w:numPr></w:pPr><w:r><w:t>4 ГБ памяти</w:t></w:r></w:p>

  <w:p><w:pPr><w:outlineLvl w:val="0"/></w:pPr><w:r><w:t>Установка</w:t></w:r></w:p>
  <w:p><w:pPr><w:pStyle w:val="cmd"/></w:pPr><w:r><w:t>sudo dnf install nginx</w:t></w:r></w:p>
  <w:p><w:pPr><w:pStyle w:val="cmd"/></w:pPr><w:r><w:t>systemctl enable nginx</w:t></w:r></w:p>

  <w:p><w:r>
    <w:drawing><wp:inline><wp:docPr id="1" name="scheme.png"/>
      <a:blip r:embed="rId5"/>
    </wp:inline></w:drawing>
  </w:r></w:p>
  <w:p><w:r><w:t>Рисунок 1 – Схема развертывания</w:t></w:r></w:p>

  <w:p><w:r><w:t>Примечание – после установки перезапустите службу.</w:t></w:r></w:p>
</w:body>
</w:document>`

const stylesXML = `<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:style w:type="paragraph" w:styleId="cmd"><w:name w:val="ROSA_Команда"/></w:style>
</w:styles>`

const numberingXML = `<w:numbering xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:abstractNum w:abstractNumId="0">
    <w:lvl w:ilvl="0"><w:numFmt w:val="bullet"/></w:lvl>
  </w:abstractNum>
  <w:num w:numId="7"><w:abstractNumId w:val="0"/></w:num>
</w:numbering>`

const relsXML = `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId5" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="media/image1.png"/>
</Relationships>`

var pngBytes = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}

func writeFixture(t *testing.T, dir string) string {
	t.Helper()
	parts := map[string][]byte{
		"word/document.xml":            []byte(documentXML),
		"word/styles.xml":              []byte(stylesXML),
		"word/numbering.xml":           []byte(numberingXML),
		"word/_rels/document.xml.rels": []byte(relsXML),
		"word/media/image1.png":        pngBytes,
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range parts {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		if _, err := w.Write(content); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	path := filepath.Join(dir, "admin-guide.docx")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFullConversion(t *testing.T) {
	tmp := t.TempDir()
	input := writeFixture(t, tmp)

	cfg := config.DefaultConfig()
	cfg.Pipeline.OutputDir = filepath.Join(tmp, "out")
	cfg.Pipeline.HierarchyLayout = true

	result, err := pipeline.New(cfg, nil).Process(context.Background(), input)
	if err != nil {
		t.Fatal(err)
	}

	// Title page + two numbered chapters.
	if len(result.Chapters) != 3 {
		t.Fatalf("got %d chapters: %+v", len(result.Chapters), result.Chapters)
	}

	readChapter := func(file string) string {
		data, err := os.ReadFile(filepath.Join(result.OutputDir, "chapters", file))
		if err != nil {
			t.Fatalf("chapter %s: %v", file, err)
		}
		return string(data)
	}

	intro := readChapter(result.Chapters[1].File)
	if !strings.Contains(intro, "# Введение") {
		t.Errorf("intro heading missing:\n%s", intro)
	}
	if !strings.Contains(intro, "## 1.1 Требования") {
		t.Errorf("numbered subsection missing:\n%s", intro)
	}
	if !strings.Contains(intro, "- процессор x86_64\n- 4 ГБ памяти") {
		t.Errorf("bullet list missing:\n%s", intro)
	}

	install := readChapter(result.Chapters[2].File)
	if !strings.Contains(install, "```bash\nsudo dnf install nginx\nsystemctl enable nginx\n```") {
		t.Errorf("code listing missing:\n%s", install)
	}
	if !strings.Contains(install, "![Image image1](../assets/image1.png)") {
		t.Errorf("image link missing:\n%s", install)
	}
	if !strings.Contains(install, "*Рисунок 1 – Схема развертывания*") {
		t.Errorf("caption missing:\n%s", install)
	}
	// The caption paragraph is folded into the image, not duplicated.
	if strings.Count(install, "Рисунок 1") != 1 {
		t.Errorf("caption duplicated:\n%s", install)
	}
	if !strings.Contains(install, "> Примечание") {
		t.Errorf("note quote missing:\n%s", install)
	}

	// Extracted asset exists on disk.
	if _, err := os.Stat(filepath.Join(result.OutputDir, "assets", "image1.png")); err != nil {
		t.Errorf("asset not exported: %v", err)
	}

	// Index links every chapter.
	indexData, err := os.ReadFile(result.IndexPath)
	if err != nil {
		t.Fatal(err)
	}
	for _, ch := range result.Chapters {
		if !strings.Contains(string(indexData), "(chapters/"+ch.File+")") {
			t.Errorf("index missing link to %s", ch.File)
		}
	}

	// Manifest round-trips and lists the asset.
	manifestData, err := os.ReadFile(result.ManifestPath)
	if err != nil {
		t.Fatal(err)
	}
	var manifest pipeline.Manifest
	if err := json.Unmarshal(manifestData, &manifest); err != nil {
		t.Fatal(err)
	}
	if len(manifest.Assets) != 1 || manifest.Assets[0] != "assets/image1.png" {
		t.Errorf("manifest assets: %v", manifest.Assets)
	}

	// Hierarchy layout holds one directory per chapter plus the
	// front-matter directory for the title page.
	entries, err := os.ReadDir(filepath.Join(result.OutputDir, "sections"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Errorf("section dirs: %d", len(entries))
	}
}

func TestConversionRejectsLegacyDoc(t *testing.T) {
	tmp := t.TempDir()
	// OLE magic bytes without a real compound file body.
	path := filepath.Join(tmp, "old.doc")
	ole := append([]byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}, make([]byte, 512)...)
	if err := os.WriteFile(path, ole, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.DefaultConfig()
	cfg.Pipeline.OutputDir = filepath.Join(tmp, "out")
	if _, err := pipeline.New(cfg, nil).Process(context.Background(), path); err == nil {
		t.Error("expected error for legacy OLE input")
	}
}
