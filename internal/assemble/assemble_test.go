package assemble

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/docfold/docx2md/internal/docx"
	"github.com/docfold/docx2md/internal/ir"
)

func buildPackage(t *testing.T, parts map[string]string) *docx.Package {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range parts {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("reopen zip: %v", err)
	}
	pkg, err := docx.New(zr)
	if err != nil {
		t.Fatalf("open package: %v", err)
	}
	return pkg
}

func document(body string) string {
	return `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		body + `</w:body></w:document>`
}

func heading(level int, text string) string {
	lvl := string(rune('0' + level - 1))
	return `<w:p><w:pPr><w:outlineLvl w:val="` + lvl + `"/></w:pPr><w:r><w:t>` + text + `</w:t></w:r></w:p>`
}

func plain(text string) string {
	return `<w:p><w:r><w:t>` + text + `</w:t></w:r></w:p>`
}

func TestAssembleHeadingsGetNumbers(t *testing.T) {
	pkg := buildPackage(t, map[string]string{
		"word/document.xml": document(
			heading(1, "Введение") +
				plain("Первый абзац.") +
				heading(2, "Настройка") +
				plain("Второй абзац."),
		),
	})
	doc := Assemble(pkg, Options{}, nil)

	if len(doc.Blocks) != 4 {
		t.Fatalf("got %d blocks, want 4", len(doc.Blocks))
	}
	h1 := doc.Blocks[0]
	if h1.Type != ir.BlockTypeHeading || h1.Heading.Level != 1 {
		t.Fatalf("block 0 is not an H1: %+v", h1)
	}
	// Chapter titles carry no number in their text.
	if h1.Heading.Text != "Введение" {
		t.Errorf("h1 text: got %q", h1.Heading.Text)
	}
	h2 := doc.Blocks[2]
	if h2.Type != ir.BlockTypeHeading || h2.Heading.Level != 2 {
		t.Fatalf("block 2 is not an H2: %+v", h2)
	}
	if h2.Heading.Text != "1.1 Настройка" {
		t.Errorf("h2 text: got %q", h2.Heading.Text)
	}
	if h2.Heading.Number != "1.1" {
		t.Errorf("h2 number: got %q", h2.Heading.Number)
	}
}

func TestAssembleCodeAccumulation(t *testing.T) {
	styles := `<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:style w:type="paragraph" w:styleId="cmd"><w:name w:val="ROSA_Команда"/></w:style>
</w:styles>`
	codeLine := func(text string) string {
		return `<w:p><w:pPr><w:pStyle w:val="cmd"/></w:pPr><w:r><w:t>` + text + `</w:t></w:r></w:p>`
	}
	pkg := buildPackage(t, map[string]string{
		"word/document.xml": document(
			codeLine("dnf install httpd") +
				codeLine("systemctl start httpd") +
				plain("Обычный текст после листинга."),
		),
		"word/styles.xml": styles,
	})
	doc := Assemble(pkg, Options{}, nil)

	if len(doc.Blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(doc.Blocks))
	}
	code := doc.Blocks[0]
	if code.Type != ir.BlockTypeCode {
		t.Fatalf("block 0 is %s, want code", code.Type)
	}
	if code.Code.Code != "dnf install httpd\nsystemctl start httpd" {
		t.Errorf("code: got %q", code.Code.Code)
	}
	if code.Code.Language != "bash" || code.Code.Title != "Terminal" {
		t.Errorf("language/title: got %q/%q", code.Code.Language, code.Code.Title)
	}
}

func TestAssembleBareBashLinesStartCode(t *testing.T) {
	pkg := buildPackage(t, map[string]string{
		"word/document.xml": document(
			plain("Выполните команду:") +
				plain("docker compose up -d") +
				plain("docker ps") +
				plain("Проверьте вывод утилиты."),
		),
	})
	doc := Assemble(pkg, Options{}, nil)

	if len(doc.Blocks) != 3 {
		t.Fatalf("got %d blocks, want 3", len(doc.Blocks))
	}
	code := doc.Blocks[1]
	if code.Type != ir.BlockTypeCode || code.Code.Code != "docker compose up -d\ndocker ps" {
		t.Fatalf("block 1: %+v", code)
	}
}

func TestAssembleNoteBecomesQuote(t *testing.T) {
	pkg := buildPackage(t, map[string]string{
		"word/document.xml": document(plain("Примечание – сервис требует перезапуска")),
	})
	doc := Assemble(pkg, Options{}, nil)

	if len(doc.Blocks) != 1 || doc.Blocks[0].Type != ir.BlockTypeParagraph {
		t.Fatalf("blocks: %+v", doc.Blocks)
	}
	if !doc.Blocks[0].Paragraph.Quote {
		t.Error("note paragraph not marked as quote")
	}
}

func TestAssembleNestedLists(t *testing.T) {
	numbering := `<w:numbering xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:abstractNum w:abstractNumId="0"><w:lvl w:ilvl="0"><w:numFmt w:val="bullet"/></w:lvl></w:abstractNum>
  <w:num w:numId="1"><w:abstractNumId w:val="0"/></w:num>
</w:numbering>`
	item := func(ilvl int, text string) string {
		lvl := string(rune('0' + ilvl))
		return `<w:p><w:pPr><w:numPr><w:ilvl w:val="` + lvl + `"/><w:numId w:val="1"/></w:numPr></w:pPr>` +
			`<w:r><w:t>` + text + `</w:t></w:r></w:p>`
	}
	pkg := buildPackage(t, map[string]string{
		"word/document.xml": document(
			item(0, "первый пункт") +
				item(1, "вложенный пункт") +
				item(0, "второй пункт"),
		),
		"word/numbering.xml": numbering,
	})
	doc := Assemble(pkg, Options{}, nil)

	if len(doc.Blocks) != 1 || doc.Blocks[0].Type != ir.BlockTypeList {
		t.Fatalf("blocks: %+v", doc.Blocks)
	}
	list := doc.Blocks[0].List
	if list.Ordered {
		t.Error("bullet list marked ordered")
	}
	if len(list.Items) != 2 {
		t.Fatalf("got %d top items, want 2", len(list.Items))
	}
	first := list.Items[0]
	var nested *ir.ListBlock
	for _, b := range first.Blocks {
		if b.Type == ir.BlockTypeList {
			nested = b.List
		}
	}
	if nested == nil || len(nested.Items) != 1 {
		t.Fatalf("nested list missing or wrong size: %+v", first.Blocks)
	}
}

func TestAssembleTable(t *testing.T) {
	table := `<w:tbl>` +
		`<w:tr><w:tc><w:p><w:r><w:t>Имя</w:t></w:r></w:p></w:tc><w:tc><w:p><w:r><w:t>Значение</w:t></w:r></w:p></w:tc></w:tr>` +
		`<w:tr><w:tc><w:p><w:r><w:t>host</w:t></w:r></w:p></w:tc><w:tc><w:p><w:r><w:t>10.0.0.1</w:t></w:r></w:p></w:tc></w:tr>` +
		`</w:tbl>`
	pkg := buildPackage(t, map[string]string{
		"word/document.xml": document(table),
	})
	doc := Assemble(pkg, Options{}, nil)

	if len(doc.Blocks) != 1 || doc.Blocks[0].Type != ir.BlockTypeTable {
		t.Fatalf("blocks: %+v", doc.Blocks)
	}
	tb := doc.Blocks[0].Table
	if len(tb.Header.Cells) != 2 || len(tb.Rows) != 1 {
		t.Fatalf("table shape: header %d cells, %d rows", len(tb.Header.Cells), len(tb.Rows))
	}
	cell := tb.Rows[0].Cells[1]
	if len(cell.Blocks) != 1 || cell.Blocks[0].Paragraph.Text() != "10.0.0.1" {
		t.Errorf("cell content: %+v", cell.Blocks)
	}
}

func TestAssembleFormattedListInlines(t *testing.T) {
	numbering := `<w:numbering xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:abstractNum w:abstractNumId="0"><w:lvl w:ilvl="0"><w:numFmt w:val="decimal"/></w:lvl></w:abstractNum>
  <w:num w:numId="1"><w:abstractNumId w:val="0"/></w:num>
</w:numbering>`
	item := `<w:p><w:pPr><w:numPr><w:ilvl w:val="0"/><w:numId w:val="1"/></w:numPr></w:pPr>` +
		`<w:r><w:rPr><w:b/></w:rPr><w:t>флаг</w:t></w:r>` +
		`<w:r><w:t> включает отладку</w:t></w:r></w:p>`
	pkg := buildPackage(t, map[string]string{
		"word/document.xml":  document(item),
		"word/numbering.xml": numbering,
	})
	doc := Assemble(pkg, Options{}, nil)

	if len(doc.Blocks) != 1 || doc.Blocks[0].Type != ir.BlockTypeList {
		t.Fatalf("blocks: %+v", doc.Blocks)
	}
	list := doc.Blocks[0].List
	if !list.Ordered {
		t.Error("decimal list not ordered")
	}
	para := list.Items[0].Blocks[0].Paragraph
	if len(para.Inlines) != 2 {
		t.Fatalf("inlines: %+v", para.Inlines)
	}
	if para.Inlines[0].Type != ir.InlineBold || para.Inlines[0].Content != "флаг" {
		t.Errorf("first inline: %+v", para.Inlines[0])
	}
	if para.Inlines[1].Type != ir.InlineText {
		t.Errorf("second inline: %+v", para.Inlines[1])
	}
}

func TestAssembleImageWithCaption(t *testing.T) {
	rels := `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId5" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="media/image1.png"/>
</Relationships>`
	imagePara := `<w:p><w:r><w:drawing><wp:docPr name="Picture 1"/><a:blip r:embed="rId5"/></w:drawing></w:r></w:p>`
	pkg := buildPackage(t, map[string]string{
		"word/document.xml": document(
			imagePara + plain("Рисунок 3 – Структура каталогов"),
		),
		"word/_rels/document.xml.rels": rels,
		"word/media/image1.png":        "\x89PNG\r\n\x1a\nfakedata",
	})
	doc := Assemble(pkg, Options{}, nil)

	if len(doc.Blocks) != 1 {
		t.Fatalf("got %d blocks, want 1 (caption paragraph suppressed): %+v", len(doc.Blocks), doc.Blocks)
	}
	img := doc.Blocks[0]
	if img.Type != ir.BlockTypeImage {
		t.Fatalf("block 0 is %s", img.Type)
	}
	if img.Image.ResourceID != "image1" {
		t.Errorf("resource id: got %q", img.Image.ResourceID)
	}
	if img.Image.Caption != "Рисунок 3 – Структура каталогов" {
		t.Errorf("caption: got %q", img.Image.Caption)
	}
}

func TestAssembleCommandBeforeImageReorder(t *testing.T) {
	rels := `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId5" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="media/image1.png"/>
</Relationships>`
	imagePara := `<w:p><w:r><w:drawing><wp:docPr name="Screenshot"/><a:blip r:embed="rId5"/></w:drawing></w:r></w:p>`
	pkg := buildPackage(t, map[string]string{
		"word/document.xml": document(
			plain("tldr tar") + imagePara,
		),
		"word/_rels/document.xml.rels": rels,
		"word/media/image1.png":        "\x89PNG\r\n\x1a\nfakedata",
	})
	doc := Assemble(pkg, Options{}, nil)

	if len(doc.Blocks) != 2 {
		t.Fatalf("got %d blocks, want 2: %+v", len(doc.Blocks), doc.Blocks)
	}
	if doc.Blocks[0].Type != ir.BlockTypeCode {
		t.Fatalf("block 0 is %s, want code", doc.Blocks[0].Type)
	}
	if doc.Blocks[0].Code.Code != "tldr tar" || doc.Blocks[0].Code.Title != "Terminal" {
		t.Errorf("command block: %+v", doc.Blocks[0].Code)
	}
	if doc.Blocks[1].Type != ir.BlockTypeImage {
		t.Errorf("block 1 is %s, want image", doc.Blocks[1].Type)
	}
}
