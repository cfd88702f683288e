package classify

import "testing"

const drawingPara = `<w:p><w:r><w:drawing><wp:docPr name="Picture 1"/><a:blip r:embed="rId5"/></w:drawing></w:r></w:p>`

func TestFindCaptionCompleteNearby(t *testing.T) {
	body := `<w:body>` +
		drawingPara +
		plainPara(`Рисунок 4 – Мобильная версия раздела`) +
		`</w:body>`
	paragraphs := parseParagraphs(t, body)
	r := NewCaptionResolver(nil, paragraphs)

	caption, captionPara := r.FindCaption(paragraphs[0], "")
	if caption != "Рисунок 4 – Мобильная версия раздела" {
		t.Errorf("got caption %q", caption)
	}
	if captionPara != paragraphs[1] {
		t.Error("caption paragraph not reported for suppression")
	}
}

func TestFindCaptionEnglishFigure(t *testing.T) {
	body := `<w:body>` +
		plainPara(`Figure 4 – Mobile section`) +
		drawingPara +
		`</w:body>`
	paragraphs := parseParagraphs(t, body)
	r := NewCaptionResolver(nil, paragraphs)

	caption, _ := r.FindCaption(paragraphs[1], "")
	if caption != "Figure 4 – Mobile section" {
		t.Errorf("got caption %q", caption)
	}
}

func TestFindCaptionSplitNumberAndText(t *testing.T) {
	seqPara := `<w:p><w:r><w:instrText> SEQ picnum \* ARABIC </w:instrText></w:r>` +
		`<w:r><w:fldChar w:fldCharType="separate"/><w:t>7</w:t></w:r></w:p>`
	body := `<w:body>` +
		seqPara +
		drawingPara +
		styledPara("cap", "Схема взаимодействия компонентов системы") +
		`</w:body>`
	paragraphs := parseParagraphs(t, body)
	r := NewCaptionResolver(map[string]string{"cap": "ROSA_Рисунок_Подпись"}, paragraphs)

	caption, _ := r.FindCaption(paragraphs[1], "")
	if caption != "Рисунок 7 – Схема взаимодействия компонентов системы" {
		t.Errorf("got caption %q", caption)
	}
}

func TestFindCaptionNumberFromImageName(t *testing.T) {
	body := `<w:body>` +
		drawingPara +
		styledPara("cap", "Главное окно приложения") +
		`</w:body>`
	paragraphs := parseParagraphs(t, body)
	r := NewCaptionResolver(map[string]string{"cap": "Caption"}, paragraphs)

	caption, _ := r.FindCaption(paragraphs[0], "Рисунок 12")
	if caption != "Рисунок 12 – Главное окно приложения" {
		t.Errorf("got caption %q", caption)
	}
}

func TestFindCaptionStopsAtNextImage(t *testing.T) {
	body := `<w:body>` +
		drawingPara +
		drawingPara +
		styledPara("cap", "Подпись второго рисунка без номера здесь") +
		`</w:body>`
	paragraphs := parseParagraphs(t, body)
	r := NewCaptionResolver(nil, paragraphs)

	caption, _ := r.FindCaption(paragraphs[0], "")
	if caption != "" {
		t.Errorf("search crossed another image: got %q", caption)
	}
}

func TestFindCaptionUnknownParagraph(t *testing.T) {
	paragraphs := parseParagraphs(t, `<w:body>`+plainPara("text")+`</w:body>`)
	stray := parseParagraph(t, drawingPara)
	r := NewCaptionResolver(nil, paragraphs)
	if caption, _ := r.FindCaption(stray, ""); caption != "" {
		t.Errorf("got %q for paragraph outside the body", caption)
	}
}

func TestIsCaptionParagraph(t *testing.T) {
	r := NewCaptionResolver(map[string]string{"cap": "ROSA_Рисунок_Номер"}, nil)
	if !r.IsCaptionParagraph(parseParagraph(t, styledPara("cap", "любой текст"))) {
		t.Error("caption style not recognized")
	}
	if !r.IsCaptionParagraph(parseParagraph(t, plainPara("Рисунок 3 – Структура"))) {
		t.Error("caption text shape not recognized")
	}
	if r.IsCaptionParagraph(parseParagraph(t, plainPara("Обычный абзац текста"))) {
		t.Error("plain paragraph recognized as caption")
	}
}
