package classify

import "testing"

func TestBuildSectionMap(t *testing.T) {
	body := `<w:body>` +
		`<w:p><w:pPr><w:outlineLvl w:val="0"/></w:pPr><w:r><w:t>4 Установка системы</w:t></w:r></w:p>` +
		`<w:p><w:pPr><w:pStyle w:val="TOC1"/></w:pPr><w:r><w:t>4.1 Настройка сервера 17</w:t></w:r></w:p>` +
		plainPara("4.2 Обновление компонентов") +
		plainPara("Обычный текст абзаца") +
		`<w:p><w:pPr><w:outlineLvl w:val="0"/></w:pPr><w:r><w:t>5 – </w:t></w:r></w:p>` +
		`</w:body>`
	m := BuildSectionMap(parseParagraphs(t, body))

	if got := m["4"]; got != "Установка системы" {
		t.Errorf("section 4: got %q", got)
	}
	// TOC entries lose their trailing page number.
	if got := m["4.1"]; got != "Настройка сервера" {
		t.Errorf("section 4.1: got %q", got)
	}
	if got := m["4.2"]; got != "Обновление компонентов" {
		t.Errorf("section 4.2: got %q", got)
	}
	if _, ok := m["5"]; ok {
		t.Error("dash-only title entered the map")
	}
}

func TestReplaceCrossReferences(t *testing.T) {
	m := map[string]string{"4.1": "Настройка сервера", "2": "Требования"}

	got := ReplaceCrossReferences("подробнее см. п. 4.1 данного документа", m)
	want := "подробнее см. п. Настройка сервера данного документа"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	got = ReplaceCrossReferences("описано в пункте 2 выше", m)
	if got != "описано в пункте Требования выше" {
		t.Errorf("got %q", got)
	}
}

func TestReplaceCrossReferencesUnknownNumber(t *testing.T) {
	m := map[string]string{"4.1": "Настройка сервера"}
	in := "см. п. 9.9 для справки"
	if got := ReplaceCrossReferences(in, m); got != in {
		t.Errorf("unknown reference rewritten: %q", got)
	}
}

func TestReplaceCrossReferencesEmptyInputs(t *testing.T) {
	if got := ReplaceCrossReferences("", map[string]string{"1": "x"}); got != "" {
		t.Errorf("got %q", got)
	}
	in := "см. п. 4.1"
	if got := ReplaceCrossReferences(in, nil); got != in {
		t.Errorf("got %q", got)
	}
}
