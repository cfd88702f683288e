package classify

import "testing"

func TestExtractNumberAndTitle(t *testing.T) {
	cases := []struct {
		in     string
		number string
		title  string
	}{
		{"1.2 Introduction", "1.2", "Introduction"},
		{"Introduction", "", "Introduction"},
		{"3.4.5 — Configuration", "3.4.5", "Configuration"},
		{"Б.1 Протоколы", "Б.1", "Протоколы"},
		{"Приложение А. Конфигурация", "Приложение А", "Конфигурация"},
		{"A.1 Configuration", "A.1", "Configuration"},
		{"Appendix B Implementation", "Appendix B", "Implementation"},
	}
	for _, tc := range cases {
		number, title := ExtractNumberAndTitle(tc.in)
		if number != tc.number || title != tc.title {
			t.Errorf("%q: got (%q, %q), want (%q, %q)", tc.in, number, title, tc.number, tc.title)
		}
	}
}

func TestCleanHeadingText(t *testing.T) {
	cases := map[string]string{
		"3.7 Настройка":       "Настройка",
		"3.4.3 — Функции":     "Функции",
		"1) Введение":         "Введение",
		"Б.1 Протоколы":       "Протоколы",
		"IV. Chapter":         "Chapter",
		"Plain title":         "Plain title",
	}
	for in, want := range cases {
		if got := CleanHeadingText(in); got != want {
			t.Errorf("%q: got %q, want %q", in, got, want)
		}
	}
}

func TestStripNumberPrefix(t *testing.T) {
	if got := StripNumberPrefix("1.2.3. Заголовок"); got != "Заголовок" {
		t.Errorf("got %q", got)
	}
	if got := StripNumberPrefix("Заголовок"); got != "Заголовок" {
		t.Errorf("got %q", got)
	}
}

func TestExtractLetterIndex(t *testing.T) {
	cases := map[string]int{
		"Б.1":          2,
		"Приложение А": 1,
		"В.2.3":        3,
		"A.1":          1,
		"Appendix B":   2,
		"4.2":          0,
		"":             0,
	}
	for in, want := range cases {
		if got := ExtractLetterIndex(in); got != want {
			t.Errorf("%q: got %d, want %d", in, got, want)
		}
	}
}
