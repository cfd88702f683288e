package classify

import "testing"

func TestShouldReorderCommand(t *testing.T) {
	det := NewCodeDetector(map[string]string{"cmd": "ROSA_Команда"}, nil, nil)
	imagePara := parseParagraph(t, drawingPara)
	textPara := parseParagraph(t, plainPara("просто текст"))

	current := parseParagraph(t, plainPara("tldr tar"))
	if !ShouldReorderCommand(current, imagePara, "tldr tar", det) {
		t.Error("command before image not detected")
	}
	if ShouldReorderCommand(current, textPara, "tldr tar", det) {
		t.Error("reorder triggered without an image in the next paragraph")
	}

	styled := parseParagraph(t, styledPara("cmd", "dnf install httpd"))
	if !ShouldReorderCommand(styled, imagePara, "", det) {
		t.Error("code-styled command not detected")
	}

	prose := parseParagraph(t, plainPara("Далее откроется окно настройки, показанное ниже."))
	if ShouldReorderCommand(prose, imagePara, "Далее откроется окно настройки, показанное ниже.", det) {
		t.Error("prose detected as command")
	}
}

func TestIsNoteParagraph(t *testing.T) {
	if !IsNoteParagraph("Примечание – перезапустите службу после изменения") {
		t.Error("note not detected")
	}
	if !IsNoteParagraph("  Примечания — два замечания ниже") {
		t.Error("plural note not detected")
	}
	if IsNoteParagraph("Примечательно, что сервис работает") {
		t.Error("false positive on similar word")
	}
}

func TestIsTableCaption(t *testing.T) {
	yes := []string{
		"Таблица 3 – Требования к серверу",
		"Table 2 – Hardware requirements",
		"Требования к аппаратным средствам приведены ниже",
	}
	for _, s := range yes {
		if !IsTableCaption(s) {
			t.Errorf("%q not detected as table caption", s)
		}
	}
	if IsTableCaption("Выполните установку пакета") {
		t.Error("plain instruction detected as table caption")
	}
}
