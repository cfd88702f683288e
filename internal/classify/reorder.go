package classify

import (
	"regexp"
	"strings"

	"github.com/beevik/etree"

	"github.com/docfold/docx2md/internal/docx"
)

var commandLineRes = []*regexp.Regexp{
	regexp.MustCompile(`^\s*(sudo\s+)?(docker|wget|curl|psql|createdb|apt|apt-get|dnf|systemctl|sh\b|touch|chmod|chown|echo|ls|cat|kubectl|helm|tldr|man\s+)\b`),
	regexp.MustCompile(`^\s*[\w\.-]+\s+[\w\.-]+\s*$`),
	regexp.MustCompile(`^\s*[a-zA-Z_][a-zA-Z0-9_]*\s+[a-zA-Z0-9_\.-]+\s*$`),
}

var noteRe = regexp.MustCompile(`^\s*Примечани[ея]\s*[-–—]`)

// ShouldReorderCommand reports whether the current paragraph is a shell
// command whose screenshot lives in the next paragraph. Such pairs are
// emitted command-first so the listing precedes its output.
func ShouldReorderCommand(current, next *etree.Element, currentText string, det *CodeDetector) bool {
	if len(docx.Drawings(next)) == 0 {
		return false
	}
	if text := strings.TrimSpace(currentText); text != "" {
		for _, re := range commandLineRes {
			if re.MatchString(text) {
				return true
			}
		}
	}
	if name := det.StyleName(current); name != "" && det.MatchesCodeStyle(name) {
		return true
	}
	return false
}

// IsNoteParagraph reports whether text opens with a note marker
// ("Примечание – ..."), which renders as a blockquote.
func IsNoteParagraph(text string) bool {
	return noteRe.MatchString(strings.TrimSpace(text))
}

// DefaultTableCaptionPatterns match paragraphs that describe an adjacent
// table and therefore must not be folded into a list.
var DefaultTableCaptionPatterns = []string{
	`^\s*Таблица\s+\d+\s*[-–—]\s*.+`,
	`^\s*Table\s+\d+\s*[-–—]\s*.+`,
	`^\s*Таблица\s+\d+\s*.+`,
	`^\s*Table\s+\d+\s*.+`,
	`^\s*[Тт]ребования\s+к\s+аппаратным\s+средствам.+`,
	`^\s*[Тт]ребования\s+к\s+программным\s+средствам.+`,
	`^\s*[Пп]араметры.+таблиц[еы].*`,
	`^\s*[Хх]арактеристики.+`,
	`^\s*[Оо]писание\s+(параметров|характеристик).+`,
	`^\s*[Сс]писок\s+(параметров|требований).+`,
}

var tableCaptionRes = compileAll(DefaultTableCaptionPatterns)

func compileAll(patterns []string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(patterns))
	for _, pat := range patterns {
		if re, err := regexp.Compile("(?i)" + pat); err == nil {
			res = append(res, re)
		}
	}
	return res
}

// IsTableCaption reports whether text is a table caption or description.
func IsTableCaption(text string) bool {
	text = strings.TrimSpace(text)
	for _, re := range tableCaptionRes {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
