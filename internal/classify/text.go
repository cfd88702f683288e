package classify

import (
	"regexp"
	"strings"
)

var (
	numberPrefixRe = regexp.MustCompile(`^\d+(?:\.\d+)*\.?\s*`)

	appendixRuRe  = regexp.MustCompile(`(?i)^\s*(Приложение\s+[А-ЯЁA-Z])\s*[.\s]*(?:[-–—]\s*)?(.*)`)
	appendixEnRe  = regexp.MustCompile(`(?i)^\s*(Appendix\s+[A-Z])\s*(?:[-–—]\s*)?(.*)`)
	letterDotRe   = regexp.MustCompile(`(?i)^\s*([А-ЯЁA-Z]\.\d+(?:\.\d+)*)\s*\.?\s*(?:[-–—]\s*)?(.*)`)
	numericRe     = regexp.MustCompile(`^\s*\(?(\d+(?:[.\-]\d+)*)\)?\.?\s*(?:[-–—]\s*)?(.*)`)
	romanPrefixRe = regexp.MustCompile(`^\s*[IVXLCDM]+\.\s*`)
)

// StripNumberPrefix removes a plain numeric prefix like "1.2.3. " from the
// start of text.
func StripNumberPrefix(text string) string {
	return strings.TrimSpace(numberPrefixRe.ReplaceAllString(strings.TrimSpace(text), ""))
}

// ExtractNumberAndTitle splits heading text into its number part and title.
// Handles numeric ("1.2 Introduction"), letter ("Б.1 Протоколы") and
// appendix ("Приложение А. Конфигурация", "Appendix B Implementation")
// shapes. The number is empty when the text has no recognizable prefix.
func ExtractNumberAndTitle(text string) (number, title string) {
	text = strings.TrimSpace(text)
	for _, re := range []*regexp.Regexp{appendixRuRe, appendixEnRe, letterDotRe} {
		if m := re.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
		}
	}
	if m := numericRe.FindStringSubmatch(text); m != nil {
		return m[1], strings.TrimSpace(m[2])
	}
	return "", text
}

// CleanHeadingText removes any numbering prefix, leaving the bare title.
func CleanHeadingText(text string) string {
	if number, title := ExtractNumberAndTitle(text); number != "" && title != "" {
		return title
	}
	if cleaned := romanPrefixRe.ReplaceAllString(text, ""); cleaned != text {
		return strings.TrimSpace(cleaned)
	}
	return strings.TrimSpace(text)
}

var appendixWordRe = regexp.MustCompile(`(?i)^\s*(?:Приложение|Appendix)\s+`)

// ExtractLetterIndex maps a letter-based number like "Б.1" or "Appendix B"
// to the letter's 1-based alphabet position, or 0 when there is no letter.
func ExtractLetterIndex(number string) int {
	number = appendixWordRe.ReplaceAllString(number, "")
	for _, r := range number {
		switch {
		case r >= 'А' && r <= 'Я':
			return int(r-'А') + 1
		case r == 'Ё':
			return 7
		case r >= 'A' && r <= 'Z':
			return int(r-'A') + 1
		}
	}
	return 0
}
