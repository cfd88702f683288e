package classify

import (
	"regexp"
	"strings"

	"github.com/beevik/etree"

	"github.com/docfold/docx2md/internal/docx"
)

var (
	numberedTextRe  = regexp.MustCompile(`^\d+(\.\d+)*\s`)
	sectionEntryRe  = regexp.MustCompile(`^(\d+(?:\.\d+)*)\s+(.+)`)
	trailingPagesRe = regexp.MustCompile(`\d+$`)

	// Leading boundary group instead of a lookbehind: group 1 is re-emitted
	// unchanged by the replacement.
	xrefRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(^|[^\pL\pN_])(п\.\s*)(\d+(?:\.\d+)*)`),
		regexp.MustCompile(`(?i)(^|[^\pL\pN_])(пункт[а-яё]*\s+)(\d+(?:\.\d+)*)`),
	}
)

// BuildSectionMap collects number-to-title pairs from every heading-like
// paragraph, including table-of-contents entries. Trailing digits are
// dropped from titles since TOC lines end with a page number.
func BuildSectionMap(paragraphs []*etree.Element) map[string]string {
	sectionMap := make(map[string]string)
	for _, p := range paragraphs {
		text := docx.Text(p)
		if text == "" {
			continue
		}

		isHeading := false
		if styleID := docx.StyleID(p); styleID != "" {
			lower := strings.ToLower(styleID)
			if strings.Contains(lower, "heading") || strings.HasPrefix(lower, "toc") {
				isHeading = true
			}
		}
		if docx.OutlineLevel(p) >= 0 {
			isHeading = true
		}
		if numberedTextRe.MatchString(text) {
			isHeading = true
		}
		if !isHeading {
			continue
		}

		m := sectionEntryRe.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		title := strings.TrimSpace(trailingPagesRe.ReplaceAllString(m[2], ""))
		if len([]rune(title)) > 5 && !strings.HasPrefix(title, "–") {
			sectionMap[m[1]] = title
		}
	}
	return sectionMap
}

// ReplaceCrossReferences rewrites numeric references like "п. 4.1" into
// "п. <section title>" when the section map knows the number. Unknown
// numbers are left untouched.
func ReplaceCrossReferences(text string, sectionMap map[string]string) string {
	if text == "" || len(sectionMap) == 0 {
		return text
	}
	for _, re := range xrefRes {
		text = re.ReplaceAllStringFunc(text, func(match string) string {
			m := re.FindStringSubmatch(match)
			title, ok := sectionMap[m[3]]
			if !ok {
				return match
			}
			prefix := strings.TrimRight(m[2], " \t") + " "
			return m[1] + prefix + title
		})
	}
	return text
}
