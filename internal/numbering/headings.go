package numbering

import (
	"strings"

	"github.com/beevik/etree"
	"github.com/gosimple/slug"

	"github.com/docfold/docx2md/internal/docx"
)

// NumberedHeading is one entry of the heading pre-pass: a body paragraph
// classified as a heading, with its reconstructed section number.
type NumberedHeading struct {
	Level  int
	Text   string
	Number string
	Anchor string
	NumID  string
	ILvl   int
}

// ExtractNumberedHeadings walks the body once and assigns a section number
// to every paragraph that levelOf classifies as a heading (levelOf returns
// 0 for non-headings). Headings with a live list reference get their number
// from the list counters; the rest get a synthetic dot-joined number that
// stays in step with the list-driven ones.
func ExtractNumberedHeadings(pkg *docx.Package, levelOf func(p *etree.Element) int) []NumberedHeading {
	defs := ParseDefinitions(pkg.NumberingXML)
	counters := NewCounters(defs)

	var headings []NumberedHeading
	for _, el := range pkg.BodyElements() {
		if !docx.IsParagraph(el) {
			continue
		}
		level := levelOf(el)
		if level < 1 {
			continue
		}
		text := docx.Text(el)
		if text == "" {
			continue
		}

		h := NumberedHeading{Level: level, Text: text}
		if numID, ilvl, ok := paragraphNumPr(pkg, el, level); ok {
			h.NumID = numID
			h.ILvl = ilvl
			h.Number = counters.Next(numID, ilvl)
			if isDecimalNumber(h.Number) {
				counters.SyncGlobal(h.Number)
			}
		} else {
			h.Number = counters.NextGlobal(level)
		}
		h.Anchor = slug.Make(strings.TrimSpace(h.Number + " " + text))
		headings = append(headings, h)
	}
	return headings
}

// paragraphNumPr resolves the numbering reference of a heading, preferring
// the paragraph's own numPr over the one inherited from its style.
func paragraphNumPr(pkg *docx.Package, p *etree.Element, level int) (string, int, bool) {
	if numID, ilvl, ok := docx.NumPr(p); ok {
		return numID, ilvl, true
	}
	styleID := docx.StyleID(p)
	if styleID == "" {
		return "", 0, false
	}
	numID, ok := pkg.StyleNums[styleID]
	if !ok || numID == "" || numID == "0" {
		return "", 0, false
	}
	return numID, level - 1, true
}

func isDecimalNumber(number string) bool {
	if number == "" {
		return false
	}
	for _, r := range number {
		if (r < '0' || r > '9') && r != '.' {
			return false
		}
	}
	return true
}
