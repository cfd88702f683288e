package assemble

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/docfold/docx2md/internal/classify"
	"github.com/docfold/docx2md/internal/ir"
)

// formattedInlines extracts a paragraph with per-run formatting: bold,
// italic and inline code (monospaced font). Adjacent runs with the same
// style are merged and edge whitespace-only runs dropped. Returns nil when
// the paragraph has no text runs.
func (a *assembler) formattedInlines(p *etree.Element) *ir.Paragraph {
	type segment struct {
		typ     ir.InlineType
		content string
	}
	var segments []segment

	for _, run := range p.FindElements("w:r") {
		var sb strings.Builder
		for _, t := range run.FindElements("w:t") {
			sb.WriteString(t.Text())
		}
		content := sb.String()
		if content == "" {
			continue
		}

		typ := ir.InlineText
		if rPr := run.FindElement("w:rPr"); rPr != nil {
			switch {
			case runIsMono(rPr):
				typ = ir.InlineCode
			case toggleOn(rPr, "w:b"):
				typ = ir.InlineBold
			case toggleOn(rPr, "w:i"):
				typ = ir.InlineItalic
			}
		}

		if len(segments) > 0 && segments[len(segments)-1].typ == typ {
			segments[len(segments)-1].content += content
		} else {
			segments = append(segments, segment{typ: typ, content: content})
		}
	}

	// Trim whitespace from the edges without disturbing inner spacing.
	for len(segments) > 0 {
		stripped := strings.TrimLeft(segments[0].content, " \t\n")
		if stripped != "" {
			segments[0].content = stripped
			break
		}
		segments = segments[1:]
	}
	for len(segments) > 0 {
		last := len(segments) - 1
		stripped := strings.TrimRight(segments[last].content, " \t\n")
		if stripped != "" {
			segments[last].content = stripped
			break
		}
		segments = segments[:last]
	}

	if len(segments) == 0 {
		return nil
	}

	para := &ir.Paragraph{}
	for _, seg := range segments {
		content := classify.ReplaceCrossReferences(seg.content, a.sectionMap)
		para.AddRun(seg.typ, content)
	}
	return para
}

func runIsMono(rPr *etree.Element) bool {
	rFonts := rPr.FindElement("w:rFonts")
	if rFonts == nil {
		return false
	}
	for _, attr := range []string{"w:ascii", "w:hAnsi", "w:cs"} {
		font := strings.ToLower(rFonts.SelectAttrValue(attr, ""))
		if strings.Contains(font, "mono") || strings.Contains(font, "courier") {
			return true
		}
	}
	return false
}

// toggleOn reports whether a toggle property like w:b or w:i is present
// and not explicitly disabled.
func toggleOn(rPr *etree.Element, tag string) bool {
	el := rPr.FindElement(tag)
	if el == nil {
		return false
	}
	return el.SelectAttrValue("w:val", "1") != "0"
}
