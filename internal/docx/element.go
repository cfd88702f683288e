package docx

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// Element accessors over the wordprocessing XML shapes. Missing sub-fields
// never fail; they default to absent so a malformed paragraph degrades to
// plain text instead of aborting the pass.

// IsParagraph reports whether el is a w:p element.
func IsParagraph(el *etree.Element) bool {
	return el.Space == "w" && el.Tag == "p"
}

// IsTable reports whether el is a w:tbl element.
func IsTable(el *etree.Element) bool {
	return el.Space == "w" && el.Tag == "tbl"
}

// Text extracts the full text of a paragraph, joining every run.
func Text(p *etree.Element) string {
	var sb strings.Builder
	for _, t := range p.FindElements(".//w:t") {
		sb.WriteString(t.Text())
	}
	return strings.TrimSpace(sb.String())
}

// StyleID returns the paragraph style id, or "" when absent.
func StyleID(p *etree.Element) string {
	if st := p.FindElement("w:pPr/w:pStyle"); st != nil {
		return st.SelectAttrValue("w:val", "")
	}
	return ""
}

// OutlineLevel returns the explicit 0-based outline level, or -1.
func OutlineLevel(p *etree.Element) int {
	ol := p.FindElement("w:pPr/w:outlineLvl")
	if ol == nil {
		return -1
	}
	v, err := strconv.Atoi(ol.SelectAttrValue("w:val", ""))
	if err != nil || v < 0 {
		return -1
	}
	return v
}

// NumPr returns the explicit numbering reference of a paragraph.
// The indent level defaults to 0 when the element is present but malformed.
func NumPr(p *etree.Element) (numID string, ilvl int, ok bool) {
	numPr := p.FindElement("w:pPr/w:numPr")
	if numPr == nil {
		return "", 0, false
	}
	idEl := numPr.FindElement("w:numId")
	if idEl == nil {
		return "", 0, false
	}
	numID = idEl.SelectAttrValue("w:val", "")
	if numID == "" {
		return "", 0, false
	}
	if lvlEl := numPr.FindElement("w:ilvl"); lvlEl != nil {
		if v, err := strconv.Atoi(lvlEl.SelectAttrValue("w:val", "0")); err == nil && v >= 0 {
			ilvl = v
		}
	}
	return numID, ilvl, true
}

// Drawings returns the drawing elements embedded in a paragraph.
func Drawings(p *etree.Element) []*etree.Element {
	return p.FindElements(".//w:drawing")
}

// DrawingName returns the display name of a drawing (wp:docPr name).
func DrawingName(d *etree.Element) string {
	if pr := d.FindElement(".//wp:docPr"); pr != nil {
		return pr.SelectAttrValue("name", "")
	}
	return ""
}

// BlipEmbedIDs returns the relationship ids of every image blip inside a
// drawing, in document order.
func BlipEmbedIDs(d *etree.Element) []string {
	var ids []string
	for _, blip := range d.FindElements(".//a:blip") {
		if id := blip.SelectAttrValue("r:embed", ""); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// ShadingFills returns the non-empty shading fills set on the paragraph
// properties and on the first run's properties.
func ShadingFills(p *etree.Element) []string {
	var fills []string
	for _, path := range []string{"w:pPr/w:shd", "w:r/w:rPr/w:shd"} {
		if shd := p.FindElement(path); shd != nil {
			if fill := strings.ToLower(shd.SelectAttrValue("w:fill", "")); fill != "" && fill != "auto" {
				fills = append(fills, fill)
			}
		}
	}
	return fills
}

// RunFonts returns every font name referenced by the paragraph's runs
// (ascii, hAnsi and cs variants), lower-cased.
func RunFonts(p *etree.Element) []string {
	var fonts []string
	for _, rf := range p.FindElements(".//w:r/w:rPr/w:rFonts") {
		for _, attr := range []string{"w:ascii", "w:hAnsi", "w:cs"} {
			if v := rf.SelectAttrValue(attr, ""); v != "" {
				fonts = append(fonts, strings.ToLower(v))
			}
		}
	}
	return fonts
}

// InstrTexts returns the field instruction texts inside a paragraph.
func InstrTexts(p *etree.Element) []string {
	var out []string
	for _, instr := range p.FindElements(".//w:instrText") {
		out = append(out, instr.Text())
	}
	return out
}

// FieldResult returns the first text that follows a field separator inside
// the paragraph's runs: the rendered result of a field like SEQ.
func FieldResult(p *etree.Element) string {
	for _, r := range p.FindElements(".//w:r") {
		separated := false
		for _, child := range r.ChildElements() {
			if child.Space == "w" && child.Tag == "fldChar" &&
				child.SelectAttrValue("w:fldCharType", "") == "separate" {
				separated = true
				continue
			}
			if separated && child.Space == "w" && child.Tag == "t" {
				if txt := strings.TrimSpace(child.Text()); txt != "" {
					return txt
				}
			}
		}
	}
	// The separator and the result may land in sibling runs.
	separated := false
	for _, child := range p.FindElements(".//w:r/*") {
		if child.Space == "w" && child.Tag == "fldChar" &&
			child.SelectAttrValue("w:fldCharType", "") == "separate" {
			separated = true
			continue
		}
		if separated && child.Space == "w" && child.Tag == "t" {
			if txt := strings.TrimSpace(child.Text()); txt != "" {
				return txt
			}
		}
	}
	return ""
}
