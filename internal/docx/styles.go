package docx

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

var trailingDigitsRe = regexp.MustCompile(`(\d+)$`)

// stylesMap maps styleId to human-readable display name.
func stylesMap(stylesXML []byte) map[string]string {
	result := make(map[string]string)
	root := parsePart(stylesXML)
	if root == nil {
		return result
	}
	for _, style := range root.FindElements("//w:style") {
		id := style.SelectAttrValue("w:styleId", "")
		if id == "" {
			continue
		}
		name := id
		if nameEl := style.FindElement("w:name"); nameEl != nil {
			if v := nameEl.SelectAttrValue("w:val", ""); v != "" {
				name = v
			}
		}
		result[id] = name
	}
	return result
}

// styleNumMap maps styleId to its numbering instance id for list styles.
func styleNumMap(stylesXML []byte) map[string]string {
	result := make(map[string]string)
	root := parsePart(stylesXML)
	if root == nil {
		return result
	}
	for _, style := range root.FindElements("//w:style") {
		id := style.SelectAttrValue("w:styleId", "")
		if id == "" {
			continue
		}
		numID := style.FindElement("w:pPr/w:numPr/w:numId")
		if numID == nil {
			continue
		}
		if v := numID.SelectAttrValue("w:val", ""); v != "" {
			result[id] = v
		}
	}
	return result
}

// styleOutlineLevels maps heading-like paragraph styles to 0-based levels.
// A style qualifies via its display name (Heading/Заголовок + trailing
// digit) or via an explicit outline level in its paragraph properties; when
// both are present the shallower one wins.
func styleOutlineLevels(stylesXML []byte) map[string]int {
	result := make(map[string]int)
	root := parsePart(stylesXML)
	if root == nil {
		return result
	}
	for _, style := range root.FindElements("//w:style") {
		if style.SelectAttrValue("w:type", "") != "paragraph" {
			continue
		}
		id := style.SelectAttrValue("w:styleId", "")
		if id == "" {
			continue
		}
		name := ""
		if nameEl := style.FindElement("w:name"); nameEl != nil {
			name = strings.ToLower(nameEl.SelectAttrValue("w:val", ""))
		}
		if strings.HasPrefix(name, "heading") || strings.Contains(name, "заголовок") {
			m := trailingDigitsRe.FindStringSubmatch(id)
			if m == nil {
				m = trailingDigitsRe.FindStringSubmatch(name)
			}
			if m != nil {
				if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
					result[id] = n - 1
				}
			}
		}
		if ol := style.FindElement("w:pPr/w:outlineLvl"); ol != nil {
			if lvl, err := strconv.Atoi(ol.SelectAttrValue("w:val", "")); err == nil {
				if prev, ok := result[id]; !ok || lvl < prev {
					result[id] = lvl
				}
			}
		}
	}
	return result
}

// listFormats maps numbering instance id to the format of its first level.
func listFormats(numberingXML []byte) map[string]string {
	result := make(map[string]string)
	root := parsePart(numberingXML)
	if root == nil {
		return result
	}

	abstract := make(map[string]string)
	for _, an := range root.FindElements("//w:abstractNum") {
		id := an.SelectAttrValue("w:abstractNumId", "")
		if id == "" {
			continue
		}
		if fmtEl := an.FindElement("w:lvl/w:numFmt"); fmtEl != nil {
			abstract[id] = fmtEl.SelectAttrValue("w:val", "")
		}
	}
	for _, num := range root.FindElements("//w:num") {
		numID := num.SelectAttrValue("w:numId", "")
		ref := num.FindElement("w:abstractNumId")
		if numID == "" || ref == nil {
			continue
		}
		if fmt, ok := abstract[ref.SelectAttrValue("w:val", "")]; ok {
			result[numID] = fmt
		}
	}
	return result
}

// relationships maps relationship id to target path for image relationships.
func relationships(relsXML []byte) map[string]string {
	result := make(map[string]string)
	root := parsePart(relsXML)
	if root == nil {
		return result
	}
	for _, rel := range root.FindElements("//Relationship") {
		id := rel.SelectAttrValue("Id", "")
		target := rel.SelectAttrValue("Target", "")
		typ := rel.SelectAttrValue("Type", "")
		if id != "" && target != "" && strings.Contains(typ, "image") {
			result[id] = target
		}
	}
	return result
}

// parsePart parses a raw XML part and returns its root, or nil for absent
// or malformed parts. Malformed auxiliary parts degrade to defaults.
func parsePart(data []byte) *etree.Element {
	if len(data) == 0 {
		return nil
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil
	}
	return doc.Root()
}
