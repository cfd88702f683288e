package docx

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

var listStyleDigitsRe = regexp.MustCompile(`(\d+)$`)

// ListInfo reports whether a paragraph belongs to a list, with the list's
// first-level number format and the 0-based nesting level. A paragraph
// qualifies through its own numPr or through a list style. Unknown formats
// default to bullet.
func (p *Package) ListInfo(el *etree.Element) (format string, level int, ok bool) {
	if numID, ilvl, found := NumPr(el); found {
		format = p.ListFormats[numID]
		if format == "" {
			format = "bullet"
		}
		return format, ilvl, true
	}

	styleID := StyleID(el)
	if styleID == "" {
		return "", 0, false
	}
	numID, found := p.StyleNums[styleID]
	if !found || numID == "" {
		return "", 0, false
	}
	format = p.ListFormats[numID]
	if format == "" {
		format = "bullet"
	}
	return format, styleListLevel(styleID, p.Styles[styleID]), true
}

// styleListLevel infers the nesting level from trailing digits of the
// style name or id ("List Bullet 2" nests one deep).
func styleListLevel(styleID, styleName string) int {
	for _, value := range []string{styleName, styleID} {
		if value == "" {
			continue
		}
		m := listStyleDigitsRe.FindStringSubmatch(strings.TrimSpace(value))
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			return n - 1
		}
	}
	return 0
}
