package classify

import (
	"regexp"
	"strings"

	"github.com/beevik/etree"

	"github.com/docfold/docx2md/internal/docx"
)

var captionStyleRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)caption`),
	regexp.MustCompile(`(?i)рисунок.*номер`),
	regexp.MustCompile(`(?i)рисунок.*подпись`),
	regexp.MustCompile(`(?i)figure`),
}

var captionTextRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(рисунок|figure|рис\.|fig\.)\s+\d+`),
	regexp.MustCompile(`(?i)(схема|diagram|диаграмма)\s+\d+`),
	regexp.MustCompile(`(?i)^рисунок\s+\d+\s*[-–—]\s*.+`),
	regexp.MustCompile(`(?i)^figure\s+\d+\s*[-–—]\s*.+`),
}

// completeCaptionRes match a full "Рисунок N – text" caption inside a
// paragraph, figure number and description together.
var completeCaptionRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(рисунок\s+[-–—]?\s*\d+\s*[-–—]\s*.+)`),
	regexp.MustCompile(`(?i)(рисунок\s+\d+\s*[-–—]\s*.+)`),
	regexp.MustCompile(`(?i)(рис\.\s*\d+\s*[-–—]\s*.+)`),
	regexp.MustCompile(`(?i)(figure\s+\d+\s*[-–—]\s*.+)`),
	regexp.MustCompile(`(?i)(fig\.\s*\d+\s*[-–—]\s*.+)`),
}

var figureNumberRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)рисунок\s+[-–—]?\s*(\d+)`),
	regexp.MustCompile(`(?i)рисунок\s+(\d+)`),
	regexp.MustCompile(`(?i)рис\.\s*(\d+)`),
	regexp.MustCompile(`(?i)figure\s+(\d+)`),
	regexp.MustCompile(`(?i)picture\s+(\d+)`),
	regexp.MustCompile(`(?i)fig\.\s*(\d+)`),
}

var numberedCaptionRe = regexp.MustCompile(`(?i)(рисунок|figure|рис\.|fig\.)\s+\d+`)

// CaptionResolver finds the caption belonging to an image paragraph by
// scanning a small window of surrounding paragraphs.
type CaptionResolver struct {
	styles     map[string]string
	paragraphs []*etree.Element
	index      map[*etree.Element]int
}

// NewCaptionResolver builds a resolver over every paragraph of the body,
// in document order.
func NewCaptionResolver(styles map[string]string, paragraphs []*etree.Element) *CaptionResolver {
	index := make(map[*etree.Element]int, len(paragraphs))
	for i, p := range paragraphs {
		index[p] = i
	}
	return &CaptionResolver{styles: styles, paragraphs: paragraphs, index: index}
}

// FindCaption resolves the caption for an image inside imagePara.
// imageName is the drawing's display name, used as a number source of last
// resort. The returned paragraph, when non-nil, held a complete caption and
// must be suppressed from the block stream.
func (r *CaptionResolver) FindCaption(imagePara *etree.Element, imageName string) (caption string, captionPara *etree.Element) {
	idx, ok := r.index[imagePara]
	if !ok {
		return "", nil
	}

	// A complete "Рисунок N – text" in the window wins outright.
	for offset := -2; offset <= 3; offset++ {
		i := idx + offset
		if i < 0 || i >= len(r.paragraphs) {
			continue
		}
		text := docx.Text(r.paragraphs[i])
		for _, re := range completeCaptionRes {
			if m := re.FindStringSubmatch(text); m != nil {
				return strings.TrimSpace(m[1]), r.paragraphs[i]
			}
		}
	}

	return r.assembleSplitCaption(idx, imageName), nil
}

// assembleSplitCaption handles documents where the figure number (a SEQ
// field) and the caption text live in separate paragraphs.
func (r *CaptionResolver) assembleSplitCaption(idx int, imageName string) string {
	figureNumber := ""
	for offset := 1; offset <= 3; offset++ {
		i := idx - offset
		if i < 0 {
			break
		}
		if num := seqPicnumResult(r.paragraphs[i]); num != "" {
			figureNumber = num
			break
		}
	}

	captionText := ""
	for offset := 1; offset <= 3; offset++ {
		i := idx + offset
		if i >= len(r.paragraphs) {
			break
		}
		next := r.paragraphs[i]
		if r.IsCaptionParagraph(next) {
			if text := docx.Text(next); text != "" {
				captionText = text
				break
			}
		}
		// Another image ends the search window.
		if len(docx.Drawings(next)) > 0 {
			break
		}
		if text := docx.Text(next); len(text) > 50 {
			break
		}
	}

	if figureNumber == "" && imageName != "" {
		figureNumber = matchFigureNumber(imageName)
	}
	if figureNumber == "" {
		for offset := -2; offset <= 3; offset++ {
			i := idx + offset
			if i < 0 || i >= len(r.paragraphs) {
				continue
			}
			if num := matchFigureNumber(docx.Text(r.paragraphs[i])); num != "" {
				figureNumber = num
				break
			}
		}
	}

	switch {
	case figureNumber != "" && captionText != "":
		return "Рисунок " + figureNumber + " – " + captionText
	case captionText != "":
		return captionText
	default:
		return ""
	}
}

// IsCaptionParagraph reports whether a paragraph carries an image caption,
// by style name or by text shape.
func (r *CaptionResolver) IsCaptionParagraph(p *etree.Element) bool {
	styleName := strings.ToLower(r.styles[docx.StyleID(p)])
	for _, re := range captionStyleRes {
		if re.MatchString(styleName) {
			return true
		}
	}
	text := docx.Text(p)
	if text == "" {
		return false
	}
	for _, re := range captionTextRes {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// HasFigureNumber reports whether caption text already carries its own
// figure number.
func HasFigureNumber(text string) bool {
	return numberedCaptionRe.MatchString(text)
}

func matchFigureNumber(text string) string {
	for _, re := range figureNumberRes {
		if m := re.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}
	return ""
}

// seqPicnumResult extracts the rendered value of a SEQ picnum field.
func seqPicnumResult(p *etree.Element) string {
	found := false
	for _, instr := range docx.InstrTexts(p) {
		if strings.Contains(instr, "SEQ picnum") {
			found = true
			break
		}
	}
	if !found {
		return ""
	}
	return docx.FieldResult(p)
}
