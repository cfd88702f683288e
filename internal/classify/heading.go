// Package classify decides what each body paragraph is: a heading of some
// level, a code line, an image caption, a note, a table caption. The rules
// are pattern tables over style names and text, kept as data so a config
// file can extend them for house styles.
package classify

import (
	"regexp"
	"strings"

	"github.com/beevik/etree"

	"github.com/docfold/docx2md/internal/docx"
)

// DefaultHeadingPatterns matches heading style display names across the
// locales seen in real documents. Group 1 captures the level; patterns
// without a group map to level 1 (appendix and front-matter styles).
var DefaultHeadingPatterns = []string{
	`^Heading\s*(\d)$`,
	`^Заголовок\s*(\d)$`,
	`.*Заголовок\s*(\d)$`,
	`^Titre\s*(\d)$`,
	`^Überschrift\s*(\d)$`,
	`^Encabezado\s*(\d)$`,
	`.*\bheading\s*(\d)$`,
	`^ROSA_ПРИЛОЖЕНИЕ$`,
	`^ROSAa$`,
	`^ROSAfb$`,
}

// DefaultServiceHeadings lists front-matter titles that look like headings
// but must not enter the section tree. Compared against the lower-cased
// text with any numbering prefix removed.
var DefaultServiceHeadings = []string{
	"содержание",
	"аннотация",
	"оглавление",
	"перечень сокращений",
	"список литературы",
	"contents",
	"table of contents",
	"annotation",
	"abstract",
}

var headingStyleIDRe = regexp.MustCompile(`(?i)^Heading(\d)$`)

// Classifier assigns heading levels to paragraphs.
type Classifier struct {
	styles      map[string]string
	styleLevels map[string]int
	patterns    []*regexp.Regexp
	service     map[string]struct{}
}

// NewClassifier builds a classifier over the document's style tables
// (style id to display name, style id to 0-based outline level). Empty
// pattern or service lists select the defaults.
func NewClassifier(styles map[string]string, styleLevels map[string]int, patterns []string, serviceHeadings []string) *Classifier {
	if len(patterns) == 0 {
		patterns = DefaultHeadingPatterns
	}
	if len(serviceHeadings) == 0 {
		serviceHeadings = DefaultServiceHeadings
	}
	c := &Classifier{
		styles:      styles,
		styleLevels: styleLevels,
		service:     make(map[string]struct{}, len(serviceHeadings)),
	}
	for _, pat := range patterns {
		if re, err := regexp.Compile("(?i)" + pat); err == nil {
			c.patterns = append(c.patterns, re)
		}
	}
	for _, h := range serviceHeadings {
		c.service[strings.ToLower(strings.TrimSpace(h))] = struct{}{}
	}
	return c
}

// Level returns the heading level (1..9) of a paragraph, or 0 when it is
// not a heading. An explicit outline level wins over the style name; the
// style id is the last resort.
func (c *Classifier) Level(p *etree.Element) int {
	if c.IsServiceHeading(docx.Text(p)) {
		return 0
	}

	if ol := docx.OutlineLevel(p); ol >= 0 {
		if lvl := ol + 1; lvl <= 9 {
			return lvl
		}
		return 0
	}

	styleID := docx.StyleID(p)
	if styleID == "" {
		return 0
	}
	name := c.styles[styleID]
	if name != "" {
		for _, re := range c.patterns {
			m := re.FindStringSubmatch(name)
			if m == nil {
				continue
			}
			if len(m) < 2 || m[1] == "" {
				return 1
			}
			lvl := int(m[1][0] - '0')
			if lvl >= 1 && lvl <= 9 {
				return lvl
			}
		}
	}
	if m := headingStyleIDRe.FindStringSubmatch(styleID); m != nil {
		return int(m[1][0] - '0')
	}
	if lvl, ok := c.styleLevels[styleID]; ok && lvl+1 >= 1 && lvl+1 <= 9 {
		return lvl + 1
	}
	return 0
}

// IsServiceHeading reports whether the text names a front-matter section
// after stripping any numbering prefix.
func (c *Classifier) IsServiceHeading(text string) bool {
	cleaned := strings.ToLower(StripNumberPrefix(text))
	_, ok := c.service[cleaned]
	return ok
}
