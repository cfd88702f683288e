package ir

// InlineType discriminates the closed set of inline variants.
type InlineType string

const (
	InlineText   InlineType = "text"
	InlineBold   InlineType = "bold"
	InlineItalic InlineType = "italic"
	InlineCode   InlineType = "code"
	InlineLink   InlineType = "link"
)

// Inline is a styled text run within a paragraph.
type Inline struct {
	Type    InlineType `json:"type"`
	Content string     `json:"content"`
	Href    string     `json:"href,omitempty"` // link target, InlineLink only
}

// Paragraph is a sequence of inline runs. Quote marks the paragraph as a
// blockquote (note paragraphs in the source corpus).
type Paragraph struct {
	Inlines []Inline `json:"inlines"`
	Quote   bool     `json:"quote,omitempty"`
}

// NewParagraph creates a paragraph holding a single plain-text run.
func NewParagraph(text string) *Paragraph {
	return &Paragraph{Inlines: []Inline{{Type: InlineText, Content: text}}}
}

// AddRun appends a styled run to the paragraph.
func (p *Paragraph) AddRun(typ InlineType, content string) {
	p.Inlines = append(p.Inlines, Inline{Type: typ, Content: content})
}

// Text joins the content of all runs.
func (p *Paragraph) Text() string {
	s := ""
	for _, in := range p.Inlines {
		s += in.Content
	}
	return s
}

// IsEmpty returns true if the paragraph has no textual content.
func (p *Paragraph) IsEmpty() bool {
	for _, in := range p.Inlines {
		if in.Content != "" {
			return false
		}
	}
	return true
}
