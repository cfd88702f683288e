package ir

// ListBlock represents an ordered or unordered list.
type ListBlock struct {
	Ordered bool       `json:"ordered"`
	Items   []ListItem `json:"items"`
}

// ListItem is a single item; it can hold nested blocks, including nested
// lists created when the source document increases the nesting level.
type ListItem struct {
	Blocks []Block `json:"blocks"`
}

// NewList creates an empty list block.
func NewList(ordered bool) *ListBlock {
	return &ListBlock{Ordered: ordered, Items: make([]ListItem, 0)}
}

// AddItem appends an item holding a single paragraph.
func (l *ListBlock) AddItem(p *Paragraph) *ListItem {
	l.Items = append(l.Items, ListItem{Blocks: []Block{ParagraphBlock(p)}})
	return &l.Items[len(l.Items)-1]
}

// LastItem returns a pointer to the most recently added item, creating an
// empty one when the list has none yet.
func (l *ListBlock) LastItem() *ListItem {
	if len(l.Items) == 0 {
		l.Items = append(l.Items, ListItem{})
	}
	return &l.Items[len(l.Items)-1]
}

// IsEmpty returns true if the list has no items.
func (l *ListBlock) IsEmpty() bool {
	return len(l.Items) == 0
}
