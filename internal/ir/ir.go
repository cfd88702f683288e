// Package ir defines the intermediate representation for parsed documents.
// IR is the output of the block assembler and the input for chapter
// splitting, outline building and markdown rendering.
package ir

// Document represents a parsed document as a flat, ordered list of blocks.
type Document struct {
	Blocks []Block `json:"blocks"`
}

// BlockType discriminates the closed set of block variants.
type BlockType string

const (
	BlockTypeHeading   BlockType = "heading"
	BlockTypeParagraph BlockType = "paragraph"
	BlockTypeCode      BlockType = "code"
	BlockTypeList      BlockType = "list"
	BlockTypeTable     BlockType = "table"
	BlockTypeImage     BlockType = "image"
)

// Block is a closed tagged union: exactly one variant pointer is set,
// matching Type. Every consumer switches on Type exhaustively.
type Block struct {
	Type      BlockType   `json:"type"`
	Heading   *Heading    `json:"heading,omitempty"`
	Paragraph *Paragraph  `json:"paragraph,omitempty"`
	Code      *CodeBlock  `json:"code,omitempty"`
	List      *ListBlock  `json:"list,omitempty"`
	Table     *TableBlock `json:"table,omitempty"`
	Image     *ImageBlock `json:"image,omitempty"`
}

// Heading is a document heading with its reconstructed hierarchical number.
type Heading struct {
	Level  int    `json:"level"`            // 1-6
	Number string `json:"number,omitempty"` // e.g. "4.1.3" or "Б.1"
	Text   string `json:"text"`
}

// CodeBlock is a fenced code listing.
type CodeBlock struct {
	Code     string `json:"code"`
	Language string `json:"language,omitempty"`
	Title    string `json:"title,omitempty"`
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{Blocks: make([]Block, 0)}
}

// AddHeading appends a heading block.
func (d *Document) AddHeading(h *Heading) {
	d.Blocks = append(d.Blocks, Block{Type: BlockTypeHeading, Heading: h})
}

// AddParagraph appends a paragraph block.
func (d *Document) AddParagraph(p *Paragraph) {
	d.Blocks = append(d.Blocks, Block{Type: BlockTypeParagraph, Paragraph: p})
}

// AddCode appends a code block.
func (d *Document) AddCode(c *CodeBlock) {
	d.Blocks = append(d.Blocks, Block{Type: BlockTypeCode, Code: c})
}

// AddList appends a list block.
func (d *Document) AddList(l *ListBlock) {
	d.Blocks = append(d.Blocks, Block{Type: BlockTypeList, List: l})
}

// AddTable appends a table block.
func (d *Document) AddTable(t *TableBlock) {
	d.Blocks = append(d.Blocks, Block{Type: BlockTypeTable, Table: t})
}

// AddImage appends an image block.
func (d *Document) AddImage(img *ImageBlock) {
	d.Blocks = append(d.Blocks, Block{Type: BlockTypeImage, Image: img})
}

// HeadingBlock wraps a heading into a Block value.
func HeadingBlock(h *Heading) Block {
	return Block{Type: BlockTypeHeading, Heading: h}
}

// ParagraphBlock wraps a paragraph into a Block value.
func ParagraphBlock(p *Paragraph) Block {
	return Block{Type: BlockTypeParagraph, Paragraph: p}
}

// CodeBlockOf wraps a code listing into a Block value.
func CodeBlockOf(c *CodeBlock) Block {
	return Block{Type: BlockTypeCode, Code: c}
}

// ListBlockOf wraps a list into a Block value.
func ListBlockOf(l *ListBlock) Block {
	return Block{Type: BlockTypeList, List: l}
}

// TableBlockOf wraps a table into a Block value.
func TableBlockOf(t *TableBlock) Block {
	return Block{Type: BlockTypeTable, Table: t}
}

// ImageBlockOf wraps an image into a Block value.
func ImageBlockOf(img *ImageBlock) Block {
	return Block{Type: BlockTypeImage, Image: img}
}
