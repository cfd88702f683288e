// Package render serializes the block tree to markdown and exports binary
// resources to disk with content-hash deduplication.
package render

import (
	"fmt"
	"strings"

	"github.com/docfold/docx2md/internal/ir"
)

// Render serializes a document to markdown. assetMap maps resource ids to
// the relative paths produced by ExportAssets; unresolved ids render with
// an about:blank target so broken references stay visible.
func Render(doc *ir.Document, assetMap map[string]string) string {
	parts := make([]string, 0, len(doc.Blocks))
	for _, block := range doc.Blocks {
		if rendered := renderBlock(block, assetMap); rendered != "" {
			parts = append(parts, rendered)
		}
	}
	return strings.Join(parts, "\n\n") + "\n"
}

func renderBlock(block ir.Block, assetMap map[string]string) string {
	switch block.Type {
	case ir.BlockTypeHeading:
		return strings.Repeat("#", block.Heading.Level) + " " + block.Heading.Text
	case ir.BlockTypeParagraph:
		return renderParagraph(block.Paragraph)
	case ir.BlockTypeCode:
		return renderCode(block.Code)
	case ir.BlockTypeList:
		return strings.Join(renderList(block.List, assetMap, 0), "\n")
	case ir.BlockTypeTable:
		return renderTable(block.Table, assetMap)
	case ir.BlockTypeImage:
		return renderImage(block.Image, assetMap)
	default:
		return ""
	}
}

func renderParagraph(p *ir.Paragraph) string {
	var sb strings.Builder
	for _, inline := range p.Inlines {
		sb.WriteString(renderInline(inline))
	}
	text := sb.String()
	if p.Quote {
		lines := strings.Split(text, "\n")
		for i, line := range lines {
			lines[i] = "> " + line
		}
		return strings.Join(lines, "\n")
	}
	return text
}

func renderInline(inline ir.Inline) string {
	switch inline.Type {
	case ir.InlineBold:
		return "**" + inline.Content + "**"
	case ir.InlineItalic:
		return "*" + inline.Content + "*"
	case ir.InlineCode:
		return "`" + inline.Content + "`"
	case ir.InlineLink:
		return "[" + inline.Content + "](" + inline.Href + ")"
	default:
		return inline.Content
	}
}

func renderCode(c *ir.CodeBlock) string {
	var sb strings.Builder
	if c.Title != "" {
		sb.WriteString("**")
		sb.WriteString(c.Title)
		sb.WriteString("**\n\n")
	}
	sb.WriteString("```")
	sb.WriteString(c.Language)
	sb.WriteString("\n")
	sb.WriteString(c.Code)
	sb.WriteString("\n```")
	return sb.String()
}

func renderImage(img *ir.ImageBlock, assetMap map[string]string) string {
	path, ok := assetMap[img.ResourceID]
	if !ok {
		path = "about:blank"
	}
	out := fmt.Sprintf("![%s](%s)", img.Alt, path)
	if img.Caption != "" {
		out += "\n\n*" + img.Caption + "*"
	}
	return out
}

// renderList produces one line per item marker, indenting nested content
// by four spaces per level.
func renderList(list *ir.ListBlock, assetMap map[string]string, depth int) []string {
	indent := strings.Repeat("    ", depth)
	var lines []string
	for i, item := range list.Items {
		marker := "- "
		if list.Ordered {
			marker = fmt.Sprintf("%d. ", i+1)
		}
		first := true
		for _, block := range item.Blocks {
			if block.Type == ir.BlockTypeList {
				lines = append(lines, renderList(block.List, assetMap, depth+1)...)
				continue
			}
			rendered := renderBlock(block, assetMap)
			if rendered == "" {
				continue
			}
			for _, line := range strings.Split(rendered, "\n") {
				if first {
					lines = append(lines, indent+marker+line)
					first = false
				} else {
					lines = append(lines, indent+"  "+line)
				}
			}
		}
		if first {
			lines = append(lines, indent+marker)
		}
	}
	return lines
}

func renderTable(t *ir.TableBlock, assetMap map[string]string) string {
	if t.IsEmpty() {
		return ""
	}
	var sb strings.Builder
	writeRow := func(row ir.TableRow) {
		sb.WriteString("|")
		for _, cell := range row.Cells {
			sb.WriteString(" ")
			sb.WriteString(cellText(cell, assetMap))
			sb.WriteString(" |")
		}
		sb.WriteString("\n")
	}

	writeRow(t.Header)
	sb.WriteString("|")
	for range t.Header.Cells {
		sb.WriteString(" --- |")
	}
	sb.WriteString("\n")
	for _, row := range t.Rows {
		writeRow(row)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// cellText flattens a cell to a single line: pipes escaped, newlines
// replaced, nested blocks joined with spaces.
func cellText(cell ir.TableCell, assetMap map[string]string) string {
	var parts []string
	for _, block := range cell.Blocks {
		rendered := renderBlock(block, assetMap)
		if rendered == "" {
			continue
		}
		rendered = strings.ReplaceAll(rendered, "\n", " ")
		rendered = strings.ReplaceAll(rendered, "|", `\|`)
		parts = append(parts, rendered)
	}
	return strings.Join(parts, " ")
}
