// Package assemble turns the document body into a block tree in a single
// pass. The pass classifies each paragraph (heading, code line, list item,
// caption, note), accumulates adjacent code lines into listings, nests list
// items, and keeps images in document order.
package assemble

import (
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"github.com/docfold/docx2md/internal/classify"
	"github.com/docfold/docx2md/internal/docx"
	"github.com/docfold/docx2md/internal/ir"
	"github.com/docfold/docx2md/internal/numbering"
)

const maxHeadingDepth = 6

// Options carries the heuristic tables. Empty fields select the defaults
// compiled into the classify package.
type Options struct {
	HeadingPatterns   []string
	ServiceHeadings   []string
	CodeStylePatterns []string
	MonoFonts         []string
}

type listFrame struct {
	block   *ir.ListBlock
	level   int
	ordered bool
}

type assembler struct {
	pkg        *docx.Package
	classifier *classify.Classifier
	code       *classify.CodeDetector
	captions   *classify.CaptionResolver
	sectionMap map[string]string
	headings   []numbering.NumberedHeading
	headIdx    int
	log        *zap.Logger

	doc          *ir.Document
	codeAcc      []string
	codeLang     string
	codeTitle    string
	listStack    []listFrame
	prevText     string
	usedCaptions map[*etree.Element]bool
	reorderAt    map[int]bool
}

// Assemble builds the block tree for an opened document.
func Assemble(pkg *docx.Package, opts Options, log *zap.Logger) *ir.Document {
	if log == nil {
		log = zap.NewNop()
	}
	a := &assembler{
		pkg:          pkg,
		classifier:   classify.NewClassifier(pkg.Styles, pkg.StyleLevels, opts.HeadingPatterns, opts.ServiceHeadings),
		code:         classify.NewCodeDetector(pkg.Styles, opts.CodeStylePatterns, opts.MonoFonts),
		captions:     classify.NewCaptionResolver(pkg.Styles, pkg.AllParagraphs()),
		log:          log,
		doc:          ir.NewDocument(),
		usedCaptions: make(map[*etree.Element]bool),
		reorderAt:    make(map[int]bool),
	}
	a.sectionMap = classify.BuildSectionMap(pkg.AllParagraphs())
	a.headings = numbering.ExtractNumberedHeadings(pkg, a.classifier.Level)
	a.run()
	return a.doc
}

func (a *assembler) run() {
	elements := a.pkg.BodyElements()
	a.markReorders(elements)

	for i, el := range elements {
		switch {
		case docx.IsParagraph(el):
			a.paragraph(i, el, elements)
		case docx.IsTable(el):
			a.flushLists()
			a.flushCode()
			a.doc.Blocks = append(a.doc.Blocks, ir.TableBlockOf(a.table(el)))
		}
	}
	a.flushCode()
}

// markReorders finds command paragraphs whose screenshot follows in the
// next paragraph, so the pass can emit the command first.
func (a *assembler) markReorders(elements []*etree.Element) {
	for i := 0; i+1 < len(elements); i++ {
		if !docx.IsParagraph(elements[i]) || !docx.IsParagraph(elements[i+1]) {
			continue
		}
		text := a.textOf(elements[i])
		if classify.ShouldReorderCommand(elements[i], elements[i+1], text, a.code) {
			a.reorderAt[i] = true
		}
	}
}

func (a *assembler) paragraph(i int, p *etree.Element, elements []*etree.Element) {
	lvl := a.classifier.Level(p)
	text := a.textOf(p)
	images := a.imagesFor(p)

	if a.reorderAt[i] && i+1 < len(elements) && docx.IsParagraph(elements[i+1]) {
		nextImages := a.imagesFor(elements[i+1])
		a.flushCode()
		if text != "" {
			command := strings.TrimSpace(classify.CleanShellPrefix(text))
			a.doc.AddCode(&ir.CodeBlock{Code: command, Language: "bash", Title: "Terminal"})
		}
		a.appendImages(images)
		a.appendImages(nextImages)
		a.prevText = text
		return
	}

	if a.usedCaptions[p] {
		a.appendImages(images)
		return
	}
	// The image paragraph after a reordered command was already emitted.
	if i > 0 && a.reorderAt[i-1] && strings.TrimSpace(text) == "" {
		return
	}

	if text != "" {
		if a.code.IsCodeParagraph(p) {
			if a.codeLang == "" {
				a.codeLang, a.codeTitle = classify.SniffLanguage(text)
			}
			a.codeAcc = append(a.codeAcc, strings.TrimSpace(classify.CleanShellPrefix(text)))
			a.appendImages(images)
			a.prevText = text
			return
		}

		if a.continueCode(text) {
			a.appendImages(images)
			a.prevText = text
			return
		}

		if lvl > 0 {
			a.flushLists()
			a.heading(lvl, text)
		} else {
			if a.startCode(text) {
				a.appendImages(images)
				a.prevText = text
				return
			}
			if a.listItem(p, text, images) {
				a.prevText = text
				return
			}
			a.flushLists()
			para := ir.NewParagraph(text)
			para.Quote = classify.IsNoteParagraph(text)
			a.doc.AddParagraph(para)
		}
	} else {
		a.flushLists()
	}

	a.appendImages(images)
	a.prevText = text
}

// heading emits the next entry of the pre-pass queue. Level 1 headings
// carry no number since they become chapter titles.
func (a *assembler) heading(lvl int, text string) {
	if a.headIdx < len(a.headings) {
		h := a.headings[a.headIdx]
		a.headIdx++
		level := min(h.Level, maxHeadingDepth)
		text := h.Text
		if level > 1 && h.Number != "" {
			text = h.Number + " " + h.Text
		}
		a.doc.AddHeading(&ir.Heading{Level: level, Number: h.Number, Text: text})
		return
	}
	a.doc.AddHeading(&ir.Heading{Level: min(lvl, maxHeadingDepth), Text: text})
}

// continueCode extends an open listing when the line still matches the
// listing's language, and flushes it otherwise.
func (a *assembler) continueCode(text string) bool {
	switch a.codeLang {
	case "yaml":
		if classify.IsYAMLLine(text) {
			a.codeAcc = append(a.codeAcc, strings.TrimSpace(text))
			return true
		}
	case "bash":
		if classify.IsBashLine(text) {
			a.codeAcc = append(a.codeAcc, strings.TrimSpace(classify.CleanShellPrefix(text)))
			return true
		}
	case "sql":
		if classify.IsSQLLine(text) || strings.HasSuffix(strings.TrimSpace(text), ";") {
			a.codeAcc = append(a.codeAcc, strings.TrimSpace(text))
			return true
		}
	default:
		return false
	}
	a.flushCode()
	return false
}

// startCode opens a new listing when the line shape gives the language
// away even without a code style.
func (a *assembler) startCode(text string) bool {
	trimmed := strings.TrimSpace(text)
	switch {
	case classify.HasYAMLHint(a.prevText) && classify.IsYAMLFirstLine(trimmed):
		a.codeLang = "yaml"
		a.codeTitle = classify.YAMLFileName(a.prevText)
		a.codeAcc = append(a.codeAcc, trimmed)
	case classify.IsYAMLFirstLine(trimmed) && classify.IsYAMLLine(trimmed):
		a.codeLang = "yaml"
		a.codeAcc = append(a.codeAcc, trimmed)
	case classify.IsBashLine(trimmed):
		a.codeLang = "bash"
		a.codeTitle = "Terminal"
		a.codeAcc = append(a.codeAcc, strings.TrimSpace(classify.CleanShellPrefix(text)))
	case classify.IsSQLLine(trimmed):
		a.codeLang = "sql"
		a.codeAcc = append(a.codeAcc, trimmed)
	default:
		return false
	}
	return true
}

func (a *assembler) flushCode() {
	if len(a.codeAcc) > 0 {
		a.doc.AddCode(&ir.CodeBlock{
			Code:     strings.Join(a.codeAcc, "\n"),
			Language: a.codeLang,
			Title:    a.codeTitle,
		})
	}
	a.codeAcc = nil
	a.codeLang = ""
	a.codeTitle = ""
}

// listItem folds the paragraph into the list stack when it belongs to a
// list. Table captions stay out even when styled as list entries.
func (a *assembler) listItem(p *etree.Element, text string, images []*ir.ImageBlock) bool {
	format, level, ok := a.pkg.ListInfo(p)
	if !ok || classify.IsTableCaption(text) {
		return false
	}
	ordered := format != "bullet" && format != "none"
	list := a.ensureList(level, ordered)

	para := a.formattedInlines(p)
	if para == nil {
		para = ir.NewParagraph(text)
	}
	item := list.AddItem(para)
	for _, img := range images {
		item.Blocks = append(item.Blocks, ir.ImageBlockOf(img))
	}
	return true
}

// ensureList returns the list block for the given nesting level, popping
// frames that ended and nesting a new list into the last open item.
func (a *assembler) ensureList(level int, ordered bool) *ir.ListBlock {
	for len(a.listStack) > 0 {
		top := a.listStack[len(a.listStack)-1]
		if level < top.level || (level == top.level && top.ordered != ordered) {
			a.listStack = a.listStack[:len(a.listStack)-1]
			continue
		}
		break
	}

	if len(a.listStack) == 0 {
		block := ir.NewList(ordered)
		a.doc.Blocks = append(a.doc.Blocks, ir.ListBlockOf(block))
		a.listStack = append(a.listStack, listFrame{block: block, level: level, ordered: ordered})
		return block
	}

	top := a.listStack[len(a.listStack)-1]
	if level == top.level {
		return top.block
	}

	parent := top.block.LastItem()
	nested := ir.NewList(ordered)
	parent.Blocks = append(parent.Blocks, ir.ListBlockOf(nested))
	a.listStack = append(a.listStack, listFrame{block: nested, level: level, ordered: ordered})
	return nested
}

func (a *assembler) flushLists() {
	a.listStack = a.listStack[:0]
}

func (a *assembler) appendImages(images []*ir.ImageBlock) {
	for _, img := range images {
		a.doc.Blocks = append(a.doc.Blocks, ir.ImageBlockOf(img))
	}
}

// textOf extracts paragraph text with cross-references resolved.
func (a *assembler) textOf(p *etree.Element) string {
	return classify.ReplaceCrossReferences(docx.Text(p), a.sectionMap)
}
