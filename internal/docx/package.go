// Package docx reads OOXML word-processing packages: the zip container, the
// document part, style and numbering tables, relationships and embedded
// media. It exposes the raw element stream that the assembler walks; no
// block-level interpretation happens here.
package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/beevik/etree"

	"github.com/docfold/docx2md/internal/ir"
)

const (
	partDocument      = "word/document.xml"
	partStyles        = "word/styles.xml"
	partNumbering     = "word/numbering.xml"
	partRelationships = "word/_rels/document.xml.rels"
	mediaPrefix       = "word/media/"
)

// StructuralError reports a document whose required root container is
// absent. It is fatal for the document; all other anomalies are recovered.
type StructuralError struct {
	Part string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("document structure broken: %s not found", e.Part)
}

// Package is a fully loaded DOCX package. All maps are immutable after Open.
type Package struct {
	// Styles maps styleId to its human-readable display name.
	Styles map[string]string
	// StyleNums maps styleId to the numbering instance id for list styles.
	StyleNums map[string]string
	// StyleLevels maps styleId to a 0-based outline level for heading styles.
	StyleLevels map[string]int
	// ListFormats maps numbering instance id to its top-level format
	// (bullet, decimal, ...).
	ListFormats map[string]string
	// Relationships maps relationship id to a media target path.
	Relationships map[string]string
	// NumberingXML is the raw numbering part for the numbering engine,
	// empty when the document has none.
	NumberingXML []byte
	// Resources holds extracted media in deterministic natural order.
	Resources []ir.ResourceRef
	// MediaByPath maps full zip paths (word/media/...) to their resource.
	MediaByPath map[string]ir.ResourceRef

	doc  *etree.Document
	body *etree.Element
}

// Open reads a DOCX package from disk.
func Open(path string) (*Package, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat document: %w", err)
	}

	format, err := DetectFormatFromReader(f)
	if err != nil {
		return nil, err
	}
	if format == FormatLegacyDoc {
		return nil, ErrLegacyFormat
	}

	zr, err := zip.NewReader(f, st.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to read package container: %w", err)
	}
	return New(zr)
}

// New builds a Package from an already opened zip reader.
func New(zr *zip.Reader) (*Package, error) {
	docXML, err := readPart(zr, partDocument)
	if err != nil {
		return nil, err
	}
	if docXML == nil {
		return nil, &StructuralError{Part: partDocument}
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(docXML); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", partDocument, err)
	}
	body := doc.FindElement("//w:body")
	if body == nil {
		return nil, &StructuralError{Part: "w:body"}
	}

	stylesXML, _ := readPart(zr, partStyles)
	numberingXML, _ := readPart(zr, partNumbering)
	relsXML, _ := readPart(zr, partRelationships)

	resources, byPath := extractMedia(zr)

	p := &Package{
		Styles:        stylesMap(stylesXML),
		StyleNums:     styleNumMap(stylesXML),
		StyleLevels:   styleOutlineLevels(stylesXML),
		ListFormats:   listFormats(numberingXML),
		Relationships: relationships(relsXML),
		NumberingXML:  numberingXML,
		Resources:     resources,
		MediaByPath:   byPath,
		doc:           doc,
		body:          body,
	}
	return p, nil
}

// Body returns the document body element.
func (p *Package) Body() *etree.Element {
	return p.body
}

// BodyElements returns the ordered children of the document body.
func (p *Package) BodyElements() []*etree.Element {
	return p.body.ChildElements()
}

// AllParagraphs returns every paragraph in the body, including those nested
// inside tables, in document order. Used for caption window indexing.
func (p *Package) AllParagraphs() []*etree.Element {
	return p.body.FindElements(".//w:p")
}

// StyleName resolves a styleId to its display name, falling back to the id.
func (p *Package) StyleName(styleID string) string {
	if name, ok := p.Styles[styleID]; ok && name != "" {
		return name
	}
	return styleID
}

// MediaTarget resolves a relationship id to a media resource, if both the
// relationship and the media part exist.
func (p *Package) MediaTarget(relID string) (ir.ResourceRef, bool) {
	target, ok := p.Relationships[relID]
	if !ok {
		return ir.ResourceRef{}, false
	}
	res, ok := p.MediaByPath["word/"+target]
	return res, ok
}

// readPart reads a named part from the archive, returning nil when absent.
func readPart(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open part %s: %w", name, err)
		}
		defer rc.Close()
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, rc); err != nil {
			return nil, fmt.Errorf("failed to read part %s: %w", name, err)
		}
		return buf.Bytes(), nil
	}
	return nil, nil
}
