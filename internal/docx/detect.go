package docx

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/richardlehane/mscfb"
)

// Format represents a source document container format.
type Format int

const (
	FormatUnknown   Format = iota
	FormatDOCX             // OOXML zip package
	FormatLegacyDoc        // Word 97-2003 OLE compound file
)

// ErrLegacyFormat is returned for Word 97-2003 binary documents, which this
// converter does not read. Callers surface the message as-is.
var ErrLegacyFormat = errors.New("legacy .doc (OLE) format is not supported; re-save the document as .docx")

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatDOCX:
		return "docx"
	case FormatLegacyDoc:
		return "doc"
	default:
		return "unknown"
	}
}

// DetectFormat detects the document format from the file extension.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".docx":
		return FormatDOCX
	case ".doc":
		return FormatLegacyDoc
	default:
		return FormatUnknown
	}
}

// DetectFormatFromReader detects the format by magic bytes. For OLE
// containers it opens the compound file and checks for the WordDocument
// stream, so a .doc renamed to .docx is still reported as legacy.
func DetectFormatFromReader(r io.ReaderAt) (Format, error) {
	buf := make([]byte, 8)
	n, err := r.ReadAt(buf, 0)
	if err != nil && err != io.EOF {
		return FormatUnknown, fmt.Errorf("failed to read magic bytes: %w", err)
	}
	if n < 4 {
		return FormatUnknown, fmt.Errorf("file too small to detect format")
	}

	// ZIP magic (OOXML package)
	if buf[0] == 'P' && buf[1] == 'K' {
		return FormatDOCX, nil
	}

	// OLE/CFBF magic (Word 97-2003)
	if buf[0] == 0xD0 && buf[1] == 0xCF && buf[2] == 0x11 && buf[3] == 0xE0 {
		if isLegacyWord(r) {
			return FormatLegacyDoc, nil
		}
		return FormatUnknown, nil
	}

	return FormatUnknown, nil
}

// isLegacyWord reports whether the OLE container carries a Word binary
// document stream.
func isLegacyWord(r io.ReaderAt) bool {
	cf, err := mscfb.New(r)
	if err != nil {
		return false
	}
	for entry, err := cf.Next(); err == nil; entry, err = cf.Next() {
		if entry.Name == "WordDocument" {
			return true
		}
	}
	return false
}
