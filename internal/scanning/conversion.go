package scanning

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/gen2brain/go-fitz"
)

const (
	ContentTypePDF  = "application/pdf"
	ContentTypeText = "text/plain"
)

// ErrNoPages is returned for documents without a first page
var ErrNoPages = errors.New("document has no pages")

// ContentType returns the content type for a document filename, or "" when the file is not a
// settlement document
func ContentType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return ContentTypePDF
	case ".txt":
		return ContentTypeText
	default:
		return ""
	}
}

// Fitz implements the Scanner interface using the MuPDF text layer
type Fitz struct{}

// NewFitz creates a new Fitz Scanner instance
func NewFitz() *Fitz {
	return &Fitz{}
}

// PageText extracts the first page of a PDF, or passes already extracted text through
func (f *Fitz) PageText(data []byte, contentType string) (string, error) {
	switch normalizeContentType(contentType) {
	case ContentTypePDF:
		text, err := pdfToText(data)
		if err != nil {
			return "", fmt.Errorf("converting PDF to text: %w", err)
		}
		return text, nil
	case ContentTypeText:
		if !utf8.Valid(data) {
			return "", fmt.Errorf("text document is not valid UTF-8")
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unsupported content type %q. Supported types: %s, %s", contentType, ContentTypePDF, ContentTypeText)
	}
}

// Close is a no-op, each document is opened and closed by PageText
func (f *Fitz) Close() error {
	return nil
}

// pdfToText reads the text layer of the first page
func pdfToText(data []byte) (string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("opening PDF: %w", err)
	}
	defer doc.Close()

	// Settlement notes are single page
	if doc.NumPage() == 0 {
		return "", ErrNoPages
	}

	text, err := doc.Text(0)
	if err != nil {
		return "", fmt.Errorf("reading PDF page: %w", err)
	}

	return text, nil
}

// normalizeContentType lowercases and strips parameters such as "; charset=utf-8"
func normalizeContentType(contentType string) string {
	mimeType, _, _ := strings.Cut(contentType, ";")
	return strings.ToLower(strings.TrimSpace(mimeType))
}
