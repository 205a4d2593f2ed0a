package ingestion

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/jonathan/ats-matcher/internal/fetch"
)

// Document kinds
const (
	KindText  = "text"
	KindLaTeX = "latex"
	KindPDF   = "pdf"
	KindHTML  = "html"
)

// Document is cleaned text ready for keyword extraction
type Document struct {
	Text     string
	Metadata *Metadata
}

// LoadFile reads a resume or job description from disk. The format is chosen
// by extension: .pdf is parsed, .tex is stripped of markup, anything else is
// treated as plain text.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %w", err)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var text, kind string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		text, err = pdfText(data)
		if err != nil {
			return nil, fmt.Errorf("failed to extract text from %s: %w", path, err)
		}
		kind = KindPDF
	case ".tex":
		text, kind = StripLaTeX(string(data)), KindLaTeX
	default:
		text, kind = string(data), KindText
	}

	return newDocument(text, path, kind)
}

// LoadURL fetches a job posting and reduces it to text.
func LoadURL(ctx context.Context, url string, opts *fetch.Options) (*Document, error) {
	result, err := fetch.URL(ctx, url, opts)
	if err != nil {
		return nil, err
	}
	return newDocument(result.Text, url, KindHTML)
}

func newDocument(raw, source, kind string) (*Document, error) {
	text := CleanText(raw)
	if text == "" {
		return nil, fmt.Errorf("no text found in %s", source)
	}
	return &Document{Text: text, Metadata: NewMetadata(text, source, kind)}, nil
}

func pdfText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to read page %d: %w", i, err)
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}
