// Package pdftext extracts plain text from PDF documents at the storage
// boundary. The analysis engine itself only ever sees the resulting text.
package pdftext

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/rpzk/clindoc/internal/core/domain"
	"github.com/rpzk/clindoc/internal/core/ports"
)

type Extractor struct {
	storage ports.ObjectStorage
	// fallback handles every non-PDF mime type.
	fallback ports.TextExtractor
}

func NewExtractor(storage ports.ObjectStorage, fallback ports.TextExtractor) *Extractor {
	return &Extractor{storage: storage, fallback: fallback}
}

func (e *Extractor) Extract(ctx context.Context, doc *domain.Document) (string, error) {
	if !isPDF(doc) {
		return e.fallback.Extract(ctx, doc)
	}

	reader, err := e.storage.Open(ctx, doc.StoragePath)
	if err != nil {
		return "", fmt.Errorf("open source document: %w", err)
	}
	defer reader.Close()

	raw, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("read source document: %w", err)
	}

	parsed, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", fmt.Errorf("parse pdf: %w", err)
	}

	var b strings.Builder
	for page := 1; page <= parsed.NumPage(); page++ {
		p := parsed.Page(page)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("extract pdf page %d: %w", page, err)
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String()), nil
}

func isPDF(doc *domain.Document) bool {
	if strings.EqualFold(doc.MimeType, "application/pdf") {
		return true
	}
	return strings.HasSuffix(strings.ToLower(doc.Filename), ".pdf")
}
