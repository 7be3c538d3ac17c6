package ports

import (
	"context"
	"io"

	"github.com/rpzk/clindoc/internal/core/domain"
)

// DocumentIngestor is the inbound contract for document upload orchestration.
type DocumentIngestor interface {
	Upload(ctx context.Context, filename, mimeType, patientID string, body io.Reader) (*domain.Document, error)
}

// DocumentAnalyzer is the inbound contract for asynchronous analysis.
type DocumentAnalyzer interface {
	AnalyzeByID(ctx context.Context, documentID string) error
}

// DocumentReader is the inbound read model for documents and their analyses.
type DocumentReader interface {
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	GetAnalysis(ctx context.Context, id string) (*domain.AnalysisResult, error)
}

// RegistrationImporter is the single entry point of the registration
// pipeline: extract demographics, resolve against the patient store, report
// what happened and how complete the registration was.
type RegistrationImporter interface {
	Import(ctx context.Context, text string) (*domain.RegistrationOutcome, error)
}
