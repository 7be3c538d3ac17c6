package ports

import (
	"context"
	"io"

	"github.com/rpzk/clindoc/internal/core/domain"
)

// DocumentRepository persists document state and analysis output.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	UpdateStatus(ctx context.Context, id string, status domain.DocumentStatus, errMessage string) error
	SaveAnalysis(ctx context.Context, id string, res domain.AnalysisResult) error
	GetAnalysis(ctx context.Context, id string) (*domain.AnalysisResult, error)
}

// PatientRepository is the patient store the registration pipeline upserts
// against. The engine core never touches it directly.
type PatientRepository interface {
	Create(ctx context.Context, patient *domain.Patient) error
	Update(ctx context.Context, patient *domain.Patient) error
	FindByNationalIDSuffix(ctx context.Context, suffix string) (*domain.Patient, error)
	FindByNameFragment(ctx context.Context, fragment string) (*domain.Patient, error)
}

// ObjectStorage stores the raw uploaded documents.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// MessageQueue publishes/consumes document-ingested events.
type MessageQueue interface {
	PublishDocumentIngested(ctx context.Context, documentID string) error
	SubscribeDocumentIngested(ctx context.Context, handler func(context.Context, string) error) error
}

// TextExtractor turns a stored document into the plain text the engine
// consumes. Binary formats are this boundary's problem, never the engine's.
type TextExtractor interface {
	Extract(ctx context.Context, doc *domain.Document) (string, error)
}
