package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rpzk/clindoc/internal/core/analysis"
	"github.com/rpzk/clindoc/internal/core/domain"
)

type fakeTextExtractor struct {
	text string
	err  error
}

func (f *fakeTextExtractor) Extract(context.Context, *domain.Document) (string, error) {
	return f.text, f.err
}

func fixtureDocument() *domain.Document {
	now := time.Now().UTC()
	return &domain.Document{
		ID:          "doc-1",
		Filename:    "prescricao.txt",
		MimeType:    "text/plain",
		StoragePath: "doc-1_prescricao.txt",
		Status:      domain.StatusUploaded,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func newAnalyzeUseCase(repo *fakeDocumentRepo, extractor *fakeTextExtractor) *AnalyzeDocumentUseCase {
	engine := analysis.NewEngine(analysis.DefaultLibrary(), analysis.DefaultWeights())
	return NewAnalyzeDocumentUseCase(repo, extractor, engine)
}

func TestAnalyzeByIDHappyPath(t *testing.T) {
	repo := newFakeDocumentRepo()
	repo.doc = fixtureDocument()
	extractor := &fakeTextExtractor{text: "PRESCRIÇÃO\nCiprofloxacino 500mg, 1 comprimido de 12/12 horas por 7 dias\n"}
	uc := newAnalyzeUseCase(repo, extractor)

	if err := uc.AnalyzeByID(context.Background(), "doc-1"); err != nil {
		t.Fatalf("AnalyzeByID() error = %v", err)
	}

	wantStatuses := []domain.DocumentStatus{domain.StatusProcessing, domain.StatusAnalyzed}
	if len(repo.statuses) != len(wantStatuses) {
		t.Fatalf("statuses = %v, want %v", repo.statuses, wantStatuses)
	}
	for i, s := range wantStatuses {
		if repo.statuses[i] != s {
			t.Fatalf("statuses = %v, want %v", repo.statuses, wantStatuses)
		}
	}

	res, ok := repo.saved["doc-1"]
	if !ok {
		t.Fatalf("analysis was not saved")
	}
	if res.Type != domain.TypePrescription {
		t.Fatalf("Type = %q, want %q", res.Type, domain.TypePrescription)
	}
	if res.DocumentID != "doc-1" {
		t.Fatalf("DocumentID = %q", res.DocumentID)
	}
}

func TestAnalyzeByIDExtractionFailureMarksFailed(t *testing.T) {
	repo := newFakeDocumentRepo()
	repo.doc = fixtureDocument()
	extractor := &fakeTextExtractor{err: errors.New("corrupt pdf")}
	uc := newAnalyzeUseCase(repo, extractor)

	err := uc.AnalyzeByID(context.Background(), "doc-1")
	if err == nil || !strings.Contains(err.Error(), "extract text") {
		t.Fatalf("error = %v, want extract failure", err)
	}

	last := repo.statuses[len(repo.statuses)-1]
	if last != domain.StatusFailed {
		t.Fatalf("final status = %q, want %q", last, domain.StatusFailed)
	}
	if !strings.Contains(repo.errorMsg, "corrupt pdf") {
		t.Fatalf("error message = %q, want extractor cause recorded", repo.errorMsg)
	}
	if len(repo.saved) != 0 {
		t.Fatalf("saved = %v, want no analysis persisted", repo.saved)
	}
}

func TestAnalyzeByIDEmptyTextMarksFailed(t *testing.T) {
	repo := newFakeDocumentRepo()
	repo.doc = fixtureDocument()
	uc := newAnalyzeUseCase(repo, &fakeTextExtractor{text: ""})

	err := uc.AnalyzeByID(context.Background(), "doc-1")
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("error = %v, want ErrInvalidInput", err)
	}
	if last := repo.statuses[len(repo.statuses)-1]; last != domain.StatusFailed {
		t.Fatalf("final status = %q, want %q", last, domain.StatusFailed)
	}
}

func TestAnalyzeByIDMissingDocumentMarksFailed(t *testing.T) {
	repo := newFakeDocumentRepo()
	uc := newAnalyzeUseCase(repo, &fakeTextExtractor{text: "x"})

	err := uc.AnalyzeByID(context.Background(), "missing")
	if !domain.IsKind(err, domain.ErrDocumentNotFound) {
		t.Fatalf("error = %v, want ErrDocumentNotFound", err)
	}
	if last := repo.statuses[len(repo.statuses)-1]; last != domain.StatusFailed {
		t.Fatalf("final status = %q, want %q", last, domain.StatusFailed)
	}
}

func TestAnalyzeByIDSaveFailureMarksFailed(t *testing.T) {
	repo := newFakeDocumentRepo()
	repo.doc = fixtureDocument()
	repo.saveErr = errors.New("db gone")
	uc := newAnalyzeUseCase(repo, &fakeTextExtractor{text: "EVOLUÇÃO\nSegue estável\n"})

	err := uc.AnalyzeByID(context.Background(), "doc-1")
	if err == nil || !strings.Contains(err.Error(), "save analysis") {
		t.Fatalf("error = %v, want save failure", err)
	}
	if last := repo.statuses[len(repo.statuses)-1]; last != domain.StatusFailed {
		t.Fatalf("final status = %q, want %q", last, domain.StatusFailed)
	}
}
