package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/rpzk/clindoc/internal/core/analysis"
	"github.com/rpzk/clindoc/internal/core/domain"
	"github.com/rpzk/clindoc/internal/core/ports"
)

type AnalyzeDocumentUseCase struct {
	repo      ports.DocumentRepository
	extractor ports.TextExtractor
	engine    *analysis.Engine
}

func NewAnalyzeDocumentUseCase(
	repo ports.DocumentRepository,
	extractor ports.TextExtractor,
	engine *analysis.Engine,
) *AnalyzeDocumentUseCase {
	return &AnalyzeDocumentUseCase{
		repo:      repo,
		extractor: extractor,
		engine:    engine,
	}
}

// AnalyzeByID loads the document, extracts its plain text and runs the
// analysis engine, persisting the result and driving the status lifecycle.
// A failure at any stage marks the document failed; the error message lands
// on the record so reviewers see why.
func (uc *AnalyzeDocumentUseCase) AnalyzeByID(ctx context.Context, documentID string) error {
	if err := uc.markStatus(ctx, documentID, domain.StatusProcessing, ""); err != nil {
		return fmt.Errorf("set status=processing: %w", err)
	}

	result, err := uc.analyzePipeline(ctx, documentID)
	if err != nil {
		if failErr := uc.markFailed(ctx, documentID, err); failErr != nil {
			return fmt.Errorf("%w; mark failed status: %v", err, failErr)
		}
		return err
	}

	if err := uc.repo.SaveAnalysis(ctx, documentID, result); err != nil {
		saveErr := fmt.Errorf("save analysis: %w", err)
		if failErr := uc.markFailed(ctx, documentID, saveErr); failErr != nil {
			return fmt.Errorf("%w; mark failed status: %v", saveErr, failErr)
		}
		return saveErr
	}

	if err := uc.markStatus(ctx, documentID, domain.StatusAnalyzed, ""); err != nil {
		return fmt.Errorf("set status=analyzed: %w", err)
	}

	return nil
}

func (uc *AnalyzeDocumentUseCase) analyzePipeline(ctx context.Context, documentID string) (domain.AnalysisResult, error) {
	doc, err := uc.repo.GetByID(ctx, documentID)
	if err != nil {
		return domain.AnalysisResult{}, fmt.Errorf("fetch document by id: %w", err)
	}

	text, err := uc.extractor.Extract(ctx, doc)
	if err != nil {
		return domain.AnalysisResult{}, fmt.Errorf("extract text: %w", err)
	}
	if text == "" {
		return domain.AnalysisResult{}, domain.WrapError(domain.ErrInvalidInput, "extract text", errors.New("empty extracted text"))
	}

	result, err := uc.engine.Analyze(doc.ID, text)
	if err != nil {
		return domain.AnalysisResult{}, fmt.Errorf("run analysis engine: %w", err)
	}
	return result, nil
}

func (uc *AnalyzeDocumentUseCase) markStatus(ctx context.Context, documentID string, status domain.DocumentStatus, errMessage string) error {
	return uc.repo.UpdateStatus(ctx, documentID, status, errMessage)
}

func (uc *AnalyzeDocumentUseCase) markFailed(ctx context.Context, documentID string, processErr error) error {
	if processErr == nil {
		return nil
	}
	return uc.markStatus(ctx, documentID, domain.StatusFailed, processErr.Error())
}
