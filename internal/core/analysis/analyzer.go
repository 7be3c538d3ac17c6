package analysis

import (
	"errors"
	"strings"

	"github.com/rpzk/clindoc/internal/core/domain"
)

// Engine is the deterministic document-analysis pipeline. It holds only the
// immutable pattern library and the scoring weights, so analyses of distinct
// documents can run fully in parallel without coordination.
type Engine struct {
	lib     Library
	weights Weights
}

func NewEngine(lib Library, weights Weights) *Engine {
	return &Engine{lib: lib, weights: weights}
}

// Analyze classifies the text, runs the type-dispatched and always-on
// extractors plus the identity extractor, recommends actions and aggregates
// the overall confidence. The only failure mode is empty input; every missing
// field inside a non-empty document is a soft miss reflected in confidence,
// never an error.
func (e *Engine) Analyze(documentID, text string) (domain.AnalysisResult, error) {
	if strings.TrimSpace(text) == "" {
		return domain.AnalysisResult{}, domain.WrapError(domain.ErrInvalidInput, "analyze document", errors.New("empty document text"))
	}

	docType := Classify(e.lib, text)
	identity := ExtractIdentity(e.lib, e.weights, text)
	clinical := ExtractClinicalData(e.lib, e.weights, text, docType)
	actions := SuggestActions(e.weights, docType, clinical, identity)

	return domain.AnalysisResult{
		DocumentID: documentID,
		Type:       docType,
		Confidence: Aggregate(e.weights, docType, identity, clinical),
		Identity:   identity,
		Clinical:   clinical,
		Actions:    actions,
	}, nil
}
