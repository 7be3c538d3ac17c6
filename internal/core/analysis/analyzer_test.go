package analysis

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rpzk/clindoc/internal/core/domain"
)

func newTestEngine() *Engine {
	return NewEngine(DefaultLibrary(), DefaultWeights())
}

func TestAnalyzeEmptyTextIsInvalidInput(t *testing.T) {
	engine := newTestEngine()

	for _, text := range []string{"", "   \n\t  "} {
		if _, err := engine.Analyze("doc-1", text); !domain.IsKind(err, domain.ErrInvalidInput) {
			t.Fatalf("Analyze(%q) error = %v, want ErrInvalidInput", text, err)
		}
	}
}

func TestAnalyzePrescriptionEndToEnd(t *testing.T) {
	engine := newTestEngine()

	text := "PRESCRIÇÃO\n" +
		"Paciente: Maria da Silva Souza\n" +
		"CPF: 123.456.789-10\n" +
		"Data: 10/02/2024\n" +
		"\n" +
		"Ciprofloxacino 500mg, 1 comprimido de 12/12 horas por 7 dias\n"

	res, err := engine.Analyze("doc-1", text)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if res.Type != domain.TypePrescription {
		t.Fatalf("Type = %q, want %q", res.Type, domain.TypePrescription)
	}
	if res.Identity.NationalID != "12345678910" {
		t.Fatalf("NationalID = %q", res.Identity.NationalID)
	}
	if len(res.Clinical.Medications) != 1 {
		t.Fatalf("Medications = %+v", res.Clinical.Medications)
	}

	// Primary action first, identity update last.
	if len(res.Actions) != 2 {
		t.Fatalf("Actions = %+v, want create_prescription plus update_patient", res.Actions)
	}
	if res.Actions[0].Kind != domain.ActionCreatePrescription {
		t.Fatalf("Actions[0] = %q", res.Actions[0].Kind)
	}
	if res.Actions[1].Kind != domain.ActionUpdatePatient {
		t.Fatalf("Actions[1] = %q", res.Actions[1].Kind)
	}

	if res.Confidence <= 0 || res.Confidence > 1 {
		t.Fatalf("Confidence = %v, out of range", res.Confidence)
	}
}

func TestAnalyzeUnrecognizedTextIsOtherWithNoActions(t *testing.T) {
	engine := newTestEngine()

	res, err := engine.Analyze("doc-1", "bom dia, tudo bem com você")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if res.Type != domain.TypeOther {
		t.Fatalf("Type = %q, want %q", res.Type, domain.TypeOther)
	}
	if len(res.Actions) != 0 {
		t.Fatalf("Actions = %+v, want none", res.Actions)
	}
	if res.Confidence != 0 {
		t.Fatalf("Confidence = %v, want 0", res.Confidence)
	}
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	engine := newTestEngine()

	text := "EVOLUÇÃO\n" +
		"Paciente: Maria da Silva Souza\n" +
		"CPF: 123.456.789-10\n" +
		"Paciente refere febre e tosse.\n" +
		"PA: 120x80 FC: 78 bpm\n" +
		"Diagnóstico: ivas\n"

	first, err := engine.Analyze("doc-1", text)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	second, err := engine.Analyze("doc-1", text)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	firstJSON, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	secondJSON, err := json.Marshal(second)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !bytes.Equal(firstJSON, secondJSON) {
		t.Fatalf("serializations differ:\n%s\n%s", firstJSON, secondJSON)
	}
}
