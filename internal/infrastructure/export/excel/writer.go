// Package excel renders analysis results as a review worksheet, the tabular
// alternative to the plain-text report for batch human review.
package excel

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/rpzk/clindoc/internal/core/domain"
)

const sheetName = "Análises"

var headers = []string{
	"Documento", "Tipo", "Confiança", "Paciente", "CPF",
	"Medicamentos", "Exames", "Ações sugeridas",
}

type Writer struct{}

func NewWriter() *Writer {
	return &Writer{}
}

// Write renders one row per analysis. Rows follow input order so repeated
// exports of the same results are identical.
func (w *Writer) Write(out io.Writer, results []domain.AnalysisResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(sheetName, "A1", &headers); err != nil {
		return fmt.Errorf("write header row: %w", err)
	}

	for i, res := range results {
		row := []any{
			res.DocumentID,
			string(res.Type),
			fmt.Sprintf("%.0f%%", res.Confidence*100),
			res.Identity.Name,
			res.Identity.NationalID,
			medicationsCell(res.Clinical.Medications),
			examsCell(res.Clinical.ExamResults),
			actionsCell(res.Actions),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.Write(out); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func medicationsCell(meds []domain.Medication) string {
	parts := make([]string, 0, len(meds))
	for _, m := range meds {
		part := strings.TrimSpace(m.Name + " " + m.Dosage)
		if m.Frequency != "" {
			part += " " + m.Frequency
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, "; ")
}

func examsCell(entries []domain.ExamResultEntry) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, e.Name+": "+e.Value)
	}
	return strings.Join(parts, "; ")
}

func actionsCell(actions []domain.SuggestedAction) string {
	parts := make([]string, 0, len(actions))
	for _, a := range actions {
		parts = append(parts, fmt.Sprintf("%s (%.0f%%)", a.Kind, a.Confidence*100))
	}
	return strings.Join(parts, "; ")
}
