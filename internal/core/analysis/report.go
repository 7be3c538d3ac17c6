package analysis

import (
	"fmt"
	"strings"

	"github.com/rpzk/clindoc/internal/core/domain"
)

var typeLabels = map[domain.DocumentType]string{
	domain.TypeProgressNote:     "Evolução Médica",
	domain.TypeExamResult:       "Resultado de Exame",
	domain.TypePrescription:     "Prescrição Médica",
	domain.TypeIntakeHistory:    "Anamnese",
	domain.TypeCertificate:      "Atestado Médico",
	domain.TypePrescriptionCopy: "Receita Médica",
	domain.TypeReport:           "Laudo Médico",
	domain.TypeOther:            "Documento Não Classificado",
}

var actionLabels = map[domain.ActionKind]string{
	domain.ActionCreateConsultation:  "Criar registro de consulta",
	domain.ActionAddExamResult:       "Anexar resultado de exame",
	domain.ActionCreatePrescription:  "Criar prescrição",
	domain.ActionUpdatePatient:       "Atualizar cadastro do paciente",
	domain.ActionCreateMedicalRecord: "Criar prontuário",
}

// RenderReport formats one analysis as a sectioned plain-text review report.
// Sections appear only when they have content; the output is deterministic
// for a given result.
func RenderReport(res domain.AnalysisResult) string {
	var b strings.Builder

	b.WriteString("=== ANÁLISE DE DOCUMENTO ===\n")
	fmt.Fprintf(&b, "Tipo: %s\n", typeLabel(res.Type))
	fmt.Fprintf(&b, "Confiança geral: %.0f%%\n", res.Confidence*100)

	if res.Identity.Confidence > 0 {
		b.WriteString("\n--- Paciente ---\n")
		writeField(&b, "Nome", res.Identity.Name)
		writeField(&b, "CPF", res.Identity.NationalID)
		writeField(&b, "Nascimento", res.Identity.BirthDate)
		writeField(&b, "Prontuário", res.Identity.RecordNumber)
		fmt.Fprintf(&b, "Confiança da identificação: %.0f%%\n", res.Identity.Confidence*100)
	}

	if res.Clinical.Date != nil || res.Clinical.Author != "" {
		b.WriteString("\n--- Documento ---\n")
		if res.Clinical.Date != nil {
			fmt.Fprintf(&b, "Data: %s\n", res.Clinical.Date.Format("02/01/2006"))
		}
		writeField(&b, "Autor", res.Clinical.Author)
	}

	if v := res.Clinical.Vitals; v != nil && !v.Empty() {
		b.WriteString("\n--- Sinais Vitais ---\n")
		writeField(&b, "Pressão arterial", v.BloodPressure)
		writeField(&b, "Frequência cardíaca", v.HeartRate)
		writeField(&b, "Temperatura", v.Temperature)
		writeField(&b, "Peso", v.Weight)
		writeField(&b, "Altura", v.Height)
	}

	if len(res.Clinical.Medications) > 0 {
		b.WriteString("\n--- Medicamentos ---\n")
		for i, med := range res.Clinical.Medications {
			fmt.Fprintf(&b, "%d. %s %s", i+1, med.Name, med.Dosage)
			if med.Frequency != "" {
				fmt.Fprintf(&b, " — %s", med.Frequency)
			}
			if med.Duration != "" {
				fmt.Fprintf(&b, " (%s)", med.Duration)
			}
			b.WriteString("\n")
		}
	}

	if len(res.Clinical.ExamResults) > 0 {
		b.WriteString("\n--- Resultados de Exames ---\n")
		for _, entry := range res.Clinical.ExamResults {
			fmt.Fprintf(&b, "%s: %s", entry.Name, entry.Value)
			if entry.Reference != "" {
				fmt.Fprintf(&b, " (ref.: %s)", entry.Reference)
			}
			b.WriteString("\n")
		}
	}

	if len(res.Clinical.Symptoms) > 0 {
		b.WriteString("\n--- Sintomas ---\n")
		fmt.Fprintf(&b, "%s\n", strings.Join(res.Clinical.Symptoms, ", "))
	}

	if len(res.Clinical.Diagnoses) > 0 {
		b.WriteString("\n--- Diagnósticos ---\n")
		for _, d := range res.Clinical.Diagnoses {
			fmt.Fprintf(&b, "- %s\n", d)
		}
	}

	if res.Clinical.Observations != "" {
		b.WriteString("\n--- Observações ---\n")
		fmt.Fprintf(&b, "%s\n", res.Clinical.Observations)
	}

	if len(res.Actions) > 0 {
		b.WriteString("\n--- Ações Sugeridas ---\n")
		for i, action := range res.Actions {
			fmt.Fprintf(&b, "%d. %s (%.0f%%)\n", i+1, actionLabel(action.Kind), action.Confidence*100)
		}
	}

	return b.String()
}

func typeLabel(t domain.DocumentType) string {
	if label, ok := typeLabels[t]; ok {
		return label
	}
	return string(t)
}

func actionLabel(k domain.ActionKind) string {
	if label, ok := actionLabels[k]; ok {
		return label
	}
	return string(k)
}

func writeField(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "%s: %s\n", label, value)
}
