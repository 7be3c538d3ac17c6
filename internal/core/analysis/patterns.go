package analysis

import (
	"regexp"

	"github.com/rpzk/clindoc/internal/core/domain"
)

// Pattern group names. Extraction code asks the library for a group and gets
// an ordered list of label-anchored patterns; the first capture group of each
// pattern is the extracted value.
const (
	GroupIdentityName       = "identity.name"
	GroupIdentityNationalID = "identity.national_id"
	GroupIdentityBirthDate  = "identity.birth_date"
	GroupIdentityRecord     = "identity.record_number"

	GroupDate          = "clinical.date"
	GroupAuthor        = "clinical.author"
	GroupBloodPressure = "vitals.blood_pressure"
	GroupHeartRate     = "vitals.heart_rate"
	GroupTemperature   = "vitals.temperature"
	GroupWeight        = "vitals.weight"
	GroupHeight        = "vitals.height"
	GroupObservations  = "clinical.observations"

	GroupMedicationFull     = "medication.full"
	GroupMedicationShort    = "medication.short"
	GroupMedicationDuration = "medication.duration"
	GroupExamResult         = "exam.result"
	GroupDiagnosis          = "clinical.diagnosis"

	GroupRegName       = "registration.name"
	GroupRegNationalID = "registration.national_id"
	GroupRegOfficialID = "registration.official_id"
	GroupRegBirthDate  = "registration.birth_date"
	GroupRegSex        = "registration.sex"
	GroupRegPhone      = "registration.phone"
	GroupRegMobile     = "registration.mobile"
	GroupRegEmail      = "registration.email"
	GroupRegAddress    = "registration.address"
	GroupRegCity       = "registration.city"
	GroupRegState      = "registration.state"
	GroupRegPostalCode = "registration.postal_code"
	GroupRegBloodType  = "registration.blood_type"
	GroupRegAllergies  = "registration.allergies"
	GroupRegInsurance  = "registration.insurance"
	GroupRegEmergency  = "registration.emergency_contact"
)

// LiteralRule is one high-precision classification cue. Rules are evaluated
// in declaration order and the first hit short-circuits classification, so
// the rule list doubles as the documented precedence contract.
type LiteralRule struct {
	Name string
	Type domain.DocumentType
	// All phrases must be present for the rule to fire.
	All []string
	// Any fires the rule when at least one phrase is present.
	Any []string
}

// Library is the immutable pattern set the whole engine runs against. It is
// built once and passed into pure extraction functions; there is no package
// level mutable state.
type Library struct {
	literal  []LiteralRule
	priority []domain.DocumentType
	cues     map[domain.DocumentType][]string
	groups   map[string][]*regexp.Regexp
	symptoms []string
}

func (l Library) LiteralRules() []LiteralRule         { return l.literal }
func (l Library) TypePriority() []domain.DocumentType { return l.priority }
func (l Library) Cues(t domain.DocumentType) []string { return l.cues[t] }
func (l Library) Group(name string) []*regexp.Regexp  { return l.groups[name] }
func (l Library) SymptomVocabulary() []string         { return l.symptoms }

// DefaultLibrary builds the built-in pattern set for Brazilian Portuguese
// clinical documents. Label synonyms are listed per group so recall can be
// extended without touching extraction code; see ApplyOverlay for external
// additions.
func DefaultLibrary() Library {
	mustAll := func(exprs ...string) []*regexp.Regexp {
		out := make([]*regexp.Regexp, 0, len(exprs))
		for _, expr := range exprs {
			out = append(out, regexp.MustCompile(expr))
		}
		return out
	}

	groups := map[string][]*regexp.Regexp{
		GroupIdentityName: mustAll(
			`(?i)\bpaciente\s*[:\-]\s*([^\n]+)`,
			`(?i)\bnome(?:\s+completo)?\s*[:\-]\s*([^\n]+)`,
			`(?m)^([A-ZÀ-Ú][a-zà-ÿ]+(?: (?:d[aeo]s? )?[A-ZÀ-Ú][a-zà-ÿ]+)+)\s*$`,
		),
		GroupIdentityNationalID: mustAll(
			`(?i)\bcpf\s*(?:n[ºo°.]?)?\s*[:\-]?\s*(\d{3}[.\s]?\d{3}[.\s]?\d{3}[\-.\s]?\d{2})`,
		),
		GroupIdentityBirthDate: mustAll(
			`(?i)(?:data\s+de\s+nascimento|nascid[oa]\s+em|nascimento|\bd\.?n\b)\.?\s*[:\-]?\s*(\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4})`,
		),
		GroupIdentityRecord: mustAll(
			`(?i)(?:prontu[áa]rio|registro|matr[íi]cula)\s*(?:n[ºo°.]?)?\s*[:\-]?\s*(\d{3,})`,
		),

		GroupDate: mustAll(
			`\b(\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4})\b`,
		),
		GroupAuthor: mustAll(
			`(?i)\b(?:dr[a]?\.|doutor[a]?|m[ée]dic[oa])\s*[:\-]?\s*([A-ZÀ-Ú][A-Za-zà-ÿ]+(?:\s+(?:d[aeo]s?\s+)?[A-ZÀ-Ú][A-Za-zà-ÿ]+)*)`,
		),
		GroupBloodPressure: mustAll(
			`(?i)(?:press[ãa]o(?:\s+arterial)?|\bpa\b)\s*[:\-]?\s*(\d{2,3}\s*[x/]\s*\d{2,3})`,
		),
		GroupHeartRate: mustAll(
			`(?i)(?:frequ[êe]ncia\s+card[íi]aca|\bfc\b|\bpulso\b)\s*[:\-]?\s*(\d{2,3}(?:\s*bpm)?)`,
		),
		GroupTemperature: mustAll(
			`(?i)(?:temperatura(?:\s+axilar)?|\btax\b|\btemp\b)\.?\s*[:\-]?\s*(\d{2}(?:[.,]\d)?\s*°?\s*C?)`,
		),
		GroupWeight: mustAll(
			`(?i)\bpeso\s*[:\-]?\s*(\d{1,3}(?:[.,]\d{1,2})?\s*kg)`,
		),
		GroupHeight: mustAll(
			`(?i)\baltura\s*[:\-]?\s*(\d(?:[.,]\d{1,2})?\s*m\b|\d{3}\s*cm)`,
		),
		GroupObservations: mustAll(
			`(?im)^\s*(?:observa[çc][õo]es|observa[çc][ãa]o|obs)\.?\s*[:\-]\s*(.+)$`,
		),

		GroupMedicationFull: mustAll(
			`(?i)\b([A-ZÀ-Ú][A-Za-zà-ÿ]+)\s+(\d+\s?(?:mg|mcg|g|ml|ui|gotas)\b)[\s,\-]*((?:\d+\s*(?:comprimidos?|c[áa]psulas?|gotas|ml)\s*)?(?:de\s*)?(?:\d{1,2}\s*/\s*\d{1,2}\s*h(?:oras)?|\d+\s*x\s*(?:ao\s*)?dia|a\s*cada\s*\d+\s*horas?|\d+\s*vez(?:es)?\s*(?:ao|por)\s*dia)[^\n,;]*)`,
		),
		GroupMedicationShort: mustAll(
			`(?i)\b([A-ZÀ-Ú][A-Za-zà-ÿ]+)\s+(\d+\s?(?:mg|mcg|g|ml|ui|gotas)\b)`,
		),
		GroupMedicationDuration: mustAll(
			`(?i)\b(?:por|durante)\s+(\d+\s*(?:dias?|semanas?|meses)\b)`,
		),
		GroupExamResult: mustAll(
			`(?im)^\s*[-*•]?\s*([A-Za-zÀ-ÿ][A-Za-zÀ-ÿ ]{1,40}?)\s*[:\-]\s*(\d+(?:[.,]\d+)?)\s*(?:[a-zA-Zµ%]+(?:/[a-zA-Zµ]+)?)?\s*(?:\(([^)]+)\))?`,
		),
		GroupDiagnosis: mustAll(
			`(?im)^\s*(?:diagn[óo]stico|hip[óo]tese\s+diagn[óo]stica|\bhd\b|cid(?:-?10)?|conclus[ãa]o)\s*[:\-]\s*(.+)$`,
		),

		GroupRegName: mustAll(
			`(?i)\bnome(?:\s+completo)?\s*[:\-]\s*([^\n]+)`,
			`(?i)\bpaciente\s*[:\-]\s*([^\n]+)`,
		),
		GroupRegNationalID: mustAll(
			`(?i)\bcpf\s*(?:n[ºo°.]?)?\s*[:\-]?\s*(\d{3}[.\s]?\d{3}[.\s]?\d{3}[\-.\s]?\d{2})`,
		),
		GroupRegOfficialID: mustAll(
			`(?i)\brg\s*(?:n[ºo°.]?)?\s*[:\-]?\s*([\d.\-]{5,15}[xX]?)`,
		),
		GroupRegBirthDate: mustAll(
			`(?i)(?:data\s+de\s+nascimento|nascid[oa]\s+em|nascimento)\s*[:\-]?\s*(\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4})`,
		),
		GroupRegSex: mustAll(
			`(?i)\bsexo\s*[:\-]\s*(masculino|feminino|\bm\b|\bf\b)`,
		),
		GroupRegPhone: mustAll(
			`(?i)\b(?:telefone|fone|tel)\.?\s*[:\-]\s*([\d\s()+\-]{8,20})`,
		),
		GroupRegMobile: mustAll(
			`(?i)\bcelular\s*[:\-]\s*([\d\s()+\-]{8,20})`,
		),
		GroupRegEmail: mustAll(
			`(?i)\be-?mail\s*[:\-]\s*([\w.+\-]+@[\w.\-]+\.\w{2,})`,
		),
		GroupRegAddress: mustAll(
			`(?i)\bendere[çc]o\s*[:\-]\s*([^\n]+)`,
			`(?i)\b(?:rua|avenida|av\.|travessa|alameda)\s+([^\n]+)`,
		),
		GroupRegCity: mustAll(
			`(?i)\bcidade\s*[:\-]\s*([^\n,]+)`,
		),
		GroupRegState: mustAll(
			`(?i)\b(?:estado|uf)\s*[:\-]\s*([A-Za-zÀ-ÿ ]{2,20})`,
		),
		GroupRegPostalCode: mustAll(
			`(?i)\bcep\s*[:\-]?\s*(\d{5}-?\d{3})`,
		),
		GroupRegBloodType: mustAll(
			`(?i)(?:tipo\s+sangu[íi]neo|sangue)\s*[:\-]\s*((?:AB|A|B|O)[+\-])`,
		),
		GroupRegAllergies: mustAll(
			`(?i)\balergias?\s*[:\-]\s*([^\n]+)`,
		),
		GroupRegInsurance: mustAll(
			`(?i)\b(?:conv[êe]nio|plano(?:\s+de\s+sa[úu]de)?)\s*[:\-]\s*([^\n]+)`,
		),
		GroupRegEmergency: mustAll(
			`(?i)\b(?:contato\s+de\s+emerg[êe]ncia|emerg[êe]ncia)\s*[:\-]\s*([^\n]+)`,
		),
	}

	return Library{
		literal: []LiteralRule{
			{Name: "exam-result-literal", Type: domain.TypeExamResult, All: []string{"resultado", "exame"}},
			{Name: "prescription-literal", Type: domain.TypePrescription, Any: []string{"prescrição", "prescricao", "receita médica", "receita medica"}},
			{Name: "certificate-literal", Type: domain.TypeCertificate, Any: []string{"atestado médico", "atestado medico"}},
			{Name: "report-literal", Type: domain.TypeReport, Any: []string{"laudo médico", "laudo medico"}},
			{Name: "intake-literal", Type: domain.TypeIntakeHistory, Any: []string{"anamnese", "história clínica", "historia clinica"}},
			{Name: "progress-literal", Type: domain.TypeProgressNote, Any: []string{"evolução", "evolucao", "internação", "internacao"}},
		},
		priority: []domain.DocumentType{
			domain.TypeExamResult,
			domain.TypePrescription,
			domain.TypeCertificate,
			domain.TypeReport,
			domain.TypeIntakeHistory,
			domain.TypeProgressNote,
			domain.TypePrescriptionCopy,
		},
		cues: map[domain.DocumentType][]string{
			domain.TypeProgressNote: {
				"evolução", "evolucao", "paciente evoluiu", "quadro clínico", "quadro clinico",
				"internação", "internacao", "conduta", "exame físico", "exame fisico", "plantão", "plantao",
			},
			domain.TypeExamResult: {
				"resultado", "exame", "laboratório", "laboratorio", "hemograma", "glicemia",
				"colesterol", "valores de referência", "valores de referencia", "material: sangue",
			},
			domain.TypePrescription: {
				"prescrição", "prescricao", "prescrevo", "posologia", "uso contínuo", "uso continuo",
				"comprimido", "via oral", "tomar",
			},
			domain.TypeIntakeHistory: {
				"anamnese", "história clínica", "historia clinica", "queixa principal",
				"história da doença atual", "historia da doenca atual", "antecedentes", "história familiar", "historia familiar",
			},
			domain.TypeCertificate: {
				"atestado", "afastamento", "repouso", "atesto", "fins trabalhistas",
			},
			domain.TypePrescriptionCopy: {
				"receita", "receituário", "receituario", "farmácia", "farmacia", "uso interno", "uso externo",
			},
			domain.TypeReport: {
				"laudo", "parecer", "impressão diagnóstica", "impressao diagnostica", "achados", "conclusão", "conclusao",
			},
		},
		groups: groups,
		symptoms: []string{
			"febre", "dor de cabeça", "cefaleia", "tosse", "dor abdominal", "náusea", "nausea",
			"vômito", "vomito", "diarreia", "fadiga", "cansaço", "cansaco", "tontura", "dispneia",
			"falta de ar", "dor no peito", "calafrios", "mialgia", "dor de garganta", "coriza",
			"prurido", "edema", "inapetência", "inapetencia", "insônia", "insonia",
		},
	}
}
