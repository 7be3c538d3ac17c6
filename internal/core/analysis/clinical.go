package analysis

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rpzk/clindoc/internal/core/domain"
)

var dateSplit = regexp.MustCompile(`[/\-.]`)

// ExtractClinicalData runs the always-on extractors plus the sub-pipeline for
// the given document type. Every miss is a soft miss: the field stays empty
// and extraction continues.
func ExtractClinicalData(lib Library, w Weights, text string, docType domain.DocumentType) domain.ClinicalData {
	var data domain.ClinicalData

	if m, ok := FirstMatch(text, lib.Group(GroupDate)); ok {
		if t, ok := parseBRDate(m.Group(1)); ok {
			data.Date = &t
		}
	}
	if m, ok := FirstMatch(text, lib.Group(GroupAuthor)); ok {
		data.Author = m.Group(1)
	}
	data.Vitals = extractVitals(lib, text)
	data.Observations = extractObservations(lib, text)

	switch docType {
	case domain.TypePrescription:
		data.Medications = extractMedications(lib, w, text)
	case domain.TypeExamResult:
		data.ExamResults = extractExamResults(lib, text)
	case domain.TypeProgressNote:
		data.Symptoms = matchSymptoms(lib, text)
		data.Diagnoses = extractDiagnoses(lib, text)
	}

	return data
}

func extractVitals(lib Library, text string) *domain.VitalSigns {
	v := domain.VitalSigns{}
	if m, ok := FirstMatch(text, lib.Group(GroupBloodPressure)); ok {
		v.BloodPressure = m.Group(1)
	}
	if m, ok := FirstMatch(text, lib.Group(GroupHeartRate)); ok {
		v.HeartRate = m.Group(1)
	}
	if m, ok := FirstMatch(text, lib.Group(GroupTemperature)); ok {
		v.Temperature = m.Group(1)
	}
	if m, ok := FirstMatch(text, lib.Group(GroupWeight)); ok {
		v.Weight = m.Group(1)
	}
	if m, ok := FirstMatch(text, lib.Group(GroupHeight)); ok {
		v.Height = m.Group(1)
	}
	if v.Empty() {
		return nil
	}
	return &v
}

func extractObservations(lib Library, text string) string {
	matches := AllMatches(text, lib.Group(GroupObservations))
	if len(matches) == 0 {
		return ""
	}
	parts := make([]string, 0, len(matches))
	for _, m := range matches {
		parts = append(parts, m.Group(1))
	}
	return strings.Join(parts, ". ")
}

// extractMedications applies the strict name+dosage+frequency pattern and the
// looser name+dosage fallback, keeping non-overlapping hits in document
// order. The duration is looked up only in a bounded window around each hit
// so one medication's "por 7 dias" never attaches to its neighbor.
func extractMedications(lib Library, w Weights, text string) []domain.Medication {
	patterns := append(append([]*regexp.Regexp(nil),
		lib.Group(GroupMedicationFull)...),
		lib.Group(GroupMedicationShort)...)

	matches := AllMatches(text, patterns)
	if len(matches) == 0 {
		return nil
	}

	meds := make([]domain.Medication, 0, len(matches))
	for _, m := range matches {
		med := domain.Medication{
			Name:      m.Group(1),
			Dosage:    m.Group(2),
			Frequency: m.Group(3),
		}
		med.Duration = durationNear(lib, w, text, m)
		meds = append(meds, med)
	}
	return meds
}

func durationNear(lib Library, w Weights, text string, m Match) string {
	start := m.Start - w.DurationWindowBefore
	if start < 0 {
		start = 0
	}
	end := m.End + w.DurationWindowAfter
	if end > len(text) {
		end = len(text)
	}
	window := safeSlice(text, start, end)
	if d, ok := FirstMatch(window, lib.Group(GroupMedicationDuration)); ok {
		return d.Group(1)
	}
	return ""
}

// safeSlice widens byte offsets to rune boundaries so windowing around a
// match never splits a multi-byte character.
func safeSlice(text string, start, end int) string {
	for start > 0 && !utf8RuneStart(text[start]) {
		start--
	}
	for end < len(text) && !utf8RuneStart(text[end]) {
		end++
	}
	return text[start:end]
}

func utf8RuneStart(b byte) bool { return b&0xC0 != 0x80 }

func extractExamResults(lib Library, text string) []domain.ExamResultEntry {
	matches := AllMatches(text, lib.Group(GroupExamResult))
	if len(matches) == 0 {
		return nil
	}
	out := make([]domain.ExamResultEntry, 0, len(matches))
	for _, m := range matches {
		name := m.Group(1)
		if name == "" {
			continue
		}
		out = append(out, domain.ExamResultEntry{
			Name:      name,
			Value:     m.Group(2),
			Reference: m.Group(3),
		})
	}
	return out
}

// matchSymptoms is presence/absence over a fixed vocabulary, not free
// extraction: each term is word-boundary matched case-insensitively and
// reported at most once, in vocabulary order.
func matchSymptoms(lib Library, text string) []string {
	lower := strings.ToLower(text)
	var hits []string
	for _, term := range lib.SymptomVocabulary() {
		re := symptomPattern(term)
		if re.MatchString(lower) {
			hits = append(hits, term)
		}
	}
	return hits
}

func symptomPattern(term string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`)
}

func extractDiagnoses(lib Library, text string) []string {
	matches := AllMatches(text, lib.Group(GroupDiagnosis))
	if len(matches) == 0 {
		return nil
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Group(1))
	}
	return out
}

// parseBRDate parses dd/mm/yyyy-family strings best-effort. Anything that is
// not a real calendar date is dropped silently, per the soft-miss policy.
func parseBRDate(raw string) (time.Time, bool) {
	parts := dateSplit.Split(raw, -1)
	if len(parts) != 3 {
		return time.Time{}, false
	}
	day, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	year, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, false
	}
	if year < 100 {
		year += 2000
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || int(t.Month()) != month {
		return time.Time{}, false
	}
	return t, true
}
