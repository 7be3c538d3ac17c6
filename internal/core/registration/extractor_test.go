package registration

import (
	"math"
	"testing"

	"github.com/rpzk/clindoc/internal/core/analysis"
	"github.com/rpzk/clindoc/internal/core/domain"
)

const scoreTolerance = 1e-9

func newTestExtractor() *Extractor {
	return NewExtractor(analysis.DefaultLibrary(), DefaultBudget())
}

func TestExtractEmptyTextIsInvalidInput(t *testing.T) {
	_, _, err := newTestExtractor().Extract("  \n ")
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("Extract() error = %v, want ErrInvalidInput", err)
	}
}

func TestExtractFullRegistrationForm(t *testing.T) {
	text := "FICHA DE CADASTRO\n" +
		"Nome: João Carlos Pereira\n" +
		"CPF: 987.654.321-00\n" +
		"RG: 12.345.678-9\n" +
		"Data de Nascimento: 05/07/1978\n" +
		"Sexo: M\n" +
		"Telefone: (11) 3456-7890\n" +
		"Celular: (11) 98765-4321\n" +
		"E-mail: joao.pereira@example.com\n" +
		"Endereço: Rua das Flores, 120\n" +
		"Cidade: São Paulo\n" +
		"UF: SP\n" +
		"CEP: 01234-567\n" +
		"Tipo Sanguíneo: o+\n" +
		"Alergias: penicilina\n" +
		"Convênio: Unimed\n" +
		"Contato de Emergência: Ana Pereira (11) 91234-5678\n"

	reg, confidence, err := newTestExtractor().Extract(text)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if reg.Name != "João Carlos Pereira" {
		t.Fatalf("Name = %q", reg.Name)
	}
	if reg.NationalID != "98765432100" {
		t.Fatalf("NationalID = %q, want digits only", reg.NationalID)
	}
	if reg.OfficialID != "12.345.678-9" {
		t.Fatalf("OfficialID = %q", reg.OfficialID)
	}
	if reg.BirthDate != "05/07/1978" {
		t.Fatalf("BirthDate = %q", reg.BirthDate)
	}
	if reg.Sex != "masculino" {
		t.Fatalf("Sex = %q, want normalized masculino", reg.Sex)
	}
	if reg.Phone != "(11) 3456-7890" {
		t.Fatalf("Phone = %q", reg.Phone)
	}
	if reg.Mobile != "(11) 98765-4321" {
		t.Fatalf("Mobile = %q", reg.Mobile)
	}
	if reg.Email != "joao.pereira@example.com" {
		t.Fatalf("Email = %q", reg.Email)
	}
	if reg.City != "São Paulo" {
		t.Fatalf("City = %q", reg.City)
	}
	if reg.PostalCode != "01234-567" {
		t.Fatalf("PostalCode = %q", reg.PostalCode)
	}
	if reg.BloodType != "O+" {
		t.Fatalf("BloodType = %q, want upper-cased", reg.BloodType)
	}
	if reg.Allergies != "penicilina" {
		t.Fatalf("Allergies = %q", reg.Allergies)
	}
	if reg.Insurance != "Unimed" {
		t.Fatalf("Insurance = %q", reg.Insurance)
	}

	if confidence != 1.0 {
		t.Fatalf("confidence = %v, want 1.0 for a complete form", confidence)
	}
}

func TestExtractPartialForm(t *testing.T) {
	text := "Nome: João Carlos Pereira\nCelular: (11) 98765-4321\n"

	reg, confidence, err := newTestExtractor().Extract(text)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if reg.Name == "" || reg.Mobile == "" {
		t.Fatalf("registration = %+v", reg)
	}

	b := DefaultBudget()
	want := (b.Name + b.Contact) / b.Scale
	if math.Abs(confidence-want) > scoreTolerance {
		t.Fatalf("confidence = %v, want %v", confidence, want)
	}
}

func TestNormalizeSex(t *testing.T) {
	tests := []struct{ in, want string }{
		{"M", "masculino"},
		{"f", "feminino"},
		{"Feminino", "feminino"},
		{"outro", "outro"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := normalizeSex(tt.in); got != tt.want {
			t.Fatalf("normalizeSex(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScoreCountsContactOnce(t *testing.T) {
	b := DefaultBudget()

	one := Score(b, domain.Registration{Phone: "11 3456-7890"})
	all := Score(b, domain.Registration{Phone: "11 3456-7890", Mobile: "11 98765-4321", Email: "x@example.com"})
	if math.Abs(one-all) > scoreTolerance {
		t.Fatalf("contact scored more than once: %v vs %v", one, all)
	}
	if want := b.Contact / b.Scale; math.Abs(one-want) > scoreTolerance {
		t.Fatalf("Score() = %v, want %v", one, want)
	}
}

func TestScoreEitherIDFillsTheIDSlot(t *testing.T) {
	b := DefaultBudget()

	national := Score(b, domain.Registration{NationalID: "98765432100"})
	official := Score(b, domain.Registration{OfficialID: "12.345.678-9"})
	both := Score(b, domain.Registration{NationalID: "98765432100", OfficialID: "12.345.678-9"})
	if national != official || national != both {
		t.Fatalf("ID slot scores differ: %v %v %v", national, official, both)
	}
}
