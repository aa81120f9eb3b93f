package report

import (
	"reflect"
	"testing"
	"time"

	"github.com/gp-assess/platform/internal/forms"
)

func testCtx(f forms.FormState) Context {
	return Context{
		State: f,
		Now:   time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestAssembleOmitsEmptySections(t *testing.T) {
	schema := Schema{
		{Heading: "Patient Details", Fields: []Extractor{Field("Name", "patient-name")}},
		{Heading: "Medical History", Fields: []Extractor{List("conditions")}},
		{Heading: "Examination", Fields: []Extractor{Field("BP", "exam-bp")}},
	}

	f := forms.New()
	f.Set("patient-name", "Jane Citizen")

	got := schema.Assemble(testCtx(f))
	if len(got) != 1 {
		t.Fatalf("Expected 1 section, got %d", len(got))
	}
	if got[0].Heading != "Patient Details" {
		t.Errorf("Unexpected section: %s", got[0].Heading)
	}
}

func TestFieldNAFallback(t *testing.T) {
	f := forms.New()
	got := FieldNA("Medicare", "patient-medicare")(testCtx(f))
	if len(got) != 1 || got[0] != "Medicare: N/A" {
		t.Errorf("Expected N/A fallback, got %v", got)
	}
}

func TestMedicareLine(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"Valid number gets display grouping", "2123456701", "Medicare: 2123 45670 1"},
		{"Spaced input regrouped", "2123 45670 1", "Medicare: 2123 45670 1"},
		{"Failed checksum renders raw", "2123456711", "Medicare: 2123456711"},
		{"Non-numeric renders raw", "pending", "Medicare: pending"},
		{"Empty renders N/A", "", "Medicare: N/A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := forms.New()
			f.Set("patient-medicare", tt.value)
			got := MedicareLine("Medicare", "patient-medicare")(testCtx(f))
			if len(got) != 1 || got[0] != tt.want {
				t.Errorf("Expected %q, got %v", tt.want, got)
			}
		})
	}
}

func TestDateFormatting(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"ISO date renders day first", "1980-01-31", "DOB: 31/01/1980"},
		{"Empty date renders N/A", "", "DOB: N/A"},
		{"Unparseable passes through", "next tuesday", "DOB: next tuesday"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := forms.New()
			f.Set("patient-dob", tt.value)
			got := Date("DOB", "patient-dob")(testCtx(f))
			if len(got) != 1 || got[0] != tt.want {
				t.Errorf("Expected %q, got %v", tt.want, got)
			}
		})
	}
}

func TestFlagDetail(t *testing.T) {
	f := forms.New()

	ext := FlagDetail("Cardiovascular examination", "exam-cvs", "exam-cvs-detail")

	if got := ext(testCtx(f)); got != nil {
		t.Errorf("Unticked flag should emit nothing, got %v", got)
	}

	f.Set("exam-cvs", true)
	if got := ext(testCtx(f)); len(got) != 1 || got[0] != "Cardiovascular examination" {
		t.Errorf("Ticked flag without detail should emit the label, got %v", got)
	}

	f.Set("exam-cvs-detail", "irregular pulse, no murmurs")
	want := "Cardiovascular examination: irregular pulse, no murmurs"
	if got := ext(testCtx(f)); len(got) != 1 || got[0] != want {
		t.Errorf("Expected %q, got %v", want, got)
	}
}

func TestListPreservesInsertionOrder(t *testing.T) {
	f := forms.New()
	f.Set("specialists", []string{"Endocrinologist", "Podiatrist", "Apted, Dr (Cardiology)"})

	got := List("specialists")(testCtx(f))
	want := []string{"- Endocrinologist", "- Podiatrist", "- Apted, Dr (Cardiology)"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestAgeAndBMILines(t *testing.T) {
	f := forms.New()
	f.Set("patient-dob", "1980-01-01")
	f.Set("height", "170")
	f.Set("weight", "85")

	ctx := testCtx(f)

	if got := AgeLine("patient-dob")(ctx); got[0] != "Age: 45" {
		t.Errorf("Expected Age: 45, got %v", got)
	}
	if got := BMILine("height", "weight")(ctx); got[0] != "BMI: 29.4 kg/m² (Overweight)" {
		t.Errorf("Expected overweight BMI line, got %v", got)
	}

	empty := testCtx(forms.New())
	if got := AgeLine("patient-dob")(empty); got[0] != "Age: N/A" {
		t.Errorf("Expected Age: N/A, got %v", got)
	}
	if got := BMILine("height", "weight")(empty); got[0] != "BMI: N/A" {
		t.Errorf("Expected BMI: N/A, got %v", got)
	}
}

func TestTextBlockSplitsLines(t *testing.T) {
	f := forms.New()
	f.Set("plan", "Line one.\r\nLine two.\nLine three.")

	got := TextBlock("plan")(testCtx(f))
	want := []string{"Line one.", "Line two.", "Line three."}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestAssembleKeepsInteriorBlankLines(t *testing.T) {
	schema := Schema{
		{Heading: "Plan", Fields: []Extractor{TextBlock("plan")}},
	}

	f := forms.New()
	f.Set("plan", "First.\n\nSecond.")

	got := schema.Assemble(testCtx(f))
	want := []string{"First.", "", "Second."}
	if !reflect.DeepEqual(got[0].Lines, want) {
		t.Errorf("Expected %v, got %v", want, got[0].Lines)
	}
}

func TestAssembleOmitsAllBlankSection(t *testing.T) {
	schema := Schema{
		{Heading: "Plan", Fields: []Extractor{TextBlock("plan")}},
	}

	f := forms.New()
	f.Set("plan", "\n\n")

	if got := schema.Assemble(testCtx(f)); len(got) != 0 {
		t.Errorf("Section of only blank lines should be omitted, got %v", got)
	}
}
