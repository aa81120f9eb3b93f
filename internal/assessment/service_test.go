package assessment

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/gp-assess/platform/internal/forms"
	"github.com/gp-assess/platform/internal/render"
)

func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2025, time.June, 15, 10, 0, 0, 0, time.UTC)
	}
}

// Full scenario: DOB, height, weight and a hypertension flag produce
// age 45, an overweight BMI and the hypertension recommendation in the
// plan field and the exported document.
func TestEndToEndScenario(t *testing.T) {
	svc := NewServiceAt(fixedClock())

	state := forms.New()
	state.Set(KeyPatientDOB, "1980-01-01")
	state.Set(KeyHeight, "170")
	state.Set(KeyWeight, "85")
	state.Set(KeyCondHypertension, true)

	generated := svc.Regenerate(GPCCMP, state, nil)

	plan := state.Text(KeyPlanRecommendations)
	if !strings.Contains(plan, "Review and optimise treatment of hypertension.") {
		t.Errorf("Expected hypertension recommendation in plan, got %q", plan)
	}
	if !strings.Contains(plan, "BMI in the overweight range") {
		t.Errorf("Expected overweight fragment in plan, got %q", plan)
	}
	if generated[KeyPlanRecommendations] == "" {
		t.Error("Expected a generated block recorded for the plan field")
	}

	derived := svc.DerivedValues(GPCCMP, state)
	if derived["age"] != "45" {
		t.Errorf("Expected age 45, got %q", derived["age"])
	}
	if derived["bmi"] != "29.4" || derived["bmi_category"] != "Overweight" {
		t.Errorf("Expected BMI 29.4 Overweight, got %q %q", derived["bmi"], derived["bmi_category"])
	}

	export := svc.ExportDocument(GPCCMP, state, render.FormatText)
	text := string(export.Data)
	if !strings.Contains(text, "Age: 45") {
		t.Error("Expected age line in export")
	}
	if !strings.Contains(text, "BMI: 29.4 kg/m² (Overweight)") {
		t.Error("Expected BMI line in export")
	}
	if !strings.Contains(text, "Review and optimise treatment of hypertension.") {
		t.Error("Expected recommendation in export")
	}
}

// Toggling a flag on and off regenerates the plan without touching the
// practitioner's own text.
func TestRegenerateKeepsUserText(t *testing.T) {
	svc := NewServiceAt(fixedClock())

	state := forms.New()
	state.Set(KeyCondHypertension, true)
	generated := svc.Regenerate(GPCCMP, state, nil)

	// Practitioner appends their own note.
	state.Set(KeyPlanRecommendations,
		state.Text(KeyPlanRecommendations)+"\n\nFollow up in 3 months.")

	// A second condition is ticked.
	state.Set(KeyCondDiabetes, true)
	generated = svc.Regenerate(GPCCMP, state, generated)

	plan := state.Text(KeyPlanRecommendations)
	if !strings.Contains(plan, "Follow up in 3 months.") {
		t.Errorf("User note lost: %q", plan)
	}
	if !strings.Contains(plan, "Review diabetes management") {
		t.Errorf("New fragment missing: %q", plan)
	}
	if strings.Count(plan, "Review and optimise treatment of hypertension.") != 1 {
		t.Errorf("Hypertension fragment duplicated: %q", plan)
	}

	// Flag off again: the fragment goes, the note stays.
	state.Set(KeyCondHypertension, false)
	svc.Regenerate(GPCCMP, state, generated)

	plan = state.Text(KeyPlanRecommendations)
	if strings.Contains(plan, "hypertension") {
		t.Errorf("Cleared flag still present: %q", plan)
	}
	if !strings.Contains(plan, "Follow up in 3 months.") {
		t.Errorf("User note lost after clearing flag: %q", plan)
	}
}

// Regeneration with unchanged state is a no-op.
func TestRegenerateIdempotent(t *testing.T) {
	svc := NewServiceAt(fixedClock())

	state := forms.New()
	state.Set(KeyCondDiabetes, true)
	state.Set(KeyRiskSmoking, true)

	generated := svc.Regenerate(GPCCMP, state, nil)
	before := state.Clone()

	generated = svc.Regenerate(GPCCMP, state, generated)
	svc.Regenerate(GPCCMP, state, generated)

	for _, target := range GPCCMP.RuleTargets() {
		if state.Text(target) != before.Text(target) {
			t.Errorf("Target %s changed on idempotent regeneration:\nbefore: %q\nafter:  %q",
				target, before.Text(target), state.Text(target))
		}
	}
}

func TestDerivedResolverInstrumentScores(t *testing.T) {
	svc := NewServiceAt(fixedClock())

	state := forms.New()
	resolver := svc.Resolver(Health75, state)

	if _, ok := resolver("ucla-3-score"); ok {
		t.Error("Untouched instrument should not resolve a score")
	}

	for _, key := range []string{"ucla-q1", "ucla-q2", "ucla-q3"} {
		state.Set(key, "3")
	}
	score, ok := resolver("ucla-3-score")
	if !ok || score != 9 {
		t.Errorf("Expected score 9, got %v/%v", score, ok)
	}

	if _, ok := resolver("unknown"); ok {
		t.Error("Unknown derived name should not resolve")
	}
}

func TestHealth75Recommendations(t *testing.T) {
	svc := NewServiceAt(fixedClock())

	state := forms.New()
	state.Set(KeyExamIrregularPulse, true)
	state.Set(KeyRiskFalls, true)
	for _, key := range []string{"ucla-q1", "ucla-q2", "ucla-q3"} {
		state.Set(key, "3")
	}

	svc.Regenerate(Health75, state, nil)
	plan := state.Text(KeyPlanRecommendations)

	for _, want := range []string{
		"Irregular pulse noted",
		"Falls risk identified",
		"Loneliness screen positive",
	} {
		if !strings.Contains(plan, want) {
			t.Errorf("Expected %q in plan, got %q", want, plan)
		}
	}
}

func TestRACFExportAppendsCompletedInstruments(t *testing.T) {
	svc := NewServiceAt(fixedClock())

	state := forms.New()
	state.Set(KeyPatientName, "John Veteran")
	// Complete the K10 only.
	for i := 1; i <= 10; i++ {
		state.Set(fmt.Sprintf("k10-q%d", i), "3")
	}
	// One PCL-5 answer: started but not complete.
	state.Set("pcl5-q1", "4")

	export := svc.ExportDocument(RACF, state, render.FormatRTF)
	rtf := string(export.Data)

	if got := strings.Count(rtf, `\page`); got != 1 {
		t.Errorf("Expected one appendix page break for the completed K10, got %d", got)
	}
	if !strings.Contains(rtf, "Kessler Psychological Distress Scale") {
		t.Error("Expected completed K10 sub-report")
	}
	if export.Filename != "RACF_Health_Assessment_John_Veteran.rtf" {
		t.Errorf("Unexpected filename: %s", export.Filename)
	}
	if export.MIME != "application/rtf" {
		t.Errorf("Unexpected MIME: %s", export.MIME)
	}
}

func TestEmptyExportStillValid(t *testing.T) {
	svc := NewServiceAt(fixedClock())

	export := svc.ExportDocument(DiabetesRisk, forms.New(), render.FormatRTF)
	rtf := string(export.Data)

	if !strings.HasPrefix(rtf, `{\rtf1`) || !strings.HasSuffix(rtf, "}") {
		t.Error("Empty export should still be a valid RTF group")
	}
	if export.Filename != "Diabetes_Risk_Assessment_Patient.rtf" {
		t.Errorf("Unexpected fallback filename: %s", export.Filename)
	}
}

func TestExportTitleIncludesPractice(t *testing.T) {
	svc := NewServiceAt(fixedClock()).WithPractice("Hilltop Family Practice")

	state := forms.New()
	state.Set("patient-name", "Jane Citizen")

	export := svc.ExportDocument(DiabetesRisk, state, render.FormatText)
	text := string(export.Data)

	if !strings.Contains(text, "Hilltop Family Practice – Diabetes Risk Assessment – Jane Citizen") {
		t.Errorf("Expected practice-prefixed title, got: %s", text)
	}

	plain := NewServiceAt(fixedClock())
	export = plain.ExportDocument(DiabetesRisk, state, render.FormatText)
	if strings.Contains(string(export.Data), "Hilltop") {
		t.Error("Unconfigured practice must not appear in the title")
	}
}

func TestDescribe(t *testing.T) {
	if got := RACF.Describe(); got != "RACF Health Assessment – 4 instruments" {
		t.Errorf("Unexpected summary: %s", got)
	}
	if got := GPCCMP.Describe(); got != GPCCMP.Name {
		t.Errorf("Definition without instruments should summarize as its name, got: %s", got)
	}
}

func TestDefinitionsRegistry(t *testing.T) {
	seen := map[string]bool{}
	for _, def := range Definitions() {
		if def.ID == "" || def.Name == "" || def.StorageKey == "" {
			t.Errorf("Definition %q missing metadata", def.ID)
		}
		if seen[def.ID] {
			t.Errorf("Duplicate definition ID %q", def.ID)
		}
		seen[def.ID] = true
		if len(def.Schema) == 0 {
			t.Errorf("Definition %q has no document schema", def.ID)
		}
		for _, table := range def.RuleTables {
			if table.Target == "" {
				t.Errorf("Definition %q has a rule table without target", def.ID)
			}
			for _, rule := range table.Rules {
				if len(rule.Fragments) == 0 {
					t.Errorf("Definition %q has a rule with no fragments", def.ID)
				}
			}
		}
	}

	if _, ok := Get("racf"); !ok {
		t.Error("Expected racf definition")
	}
	if _, ok := Get("nope"); ok {
		t.Error("Unexpected definition for unknown ID")
	}
}
