package assessment

import (
	"fmt"
	"strings"
	"time"

	"github.com/gp-assess/platform/internal/calc"
	"github.com/gp-assess/platform/internal/forms"
	"github.com/gp-assess/platform/internal/render"
	"github.com/gp-assess/platform/internal/report"
	"github.com/gp-assess/platform/internal/rules"
)

// Service orchestrates rule evaluation, text merging, derived values
// and document export for assessment sessions. It holds no session
// state of its own; the caller supplies current form state and the
// previously generated block per target field.
type Service struct {
	now      func() time.Time
	practice string
}

// NewService creates a service using the system clock
func NewService() *Service {
	return &Service{now: time.Now}
}

// NewServiceAt creates a service with an injected clock
func NewServiceAt(now func() time.Time) *Service {
	return &Service{now: now}
}

// WithPractice sets the practice name prefixed to exported document
// titles
func (s *Service) WithPractice(name string) *Service {
	s.practice = name
	return s
}

// Resolver builds the derived-value lookup rule predicates evaluate
// against: age, BMI, and one "<id>-score" per attached instrument,
// each recomputed fresh from current state.
func (s *Service) Resolver(def Definition, state forms.FormState) rules.DerivedResolver {
	now := s.now()
	return func(name string) (float64, bool) {
		switch name {
		case DerivedAge:
			age, ok := calc.Age(state.Text(KeyPatientDOB), now)
			return float64(age), ok
		case DerivedBMI:
			bmi, ok := calc.BMI(state.Text(KeyHeight), state.Text(KeyWeight))
			return bmi.Value, ok
		}
		for _, ins := range def.Instruments {
			if name != ins.ID+"-score" {
				continue
			}
			score := ins.ScoreFor(state)
			if score.Answered == 0 {
				return 0, false
			}
			return float64(score.Total), true
		}
		return 0, false
	}
}

// Regenerate evaluates every rule table against current state and
// merges each generated block into its target field without disturbing
// user-typed text. It mutates state in place and returns the new
// generated block per target, which the caller must persist as
// "previous" for the next call.
func (s *Service) Regenerate(def Definition, state forms.FormState, previous map[string]string) map[string]string {
	derived := s.Resolver(def, state)

	generated := make(map[string]string, len(def.RuleTables))
	for _, table := range def.RuleTables {
		block := rules.Block(table.Evaluate(state, derived))
		merged := report.MergeGenerated(state.Text(table.Target), previous[table.Target], block)
		state.Set(table.Target, merged)
		generated[table.Target] = block
	}
	return generated
}

// DerivedValues returns the display strings the form layer shows next
// to its inputs: age, BMI with category, and instrument scores with
// interpretation. Underivable values are simply absent.
func (s *Service) DerivedValues(def Definition, state forms.FormState) map[string]string {
	out := make(map[string]string)
	now := s.now()

	if age, ok := calc.Age(state.Text(KeyPatientDOB), now); ok {
		out["age"] = fmt.Sprintf("%d", age)
	}
	if bmi, ok := calc.BMI(state.Text(KeyHeight), state.Text(KeyWeight)); ok {
		out["bmi"] = bmi.Display
		out["bmi_category"] = bmi.Category
	}
	for _, ins := range def.Instruments {
		score := ins.ScoreFor(state)
		if score.Answered == 0 {
			continue
		}
		out[ins.ID+"_score"] = fmt.Sprintf("%d", score.Total)
		if interp := ins.Interpret(score, state); interp != "" {
			out[ins.ID+"_interpretation"] = interp
		}
	}
	return out
}

// Export assembles the current state into a document and serializes it
// in the requested format. An empty form still produces a validly
// formatted file.
type Export struct {
	Filename string
	MIME     string
	Data     []byte
}

// ExportDocument builds the downloadable document for a session
func (s *Service) ExportDocument(def Definition, state forms.FormState, format render.Format) Export {
	ctx := report.Context{State: state, Now: s.now()}

	title := def.Name
	patient := state.Text(KeyPatientName)
	if patient != "" {
		title = fmt.Sprintf("%s – %s", def.Name, patient)
	}
	if s.practice != "" {
		title = s.practice + " – " + title
	}

	doc := render.Document{
		Title:    title,
		Sections: def.Schema.Assemble(ctx),
	}

	var appendices []render.Document
	if def.AppendInstrumentReports {
		for _, ins := range def.Instruments {
			if !ins.Complete(state) {
				continue
			}
			appendices = append(appendices, instrumentReport(ins, state))
		}
	}

	return Export{
		Filename: render.Filename(def.Name, patient, format),
		MIME:     format.MIME(),
		Data:     render.Serialize(format, doc, appendices...),
	}
}

// instrumentReport builds the sub-document for one completed
// instrument.
func instrumentReport(ins calc.Instrument, state forms.FormState) render.Document {
	score := ins.ScoreFor(state)

	lines := []string{fmt.Sprintf("Total score: %d", score.Total)}
	for _, sub := range ins.Subscales {
		lines = append(lines, fmt.Sprintf("%s: %d", sub.Name, score.Subscales[sub.Name]))
	}
	if interp := ins.Interpret(score, state); interp != "" {
		lines = append(lines, "Interpretation: "+interp)
	}

	return render.Document{
		Title: ins.Name,
		Sections: []report.Section{
			{Heading: "Result", Lines: lines},
		},
	}
}

// RuleTargets returns the target field keys of every rule table, used
// by callers that need to know which fields hold generated text.
func (d Definition) RuleTargets() []string {
	targets := make([]string, 0, len(d.RuleTables))
	for _, t := range d.RuleTables {
		targets = append(targets, t.Target)
	}
	return targets
}

// Describe returns a short human summary of the definition, used by
// the assessment catalogue endpoint.
func (d Definition) Describe() string {
	var parts []string
	parts = append(parts, d.Name)
	if n := len(d.Instruments); n > 0 {
		parts = append(parts, fmt.Sprintf("%d instruments", n))
	}
	return strings.Join(parts, " – ")
}
