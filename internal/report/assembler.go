// Package report assembles an assessment's form state into an ordered
// document of headed sections, and keeps machine-generated text merged
// with user edits. It performs no I/O; missing fields fall back to
// "N/A" or line omission, never an error.
package report

import (
	"fmt"
	"time"

	"github.com/gp-assess/platform/internal/calc"
	"github.com/gp-assess/platform/internal/forms"
	"github.com/gp-assess/platform/internal/shared/types"
)

// Context carries the inputs an extractor may read: current form state
// and the evaluation time for age-style derivations.
type Context struct {
	State forms.FormState
	Now   time.Time
}

// Section is one headed block of the assembled document.
type Section struct {
	Heading string
	Lines   []string
}

// Extractor pulls zero or more lines from form state. Returning nothing
// omits the extractor's lines entirely.
type Extractor func(Context) []string

// SectionDef pairs a section heading with the extractors producing its
// lines.
type SectionDef struct {
	Heading string
	Fields  []Extractor
}

// Schema is the fixed, ordered section layout of one assessment's
// document.
type Schema []SectionDef

// Assemble walks the schema against form state. A section with no
// non-empty lines is omitted entirely; a heading never appears without
// content. Blank lines inside a populated section are kept: they carry
// the vertical spacing of multi-paragraph free text into the
// serializers.
func (s Schema) Assemble(ctx Context) []Section {
	var out []Section
	for _, def := range s {
		var lines []string
		content := false
		for _, extract := range def.Fields {
			for _, line := range extract(ctx) {
				lines = append(lines, line)
				if line != "" {
					content = true
				}
			}
		}
		if !content {
			continue
		}
		out = append(out, Section{Heading: def.Heading, Lines: lines})
	}
	return out
}

// Field emits "Label: value", or nothing when the field is empty
func Field(label, key string) Extractor {
	return func(ctx Context) []string {
		v := ctx.State.Text(key)
		if v == "" {
			return nil
		}
		return []string{fmt.Sprintf("%s: %s", label, v)}
	}
}

// FieldNA emits "Label: value" with an "N/A" fallback
func FieldNA(label, key string) Extractor {
	return func(ctx Context) []string {
		v := ctx.State.Text(key)
		if v == "" {
			v = "N/A"
		}
		return []string{fmt.Sprintf("%s: %s", label, v)}
	}
}

// MedicareLine emits "Label: NNNN NNNNN N" when the field holds a valid
// Medicare number. Text that fails the checksum renders raw rather than
// being dropped; an empty field falls back to N/A.
func MedicareLine(label, key string) Extractor {
	return func(ctx Context) []string {
		v := ctx.State.Text(key)
		if v == "" {
			return []string{label + ": N/A"}
		}
		if m, err := types.ParseMedicare(v); err == nil {
			v = m.Formatted()
		}
		return []string{fmt.Sprintf("%s: %s", label, v)}
	}
}

// Date emits "Label: DD/MM/YYYY"; empty or unparseable dates render as
// N/A.
func Date(label, key string) Extractor {
	return func(ctx Context) []string {
		return []string{fmt.Sprintf("%s: %s", label, FormatDate(ctx.State.Text(key)))}
	}
}

// FormatDate converts an ISO date to the day-first display convention,
// returning "N/A" for empty input and the raw text when unparseable.
func FormatDate(iso string) string {
	if iso == "" {
		return "N/A"
	}
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return t.Format("02/01/2006")
}

// Flag emits the label alone when a checkbox field is ticked
func Flag(label, key string) Extractor {
	return func(ctx Context) []string {
		if !ctx.State.Truthy(key) {
			return nil
		}
		return []string{label}
	}
}

// FlagDetail emits one line combining a checkbox flag with its
// conditional elaboration text: "Label: detail" when elaborated,
// "Label" when only ticked, nothing when the flag is off.
func FlagDetail(label, flagKey, detailKey string) Extractor {
	return func(ctx Context) []string {
		if !ctx.State.Truthy(flagKey) {
			return nil
		}
		detail := ctx.State.Text(detailKey)
		if detail == "" {
			return []string{label}
		}
		return []string{fmt.Sprintf("%s: %s", label, detail)}
	}
}

// List emits one bulleted line per item, in insertion order
func List(key string) Extractor {
	return func(ctx Context) []string {
		items := ctx.State.List(key)
		lines := make([]string, 0, len(items))
		for _, item := range items {
			if item == "" {
				continue
			}
			lines = append(lines, "- "+item)
		}
		return lines
	}
}

// DateList emits one bulleted DD/MM/YYYY line per item (review dates)
func DateList(key string) Extractor {
	return func(ctx Context) []string {
		items := ctx.State.List(key)
		lines := make([]string, 0, len(items))
		for _, item := range items {
			if item == "" {
				continue
			}
			lines = append(lines, "- "+FormatDate(item))
		}
		return lines
	}
}

// TextBlock emits a multi-line free-text field as individual lines
func TextBlock(key string) Extractor {
	return func(ctx Context) []string {
		v := ctx.State.Text(key)
		if v == "" {
			return nil
		}
		return splitLines(v)
	}
}

// LabelledText emits "Label:" followed by the field's lines
func LabelledText(label, key string) Extractor {
	return func(ctx Context) []string {
		v := ctx.State.Text(key)
		if v == "" {
			return nil
		}
		return append([]string{label + ":"}, splitLines(v)...)
	}
}

// AgeLine emits "Age: N" derived from a date-of-birth field, with an
// N/A fallback for missing or malformed dates.
func AgeLine(key string) Extractor {
	return func(ctx Context) []string {
		age, ok := calc.Age(ctx.State.Text(key), ctx.Now)
		if !ok {
			return []string{"Age: N/A"}
		}
		return []string{fmt.Sprintf("Age: %d", age)}
	}
}

// BMILine emits "BMI: value kg/m² (Category)" from height and weight
// fields, or "BMI: N/A" when either is missing or malformed.
func BMILine(heightKey, weightKey string) Extractor {
	return func(ctx Context) []string {
		bmi, ok := calc.BMI(ctx.State.Text(heightKey), ctx.State.Text(weightKey))
		if !ok {
			return []string{"BMI: N/A"}
		}
		return []string{fmt.Sprintf("BMI: %s kg/m² (%s)", bmi.Display, bmi.Category)}
	}
}

// ScoreLine emits "Name score: N – interpretation" once any item of the
// instrument has been answered; untouched instruments are omitted.
func ScoreLine(ins calc.Instrument) Extractor {
	return func(ctx Context) []string {
		score := ins.ScoreFor(ctx.State)
		if score.Answered == 0 {
			return nil
		}
		line := fmt.Sprintf("%s score: %d", ins.Name, score.Total)
		if interp := ins.Interpret(score, ctx.State); interp != "" {
			line += " – " + interp
		}
		return []string{line}
	}
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, trimCR(s[start:i]))
			start = i + 1
		}
	}
	lines = append(lines, trimCR(s[start:]))
	return lines
}

func trimCR(s string) string {
	if len(s) > 0 && s[len(s)-1] == '\r' {
		return s[:len(s)-1]
	}
	return s
}
