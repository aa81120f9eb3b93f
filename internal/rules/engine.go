// Package rules implements the recommendation rule engine: declarative
// tables mapping clinical flags to bodies of free text. Evaluation is
// pure and total: the same form state always yields the same fragment
// list in the same order.
package rules

import (
	"strings"

	"github.com/gp-assess/platform/internal/forms"
)

// Op is a predicate operator.
type Op int

const (
	// OpTruthy fires when the field holds any non-empty value.
	OpTruthy Op = iota
	// OpEquals fires when the field's text equals the predicate value.
	OpEquals
	// OpInRange fires when a derived value falls in [Lo, Hi).
	OpInRange
)

// Predicate is a simple trigger condition over form state and derived
// values.
type Predicate struct {
	Op      Op
	Field   string
	Value   string
	Derived string
	Lo, Hi  float64
}

// DerivedResolver supplies named derived values (age, bmi, instrument
// scores), recomputed fresh for each evaluation. Reports ok=false when
// the value cannot be derived from current state.
type DerivedResolver func(name string) (float64, bool)

// Eval reports whether the predicate is true against the given state
func (p Predicate) Eval(f forms.FormState, derived DerivedResolver) bool {
	switch p.Op {
	case OpTruthy:
		return f.Truthy(p.Field)
	case OpEquals:
		return f.Text(p.Field) == p.Value
	case OpInRange:
		if derived == nil {
			return false
		}
		v, ok := derived(p.Derived)
		if !ok {
			return false
		}
		return v >= p.Lo && v < p.Hi
	}
	return false
}

// Rule pairs a trigger predicate with the text fragments it contributes.
// Rules are purely additive: no rule removes or alters another rule's
// fragments.
type Rule struct {
	When      Predicate
	Fragments []string
}

// Truthy builds a rule firing when the field is truthy
func Truthy(field string, fragments ...string) Rule {
	return Rule{When: Predicate{Op: OpTruthy, Field: field}, Fragments: fragments}
}

// Equals builds a rule firing when the field equals the value
func Equals(field, value string, fragments ...string) Rule {
	return Rule{When: Predicate{Op: OpEquals, Field: field, Value: value}, Fragments: fragments}
}

// InRange builds a rule firing when a derived value falls in [lo, hi)
func InRange(derived string, lo, hi float64, fragments ...string) Rule {
	return Rule{When: Predicate{Op: OpInRange, Derived: derived, Lo: lo, Hi: hi}, Fragments: fragments}
}

// Table groups the rules feeding one target free-text field.
type Table struct {
	// Target is the form-field key the generated block is merged into.
	Target string
	Rules  []Rule
}

// Evaluate runs the table against current form state and returns the
// deduplicated fragment list. Order is table declaration order; a
// fragment already present (by exact string equality) is not added
// again even if several rules would contribute it.
func (t Table) Evaluate(f forms.FormState, derived DerivedResolver) []string {
	var out []string
	seen := make(map[string]bool)

	for _, rule := range t.Rules {
		if !rule.When.Eval(f, derived) {
			continue
		}
		for _, fragment := range rule.Fragments {
			if seen[fragment] {
				continue
			}
			seen[fragment] = true
			out = append(out, fragment)
		}
	}

	return out
}

// Block joins fragments into the newline-separated generated block for
// a target field. An empty fragment list yields "".
func Block(fragments []string) string {
	return strings.Join(fragments, "\n")
}
