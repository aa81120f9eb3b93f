package rules

import (
	"reflect"
	"testing"

	"github.com/gp-assess/platform/internal/forms"
)

func TestEvaluateDeclarationOrder(t *testing.T) {
	table := Table{
		Target: "plan-recommendations",
		Rules: []Rule{
			Truthy("risk-falls", "Falls prevention review."),
			Truthy("risk-hypertension", "Review and optimise treatment of hypertension."),
			Truthy("risk-smoking", "Offer smoking cessation support."),
		},
	}

	f := forms.New()
	// Selection order deliberately reversed relative to declaration.
	f.Set("risk-smoking", true)
	f.Set("risk-hypertension", true)

	got := table.Evaluate(f, nil)
	want := []string{
		"Review and optimise treatment of hypertension.",
		"Offer smoking cessation support.",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected declaration order %v, got %v", want, got)
	}
}

func TestEvaluateDeduplicates(t *testing.T) {
	shared := "Consider physical activity program."
	table := Table{
		Target: "plan-actions",
		Rules: []Rule{
			Truthy("risk-obesity", shared, "Dietitian referral."),
			Truthy("risk-diabetes", shared, "Diabetes cycle of care."),
		},
	}

	f := forms.New()
	f.Set("risk-obesity", true)
	f.Set("risk-diabetes", true)

	got := table.Evaluate(f, nil)
	want := []string{shared, "Dietitian referral.", "Diabetes cycle of care."}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestEvaluateDeterminism(t *testing.T) {
	table := Table{
		Target: "plan",
		Rules: []Rule{
			Truthy("a", "Fragment A."),
			Equals("choice", "left", "Fragment B."),
			Truthy("c", "Fragment C."),
		},
	}

	f := forms.New()
	f.Set("a", true)
	f.Set("choice", "left")
	f.Set("c", true)

	first := table.Evaluate(f, nil)
	for i := 0; i < 10; i++ {
		if got := table.Evaluate(f, nil); !reflect.DeepEqual(got, first) {
			t.Fatalf("Call %d differed: %v vs %v", i, got, first)
		}
	}
}

func TestPredicates(t *testing.T) {
	f := forms.New()
	f.Set("sex", "female")
	f.Set("smoker", true)
	f.Set("conditions", []string{"Asthma"})

	derived := func(name string) (float64, bool) {
		if name == "bmi" {
			return 29.4, true
		}
		return 0, false
	}

	tests := []struct {
		name string
		pred Predicate
		want bool
	}{
		{"Truthy bool", Predicate{Op: OpTruthy, Field: "smoker"}, true},
		{"Truthy list", Predicate{Op: OpTruthy, Field: "conditions"}, true},
		{"Truthy absent", Predicate{Op: OpTruthy, Field: "missing"}, false},
		{"Equals match", Predicate{Op: OpEquals, Field: "sex", Value: "female"}, true},
		{"Equals mismatch", Predicate{Op: OpEquals, Field: "sex", Value: "male"}, false},
		{"Range inside", Predicate{Op: OpInRange, Derived: "bmi", Lo: 25, Hi: 30}, true},
		{"Range lower bound inclusive", Predicate{Op: OpInRange, Derived: "bmi", Lo: 29.4, Hi: 35}, true},
		{"Range upper bound exclusive", Predicate{Op: OpInRange, Derived: "bmi", Lo: 20, Hi: 29.4}, false},
		{"Range underivable", Predicate{Op: OpInRange, Derived: "age", Lo: 0, Hi: 200}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pred.Eval(f, derived); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestBlock(t *testing.T) {
	if got := Block(nil); got != "" {
		t.Errorf("Expected empty block, got %q", got)
	}
	if got := Block([]string{"One.", "Two."}); got != "One.\nTwo." {
		t.Errorf("Unexpected block: %q", got)
	}
}
