// Package calc provides the derived clinical values shared by every
// assessment: age, BMI, and screening-instrument scores. Everything is a
// pure function of form input; malformed input yields an empty result,
// never an error, so a bad keystroke can never break a form.
package calc

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/gp-assess/platform/internal/forms"
)

// BMI weight categories. Boundary values belong to the higher band:
// exactly 25.0 is Overweight, exactly 30.0 is Obese.
const (
	BMIUnderweight = "Underweight"
	BMINormal      = "Normal"
	BMIOverweight  = "Overweight"
	BMIObese       = "Obese"
)

// Age returns completed years between an ISO-8601 birth date and now.
// Reports ok=false for empty or unparseable input.
func Age(birthISO string, now time.Time) (int, bool) {
	if birthISO == "" {
		return 0, false
	}
	birth, err := time.Parse("2006-01-02", birthISO)
	if err != nil {
		return 0, false
	}

	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() ||
		(now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	if age < 0 {
		return 0, false
	}
	return age, true
}

// BMIResult holds a computed body mass index. Value is the raw figure,
// Display is fixed to one decimal place, Category is derived from the
// unrounded value.
type BMIResult struct {
	Value    float64
	Display  string
	Category string
}

// BMI computes body mass index from height in centimetres and weight in
// kilograms, both as entered (number-as-text). Reports ok=false unless
// both parse as positive decimals.
func BMI(heightCm, weightKg string) (BMIResult, bool) {
	h, ok := parsePositive(heightCm)
	if !ok {
		return BMIResult{}, false
	}
	w, ok := parsePositive(weightKg)
	if !ok {
		return BMIResult{}, false
	}

	value := w / math.Pow(h/100, 2)
	return BMIResult{
		Value:    value,
		Display:  fmt.Sprintf("%.1f", value),
		Category: bmiCategory(value),
	}, true
}

func bmiCategory(value float64) string {
	switch {
	case value < 18.5:
		return BMIUnderweight
	case value < 25:
		return BMINormal
	case value < 30:
		return BMIOverweight
	default:
		return BMIObese
	}
}

// CompositeScore sums the numeric responses stored under the given keys.
// Absent or malformed responses contribute zero.
func CompositeScore(f forms.FormState, keys []string) int {
	total := 0
	for _, key := range keys {
		if n, ok := f.Int(key); ok {
			total += n
		}
	}
	return total
}

func parsePositive(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
