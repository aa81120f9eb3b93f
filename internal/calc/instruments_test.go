package calc

import (
	"fmt"
	"strings"
	"testing"

	"github.com/gp-assess/platform/internal/forms"
)

func answerAll(f forms.FormState, keys []string, value int) {
	for _, key := range keys {
		f.Set(key, fmt.Sprintf("%d", value))
	}
}

func TestK10Scoring(t *testing.T) {
	f := forms.New()
	answerAll(f, K10.Items, 3)

	s := K10.ScoreFor(f)
	if s.Total != 30 {
		t.Errorf("Expected total 30, got %d", s.Total)
	}
	if s.Answered != 10 {
		t.Errorf("Expected 10 answered, got %d", s.Answered)
	}
	if !K10.Complete(f) {
		t.Error("Expected instrument to be complete")
	}

	got := K10.Interpret(s, f)
	if got != "Likely to have a severe disorder" {
		t.Errorf("Unexpected interpretation: %s", got)
	}
}

func TestK10Bands(t *testing.T) {
	tests := []struct {
		total int
		want  string
	}{
		{10, "Likely to be well"},
		{19, "Likely to be well"},
		{20, "Likely to have a mild disorder"},
		{25, "Likely to have a moderate disorder"},
		{30, "Likely to have a severe disorder"},
		{50, "Likely to have a severe disorder"},
		{0, ""}, // below instrument minimum, no band
	}

	for _, tt := range tests {
		got := K10.Interpret(Score{Total: tt.total}, nil)
		if got != tt.want {
			t.Errorf("Score %d: expected %q, got %q", tt.total, tt.want, got)
		}
	}
}

func TestAUDITCSexSpecificCutoff(t *testing.T) {
	f := forms.New()
	f.Set("patient-sex", "female")
	f.Set("audit-c-q1", "2")
	f.Set("audit-c-q2", "1")

	s := AUDITC.ScoreFor(f)
	if s.Total != 3 {
		t.Fatalf("Expected total 3, got %d", s.Total)
	}

	if got := AUDITC.Interpret(s, f); !strings.HasPrefix(got, "Positive screen") {
		t.Errorf("Score 3 should be positive for female patients, got %q", got)
	}

	f.Set("patient-sex", "male")
	if got := AUDITC.Interpret(s, f); !strings.HasPrefix(got, "Negative screen") {
		t.Errorf("Score 3 should be negative for male patients, got %q", got)
	}
}

// DASS-21 doubles each subscale's raw sum per the published scoring
// convention before band lookup.
func TestDASS21SubscaleDoubling(t *testing.T) {
	f := forms.New()
	// Depression items all 2: raw 14, reported 28 (extremely severe).
	for _, key := range dassItems(3, 5, 10, 13, 16, 17, 21) {
		f.Set(key, "2")
	}
	// Anxiety items all 1: raw 7, reported 14 (moderate).
	for _, key := range dassItems(2, 4, 7, 9, 15, 19, 20) {
		f.Set(key, "1")
	}
	// Stress items unanswered: reported 0 (normal).

	s := DASS21.ScoreFor(f)

	if s.Subscales["Depression"] != 28 {
		t.Errorf("Expected Depression 28, got %d", s.Subscales["Depression"])
	}
	if s.Subscales["Anxiety"] != 14 {
		t.Errorf("Expected Anxiety 14, got %d", s.Subscales["Anxiety"])
	}
	if s.Subscales["Stress"] != 0 {
		t.Errorf("Expected Stress 0, got %d", s.Subscales["Stress"])
	}

	got := DASS21.Interpret(s, f)
	want := "Depression: Extremely severe; Anxiety: Moderate; Stress: Normal"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestUCLA3Bands(t *testing.T) {
	f := forms.New()
	answerAll(f, UCLA3.Items, 2)

	s := UCLA3.ScoreFor(f)
	if s.Total != 6 {
		t.Fatalf("Expected total 6, got %d", s.Total)
	}
	if got := UCLA3.Interpret(s, f); !strings.HasPrefix(got, "Lonely") {
		t.Errorf("Score 6 should fall in the lonely band, got %q", got)
	}
}

func TestAUSDRISKBands(t *testing.T) {
	f := forms.New()
	f.Set("ausdrisk-age", "8")
	f.Set("ausdrisk-sex", "3")
	f.Set("ausdrisk-waist", "4")

	s := AUSDRISK.ScoreFor(f)
	if s.Total != 15 {
		t.Fatalf("Expected total 15, got %d", s.Total)
	}
	if got := AUSDRISK.Interpret(s, f); !strings.HasPrefix(got, "High risk") {
		t.Errorf("Score 15 should be high risk, got %q", got)
	}
}

// Scoring the same state twice yields identical results.
func TestScoringDeterminism(t *testing.T) {
	f := forms.New()
	answerAll(f, DASS21.Items, 1)

	first := DASS21.ScoreFor(f)
	second := DASS21.ScoreFor(f)

	if first.Total != second.Total || first.Answered != second.Answered {
		t.Error("Scores differ across calls")
	}
	for name, v := range first.Subscales {
		if second.Subscales[name] != v {
			t.Errorf("Subscale %s differs across calls", name)
		}
	}
}

func TestIncompleteInstrument(t *testing.T) {
	f := forms.New()
	f.Set("pcl5-q1", "4")

	if PCL5.Complete(f) {
		t.Error("One answer should not complete a 20-item instrument")
	}

	s := PCL5.ScoreFor(f)
	if s.Total != 4 || s.Answered != 1 {
		t.Errorf("Expected partial score 4/1, got %d/%d", s.Total, s.Answered)
	}
}
