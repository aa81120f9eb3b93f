package report

import "testing"

const g1 = "- Irregular pulse noted – consider ECG to exclude atrial fibrillation."
const g2 = g1 + "\n- BMI in the overweight range – discuss weight management."

func TestMergeIdempotent(t *testing.T) {
	user := "Follow up in 3 months."
	current := g1 + "\n\n" + user

	got := MergeGenerated(current, g1, g1)
	if got != current {
		t.Errorf("Merge with unchanged block should be a no-op.\nwant: %q\ngot:  %q", current, got)
	}
}

func TestMergeRecombination(t *testing.T) {
	user := "Patient prefers morning appointments."
	current := g1 + "\n\n" + user

	got := MergeGenerated(current, g1, g2)
	want := g2 + "\n\n" + user
	if got != want {
		t.Errorf("Expected user text preserved under new block.\nwant: %q\ngot:  %q", want, got)
	}
}

func TestMergeShrinkingBlock(t *testing.T) {
	user := "Carer to attend next visit."
	current := g2 + "\n\n" + user

	got := MergeGenerated(current, g2, g1)
	want := g1 + "\n\n" + user
	if got != want {
		t.Errorf("Expected shrunk block with user text.\nwant: %q\ngot:  %q", want, got)
	}
}

func TestMergeEditedBlockFallsBackToUserText(t *testing.T) {
	// The user edited inside what was the generated block; the prefix
	// no longer matches, so everything is treated as user text.
	edited := "- Irregular pulse noted (confirmed on exam).\n\nSee cardiology letter."

	got := MergeGenerated(edited, g1, g2)
	want := g2 + "\n\n" + edited
	if got != want {
		t.Errorf("Expected edited text preserved whole.\nwant: %q\ngot:  %q", want, got)
	}
}

func TestMergeEdgeCases(t *testing.T) {
	tests := []struct {
		name      string
		current   string
		previous  string
		generated string
		want      string
	}{
		{"All empty", "", "", "", ""},
		{"First generation into empty field", "", "", g1, g1},
		{"User text only, no generation", "my note", "", "", "my note"},
		{"User text gains first generated block", "my note", "", g1, g1 + "\n\nmy note"},
		{"All rules now off strips block", g1 + "\n\nkeep me", g1, "", "keep me"},
		{"Block with no user text replaced", g1, g1, g2, g2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MergeGenerated(tt.current, tt.previous, tt.generated)
			if got != tt.want {
				t.Errorf("want %q, got %q", tt.want, got)
			}
		})
	}
}
