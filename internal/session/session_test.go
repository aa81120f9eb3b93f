package session

import (
	"testing"
)

func TestNewSession(t *testing.T) {
	s := New("gpccmp")

	if s.ID.IsZero() {
		t.Error("Expected a generated session ID")
	}
	if s.Assessment != "gpccmp" {
		t.Errorf("Expected assessment gpccmp, got %s", s.Assessment)
	}
	if s.SchemaVersion != CurrentSchemaVersion {
		t.Errorf("Expected schema version %d, got %d", CurrentSchemaVersion, s.SchemaVersion)
	}
	if len(s.State) != 0 {
		t.Error("Expected empty state")
	}
	if s.CreatedAt.IsZero() || !s.CreatedAt.Equal(s.UpdatedAt) {
		t.Error("Expected matching creation timestamps")
	}
}

func TestSummarizeOmitsFieldValues(t *testing.T) {
	s := New("health75")
	s.State.Set("patient-name", "Jane Citizen")
	s.State.Set("risk-falls", true)

	sum := s.Summarize()
	if sum.FieldCount != 2 {
		t.Errorf("Expected field count 2, got %d", sum.FieldCount)
	}
	if sum.ID != s.ID || sum.Assessment != "health75" {
		t.Error("Summary identity mismatch")
	}
}

func TestDecodeStateRoundTrip(t *testing.T) {
	blob := []byte(`{"patient-name":"Jane","risk-falls":true,"height":"170","meds":["a","b"]}`)

	state := decodeState(blob, "test")
	if state.Text("patient-name") != "Jane" {
		t.Errorf("Expected Jane, got %q", state.Text("patient-name"))
	}
	if !state.Bool("risk-falls") {
		t.Error("Expected risk-falls true")
	}
	if state.Text("height") != "170" {
		t.Errorf("Expected 170, got %q", state.Text("height"))
	}
	if got := state.List("meds"); len(got) != 2 || got[0] != "a" {
		t.Errorf("Expected [a b], got %v", got)
	}
}

func TestDecodeStateCorruptBlob(t *testing.T) {
	for _, blob := range [][]byte{
		nil,
		[]byte(""),
		[]byte("not json"),
		[]byte(`["wrong","shape"]`),
	} {
		state := decodeState(blob, "test")
		if len(state) != 0 {
			t.Errorf("Expected empty state for blob %q, got %v", blob, state)
		}
	}
}

func TestDecodeGeneratedCorruptBlob(t *testing.T) {
	generated := decodeGenerated([]byte(`{"plan-recommendations":"text"}`), "test")
	if generated["plan-recommendations"] != "text" {
		t.Errorf("Unexpected generated map: %v", generated)
	}

	generated = decodeGenerated([]byte("garbage"), "test")
	if len(generated) != 0 {
		t.Errorf("Expected empty map for corrupt blob, got %v", generated)
	}
}
