package types

import "testing"

func TestParseMedicare(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"2123456701", false},
		{"2123 45670 1", false},
		{"2123456711", true},  // wrong checksum
		{"1123456791", true},  // first digit outside 2-6
		{"212345670", true},   // too short
		{"21234567011", true}, // too long
		{"2123a56701", true},
		{"", true},
	}

	for _, tt := range tests {
		_, err := ParseMedicare(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMedicare(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}

func TestMedicareFormatted(t *testing.T) {
	m := Medicare("2123456701")
	if got := m.Formatted(); got != "2123 45670 1" {
		t.Errorf("Formatted() = %q", got)
	}
}

func TestMedicareMasked(t *testing.T) {
	m := Medicare("2123456701")
	if got := m.Masked(); got != "2123******" {
		t.Errorf("Masked() = %q", got)
	}
	if got := Medicare("212").Masked(); got != "**********" {
		t.Errorf("Masked() short = %q", got)
	}
}
