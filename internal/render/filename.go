package render

import "strings"

// Filename derives the export filename from the assessment name and the
// patient's name, with generic fallbacks when either is missing. Spaces
// become underscores; characters unsafe in filenames are dropped.
func Filename(assessment, patientName string, format Format) string {
	base := sanitizeToken(assessment)
	if base == "" {
		base = "report"
	}

	patient := sanitizeToken(patientName)
	if patient == "" {
		patient = "Patient"
	}

	return base + "_" + patient + "." + format.Ext()
}

func sanitizeToken(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		switch {
		case r == ' ':
			b.WriteRune('_')
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == '_' || r == '+':
			b.WriteRune(r)
		}
	}
	return b.String()
}
