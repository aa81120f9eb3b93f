// Package assessment defines each clinical assessment as declarative
// data (a document section schema, recommendation rule tables, and
// attached screening instruments) plus the orchestration service that
// keeps a session's generated text, derived values, and exports
// consistent. Field wording and layout belong to the calling form
// layer; this package owns only the keys and the logic behind them.
package assessment

import (
	"github.com/gp-assess/platform/internal/calc"
	"github.com/gp-assess/platform/internal/report"
	"github.com/gp-assess/platform/internal/rules"
)

// Field keys shared by every assessment.
const (
	KeyPatientName     = "patient-name"
	KeyPatientDOB      = "patient-dob"
	KeyPatientSex      = "patient-sex"
	KeyPatientMedicare = "patient-medicare"
	KeyPatientAddress  = "patient-address"
	KeyPatientPhone    = "patient-phone"
	KeyHeight          = "height"
	KeyWeight          = "weight"
)

// Derived value names resolvable in rule predicates.
const (
	DerivedAge = "age"
	DerivedBMI = "bmi"
	// Instrument scores resolve as "<instrument-id>-score".
)

// Definition describes one assessment type.
type Definition struct {
	ID   string
	Name string

	// StorageKey is the key the legacy browser tools stored their
	// state blob under; kept so exported practices can import it.
	StorageKey string

	// Schema is the fixed, ordered document layout.
	Schema report.Schema

	// RuleTables feed the assessment's free-text fields, one table per
	// target field.
	RuleTables []rules.Table

	// Instruments are the screening scales the form can open as
	// modals. Their item responses live in the same flat form state.
	Instruments []calc.Instrument

	// AppendInstrumentReports appends a sub-report per completed
	// instrument to exported documents (RACF).
	AppendInstrumentReports bool
}

// Definitions returns every assessment in stable display order.
func Definitions() []Definition {
	return []Definition{
		GPCCMP,
		Health75,
		RACF,
		DiabetesRisk,
		ATSI,
		Veteran,
	}
}

// Get looks up a definition by ID
func Get(id string) (Definition, bool) {
	for _, def := range Definitions() {
		if def.ID == id {
			return def, true
		}
	}
	return Definition{}, false
}
