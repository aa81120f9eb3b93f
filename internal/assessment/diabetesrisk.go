package assessment

import (
	"github.com/gp-assess/platform/internal/calc"
	"github.com/gp-assess/platform/internal/report"
	"github.com/gp-assess/platform/internal/rules"
)

// DiabetesRisk is the AUSDRISK type 2 diabetes risk assessment. Each
// questionnaire field stores the selected option's published point
// value; the total and band come straight from the instrument table.
var DiabetesRisk = Definition{
	ID:          "diabetes-risk",
	Name:        "Diabetes Risk Assessment",
	StorageKey:  "diabetesRiskData",
	Instruments: []calc.Instrument{calc.AUSDRISK},
	Schema: report.Schema{
		{Heading: "Patient Details", Fields: []report.Extractor{
			report.FieldNA("Name", KeyPatientName),
			report.Date("Date of birth", KeyPatientDOB),
			report.AgeLine(KeyPatientDOB),
			report.MedicareLine("Medicare", KeyPatientMedicare),
		}},
		{Heading: "Measurements", Fields: []report.Extractor{
			report.BMILine(KeyHeight, KeyWeight),
			report.Field("Waist circumference", "waist-cm"),
		}},
		{Heading: "AUSDRISK Result", Fields: []report.Extractor{
			report.ScoreLine(calc.AUSDRISK),
		}},
		{Heading: "Recommendations", Fields: []report.Extractor{
			report.TextBlock(KeyPlanRecommendations),
		}},
	},
	RuleTables: []rules.Table{
		{
			Target: KeyPlanRecommendations,
			Rules: []rules.Rule{
				rules.InRange("ausdrisk-score", 12, 39,
					"High diabetes risk – arrange fasting blood glucose or HbA1c and review results with the patient."),
				rules.InRange("ausdrisk-score", 6, 12,
					"Intermediate diabetes risk – discuss lifestyle modification and re-screen in three years."),
				rules.InRange("ausdrisk-score", 0, 6,
					"Low diabetes risk – reinforce healthy lifestyle and re-screen in three years."),
				rules.InRange(DerivedBMI, 30, 100,
					"BMI in the obese range – recommend structured weight management support."),
				// Current smokers select the 2-point option.
				rules.Equals("ausdrisk-smoking", "2",
					"Offer smoking cessation support including pharmacotherapy options."),
			},
		},
	},
}
