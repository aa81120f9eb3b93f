package assessment

import (
	"github.com/gp-assess/platform/internal/calc"
	"github.com/gp-assess/platform/internal/report"
	"github.com/gp-assess/platform/internal/rules"
)

// 75+ assessment field keys. Only keys referenced by rules or shared
// with other code get constants; section-only keys stay inline.
const (
	KeyLivesAlone         = "lives-alone"
	KeyRiskFalls          = "risk-falls"
	KeyExamIrregularPulse = "exam-irregular-pulse"
	KeyMedsReviewNeeded   = "meds-review-needed"
)

// Health75 is the 75+ annual health assessment.
var Health75 = Definition{
	ID:          "health75",
	Name:        "75+ Health Assessment",
	StorageKey:  "healthAssessment75Data",
	Instruments: []calc.Instrument{calc.UCLA3, calc.K10},
	Schema: report.Schema{
		{Heading: "Patient Details", Fields: []report.Extractor{
			report.FieldNA("Name", KeyPatientName),
			report.Date("Date of birth", KeyPatientDOB),
			report.AgeLine(KeyPatientDOB),
			report.MedicareLine("Medicare", KeyPatientMedicare),
			report.Field("Address", KeyPatientAddress),
			report.FlagDetail("Carer", "has-carer", "carer-name"),
		}},
		{Heading: "Social and Home", Fields: []report.Extractor{
			report.Flag("Lives alone", KeyLivesAlone),
			report.FlagDetail("Home safety concerns", "home-hazards", "home-hazards-detail"),
			report.ScoreLine(calc.UCLA3),
		}},
		{Heading: "Medical History", Fields: []report.Extractor{
			report.List("conditions"),
			report.TextBlock("history-notes"),
		}},
		{Heading: "Medications", Fields: []report.Extractor{
			report.TextBlock("medications"),
			report.Flag("Medication review required", KeyMedsReviewNeeded),
		}},
		{Heading: "Immunisation", Fields: []report.Extractor{
			report.Flag("- Influenza vaccination up to date", "imm-flu"),
			report.Flag("- Pneumococcal vaccination up to date", "imm-pneumococcal"),
			report.Flag("- Herpes zoster vaccination up to date", "imm-zoster"),
		}},
		{Heading: "Function and Daily Living", Fields: []report.Extractor{
			report.FlagDetail("Needs assistance with daily activities", "adl-assistance", "adl-assistance-detail"),
			report.FlagDetail("Falls in the past 12 months", KeyRiskFalls, "falls-detail"),
			report.FlagDetail("Continence concerns", "continence-issue", "continence-detail"),
		}},
		{Heading: "Senses and Cognition", Fields: []report.Extractor{
			report.FlagDetail("Vision impairment", "vision-impaired", "vision-detail"),
			report.FlagDetail("Hearing impairment", "hearing-impaired", "hearing-detail"),
			report.Field("Cognition screen", "cognition-result"),
			report.ScoreLine(calc.K10),
		}},
		{Heading: "Examination", Fields: []report.Extractor{
			report.FieldNA("Blood pressure", "exam-bp"),
			report.FlagDetail("Irregular pulse", KeyExamIrregularPulse, "exam-pulse-detail"),
			report.BMILine(KeyHeight, KeyWeight),
			report.Field("Urinalysis", "exam-urinalysis"),
		}},
		{Heading: "Recommendations", Fields: []report.Extractor{
			report.TextBlock(KeyPlanRecommendations),
		}},
	},
	RuleTables: []rules.Table{
		{
			Target: KeyPlanRecommendations,
			Rules: []rules.Rule{
				rules.Truthy(KeyExamIrregularPulse,
					"Irregular pulse noted – consider ECG to exclude atrial fibrillation."),
				rules.Truthy(KeyRiskFalls,
					"Falls risk identified – consider physiotherapy review and a home safety assessment."),
				rules.InRange(DerivedBMI, 0, 18.5,
					"BMI in the underweight range – consider dietitian referral and nutrition screening."),
				rules.InRange(DerivedBMI, 30, 100,
					"BMI in the obese range – discuss weight management appropriate to age."),
				rules.InRange("ucla-3-score", 6, 10,
					"Loneliness screen positive – consider social support services and community programs."),
				rules.InRange("k10-score", 20, 51,
					"K10 suggests psychological distress – consider a GP mental health treatment plan."),
				rules.Truthy(KeyLivesAlone,
					"Patient lives alone – confirm emergency contacts and consider a personal alarm."),
				rules.Truthy(KeyMedsReviewNeeded,
					"Arrange a Home Medicines Review with the community pharmacist."),
				rules.Truthy("vision-impaired",
					"Vision impairment reported – arrange optometry review."),
				rules.Truthy("hearing-impaired",
					"Hearing impairment reported – arrange audiology assessment."),
				rules.Truthy("continence-issue",
					"Continence concerns – consider continence nurse referral."),
			},
		},
	},
}
