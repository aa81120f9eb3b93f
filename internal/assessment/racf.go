package assessment

import (
	"github.com/gp-assess/platform/internal/calc"
	"github.com/gp-assess/platform/internal/report"
	"github.com/gp-assess/platform/internal/rules"
)

// RACF is the residential aged care facility health assessment. Its
// export appends a sub-report for every completed screening instrument
// on a new page.
var RACF = Definition{
	ID:         "racf",
	Name:       "RACF Health Assessment",
	StorageKey: "racfHealthAssessmentData",
	Instruments: []calc.Instrument{
		calc.K10,
		calc.AUDITC,
		calc.PCL5,
		calc.DASS21,
	},
	AppendInstrumentReports: true,
	Schema: report.Schema{
		{Heading: "Patient Details", Fields: []report.Extractor{
			report.FieldNA("Name", KeyPatientName),
			report.Date("Date of birth", KeyPatientDOB),
			report.AgeLine(KeyPatientDOB),
			report.MedicareLine("Medicare", KeyPatientMedicare),
			report.FieldNA("Facility", "racf-facility"),
			report.Field("Room", "racf-room"),
			report.FlagDetail("Substitute decision maker", "has-sdm", "sdm-name"),
		}},
		{Heading: "Medical History", Fields: []report.Extractor{
			report.List("conditions"),
			report.TextBlock("history-notes"),
		}},
		{Heading: "Medications", Fields: []report.Extractor{
			report.TextBlock("medications"),
			report.Flag("Medication review required", KeyMedsReviewNeeded),
			report.FlagDetail("Psychotropic medication in use", "psychotropic-use", "psychotropic-detail"),
		}},
		{Heading: "Function and Mobility", Fields: []report.Extractor{
			report.FieldNA("Mobility", "mobility-status"),
			report.FlagDetail("Falls in the past 12 months", KeyRiskFalls, "falls-detail"),
			report.FlagDetail("Pressure injury risk", "pressure-risk", "pressure-detail"),
			report.FlagDetail("Swallowing difficulty", "dysphagia", "dysphagia-detail"),
		}},
		{Heading: "Examination", Fields: []report.Extractor{
			report.FieldNA("Blood pressure", "exam-bp"),
			report.FlagDetail("Irregular pulse", KeyExamIrregularPulse, "exam-pulse-detail"),
			report.BMILine(KeyHeight, KeyWeight),
			report.FlagDetail("Skin integrity concerns", "exam-skin", "exam-skin-detail"),
			report.Field("Oral health", "exam-oral"),
		}},
		{Heading: "Mental Health Screening", Fields: []report.Extractor{
			report.ScoreLine(calc.K10),
			report.ScoreLine(calc.AUDITC),
			report.ScoreLine(calc.PCL5),
			report.ScoreLine(calc.DASS21),
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
					"Falls risk identified – review with facility staff and consider physiotherapy input."),
				rules.InRange(DerivedBMI, 0, 18.5,
					"BMI in the underweight range – arrange dietitian review and weight monitoring."),
				rules.InRange("k10-score", 20, 51,
					"K10 suggests psychological distress – consider a GP mental health treatment plan."),
				rules.InRange("pcl-5-score", 33, 81,
					"PCL-5 above provisional threshold – consider referral for trauma-focused assessment."),
				rules.InRange("audit-c-score", 3, 13,
					"AUDIT-C raised – review alcohol intake against the facility care plan."),
				rules.Truthy("psychotropic-use",
					"Psychotropic medication in use – review indication, dose and consent documentation."),
				rules.Truthy("pressure-risk",
					"Pressure injury risk – confirm the facility pressure care plan is current."),
				rules.Truthy("dysphagia",
					"Swallowing difficulty – consider speech pathology review and texture-modified diet."),
			},
		},
	},
}
