package assessment

import (
	"github.com/gp-assess/platform/internal/calc"
	"github.com/gp-assess/platform/internal/report"
	"github.com/gp-assess/platform/internal/rules"
)

// ATSI is the Aboriginal and Torres Strait Islander annual health
// check.
var ATSI = Definition{
	ID:          "atsi",
	Name:        "Aboriginal and Torres Strait Islander Health Check",
	StorageKey:  "atsiHealthCheckData",
	Instruments: []calc.Instrument{calc.K10, calc.AUDITC},
	Schema: report.Schema{
		{Heading: "Patient Details", Fields: []report.Extractor{
			report.FieldNA("Name", KeyPatientName),
			report.Date("Date of birth", KeyPatientDOB),
			report.AgeLine(KeyPatientDOB),
			report.MedicareLine("Medicare", KeyPatientMedicare),
			report.Field("Community", "community"),
		}},
		{Heading: "Social and Emotional Wellbeing", Fields: []report.Extractor{
			report.FlagDetail("Cultural or family supports discussed", "sewb-supports", "sewb-supports-detail"),
			report.ScoreLine(calc.K10),
		}},
		{Heading: "Medical History", Fields: []report.Extractor{
			report.List("conditions"),
			report.FlagDetail("Family history of diabetes", "fh-diabetes", "fh-diabetes-detail"),
			report.FlagDetail("Family history of cardiovascular disease", "fh-cvd", "fh-cvd-detail"),
			report.TextBlock("history-notes"),
		}},
		{Heading: "Lifestyle", Fields: []report.Extractor{
			report.FieldNA("Smoking status", "smoking-status"),
			report.ScoreLine(calc.AUDITC),
			report.Field("Physical activity", "physical-activity"),
			report.Field("Diet", "diet-notes"),
		}},
		{Heading: "Examination", Fields: []report.Extractor{
			report.FieldNA("Blood pressure", "exam-bp"),
			report.BMILine(KeyHeight, KeyWeight),
			report.Field("Waist circumference", "waist-cm"),
			report.Field("Urinalysis", "exam-urinalysis"),
		}},
		{Heading: "Investigations", Fields: []report.Extractor{
			report.Flag("- Fasting lipids requested", "inv-lipids"),
			report.Flag("- Blood glucose or HbA1c requested", "inv-glucose"),
			report.Flag("- Urine ACR requested", "inv-acr"),
		}},
		{Heading: "Recommendations", Fields: []report.Extractor{
			report.TextBlock(KeyPlanRecommendations),
		}},
	},
	RuleTables: []rules.Table{
		{
			Target: KeyPlanRecommendations,
			Rules: []rules.Rule{
				rules.Equals("smoking-status", "current",
					"Offer smoking cessation support including pharmacotherapy options."),
				rules.Truthy("fh-diabetes",
					"Family history of diabetes – screen with fasting blood glucose or HbA1c."),
				rules.Truthy("fh-cvd",
					"Family history of cardiovascular disease – assess absolute cardiovascular risk."),
				rules.InRange("k10-score", 20, 51,
					"K10 suggests psychological distress – discuss social and emotional wellbeing supports."),
				rules.InRange("audit-c-score", 3, 13,
					"AUDIT-C raised – discuss alcohol intake and offer brief intervention."),
				rules.InRange(DerivedBMI, 30, 100,
					"BMI in the obese range – recommend structured weight management support."),
				rules.InRange(DerivedAge, 50, 130,
					"Aged 50 or over – confirm bowel cancer screening is up to date."),
			},
		},
	},
}
