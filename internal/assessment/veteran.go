package assessment

import (
	"github.com/gp-assess/platform/internal/calc"
	"github.com/gp-assess/platform/internal/report"
	"github.com/gp-assess/platform/internal/rules"
)

// Veteran is the veteran annual health check.
var Veteran = Definition{
	ID:          "veteran",
	Name:        "Veteran Health Check",
	StorageKey:  "veteranHealthCheckData",
	Instruments: []calc.Instrument{calc.PCL5, calc.AUDITC, calc.K10},
	Schema: report.Schema{
		{Heading: "Patient Details", Fields: []report.Extractor{
			report.FieldNA("Name", KeyPatientName),
			report.Date("Date of birth", KeyPatientDOB),
			report.AgeLine(KeyPatientDOB),
			report.MedicareLine("Medicare", KeyPatientMedicare),
			report.FieldNA("DVA card", "dva-card"),
		}},
		{Heading: "Service History", Fields: []report.Extractor{
			report.Field("Branch", "service-branch"),
			report.Field("Years of service", "service-years"),
			report.Date("Discharge date", "service-discharge-date"),
			report.FlagDetail("Operational deployments", "service-deployed", "service-deployed-detail"),
		}},
		{Heading: "Physical Health", Fields: []report.Extractor{
			report.List("conditions"),
			report.FlagDetail("Chronic pain", "chronic-pain", "chronic-pain-detail"),
			report.FlagDetail("Sleep disturbance", "sleep-disturbance", "sleep-detail"),
			report.FlagDetail("Tinnitus or hearing loss", "hearing-impaired", "hearing-detail"),
			report.BMILine(KeyHeight, KeyWeight),
			report.FieldNA("Blood pressure", "exam-bp"),
		}},
		{Heading: "Mental Health Screening", Fields: []report.Extractor{
			report.ScoreLine(calc.PCL5),
			report.ScoreLine(calc.K10),
			report.ScoreLine(calc.AUDITC),
		}},
		{Heading: "Recommendations", Fields: []report.Extractor{
			report.TextBlock(KeyPlanRecommendations),
		}},
	},
	RuleTables: []rules.Table{
		{
			Target: KeyPlanRecommendations,
			Rules: []rules.Rule{
				rules.InRange("pcl-5-score", 33, 81,
					"PCL-5 above provisional threshold – consider referral to Open Arms or a psychologist experienced with veterans."),
				rules.InRange("k10-score", 20, 51,
					"K10 suggests psychological distress – consider a GP mental health treatment plan."),
				rules.InRange("audit-c-score", 3, 13,
					"AUDIT-C raised – discuss alcohol intake and offer brief intervention."),
				rules.Truthy("chronic-pain",
					"Chronic pain reported – consider a pain management plan and allied health referral."),
				rules.Truthy("sleep-disturbance",
					"Sleep disturbance reported – screen for obstructive sleep apnoea and review sleep hygiene."),
				rules.Truthy("hearing-impaired",
					"Tinnitus or hearing loss – arrange audiology assessment; note possible DVA entitlement."),
				rules.InRange(DerivedBMI, 30, 100,
					"BMI in the obese range – recommend structured weight management support."),
			},
		},
	},
}
