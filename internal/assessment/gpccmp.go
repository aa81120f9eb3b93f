package assessment

import (
	"github.com/gp-assess/platform/internal/report"
	"github.com/gp-assess/platform/internal/rules"
)

// GPCCMP field keys.
const (
	KeyCondDiabetes     = "cond-diabetes"
	KeyCondHypertension = "cond-hypertension"
	KeyCondAsthma       = "cond-asthma"
	KeyCondCOPD         = "cond-copd"
	KeyCondCVD          = "cond-cvd"
	KeyCondCKD          = "cond-ckd"
	KeyCondArthritis    = "cond-arthritis"
	KeyCondMentalHealth = "cond-mental-health"
	KeyCondOther        = "cond-other"
	KeyRiskSmoking      = "risk-smoking"

	KeyPlanGoals           = "plan-goals"
	KeyPlanActions         = "plan-actions"
	KeyPlanServices        = "plan-treatment-services"
	KeyPlanRecommendations = "plan-recommendations"
	KeyPlanSpecialists     = "plan-specialists"
	KeyPlanReviewDates     = "plan-review-dates"
)

// GPCCMP is the chronic condition management plan generator. Ticking a
// condition feeds boilerplate into all four plan fields; the practitioner
// edits freely on top and edits survive regeneration.
var GPCCMP = Definition{
	ID:         "gpccmp",
	Name:       "GP Chronic Condition Management Plan",
	StorageKey: "gpccmpData",
	Schema: report.Schema{
		{Heading: "Patient Details", Fields: []report.Extractor{
			report.FieldNA("Name", KeyPatientName),
			report.Date("Date of birth", KeyPatientDOB),
			report.AgeLine(KeyPatientDOB),
			report.MedicareLine("Medicare", KeyPatientMedicare),
			report.Field("Address", KeyPatientAddress),
			report.Field("Phone", KeyPatientPhone),
		}},
		{Heading: "Chronic Conditions", Fields: []report.Extractor{
			report.Flag("- Type 2 diabetes", KeyCondDiabetes),
			report.Flag("- Hypertension", KeyCondHypertension),
			report.Flag("- Asthma", KeyCondAsthma),
			report.Flag("- COPD", KeyCondCOPD),
			report.Flag("- Cardiovascular disease", KeyCondCVD),
			report.Flag("- Chronic kidney disease", KeyCondCKD),
			report.Flag("- Osteoarthritis", KeyCondArthritis),
			report.Flag("- Mental health condition", KeyCondMentalHealth),
			report.Field("Other", KeyCondOther),
		}},
		{Heading: "Clinical Summary", Fields: []report.Extractor{
			report.BMILine(KeyHeight, KeyWeight),
			report.Field("Blood pressure", "exam-bp"),
			report.Field("Smoking status", "smoking-status"),
			report.Field("Allergies", "allergies"),
		}},
		{Heading: "Current Medications", Fields: []report.Extractor{
			report.TextBlock("medications"),
		}},
		{Heading: "Patient Goals", Fields: []report.Extractor{
			report.TextBlock(KeyPlanGoals),
		}},
		{Heading: "Patient Actions", Fields: []report.Extractor{
			report.TextBlock(KeyPlanActions),
		}},
		{Heading: "Treatment and Services", Fields: []report.Extractor{
			report.TextBlock(KeyPlanServices),
		}},
		{Heading: "Referrals", Fields: []report.Extractor{
			report.List(KeyPlanSpecialists),
		}},
		{Heading: "Recommendations", Fields: []report.Extractor{
			report.TextBlock(KeyPlanRecommendations),
		}},
		{Heading: "Review", Fields: []report.Extractor{
			report.DateList(KeyPlanReviewDates),
			report.Date("Plan date", "plan-date"),
			report.FieldNA("MBS item", "mbs-item"),
		}},
	},
	RuleTables: []rules.Table{
		{
			Target: KeyPlanGoals,
			Rules: []rules.Rule{
				rules.Truthy(KeyCondDiabetes,
					"- Maintain HbA1c within the target range agreed with the GP."),
				rules.Truthy(KeyCondHypertension,
					"- Achieve and maintain blood pressure at or below the agreed target."),
				rules.Truthy(KeyCondAsthma,
					"- Minimise asthma symptoms and prevent exacerbations."),
				rules.Truthy(KeyCondCOPD,
					"- Maintain exercise tolerance and reduce breathlessness."),
				rules.Truthy(KeyCondCVD,
					"- Reduce cardiovascular risk through medication adherence and lifestyle change."),
				rules.Truthy(KeyCondCKD,
					"- Preserve kidney function and avoid nephrotoxic medications."),
				rules.Truthy(KeyCondArthritis,
					"- Manage joint pain and maintain mobility and independence."),
				rules.Truthy(KeyCondMentalHealth,
					"- Improve mood and daily functioning with regular review."),
				rules.InRange(DerivedBMI, 30, 100,
					"- Achieve gradual weight loss towards a healthier weight range."),
				rules.Truthy(KeyRiskSmoking,
					"- Quit smoking with structured support."),
			},
		},
		{
			Target: KeyPlanActions,
			Rules: []rules.Rule{
				rules.Truthy(KeyCondDiabetes,
					"- Monitor blood glucose as advised and attend pathology for HbA1c every 3 to 6 months."),
				rules.Truthy(KeyCondHypertension,
					"- Check blood pressure regularly and take antihypertensive medication as prescribed."),
				rules.Truthy(KeyCondAsthma,
					"- Follow the written asthma action plan and review inhaler technique."),
				rules.Truthy(KeyCondCOPD,
					"- Continue prescribed inhalers and attend pulmonary rehabilitation if available."),
				rules.Truthy(KeyCondCVD,
					"- Take cardiovascular medications as prescribed and report new chest pain promptly."),
				rules.Truthy(KeyCondCKD,
					"- Maintain hydration and attend renal function pathology as requested."),
				rules.Truthy(KeyCondArthritis,
					"- Continue regular low-impact exercise and use analgesia as agreed."),
				rules.Truthy(KeyCondMentalHealth,
					"- Practise agreed coping strategies and attend scheduled appointments."),
				rules.InRange(DerivedBMI, 25, 100,
					"- Work towards 30 minutes of moderate physical activity on most days."),
				rules.Truthy(KeyRiskSmoking,
					"- Set a quit date and use cessation support as discussed."),
			},
		},
		{
			Target: KeyPlanServices,
			Rules: []rules.Rule{
				rules.Truthy(KeyCondDiabetes,
					"- Diabetes annual cycle of care including podiatry and retinal screening.",
					"- Credentialled diabetes educator referral."),
				rules.Truthy(KeyCondHypertension,
					"- Home blood pressure monitoring program."),
				rules.Truthy(KeyCondAsthma,
					"- Spirometry and asthma action plan review."),
				rules.Truthy(KeyCondCOPD,
					"- Pulmonary rehabilitation program referral.",
					"- Spirometry and asthma action plan review."),
				rules.Truthy(KeyCondCVD,
					"- Cardiology review as clinically indicated."),
				rules.Truthy(KeyCondCKD,
					"- Renal function and urine ACR monitoring; nephrology referral if declining."),
				rules.Truthy(KeyCondArthritis,
					"- Physiotherapy and exercise physiology referral under this plan."),
				rules.Truthy(KeyCondMentalHealth,
					"- GP mental health treatment plan and psychology referral."),
				rules.InRange(DerivedBMI, 30, 100,
					"- Dietitian referral for weight management."),
			},
		},
		{
			Target: KeyPlanRecommendations,
			Rules: []rules.Rule{
				rules.Truthy(KeyCondHypertension,
					"Review and optimise treatment of hypertension."),
				rules.Truthy(KeyCondDiabetes,
					"Review diabetes management including HbA1c, renal function and foot care."),
				rules.Truthy(KeyCondCVD,
					"Review cardiovascular risk factors and confirm secondary prevention therapy."),
				rules.Truthy(KeyCondCKD,
					"Monitor renal function and blood pressure; review medication dosing for renal impairment."),
				rules.InRange(DerivedBMI, 25, 30,
					"BMI in the overweight range – discuss weight management."),
				rules.InRange(DerivedBMI, 30, 100,
					"BMI in the obese range – recommend structured weight management support."),
				rules.Truthy(KeyRiskSmoking,
					"Offer smoking cessation support including pharmacotherapy options."),
			},
		},
	},
}
