package calc

import (
	"fmt"
	"strings"

	"github.com/gp-assess/platform/internal/forms"
)

// Band maps an inclusive score range to an interpretation label. Band
// tables are fixed published configuration for each instrument, not
// logic to redesign.
type Band struct {
	Min, Max int
	Label    string
}

// Subscale names a subset of an instrument's items with its own band
// table (DASS-21).
type Subscale struct {
	Name  string
	Items []string
	Bands []Band
}

// Instrument describes one screening scale: the ordered form-field keys
// holding each item's selected point value plus the scoring convention.
type Instrument struct {
	ID   string
	Name string

	// Items are field keys in question order. Each stores the selected
	// option's point value as number-as-text.
	Items []string

	Bands []Band

	// Subscales, when present, partition Items. SubscaleMultiplier
	// scales each raw subscale sum (DASS-21 doubles per the published
	// short-form convention).
	Subscales          []Subscale
	SubscaleMultiplier int

	// Interpreter overrides band lookup for instruments whose cut-off
	// depends on another field (AUDIT-C differs by sex).
	Interpreter func(Score, forms.FormState) string
}

// Score is the result of scoring one instrument against form state.
type Score struct {
	Total     int
	Answered  int
	Subscales map[string]int
}

// ScoreFor sums the instrument's item responses. Absent items contribute
// zero; subscale sums are multiplied per the instrument's convention.
func (ins Instrument) ScoreFor(f forms.FormState) Score {
	s := Score{}
	for _, key := range ins.Items {
		n, ok := f.Int(key)
		if !ok {
			continue
		}
		s.Total += n
		s.Answered++
	}

	if len(ins.Subscales) > 0 {
		s.Subscales = make(map[string]int, len(ins.Subscales))
		mult := ins.SubscaleMultiplier
		if mult == 0 {
			mult = 1
		}
		for _, sub := range ins.Subscales {
			s.Subscales[sub.Name] = CompositeScore(f, sub.Items) * mult
		}
	}

	return s
}

// Complete reports whether every item has a response
func (ins Instrument) Complete(f forms.FormState) bool {
	return ins.ScoreFor(f).Answered == len(ins.Items)
}

// Interpret returns the interpretation text for a score: band lookup by
// default, per-subscale labels when subscales exist, or the instrument's
// own interpreter. An unmatched score yields "".
func (ins Instrument) Interpret(s Score, f forms.FormState) string {
	if ins.Interpreter != nil {
		return ins.Interpreter(s, f)
	}
	if len(ins.Subscales) > 0 {
		parts := make([]string, 0, len(ins.Subscales))
		for _, sub := range ins.Subscales {
			label := bandLabel(sub.Bands, s.Subscales[sub.Name])
			if label == "" {
				continue
			}
			parts = append(parts, fmt.Sprintf("%s: %s", sub.Name, label))
		}
		return strings.Join(parts, "; ")
	}
	return bandLabel(ins.Bands, s.Total)
}

func bandLabel(bands []Band, score int) string {
	for _, b := range bands {
		if score >= b.Min && score <= b.Max {
			return b.Label
		}
	}
	return ""
}

// K10 is the Kessler Psychological Distress Scale: ten items scored
// 1-5, total 10-50.
var K10 = Instrument{
	ID:    "k10",
	Name:  "Kessler Psychological Distress Scale (K10)",
	Items: itemKeys("k10", 10),
	Bands: []Band{
		{10, 19, "Likely to be well"},
		{20, 24, "Likely to have a mild disorder"},
		{25, 29, "Likely to have a moderate disorder"},
		{30, 50, "Likely to have a severe disorder"},
	},
}

// AUDITC is the three-item alcohol screen, items scored 0-4. The
// positive-screen cut-off is 4 for men and 3 for women.
var AUDITC = Instrument{
	ID:    "audit-c",
	Name:  "Alcohol Use Disorders Identification Test (AUDIT-C)",
	Items: itemKeys("audit-c", 3),
	Interpreter: func(s Score, f forms.FormState) string {
		cutoff := 4
		if f.Text("patient-sex") == "female" {
			cutoff = 3
		}
		if s.Total >= cutoff {
			return fmt.Sprintf("Positive screen (score %d) – further assessment of alcohol use recommended", s.Total)
		}
		return fmt.Sprintf("Negative screen (score %d)", s.Total)
	},
}

// PCL5 is the PTSD Checklist for DSM-5: twenty items scored 0-4.
var PCL5 = Instrument{
	ID:    "pcl-5",
	Name:  "PTSD Checklist for DSM-5 (PCL-5)",
	Items: itemKeys("pcl5", 20),
	Bands: []Band{
		{0, 32, "Below provisional PTSD threshold"},
		{33, 80, "Provisional PTSD – comprehensive assessment recommended"},
	},
}

// DASS21 is the short-form Depression Anxiety Stress Scales: 21 items
// scored 0-3, partitioned into three subscales whose raw sums are
// doubled to match full-scale severity bands.
var DASS21 = Instrument{
	ID:                 "dass-21",
	Name:               "Depression Anxiety Stress Scales (DASS-21)",
	Items:              itemKeys("dass", 21),
	SubscaleMultiplier: 2,
	Subscales: []Subscale{
		{
			Name:  "Depression",
			Items: dassItems(3, 5, 10, 13, 16, 17, 21),
			Bands: []Band{
				{0, 9, "Normal"},
				{10, 13, "Mild"},
				{14, 20, "Moderate"},
				{21, 27, "Severe"},
				{28, 42, "Extremely severe"},
			},
		},
		{
			Name:  "Anxiety",
			Items: dassItems(2, 4, 7, 9, 15, 19, 20),
			Bands: []Band{
				{0, 7, "Normal"},
				{8, 9, "Mild"},
				{10, 14, "Moderate"},
				{15, 19, "Severe"},
				{20, 42, "Extremely severe"},
			},
		},
		{
			Name:  "Stress",
			Items: dassItems(1, 6, 8, 11, 12, 14, 18),
			Bands: []Band{
				{0, 14, "Normal"},
				{15, 18, "Mild"},
				{19, 25, "Moderate"},
				{26, 33, "Severe"},
				{34, 42, "Extremely severe"},
			},
		},
	},
}

// UCLA3 is the three-item UCLA Loneliness Scale, items scored 1-3.
var UCLA3 = Instrument{
	ID:    "ucla-3",
	Name:  "UCLA Loneliness Scale (3-item)",
	Items: itemKeys("ucla", 3),
	Bands: []Band{
		{3, 5, "Not lonely"},
		{6, 9, "Lonely – consider social support referral"},
	},
}

// AUSDRISK is the Australian type 2 diabetes risk assessment. Each
// question's selected option carries its published point value.
var AUSDRISK = Instrument{
	ID:   "ausdrisk",
	Name: "Australian Type 2 Diabetes Risk Assessment (AUSDRISK)",
	Items: []string{
		"ausdrisk-age",
		"ausdrisk-sex",
		"ausdrisk-atsi",
		"ausdrisk-birth-region",
		"ausdrisk-family-history",
		"ausdrisk-high-glucose",
		"ausdrisk-bp-medication",
		"ausdrisk-smoking",
		"ausdrisk-vegetables",
		"ausdrisk-physical-activity",
		"ausdrisk-waist",
	},
	Bands: []Band{
		{0, 5, "Low risk – approximately 1 in 100 will develop diabetes within 5 years"},
		{6, 11, "Intermediate risk – approximately 1 in 50 will develop diabetes within 5 years"},
		{12, 38, "High risk – approximately 1 in 14 or greater; fasting blood glucose recommended"},
	},
}

// Instruments indexes every instrument by ID.
var Instruments = map[string]Instrument{
	K10.ID:      K10,
	AUDITC.ID:   AUDITC,
	PCL5.ID:     PCL5,
	DASS21.ID:   DASS21,
	UCLA3.ID:    UCLA3,
	AUSDRISK.ID: AUSDRISK,
}

func itemKeys(prefix string, n int) []string {
	keys := make([]string, n)
	for i := range keys {
		keys[i] = fmt.Sprintf("%s-q%d", prefix, i+1)
	}
	return keys
}

func dassItems(questions ...int) []string {
	keys := make([]string, len(questions))
	for i, q := range questions {
		keys[i] = fmt.Sprintf("dass-q%d", q)
	}
	return keys
}
