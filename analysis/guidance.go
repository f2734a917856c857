/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package analysis

// fallbackGuidance is used for markers with no specific guidance.
const fallbackGuidance = "Discuss this result with your healthcare provider."

type markerGuidance struct {
	low  string
	high string
}

var guidanceByMarker = map[string]markerGuidance{
	MarkerHemoglobin: {
		low:  "Low hemoglobin can indicate anemia; iron, B12 and folate studies may help.",
		high: "High hemoglobin can reflect dehydration or increased red cell production.",
	},
	MarkerHematocrit: {
		low:  "Low hematocrit often accompanies anemia.",
		high: "High hematocrit can reflect dehydration.",
	},
	"WBC": {
		low:  "Low white cell count may reduce resistance to infection.",
		high: "High white cell count can indicate infection or inflammation.",
	},
	"Platelets": {
		low:  "Low platelets can increase bleeding risk.",
		high: "High platelets can follow inflammation or iron deficiency.",
	},
	"Sodium": {
		low:  "Low sodium is often related to fluid balance or medications.",
		high: "High sodium usually points to dehydration.",
	},
	"Potassium": {
		low:  "Low potassium can affect heart rhythm and muscle function.",
		high: "High potassium can affect heart rhythm; a repeat test may be needed.",
	},
	"Chloride": {
		low:  "Low chloride usually tracks other electrolyte changes.",
		high: "High chloride usually tracks dehydration or acid-base changes.",
	},
	"CO2": {
		low:  "Low bicarbonate can indicate an acid-base imbalance.",
		high: "High bicarbonate can indicate an acid-base imbalance.",
	},
	MarkerBUN: {
		low:  "Low BUN is rarely significant and can reflect low protein intake.",
		high: "High BUN can reflect dehydration, high protein intake or reduced kidney function.",
	},
	MarkerCreatinine: {
		low:  "Low creatinine can reflect low muscle mass.",
		high: "High creatinine may indicate reduced kidney filtration.",
	},
	MarkerGlucose: {
		low:  "Low glucose can cause shakiness or dizziness.",
		high: "High glucose may indicate impaired glucose regulation; fasting status matters.",
	},
	"Calcium": {
		low:  "Low calcium can relate to vitamin D or albumin levels.",
		high: "High calcium can relate to parathyroid function.",
	},
	MarkerAST: {
		high: "Elevated AST can reflect liver or muscle stress.",
	},
	MarkerALT: {
		high: "Elevated ALT is a sensitive marker of liver cell stress.",
	},
	MarkerAlkPhos: {
		low:  "Low alkaline phosphatase can relate to nutrition.",
		high: "High alkaline phosphatase can come from liver or bone.",
	},
	MarkerAlbumin: {
		low:  "Low albumin can reflect nutrition, liver or kidney status.",
		high: "High albumin usually reflects dehydration.",
	},
	MarkerTotalBilirubin: {
		low:  "Low bilirubin is generally not a concern.",
		high: "High bilirubin can relate to liver function or red cell breakdown.",
	},
	MarkerTotalCholesterol: {
		high: "High total cholesterol raises long-term cardiovascular risk.",
	},
	MarkerLDL: {
		high: "Elevated LDL is a major modifiable cardiovascular risk factor.",
	},
	MarkerHDL: {
		low:  "Low HDL reduces cardiovascular protection; exercise can raise it.",
		high: "High HDL is generally favorable.",
	},
	MarkerTriglycerides: {
		high: "High triglycerides respond to reduced sugar, alcohol and refined carbohydrates.",
	},
	MarkerA1c: {
		low:  "Low A1c can be affected by red cell turnover.",
		high: "Elevated A1c reflects higher average blood sugar over the past 3 months.",
	},
	MarkerTSH: {
		low:  "Low TSH can indicate an overactive thyroid.",
		high: "High TSH can indicate an underactive thyroid.",
	},
	MarkerFreeT4: {
		low:  "Low free T4 can indicate an underactive thyroid.",
		high: "High free T4 can indicate an overactive thyroid.",
	},
	MarkerVitaminD: {
		low:  "Low vitamin D is common and usually corrected with supplementation.",
		high: "High vitamin D usually reflects excess supplementation.",
	},
	MarkerFerritin: {
		low:  "Low ferritin indicates depleted iron stores.",
		high: "High ferritin can reflect inflammation or iron overload.",
	},
	"Serum Iron": {
		low:  "Low serum iron can indicate iron deficiency.",
		high: "High serum iron can indicate iron overload.",
	},
	"TIBC": {
		low:  "Low TIBC can accompany inflammation or iron overload.",
		high: "High TIBC often accompanies iron deficiency.",
	},
	MarkerTransferrinSat: {
		low:  "Low transferrin saturation supports iron deficiency.",
		high: "High transferrin saturation can indicate iron overload.",
	},
}

// guidanceFor returns the guidance text for an abnormal finding. It never
// returns an empty string.
func guidanceFor(f MarkerFinding) string {
	canonical, _ := CanonicalName(f.Marker)

	g, ok := guidanceByMarker[canonical]
	if !ok {
		return fallbackGuidance
	}

	text := g.high
	if f.Status.IsLow() {
		text = g.low
	}

	if text == "" {
		return fallbackGuidance
	}

	return text
}

// Recommendation texts, in the order they are emitted.
const (
	recommendUrgent        = "Contact your healthcare provider immediately to discuss critical values"
	recommendComprehensive = "Comprehensive review with your doctor recommended due to multiple abnormal markers"
	recommendFollowUp      = "Schedule follow-up with your healthcare provider to discuss these findings"
	recommendKidney        = "Consider discussing kidney function markers with your provider"
	recommendLiver         = "Liver enzyme levels may warrant further evaluation"
	recommendThyroid       = "Thyroid function abnormalities detected - endocrinology consultation may be beneficial"
	recommendLipid         = "Lipid abnormalities detected - discuss cardiovascular risk reduction with your provider"
	recommendGlycemic      = "Blood sugar markers are outside range - discuss diabetes screening with your provider"
	recommendAnemia        = "Low red cell markers detected - ask your provider about evaluation for anemia"
	recommendMaintain      = "Continue maintaining your current healthy lifestyle and routine health monitoring"
)

// markerPredicate matches a finding by canonical name and status.
type markerPredicate struct {
	markers map[string]bool
	match   func(Status) bool
	text    string
}

func markerSet(names ...string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}

	return set
}

var patternRecommendations = []markerPredicate{
	{
		markers: markerSet(MarkerBUN, MarkerCreatinine),
		match:   Status.IsAbnormal,
		text:    recommendKidney,
	},
	{
		markers: markerSet(MarkerALT, MarkerAST, MarkerAlkPhos, MarkerTotalBilirubin, MarkerAlbumin),
		match:   Status.IsAbnormal,
		text:    recommendLiver,
	},
	{
		markers: markerSet(MarkerTSH, MarkerFreeT4),
		match:   Status.IsAbnormal,
		text:    recommendThyroid,
	},
	{
		markers: markerSet(MarkerTotalCholesterol, MarkerLDL, MarkerHDL, MarkerTriglycerides),
		match:   Status.IsAbnormal,
		text:    recommendLipid,
	},
	{
		markers: markerSet(MarkerA1c, MarkerGlucose),
		match:   Status.IsAbnormal,
		text:    recommendGlycemic,
	},
	{
		markers: markerSet(MarkerHemoglobin, MarkerHematocrit),
		match:   Status.IsLow,
		text:    recommendAnemia,
	},
}

// recommendations builds the ordered list of next steps.
func recommendations(all []MarkerFinding, criticals, abnormals int) []string {
	var recs []string

	if criticals > 0 {
		recs = append(recs, recommendUrgent)
	}

	switch {
	case abnormals >= moderateAbnormalCount:
		recs = append(recs, recommendComprehensive)
	case abnormals > 0:
		recs = append(recs, recommendFollowUp)
	}

	for _, p := range patternRecommendations {
		for _, f := range all {
			canonical, _ := CanonicalName(f.Marker)
			if p.markers[canonical] && p.match(f.Status) {
				recs = append(recs, p.text)
				break
			}
		}
	}

	if abnormals == 0 {
		recs = append(recs, recommendMaintain)
	}

	return recs
}
