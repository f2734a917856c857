/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package analysis

import "strings"

// Canonical marker names referenced by panel rules and recommendations.
const (
	MarkerHemoglobin       = "Hemoglobin"
	MarkerHematocrit       = "Hematocrit"
	MarkerBUN              = "BUN"
	MarkerCreatinine       = "Creatinine"
	MarkerGlucose          = "Glucose"
	MarkerAST              = "AST"
	MarkerALT              = "ALT"
	MarkerAlkPhos          = "Alk Phos"
	MarkerAlbumin          = "Albumin"
	MarkerTotalBilirubin   = "Total Bilirubin"
	MarkerTotalCholesterol = "Total Cholesterol"
	MarkerLDL              = "LDL"
	MarkerHDL              = "HDL"
	MarkerTriglycerides    = "Triglycerides"
	MarkerA1c              = "A1c"
	MarkerTSH              = "TSH"
	MarkerFreeT4           = "Free T4"
	MarkerVitaminD         = "Vitamin D 25-OH"
	MarkerFerritin         = "Ferritin"
	MarkerTransferrinSat   = "Transferrin Saturation"
)

// markerAliases maps alternative spellings to canonical names. Canonical
// names map to themselves implicitly through the range table.
var markerAliases = map[string]string{
	"hemoglobin a1c":             MarkerA1c,
	"haemoglobin a1c":            MarkerA1c,
	"haemoglobin hba1c":          MarkerA1c,
	"hba1c":                      MarkerA1c,
	"free t4":                    MarkerFreeT4,
	"ft4":                        MarkerFreeT4,
	"free thyroxine":             MarkerFreeT4,
	"vitamin d":                  MarkerVitaminD,
	"25-oh vitamin d":            MarkerVitaminD,
	"transferrin sat":            MarkerTransferrinSat,
	"tsat":                       MarkerTransferrinSat,
	"iron":                       "Serum Iron",
	"iron, serum":                "Serum Iron",
	"bicarbonate":                "CO2",
	"alkaline phosphatase":       MarkerAlkPhos,
	"alkaline phosphatase (alp)": MarkerAlkPhos,
	"alp":                        MarkerAlkPhos,
	"bilirubin":                  MarkerTotalBilirubin,
	"bilirubin total":            MarkerTotalBilirubin,
	"alt (sgpt)":                 MarkerALT,
	"sgpt":                       MarkerALT,
	"sgpt (alt), serum":          MarkerALT,
	"ast (sgot)":                 MarkerAST,
	"sgot":                       MarkerAST,
	"sgot (ast)":                 MarkerAST,
	"ldl cholesterol":            MarkerLDL,
	"hdl cholesterol":            MarkerHDL,
	"cholesterol":                MarkerTotalCholesterol,
	"glucose fasting fbs":        MarkerGlucose,
	"fasting glucose":            MarkerGlucose,
	"blood urea nitrogen":        MarkerBUN,
	"white blood cells":          "WBC",
	"haemoglobin":                MarkerHemoglobin,
	"hgb":                        MarkerHemoglobin,
	"hct":                        MarkerHematocrit,
}

// canonicalByFold holds every known name keyed by its folded form.
var canonicalByFold = buildCanonicalIndex()

func buildCanonicalIndex() map[string]string {
	index := make(map[string]string, len(markerAliases)+32)
	for name := range DefaultRanges() {
		index[foldName(name)] = name
	}

	for alias, canonical := range markerAliases {
		index[alias] = canonical
	}

	return index
}

func foldName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// CanonicalName resolves a marker name to its canonical form. Unknown names
// are returned trimmed, with ok set to false.
func CanonicalName(name string) (string, bool) {
	if canonical, ok := canonicalByFold[foldName(name)]; ok {
		return canonical, true
	}

	return strings.TrimSpace(name), false
}
