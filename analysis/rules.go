/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package analysis

import (
	"fmt"
	"strings"
)

// Pattern thresholds.
const (
	bunCreatinineRatioLimit = 20.0

	a1cDiabetes    = 6.5
	a1cPrediabetes = 5.7

	ldlLimit           = 100.0
	hdlLimit           = 50.0
	triglyceridesLimit = 150.0

	tshHigh = 4.0
	tshLow  = 0.4
	ft4Low  = 0.8
	ft4High = 1.8

	ferritinLow       = 30.0
	transferrinSatLow = 20.0

	vitaminDDeficient    = 20.0
	vitaminDInsufficient = 30.0
)

func countAbnormal(findings []MarkerFinding) int {
	n := 0
	for _, f := range findings {
		if f.Status.IsAbnormal() {
			n++
		}
	}

	return n
}

func metabolicSummary(findings []MarkerFinding, markers markerValues) string {
	bun, hasBUN := markers.get(MarkerBUN)
	creatinine, hasCreatinine := markers.get(MarkerCreatinine)

	if hasBUN && hasCreatinine && creatinine > 0 {
		if bun/creatinine > bunCreatinineRatioLimit {
			return "Elevated BUN/Creatinine ratio may suggest dehydration or catabolic state."
		}
	}

	abnormal := countAbnormal(findings)
	if abnormal == 0 {
		return "All metabolic markers within normal ranges."
	}

	return fmt.Sprintf("%d marker(s) outside normal range.", abnormal)
}

func glycemicSummary(_ []MarkerFinding, markers markerValues) string {
	a1c, ok := markers.get(MarkerA1c)
	if !ok {
		return "A1c analysis complete."
	}

	switch {
	case a1c >= a1cDiabetes:
		return "A1c level meets diabetes diagnostic criteria (≥6.5%). Consult healthcare provider for diagnosis."
	case a1c >= a1cPrediabetes:
		return "A1c level in prediabetes range (5.7-6.4%). Consider lifestyle modifications."
	default:
		return "A1c level within normal range (<5.7%)."
	}
}

func lipidSummary(_ []MarkerFinding, markers markerValues) string {
	var issues []string

	if ldl, ok := markers.get(MarkerLDL); ok && ldl > ldlLimit {
		issues = append(issues, "elevated LDL")
	}

	if hdl, ok := markers.get(MarkerHDL); ok && hdl < hdlLimit {
		issues = append(issues, "low HDL")
	}

	if trig, ok := markers.get(MarkerTriglycerides); ok && trig > triglyceridesLimit {
		issues = append(issues, "elevated triglycerides")
	}

	if len(issues) == 0 {
		return "Lipid profile within optimal ranges."
	}

	return "Lipid profile shows " + strings.Join(issues, ", ") + ". Consider dietary and lifestyle modifications."
}

func thyroidSummary(_ []MarkerFinding, markers markerValues) string {
	tsh, hasTSH := markers.get(MarkerTSH)
	ft4, hasFT4 := markers.get(MarkerFreeT4)

	if !hasTSH || !hasFT4 {
		return "Thyroid markers reviewed."
	}

	switch {
	case tsh > tshHigh && ft4 < ft4Low:
		return "Pattern consistent with hypothyroid physiology (high TSH, low FT4)."
	case tsh < tshLow && ft4 > ft4High:
		return "Pattern consistent with hyperthyroid physiology (low TSH, high FT4)."
	case tsh > tshHigh:
		return "Elevated TSH may suggest subclinical hypothyroidism."
	case tsh < tshLow:
		return "Low TSH may suggest subclinical hyperthyroidism."
	default:
		return "Thyroid markers reviewed."
	}
}

func ironSummary(_ []MarkerFinding, markers markerValues) string {
	ferritin, ok := markers.get(MarkerFerritin)
	if !ok || ferritin >= ferritinLow {
		return "Iron panel reviewed."
	}

	if sat, ok := markers.get(MarkerTransferrinSat); ok && sat < transferrinSatLow {
		return "Pattern suggests iron deficiency (low ferritin and transferrin saturation)."
	}

	return "Low ferritin may indicate depleted iron stores."
}

func vitaminDSummary(_ []MarkerFinding, markers markerValues) string {
	vitD, ok := markers.get(MarkerVitaminD)
	if !ok {
		return "Vitamin D reviewed."
	}

	switch {
	case vitD < vitaminDDeficient:
		return "Vitamin D deficiency detected. Supplementation may be beneficial."
	case vitD < vitaminDInsufficient:
		return "Vitamin D level is insufficient. Consider supplementation."
	default:
		return "Vitamin D level is sufficient."
	}
}

func bloodCountSummary(findings []MarkerFinding, _ markerValues) string {
	abnormal := countAbnormal(findings)
	if abnormal == 0 {
		return "All blood cell counts within normal ranges."
	}

	return fmt.Sprintf("%d marker(s) outside normal range in complete blood count.", abnormal)
}
