/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package analysis

// PanelType identifies a panel from the fixed vocabulary
type PanelType string

// PanelType values. Wire names match the submission format.
const (
	PanelBloodCount PanelType = "CBC"
	PanelMetabolic  PanelType = "CMP"
	PanelLipid      PanelType = "LIPID"
	PanelGlycemic   PanelType = "A1C"
	PanelThyroid    PanelType = "THYROID"
	PanelVitaminD   PanelType = "VITD"
	PanelIron       PanelType = "IRON"
)

// AllPanelTypes returns every supported panel type in display order.
func AllPanelTypes() []PanelType {
	return []PanelType{
		PanelBloodCount,
		PanelMetabolic,
		PanelLipid,
		PanelGlycemic,
		PanelThyroid,
		PanelVitaminD,
		PanelIron,
	}
}

// IsValid reports whether p belongs to the vocabulary.
func (p PanelType) IsValid() bool {
	for _, known := range AllPanelTypes() {
		if p == known {
			return true
		}
	}

	return false
}

// Label returns the human-readable panel name used in summary lines.
func (p PanelType) Label() string {
	switch p {
	case PanelBloodCount:
		return "Complete Blood Count"
	case PanelMetabolic:
		return "Metabolic Panel"
	case PanelLipid:
		return "Lipid Panel"
	case PanelGlycemic:
		return "Hemoglobin A1c"
	case PanelThyroid:
		return "Thyroid Panel"
	case PanelVitaminD:
		return "Vitamin D"
	case PanelIron:
		return "Iron Panel"
	default:
		return string(p)
	}
}

// panelRule derives the single summary sentence of a panel.
type panelRule func(findings []MarkerFinding, markers markerValues) string

// ruleFor returns the rule of a panel type, or nil for unknown types.
func ruleFor(p PanelType) panelRule {
	switch p {
	case PanelBloodCount:
		return bloodCountSummary
	case PanelMetabolic:
		return metabolicSummary
	case PanelLipid:
		return lipidSummary
	case PanelGlycemic:
		return glycemicSummary
	case PanelThyroid:
		return thyroidSummary
	case PanelVitaminD:
		return vitaminDSummary
	case PanelIron:
		return ironSummary
	default:
		return nil
	}
}

// analyzePanel classifies every marker in input order and runs the panel rule.
func (e *Engine) analyzePanel(p Panel) PanelFinding {
	findings := make([]MarkerFinding, 0, len(p.Markers))
	for _, m := range p.Markers {
		findings = append(findings, e.analyzeMarker(m))
	}

	var summary string
	if rule := ruleFor(p.PanelName); rule != nil {
		summary = rule(findings, newMarkerValues(p.Markers))
	}

	return PanelFinding{
		PanelName: p.PanelName,
		Findings:  findings,
		Summary:   summary,
	}
}

// markerValues indexes the raw values of a panel by canonical name. The
// first marker with a given name wins.
type markerValues map[string]float64

func newMarkerValues(markers []Marker) markerValues {
	values := make(markerValues, len(markers))
	for _, m := range markers {
		canonical, _ := CanonicalName(m.Name)
		if _, seen := values[canonical]; !seen {
			values[canonical] = m.Value
		}
	}

	return values
}

func (v markerValues) get(canonical string) (float64, bool) {
	value, ok := v[canonical]
	return value, ok
}
