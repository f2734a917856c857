/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package analysis

import "fmt"

// Fixed summary lines.
const (
	HeaderAllNormal      = "All lab markers are within normal reference ranges."
	KeyFindingsHeading   = "Key findings to discuss with your provider:"
	RecommendationsTitle = "Recommended next steps:"
)

// Disclaimers are appended to every summary, always last.
var Disclaimers = []string{
	"This analysis is informational and is not a medical diagnosis.",
	"Always review your lab results with a qualified healthcare provider.",
}

const bulletPrefix = "- "

// summaryBullets assembles the summary script. The order of sections is
// fixed: header, criticals, panel summaries, key findings, recommendations,
// disclaimers.
func summaryBullets(panels []PanelFinding, all, criticals, abnormals []MarkerFinding) []string {
	var bullets []string

	if len(abnormals) == 0 {
		bullets = append(bullets, HeaderAllNormal)
	} else {
		bullets = append(bullets, fmt.Sprintf(
			"Lab analysis summary: %d marker(s) outside normal range across %d panel(s).",
			len(abnormals), len(panels)))
	}

	if len(criticals) > 0 {
		bullets = append(bullets, fmt.Sprintf(
			"URGENT: %d critical value(s) detected requiring immediate clinical attention.",
			len(criticals)))

		for _, c := range criticals {
			bullets = append(bullets, fmt.Sprintf("%s%s: %s (%s) - %s",
				bulletPrefix, c.Marker, formatQuantity(c.Value, c.Unit), c.Status.Label(), c.Note))
		}
	}

	for _, pf := range panels {
		if pf.Summary != "" {
			bullets = append(bullets, pf.PanelName.Label()+": "+pf.Summary)
		}
	}

	var keyFindings []string
	for _, f := range abnormals {
		if f.Status.IsCritical() {
			continue
		}

		keyFindings = append(keyFindings, fmt.Sprintf("%s%s: %s (%s) - %s",
			bulletPrefix, f.Marker, formatQuantity(f.Value, f.Unit), f.Status.Label(), guidanceFor(f)))
	}

	if len(keyFindings) > 0 {
		bullets = append(bullets, KeyFindingsHeading)
		bullets = append(bullets, keyFindings...)
	}

	if recs := recommendations(all, len(criticals), len(abnormals)); len(recs) > 0 {
		bullets = append(bullets, RecommendationsTitle)
		for _, rec := range recs {
			bullets = append(bullets, bulletPrefix+rec)
		}
	}

	return append(bullets, Disclaimers...)
}
