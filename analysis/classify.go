/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package analysis

// Classify places a value against its reference interval. Critical bounds
// are checked first and are inclusive; the normal bounds are exclusive, so a
// value equal to refLow or refHigh is normal.
func Classify(value, refLow, refHigh float64, criticalLow, criticalHigh *float64) Status {
	if criticalLow != nil && value <= *criticalLow {
		return StatusCriticalLow
	}

	if criticalHigh != nil && value >= *criticalHigh {
		return StatusCriticalHigh
	}

	if value < refLow {
		return StatusLow
	}

	if value > refHigh {
		return StatusHigh
	}

	return StatusNormal
}
