/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package analysis

import "errors"

var (
	// ErrInvalidRange is returned when a reference range breaks its ordering.
	ErrInvalidRange = errors.New("invalid reference range")
	// ErrDuplicateMarker is returned when two table keys name the same marker.
	ErrDuplicateMarker = errors.New("duplicate marker name")
)
