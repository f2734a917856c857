/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"fmt"
	"net/http"

	"github.com/flamego/flamego"

	"github.com/humaidq/lablens/analysis"
)

// RangeEntry is one row of the active reference table.
type RangeEntry struct {
	Name string `json:"name"`
	analysis.ReferenceRange
}

// RangeEntries lists a table in name order.
func RangeEntries(table analysis.RangeTable) []RangeEntry {
	names := table.Names()
	entries := make([]RangeEntry, 0, len(names))

	for _, name := range names {
		entries = append(entries, RangeEntry{Name: name, ReferenceRange: table[name]})
	}

	return entries
}

// ListRanges returns the reference table the engine is using.
func ListRanges(c flamego.Context, engine *analysis.Engine) {
	writeJSON(c, http.StatusOK, RangeEntries(engine.Ranges()))
}

// GetRange returns one entry, looked up through the alias table.
func GetRange(c flamego.Context, engine *analysis.Engine) {
	name := c.Param("name")

	rr, ok := engine.Ranges().Lookup(name)
	if !ok {
		writeError(c, http.StatusNotFound, fmt.Errorf("no reference range for %q", name))
		return
	}

	canonical, _ := analysis.CanonicalName(name)
	writeJSON(c, http.StatusOK, RangeEntry{Name: canonical, ReferenceRange: rr})
}
