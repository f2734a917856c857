/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"net/http"

	"github.com/flamego/flamego"
)

// Healthz reports that the process is serving. The reference table is
// loaded before the server starts, so no database round trip is needed.
func Healthz(c flamego.Context) {
	writeJSON(c, http.StatusOK, map[string]string{"status": "ok"})
}
