/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"net/http"

	"github.com/flamego/flamego"
)

// DefaultMaxBodyBytes bounds request bodies when no limit is configured.
const DefaultMaxBodyBytes int64 = 1 << 20

// NoCacheHeaders keeps lab results out of caches and search indexes.
func NoCacheHeaders() flamego.Handler {
	return func(c flamego.Context) {
		header := c.ResponseWriter().Header()
		header.Set("X-Robots-Tag", "noindex, nofollow, noarchive, nosnippet")
		header.Set("Cache-Control", "no-store, max-age=0")
		header.Set("Pragma", "no-cache")
		header.Set("Expires", "0")
		header.Set("X-Content-Type-Options", "nosniff")

		c.Next()
	}
}

// LimitBody caps the number of bytes a handler may read from the request.
func LimitBody(maxBytes int64) flamego.Handler {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodyBytes
	}

	return func(c flamego.Context) {
		req := c.Request().Request
		if req.Body != nil {
			req.Body = http.MaxBytesReader(c.ResponseWriter(), req.Body, maxBytes)
		}

		c.Next()
	}
}
