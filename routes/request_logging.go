/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/flamego/flamego"
	"github.com/google/uuid"
)

// RequestIDHeader carries the id assigned to each request.
const RequestIDHeader = "X-Request-Id"

// RequestID is the id of the current request, injected by RequestLogger.
type RequestID string

// RequestLogger assigns a request id and logs request metadata and timing.
// Query strings and bodies are never logged.
func RequestLogger(c flamego.Context) {
	start := time.Now()

	id := RequestID(uuid.NewString())
	c.ResponseWriter().Header().Set(RequestIDHeader, string(id))
	c.Map(id)

	c.Next()

	status := c.ResponseWriter().Status()
	if status == 0 {
		status = http.StatusOK
	}

	fields := []interface{}{
		"event", "request",
		"status", status,
		"duration_ms", time.Since(start).Milliseconds(),
	}
	fields = append(fields, baseRequestFields(c, id)...)

	if status >= http.StatusInternalServerError {
		requestLogger.Warn("request", fields...)
		return
	}

	requestLogger.Info("request", fields...)
}

func baseRequestFields(c flamego.Context, id RequestID) []interface{} {
	return []interface{}{
		"request_id", string(id),
		"method", c.Request().Method,
		"path", c.Request().URL.Path,
		"ip", clientIP(c),
		"user_agent", c.Request().UserAgent(),
	}
}

func clientIP(c flamego.Context) string {
	forwardedFor := c.Request().Header.Get("X-Forwarded-For")
	if forwardedFor != "" {
		if idx := strings.Index(forwardedFor, ","); idx != -1 {
			forwardedFor = forwardedFor[:idx]
		}

		if ip := strings.TrimSpace(forwardedFor); ip != "" {
			return ip
		}
	}

	return c.RemoteAddr()
}
