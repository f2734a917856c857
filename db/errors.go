/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import "errors"

var (
	ErrDatabaseURLRequired              = errors.New("database URL is required")
	ErrDatabaseNameNotSpecified         = errors.New("database name not specified in connection URL")
	ErrDatabaseConnectionNotInitialized = errors.New("database connection not initialized")
)
