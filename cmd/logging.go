/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import "github.com/humaidq/lablens/logging"

var appLogger = logging.Logger(logging.SourceApp)
var webLogger = logging.Logger(logging.SourceWeb)
var requestStdLogger = logging.StdLogger(logging.SourceWebRequest)
