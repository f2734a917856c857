// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/humaidq/lablens/db"
)

func TestSyncDefaultRangesRequiresDatabase(t *testing.T) {
	t.Parallel()

	if db.Ready() {
		t.Skip("database initialized elsewhere")
	}

	var out bytes.Buffer

	err := syncDefaultRanges(context.Background(), &out, false)
	if !errors.Is(err, db.ErrDatabaseConnectionNotInitialized) {
		t.Fatalf("expected ErrDatabaseConnectionNotInitialized, got %v", err)
	}

	if out.Len() != 0 {
		t.Fatalf("nothing should be reported on failure, got %q", out.String())
	}
}
