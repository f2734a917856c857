/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/humaidq/lablens/analysis"
	"github.com/humaidq/lablens/db"
)

var CmdRanges = &cli.Command{
	Name:  "ranges",
	Usage: "Inspect and manage the reference range table",
	Flags: []cli.Flag{
		databaseURLFlag(),
		rangesFileFlag(),
	},
	Commands: []*cli.Command{
		{
			Name:   "list",
			Usage:  "Print the active reference table",
			Action: rangesList,
		},
		{
			Name:   "export",
			Usage:  "Print the active reference table as a YAML ranges file",
			Action: rangesExport,
		},
		{
			Name:  "sync",
			Usage: "Write the compiled-in table to the database",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "overwrite",
					Usage: "replace stored rows instead of only adding missing ones",
				},
			},
			Action: rangesSync,
		},
	},
}

func rangesList(ctx context.Context, cmd *cli.Command) error {
	table, err := loadRangeTable(ctx, cmd.String("database-url"), cmd.String("ranges-file"))
	if err != nil {
		return err
	}

	return writeRangeTable(commandWriter(cmd), table)
}

func rangesExport(ctx context.Context, cmd *cli.Command) error {
	table, err := loadRangeTable(ctx, cmd.String("database-url"), cmd.String("ranges-file"))
	if err != nil {
		return err
	}

	return encodeRanges(commandWriter(cmd), table)
}

func rangesSync(ctx context.Context, cmd *cli.Command) error {
	databaseURL := cmd.String("database-url")
	if databaseURL == "" {
		return errDatabaseURLRequired
	}

	if err := db.Init(ctx, databaseURL); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	// Migrations only; syncDefaultRanges does the seeding.
	if err := db.Migrate(ctx, databaseURL); err != nil {
		return err
	}

	return syncDefaultRanges(ctx, commandWriter(cmd), cmd.Bool("overwrite"))
}

func syncDefaultRanges(ctx context.Context, out io.Writer, overwrite bool) error {
	written, err := db.SyncReferenceRanges(ctx, analysis.DefaultRanges(), overwrite)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Wrote %d reference range(s)\n", written)

	return nil
}

func optionalBound(v *float64) string {
	if v == nil {
		return "-"
	}

	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func writeRangeTable(out io.Writer, table analysis.RangeTable) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "MARKER\tLOW\tHIGH\tUNIT\tCRITICAL LOW\tCRITICAL HIGH")

	for _, name := range table.Names() {
		rr := table[name]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			name,
			strconv.FormatFloat(rr.Low, 'f', -1, 64),
			strconv.FormatFloat(rr.High, 'f', -1, 64),
			rr.Unit,
			optionalBound(rr.CriticalLow),
			optionalBound(rr.CriticalHigh),
		)
	}

	return tw.Flush()
}
