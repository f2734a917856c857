/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/humaidq/lablens/analysis"
	"github.com/humaidq/lablens/schema"
)

const (
	formatText = "text"
	formatJSON = "json"
)

var CmdAnalyze = &cli.Command{
	Name:      "analyze",
	Usage:     "Analyze a submission file and print the result",
	ArgsUsage: "[file|-]",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "file",
			Aliases: []string{"f"},
			Usage:   "submission JSON file, - for stdin",
		},
		&cli.StringFlag{
			Name:  "format",
			Value: formatText,
			Usage: "output format: text or json",
		},
		rangesFileFlag(),
		databaseURLFlag(),
	},
	Action: analyzeAction,
}

func analyzeAction(ctx context.Context, cmd *cli.Command) error {
	format := cmd.String("format")
	if format != formatText && format != formatJSON {
		return errUnknownFormat
	}

	path := cmd.String("file")
	if path == "" {
		path = cmd.Args().First()
	}

	in, closeIn, err := openInput(path)
	if err != nil {
		return err
	}
	defer closeIn()

	table, err := loadRangeTable(ctx, cmd.String("database-url"), cmd.String("ranges-file"))
	if err != nil {
		return err
	}

	return runAnalyze(in, commandWriter(cmd), analysis.NewEngine(table), format)
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "" || path == "-" {
		return os.Stdin, func() {}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open submission: %w", err)
	}

	return f, func() { f.Close() }, nil
}

func commandWriter(cmd *cli.Command) io.Writer {
	if root := cmd.Root(); root != nil && root.Writer != nil {
		return root.Writer
	}

	return os.Stdout
}

func runAnalyze(in io.Reader, out io.Writer, engine *analysis.Engine, format string) error {
	sub, err := schema.DecodeSubmission(in)
	if err != nil {
		return err
	}

	result := engine.Analyze(sub)

	if format == formatJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")

		return enc.Encode(result)
	}

	return writeTextResult(out, result)
}

func writeTextResult(out io.Writer, result analysis.AnalysisResult) error {
	fmt.Fprintf(out, "Overall severity: %s\n\n", result.OverallSeverity)

	for _, line := range result.SummaryBullets {
		fmt.Fprintln(out, line)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)

	for _, pf := range result.PanelFindings {
		fmt.Fprintf(tw, "\n%s\t\t\t\t\n", pf.PanelName.Label())

		for _, f := range pf.Findings {
			fmt.Fprintf(tw, "  %s\t%s %s\t%s\t%s-%s\t%s\n",
				f.Marker,
				strconv.FormatFloat(f.Value, 'f', -1, 64), f.Unit,
				f.Status.Label(),
				strconv.FormatFloat(f.RefLow, 'f', -1, 64),
				strconv.FormatFloat(f.RefHigh, 'f', -1, 64),
				f.RangeSource,
			)
		}

		if pf.Summary != "" {
			fmt.Fprintf(tw, "  %s\t\t\t\t\n", pf.Summary)
		}
	}

	return tw.Flush()
}
