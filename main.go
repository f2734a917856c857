/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/humaidq/lablens/cmd"
	"github.com/humaidq/lablens/logging"
)

func main() {
	app := &cli.Command{
		Name:  "lablens",
		Usage: "LabLens - lab marker analysis",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Sources: cli.EnvVars("LABLENS_LOG_LEVEL"),
				Usage:   "minimum log level (debug, info, warn, error)",
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, logging.SetLevel(c.String("log-level"))
		},
		Commands: []*cli.Command{
			cmd.CmdStart,
			cmd.CmdAnalyze,
			cmd.CmdRanges,
			cmd.CmdMigrate,
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logging.Logger(logging.SourceApp).Fatal("command failed", "error", err)
	}
}
