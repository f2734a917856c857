/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/flamego/flamego"
	"github.com/urfave/cli/v3"

	"github.com/humaidq/lablens/analysis"
	"github.com/humaidq/lablens/refine"
	"github.com/humaidq/lablens/routes"
)

var CmdStart = &cli.Command{
	Name:    "start",
	Aliases: []string{"run"},
	Usage:   "Start the web server",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "port",
			Value: "8080",
			Usage: "the web server port",
		},
		databaseURLFlag(),
		rangesFileFlag(),
		&cli.StringFlag{
			Name:    "ollama-url",
			Sources: cli.EnvVars("OLLAMA_URL"),
			Usage:   "OpenAI-compatible chat endpoint used for ?refine=true and /api/refine",
		},
		&cli.StringFlag{
			Name:    "ollama-model",
			Sources: cli.EnvVars("OLLAMA_MODEL"),
			Usage:   "model name for refinement",
		},
		&cli.Int64Flag{
			Name:  "max-body-bytes",
			Value: routes.DefaultMaxBodyBytes,
			Usage: "maximum accepted request body size",
		},
	},
	Action: start,
}

func newRefiner(url, model string) routes.Refiner {
	client, err := refine.New(refine.Config{URL: url, Model: model})
	if err != nil {
		appLogger.Info("AI refinement disabled", "reason", err)
		return routes.DisabledRefiner{}
	}

	appLogger.Info("AI refinement enabled", "model", model)

	return client
}

func configureNotFoundHandler(f *flamego.Flame) {
	f.NotFound(func(c flamego.Context) {
		c.ResponseWriter().Header().Set("Content-Type", "application/json; charset=utf-8")
		c.ResponseWriter().WriteHeader(http.StatusNotFound)
		_, _ = c.ResponseWriter().Write([]byte(`{"error":"not found"}` + "\n"))
	})
}

// newApp wires the HTTP API around an engine and a refiner.
func newApp(engine *analysis.Engine, refiner routes.Refiner, maxBodyBytes int64) *flamego.Flame {
	f := flamego.New()
	f.Use(flamego.Recovery())
	f.Use(routes.RequestLogger)
	f.Use(routes.NoCacheHeaders())
	f.Use(routes.LimitBody(maxBodyBytes))

	f.Map(engine)
	f.MapTo(refiner, (*routes.Refiner)(nil))

	configureNotFoundHandler(f)

	f.Get("/healthz", routes.Healthz)

	f.Group("/api", func() {
		f.Post("/analyze", routes.Analyze)
		f.Post("/refine", routes.Refine)
		f.Get("/ranges", routes.ListRanges)
		f.Get("/ranges/{name}", routes.GetRange)
	})

	return f
}

func start(ctx context.Context, cmd *cli.Command) error {
	table, err := loadRangeTable(ctx, cmd.String("database-url"), cmd.String("ranges-file"))
	if err != nil {
		return err
	}

	engine := analysis.NewEngine(table)
	refiner := newRefiner(cmd.String("ollama-url"), cmd.String("ollama-model"))

	srv := &http.Server{
		Addr:              fmt.Sprintf("0.0.0.0:%s", cmd.String("port")),
		Handler:           newApp(engine, refiner, cmd.Int64("max-body-bytes")),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		// Refinement calls can take minutes on local models.
		WriteTimeout: 5 * time.Minute,
		ErrorLog:     requestStdLogger,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)

	go func() {
		webLogger.Info("Starting web server", "addr", srv.Addr, "ranges", len(table))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("web server failed: %w", err)
		}

		return nil
	case <-ctx.Done():
	}

	webLogger.Info("Shutting down web server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down web server: %w", err)
	}

	return nil
}
