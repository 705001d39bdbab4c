// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/AleutianAI/blockextract/cmd/extract/internal/config"
	"github.com/AleutianAI/blockextract/pkg/logging"
	"github.com/AleutianAI/blockextract/services/extract"
	"github.com/AleutianAI/blockextract/services/extract/metrics"
	"github.com/AleutianAI/blockextract/services/extract/tracing"
)

var (
	configPath string
	cfg        config.Config
	logger     *logging.Logger
	pipeline   *extract.Pipeline
	collector  *metrics.Collector
	tracerProv *sdktrace.TracerProvider
)

var rootCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract validated code, config, and data blocks from free-form text",
	Long: `extract runs the Segmenter -> Validator -> Precision Filter pipeline
over one or more documents and reports the accepted blocks it finds.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file (optional)")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded

		level := logging.LevelInfo
		switch cfg.LogLevel {
		case "debug":
			level = logging.LevelDebug
		case "warn":
			level = logging.LevelWarn
		case "error":
			level = logging.LevelError
		}
		logger = logging.New(logging.Config{
			Level:   level,
			Service: "extract",
			JSON:    !isatty.IsTerminal(os.Stderr.Fd()),
		})

		collector = metrics.New()

		traceWriter := io.Discard
		if cfg.TracePath != "" {
			traceFile, err := os.Create(cfg.TracePath)
			if err != nil {
				return fmt.Errorf("opening trace output %s: %w", cfg.TracePath, err)
			}
			traceWriter = traceFile
		}
		tracerProv, err = tracing.NewTracerProvider(traceWriter)
		if err != nil {
			return fmt.Errorf("building tracer provider: %w", err)
		}
		otel.SetTracerProvider(tracerProv)

		var opts []extract.Option
		opts = append(opts, extract.WithLogger(logger.Slog()))
		opts = append(opts, extract.WithMetrics(collector))
		if cfg.MaxInputSize > 0 {
			opts = append(opts, extract.WithMaxInputSize(cfg.MaxInputSize))
		}
		pipeline = extract.NewPipeline(opts...)

		return nil
	}

	rootCmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if tracerProv == nil {
			return nil
		}
		return tracerProv.Shutdown(cmd.Context())
	}

	rootCmd.AddCommand(fileCmd, batchCmd, viewCmd, metricsCmd)
}
