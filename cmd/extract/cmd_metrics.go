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
	"os"

	"github.com/spf13/cobra"
)

var metricsCmd = &cobra.Command{
	Use:   "metrics [path...]",
	Short: "Run the extraction pipeline over files and print Prometheus text exposition",
	Long: `metrics runs the same pipeline as file/batch but discards the extracted
blocks, printing only the counters collector accumulated across the run:
documents processed, candidates found by detection method, and blocks
accepted or rejected by type and rule.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMetrics,
}

func runMetrics(cmd *cobra.Command, args []string) error {
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		if _, err := pipeline.Extract(cmd.Context(), string(data), path); err != nil {
			return fmt.Errorf("extracting %s: %w", path, err)
		}
	}

	text, err := collector.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), text)
	return nil
}
