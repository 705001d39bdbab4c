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

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/AleutianAI/blockextract/cmd/extract/internal/tui"
)

var viewCmd = &cobra.Command{
	Use:   "view [path]",
	Short: "Run the extraction pipeline over a file and review its blocks interactively",
	Args:  cobra.ExactArgs(1),
	RunE:  runView,
}

func runView(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	blocks, err := pipeline.Extract(cmd.Context(), string(data), path)
	if err != nil {
		return fmt.Errorf("extracting %s: %w", path, err)
	}
	if len(blocks) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no blocks accepted")
		return nil
	}

	model := tui.New(blocks)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	return err
}
