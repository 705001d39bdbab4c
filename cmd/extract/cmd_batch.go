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
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/AleutianAI/blockextract/services/extract"
)

var batchCmd = &cobra.Command{
	Use:   "batch [path...]",
	Short: "Run the extraction pipeline over many files concurrently",
	Long: `batch fans a set of documents out across a bounded worker pool, since each
document's pipeline invocation is pure with respect to its own input and the
pipeline carries no ordering guarantee across documents (spec §5). Each result
is tagged with a generated document identifier so callers can correlate
output back to its source file.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

// documentResult pairs one file's accepted blocks with a generated
// identifier, since the pipeline itself makes no ordering or identity
// guarantee across documents (spec §5).
type documentResult struct {
	DocumentID string                  `json:"document_id"`
	Path       string                  `json:"path"`
	Blocks     []extract.AcceptedBlock `json:"blocks"`
	Error      string                  `json:"error,omitempty"`
}

func runBatch(cmd *cobra.Command, args []string) error {
	concurrency := cfg.BatchConcurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	results := make([]documentResult, len(args))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(concurrency)

	for i, path := range args {
		i, path := i, path
		g.Go(func() error {
			docID := uuid.NewString()
			data, err := os.ReadFile(path)
			if err != nil {
				mu.Lock()
				results[i] = documentResult{DocumentID: docID, Path: path, Error: err.Error()}
				mu.Unlock()
				return nil
			}

			blocks, err := pipeline.Extract(ctx, string(data), filepath.Base(path))
			res := documentResult{DocumentID: docID, Path: path}
			if err != nil {
				res.Error = err.Error()
			} else {
				res.Blocks = blocks
			}

			mu.Lock()
			results[i] = res
			mu.Unlock()

			logger.Info("batch document processed",
				"document_id", docID, "path", path, "blocks_accepted", len(blocks))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("batch run: %w", err)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}
