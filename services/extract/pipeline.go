// Package extract orchestrates the three pipeline stages — Segmenter,
// Validator, Precision Filter — over the shared Grammar Registry. See
// spec §2.
package extract

import (
	"context"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/AleutianAI/blockextract/services/extract/block"
	"github.com/AleutianAI/blockextract/services/extract/filter"
	"github.com/AleutianAI/blockextract/services/extract/metrics"
	"github.com/AleutianAI/blockextract/services/extract/registry"
	"github.com/AleutianAI/blockextract/services/extract/segmenter"
	"github.com/AleutianAI/blockextract/services/extract/tracing"
	"github.com/AleutianAI/blockextract/services/extract/validator"
)

// Re-exported for ergonomic importing: callers of package extract should
// not also need to import package block for the record types.
type (
	CandidateBlock = block.CandidateBlock
	ValidatedBlock = block.ValidatedBlock
	AcceptedBlock  = block.AcceptedBlock
	BlockType      = block.BlockType
)

// Pipeline bundles a Grammar Registry and the Validator built on top of
// it. Segmenter and Filter are pure functions with no state to bundle.
// A Pipeline is safe for concurrent use across documents: the Registry
// builds all its parsers up front (spec §5).
type Pipeline struct {
	registry  *registry.Registry
	validator *validator.Validator
	logger    *slog.Logger
	regOpt    []registry.Option
	metrics   *metrics.Collector
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger attaches a structured logger for infrastructural failures
// (spec §7 category 3). Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// WithMaxInputSize caps the size of code handed to the Grammar Registry.
func WithMaxInputSize(n int) Option {
	return func(p *Pipeline) { p.regOpt = append(p.regOpt, registry.WithMaxInputSize(n)) }
}

// WithMetrics attaches a Collector that records per-document and
// per-stage counters. Nil by default; callers that don't need metrics
// pay nothing.
func WithMetrics(c *metrics.Collector) Option {
	return func(p *Pipeline) { p.metrics = c }
}

// NewPipeline builds a Pipeline, constructing every grammar in the
// registry up front.
func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	p.registry = registry.New(append(p.regOpt, registry.WithLogger(p.logger))...)
	p.validator = validator.New(p.registry)
	return p
}

// Extract runs the full pipeline over one normalized document. text must
// already be UTF-8 and normalized to \n newlines (spec §6); invalid
// UTF-8 is a systemic failure (spec §7 category 3) and is returned as an
// error with no partial result. A ctx that is canceled or past its
// deadline by the end of validation is likewise returned as an error
// with no partial result.
func (p *Pipeline) Extract(ctx context.Context, text string, filename string) ([]block.AcceptedBlock, error) {
	start := time.Now()
	ctx, span := tracing.StartDocumentSpan(ctx, filename, len(text))
	defer span.End()

	if !utf8.ValidString(text) {
		return nil, fmt.Errorf("extract: input is not valid UTF-8")
	}

	_, segSpan := tracing.StartStageSpan(ctx, "Segment")
	candidates := segmenter.Segment(text)
	segSpan.End()

	if p.metrics != nil {
		for _, c := range candidates {
			p.metrics.ObserveCandidate(c.DetectionMethod)
		}
	}
	if len(candidates) == 0 {
		tracing.SetDocumentResult(span, 0, 0)
		if p.metrics != nil {
			p.metrics.ObserveDocument(time.Since(start))
		}
		return []block.AcceptedBlock{}, nil
	}

	valCtx, valSpan := tracing.StartStageSpan(ctx, "Validate")
	validated := make([]block.ValidatedBlock, len(candidates))
	for i, c := range candidates {
		validated[i] = p.validator.Validate(valCtx, c, filename)
	}
	valSpan.End()
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	_, filterSpan := tracing.StartStageSpan(ctx, "Filter")
	accepted := filter.BatchFilter(validated)
	filterSpan.End()

	out := make([]block.AcceptedBlock, 0, len(accepted))
	for _, a := range accepted {
		if p.metrics != nil {
			p.metrics.ObserveFilterResult(a)
		}
		if a.FilterPassed {
			out = append(out, a)
		}
	}

	tracing.SetDocumentResult(span, len(candidates), len(out))
	if p.metrics != nil {
		p.metrics.ObserveDocument(time.Since(start))
	}
	return out, nil
}
