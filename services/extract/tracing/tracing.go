// Package tracing wraps the pipeline stages with OpenTelemetry spans,
// using only the stdout exporter — no collector endpoint is in scope for
// this pipeline, so the gRPC/OTLP exporters the teacher carries for its
// API surface are dropped (see DESIGN.md). Grounded on the teacher's
// context-package tracer/span helpers
// (services/code_buddy/context/metrics.go: startAssembleSpan /
// setAssembleSpanResult).
package tracing

import (
	"context"
	"io"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("blockextract.extract")

// NewTracerProvider builds a TracerProvider that writes spans to w as
// newline-delimited JSON, grounded on the teacher's stdouttrace-exporter
// dependency. Callers in cmd/extract install it as the global provider
// during process startup.
func NewTracerProvider(w io.Writer) (*sdktrace.TracerProvider, error) {
	if w == nil {
		w = os.Stderr
	}
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		return nil, err
	}

	res, err := resource.New(context.Background(),
		resource.WithAttributes(semconv.ServiceName("blockextract")),
	)
	if err != nil {
		return nil, err
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	), nil
}

// StartDocumentSpan starts the span enclosing one document's pipeline
// run.
func StartDocumentSpan(ctx context.Context, documentID string, byteLen int) (context.Context, trace.Span) {
	return tracer.Start(ctx, "Pipeline.Extract",
		trace.WithAttributes(
			attribute.String("extract.document_id", documentID),
			attribute.Int("extract.input_bytes", byteLen),
		),
	)
}

// SetDocumentResult annotates a document span with the pipeline's
// outcome.
func SetDocumentResult(span trace.Span, candidateCount, acceptedCount int) {
	span.SetAttributes(
		attribute.Int("extract.candidates_found", candidateCount),
		attribute.Int("extract.blocks_accepted", acceptedCount),
	)
}

// StartStageSpan starts a child span around one pipeline stage
// (segmenter, validator, filter).
func StartStageSpan(ctx context.Context, stage string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "Pipeline."+stage)
}
