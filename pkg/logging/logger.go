// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package logging provides structured logging for blockextract's CLI.
//
// It wraps log/slog with a small Level enum and a Config that picks
// text vs JSON output, since the CLI switches format based on whether
// stderr is a terminal (cmd/extract/root.go).
//
//	logger := logging.New(logging.Config{
//	    Level:   logging.LevelInfo,
//	    Service: "extract",
//	    JSON:    true,
//	})
//	logger.Info("file extraction complete", "path", path)
package logging

import (
	"io"
	"log/slog"
	"os"
)

// Level represents log severity, ordered Debug < Info < Warn < Error.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the human-readable name of the level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// toSlogLevel converts Level to slog.Level.
func (l Level) toSlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Config configures the Logger. A zero-value Config logs Debug+ as text
// to stderr, since LevelDebug is the zero Level.
type Config struct {
	// Level sets the minimum log level. Messages below it are discarded.
	Level Level

	// Service is attached to every log entry as the "service" attribute.
	Service string

	// JSON selects JSON output instead of human-readable text.
	JSON bool

	// Quiet discards all output. Useful in tests that only care about
	// the pipeline's return values.
	Quiet bool
}

// Logger wraps slog.Logger with blockextract's Level/Config surface.
type Logger struct {
	slog *slog.Logger
}

// New creates a Logger from config.
func New(config Config) *Logger {
	opts := &slog.HandlerOptions{Level: config.Level.toSlogLevel()}

	var w io.Writer = os.Stderr
	if config.Quiet {
		w = io.Discard
	}

	var handler slog.Handler
	if config.JSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	if config.Service != "" {
		handler = handler.WithAttrs([]slog.Attr{slog.String("service", config.Service)})
	}

	return &Logger{slog: slog.New(handler)}
}

// Debug logs a message at Debug level.
func (l *Logger) Debug(msg string, args ...any) { l.slog.Debug(msg, args...) }

// Info logs a message at Info level.
func (l *Logger) Info(msg string, args ...any) { l.slog.Info(msg, args...) }

// Warn logs a message at Warn level.
func (l *Logger) Warn(msg string, args ...any) { l.slog.Warn(msg, args...) }

// Error logs a message at Error level.
func (l *Logger) Error(msg string, args ...any) { l.slog.Error(msg, args...) }

// Slog returns the underlying slog.Logger, for packages that want
// direct access to slog features (services/extract.WithLogger takes
// one of these rather than a *Logger).
func (l *Logger) Slog() *slog.Logger {
	return l.slog
}
