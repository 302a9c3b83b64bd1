// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger wraps zerolog.Logger for the attendance device agent.
//
// The Logger type embeds zerolog.Logger, so the whole zerolog API is
// available on *Logger. Request-scoped loggers are obtained via FromContext
// or FromRequest.
package logger

import (
	"context"
	"io"
	"net/http"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/MKhiriev/go-attendance-sync/internal/config"
)

type Logger struct {
	zerolog.Logger
}

// NewLogger returns a stdout JSON logger at debug level tagged with role.
// Every entry carries a timestamp and the calling function name in "func".
func NewLogger(role string) *Logger {
	return newLogger(os.Stdout, role, zerolog.DebugLevel)
}

// NewDeviceLogger builds the agent logger. With cfg.File set, entries go to a
// size-rotated file so the log cannot fill the device storage. Without it
// they go to stdout. An unknown cfg.Level falls back to debug and is
// reported in the first entry.
func NewDeviceLogger(role string, cfg config.Log) *Logger {
	var out io.Writer = os.Stdout
	if cfg.File != "" {
		out = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
		}
	}

	level, err := parseLevel(cfg.Level)
	l := newLogger(out, role, level)
	if err != nil {
		l.Warn().Err(err).Str("log_level", cfg.Level).Msg("unknown log level, using debug")
	}

	return l
}

func newLogger(out io.Writer, role string, level zerolog.Level) *Logger {
	zerolog.SetGlobalLevel(level)
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return runtime.FuncForPC(pc).Name()
	}
	zerolog.CallerFieldName = "func"

	return &Logger{zerolog.New(out).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()}
}

func parseLevel(name string) (zerolog.Level, error) {
	if name == "" {
		return zerolog.DebugLevel, nil
	}
	level, err := zerolog.ParseLevel(name)
	if err != nil {
		return zerolog.DebugLevel, err
	}
	return level, nil
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger returns a copy of l that can take extra fields without
// touching the parent.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

// FromRequest returns the logger attached to the request context by
// zerolog's WithContext.
func FromRequest(r *http.Request) *Logger {
	return FromContext(r.Context())
}

// FromContext returns the logger attached to ctx. Without one, zerolog's
// default logger is returned, so the result is never nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}
