package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/philipparndt/meshedge/internal/config"
)

// newLogger creates a logger with "HH:MM:SS.ms" timestamps that writes to w
// and drops messages below level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs how long an operation took
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg at debug level with the elapsed time attached
func (p *progress) done(msg string, keyvals ...any) {
	p.logger.Debug(msg, append(keyvals, "took", time.Since(p.start).Round(time.Millisecond))...)
}

type ctxKey int

const (
	loggerKey ctxKey = iota
	configKey
)

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached to ctx, or log.Default()
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

func withConfig(ctx context.Context, c *config.Config) context.Context {
	return context.WithValue(ctx, configKey, c)
}

// configFromContext returns the loaded config, or the defaults
func configFromContext(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(configKey).(*config.Config); ok {
		return c
	}
	return config.Default()
}
