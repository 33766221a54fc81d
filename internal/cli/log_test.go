package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"

	"github.com/philipparndt/meshedge/internal/config"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("test") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("test") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("test") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			assert.Equal(t, tt.wantLog, buf.Len() > 0)
		})
	}
}

func TestContextDefaults(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, log.Default(), loggerFromContext(ctx))
	assert.Equal(t, config.Default(), configFromContext(ctx))

	var buf bytes.Buffer
	l := newLogger(&buf, log.InfoLevel)
	cfg := config.Default()
	cfg.Compute.Workers = 3

	ctx = withConfig(withLogger(ctx, l), cfg)
	assert.Same(t, l, loggerFromContext(ctx))
	assert.Same(t, cfg, configFromContext(ctx))
}
