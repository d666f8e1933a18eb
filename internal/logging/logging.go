// Package logging configures the process-wide zap logger.
//
// Logs always go to stderr (or a supplied writer): stdout belongs to the
// MCP stdio transport and must carry protocol frames only.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Formats accepted by Init.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// ParseLevel converts a level name such as "debug" or "warn".
func ParseLevel(s string) (zapcore.Level, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(s)))); err != nil {
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", s)
	}
	return lvl, nil
}

// Init builds a logger with the given level and format ("console" or
// "json"), installs it as zap's global logger and returns it.
// If w is nil, os.Stderr is used.
func Init(level zapcore.Level, format string, w ...io.Writer) *zap.Logger {
	var writer io.Writer = os.Stderr
	if len(w) > 0 && w[0] != nil {
		writer = w[0]
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	switch format {
	case FormatJSON:
		enc = zapcore.NewJSONEncoder(encCfg)
	default:
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(writer), level)
	logger := zap.New(core)
	zap.ReplaceGlobals(logger)
	return logger
}

// New returns a named child of the global logger for one component.
func New(component string) *zap.Logger {
	return zap.L().Named(component)
}
