package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options controls how the process logger is built.
type Options struct {
	JSON  bool
	Debug bool
	// Output is a zap sink path. Empty means stderr so commands that print
	// results on stdout stay pipeable.
	Output string
	// Fields are attached to every entry.
	Fields map[string]any
}

// New builds the process logger from the --json and --debug flags.
func New(json bool, debug bool) (*zap.Logger, error) {
	return NewWithOptions(Options{JSON: json, Debug: debug})
}

func NewWithOptions(opts Options) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if opts.Debug {
		level = zapcore.DebugLevel
	}

	encoding := "console"
	if opts.JSON {
		encoding = "json"
	}

	output := opts.Output
	if output == "" {
		output = "stderr"
	}

	cfg := zap.Config{
		Encoding:         encoding,
		Level:            zap.NewAtomicLevelAt(level),
		OutputPaths:      []string{output},
		ErrorOutputPaths: []string{"stderr"},
		InitialFields:    opts.Fields,
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey: "step",

			LevelKey:    "level",
			EncodeLevel: zapcore.LowercaseLevelEncoder,

			TimeKey:    "time",
			EncodeTime: zapcore.RFC3339TimeEncoder,

			NameKey: "component",

			CallerKey:    "caller",
			EncodeCaller: zapcore.ShortCallerEncoder,

			EncodeDuration: zapcore.StringDurationEncoder,
		},
	}

	return cfg.Build()
}
