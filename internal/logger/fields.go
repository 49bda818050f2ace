package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	FieldProvider  = "ai_provider"
	FieldModel     = "ai_model"
	FieldVariant   = "variant"
	FieldPath      = "path"
	FieldStage     = "stage"
	FieldRequestID = "request_id"
)

// stringFields turns key/value pairs into zap fields, skipping pairs whose
// trimmed value is empty. A trailing odd key is ignored.
func stringFields(pairs ...string) []zap.Field {
	fields := make([]zap.Field, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		if v := strings.TrimSpace(pairs[i+1]); v != "" {
			fields = append(fields, zap.String(pairs[i], v))
		}
	}
	return fields
}

// With attaches fields to logger. A nil logger becomes a no-op one.
func With(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(fields) == 0 {
		return logger
	}
	return logger.With(fields...)
}

// WithCommonFields tags entries of a text-generation backend.
func WithCommonFields(logger *zap.Logger, provider, model string) *zap.Logger {
	return With(logger, stringFields(FieldProvider, provider, FieldModel, model)...)
}

// WithEvaluationFields tags entries of one evaluation.
func WithEvaluationFields(logger *zap.Logger, variant, path string) *zap.Logger {
	return With(logger, stringFields(FieldVariant, variant, FieldPath, path)...)
}

func WithRequestID(logger *zap.Logger, id string) *zap.Logger {
	return With(logger, stringFields(FieldRequestID, id)...)
}
