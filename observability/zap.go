package observability

import "go.uber.org/zap"

// ZapLogger adapts a *zap.Logger to the Logger interface.
type ZapLogger struct {
	logger *zap.Logger
}

// NewZapLogger wraps the given zap logger. A nil logger yields zap.NewNop().
func NewZapLogger(logger *zap.Logger) *ZapLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapLogger{logger: logger}
}

func (l *ZapLogger) Debug(msg string, fields ...Field) { l.logger.Debug(msg, zapFields(fields)...) }
func (l *ZapLogger) Info(msg string, fields ...Field)  { l.logger.Info(msg, zapFields(fields)...) }
func (l *ZapLogger) Warn(msg string, fields ...Field)  { l.logger.Warn(msg, zapFields(fields)...) }
func (l *ZapLogger) Error(msg string, fields ...Field) { l.logger.Error(msg, zapFields(fields)...) }

//nolint:ireturn // Method must return interface to satisfy Logger interface
func (l *ZapLogger) With(fields ...Field) Logger {
	return &ZapLogger{logger: l.logger.With(zapFields(fields)...)}
}

// Zap returns the underlying zap logger.
func (l *ZapLogger) Zap() *zap.Logger {
	return l.logger
}

func zapFields(fields []Field) []zap.Field {
	out := make([]zap.Field, 0, len(fields))
	for _, f := range fields {
		if err, ok := f.Value.(error); ok {
			out = append(out, zap.NamedError(f.Key, err))
			continue
		}
		out = append(out, zap.Any(f.Key, f.Value))
	}
	return out
}
