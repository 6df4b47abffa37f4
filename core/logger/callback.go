package logger

import (
	"strings"

	"go.uber.org/zap"
)

// Level is the severity of an engine event.
type Level string

const (
	LevelDebug   Level = "DEBUG"
	LevelInfo    Level = "INFO"
	LevelWarning Level = "WARNING"
	LevelError   Level = "ERROR"
)

// Func receives engine events as (level, component, message) triples.
// Engines never format or persist logs themselves.
type Func func(level Level, component, message string)

// Nop discards every event.
func Nop(Level, string, string) {}

// Or returns f, or Nop when f is nil.
func Or(f Func) Func {
	if f == nil {
		return Nop
	}
	return f
}

// Zap adapts a zap logger into a Func, carrying the component as a field.
func Zap(l *zap.Logger) Func {
	return func(level Level, component, message string) {
		log := l.With(zap.String("component", component))
		switch Level(strings.ToUpper(string(level))) {
		case LevelDebug:
			log.Debug(message)
		case LevelWarning:
			log.Warn(message)
		case LevelError:
			log.Error(message)
		default:
			log.Info(message)
		}
	}
}

// Tee fans one event out to every non-nil Func.
func Tee(fns ...Func) Func {
	return func(level Level, component, message string) {
		for _, f := range fns {
			if f != nil {
				f(level, component, message)
			}
		}
	}
}
