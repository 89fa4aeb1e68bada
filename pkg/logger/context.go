package logger

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type loggerKey struct{}

var (
	globalMu sync.RWMutex
	global   *Logger
)

// fallback используется, пока хост не задал глобальный logger. Пишет только
// предупреждения и ошибки.
var fallback = sync.OnceValue(func() *Logger {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	l, err := cfg.Build()
	if err != nil {
		return NewNop()
	}
	return FromZap(l.Named("fallback"))
})

// NewContext кладет logger в контекст. Log предпочитает его глобальному.
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// SetGlobalLogger задает logger для контекстов без собственного. nil
// возвращает резервный.
func SetGlobalLogger(l *Logger) {
	globalMu.Lock()
	global = l
	globalMu.Unlock()
}

// Log возвращает logger из ctx, иначе глобальный, иначе резервный. Никогда не
// возвращает nil.
func Log(ctx context.Context) *Logger {
	if ctx != nil {
		if l, _ := ctx.Value(loggerKey{}).(*Logger); l != nil {
			return l
		}
	}

	globalMu.RLock()
	l := global
	globalMu.RUnlock()
	if l != nil {
		return l
	}
	return fallback()
}
