// Package shutdown предоставляет функциональность для корректного завершения приложения
// путем ожидания сигналов SIGINT и SIGTERM или завершения контекста.
package shutdown

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"devotrack/pkg/logger"
)

// Hook - функция, выполняемая при завершении работы.
type Hook func(context.Context) error

const (
	msgShutdownSignal  = "shutdown signal received"
	msgShutdownContext = "context done, shutting down"
	msgHookFailed      = "shutdown hook failed"
	msgHooksTimedOut   = "shutdown hooks timed out"
)

// Wait блокирует выполнение до получения сигнала SIGINT или SIGTERM либо до
// завершения ctx, затем выполняет все хуки параллельно в рамках timeout.
// Возвращает объединенные ошибки хуков.
func Wait(ctx context.Context, timeout time.Duration, hooks ...Hook) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	log := logger.Log(ctx)

	select {
	case sig := <-sigCh:
		log.Info(ctx, msgShutdownSignal, zap.String("signal", sig.String()))
	case <-ctx.Done():
		log.Debug(ctx, msgShutdownContext)
	}

	hookCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	var (
		wgp  sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, hook := range hooks {
		wgp.Add(1)
		go func(fn Hook) {
			defer wgp.Done()
			if err := fn(hookCtx); err != nil {
				log.Warn(hookCtx, msgHookFailed, zap.Error(err))
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}(hook)
	}

	done := make(chan struct{})
	go func() {
		wgp.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-hookCtx.Done():
		log.Warn(hookCtx, msgHooksTimedOut, zap.Duration("timeout", timeout))
		return hookCtx.Err()
	}

	mu.Lock()
	defer mu.Unlock()
	return errors.Join(errs...)
}
