// Package identity содержит демонстрационный провайдер идентификации и
// перевод кодов ошибок провайдера в сообщения для пользователя.
package identity

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	port "devotrack/internal/authflow/ports/identity"
	"devotrack/pkg/logger"
)

const (
	msgSignInAttempt = "sign in attempt"
	msgSignUpAttempt = "sign up attempt"
	msgProviderError = "identity provider rejected request"
	msgProviderOK    = "identity provider accepted request"
	attrEmail        = "email"
	attrDisplayName  = "display_name"
	attrCode         = "code"
	attrLatency      = "latency"
	errCtxSignIn     = "sign in"
	errCtxSignUp     = "sign up"
)

// DemoConfig задает поведение демонстрационного провайдера.
type DemoConfig struct {
	// FailCode - код ошибки провайдера, которым завершается каждый запрос.
	// Пустой код означает успех.
	FailCode string
	// Latency - задержка ответа.
	Latency time.Duration
}

// Demo имитирует внешний провайдер: пишет попытку в лог, ждет Latency и
// отвечает успехом или ошибкой с кодом FailCode.
type Demo struct {
	cfg DemoConfig
}

var _ port.Provider = (*Demo)(nil)

// NewDemo создает демонстрационный провайдер.
func NewDemo(cfg DemoConfig) *Demo {
	return &Demo{cfg: cfg}
}

// SignIn выполняет вход.
func (d *Demo) SignIn(ctx context.Context, email, _ string) error {
	log := logger.Log(ctx).With(zap.String(attrEmail, email))
	log.Info(ctx, msgSignInAttempt, zap.Duration(attrLatency, d.cfg.Latency))

	if err := d.wait(ctx); err != nil {
		return fmt.Errorf("%s: %w", errCtxSignIn, err)
	}
	if d.cfg.FailCode != "" {
		log.Warn(ctx, msgProviderError, zap.String(attrCode, d.cfg.FailCode))
		return MapLoginError(d.cfg.FailCode)
	}

	log.Info(ctx, msgProviderOK)
	return nil
}

// SignUp выполняет регистрацию.
func (d *Demo) SignUp(ctx context.Context, email, _, displayName string) error {
	log := logger.Log(ctx).With(zap.String(attrEmail, email))
	log.Info(ctx, msgSignUpAttempt,
		zap.String(attrDisplayName, displayName),
		zap.Duration(attrLatency, d.cfg.Latency))

	if err := d.wait(ctx); err != nil {
		return fmt.Errorf("%s: %w", errCtxSignUp, err)
	}
	if d.cfg.FailCode != "" {
		log.Warn(ctx, msgProviderError, zap.String(attrCode, d.cfg.FailCode))
		return MapSignupError(d.cfg.FailCode)
	}

	log.Info(ctx, msgProviderOK)
	return nil
}

func (d *Demo) wait(ctx context.Context) error {
	if d.cfg.Latency <= 0 {
		return nil
	}

	timer := time.NewTimer(d.cfg.Latency)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return &port.SubmitError{Internal: ctx.Err()}
	}
}
