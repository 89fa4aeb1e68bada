// Package identity определяет порт внешнего провайдера идентификации.
package identity

import "context"

// Provider - внешний провайдер идентификации. Реализация подставляется вызывающей стороной;
// любая возвращенная ошибка считается неудачей отправки формы.
type Provider interface {
	SignIn(ctx context.Context, email, password string) error

	SignUp(ctx context.Context, email, password, displayName string) error
}

// SignInFunc адаптирует функцию к операции входа.
type SignInFunc func(ctx context.Context, email, password string) error

// SignUpFunc адаптирует функцию к операции регистрации.
type SignUpFunc func(ctx context.Context, email, password, displayName string) error

// Funcs собирает Provider из двух функций.
type Funcs struct {
	SignInFn SignInFunc
	SignUpFn SignUpFunc
}

// SignIn вызывает SignInFn.
func (f Funcs) SignIn(ctx context.Context, email, password string) error {
	return f.SignInFn(ctx, email, password)
}

// SignUp вызывает SignUpFn.
func (f Funcs) SignUp(ctx context.Context, email, password, displayName string) error {
	return f.SignUpFn(ctx, email, password, displayName)
}
