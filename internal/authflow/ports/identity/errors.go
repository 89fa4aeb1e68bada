package identity

import (
	"errors"
	"fmt"
)

// SubmitError - неудача провайдера с сообщением, безопасным для показа пользователю.
// Internal хранит исходную причину для логов и не показывается.
type SubmitError struct {
	Display  string
	Code     string
	Internal error
}

func (e *SubmitError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s [%s]: %v", e.Display, e.Code, e.Internal)
	}
	return fmt.Sprintf("%s: %v", e.Display, e.Internal)
}

func (e *SubmitError) Unwrap() error {
	return e.Internal
}

// NewSubmitError создает SubmitError с причиной, совпадающей с сообщением.
func NewSubmitError(code, display string) *SubmitError {
	return &SubmitError{
		Display:  display,
		Code:     code,
		Internal: errors.New(display),
	}
}

// DisplayMessage возвращает текст ошибки для показа пользователю. Для SubmitError
// это Display, для прочих ошибок - текст ошибки. Если текста нет, возвращается fallback.
func DisplayMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}

	var submitErr *SubmitError
	if errors.As(err, &submitErr) {
		if submitErr.Display != "" {
			return submitErr.Display
		}
		return fallback
	}

	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}

// Общие сообщения о неудаче, когда у ошибки провайдера нет своего текста.
const (
	MsgLoginFailed  = "Login failed. Please try again."
	MsgSignupFailed = "Registration failed. Please try again."
)
