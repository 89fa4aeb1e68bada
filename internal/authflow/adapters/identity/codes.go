package identity

import (
	"errors"

	port "devotrack/internal/authflow/ports/identity"
)

// Коды ошибок провайдера.
const (
	CodeUserNotFound       = "auth/user-not-found"
	CodeWrongPassword      = "auth/wrong-password"
	CodeInvalidEmail       = "auth/invalid-email"
	CodeEmailAlreadyInUse  = "auth/email-already-in-use"
	CodeWeakPassword       = "auth/weak-password"
	MsgUserNotFound        = "No account found with this email address."
	MsgWrongPassword       = "Incorrect password."
	MsgInvalidEmail        = "Invalid email address."
	MsgEmailAlreadyInUse   = "An account with this email address already exists."
	MsgWeakPassword        = "Password is too weak. Please choose a stronger password."
	errUnknownProviderCode = "unknown provider error code"
)

var (
	loginMessages = map[string]string{
		CodeUserNotFound:  MsgUserNotFound,
		CodeWrongPassword: MsgWrongPassword,
		CodeInvalidEmail:  MsgInvalidEmail,
	}
	signupMessages = map[string]string{
		CodeEmailAlreadyInUse: MsgEmailAlreadyInUse,
		CodeWeakPassword:      MsgWeakPassword,
		CodeInvalidEmail:      MsgInvalidEmail,
	}
)

// MapLoginError переводит код ошибки входа в SubmitError. Для неизвестного кода
// сообщение пустое, и форма покажет общее сообщение о неудаче входа.
func MapLoginError(code string) *port.SubmitError {
	return mapCode(loginMessages, code)
}

// MapSignupError переводит код ошибки регистрации в SubmitError.
func MapSignupError(code string) *port.SubmitError {
	return mapCode(signupMessages, code)
}

func mapCode(messages map[string]string, code string) *port.SubmitError {
	if msg, ok := messages[code]; ok {
		return port.NewSubmitError(code, msg)
	}
	return &port.SubmitError{
		Code:     code,
		Internal: errors.New(errUnknownProviderCode + ": " + code),
	}
}
