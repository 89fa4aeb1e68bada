// Package validation проверяет поля форм входа и регистрации.
// Все функции чистые: одинаковый ввод дает одинаковую карту ошибок.
package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"devotrack/internal/authflow/domain/entities"
)

// Сообщения об ошибках полей.
const (
	MsgEmailRequired = "Email is required"
	MsgEmailInvalid  = "Please enter a valid email address"

	MsgPasswordRequired    = "Password is required"
	MsgPasswordTooShort    = "Password must be at least 6 characters"
	MsgPasswordComposition = "Password must contain at least one uppercase letter, one lowercase letter, and one number"

	MsgDisplayNameRequired = "Display name is required"
	MsgDisplayNameTooShort = "Display name must be at least 2 characters"

	MsgConfirmRequired = "Please confirm your password"
	MsgConfirmMismatch = "Passwords do not match"
)

// Ограничения длины в символах.
const (
	MinPasswordLength    = 6
	MinDisplayNameLength = 2
)

// emailChunk - непустая последовательность без пробельных символов, включая
// юникодные разделители (NBSP, em space, U+3000 и т.п.), которых нет в \s у RE2.
const emailChunk = `[^\s\v\p{Z}\x{85}\x{FEFF}]+`

var (
	emailPattern = regexp.MustCompile(`^` + emailChunk + `@` + emailChunk + `\.` + emailChunk + `$`)
	hasLower     = regexp.MustCompile(`[a-z]`)
	hasUpper     = regexp.MustCompile(`[A-Z]`)
	hasDigit     = regexp.MustCompile(`[0-9]`)
	hasSymbol    = regexp.MustCompile(`[^A-Za-z0-9]`)
)

// Login проверяет форму входа.
func Login(fields entities.LoginFields) entities.FieldErrors {
	errs := entities.FieldErrors{}

	if msg := checkEmail(fields.Email); msg != "" {
		errs[entities.FieldEmail] = msg
	}
	if msg := checkPasswordLength(fields.Password); msg != "" {
		errs[entities.FieldPassword] = msg
	}

	return errs
}

// Signup проверяет форму регистрации.
func Signup(fields entities.SignupFields) entities.FieldErrors {
	errs := entities.FieldErrors{}

	name := strings.TrimSpace(fields.DisplayName)
	switch {
	case name == "":
		errs[entities.FieldDisplayName] = MsgDisplayNameRequired
	case utf8.RuneCountInString(name) < MinDisplayNameLength:
		errs[entities.FieldDisplayName] = MsgDisplayNameTooShort
	}

	if msg := checkEmail(fields.Email); msg != "" {
		errs[entities.FieldEmail] = msg
	}

	if msg := checkPasswordLength(fields.Password); msg != "" {
		errs[entities.FieldPassword] = msg
	} else if !hasLower.MatchString(fields.Password) ||
		!hasUpper.MatchString(fields.Password) ||
		!hasDigit.MatchString(fields.Password) {
		errs[entities.FieldPassword] = MsgPasswordComposition
	}

	switch {
	case fields.ConfirmPassword == "":
		errs[entities.FieldConfirmPassword] = MsgConfirmRequired
	case fields.ConfirmPassword != fields.Password:
		errs[entities.FieldConfirmPassword] = MsgConfirmMismatch
	}

	return errs
}

// IsValidEmail сообщает, похожа ли строка на адрес электронной почты.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func checkEmail(email string) string {
	if email == "" {
		return MsgEmailRequired
	}
	if !IsValidEmail(email) {
		return MsgEmailInvalid
	}
	return ""
}

func checkPasswordLength(password string) string {
	if password == "" {
		return MsgPasswordRequired
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return MsgPasswordTooShort
	}
	return ""
}
