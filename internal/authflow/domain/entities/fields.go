// Package entities содержит поля форм входа и регистрации и карту ошибок полей.
package entities

import (
	"errors"
	"fmt"
)

// Field - имя поля формы.
type Field string

// Имена полей форм.
const (
	FieldEmail           Field = "email"
	FieldPassword        Field = "password"
	FieldDisplayName     Field = "displayName"
	FieldConfirmPassword Field = "confirmPassword"

	// FieldGeneral - слот для ошибки, не относящейся к одному полю.
	FieldGeneral Field = "general"
)

// ErrUnknownField возвращается при обращении к полю, которого нет в форме.
var ErrUnknownField = errors.New("unknown form field")

// LoginFields - значения полей формы входа.
type LoginFields struct {
	Email    string
	Password string
}

// Names возвращает имена полей формы входа в порядке отображения.
func (LoginFields) Names() []Field {
	return []Field{FieldEmail, FieldPassword}
}

// Value возвращает значение поля.
func (f LoginFields) Value(field Field) (string, error) {
	switch field {
	case FieldEmail:
		return f.Email, nil
	case FieldPassword:
		return f.Password, nil
	}
	return "", fmt.Errorf("login %q: %w", field, ErrUnknownField)
}

// Set изменяет значение поля.
func (f *LoginFields) Set(field Field, value string) error {
	switch field {
	case FieldEmail:
		f.Email = value
	case FieldPassword:
		f.Password = value
	default:
		return fmt.Errorf("login %q: %w", field, ErrUnknownField)
	}
	return nil
}

// SignupFields - значения полей формы регистрации.
type SignupFields struct {
	DisplayName     string
	Email           string
	Password        string
	ConfirmPassword string
}

// Names возвращает имена полей формы регистрации в порядке отображения.
func (SignupFields) Names() []Field {
	return []Field{FieldDisplayName, FieldEmail, FieldPassword, FieldConfirmPassword}
}

// Value возвращает значение поля.
func (f SignupFields) Value(field Field) (string, error) {
	switch field {
	case FieldDisplayName:
		return f.DisplayName, nil
	case FieldEmail:
		return f.Email, nil
	case FieldPassword:
		return f.Password, nil
	case FieldConfirmPassword:
		return f.ConfirmPassword, nil
	}
	return "", fmt.Errorf("signup %q: %w", field, ErrUnknownField)
}

// Set изменяет значение поля.
func (f *SignupFields) Set(field Field, value string) error {
	switch field {
	case FieldDisplayName:
		f.DisplayName = value
	case FieldEmail:
		f.Email = value
	case FieldPassword:
		f.Password = value
	case FieldConfirmPassword:
		f.ConfirmPassword = value
	default:
		return fmt.Errorf("signup %q: %w", field, ErrUnknownField)
	}
	return nil
}

// IsSecret сообщает, нужно ли маскировать значение поля при отображении.
func IsSecret(field Field) bool {
	return field == FieldPassword || field == FieldConfirmPassword
}
