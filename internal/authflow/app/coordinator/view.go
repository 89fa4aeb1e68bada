package coordinator

import (
	"maps"

	"devotrack/internal/authflow/domain/entities"
	"devotrack/internal/authflow/domain/validation"
)

// Kind - вид отображаемой формы.
type Kind int

// Виды форм.
const (
	KindLogin Kind = iota
	KindSignup
)

func (k Kind) String() string {
	switch k {
	case KindLogin:
		return "login"
	case KindSignup:
		return "signup"
	default:
		return "unknown"
	}
}

// View - снимок активной формы: LoginView или SignupView.
type View interface {
	Kind() Kind
	// Errors возвращает ошибки полей формы.
	Errors() entities.FieldErrors
	// Value возвращает значение поля формы.
	Value(field entities.Field) (string, error)
	// Names возвращает поля формы в порядке отображения.
	Names() []entities.Field

	isView()
}

// LoginView - форма входа.
type LoginView struct {
	Fields entities.LoginFields
	errs   entities.FieldErrors
}

func (LoginView) Kind() Kind                               { return KindLogin }
func (v LoginView) Errors() entities.FieldErrors           { return v.errs }
func (v LoginView) Value(f entities.Field) (string, error) { return v.Fields.Value(f) }
func (v LoginView) Names() []entities.Field                { return v.Fields.Names() }
func (LoginView) isView()                                  {}

// SignupView - форма регистрации.
type SignupView struct {
	Fields entities.SignupFields
	errs   entities.FieldErrors
}

func (SignupView) Kind() Kind                               { return KindSignup }
func (v SignupView) Errors() entities.FieldErrors           { return v.errs }
func (v SignupView) Value(f entities.Field) (string, error) { return v.Fields.Value(f) }
func (v SignupView) Names() []entities.Field                { return v.Fields.Names() }
func (SignupView) isView()                                  {}

// Strength пересчитывает надежность текущего пароля.
func (v SignupView) Strength() validation.PasswordStrength {
	return validation.Strength(v.Fields.Password)
}

// form - изменяемое состояние активной формы внутри координатора.
type form interface {
	kind() Kind
	set(field entities.Field, value string) error
	errors() entities.FieldErrors
	setErrors(errs entities.FieldErrors)
	snapshot() View
}

type loginForm struct {
	fields entities.LoginFields
	errs   entities.FieldErrors
}

func (f *loginForm) kind() Kind                               { return KindLogin }
func (f *loginForm) set(field entities.Field, v string) error { return f.fields.Set(field, v) }
func (f *loginForm) errors() entities.FieldErrors             { return f.errs }
func (f *loginForm) setErrors(errs entities.FieldErrors)      { f.errs = errs }

func (f *loginForm) snapshot() View {
	return LoginView{Fields: f.fields, errs: cloneErrors(f.errs)}
}

type signupForm struct {
	fields entities.SignupFields
	errs   entities.FieldErrors
}

func (f *signupForm) kind() Kind                               { return KindSignup }
func (f *signupForm) set(field entities.Field, v string) error { return f.fields.Set(field, v) }
func (f *signupForm) errors() entities.FieldErrors             { return f.errs }
func (f *signupForm) setErrors(errs entities.FieldErrors)      { f.errs = errs }

func (f *signupForm) snapshot() View {
	return SignupView{Fields: f.fields, errs: cloneErrors(f.errs)}
}

func newForm(kind Kind) form {
	if kind == KindSignup {
		return &signupForm{errs: entities.FieldErrors{}}
	}
	return &loginForm{errs: entities.FieldErrors{}}
}

func cloneErrors(errs entities.FieldErrors) entities.FieldErrors {
	if errs == nil {
		return entities.FieldErrors{}
	}
	return maps.Clone(errs)
}
