// Package coordinator переключает формы входа и регистрации, хранит признак
// загрузки и направляет отправку активной формы в контроллер отправки.
package coordinator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"devotrack/internal/authflow/app/submission"
	"devotrack/internal/authflow/domain/entities"
	"devotrack/internal/authflow/domain/validation"
	"devotrack/internal/authflow/ports/identity"
	"devotrack/pkg/logger"
)

const (
	msgViewSwitched   = "auth view switched"
	msgFormReset      = "form reset after successful submission"
	msgViewChanged    = "view changed during submission, outcome dropped"
	msgFieldRejected  = "field update rejected"
	attrView          = "view"
	attrField         = "field"
	errCtxSettingFld  = "setting field"
	errCtxSwitchView  = "switching view"
	errCtxSubmitting  = "submitting"
	errCtxUnknownKind = "unknown view kind"
)

// ErrFormLocked возвращается при попытке изменить форму или переключить вид во время отправки.
var ErrFormLocked = errors.New("form is locked while submitting")

// AuthenticatedHandler вызывается после успешной отправки. Здесь хост выводит
// пользователя из неаутентифицированного состояния.
type AuthenticatedHandler func(ctx context.Context, kind Kind)

// Option настраивает Coordinator.
type Option func(*Coordinator)

// WithAuthenticatedHandler задает обработчик успешной аутентификации.
func WithAuthenticatedHandler(fn AuthenticatedHandler) Option {
	return func(c *Coordinator) {
		c.onAuthenticated = fn
	}
}

// WithLoadingObserver задает функцию, вызываемую при изменении признака загрузки.
func WithLoadingObserver(fn func(loading bool)) Option {
	return func(c *Coordinator) {
		c.onLoading = fn
	}
}

// Coordinator - конечный автомат из двух состояний: форма входа и форма регистрации.
// Начальное состояние - вход. Признак загрузки принадлежит координатору.
type Coordinator struct {
	mu           sync.Mutex
	active       form
	showPassword bool
	// submitting выставляется под mu вместе со снимком полей и снимается под mu
	// вместе с применением результата.
	submitting bool

	flag   submission.Flag
	login  *submission.Controller[entities.LoginFields]
	signup *submission.Controller[entities.SignupFields]

	provider        identity.Provider
	onAuthenticated AuthenticatedHandler
	onLoading       func(loading bool)
}

// New создает координатор с формой входа.
func New(provider identity.Provider, opts ...Option) *Coordinator {
	c := &Coordinator{
		active:   newForm(KindLogin),
		provider: provider,
	}
	for _, opt := range opts {
		opt(c)
	}

	observer := submission.WithLoadingObserver(c.loadingChanged)
	c.login = submission.New(KindLogin.String(), validation.Login, identity.MsgLoginFailed, &c.flag, observer)
	c.signup = submission.New(KindSignup.String(), validation.Signup, identity.MsgSignupFailed, &c.flag, observer)

	return c
}

// Current возвращает снимок активной формы.
func (c *Coordinator) Current() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active.snapshot()
}

// Loading сообщает, выполняется ли отправка.
func (c *Coordinator) Loading() bool {
	return c.flag.Loading()
}

// PasswordVisible сообщает, показываются ли пароли открытым текстом.
func (c *Coordinator) PasswordVisible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.showPassword
}

// TogglePasswordVisibility переключает маскирование паролей активной формы.
func (c *Coordinator) TogglePasswordVisibility() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy() {
		return ErrFormLocked
	}
	c.showPassword = !c.showPassword
	return nil
}

// Toggle переключает вид между входом и регистрацией. Значения другой формы
// не сохраняются.
func (c *Coordinator) Toggle(ctx context.Context) error {
	c.mu.Lock()
	next := KindSignup
	if c.active.kind() == KindSignup {
		next = KindLogin
	}
	c.mu.Unlock()

	return c.Show(ctx, next)
}

// Show делает активной форму заданного вида с пустыми полями. Повторный показ
// уже активного вида ничего не меняет.
func (c *Coordinator) Show(ctx context.Context, kind Kind) error {
	if kind != KindLogin && kind != KindSignup {
		return fmt.Errorf("%s: %s %d", errCtxSwitchView, errCtxUnknownKind, kind)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.busy() {
		return fmt.Errorf("%s: %w", errCtxSwitchView, ErrFormLocked)
	}
	if c.active.kind() == kind {
		return nil
	}
	c.active = newForm(kind)
	c.showPassword = false

	logger.Log(ctx).Debug(ctx, msgViewSwitched, zap.Stringer(attrView, kind))
	return nil
}

// SetField изменяет поле активной формы и снимает ошибку этого поля.
// Ошибки остальных полей остаются.
func (c *Coordinator) SetField(ctx context.Context, field entities.Field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.busy() {
		return fmt.Errorf("%s %q: %w", errCtxSettingFld, field, ErrFormLocked)
	}
	if err := c.active.set(field, value); err != nil {
		logger.Log(ctx).Debug(ctx, msgFieldRejected,
			zap.Stringer(attrView, c.active.kind()),
			zap.String(attrField, string(field)),
			zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxSettingFld, err)
	}
	c.active.setErrors(c.active.errors().Without(field))
	return nil
}

// Submit отправляет активную форму. Ошибки проверки и неудача провайдера
// попадают в ошибки формы и в Outcome; error возвращается только при повторной отправке.
// Форма заблокирована с момента снимка полей до применения результата.
func (c *Coordinator) Submit(ctx context.Context) (submission.Outcome, error) {
	c.mu.Lock()
	if c.busy() {
		kind := c.active.kind()
		c.mu.Unlock()
		return submission.Outcome{}, fmt.Errorf("%s %s: %w", errCtxSubmitting, kind, submission.ErrSubmissionInProgress)
	}
	c.submitting = true
	target := c.active
	view := target.snapshot()
	c.mu.Unlock()

	var applied bool
	apply := func(outcome submission.Outcome) {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.submitting = false

		if c.active != target {
			logger.Log(ctx).Debug(ctx, msgViewChanged, zap.Stringer(attrView, view.Kind()))
			return
		}
		applied = true
		if outcome.Succeeded() {
			c.active = newForm(view.Kind())
			c.showPassword = false
			logger.Log(ctx).Debug(ctx, msgFormReset, zap.Stringer(attrView, view.Kind()))
			return
		}
		target.setErrors(outcome.Errors)
	}

	var (
		outcome submission.Outcome
		err     error
	)
	switch v := view.(type) {
	case LoginView:
		outcome, err = c.login.SubmitAndApply(ctx, v.Fields, c.signIn, apply)
	case SignupView:
		outcome, err = c.signup.SubmitAndApply(ctx, v.Fields, c.signUp, apply)
	}
	if err != nil {
		c.mu.Lock()
		c.submitting = false
		c.mu.Unlock()
		return outcome, fmt.Errorf("%s %s: %w", errCtxSubmitting, view.Kind(), err)
	}

	if applied && outcome.Succeeded() && c.onAuthenticated != nil {
		c.onAuthenticated(ctx, view.Kind())
	}
	return outcome, nil
}

func (c *Coordinator) signIn(ctx context.Context, fields entities.LoginFields) error {
	return c.provider.SignIn(ctx, fields.Email, fields.Password)
}

func (c *Coordinator) signUp(ctx context.Context, fields entities.SignupFields) error {
	return c.provider.SignUp(ctx, fields.Email, fields.Password, strings.TrimSpace(fields.DisplayName))
}

// loadingChanged снимает ошибки формы перед вызовом провайдера и уведомляет наблюдателя.
func (c *Coordinator) loadingChanged(loading bool) {
	if loading {
		c.mu.Lock()
		c.active.setErrors(entities.FieldErrors{})
		c.mu.Unlock()
	}
	if c.onLoading != nil {
		c.onLoading(loading)
	}
}

// busy вызывается под mu.
func (c *Coordinator) busy() bool {
	return c.submitting || c.flag.Loading()
}
