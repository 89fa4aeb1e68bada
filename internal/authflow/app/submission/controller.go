// Package submission реализует отправку формы: проверка, вызов внешней операции,
// преобразование неудачи в общее сообщение и управление признаком загрузки.
package submission

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"go.uber.org/zap"

	"devotrack/internal/authflow/domain/entities"
	"devotrack/internal/authflow/ports/identity"
	"devotrack/pkg/logger"
)

const (
	msgValidationFailed   = "form validation failed"
	msgSubmitting         = "submitting form"
	msgSubmitSucceeded    = "form submitted"
	msgSubmitFailed       = "form submission failed"
	msgOperationPanicked  = "submit operation panicked"
	msgAlreadySubmitting  = "submission already in progress"
	attrForm              = "form"
	attrInvalidFields     = "invalid_fields"
	attrGeneral           = "general_error"
	errCtxSubmittingForm  = "submitting form"
	errCtxOperationPanics = "operation panic"
)

// Ошибки контроллера.
var (
	// ErrSubmissionInProgress возвращается при повторной отправке до завершения предыдущей.
	ErrSubmissionInProgress = errors.New("submission already in progress")
	// ErrOperationPanicked оборачивает панику внешней операции.
	ErrOperationPanicked = errors.New("submit operation panicked")
)

// Validator проверяет поля формы.
type Validator[F any] func(F) entities.FieldErrors

// Operation - внешняя операция отправки (вызов провайдера идентификации).
type Operation[F any] func(ctx context.Context, fields F) error

// Outcome - результат отправки.
type Outcome struct {
	// Errors - ошибки полей либо единственная общая ошибка. Пустая карта после
	// вызова операции означает успех.
	Errors entities.FieldErrors
	// Submitted сообщает, что внешняя операция вызывалась.
	Submitted bool
}

// Succeeded сообщает об успешной отправке.
func (o Outcome) Succeeded() bool {
	return o.Submitted && o.Errors.Valid()
}

// Option настраивает Controller.
type Option func(*options)

type options struct {
	onLoading func(loading bool)
}

// WithLoadingObserver задает функцию, вызываемую при каждом изменении признака загрузки.
func WithLoadingObserver(fn func(loading bool)) Option {
	return func(o *options) {
		o.onLoading = fn
	}
}

// Controller отправляет формы типа F.
type Controller[F any] struct {
	name     string
	validate Validator[F]
	fallback string
	flag     *Flag
	opts     options
}

// New создает контроллер. flag принадлежит вызывающей стороне; fallback - сообщение
// для неудач без собственного текста.
func New[F any](name string, validate Validator[F], fallback string, flag *Flag, opts ...Option) *Controller[F] {
	c := &Controller[F]{
		name:     name,
		validate: validate,
		fallback: fallback,
		flag:     flag,
	}
	for _, opt := range opts {
		opt(&c.opts)
	}
	return c
}

// Submit проверяет поля и, если они валидны, вызывает op. Признак загрузки
// устанавливается только перед вызовом op и снимается на любом пути выхода.
// Ошибка возвращается только при повторной отправке во время загрузки.
func (c *Controller[F]) Submit(ctx context.Context, fields F, op Operation[F]) (Outcome, error) {
	return c.SubmitAndApply(ctx, fields, op, nil)
}

// SubmitAndApply работает как Submit, но передает результат в apply до снятия
// признака загрузки. К моменту, когда наблюдатель получает loading=false,
// результат уже применен. При ErrSubmissionInProgress apply не вызывается.
func (c *Controller[F]) SubmitAndApply(ctx context.Context, fields F, op Operation[F], apply func(Outcome)) (Outcome, error) {
	if _, ok := logger.GetRequestID(ctx); !ok {
		ctx = logger.NewRequestIDContext(ctx, "")
	}
	log := logger.Log(ctx).With(zap.String(attrForm, c.name))

	if c.flag.Loading() {
		log.Warn(ctx, msgAlreadySubmitting)
		return Outcome{}, fmt.Errorf("%s %s: %w", errCtxSubmittingForm, c.name, ErrSubmissionInProgress)
	}

	if errs := c.validate(fields); !errs.Valid() {
		log.Debug(ctx, msgValidationFailed, zap.Int(attrInvalidFields, len(errs)))
		return c.finish(Outcome{Errors: errs}, apply), nil
	}

	if !c.flag.acquire() {
		log.Warn(ctx, msgAlreadySubmitting)
		return Outcome{}, fmt.Errorf("%s %s: %w", errCtxSubmittingForm, c.name, ErrSubmissionInProgress)
	}
	defer func() {
		c.flag.release()
		c.notify(false)
	}()
	c.notify(true)

	log.Info(ctx, msgSubmitting)

	if err := c.invoke(ctx, log, fields, op); err != nil {
		msg := identity.DisplayMessage(err, c.fallback)
		log.Warn(ctx, msgSubmitFailed, zap.Error(err), zap.String(attrGeneral, msg))
		return c.finish(Outcome{Errors: entities.GeneralError(msg), Submitted: true}, apply), nil
	}

	log.Info(ctx, msgSubmitSucceeded)
	return c.finish(Outcome{Errors: entities.FieldErrors{}, Submitted: true}, apply), nil
}

func (c *Controller[F]) finish(outcome Outcome, apply func(Outcome)) Outcome {
	if apply != nil {
		apply(outcome)
	}
	return outcome
}

// invoke вызывает op и превращает панику в ошибку без отображаемого текста.
func (c *Controller[F]) invoke(ctx context.Context, log *logger.Logger, fields F, op Operation[F]) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error(ctx, msgOperationPanicked,
				zap.String("panic", fmt.Sprintf("%v", r)),
				zap.String("stack", string(debug.Stack())),
			)
			err = &identity.SubmitError{
				Internal: fmt.Errorf("%s: %w: %v", errCtxOperationPanics, ErrOperationPanicked, r),
			}
		}
	}()

	return op(ctx, fields)
}

func (c *Controller[F]) notify(loading bool) {
	if c.opts.onLoading != nil {
		c.opts.onLoading(loading)
	}
}
