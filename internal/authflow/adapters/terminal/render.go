// Package terminal отображает формы аутентификации в терминале и выполняет
// построчные команды пользователя.
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"devotrack/internal/authflow/app/coordinator"
	"devotrack/internal/authflow/domain/entities"
	"devotrack/internal/authflow/domain/validation"
)

// Надписи форм.
const (
	TitleLogin        = "Sign in"
	TitleSignup       = "Create account"
	ButtonLogin       = "Sign In"
	ButtonSignup      = "Create Account"
	BusyLogin         = "Signing in..."
	BusySignup        = "Creating account..."
	SwitchToSignup    = "Don't have an account? Sign up (toggle)"
	SwitchToLogin     = "Already have an account? Sign in (toggle)"
	strengthLabel     = "Password strength"
	meterWidth        = 12
	maskRune          = '*'
	passwordShownHint = "(passwords visible)"
)

var fieldLabels = map[entities.Field]string{
	entities.FieldEmail:           "Email",
	entities.FieldPassword:        "Password",
	entities.FieldDisplayName:     "Display name",
	entities.FieldConfirmPassword: "Confirm password",
}

// State - состояние отображения, которое не входит в снимок формы.
type State struct {
	Loading         bool
	PasswordVisible bool
}

// Renderer выводит снимок формы в io.Writer.
type Renderer struct {
	out io.Writer

	title   *color.Color
	label   *color.Color
	errText *color.Color
	hint    *color.Color
	tones   map[validation.Tone]*color.Color
}

// NewRenderer создает Renderer. При colored == false цвета не выводятся.
func NewRenderer(out io.Writer, colored bool) *Renderer {
	r := &Renderer{
		out:     out,
		title:   color.New(color.Bold, color.FgCyan),
		label:   color.New(color.Bold),
		errText: color.New(color.FgRed),
		hint:    color.New(color.Faint),
		tones: map[validation.Tone]*color.Color{
			validation.ToneNone:    color.New(color.Faint),
			validation.ToneDanger:  color.New(color.FgRed),
			validation.ToneWarning: color.New(color.FgYellow),
			validation.ToneSuccess: color.New(color.FgGreen),
		},
	}
	for _, c := range r.all() {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

func (r *Renderer) all() []*color.Color {
	out := []*color.Color{r.title, r.label, r.errText, r.hint}
	for _, c := range r.tones {
		out = append(out, c)
	}
	return out
}

// Render выводит форму целиком.
func (r *Renderer) Render(view coordinator.View, state State) {
	title, button, busy, switchHint := TitleLogin, ButtonLogin, BusyLogin, SwitchToSignup
	if view.Kind() == coordinator.KindSignup {
		title, button, busy, switchHint = TitleSignup, ButtonSignup, BusySignup, SwitchToLogin
	}

	fmt.Fprintln(r.out)
	r.title.Fprintln(r.out, title)

	errs := view.Errors()
	if general := errs.General(); general != "" {
		r.errText.Fprintln(r.out, "! "+general)
	}

	for _, field := range view.Names() {
		value, err := view.Value(field)
		if err != nil {
			continue
		}
		if entities.IsSecret(field) && !state.PasswordVisible {
			value = mask(value)
		}
		r.label.Fprintf(r.out, "  %s", fieldLabels[field])
		fmt.Fprintf(r.out, " [%s]: %s\n", field, value)
		if msg, ok := errs.Get(field); ok {
			r.errText.Fprintf(r.out, "    %s\n", msg)
		}
		if field == entities.FieldPassword {
			if signup, ok := view.(coordinator.SignupView); ok {
				r.renderStrength(signup.Strength())
			}
		}
	}

	if state.PasswordVisible {
		r.hint.Fprintln(r.out, "  "+passwordShownHint)
	}
	if state.Loading {
		r.hint.Fprintln(r.out, "  "+busy)
	} else {
		fmt.Fprintf(r.out, "  [ %s ] (submit)\n", button)
	}
	r.hint.Fprintln(r.out, "  "+switchHint)
}

// renderStrength выводит индикатор надежности пароля. Для пустого пароля ничего не выводится.
func (r *Renderer) renderStrength(strength validation.PasswordStrength) {
	if strength.Label == "" {
		return
	}

	filled := strength.Tier * meterWidth / 100
	bar := strings.Repeat("#", filled) + strings.Repeat("-", meterWidth-filled)
	tone := r.tones[strength.Tone]

	fmt.Fprintf(r.out, "    %s: ", strengthLabel)
	tone.Fprintf(r.out, "[%s] %s", bar, strength.Label)
	fmt.Fprintln(r.out)
}

// Message выводит служебную строку.
func (r *Renderer) Message(format string, args ...any) {
	r.hint.Fprintf(r.out, format+"\n", args...)
}

// Error выводит ошибку команды.
func (r *Renderer) Error(err error) {
	r.errText.Fprintf(r.out, "error: %v\n", err)
}

func mask(value string) string {
	return strings.Repeat(string(maskRune), len([]rune(value)))
}
