package validation

import "unicode/utf8"

// Tone - визуальная окраска индикатора надежности.
type Tone string

// Окраски индикатора.
const (
	ToneNone    Tone = ""
	ToneDanger  Tone = "danger"
	ToneWarning Tone = "warning"
	ToneSuccess Tone = "success"
)

// Метки надежности пароля.
const (
	LabelWeak   = "Weak"
	LabelMedium = "Medium"
	LabelStrong = "Strong"
)

// MaxStrengthScore - максимальная оценка пароля.
const MaxStrengthScore = 6

// PasswordStrength - рекомендательная оценка пароля. Не блокирует отправку.
type PasswordStrength struct {
	Score int
	Label string
	// Tier - заполненность индикатора в процентах: 0, 33, 66 или 100.
	Tier int
	Tone Tone
}

// Strength вычисляет надежность пароля.
func Strength(password string) PasswordStrength {
	if password == "" {
		return PasswordStrength{}
	}

	score := 0
	length := utf8.RuneCountInString(password)
	for _, ok := range []bool{
		length >= 6,
		length >= 10,
		hasLower.MatchString(password),
		hasUpper.MatchString(password),
		hasDigit.MatchString(password),
		hasSymbol.MatchString(password),
	} {
		if ok {
			score++
		}
	}

	switch {
	case score <= 2:
		return PasswordStrength{Score: score, Label: LabelWeak, Tier: 33, Tone: ToneDanger}
	case score <= 4:
		return PasswordStrength{Score: score, Label: LabelMedium, Tier: 66, Tone: ToneWarning}
	default:
		return PasswordStrength{Score: score, Label: LabelStrong, Tier: 100, Tone: ToneSuccess}
	}
}
