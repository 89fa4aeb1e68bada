package identity_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"devotrack/internal/authflow/ports/identity"
)

type silentError struct{}

func (silentError) Error() string { return "" }

func TestDisplayMessage(t *testing.T) {
	const fallback = "Login failed. Please try again."

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "plain error text", err: errors.New("Incorrect password."), want: "Incorrect password."},
		{name: "submit error display", err: identity.NewSubmitError("auth/wrong-password", "Incorrect password."), want: "Incorrect password."},
		{
			name: "wrapped submit error",
			err:  fmt.Errorf("sign in: %w", identity.NewSubmitError("", "No account found with this email address.")),
			want: "No account found with this email address.",
		},
		{name: "submit error without display", err: &identity.SubmitError{Internal: errors.New("boom")}, want: fallback},
		{name: "error without message", err: silentError{}, want: fallback},
		{name: "nil error", err: nil, want: fallback},
	}

	for _, ttt := range tests {
		t.Run(ttt.name, func(t *testing.T) {
			assert.Equal(t, ttt.want, identity.DisplayMessage(ttt.err, fallback))
		})
	}
}

func TestSubmitErrorUnwrap(t *testing.T) {
	cause := errors.New("network down")
	err := &identity.SubmitError{Display: "Try later", Code: "auth/network", Internal: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "auth/network")
	assert.Contains(t, err.Error(), "network down")
}
