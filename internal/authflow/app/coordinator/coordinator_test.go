package coordinator_test

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"devotrack/internal/authflow/app/coordinator"
	"devotrack/internal/authflow/app/submission"
	"devotrack/internal/authflow/domain/entities"
	"devotrack/internal/authflow/domain/validation"
	"devotrack/internal/authflow/ports/identity"
)

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) SignIn(ctx context.Context, email, password string) error {
	args := m.Called(ctx, email, password)
	return args.Error(0)
}

func (m *mockProvider) SignUp(ctx context.Context, email, password, displayName string) error {
	args := m.Called(ctx, email, password, displayName)
	return args.Error(0)
}

func setFields(t *testing.T, c *coordinator.Coordinator, values map[entities.Field]string) {
	t.Helper()
	for field, value := range values {
		require.NoError(t, c.SetField(context.Background(), field, value))
	}
}

// blockingProvider держит вызов провайдера, пока тест не закроет release.
func blockingProvider(started chan<- struct{}, release <-chan struct{}, result error) identity.Provider {
	var once sync.Once
	wait := func() error {
		once.Do(func() { close(started) })
		<-release
		return result
	}
	return identity.Funcs{
		SignInFn: func(context.Context, string, string) error { return wait() },
		SignUpFn: func(context.Context, string, string, string) error { return wait() },
	}
}

func TestInitialState(t *testing.T) {
	c := coordinator.New(&mockProvider{})

	view := c.Current()
	assert.Equal(t, coordinator.KindLogin, view.Kind())
	assert.IsType(t, coordinator.LoginView{}, view)
	assert.Empty(t, view.Errors())
	assert.Equal(t, []entities.Field{entities.FieldEmail, entities.FieldPassword}, view.Names())
	assert.False(t, c.Loading())
	assert.False(t, c.PasswordVisible())
}

func TestToggleDiscardsOtherForm(t *testing.T) {
	ctx := context.Background()
	c := coordinator.New(&mockProvider{})

	setFields(t, c, map[entities.Field]string{entities.FieldEmail: "user@example.com"})
	require.NoError(t, c.Toggle(ctx))

	view := c.Current()
	require.IsType(t, coordinator.SignupView{}, view)
	assert.Equal(t, entities.SignupFields{}, view.(coordinator.SignupView).Fields)

	setFields(t, c, map[entities.Field]string{entities.FieldDisplayName: "Ann"})
	require.NoError(t, c.Toggle(ctx))

	view = c.Current()
	require.IsType(t, coordinator.LoginView{}, view)
	assert.Equal(t, entities.LoginFields{}, view.(coordinator.LoginView).Fields, "login values are not restored")
}

func TestShow(t *testing.T) {
	ctx := context.Background()
	c := coordinator.New(&mockProvider{})

	setFields(t, c, map[entities.Field]string{entities.FieldEmail: "kept@example.com"})
	require.NoError(t, c.Show(ctx, coordinator.KindLogin))
	email, err := c.Current().Value(entities.FieldEmail)
	require.NoError(t, err)
	assert.Equal(t, "kept@example.com", email, "showing the active view keeps its values")

	require.NoError(t, c.Show(ctx, coordinator.KindSignup))
	assert.Equal(t, coordinator.KindSignup, c.Current().Kind())

	assert.Error(t, c.Show(ctx, coordinator.Kind(7)))
}

func TestSetFieldClearsOnlyThatError(t *testing.T) {
	ctx := context.Background()
	c := coordinator.New(&mockProvider{})

	outcome, err := c.Submit(ctx)
	require.NoError(t, err)
	assert.False(t, outcome.Submitted)
	assert.Equal(t, entities.FieldErrors{
		entities.FieldEmail:    validation.MsgEmailRequired,
		entities.FieldPassword: validation.MsgPasswordRequired,
	}, c.Current().Errors())

	require.NoError(t, c.SetField(ctx, entities.FieldEmail, "u"))
	assert.Equal(t, entities.FieldErrors{
		entities.FieldPassword: validation.MsgPasswordRequired,
	}, c.Current().Errors())
}

func TestSetFieldUnknown(t *testing.T) {
	c := coordinator.New(&mockProvider{})

	err := c.SetField(context.Background(), entities.FieldDisplayName, "Ann")
	require.Error(t, err)
	assert.ErrorIs(t, err, entities.ErrUnknownField)
}

func TestSubmitLoginSuccess(t *testing.T) {
	ctx := context.Background()
	provider := &mockProvider{}
	provider.On("SignIn", mock.Anything, "user@example.com", "secret").Return(nil).Once()

	var authenticated []coordinator.Kind
	c := coordinator.New(provider, coordinator.WithAuthenticatedHandler(func(_ context.Context, kind coordinator.Kind) {
		authenticated = append(authenticated, kind)
	}))
	setFields(t, c, map[entities.Field]string{
		entities.FieldEmail:    "user@example.com",
		entities.FieldPassword: "secret",
	})
	require.NoError(t, c.TogglePasswordVisibility())

	outcome, err := c.Submit(ctx)

	require.NoError(t, err)
	assert.True(t, outcome.Succeeded())
	assert.Equal(t, []coordinator.Kind{coordinator.KindLogin}, authenticated)

	view := c.Current()
	assert.Equal(t, coordinator.KindLogin, view.Kind())
	assert.Equal(t, entities.LoginFields{}, view.(coordinator.LoginView).Fields, "form is reset")
	assert.Empty(t, view.Errors())
	assert.False(t, c.PasswordVisible())
	provider.AssertExpectations(t)
}

func TestSubmitSignupTrimsDisplayName(t *testing.T) {
	ctx := context.Background()
	provider := &mockProvider{}
	provider.On("SignUp", mock.Anything, "ann@example.com", "Abcdef1", "Ann").Return(nil).Once()

	c := coordinator.New(provider)
	require.NoError(t, c.Toggle(ctx))
	setFields(t, c, map[entities.Field]string{
		entities.FieldDisplayName:     "  Ann ",
		entities.FieldEmail:           "ann@example.com",
		entities.FieldPassword:        "Abcdef1",
		entities.FieldConfirmPassword: "Abcdef1",
	})

	outcome, err := c.Submit(ctx)

	require.NoError(t, err)
	assert.True(t, outcome.Succeeded())
	provider.AssertExpectations(t)
}

func TestSubmitFailureShowsGeneralError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "provider message", err: errors.New("Incorrect password."), want: "Incorrect password."},
		{name: "empty message", err: &identity.SubmitError{}, want: identity.MsgLoginFailed},
	}

	for _, ttt := range tests {
		t.Run(ttt.name, func(t *testing.T) {
			provider := &mockProvider{}
			provider.On("SignIn", mock.Anything, "user@example.com", "secret").Return(ttt.err).Once()
			c := coordinator.New(provider)
			setFields(t, c, map[entities.Field]string{
				entities.FieldEmail:    "user@example.com",
				entities.FieldPassword: "secret",
			})

			outcome, err := c.Submit(context.Background())

			require.NoError(t, err)
			assert.False(t, outcome.Succeeded())
			assert.Equal(t, entities.GeneralError(ttt.want), c.Current().Errors())

			email, err := c.Current().Value(entities.FieldEmail)
			require.NoError(t, err)
			assert.Equal(t, "user@example.com", email, "values survive a failed submission")
		})
	}
}

func TestFormLockedWhileLoading(t *testing.T) {
	ctx := context.Background()
	started := make(chan struct{})
	release := make(chan struct{})

	var (
		mu     sync.Mutex
		events []bool
	)
	c := coordinator.New(
		blockingProvider(started, release, nil),
		coordinator.WithLoadingObserver(func(loading bool) {
			mu.Lock()
			defer mu.Unlock()
			events = append(events, loading)
		}),
	)
	setFields(t, c, map[entities.Field]string{
		entities.FieldEmail:    "user@example.com",
		entities.FieldPassword: "secret",
	})

	done := make(chan submission.Outcome)
	go func() {
		outcome, err := c.Submit(ctx)
		assert.NoError(t, err)
		done <- outcome
	}()
	<-started

	assert.True(t, c.Loading())
	assert.ErrorIs(t, c.SetField(ctx, entities.FieldEmail, "x"), coordinator.ErrFormLocked)
	assert.ErrorIs(t, c.Toggle(ctx), coordinator.ErrFormLocked)
	assert.ErrorIs(t, c.TogglePasswordVisibility(), coordinator.ErrFormLocked)
	_, err := c.Submit(ctx)
	assert.ErrorIs(t, err, submission.ErrSubmissionInProgress)

	close(release)
	select {
	case outcome := <-done:
		assert.True(t, outcome.Succeeded())
	case <-time.After(time.Second):
		t.Fatal("submission did not finish")
	}

	assert.False(t, c.Loading())
	mu.Lock()
	assert.Equal(t, []bool{true, false}, events)
	mu.Unlock()
}

func TestGeneralErrorClearedWhenSubmissionStarts(t *testing.T) {
	ctx := context.Background()
	started := make(chan struct{})
	release := make(chan struct{})

	fail := true
	provider := identity.Funcs{
		SignInFn: func(context.Context, string, string) error {
			if fail {
				return errors.New("Incorrect password.")
			}
			close(started)
			<-release
			return nil
		},
	}
	c := coordinator.New(provider)
	setFields(t, c, map[entities.Field]string{
		entities.FieldEmail:    "user@example.com",
		entities.FieldPassword: "secret",
	})

	_, err := c.Submit(ctx)
	require.NoError(t, err)
	require.Equal(t, "Incorrect password.", c.Current().Errors().General())

	fail = false
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = c.Submit(ctx)
	}()
	<-started

	assert.Empty(t, c.Current().Errors(), "previous general error is cleared while loading")

	close(release)
	<-done
}

func TestOutcomeAppliedBeforeLoadingCleared(t *testing.T) {
	tests := []struct {
		name        string
		result      error
		seenEmail   string
		seenGeneral string
		wantGeneral string
	}{
		{
			name:        "failure",
			result:      errors.New("Incorrect password."),
			seenEmail:   "user@example.com",
			seenGeneral: "Incorrect password.",
			wantGeneral: "Incorrect password.",
		},
		{
			name:      "success",
			seenEmail: "",
		},
	}

	for _, ttt := range tests {
		t.Run(ttt.name, func(t *testing.T) {
			ctx := context.Background()

			var (
				c      *coordinator.Coordinator
				seen   coordinator.View
				setErr error
			)
			c = coordinator.New(
				identity.Funcs{SignInFn: func(context.Context, string, string) error { return ttt.result }},
				coordinator.WithLoadingObserver(func(loading bool) {
					if loading {
						return
					}
					seen = c.Current()
					setErr = c.SetField(ctx, entities.FieldEmail, "other@example.com")
				}),
			)
			setFields(t, c, map[entities.Field]string{
				entities.FieldEmail:    "user@example.com",
				entities.FieldPassword: "secret",
			})

			_, err := c.Submit(ctx)
			require.NoError(t, err)

			require.NotNil(t, seen)
			email, err := seen.Value(entities.FieldEmail)
			require.NoError(t, err)
			assert.Equal(t, ttt.seenEmail, email, "form state at loading=false")
			assert.Equal(t, ttt.seenGeneral, seen.Errors().General())

			require.NoError(t, setErr)
			email, err = c.Current().Value(entities.FieldEmail)
			require.NoError(t, err)
			assert.Equal(t, "other@example.com", email, "edit made after loading=false survives")
			assert.Equal(t, ttt.wantGeneral, c.Current().Errors().General())
		})
	}
}

func TestEditRacingSubmitIsNeverLost(t *testing.T) {
	ctx := context.Background()

	for i := 0; i < 200; i++ {
		var (
			mu   sync.Mutex
			sent []string
		)
		c := coordinator.New(identity.Funcs{SignInFn: func(_ context.Context, email, _ string) error {
			mu.Lock()
			defer mu.Unlock()
			sent = append(sent, email)
			return nil
		}})
		setFields(t, c, map[entities.Field]string{
			entities.FieldEmail:    "a@x.io",
			entities.FieldPassword: "secret",
		})

		var (
			wg        sync.WaitGroup
			submitErr error
			setErr    error
		)
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, submitErr = c.Submit(ctx)
		}()
		go func() {
			defer wg.Done()
			setErr = c.SetField(ctx, entities.FieldEmail, "b@x.io")
		}()
		wg.Wait()

		require.NoError(t, submitErr)
		if setErr != nil {
			require.ErrorIs(t, setErr, coordinator.ErrFormLocked)
			continue
		}

		email, err := c.Current().Value(entities.FieldEmail)
		require.NoError(t, err)
		mu.Lock()
		delivered := slices.Contains(sent, "b@x.io")
		mu.Unlock()
		require.True(t, delivered || email == "b@x.io", "accepted edit was neither submitted nor kept: sent=%v form=%q", sent, email)
	}
}
