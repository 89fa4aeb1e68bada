package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"go.uber.org/zap"

	"devotrack/internal/authflow/app/coordinator"
	"devotrack/internal/authflow/domain/entities"
	"devotrack/pkg/logger"
)

const (
	msgShellStarted   = "auth shell started"
	msgShellStopped   = "auth shell stopped"
	msgCommandFailed  = "command failed"
	msgSubmitRejected = "submit rejected"
	msgCloseInput     = "closing input failed"
	attrCommand       = "command"
	errCtxReadInput   = "reading input"
)

// ErrUsage возвращается при неверном использовании команды.
var ErrUsage = errors.New("usage")

type commandInfo struct {
	Name        string
	Description string
	Usage       string
}

var commands = []commandInfo{
	{Name: "set", Description: "Set a field value", Usage: "set <field> <value>"},
	{Name: "show", Description: "Show or hide passwords", Usage: "show"},
	{Name: "toggle", Description: "Switch between sign in and sign up", Usage: "toggle"},
	{Name: "submit", Description: "Submit the form", Usage: "submit"},
	{Name: "help", Description: "Show this help", Usage: "help"},
	{Name: "quit", Description: "Exit", Usage: "quit"},
}

// Shell читает команды из in и управляет координатором форм.
type Shell struct {
	coord  *coordinator.Coordinator
	in     io.Reader
	prompt string

	mu       sync.Mutex
	renderer *Renderer
	out      io.Writer

	submits sync.WaitGroup
}

// NewShell создает Shell. Если in реализует io.Closer, Shell закрывает его при
// выходе из Run, иначе читающая горутина осталась бы заблокированной в Read.
func NewShell(coord *coordinator.Coordinator, in io.Reader, out io.Writer, renderer *Renderer, prompt string) *Shell {
	return &Shell{
		coord:    coord,
		in:       in,
		out:      out,
		renderer: renderer,
		prompt:   prompt,
	}
}

// Run выполняет команды до quit, конца ввода или отмены ctx. Перед возвратом
// дожидается завершения начатых отправок.
func (s *Shell) Run(ctx context.Context) error {
	log := logger.Log(ctx)
	log.Info(ctx, msgShellStarted)
	defer func() {
		s.Wait()
		log.Info(ctx, msgShellStopped)
	}()

	readCtx, stopReading := context.WithCancel(ctx)
	defer func() {
		stopReading()
		s.closeInput(ctx)
	}()

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(s.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-readCtx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	s.render()
	for {
		s.printPrompt()
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil {
					return fmt.Errorf("%s: %w", errCtxReadInput, err)
				}
				return nil
			}
			if quit := s.Execute(ctx, line); quit {
				return nil
			}
		}
	}
}

func (s *Shell) closeInput(ctx context.Context) {
	closer, ok := s.in.(io.Closer)
	if !ok {
		return
	}
	if err := closer.Close(); err != nil {
		logger.Log(ctx).Debug(ctx, msgCloseInput, zap.Error(err))
	}
}

// Execute выполняет одну команду. Возвращает true для команды выхода.
func (s *Shell) Execute(ctx context.Context, line string) bool {
	name, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	if name == "" {
		return false
	}

	var err error
	switch name {
	case "quit", "exit":
		return true
	case "help":
		s.help()
		return false
	case "set":
		err = s.set(ctx, rest)
	case "show":
		err = s.coord.TogglePasswordVisibility()
	case "toggle":
		err = s.coord.Toggle(ctx)
	case "submit":
		s.submit(ctx)
		return false
	default:
		err = fmt.Errorf("unknown command %q, type help", name)
	}

	if err != nil {
		logger.Log(ctx).Debug(ctx, msgCommandFailed, zap.String(attrCommand, name), zap.Error(err))
		s.withOutput(func() { s.renderer.Error(err) })
		return false
	}
	s.render()
	return false
}

// set разбирает "<field> <value>". Значение берется до конца строки без обрезки,
// пустое значение очищает поле.
func (s *Shell) set(ctx context.Context, args string) error {
	field, value, _ := strings.Cut(strings.TrimLeft(args, " "), " ")
	if field == "" {
		return fmt.Errorf("%w: %s", ErrUsage, commands[0].Usage)
	}
	return s.coord.SetField(ctx, entities.Field(field), value)
}

// submit отправляет форму в отдельной горутине, чтобы ввод оставался доступен.
func (s *Shell) submit(ctx context.Context) {
	if s.coord.Loading() {
		s.withOutput(func() { s.renderer.Message("submission already in progress") })
		return
	}

	s.submits.Add(1)
	go func() {
		defer s.submits.Done()
		if _, err := s.coord.Submit(ctx); err != nil {
			logger.Log(ctx).Debug(ctx, msgSubmitRejected, zap.Error(err))
			s.withOutput(func() { s.renderer.Error(err) })
			return
		}
		s.render()
	}()
}

// Wait дожидается завершения начатых отправок.
func (s *Shell) Wait() {
	s.submits.Wait()
}

// Message выводит служебную строку, не перемешивая ее с выводом отправок.
func (s *Shell) Message(format string, args ...any) {
	s.withOutput(func() { s.renderer.Message(format, args...) })
}

// LoadingChanged перерисовывает форму при смене признака загрузки.
func (s *Shell) LoadingChanged(loading bool) {
	if loading {
		s.render()
	}
}

func (s *Shell) render() {
	view := s.coord.Current()
	state := State{Loading: s.coord.Loading(), PasswordVisible: s.coord.PasswordVisible()}
	s.withOutput(func() { s.renderer.Render(view, state) })
}

func (s *Shell) help() {
	s.withOutput(func() {
		fmt.Fprintln(s.out, "Commands:")
		for _, cmd := range commands {
			fmt.Fprintf(s.out, "  %-22s %s\n", cmd.Usage, cmd.Description)
		}
		fmt.Fprintln(s.out, "Fields: email, password, displayName, confirmPassword")
	})
}

func (s *Shell) printPrompt() {
	if s.prompt == "" {
		return
	}
	s.withOutput(func() { fmt.Fprint(s.out, s.prompt) })
}

func (s *Shell) withOutput(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}
