// Package main реализует точку входа терминального клиента аутентификации.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	identityadapter "devotrack/internal/authflow/adapters/identity"
	"devotrack/internal/authflow/adapters/terminal"
	"devotrack/internal/authflow/app/coordinator"
	"devotrack/internal/authflow/config"
	"devotrack/pkg/logger"
	"devotrack/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "AUTHSHELL_LOGGER_MODE"
	EnvLoggerLevel = "AUTHSHELL_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrShellFailed          = "auth shell failed"
	ErrShutdown             = "shutdown finished with errors"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений клиента.
const (
	LogShellStarted      = "authshell started"
	LogShellShutdownDone = "authshell shutdown complete"
	LogStoppingShell     = "stopping auth shell"
	LogAuthenticated     = "user authenticated"
	MsgWelcome           = "Signed in via %s. Goodbye!"
)

type flags struct {
	envFile  string
	failCode string
	latency  time.Duration
	noColor  bool
}

func main() {
	env := logger.Production
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "development" {
		env = logger.Development
	}

	level := os.Getenv(EnvLoggerLevel)
	if level == "" {
		level = "warn"
	}

	log, err := logger.NewLogger(env, level)
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}
	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer syncLogger()

		if err := newRootCmd().ExecuteContext(ctx); err != nil {
			exitCode = 1
		}
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

func newRootCmd() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "authshell",
		Short: "Interactive sign in and sign up forms in the terminal",
		Long: `authshell renders the sign in and sign up forms, validates input locally
and submits it to a demo identity provider.

Type 'help' at the prompt for the list of commands.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, f)
		},
	}

	cmd.Flags().StringVar(&f.envFile, "env-file", ".env", "Path to an optional .env file")
	cmd.Flags().StringVar(&f.failCode, "fail-code", "", "Provider error code returned by every request (e.g. auth/wrong-password)")
	cmd.Flags().DurationVar(&f.latency, "latency", 0, "Simulated provider latency (default from AUTHSHELL_DEMO_LATENCY)")
	cmd.Flags().BoolVar(&f.noColor, "no-color", false, "Disable colored output")

	return cmd
}

func run(cmd *cobra.Command, f flags) error {
	ctx := cmd.Context()
	log := logger.Log(ctx)

	cfg, err := config.Load(ctx, f.envFile)
	if err != nil {
		log.Error(ctx, ErrLoadConfig, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrLoadConfig, err)
	}

	finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
	if err != nil {
		log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrInitLoggerWithConfig, err)
	}
	logger.SetGlobalLogger(finalLogger)
	ctx = logger.NewContext(ctx, finalLogger)
	log = finalLogger

	if cmd.Flags().Changed("fail-code") {
		cfg.Demo.FailCode = f.failCode
	}
	if cmd.Flags().Changed("latency") {
		cfg.Demo.Latency = f.latency
	}
	if f.noColor {
		cfg.Terminal.Color = false
	}

	log.Info(ctx, LogShellStarted,
		zap.String("log_level", cfg.Logging.Level),
		zap.String("demo_fail_code", cfg.Demo.FailCode),
		zap.Duration("demo_latency", cfg.Demo.Latency),
		zap.String("startup_time", time.Now().Format(time.RFC3339)))

	runCtx, stop := context.WithCancel(ctx)
	defer stop()

	out := cmd.OutOrStdout()
	renderer := terminal.NewRenderer(out, cfg.Terminal.Color)

	var shell *terminal.Shell
	coord := coordinator.New(
		identityadapter.NewDemo(identityadapter.DemoConfig{
			FailCode: cfg.Demo.FailCode,
			Latency:  cfg.Demo.Latency,
		}),
		coordinator.WithLoadingObserver(func(loading bool) {
			shell.LoadingChanged(loading)
		}),
		coordinator.WithAuthenticatedHandler(func(ctx context.Context, kind coordinator.Kind) {
			log.Info(ctx, LogAuthenticated, zap.Stringer("view", kind))
			shell.Message(MsgWelcome, kind)
			stop()
		}),
	)
	shell = terminal.NewShell(coord, cmd.InOrStdin(), out, renderer, cfg.Terminal.Prompt)

	shellDone := make(chan struct{})
	var shellErr error
	go func() {
		defer close(shellDone)
		defer stop()
		shellErr = shell.Run(runCtx)
	}()

	err = shutdown.Wait(runCtx, cfg.Shutdown.GetTimeout(),
		func(ctx context.Context) error {
			log.Info(ctx, LogStoppingShell)
			stop()
			select {
			case <-shellDone:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	)
	if err != nil {
		log.Warn(ctx, ErrShutdown, zap.Error(err))
	}

	<-shellDone
	if shellErr != nil {
		log.Error(ctx, ErrShellFailed, zap.Error(shellErr))
		return fmt.Errorf("%s: %w", ErrShellFailed, shellErr)
	}

	log.Info(ctx, LogShellShutdownDone)
	return nil
}

func syncLogger() {
	err := logger.Log(context.Background()).Sync()
	if err == nil {
		return
	}
	errMsg := err.Error()
	if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
		return
	}
	if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
		panic(writeErr)
	}
}
