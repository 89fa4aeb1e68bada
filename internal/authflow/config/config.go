// Package config содержит конфигурацию терминального клиента аутентификации.
package config

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	loader "devotrack/pkg/config"
	"devotrack/pkg/logger"
)

const (
	serviceName         = "authshell"
	logConfigLoaded     = "authshell configuration"
	errFailedLoadConfig = "failed to load authshell configuration"
)

// Config - полная конфигурация authshell.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging"`
	Demo     DemoConfig     `yaml:"demo"`
	Terminal TerminalConfig `yaml:"terminal"`
	Shutdown ShutdownConfig `yaml:"shutdown"`
}

// Load загружает конфигурацию из файла envPath (если он есть) и переменных окружения.
func Load(ctx context.Context, envPath string) (*Config, error) {
	cfg, err := loader.Load[Config](ctx, serviceName, envPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errFailedLoadConfig, err)
	}

	logger.Log(ctx).Debug(ctx, logConfigLoaded,
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode),
		zap.String("demo_fail_code", cfg.Demo.FailCode),
		zap.Duration("demo_latency", cfg.Demo.Latency),
		zap.Bool("terminal_color", cfg.Terminal.Color),
		zap.Int("shutdown_timeout_seconds", cfg.Shutdown.Timeout))

	return cfg, nil
}
