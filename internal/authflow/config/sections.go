package config

import (
	"time"

	"devotrack/pkg/logger"
)

// LoggingConfig - настройки логирования.
type LoggingConfig struct {
	Level string `yaml:"level" env:"AUTHSHELL_LOGGER_LEVEL" env-default:"warn"`
	Mode  string `yaml:"mode" env:"AUTHSHELL_LOGGER_MODE" env-default:"production"`
}

// GetEnvironment возвращает режим работы логгера.
func (c *LoggingConfig) GetEnvironment() logger.Environment {
	if c.Mode == "development" {
		return logger.Development
	}
	return logger.Production
}

// DemoConfig - поведение демонстрационного провайдера идентификации.
type DemoConfig struct {
	FailCode string        `yaml:"fail_code" env:"AUTHSHELL_DEMO_FAIL_CODE"`
	Latency  time.Duration `yaml:"latency" env:"AUTHSHELL_DEMO_LATENCY" env-default:"800ms"`
}

// TerminalConfig - настройки вывода.
type TerminalConfig struct {
	Color  bool   `yaml:"color" env:"AUTHSHELL_COLOR" env-default:"true"`
	Prompt string `yaml:"prompt" env:"AUTHSHELL_PROMPT" env-default:"auth> "`
}

// ShutdownConfig - настройки завершения работы.
type ShutdownConfig struct {
	Timeout int `yaml:"timeout" env:"AUTHSHELL_SHUTDOWN_TIMEOUT" env-default:"5"`
}

// GetTimeout возвращает таймаут завершения в виде Duration.
func (c *ShutdownConfig) GetTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}
