// Package config предоставляет функциональность для загрузки конфигурации из .env файла и переменных окружения.
package config

import (
	"context"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap"

	"devotrack/pkg/logger"
)

const (
	msgLoadingConfiguration    = "loading configuration"
	msgConfigurationLoaded     = "configuration loaded successfully"
	msgFailedLoadConfiguration = "failed to load configuration"
	msgEnvFileMissing          = "env file not found, reading environment only"

	errFailedLoadConfiguration = "failed to load configuration"

	attrService = "service"
	attrPath    = "path"
)

// Load читает конфигурацию типа T. Если файл envPath существует, значения
// берутся из него и из окружения, иначе только из окружения.
func Load[T any](ctx context.Context, serviceName, envPath string) (*T, error) {
	log := logger.Log(ctx).With(zap.String(attrService, serviceName))
	log.Info(ctx, msgLoadingConfiguration, zap.String(attrPath, envPath))

	var cfg T
	var err error

	if envPath != "" && fileExists(envPath) {
		err = cleanenv.ReadConfig(envPath, &cfg)
	} else {
		if envPath != "" {
			log.Debug(ctx, msgEnvFileMissing, zap.String(attrPath, envPath))
		}
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		log.Error(ctx, msgFailedLoadConfiguration, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errFailedLoadConfiguration, err)
	}

	log.Info(ctx, msgConfigurationLoaded)
	return &cfg, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
