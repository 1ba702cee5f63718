package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-CharterService/internal/config"
	"github.com/m04kA/SMC-CharterService/pkg/logger"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:           "charter-service",
		Short:         "Сервис бронирования чартерных поездок",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		fmt.Sprintf("путь к TOML конфигурации (по умолчанию $%s или %s)", config.EnvConfigPath, config.DefaultPath))

	root.AddCommand(newServeCommand(), newMigrateCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// bootstrap загружает конфигурацию и создает логгер
func bootstrap() (*config.Config, *logger.Logger, string, error) {
	path := config.ResolvePath(configPath)

	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, path, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return nil, nil, path, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return cfg, log, path, nil
}
