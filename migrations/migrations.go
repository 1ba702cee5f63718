// Package migrations содержит SQL схему сервиса и применяет ее к PostgreSQL через goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var FS embed.FS

var (
	// ErrReadMigrations возвращается, если встроенные файлы не удалось прочитать
	ErrReadMigrations = errors.New("migrations: failed to read migrations")

	// ErrApplyMigration возвращается при ошибке применения миграции
	ErrApplyMigration = errors.New("migrations: failed to apply migration")
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// NewProvider создает goose провайдер поверх встроенных миграций
func NewProvider(db *sql.DB) (*goose.Provider, error) {
	provider, err := goose.NewProvider(goose.DialectPostgres, db, FS)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadMigrations, err)
	}
	return provider, nil
}

// Apply применяет все еще не примененные миграции.
// Возвращает количество примененных миграций.
func Apply(ctx context.Context, db *sql.DB, log Logger) (int, error) {
	provider, err := NewProvider(db)
	if err != nil {
		return 0, err
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return len(results), fmt.Errorf("%w: %w", ErrApplyMigration, err)
	}

	for _, res := range results {
		log.Info("Migration %d (%s) applied in %s", res.Source.Version, res.Source.Path, res.Duration)
	}

	return len(results), nil
}
