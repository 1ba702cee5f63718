package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CharterService/pkg/dbmetrics"
)

var (
	// ErrBegin возвращается, если не удалось начать транзакцию
	ErrBegin = errors.New("txmanager: failed to begin transaction")

	// ErrCommit возвращается, если не удалось зафиксировать транзакцию
	ErrCommit = errors.New("txmanager: failed to commit transaction")
)

// TransactionManager выполняет функции внутри транзакции, передавая её через контекст.
// Репозитории берут транзакцию из контекста через dbmetrics.GetExecutor.
type TransactionManager struct {
	db dbmetrics.TxBeginner
}

// NewTransactionManager создает менеджер транзакций
// Принимает *dbmetrics.DB или *dbmetrics.SqlDBWrapper
func NewTransactionManager(db dbmetrics.TxBeginner) *TransactionManager {
	return &TransactionManager{db: db}
}

// Do выполняет fn в транзакции с уровнем изоляции по умолчанию (READ COMMITTED)
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.do(ctx, &sql.TxOptions{}, fn)
}

// DoSerializable выполняет fn в SERIALIZABLE транзакции.
// Ошибка сериализации (SQLSTATE 40001) возвращается вызывающему как есть:
// повтор решает бизнес-логика, а не менеджер транзакций.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.do(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, fn)
}

// DoReadOnly выполняет fn в READ ONLY транзакции
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.do(ctx, &sql.TxOptions{ReadOnly: true}, fn)
}

func (m *TransactionManager) do(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) (err error) {
	// Вложенный вызов - переиспользуем внешнюю транзакцию
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBegin, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommit, err)
	}

	return nil
}
