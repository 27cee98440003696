package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sumor0v0/second-hand-trade/internal/pkg/logging"
)

const setLockTimeoutSQL = `SELECT set_config('lock_timeout', $1, true)`

type TxManager interface {
	WithinTransaction(ctx context.Context, txFn TxFunc) error
}

type TxFunc func(ctx context.Context, executor QueryExecuter) error

// DelegateTxManager runs a TxFunc inside one pgx transaction. Every transaction it opens gets a
// local lock_timeout, so a FOR UPDATE that cannot be granted in time fails instead of waiting forever.
type DelegateTxManager struct {
	txBeginner  TxBeginner
	lockTimeout time.Duration
	logger      logging.Logger
}

func NewDelegateTxManager(txBeginner TxBeginner, lockTimeout time.Duration, logger logging.Logger) *DelegateTxManager {
	return &DelegateTxManager{
		txBeginner:  txBeginner,
		lockTimeout: lockTimeout,
		logger:      logger,
	}
}

func (tm *DelegateTxManager) WithinTransaction(ctx context.Context, txFn TxFunc) error {
	tx, err := tm.txBeginner.BeginTx(ctx, pgx.TxOptions{
		IsoLevel: pgx.ReadCommitted,
	})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		err := tx.Rollback(ctx)
		if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			tm.logger.Error("failed to rollback transaction", "error", err)
		}
	}()

	if tm.lockTimeout > 0 {
		_, err = tx.Exec(ctx, setLockTimeoutSQL, lockTimeoutSetting(tm.lockTimeout))
		if err != nil {
			return fmt.Errorf("failed to set lock timeout: %w", err)
		}
	}

	err = txFn(ctx, tx)
	if err != nil {
		return fmt.Errorf("failed to execute logic within transaction: %w", err)
	}

	err = tx.Commit(ctx)
	if err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func lockTimeoutSetting(d time.Duration) string {
	return fmt.Sprintf("%dms", d.Milliseconds())
}
