package repository

import (
	"context"
	"errors"

	"github.com/hunter-yen/hunter-server/internal/logger"
)

// ErrTxClosed is returned by Rollback after Commit or a previous Rollback.
var ErrTxClosed = errors.New("tx is closed")

// SafeRollback rolls back a transaction and logs any error
func SafeRollback(ctx context.Context, tx Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, ErrTxClosed) {
		logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
	}
}
