package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/hunter-yen/hunter-server/internal/domain"
	"github.com/hunter-yen/hunter-server/internal/repository"
)

// playerTx implements repository.PlayerTx on a pgx transaction.
// GetPlayerForUpdate takes a row lock held until Commit or Rollback.
type playerTx struct {
	tx pgx.Tx
}

func (t *playerTx) GetPlayerForUpdate(ctx context.Context, userID string) (*domain.Player, error) {
	return getPlayer(ctx, t.tx, userID, true)
}

func (t *playerTx) UpdatePlayer(ctx context.Context, player *domain.Player) error {
	return updatePlayer(ctx, t.tx, player)
}

func (t *playerTx) HasItemUseLog(ctx context.Context, userID, itemID, requestID string) (bool, error) {
	id, err := parseUserUUID(userID)
	if err != nil {
		return false, err
	}
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM item_use_logs WHERE user_id = $1 AND item_id = $2 AND request_id = $3)`
	if err := t.tx.QueryRow(ctx, query, id, itemID, requestID).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToCheckItemUseLog, err)
	}
	return exists, nil
}

// InsertItemUseLog returns false when the (user, item, request) triple already exists
func (t *playerTx) InsertItemUseLog(ctx context.Context, log domain.ItemUseLog) (bool, error) {
	id, err := parseUserUUID(log.UserID)
	if err != nil {
		return false, err
	}
	query := `
		INSERT INTO item_use_logs (user_id, item_id, request_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, item_id, request_id) DO NOTHING
	`
	createdAt := log.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	tag, err := t.tx.Exec(ctx, query, id, log.ItemID, log.RequestID, createdAt)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToInsertItemUseLog, err)
	}
	return tag.RowsAffected() == 1, nil
}

func (t *playerTx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		if errors.Is(err, pgx.ErrTxClosed) {
			return repository.ErrTxClosed
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}
	return nil
}

// Rollback maps pgx.ErrTxClosed so repository.SafeRollback stays quiet after Commit
func (t *playerTx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); err != nil {
		if errors.Is(err, pgx.ErrTxClosed) {
			return repository.ErrTxClosed
		}
		return err
	}
	return nil
}
