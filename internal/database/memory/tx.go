package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/hunter-yen/hunter-server/internal/domain"
	"github.com/hunter-yen/hunter-server/internal/repository"
)

type playerTx struct {
	store *Store

	mu      sync.Mutex
	closed  bool
	unlock  func()
	player  *domain.Player
	pending []domain.ItemUseLog
}

// BeginTx starts a transaction. Writes are staged and applied on Commit.
func (s *Store) BeginTx(context.Context) (repository.PlayerTx, error) {
	return &playerTx{store: s}, nil
}

// GetPlayerForUpdate takes the player lock until Commit or Rollback
func (t *playerTx) GetPlayerForUpdate(ctx context.Context, userID string) (*domain.Player, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil, repository.ErrTxClosed
	}
	if t.unlock == nil {
		t.unlock = t.store.locks.Lock(userID)
	}
	p, err := t.store.GetPlayer(ctx, userID)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (t *playerTx) UpdatePlayer(_ context.Context, player *domain.Player) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return repository.ErrTxClosed
	}
	if t.unlock == nil {
		return fmt.Errorf("update of %s without row lock", player.ID)
	}
	t.player = player
	return nil
}

func (t *playerTx) HasItemUseLog(_ context.Context, userID, itemID, requestID string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return false, repository.ErrTxClosed
	}
	for _, l := range t.pending {
		if l.UserID == userID && l.ItemID == itemID && l.RequestID == requestID {
			return true, nil
		}
	}
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	_, ok := t.store.useLogs[useLogKey{userID, itemID, requestID}]
	return ok, nil
}

func (t *playerTx) InsertItemUseLog(ctx context.Context, log domain.ItemUseLog) (bool, error) {
	exists, err := t.HasItemUseLog(ctx, log.UserID, log.ItemID, log.RequestID)
	if err != nil || exists {
		return false, err
	}
	t.mu.Lock()
	t.pending = append(t.pending, log)
	t.mu.Unlock()
	return true, nil
}

func (t *playerTx) Commit(context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return repository.ErrTxClosed
	}
	defer t.release()

	if t.player != nil {
		if err := t.store.writePlayer(t.player); err != nil {
			return err
		}
	}
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	for _, l := range t.pending {
		t.store.useLogs[useLogKey{l.UserID, l.ItemID, l.RequestID}] = l
	}
	return nil
}

func (t *playerTx) Rollback(context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return repository.ErrTxClosed
	}
	t.release()
	return nil
}

func (t *playerTx) release() {
	t.closed = true
	if t.unlock != nil {
		t.unlock()
		t.unlock = nil
	}
}
