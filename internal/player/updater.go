package player

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/hunter-yen/hunter-server/internal/domain"
	"github.com/hunter-yen/hunter-server/internal/logger"
	"github.com/hunter-yen/hunter-server/internal/repository"
)

// MutateFunc changes a freshly loaded player in place. It may run more than
// once, so it must only touch the player and values it resets itself.
type MutateFunc func(p *domain.Player) error

// Updater runs read-modify-write cycles against the version column.
// A write that loses the race reloads the player and reapplies the mutation.
type Updater struct {
	repo       repository.Player
	maxRetries int
}

// NewUpdater creates an updater retrying up to maxRetries times on conflict
func NewUpdater(repo repository.Player, maxRetries int) *Updater {
	if maxRetries < 0 {
		maxRetries = DefaultMaxRetries
	}
	return &Updater{repo: repo, maxRetries: maxRetries}
}

// Update loads userID, applies fn and persists the result.
// Errors from fn abort immediately and are returned unchanged.
func (u *Updater) Update(ctx context.Context, userID string, fn MutateFunc) (*domain.Player, error) {
	log := logger.FromContext(ctx)
	var result *domain.Player

	op := func() error {
		p, err := u.repo.GetPlayer(ctx, userID)
		if err != nil {
			return backoff.Permanent(err)
		}
		if err := fn(p); err != nil {
			return backoff.Permanent(err)
		}
		if err := u.repo.UpdatePlayer(ctx, p); err != nil {
			if errors.Is(err, domain.ErrVersionConflict) {
				return err
			}
			return backoff.Permanent(err)
		}
		result = p
		return nil
	}

	notify := func(err error, wait time.Duration) {
		log.Debug(LogMsgVersionConflictRetry, "user_id", userID, "wait", wait, "error", err)
	}

	if err := backoff.RetryNotify(op, u.policy(ctx), notify); err != nil {
		return nil, err
	}
	return result, nil
}

func (u *Updater) policy(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = RetryInitialInterval
	b.MaxInterval = RetryMaxInterval
	b.MaxElapsedTime = RetryMaxElapsedTime
	b.RandomizationFactor = RetryRandomizationSpan
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(u.maxRetries)), ctx)
}
