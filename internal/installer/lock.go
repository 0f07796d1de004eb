package installer

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	log "github.com/sirupsen/logrus"
)

// withLockRetry runs op until it succeeds, fails with something other than a
// lock error, or the configured lock wait is used up.
func (o *Orchestrator) withLockRetry(ctx context.Context, path string, op func() error) error {
	if o.cfg.LockWait <= 0 {
		return op()
	}

	expBackOff := backoff.WithContext(&backoff.ExponentialBackOff{
		InitialInterval:     o.retryInterval,
		RandomizationFactor: backoff.DefaultRandomizationFactor,
		Multiplier:          backoff.DefaultMultiplier,
		MaxInterval:         2 * time.Second,
		MaxElapsedTime:      o.cfg.LockWait,
		Stop:                backoff.Stop,
		Clock:               backoff.SystemClock,
	}, ctx)

	start := time.Now()
	attempt := 0
	err := backoff.RetryNotify(func() error {
		attempt++
		err := op()
		if err == nil || isLockError(err) {
			return err
		}
		return backoff.Permanent(err)
	}, expBackOff, func(err error, next time.Duration) {
		log.Warnf("install directory %s is locked (attempt %d), retrying in %v: %v", path, attempt, next, err)
	})

	if err != nil && isLockError(err) {
		return &StillLockedError{Path: path, Waited: time.Since(start), Err: err}
	}
	return err
}
