package blob

import (
	"context"
	"errors"
	"fmt"

	"github.com/abgdnv/missil/pkg/config"
	"github.com/sony/gobreaker/v2"
)

// BreakerStore guards a remote Store with a circuit breaker.
// While the breaker is open calls fail fast with gobreaker.ErrOpenState.
type BreakerStore struct {
	next Store
	cb   *gobreaker.CircuitBreaker[loadResult]
}

type loadResult struct {
	data []byte
	ok   bool
}

func NewBreakerStore(name string, next Store, cfg config.CircuitBreakerConfig) *BreakerStore {
	st := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			total := counts.TotalSuccesses + counts.TotalFailures
			return counts.ConsecutiveFailures > cfg.ConsecutiveFailures ||
				(total > cfg.ConsecutiveFailures &&
					float64(counts.TotalFailures)/float64(total)*100 > float64(cfg.ErrorRatePercent))
		},
		IsSuccessful: func(err error) bool {
			// caller cancellation and bad keys say nothing about backend health
			return err == nil ||
				errors.Is(err, context.Canceled) ||
				errors.Is(err, ErrInvalidKey)
		},
	}
	return &BreakerStore{next: next, cb: gobreaker.NewCircuitBreaker[loadResult](st)}
}

func (b *BreakerStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	res, err := b.cb.Execute(func() (loadResult, error) {
		data, ok, err := b.next.Load(ctx, key)
		return loadResult{data: data, ok: ok}, err
	})
	if err != nil {
		return nil, false, fmt.Errorf("blob load %s: %w", key, err)
	}
	return res.data, res.ok, nil
}

func (b *BreakerStore) Save(ctx context.Context, key string, data []byte) error {
	_, err := b.cb.Execute(func() (loadResult, error) {
		return loadResult{}, b.next.Save(ctx, key, data)
	})
	if err != nil {
		return fmt.Errorf("blob save %s: %w", key, err)
	}
	return nil
}

// State reports the breaker state, for health reporting.
func (b *BreakerStore) State() gobreaker.State {
	return b.cb.State()
}
