package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"aniverse/logger"
	"aniverse/metrics"

	"github.com/rs/zerolog"
)

// Pinger is implemented by backends that can be health checked.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// StoreProbe checks that the relational store answers and remembers the
// outcome of the last check.
type StoreProbe struct {
	pinger  Pinger
	timeout time.Duration
	healthy atomic.Bool
	log     zerolog.Logger
}

// NewStoreProbe creates a probe for p. Each check is bounded by timeout.
// The store counts as healthy until a check fails.
func NewStoreProbe(p Pinger, timeout time.Duration) *StoreProbe {
	probe := &StoreProbe{
		pinger:  p,
		timeout: timeout,
		log:     logger.New("jobs"),
	}
	probe.healthy.Store(true)
	return probe
}

// Probe pings the store once and records the result.
func (p *StoreProbe) Probe(ctx context.Context) error {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	err := p.pinger.PingContext(ctx)
	// A probe abandoned at shutdown says nothing about the store.
	if errors.Is(err, context.Canceled) {
		return err
	}
	was := p.healthy.Swap(err == nil)

	if err != nil {
		metrics.StoreUp.Set(0)
		if was {
			p.log.Error().Err(err).Msg("Store probe failed")
		}
		return err
	}

	metrics.StoreUp.Set(1)
	if !was {
		p.log.Info().Msg("Store probe recovered")
	}
	return nil
}

// Healthy reports the result of the last check.
func (p *StoreProbe) Healthy() bool {
	return p.healthy.Load()
}
