// Package jobs provides background job processing functionality.
package jobs

import (
	"context"
	"sync"
	"time"

	"aniverse/logger"

	"github.com/rs/zerolog"
)

// JobManager handles background job execution
type JobManager struct {
	storeProbe *StoreProbe
	interval   time.Duration
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	running    bool
	mu         sync.RWMutex
	log        zerolog.Logger
}

// NewJobManager creates a new job manager. A nil probe leaves the manager
// with nothing to schedule, which is the case for the static backend.
func NewJobManager(storeProbe *StoreProbe, interval time.Duration) *JobManager {
	return &JobManager{
		storeProbe: storeProbe,
		interval:   interval,
		running:    false,
		log:        logger.New("jobs"),
	}
}

// Start begins the job manager background processing
func (jm *JobManager) Start() {
	jm.mu.Lock()
	defer jm.mu.Unlock()

	if jm.running {
		jm.log.Debug().Msg("Job manager is already running")
		return
	}

	jm.ctx, jm.cancel = context.WithCancel(context.Background())
	jm.running = true
	jm.log.Info().Dur("probe_interval", jm.interval).Msg("Starting job manager")

	jm.wg.Add(1)
	go jm.runPeriodicStoreProbe(jm.ctx)
}

// Stop stops the job manager and waits for running jobs to return
func (jm *JobManager) Stop() {
	jm.mu.Lock()
	defer jm.mu.Unlock()

	if !jm.running {
		return
	}

	jm.log.Info().Msg("Stopping job manager")
	jm.cancel()
	jm.running = false

	jm.wg.Wait()
	jm.log.Info().Msg("Job manager stopped")
}

// IsRunning returns whether the job manager is currently running
func (jm *JobManager) IsRunning() bool {
	jm.mu.RLock()
	defer jm.mu.RUnlock()
	return jm.running
}

// StoreHealthy reports the last store check. Without a probe there is no
// store to be unhealthy.
func (jm *JobManager) StoreHealthy() bool {
	if jm.storeProbe == nil {
		return true
	}
	return jm.storeProbe.Healthy()
}

// TriggerStoreProbe runs one store check right away, without waiting for
// the next tick.
func (jm *JobManager) TriggerStoreProbe() {
	if jm.storeProbe == nil {
		jm.log.Debug().Msg("Cannot trigger store probe: no probe configured")
		return
	}

	// Stop holds the write lock while it waits on wg.
	jm.mu.RLock()
	defer jm.mu.RUnlock()

	jm.wg.Add(1)
	go func() {
		defer jm.wg.Done()
		_ = jm.storeProbe.Probe(context.Background())
	}()
}

func (jm *JobManager) runPeriodicStoreProbe(ctx context.Context) {
	defer jm.wg.Done()

	if jm.storeProbe == nil || jm.interval <= 0 {
		jm.log.Debug().Msg("No store probe configured, skipping periodic checks")
		<-ctx.Done()
		return
	}

	// Run immediately on startup
	_ = jm.storeProbe.Probe(ctx)

	ticker := time.NewTicker(jm.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			jm.log.Debug().Msg("Periodic store probe stopped")
			return
		case <-ticker.C:
			_ = jm.storeProbe.Probe(ctx)
		}
	}
}
