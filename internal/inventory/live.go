// Copyright (c) 2026 GrossStore. All rights reserved.
// Author: dev@grossstore.com

package inventory

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"
)

// LiveSampler periodically recomputes the chart series with small random
// perturbations, giving the dashboard's live view something to animate.
//
// # Lifecycle
//
// The sampler is owned by the server: Start launches the ticker goroutine
// and the goroutine exits when the given context is canceled, so shutdown
// stops the sampling cleanly. Latest never blocks on a tick in progress.
type LiveSampler struct {
	service  *Service
	interval time.Duration
	logger   *slog.Logger

	mu     sync.RWMutex
	latest *ChartData
}

// NewLiveSampler constructs a sampler over the given service.
func NewLiveSampler(service *Service, interval time.Duration, logger *slog.Logger) *LiveSampler {
	return &LiveSampler{
		service:  service,
		interval: interval,
		logger:   logger,
	}
}

// Start primes the first snapshot synchronously, then launches the ticker
// goroutine. It returns immediately; cancel ctx to stop sampling.
func (sampler *LiveSampler) Start(ctx context.Context) {
	sampler.sample(ctx)

	go func() {
		ticker := time.NewTicker(sampler.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sampler.sample(ctx)
			}
		}
	}()
}

// Latest returns the most recent perturbed snapshot, or nil before the
// first successful sample.
func (sampler *LiveSampler) Latest() *ChartData {
	sampler.mu.RLock()
	defer sampler.mu.RUnlock()
	return sampler.latest
}

// sample recomputes the series and stores a perturbed copy. Failures keep
// the previous snapshot; live data going stale beats live data going blank.
func (sampler *LiveSampler) sample(ctx context.Context) {
	data, err := sampler.service.ChartData(ctx)
	if err != nil {
		sampler.logger.WarnContext(ctx, "live_sample_failed",
			slog.String("error", err.Error()),
		)
		return
	}

	perturb(data)

	sampler.mu.Lock()
	sampler.latest = data
	sampler.mu.Unlock()
}

// perturb nudges the aggregated series by up to ±10% so consecutive
// snapshots differ visibly even while the catalog is untouched.
func perturb(data *ChartData) {
	for i := range data.CategoryData {
		data.CategoryData[i].Value = jitter(data.CategoryData[i].Value)
	}
	for i := range data.MonthlyData {
		data.MonthlyData[i].Sales = jitter(data.MonthlyData[i].Sales)
		data.MonthlyData[i].Stock = jitter(data.MonthlyData[i].Stock)
	}
}

// jitter returns value shifted by a random amount within ±10%, never below 0.
func jitter(value int) int {
	if value == 0 {
		return 0
	}
	span := value / 10
	if span == 0 {
		span = 1
	}
	shifted := value + rand.Intn(2*span+1) - span
	if shifted < 0 {
		return 0
	}
	return shifted
}
