// Copyright (c) 2026 GrossStore. All rights reserved.
// Author: dev@grossstore.com

package inventory_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grossstore/grossstore/internal/inventory"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

/*
TestLiveSampler_Start verifies the first snapshot is available immediately
after Start and that cancellation stops the ticker goroutine.
*/
func TestLiveSampler_Start(t *testing.T) {
	service := newTestService()
	sampler := inventory.NewLiveSampler(service, 10*time.Millisecond, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	assert.Nil(t, sampler.Latest())

	sampler.Start(ctx)

	snapshot := sampler.Latest()
	require.NotNil(t, snapshot)
	assert.Len(t, snapshot.CategoryData, 4)
	assert.Len(t, snapshot.MonthlyData, 6)

	cancel()
}

/*
TestLiveSampler_Perturbs verifies snapshots stay within the ±10% band of
the unperturbed series.
*/
func TestLiveSampler_Perturbs(t *testing.T) {
	service := newTestService()
	sampler := inventory.NewLiveSampler(service, time.Hour, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sampler.Start(ctx)

	baseline, err := service.ChartData(context.Background())
	require.NoError(t, err)

	snapshot := sampler.Latest()
	require.NotNil(t, snapshot)

	for i, point := range snapshot.MonthlyData {
		base := baseline.MonthlyData[i]
		assert.InDelta(t, base.Sales, point.Sales, float64(base.Sales)/10+1)
		assert.InDelta(t, base.Stock, point.Stock, float64(base.Stock)/10+1)
	}

	// Buckets and fixed series are never perturbed.
	assert.Equal(t, baseline.PriceRangeData, snapshot.PriceRangeData)
	assert.Equal(t, baseline.StockLevelData, snapshot.StockLevelData)
}
