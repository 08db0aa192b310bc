package main

import (
	"context"
	"testing"

	"componente-compartido/componente/infra"
	"componente-compartido/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStats_MemoryWhenRedisDisabled(t *testing.T) {
	stats, closeFn, err := newStats(context.Background(), config.StatsConfig{TrackKeys: true})
	require.NoError(t, err)
	defer closeFn()

	_, ok := stats.(*infra.MemoryStatsStore)
	assert.True(t, ok, "expected memory stats store, got %T", stats)
}
