package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientRateLimiterAllowsUpToLimit(t *testing.T) {
	rl := NewClientRateLimiter(2, time.Hour)

	require.NoError(t, rl.Allow("10.0.0.1"))
	require.NoError(t, rl.Allow("10.0.0.1"))
	assert.Error(t, rl.Allow("10.0.0.1"))
}

func TestClientRateLimiterTracksClientsIndependently(t *testing.T) {
	rl := NewClientRateLimiter(1, time.Hour)

	require.NoError(t, rl.Allow("10.0.0.1"))
	assert.Error(t, rl.Allow("10.0.0.1"))
	assert.NoError(t, rl.Allow("10.0.0.2"))
}

func TestClientRateLimiterWindowExpiry(t *testing.T) {
	rl := NewClientRateLimiter(1, 20*time.Millisecond)

	require.NoError(t, rl.Allow("10.0.0.1"))
	require.Error(t, rl.Allow("10.0.0.1"))

	time.Sleep(30 * time.Millisecond)
	assert.NoError(t, rl.Allow("10.0.0.1"))
}

func TestClientRateLimiterReset(t *testing.T) {
	rl := NewClientRateLimiter(1, time.Hour)

	require.NoError(t, rl.Allow("10.0.0.1"))
	require.Error(t, rl.Allow("10.0.0.1"))

	rl.Reset()
	assert.NoError(t, rl.Allow("10.0.0.1"))

	stats := rl.GetStats()
	assert.Equal(t, 1, stats["tracked_clients"])
}
