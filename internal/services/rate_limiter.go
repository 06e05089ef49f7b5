package services

import (
	"fmt"
	"sync"
	"time"
)

// ClientRateLimiter bounds how often a single client may hit expensive
// endpoints, such as the manual pipeline trigger. Requests are tracked
// per client key over a sliding window.
type ClientRateLimiter struct {
	mu          sync.RWMutex
	requests    map[string][]time.Time
	maxRequests int
	window      time.Duration
}

// NewClientRateLimiter creates a limiter allowing maxRequests per client
// per window.
func NewClientRateLimiter(maxRequests int, window time.Duration) *ClientRateLimiter {
	return &ClientRateLimiter{
		requests:    make(map[string][]time.Time),
		maxRequests: maxRequests,
		window:      window,
	}
}

// Allow checks if a request is allowed for the given client key
func (rl *ClientRateLimiter) Allow(clientKey string) error {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	rl.cleanupOldRequests(clientKey, now)

	if len(rl.requests[clientKey]) >= rl.maxRequests {
		return fmt.Errorf("rate limit exceeded: maximum %d requests per %v", rl.maxRequests, rl.window)
	}

	rl.requests[clientKey] = append(rl.requests[clientKey], now)
	return nil
}

// cleanupOldRequests removes requests outside the time window
func (rl *ClientRateLimiter) cleanupOldRequests(clientKey string, now time.Time) {
	requests, exists := rl.requests[clientKey]
	if !exists {
		return
	}

	cutoff := now.Add(-rl.window)
	validRequests := make([]time.Time, 0, len(requests))
	for _, req := range requests {
		if req.After(cutoff) {
			validRequests = append(validRequests, req)
		}
	}

	if len(validRequests) == 0 {
		delete(rl.requests, clientKey)
	} else {
		rl.requests[clientKey] = validRequests
	}
}

// GetStats returns rate limiter statistics
func (rl *ClientRateLimiter) GetStats() map[string]interface{} {
	rl.mu.RLock()
	defer rl.mu.RUnlock()

	return map[string]interface{}{
		"tracked_clients": len(rl.requests),
		"max_requests":    rl.maxRequests,
		"window":          rl.window.String(),
	}
}

// Reset clears all rate limiting data
func (rl *ClientRateLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.requests = make(map[string][]time.Time)
}
