package ports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubChecker implements HealthChecker for testing.
type stubChecker struct {
	name string
	err  error
}

func (s *stubChecker) Name() string {
	return s.name
}

func (s *stubChecker) Check(ctx context.Context) error {
	return s.err
}

// slowChecker blocks until its context ends or delay elapses.
type slowChecker struct {
	name  string
	delay time.Duration
}

func (s *slowChecker) Name() string {
	return s.name
}

func (s *slowChecker) Check(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(s.delay):
		return nil
	}
}

func TestNewHealthRegistry(t *testing.T) {
	registry := NewHealthRegistry()

	require.NotNil(t, registry)
	assert.Empty(t, registry.checkers)
	assert.Equal(t, DefaultCheckTimeout, registry.checkTimeout)
}

func TestNewHealthRegistry_WithCheckTimeout(t *testing.T) {
	assert.Equal(t, 50*time.Millisecond, NewHealthRegistry(WithCheckTimeout(50*time.Millisecond)).checkTimeout)
	assert.Equal(t, DefaultCheckTimeout, NewHealthRegistry(WithCheckTimeout(0)).checkTimeout)
}

func TestRegister_DuplicateName(t *testing.T) {
	registry := NewHealthRegistry()

	require.NoError(t, registry.Register(&stubChecker{name: "quote-service"}))

	err := registry.Register(&stubChecker{name: "quote-service"})

	require.ErrorIs(t, err, ErrDuplicateChecker)
	assert.Contains(t, err.Error(), "quote-service")
	assert.Len(t, registry.checkers, 1)
}

func TestCheckAll_NoCheckers(t *testing.T) {
	result := NewHealthRegistry().CheckAll(context.Background())

	require.NotNil(t, result)
	assert.Equal(t, HealthStatusHealthy, result.Status)
	assert.Empty(t, result.Checks)
	assert.False(t, result.Timestamp.IsZero())
}

func TestCheckAll(t *testing.T) {
	tests := []struct {
		name           string
		checkers       []HealthChecker
		expectedStatus HealthStatus
		expectedChecks map[string]HealthStatus
	}{
		{
			name: "all healthy",
			checkers: []HealthChecker{
				&stubChecker{name: "quote-service"},
				&stubChecker{name: "meme-service"},
			},
			expectedStatus: HealthStatusHealthy,
			expectedChecks: map[string]HealthStatus{
				"quote-service": HealthStatusHealthy,
				"meme-service":  HealthStatusHealthy,
			},
		},
		{
			name: "one unhealthy",
			checkers: []HealthChecker{
				&stubChecker{name: "quote-service"},
				&stubChecker{name: "meme-service", err: errors.New("connection refused")},
			},
			expectedStatus: HealthStatusUnhealthy,
			expectedChecks: map[string]HealthStatus{
				"quote-service": HealthStatusHealthy,
				"meme-service":  HealthStatusUnhealthy,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := NewHealthRegistry()
			for _, c := range tt.checkers {
				require.NoError(t, registry.Register(c))
			}

			result := registry.CheckAll(context.Background())

			assert.Equal(t, tt.expectedStatus, result.Status)
			require.Len(t, result.Checks, len(tt.expectedChecks))
			for name, status := range tt.expectedChecks {
				assert.Equal(t, status, result.Checks[name].Status, name)
			}
		})
	}
}

func TestCheckAll_FailureMessageCaptured(t *testing.T) {
	registry := NewHealthRegistry()
	require.NoError(t, registry.Register(&stubChecker{name: "meme-service", err: errors.New("HTTP 502")}))

	result := registry.CheckAll(context.Background())

	assert.Equal(t, "HTTP 502", result.Checks["meme-service"].Message)
}

func TestCheckAll_ContextCancelled(t *testing.T) {
	registry := NewHealthRegistry()
	require.NoError(t, registry.Register(&slowChecker{name: "slow-service", delay: 100 * time.Millisecond}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := registry.CheckAll(ctx)

	assert.Equal(t, HealthStatusUnhealthy, result.Status)
	assert.Contains(t, result.Checks["slow-service"].Message, "context canceled")
}

func TestCheckAll_PerCheckTimeout(t *testing.T) {
	registry := NewHealthRegistry(WithCheckTimeout(20 * time.Millisecond))
	require.NoError(t, registry.Register(&slowChecker{name: "slow-service", delay: time.Second}))
	require.NoError(t, registry.Register(&stubChecker{name: "fast-service"}))

	result := registry.CheckAll(context.Background())

	assert.Equal(t, HealthStatusUnhealthy, result.Status)
	assert.Contains(t, result.Checks["slow-service"].Message, "deadline exceeded")
	assert.Equal(t, HealthStatusHealthy, result.Checks["fast-service"].Status)
}
