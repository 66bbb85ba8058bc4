package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig(attempts int) Config {
	cfg := DefaultConfig()
	cfg.MaxAttempts = attempts
	cfg.InitialDelay = time.Millisecond
	cfg.MaxDelay = 5 * time.Millisecond
	return cfg
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "default", mutate: func(*Config) {}},
		{name: "zero attempts", mutate: func(c *Config) { c.MaxAttempts = 0 }, wantErr: true},
		{name: "negative delay", mutate: func(c *Config) { c.InitialDelay = -time.Second }, wantErr: true},
		{name: "shrinking multiplier", mutate: func(c *Config) { c.Multiplier = 0.5 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if tt.wantErr {
				assert.Error(t, cfg.Validate())
			} else {
				assert.NoError(t, cfg.Validate())
			}
		})
	}
}

func TestDo_RetriesUntilSuccess(t *testing.T) {
	var retried []int
	cfg := fastConfig(3)
	cfg.OnRetry = func(attempt int, err error, delay time.Duration) {
		retried = append(retried, attempt)
	}

	attempts := 0
	err := Do(context.Background(), cfg, func() error {
		attempts++
		if attempts < 3 {
			return errors.New("temporary error")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, []int{1, 2}, retried)
}

func TestDo_GivesUpAfterMaxAttempts(t *testing.T) {
	cause := errors.New("persistent error")
	attempts := 0

	err := Do(context.Background(), fastConfig(3), func() error {
		attempts++
		return cause
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 3, attempts)
}

func TestDo_PermanentStopsImmediately(t *testing.T) {
	cause := errors.New("bad password")
	attempts := 0

	err := Do(context.Background(), fastConfig(5), func() error {
		attempts++
		return Permanent(cause)
	})

	assert.Equal(t, cause, err)
	assert.Equal(t, 1, attempts)
}

func TestDo_NonRetryablePattern(t *testing.T) {
	cfg := fastConfig(5)
	cfg.RetryableErrors = []string{"connection refused"}

	attempts := 0
	err := Do(context.Background(), cfg, func() error {
		attempts++
		if attempts == 1 {
			return errors.New("dial tcp: Connection Refused")
		}
		return errors.New("password authentication failed")
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "password authentication failed")
	assert.Equal(t, 2, attempts)
}

func TestDo_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := DefaultConfig()
	cfg.MaxAttempts = 10
	cfg.InitialDelay = 100 * time.Millisecond

	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	attempts := 0
	err := Do(ctx, cfg, func() error {
		attempts++
		return errors.New("temporary error")
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, attempts, 10)
}

func TestDoWithResult(t *testing.T) {
	attempts := 0
	got, err := DoWithResult(context.Background(), fastConfig(3), func() (string, error) {
		attempts++
		if attempts == 1 {
			return "", errors.New("connection reset")
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", got)
}

func TestCalculateDelay(t *testing.T) {
	cfg := Config{InitialDelay: 100 * time.Millisecond, MaxDelay: time.Second, Multiplier: 2}

	assert.Equal(t, 100*time.Millisecond, calculateDelay(0, cfg))
	assert.Equal(t, 400*time.Millisecond, calculateDelay(2, cfg))
	assert.Equal(t, time.Second, calculateDelay(10, cfg))
	assert.Equal(t, 100*time.Millisecond, calculateDelay(-1, cfg))
}

func TestAddJitter_StaysWithinTenPercent(t *testing.T) {
	base := time.Second
	for i := 0; i < 50; i++ {
		d := addJitter(base)
		assert.GreaterOrEqual(t, d, 900*time.Millisecond)
		assert.LessOrEqual(t, d, 1100*time.Millisecond)
	}
}

func TestIsRetryableError(t *testing.T) {
	cfg := PostgresConfig()

	assert.False(t, IsRetryableError(nil, cfg))
	assert.False(t, IsRetryableError(context.DeadlineExceeded, cfg))
	assert.True(t, IsRetryableError(errors.New("FATAL: the database system is starting up"), cfg))
	assert.False(t, IsRetryableError(errors.New("relation does not exist"), cfg))
	assert.True(t, IsRetryableError(errors.New("anything"), DefaultConfig()))
}
