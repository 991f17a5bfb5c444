package camunda

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "shamba-workers/internal/common/errors"
)

func newTestClient() *Client {
	return &Client{
		config: &ClientConfig{
			ConnectionTimeout: time.Second,
			RetryConfig: &RetryConfig{
				MaxRetries: 2,
				BaseDelay:  time.Millisecond,
				MaxDelay:   5 * time.Millisecond,
			},
		},
	}
}

func TestExecuteWithRetry_TransientErrorEventuallySucceeds(t *testing.T) {
	c := newTestClient()

	attempts := 0
	result, err := c.ExecuteWithRetry(context.Background(), func(ctx context.Context) (interface{}, error) {
		attempts++
		if attempts < 3 {
			return nil, errors.New("connection refused")
		}
		return "topology", nil
	}, "topology")

	require.NoError(t, err)
	assert.Equal(t, "topology", result)
	assert.Equal(t, 3, attempts)
}

func TestExecuteWithRetry_NonRetryableFailsImmediately(t *testing.T) {
	c := newTestClient()

	attempts := 0
	_, err := c.ExecuteWithRetry(context.Background(), func(ctx context.Context) (interface{}, error) {
		attempts++
		return nil, errors.New("process definition not found")
	}, "create-instance")

	require.Error(t, err)
	assert.Equal(t, 1, attempts)

	var stdErr *apperrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, "RESOURCE_NOT_FOUND", string(stdErr.Code))
}

func TestExecuteWithRetry_RetriesExhaustedMapsError(t *testing.T) {
	c := newTestClient()

	attempts := 0
	_, err := c.ExecuteWithRetry(context.Background(), func(ctx context.Context) (interface{}, error) {
		attempts++
		return nil, errors.New("deadline exceeded")
	}, "topology")

	require.Error(t, err)
	assert.Equal(t, 3, attempts)

	var stdErr *apperrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, "TIMEOUT_ERROR", string(stdErr.Code))
	assert.Contains(t, stdErr.Details, "topology")
}

func TestExecuteWithRetry_CancelledDuringBackoff(t *testing.T) {
	c := newTestClient()
	c.config.RetryConfig.BaseDelay = 100 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ExecuteWithRetry(ctx, func(ctx context.Context) (interface{}, error) {
		return nil, errors.New("unavailable")
	}, "topology")

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMapZeebeError(t *testing.T) {
	c := newTestClient()

	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"timeout", errors.New("rpc timeout talking to gateway"), "TIMEOUT_ERROR"},
		{"not found", errors.New("element not found"), "RESOURCE_NOT_FOUND"},
		{"already exists", errors.New("deployment already exists"), "BUSINESS_RULE_VIOLATION"},
		{"other", errors.New("internal gateway failure"), "EXTERNAL_SERVICE_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapped := c.mapZeebeError(tt.err, "op", 0)

			var stdErr *apperrors.StandardError
			require.ErrorAs(t, mapped, &stdErr)
			assert.Equal(t, tt.wantCode, string(stdErr.Code))
		})
	}
}

func TestIsRetryableZeebeError(t *testing.T) {
	assert.True(t, isRetryableZeebeError(errors.New("connection reset by peer")))
	assert.True(t, isRetryableZeebeError(errors.New("gateway UNAVAILABLE")))
	assert.False(t, isRetryableZeebeError(errors.New("invalid variables payload")))
}
