package retry_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plearn/backend/internal/retry"
)

// recordSleep captures requested delays without waiting.
type recordSleep struct {
	waits []time.Duration
}

func (r *recordSleep) sleep(_ context.Context, d time.Duration) error {
	r.waits = append(r.waits, d)
	return nil
}

func TestPolicy_Next(t *testing.T) {
	p := retry.DefaultPolicy

	assert.Equal(t, retry.Decision{Wait: 2 * time.Second}, p.Next(1, retry.Retryable))
	assert.Equal(t, retry.Decision{Wait: 2 * time.Second}, p.Next(2, retry.Retryable))
	assert.Equal(t, retry.Decision{Stop: true}, p.Next(3, retry.Retryable))
	assert.Equal(t, retry.Decision{Stop: true}, p.Next(1, retry.Ok))
	assert.Equal(t, retry.Decision{Stop: true}, p.Next(1, retry.Terminal))
}

func TestDo(t *testing.T) {
	ctx := context.Background()
	errServer := &retry.StatusError{StatusCode: http.StatusInternalServerError}

	t.Run("Succeeds on third attempt", func(t *testing.T) {
		rec := &recordSleep{}
		calls := 0
		got, err := retry.Do(ctx, retry.DefaultPolicy, rec.sleep, func(_ context.Context, n int) retry.Result[string] {
			calls++
			if n < 3 {
				return retry.Retry[string](errServer)
			}
			return retry.Success("ok")
		})

		require.NoError(t, err)
		assert.Equal(t, "ok", got)
		assert.Equal(t, 3, calls)
		assert.Equal(t, []time.Duration{2 * time.Second, 2 * time.Second}, rec.waits)
	})

	t.Run("Propagates last error after three failures", func(t *testing.T) {
		rec := &recordSleep{}
		calls := 0
		_, err := retry.Do(ctx, retry.DefaultPolicy, rec.sleep, func(_ context.Context, n int) retry.Result[string] {
			calls++
			return retry.Retry[string](&retry.StatusError{StatusCode: 500 + n})
		})

		require.Error(t, err)
		assert.Equal(t, 3, calls)
		assert.ErrorIs(t, err, retry.ErrExhausted)
		var statusErr *retry.StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, 503, statusErr.StatusCode)
		assert.Len(t, rec.waits, 2)
	})

	t.Run("Terminal stops immediately", func(t *testing.T) {
		rec := &recordSleep{}
		boom := errors.New("bad request")
		calls := 0
		_, err := retry.Do(ctx, retry.DefaultPolicy, rec.sleep, func(_ context.Context, _ int) retry.Result[int] {
			calls++
			return retry.Fail[int](boom)
		})

		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, retry.ErrExhausted)
		assert.Equal(t, 1, calls)
		assert.Empty(t, rec.waits)
	})

	t.Run("Cancelled sleep aborts", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := retry.Do(cctx, retry.DefaultPolicy, retry.Sleep, func(_ context.Context, _ int) retry.Result[int] {
			return retry.Retry[int](errServer)
		})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestClassifyHTTP(t *testing.T) {
	testCases := []struct {
		name string
		resp *http.Response
		err  error
		want retry.Kind
	}{
		{name: "200", resp: &http.Response{StatusCode: 200}, want: retry.Ok},
		{name: "400 is handed back", resp: &http.Response{StatusCode: 400}, want: retry.Ok},
		{name: "404 is handed back", resp: &http.Response{StatusCode: 404}, want: retry.Ok},
		{name: "429", resp: &http.Response{StatusCode: 429}, want: retry.Retryable},
		{name: "500", resp: &http.Response{StatusCode: 500}, want: retry.Retryable},
		{name: "503", resp: &http.Response{StatusCode: 503}, want: retry.Retryable},
		{name: "Network error", err: errors.New("connection refused"), want: retry.Retryable},
		{name: "Cancelled", err: context.Canceled, want: retry.Terminal},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, retry.ClassifyHTTP(tc.resp, tc.err))
		})
	}
}
