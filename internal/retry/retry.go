// Package retry runs an operation under a bounded attempt budget with a fixed
// delay between attempts. Each attempt reports an explicit Result instead of
// signalling retries through errors, so the policy can be tested without real
// timers.
package retry

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Kind classifies the outcome of one attempt.
type Kind int

const (
	// Ok ends the loop and returns the value.
	Ok Kind = iota
	// Retryable asks for another attempt if the budget allows.
	Retryable
	// Terminal ends the loop with the error.
	Terminal
)

func (k Kind) String() string {
	switch k {
	case Ok:
		return "ok"
	case Retryable:
		return "retryable"
	case Terminal:
		return "terminal"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ErrExhausted wraps the last error once every attempt was retryable.
var ErrExhausted = errors.New("retry: attempts exhausted")

// Result is the outcome of a single attempt.
type Result[T any] struct {
	Kind  Kind
	Value T
	Err   error
}

// Success returns an Ok result.
func Success[T any](v T) Result[T] { return Result[T]{Kind: Ok, Value: v} }

// Retry returns a Retryable result.
func Retry[T any](err error) Result[T] { return Result[T]{Kind: Retryable, Err: err} }

// Fail returns a Terminal result.
func Fail[T any](err error) Result[T] { return Result[T]{Kind: Terminal, Err: err} }

// Policy is the attempt budget.
type Policy struct {
	MaxAttempts int
	Delay       time.Duration
}

// DefaultPolicy makes three attempts two seconds apart.
var DefaultPolicy = Policy{MaxAttempts: 3, Delay: 2 * time.Second}

// Once makes a single attempt.
var Once = Policy{MaxAttempts: 1}

// Decision tells the loop what to do after an attempt.
type Decision struct {
	Stop bool
	Wait time.Duration
}

// Next decides what follows attempt number attempt (1-based) ending in kind.
func (p Policy) Next(attempt int, kind Kind) Decision {
	if kind != Retryable || attempt >= p.MaxAttempts {
		return Decision{Stop: true}
	}
	return Decision{Wait: p.Delay}
}

// Sleeper waits for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// Sleep is the real Sleeper.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Do calls attempt until it returns Ok or Terminal, or the policy budget is
// spent. attempt receives the 1-based attempt number. A nil sleep uses Sleep.
func Do[T any](ctx context.Context, p Policy, sleep Sleeper, attempt func(ctx context.Context, n int) Result[T]) (T, error) {
	if sleep == nil {
		sleep = Sleep
	}
	var zero T
	for n := 1; ; n++ {
		res := attempt(ctx, n)
		switch res.Kind {
		case Ok:
			return res.Value, nil
		case Terminal:
			return zero, res.Err
		}

		d := p.Next(n, res.Kind)
		if d.Stop {
			return zero, fmt.Errorf("%w after %d attempts: %w", ErrExhausted, n, res.Err)
		}
		if err := sleep(ctx, d.Wait); err != nil {
			return zero, fmt.Errorf("retry interrupted: %w", err)
		}
	}
}

// StatusError is a retryable HTTP status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http status %d", e.StatusCode)
	}
	return fmt.Sprintf("http status %d: %s", e.StatusCode, e.Body)
}

// ClassifyHTTP maps a response or transport error to a Kind. Transport
// errors, 5xx and 429 are retryable. Every other response is Ok and is handed
// back as-is, including 4xx, for the caller to inspect.
func ClassifyHTTP(resp *http.Response, err error) Kind {
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return Terminal
		}
		return Retryable
	}
	if resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests {
		return Retryable
	}
	return Ok
}
