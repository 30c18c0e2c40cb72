package fallback

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/toumei/toumei/fingerprint"
	"github.com/toumei/toumei/log"
	"github.com/toumei/toumei/metrics"
)

// ErrExhausted is matched by errors.Is when every candidate failed.
var ErrExhausted = errors.New("all endpoints exhausted")

// ExhaustedError records why each candidate of a chain failed.
type ExhaustedError struct {
	Class    string
	Attempts int
	Errors   []error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("%s: %s after %d attempts", e.Class, ErrExhausted, e.Attempts)
}

// Is reports ErrExhausted as the sentinel.
func (e *ExhaustedError) Is(target error) bool {
	return target == ErrExhausted
}

// Unwrap exposes the per-candidate failures.
func (e *ExhaustedError) Unwrap() []error {
	return e.Errors
}

// Attempt performs one call against target with a freshly synthesized header set.
// Any returned error moves the chain to the next candidate.
type Attempt[T any] func(ctx context.Context, target string, headers http.Header) (T, error)

// Options configure one chain.
type Options struct {
	// Class labels logs and metrics, e.g. "oembed".
	Class string
	// Timeout bounds each attempt individually.
	Timeout time.Duration
	// Headers synthesizes the header set handed to each attempt. Defaults to fingerprint.Default.
	Headers *fingerprint.Synthesizer
}

// Try invokes attempt for each candidate in order and returns the first success
// together with the candidate that produced it. No candidate is retried.
func Try[T any](ctx context.Context, opts Options, candidates []Candidate, id string, attempt Attempt[T]) (T, Candidate, error) {
	var zero T

	synth := opts.Headers
	if synth == nil {
		synth = fingerprint.Default
	}

	exhausted := &ExhaustedError{Class: opts.Class}

	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			exhausted.Errors = append(exhausted.Errors, err)
			break
		}

		exhausted.Attempts++
		result, err := run(ctx, opts.Timeout, synth, c.URL(id), attempt)
		if err == nil {
			metrics.UpstreamAttempts.WithLabelValues(opts.Class, c.Name, metrics.OutcomeSuccess).Inc()
			return result, c, nil
		}

		metrics.UpstreamAttempts.WithLabelValues(opts.Class, c.Name, metrics.OutcomeFailure).Inc()
		log.WithFields(log.Fields{
			"class":     opts.Class,
			"candidate": c.Name,
			"id":        id,
		}).Debugf("candidate failed: %v", err)

		exhausted.Errors = append(exhausted.Errors, fmt.Errorf("%s: %w", c.Name, err))
	}

	metrics.ExhaustedChains.WithLabelValues(opts.Class).Inc()
	return zero, Candidate{}, exhausted
}

func run[T any](ctx context.Context, timeout time.Duration, synth *fingerprint.Synthesizer, target string, attempt Attempt[T]) (T, error) {
	var zero T

	headers, err := synth.Headers()
	if err != nil {
		return zero, err
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	return attempt(ctx, target, headers)
}
