// Package executor bridges blocking store calls onto a bounded worker pool so
// request handlers never wait on store I/O directly. Each dispatched call is
// exposed to the caller as a single-resolution future; the call itself runs to
// completion even if the caller abandons it, so connection leases held inside
// the call are always released.
package executor

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/poketeam/pokedex-service/internal/domain"
	"github.com/poketeam/pokedex-service/internal/observability"
)

// Config holds worker pool settings.
type Config struct {
	// Workers is the number of worker goroutines.
	Workers int

	// QueueSize bounds the number of tasks waiting for a worker.
	QueueSize int

	// SubmitTimeout is how long Submit waits for queue space before
	// resolving the future with domain.ErrPoolExhausted.
	SubmitTimeout time.Duration

	// TaskTimeout bounds each dispatched call independently of the
	// caller's context, so a stuck store cannot pin a worker forever.
	TaskTimeout time.Duration

	// CaptureStacks enables stack capture on recovered panics. Enabled in
	// Development only; the trace is rendered to API callers there.
	CaptureStacks bool

	// Metrics receives dispatch, rejection, and panic counts. May be nil.
	Metrics *observability.Metrics
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Workers:       8,
		QueueSize:     64,
		SubmitTimeout: 5 * time.Second,
		TaskTimeout:   30 * time.Second,
	}
}

// Pool is a bounded worker pool for blocking calls.
type Pool struct {
	tasks         chan func()
	done          chan struct{}
	closeOnce     sync.Once
	wg            sync.WaitGroup
	submitTimeout time.Duration
	taskTimeout   time.Duration
	captureStacks bool
	metrics       *observability.Metrics
	logger        zerolog.Logger
}

// New creates a Pool and starts its workers.
func New(cfg Config, logger zerolog.Logger) *Pool {
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultConfig().Workers
	}
	if cfg.QueueSize < 0 {
		cfg.QueueSize = 0
	}
	if cfg.SubmitTimeout <= 0 {
		cfg.SubmitTimeout = DefaultConfig().SubmitTimeout
	}
	if cfg.TaskTimeout <= 0 {
		cfg.TaskTimeout = DefaultConfig().TaskTimeout
	}

	p := &Pool{
		tasks:         make(chan func(), cfg.QueueSize),
		done:          make(chan struct{}),
		submitTimeout: cfg.SubmitTimeout,
		taskTimeout:   cfg.TaskTimeout,
		captureStacks: cfg.CaptureStacks,
		metrics:       cfg.Metrics,
		logger:        logger.With().Str("component", "executor").Logger(),
	}

	p.wg.Add(cfg.Workers)
	for i := 0; i < cfg.Workers; i++ {
		go p.worker()
	}

	p.logger.Info().
		Int("workers", cfg.Workers).
		Int("queue_size", cfg.QueueSize).
		Msg("worker pool started")

	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case task := <-p.tasks:
			task()
		case <-p.done:
			// Drain queued tasks so every accepted future resolves.
			for {
				select {
				case task := <-p.tasks:
					task()
				default:
					return
				}
			}
		}
	}
}

// Close stops accepting tasks and waits for in-flight and queued tasks to
// finish.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		close(p.done)
	})
	p.wg.Wait()
}

// Future is the pending result of a dispatched call. It resolves exactly
// once.
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

func (f *Future[T]) resolve(value T, err error) {
	f.value = value
	f.err = err
	close(f.done)
}

// Await blocks until the future resolves or ctx is done. Abandoning the wait
// does not cancel the dispatched call: it still runs to completion on its
// worker and resolves the future.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, fmt.Errorf("await task result: %w", ctx.Err())
	}
}

// Submit dispatches fn onto the pool and returns its future. The returned
// future is always resolved: with fn's result, with domain.ErrPoolExhausted
// when no queue slot frees up in time, with domain.ErrConnection when the
// caller's context ends before dispatch, or with a *domain.PanicError if fn
// panics. fn runs under a context detached from the caller's cancellation,
// bounded only by the pool's task timeout, and its error is passed through
// unwrapped so the causal chain survives the pool boundary.
func Submit[T any](p *Pool, ctx context.Context, fn func(context.Context) (T, error)) *Future[T] {
	f := newFuture[T]()
	var zero T

	run := func() {
		taskCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.taskTimeout)
		defer cancel()

		defer func() {
			if r := recover(); r != nil {
				perr := &domain.PanicError{Value: r}
				if p.captureStacks {
					perr.Stack = string(debug.Stack())
				}
				if p.metrics != nil {
					p.metrics.RecordTaskPanic()
				}
				p.logger.Error().
					Interface("panic", r).
					Msg("recovered panic in dispatched task")
				f.resolve(zero, perr)
			}
		}()

		value, err := fn(taskCtx)
		f.resolve(value, err)
	}

	timer := time.NewTimer(p.submitTimeout)
	defer timer.Stop()

	select {
	case p.tasks <- run:
		if p.metrics != nil {
			p.metrics.RecordTaskDispatched()
		}
	case <-p.done:
		f.resolve(zero, fmt.Errorf("submit task: pool closed: %w", domain.ErrInternal))
	case <-ctx.Done():
		// The caller gave up before a queue slot freed; that is not pool
		// saturation, so it classifies like an abandoned lease acquire.
		if p.metrics != nil {
			p.metrics.RecordTaskRejected()
		}
		f.resolve(zero, fmt.Errorf("submit task: %w: %w", ctx.Err(), domain.ErrConnection))
	case <-timer.C:
		if p.metrics != nil {
			p.metrics.RecordTaskRejected()
		}
		p.logger.Warn().
			Dur("submit_timeout", p.submitTimeout).
			Msg("worker pool saturated, task rejected")
		f.resolve(zero, fmt.Errorf("submit task: no worker available within %s: %w", p.submitTimeout, domain.ErrPoolExhausted))
	}

	return f
}
