package courier

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Client implements the Dispatcher interface. It orchestrates the
// idempotency ledger, the admission controller, the per-provider circuit
// breakers, and the pending queue around an ordered list of providers.
// All methods are safe for concurrent use.
type Client struct {
	config    Config
	providers []Provider
	breakers  *CircuitBreakerRegistry
	limiter   *RateLimiter
	ledger    *Ledger
	queue     *PendingQueue
	retrier   *Retrier
	logger    Logger
	tracer    trace.Tracer

	mu       sync.RWMutex
	closed   bool
	lastGood int

	draining atomic.Bool
}

// New creates a dispatch client over the given providers. Provider order
// defines fallback priority; handles are indices into the list, issued
// here at construction. The provider list must not be empty.
func New(providers []Provider, opts ...Option) (*Client, error) {
	if len(providers) == 0 {
		return nil, NewConfigurationError("providers", "at least one provider is required")
	}

	config := DefaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	names := make([]string, len(providers))
	for i, p := range providers {
		if p == nil {
			return nil, NewConfigurationError("providers", fmt.Sprintf("provider at index %d is nil", i))
		}
		names[i] = p.Name()
	}

	logger := config.Logger
	client := &Client{
		config:    config,
		providers: providers,
		breakers: NewCircuitBreakerRegistry(names, config.CircuitBreakerThreshold,
			config.CircuitBreakerTimeout, config.CircuitBreakerHalfOpenAttempts, logger),
		limiter: NewRateLimiter(config.MaxRequestsPerWindow, config.RateLimitWindow, logger),
		ledger:  NewLedger(),
		queue:   NewPendingQueue(),
		retrier: NewRetrier(config.MaxRetries, config.InitialRetryDelay, logger),
		logger:  logger,
		tracer:  otel.Tracer("github.com/lattiq/courier"),
	}

	return client, nil
}

// Send submits a task for delivery.
//
// Duplicates of a previously submitted id return immediately with a result
// marked Duplicate carrying the id's current status; no provider is
// contacted. Tasks denied admission are queued with status pending, and the
// call blocks until the drain loop delivers the task; the wait, not the
// delivery, may be abandoned via ctx. Admitted tasks are delivered inline
// on the caller's goroutine.
func (c *Client) Send(ctx context.Context, task *Task) (*SendResult, error) {
	ctx, span := c.tracer.Start(ctx, "courier.Client.Send")
	defer span.End()

	c.mu.RLock()
	if c.closed {
		c.mu.RUnlock()
		span.RecordError(ErrClientClosed)
		span.SetStatus(codes.Error, ErrClientClosed.Error())
		return nil, ErrClientClosed
	}
	c.mu.RUnlock()

	if err := task.Validate(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation failed")
		return nil, err
	}

	span.SetAttributes(
		attribute.String("courier.task_id", task.ID),
		attribute.String("courier.recipient", task.Recipient),
	)

	if c.ledger.CheckAndMark(task.ID) {
		status, _ := c.ledger.GetStatus(task.ID)
		c.logger.Log(fmt.Sprintf("duplicate submission for task %s, current status: %s", task.ID, status))
		span.SetAttributes(attribute.Bool("courier.duplicate", true))
		span.SetStatus(codes.Ok, "duplicate submission")
		return &SendResult{Duplicate: true, Status: status}, nil
	}

	if !c.limiter.TryAdmit() {
		c.ledger.SetStatus(task.ID, StatusPending)
		c.logger.Log(fmt.Sprintf("rate limited, task %s queued", task.ID))
		entry := c.queue.Push(task)
		c.triggerDrain()

		span.SetAttributes(attribute.Bool("courier.queued", true))
		select {
		case out := <-entry.done:
			c.finishSpan(span, out.result, out.err)
			return out.result, out.err
		case <-ctx.Done():
			span.RecordError(ctx.Err())
			span.SetStatus(codes.Error, "caller abandoned queued task")
			return nil, ctx.Err()
		}
	}

	c.ledger.SetStatus(task.ID, StatusProcessing)
	result, err := c.deliver(ctx, task)
	c.finishSpan(span, result, err)
	return result, err
}

// StatusOf returns the lifecycle state recorded for a task id and whether
// the id is known.
func (c *Client) StatusOf(id string) (Status, bool) {
	return c.ledger.GetStatus(id)
}

// Sweep removes ledger entries for tasks that reached a terminal state
// longer than the configured idempotency window ago, returning the number
// removed. Housekeeping only; the client never sweeps automatically, so
// swept ids become submittable again.
func (c *Client) Sweep() int {
	return c.ledger.Sweep(c.config.IdempotencyWindow)
}

// QueueDepth returns the number of tasks currently awaiting admission.
func (c *Client) QueueDepth() int {
	return c.queue.Len()
}

// Close closes the client. Tasks still in the pending queue are rejected
// with ErrClientClosed.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	for entry := c.queue.Pop(); entry != nil; entry = c.queue.Pop() {
		entry.publish(nil, ErrClientClosed)
	}
	return nil
}

// deliver runs the provider fallback loop for an admitted task, starting
// at the index of the last successful provider and wrapping across the
// whole list. The first success ends the task; exhausting every provider
// fails it. A drain pass is triggered before returning either way, so
// capacity freed by this attempt's admission slot is considered
// immediately.
func (c *Client) deliver(ctx context.Context, task *Task) (*SendResult, error) {
	defer c.triggerDrain()

	c.mu.RLock()
	start := c.lastGood
	c.mu.RUnlock()

	n := len(c.providers)
	var lastErr error
	for i := 0; i < n; i++ {
		handle := (start + i) % n
		provider := c.providers[handle]

		if c.breakers.IsBlocking(handle) {
			c.logger.Log(fmt.Sprintf("skipping provider %s for task %s: circuit open", provider.Name(), task.ID))
			lastErr = &CircuitOpenError{Provider: provider.Name()}
			continue
		}

		if i > 0 {
			c.logger.Log(fmt.Sprintf("falling back to provider %s for task %s", provider.Name(), task.ID))
		}

		var result *SendResult
		err := c.retrier.Execute(func() error {
			res, sendErr := provider.Send(ctx, task)
			if sendErr != nil {
				return sendErr
			}
			result = res
			return nil
		})
		if err == nil {
			c.breakers.RecordSuccess(handle)
			c.ledger.SetStatus(task.ID, StatusSent)
			c.setLastGood(handle)
			c.logger.Log(fmt.Sprintf("task %s sent via provider %s", task.ID, provider.Name()))

			if result == nil {
				result = &SendResult{Provider: provider.Name(), Timestamp: time.Now()}
			}
			result.Status = StatusSent
			return result, nil
		}

		c.breakers.RecordFailure(handle)
		lastErr = err
	}

	c.ledger.SetStatus(task.ID, StatusFailed)
	aggErr := &AllProvidersFailedError{TaskID: task.ID, Cause: lastErr}
	c.logger.Error(aggErr.Error())
	return nil, aggErr
}

// triggerDrain starts a drain pass unless one is already active.
// Re-entrant triggers while a pass is running are no-ops; there is never
// more than one concurrently active drain loop.
func (c *Client) triggerDrain() {
	if !c.draining.CompareAndSwap(false, true) {
		return
	}
	go c.drainLoop()
}

// drainLoop processes the pending queue opportunistically: stop when the
// queue is empty, re-arm after one window length when admission is denied,
// otherwise pop the head and run the full delivery logic, publishing the
// outcome to the original caller.
func (c *Client) drainLoop() {
	for {
		for {
			c.mu.RLock()
			closed := c.closed
			c.mu.RUnlock()
			if closed {
				for entry := c.queue.Pop(); entry != nil; entry = c.queue.Pop() {
					entry.publish(nil, ErrClientClosed)
				}
				c.draining.Store(false)
				return
			}

			if c.queue.Len() == 0 {
				break
			}

			if !c.limiter.TryAdmit() {
				c.logger.Log("admission denied while draining, retrying after window")
				time.AfterFunc(c.config.RateLimitWindow, c.triggerDrain)
				c.draining.Store(false)
				return
			}

			entry := c.queue.Pop()
			if entry == nil {
				break
			}

			c.ledger.SetStatus(entry.task.ID, StatusProcessing)
			result, err := c.deliver(context.Background(), entry.task)
			entry.publish(result, err)
		}

		// Release the flag, then re-check: an entry pushed between the
		// emptiness check and the release would otherwise be stranded
		// until the next trigger.
		c.draining.Store(false)
		if c.queue.Len() == 0 {
			return
		}
		if !c.draining.CompareAndSwap(false, true) {
			return
		}
	}
}

func (c *Client) setLastGood(handle int) {
	c.mu.Lock()
	c.lastGood = handle
	c.mu.Unlock()
}

func (c *Client) finishSpan(span trace.Span, result *SendResult, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "send failed")
		return
	}
	if result != nil {
		span.SetAttributes(
			attribute.String("courier.message_id", result.MessageID),
			attribute.String("courier.provider", result.Provider),
			attribute.String("courier.status", result.Status.String()),
		)
	}
	span.SetStatus(codes.Ok, "task sent")
}

var _ Dispatcher = (*Client)(nil)
