// Package processing runs checkout orders through a fixed worker pool.
// Progress and completion notifications are funneled through a single
// dispatcher goroutine, so an observer always sees them in the order
// they were produced.
package processing

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/realyassine/SouqFX/config"
	"github.com/realyassine/SouqFX/domain/order"
	"github.com/realyassine/SouqFX/pkg/logger"
	"github.com/realyassine/SouqFX/pkg/metrics"
)

var (
	// ErrNilOrder is returned when a nil order is submitted.
	ErrNilOrder = errors.New("order is required")

	// ErrProcessorClosed is returned once Shutdown has begun.
	ErrProcessorClosed = errors.New("order processor is shut down")

	// ErrResultTimeout is returned by Result.Await when the deadline
	// passes before the worker finishes.
	ErrResultTimeout = errors.New("timed out waiting for processing result")
)

// Completion messages delivered through Observer.OnCompleted.
const (
	MessageProcessed   = "Order processed successfully!"
	MessageFailed      = "Payment failed!"
	MessageInterrupted = "Processing interrupted!"
)

// noteBuffer sizes the dispatcher queue. Workers block on a full
// buffer rather than drop notifications.
const noteBuffer = 128

// Config controls the worker pool.
type Config struct {
	PoolSize      int
	QueueSize     int
	StepDelay     time.Duration
	ResultDelay   time.Duration
	ShutdownGrace time.Duration
}

// DefaultConfig mirrors the production defaults.
var DefaultConfig = Config{
	PoolSize:      2,
	QueueSize:     16,
	StepDelay:     500 * time.Millisecond,
	ResultDelay:   3 * time.Second,
	ShutdownGrace: 5 * time.Second,
}

// FromConfig converts the application processor settings.
func FromConfig(pc config.ProcessorConfig) Config {
	return Config{
		PoolSize:      pc.PoolSize,
		QueueSize:     pc.QueueSize,
		StepDelay:     pc.StepDelay,
		ResultDelay:   pc.ResultDelay,
		ShutdownGrace: pc.ShutdownGrace,
	}
}

// task is one unit of work. A nil result channel selects the staged
// path with observer notifications; a non-nil channel selects the
// express path that reports through the channel instead.
type task struct {
	order  *order.Order
	result chan string
	ctx    context.Context
}

// Processor owns the worker pool and the notification dispatcher.
type Processor struct {
	cfg Config

	tasks chan task
	notes chan notification
	quit  chan struct{}

	obsMu sync.RWMutex
	obs   Observer

	intakeMu sync.RWMutex
	closed   bool

	inFlight atomic.Int64

	workers        sync.WaitGroup
	dispatcherDone chan struct{}
	shutdownOnce   sync.Once
	shutdownDone   chan struct{}
}

// New validates the configuration and starts the pool.
func New(cfg Config) (*Processor, error) {
	if cfg.PoolSize <= 0 {
		return nil, fmt.Errorf("pool size must be positive")
	}
	if cfg.QueueSize <= 0 {
		return nil, fmt.Errorf("queue size must be positive")
	}
	if cfg.StepDelay <= 0 {
		return nil, fmt.Errorf("step delay must be positive")
	}
	if cfg.ResultDelay <= 0 {
		return nil, fmt.Errorf("result delay must be positive")
	}
	if cfg.ShutdownGrace <= 0 {
		return nil, fmt.Errorf("shutdown grace must be positive")
	}

	p := &Processor{
		cfg:            cfg,
		tasks:          make(chan task, cfg.QueueSize),
		notes:          make(chan notification, noteBuffer),
		quit:           make(chan struct{}),
		dispatcherDone: make(chan struct{}),
		shutdownDone:   make(chan struct{}),
	}

	go p.dispatch()

	p.workers.Add(cfg.PoolSize)
	for i := 1; i <= cfg.PoolSize; i++ {
		go p.worker(i)
	}

	logger.Info("order processor started",
		zap.Int("pool_size", cfg.PoolSize),
		zap.Int("queue_size", cfg.QueueSize))

	return p, nil
}

// SetObserver installs the observer receiving lifecycle notifications.
// Passing nil disables notifications.
func (p *Processor) SetObserver(obs Observer) {
	p.obsMu.Lock()
	p.obs = obs
	p.obsMu.Unlock()
}

func (p *Processor) observer() Observer {
	p.obsMu.RLock()
	defer p.obsMu.RUnlock()
	return p.obs
}

// Submit queues an order for staged processing. It blocks while the
// queue is full until ctx is done.
func (p *Processor) Submit(ctx context.Context, o *order.Order) error {
	if o == nil {
		return ErrNilOrder
	}
	return p.enqueue(ctx, task{order: o})
}

// SubmitForResult queues an order on the express path and returns a
// Result to await. Cancelling ctx abandons the order if a worker has
// not finished it yet.
func (p *Processor) SubmitForResult(ctx context.Context, o *order.Order) (*Result, error) {
	if o == nil {
		return nil, ErrNilOrder
	}

	taskCtx, cancel := context.WithCancel(ctx)
	t := task{order: o, result: make(chan string, 1), ctx: taskCtx}
	if err := p.enqueue(ctx, t); err != nil {
		cancel()
		return nil, err
	}

	return &Result{orderID: o.ID(), ch: t.result, cancel: cancel}, nil
}

func (p *Processor) enqueue(ctx context.Context, t task) error {
	p.intakeMu.RLock()
	defer p.intakeMu.RUnlock()

	if p.closed {
		return ErrProcessorClosed
	}

	select {
	case p.tasks <- t:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shutdown stops intake, lets queued and running orders finish within
// the grace period, then terminates whatever remains. It is safe to
// call more than once; every call returns after shutdown completes.
func (p *Processor) Shutdown() {
	p.shutdownOnce.Do(func() {
		p.intakeMu.Lock()
		p.closed = true
		close(p.tasks)
		p.intakeMu.Unlock()

		logger.Info("order processor shutting down",
			zap.Duration("grace", p.cfg.ShutdownGrace),
			zap.Int("queued", len(p.tasks)))

		drained := make(chan struct{})
		go func() {
			p.workers.Wait()
			close(drained)
		}()

		select {
		case <-drained:
			logger.Info("order processor drained")
		case <-time.After(p.cfg.ShutdownGrace):
			logger.Warn("shutdown grace elapsed, terminating remaining work")
			close(p.quit)
			<-drained
		}

		close(p.notes)
		<-p.dispatcherDone
		close(p.shutdownDone)
	})

	<-p.shutdownDone
}

// InFlight reports how many orders workers are processing right now.
func (p *Processor) InFlight() int {
	return int(p.inFlight.Load())
}

// Pending reports how many orders are queued but not yet picked up.
func (p *Processor) Pending() int {
	return len(p.tasks)
}

// Closed reports whether Shutdown has begun.
func (p *Processor) Closed() bool {
	p.intakeMu.RLock()
	defer p.intakeMu.RUnlock()
	return p.closed
}

func (p *Processor) worker(id int) {
	defer p.workers.Done()

	logger.Debug("order worker started", zap.Int("worker", id))
	for t := range p.tasks {
		select {
		case <-p.quit:
			p.drop(t)
			continue
		default:
		}

		if t.result != nil {
			p.runForResult(t)
		} else {
			p.runStaged(t)
		}
	}
	logger.Debug("order worker stopped", zap.Int("worker", id))
}

// runStaged walks the order through the progress stages. Each stage
// waits StepDelay and then reports the reached percentage.
func (p *Processor) runStaged(t task) {
	id := t.order.ID()
	p.inFlight.Add(1)
	metrics.ProcessingStarted()
	defer func() {
		p.inFlight.Add(-1)
		metrics.ProcessingFinished()
	}()

	logger.Info("processing order",
		zap.Int64("order_id", id),
		zap.Int("items", t.order.ItemCount()))
	p.notify(notification{kind: noteStarted, orderID: id})

	for percent := 0; percent <= 100; percent += 20 {
		select {
		case <-time.After(p.cfg.StepDelay):
		case <-p.quit:
			metrics.OrderProcessed("interrupted")
			p.notify(notification{kind: noteCompleted, orderID: id, message: MessageInterrupted})
			return
		}
		p.notify(notification{kind: noteProgress, orderID: id, percent: percent})
	}

	if t.order.ProcessPayment() {
		metrics.OrderProcessed("success")
		p.notify(notification{kind: noteCompleted, orderID: id, success: true, message: MessageProcessed})
		return
	}

	metrics.OrderProcessed("failure")
	p.notify(notification{kind: noteCompleted, orderID: id, message: MessageFailed})
}

// runForResult settles the order after ResultDelay and reports through
// the task's result channel instead of the observer.
func (p *Processor) runForResult(t task) {
	id := t.order.ID()
	p.inFlight.Add(1)
	metrics.ProcessingStarted()
	defer func() {
		p.inFlight.Add(-1)
		metrics.ProcessingFinished()
	}()

	logger.Info("processing express order", zap.Int64("order_id", id))

	select {
	case <-time.After(p.cfg.ResultDelay):
	case <-t.ctx.Done():
		metrics.OrderProcessed("cancelled")
		logger.Info("express order abandoned",
			zap.Int64("order_id", id),
			zap.Error(t.ctx.Err()))
		close(t.result)
		return
	case <-p.quit:
		metrics.OrderProcessed("interrupted")
		close(t.result)
		return
	}

	var msg string
	if t.order.ProcessPayment() {
		metrics.OrderProcessed("success")
		msg = fmt.Sprintf("Order #%d confirmed! Total: %s", id, t.order.Total())
	} else {
		metrics.OrderProcessed("failure")
		msg = fmt.Sprintf("Order #%d failed!", id)
	}

	t.result <- msg
	close(t.result)
}

// drop discards a task that was still queued when the pool terminated.
func (p *Processor) drop(t task) {
	metrics.OrderDropped()
	logger.Warn("dropping queued order on shutdown",
		zap.Int64("order_id", t.order.ID()))
	if t.result != nil {
		close(t.result)
	}
}
