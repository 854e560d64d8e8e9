// Package events provides the in-memory domain event bus.
package events

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/realyassine/SouqFX/domain/shared"
	"github.com/realyassine/SouqFX/pkg/logger"
)

// Bus is a synchronous in-memory event bus. Handlers run on the
// publishing goroutine. A failing handler is logged and the remaining
// handlers still run.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]shared.EventHandler
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[string][]shared.EventHandler),
	}
}

// Publish delivers the event to every handler subscribed to its name.
func (b *Bus) Publish(event shared.DomainEvent) error {
	if err := shared.ValidateEvent(event); err != nil {
		return err
	}

	b.mu.RLock()
	registered := b.handlers[event.EventName()]
	handlers := make([]shared.EventHandler, len(registered))
	copy(handlers, registered)
	b.mu.RUnlock()

	if len(handlers) == 0 {
		logger.Debug("no handlers registered for event",
			zap.String("event", event.EventName()),
			zap.String("aggregate_id", event.GetAggregateID()))
		return nil
	}

	for _, handler := range handlers {
		if err := handler.Handle(event); err != nil {
			logger.Warn("event handler failed",
				zap.String("event", event.EventName()),
				zap.String("handler", handler.Name()),
				zap.String("aggregate_id", event.GetAggregateID()),
				zap.Error(err))
		}
	}

	return nil
}

// Subscribe registers a handler for an event name. Handler names must
// be unique per event name.
func (b *Bus) Subscribe(eventName string, handler shared.EventHandler) error {
	if eventName == "" {
		return fmt.Errorf("event name cannot be empty")
	}
	if handler == nil {
		return fmt.Errorf("handler cannot be nil")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, h := range b.handlers[eventName] {
		if h.Name() == handler.Name() {
			return fmt.Errorf("handler %s already subscribed to %s", handler.Name(), eventName)
		}
	}

	b.handlers[eventName] = append(b.handlers[eventName], handler)
	return nil
}

// Unsubscribe removes a handler by name. Unknown handlers are ignored.
func (b *Bus) Unsubscribe(eventName string, handler shared.EventHandler) error {
	if handler == nil {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	handlers, exists := b.handlers[eventName]
	if !exists {
		return nil
	}

	for i, h := range handlers {
		if h.Name() == handler.Name() {
			b.handlers[eventName] = append(handlers[:i], handlers[i+1:]...)
			return nil
		}
	}

	return nil
}

var _ shared.DomainEventPublisher = (*Bus)(nil)

// LoggingHandler writes every event it receives to the application log.
// The app subscribes it to the order events so placements and payments
// show up in operational logs.
type LoggingHandler struct{}

// NewLoggingHandler creates the handler.
func NewLoggingHandler() *LoggingHandler {
	return &LoggingHandler{}
}

// Handle logs the event.
func (h *LoggingHandler) Handle(event shared.DomainEvent) error {
	logger.Info("domain event",
		zap.String("event", event.EventName()),
		zap.String("aggregate_id", event.GetAggregateID()),
		zap.Time("occurred_on", event.OccurredOn()))
	return nil
}

// Name identifies the handler on the bus.
func (h *LoggingHandler) Name() string {
	return "logging-handler"
}
