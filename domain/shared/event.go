package shared

import (
	"fmt"
	"time"
)

// DomainEvent is a fact recorded by an aggregate. Aggregates collect
// events while mutating; the application layer pulls and publishes them.
type DomainEvent interface {
	EventName() string
	OccurredOn() time.Time
	GetAggregateID() string
}

// DomainEventPublisher dispatches events to subscribed handlers.
type DomainEventPublisher interface {
	Publish(event DomainEvent) error
	Subscribe(eventName string, handler EventHandler) error
	Unsubscribe(eventName string, handler EventHandler) error
}

// EventHandler reacts to one kind of event. Name disambiguates
// handlers during subscription and error reporting.
type EventHandler interface {
	Handle(event DomainEvent) error
	Name() string
}

// ValidateEvent rejects events missing the fields every event must carry.
func ValidateEvent(event DomainEvent) error {
	if event == nil {
		return fmt.Errorf("event cannot be nil")
	}

	if event.EventName() == "" {
		return fmt.Errorf("event name cannot be empty")
	}

	if event.GetAggregateID() == "" {
		return fmt.Errorf("aggregate ID cannot be empty")
	}

	if event.OccurredOn().IsZero() {
		return fmt.Errorf("occurred on time cannot be zero")
	}

	return nil
}

// FuncHandler adapts a plain function to the EventHandler interface.
type FuncHandler struct {
	name string
	fn   func(DomainEvent) error
}

// NewFuncHandler wraps fn under the given name.
func NewFuncHandler(name string, fn func(DomainEvent) error) *FuncHandler {
	if name == "" {
		name = fmt.Sprintf("func-handler-%d", time.Now().UnixNano())
	}
	return &FuncHandler{
		name: name,
		fn:   fn,
	}
}

func (h *FuncHandler) Handle(event DomainEvent) error {
	return h.fn(event)
}

func (h *FuncHandler) Name() string {
	return h.name
}
