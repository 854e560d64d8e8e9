package shared

// AggregateRoot is the entry point of an aggregate. It maintains the
// aggregate's invariants and records the domain events its mutations
// produce. Identity is exposed by each aggregate with its own typed ID
// accessor; events reference it as a string through GetAggregateID.
type AggregateRoot interface {
	// PullEvents returns the recorded events and clears the buffer.
	// The caller publishes them after the triggering operation succeeds.
	PullEvents() []DomainEvent
}
