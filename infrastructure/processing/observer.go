package processing

// Observer receives processing lifecycle notifications. All three
// callbacks run on the dispatcher goroutine, one notification at a
// time, in the order the workers produced them. Implementations must
// not call back into the Processor from a callback.
type Observer interface {
	// OnStarted fires when a worker picks the order up.
	OnStarted(orderID int64)

	// OnProgress fires after each stage with the reached percentage,
	// from 0 to 100 in steps of 20.
	OnProgress(orderID int64, percent int)

	// OnCompleted fires once per order with the payment outcome.
	OnCompleted(orderID int64, success bool, message string)
}

type noteKind int

const (
	noteStarted noteKind = iota
	noteProgress
	noteCompleted
)

// notification is the dispatcher's wire format between workers and
// the observer.
type notification struct {
	kind    noteKind
	orderID int64
	percent int
	success bool
	message string
}

// notify hands a notification to the dispatcher. It blocks when the
// buffer is full so notifications are never dropped or reordered.
func (p *Processor) notify(n notification) {
	p.notes <- n
}

// dispatch is the single consumer of the notes channel. It re-reads
// the observer for every notification so SetObserver takes effect
// mid-stream.
func (p *Processor) dispatch() {
	defer close(p.dispatcherDone)

	for n := range p.notes {
		obs := p.observer()
		if obs == nil {
			continue
		}
		switch n.kind {
		case noteStarted:
			obs.OnStarted(n.orderID)
		case noteProgress:
			obs.OnProgress(n.orderID, n.percent)
		case noteCompleted:
			obs.OnCompleted(n.orderID, n.success, n.message)
		}
	}
}
