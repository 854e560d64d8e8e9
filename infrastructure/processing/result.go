package processing

import (
	"context"
	"errors"
)

// Result is the handle returned by SubmitForResult. Await it once;
// the message channel carries a single value.
type Result struct {
	orderID int64
	ch      <-chan string
	cancel  context.CancelFunc
}

// OrderID returns the order this result belongs to.
func (r *Result) OrderID() int64 {
	return r.orderID
}

// Await blocks until the worker reports the outcome or ctx is done.
// On timeout or cancellation the queued work is abandoned so a worker
// does not settle an order nobody is waiting for.
func (r *Result) Await(ctx context.Context) (string, error) {
	select {
	case msg, ok := <-r.ch:
		if !ok {
			return "", ErrProcessorClosed
		}
		return msg, nil
	case <-ctx.Done():
		r.cancel()
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", ErrResultTimeout
		}
		return "", ctx.Err()
	}
}
