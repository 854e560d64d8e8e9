package checkout

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/realyassine/SouqFX/domain/catalog"
	"github.com/realyassine/SouqFX/domain/order"
	"github.com/realyassine/SouqFX/domain/shared"
	"github.com/realyassine/SouqFX/infrastructure/processing"
)

type fakeLedger struct {
	mu        sync.Mutex
	appends   []*order.Order
	records   []order.Record
	appendErr error
	histErr   error
}

func (f *fakeLedger) Append(ctx context.Context, o *order.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appendErr != nil {
		return f.appendErr
	}
	f.appends = append(f.appends, o)
	return nil
}

func (f *fakeLedger) History(ctx context.Context) ([]order.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.histErr != nil {
		return nil, f.histErr
	}
	return f.records, nil
}

func (f *fakeLedger) appended() []*order.Order {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*order.Order, len(f.appends))
	copy(out, f.appends)
	return out
}

type fakePublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func (f *fakePublisher) Publish(event shared.DomainEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

func (f *fakePublisher) Subscribe(string, shared.EventHandler) error   { return nil }
func (f *fakePublisher) Unsubscribe(string, shared.EventHandler) error { return nil }

func (f *fakePublisher) names() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	names := make([]string, len(f.events))
	for i, e := range f.events {
		names[i] = e.EventName()
	}
	return names
}

func trackerFixtures(t *testing.T) (*StatusTracker, *fakeLedger, *fakePublisher) {
	t.Helper()
	ledger := &fakeLedger{}
	publisher := &fakePublisher{}
	tracker, err := NewStatusTracker(ledger, publisher)
	require.NoError(t, err)
	return tracker, ledger, publisher
}

func trackedOrderFixture(t *testing.T) *order.Order {
	t.Helper()
	item, err := catalog.NewClothing(7, "Caftan", shared.MustMoney("1200.00"), "M", "Silk")
	require.NoError(t, err)
	return order.New("Amina", []catalog.Item{item})
}

func TestNewStatusTrackerValidation(t *testing.T) {
	_, err := NewStatusTracker(nil, &fakePublisher{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "order repository is required")

	_, err = NewStatusTracker(&fakeLedger{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "event publisher is required")
}

func TestTrackRegistersAndPublishesPlacement(t *testing.T) {
	tracker, _, publisher := trackerFixtures(t)
	o := trackedOrderFixture(t)

	tracker.Track(o)

	st, err := tracker.Status(o.ID())
	require.NoError(t, err)
	assert.Equal(t, StageQueued, st.Stage)
	assert.Equal(t, "Amina", st.Customer)
	assert.Equal(t, "1200.00", st.Total.StringFixed())

	assert.Equal(t, []string{"order.placed"}, publisher.names())

	tracker.Track(nil)
}

func TestObserverTransitions(t *testing.T) {
	tracker, _, _ := trackerFixtures(t)
	o := trackedOrderFixture(t)
	tracker.Track(o)

	tracker.OnStarted(o.ID())
	st, err := tracker.Status(o.ID())
	require.NoError(t, err)
	assert.Equal(t, StageStarted, st.Stage)

	tracker.OnProgress(o.ID(), 40)
	st, err = tracker.Status(o.ID())
	require.NoError(t, err)
	assert.Equal(t, StageProcessing, st.Stage)
	assert.Equal(t, 40, st.Progress)
}

func TestOnCompletedPublishesAndAppends(t *testing.T) {
	tracker, ledger, publisher := trackerFixtures(t)
	o := trackedOrderFixture(t)
	tracker.Track(o)

	require.True(t, o.ProcessPayment())
	tracker.OnCompleted(o.ID(), true, processing.MessageProcessed)

	st, err := tracker.Status(o.ID())
	require.NoError(t, err)
	assert.Equal(t, StageCompleted, st.Stage)
	assert.True(t, st.Success)
	assert.Equal(t, processing.MessageProcessed, st.Message)

	assert.Equal(t, []string{"order.placed", "order.paid"}, publisher.names())

	appended := ledger.appended()
	require.Len(t, appended, 1)
	assert.Same(t, o, appended[0])
}

func TestOnCompletedForUnknownOrder(t *testing.T) {
	tracker, ledger, publisher := trackerFixtures(t)

	tracker.OnCompleted(4242, true, processing.MessageProcessed)

	assert.Empty(t, ledger.appended())
	assert.Empty(t, publisher.names())
}

func TestCompletionSurvivesLedgerFailure(t *testing.T) {
	tracker, ledger, _ := trackerFixtures(t)
	ledger.appendErr = errors.New("disk full")

	o := trackedOrderFixture(t)
	tracker.Track(o)
	require.True(t, o.ProcessPayment())
	tracker.OnCompleted(o.ID(), true, processing.MessageProcessed)

	st, err := tracker.Status(o.ID())
	require.NoError(t, err)
	assert.Equal(t, StageCompleted, st.Stage)
	assert.True(t, st.Success)
}

func TestFailedCompletionSkipsLedger(t *testing.T) {
	tracker, ledger, publisher := trackerFixtures(t)

	o := trackedOrderFixture(t)
	tracker.Track(o)
	tracker.OnCompleted(o.ID(), false, processing.MessageFailed)

	st, err := tracker.Status(o.ID())
	require.NoError(t, err)
	assert.Equal(t, StageCompleted, st.Stage)
	assert.False(t, st.Success)
	assert.Empty(t, ledger.appended())
	assert.Equal(t, []string{"order.placed"}, publisher.names())
}

func TestDiscard(t *testing.T) {
	tracker, _, _ := trackerFixtures(t)
	o := trackedOrderFixture(t)
	tracker.Track(o)

	tracker.Discard(o.ID())

	_, err := tracker.Status(o.ID())
	require.Error(t, err)
	assert.ErrorIs(t, err, order.ErrOrderNotFound)

	_, err = tracker.Order(o.ID())
	require.Error(t, err)
}

func TestLiveOrdering(t *testing.T) {
	tracker, _, _ := trackerFixtures(t)

	first := trackedOrderFixture(t)
	second := trackedOrderFixture(t)
	tracker.Track(second)
	tracker.Track(first)

	live := tracker.Live()
	require.Len(t, live, 2)
	assert.Equal(t, first.ID(), live[0].OrderID)
	assert.Equal(t, second.ID(), live[1].OrderID)
	assert.True(t, live[0].OrderID < live[1].OrderID)
}

func TestStatusTimestamps(t *testing.T) {
	tracker, _, _ := trackerFixtures(t)
	o := trackedOrderFixture(t)
	tracker.Track(o)

	before, err := tracker.Status(o.ID())
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	tracker.OnStarted(o.ID())

	after, err := tracker.Status(o.ID())
	require.NoError(t, err)
	assert.True(t, after.UpdatedAt.After(before.UpdatedAt))
}
