// README: Lifecycle stage, cancellation, and payment tests with fake suspensions.
package lifecycle

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"ridecore/internal/modules/ride"
	"ridecore/internal/notify"
	"ridecore/internal/types"
)

// instantSleeper suspends nothing but still honors cancellation.
type instantSleeper struct{}

func (instantSleeper) Sleep(ctx context.Context, _ time.Duration) error { return ctx.Err() }

// blockingSleeper parks every stage until the run context is cancelled,
// simulating a cancel arriving mid-delay.
type blockingSleeper struct{ entered chan struct{} }

func (s *blockingSleeper) Sleep(ctx context.Context, _ time.Duration) error {
	select {
	case s.entered <- struct{}{}:
	default:
	}
	<-ctx.Done()
	return ctx.Err()
}

type fakeGeo struct {
	mu        sync.Mutex
	locations []string
}

func (g *fakeGeo) UpdateDriverLocation(_ context.Context, _, location string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.locations = append(g.locations, location)
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *fakeNotifier) Notify(_ context.Context, event notify.EventType, _ *ride.Record, _ string) {
	n.record("event:" + string(event))
}
func (n *fakeNotifier) NotifyDriver(_ context.Context, _, driverName string) {
	n.record("driver:" + driverName)
}
func (n *fakeNotifier) NotifyRider(_ context.Context, _, riderName string) {
	n.record("rider:" + riderName)
}
func (n *fakeNotifier) record(e string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, e)
}
func (n *fakeNotifier) snapshot() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.events))
	copy(out, n.events)
	return out
}

type fakeGateway struct {
	success   bool
	err       error
	blockCtx  bool
	processed int
}

func (g *fakeGateway) Process(ctx context.Context, _ ride.Snapshot, _ types.Money) (bool, error) {
	g.processed++
	if g.blockCtx {
		<-ctx.Done()
		return false, ctx.Err()
	}
	return g.success, g.err
}

func liveRecord(t *testing.T) *ride.Record {
	t.Helper()
	rec := ride.NewRecord("vivek", "A", "B")
	if err := rec.SetFare(types.Money{Amount: 50, Currency: "INR"}); err != nil {
		t.Fatal(err)
	}
	if err := rec.Assign("srinu"); err != nil {
		t.Fatal(err)
	}
	if err := rec.Transition(ride.StatusDriverOnTheWay); err != nil {
		t.Fatal(err)
	}
	return rec
}

func newTestDriver(rec *ride.Record, geo Geo, n Notifier, gw *fakeGateway, s Sleeper) *Driver {
	return NewDriver(rec, geo, n, gw, s, Timings{}, zap.NewNop())
}

func TestFullStageSequenceEndsPaid(t *testing.T) {
	rec := liveRecord(t)
	geo := &fakeGeo{}
	notifier := &fakeNotifier{}
	gw := &fakeGateway{success: true}
	d := newTestDriver(rec, geo, notifier, gw, instantSleeper{})

	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}

	if got := rec.Status(); got != ride.StatusPaid {
		t.Fatalf("final status = %s, want paid", got)
	}
	if rec.DriverName() == "" {
		t.Fatal("driver name empty after completion")
	}
	wantLocations := []string{"near_A_1", "near_A_2", "A", "midway_B_1", "midway_B_2", "B"}
	if len(geo.locations) != len(wantLocations) {
		t.Fatalf("locations = %v, want %v", geo.locations, wantLocations)
	}
	for i := range wantLocations {
		if geo.locations[i] != wantLocations[i] {
			t.Errorf("location[%d] = %s, want %s", i, geo.locations[i], wantLocations[i])
		}
	}
	events := notifier.snapshot()
	want := []string{"event:driver_arrived", "event:ride_completed", "driver:srinu", "rider:vivek"}
	if len(events) != len(want) {
		t.Fatalf("notifications = %v, want %v", events, want)
	}
	if gw.processed != 1 {
		t.Fatalf("gateway processed %d times", gw.processed)
	}
}

func TestStartRejectsRecordNotOnTheWay(t *testing.T) {
	rec := ride.NewRecord("vivek", "A", "B")
	d := newTestDriver(rec, &fakeGeo{}, &fakeNotifier{}, &fakeGateway{success: true}, instantSleeper{})

	if err := d.Start(context.Background()); !errors.Is(err, ErrNotLive) {
		t.Fatalf("want ErrNotLive, got %v", err)
	}
	if rec.Status() != ride.StatusPending {
		t.Fatalf("record mutated on rejected start: %s", rec.Status())
	}
}

func TestCancelInterruptsPendingStage(t *testing.T) {
	rec := liveRecord(t)
	notifier := &fakeNotifier{}
	gw := &fakeGateway{success: true}
	sleeper := &blockingSleeper{entered: make(chan struct{}, 1)}
	d := newTestDriver(rec, &fakeGeo{}, notifier, gw, sleeper)

	started := make(chan error, 1)
	go func() { started <- d.Start(context.Background()) }()

	// wait until the run parks in the first approach delay
	<-sleeper.entered
	if err := d.Cancel(context.Background()); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	select {
	case err := <-started:
		if err != nil {
			t.Fatalf("start returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("cancel did not interrupt the pending stage")
	}

	if got := rec.Status(); got != ride.StatusCancelled {
		t.Fatalf("status = %s, want cancelled", got)
	}
	if gw.processed != 0 {
		t.Fatal("payment ran for a cancelled ride")
	}
	// cancellation suppresses stage notifications; only the two cancel notices go out
	for _, e := range notifier.snapshot() {
		if e == "event:driver_arrived" || e == "event:ride_completed" {
			t.Fatalf("stage notification after cancel: %v", notifier.snapshot())
		}
	}
}

func TestCancelAfterCompletionRejected(t *testing.T) {
	rec := liveRecord(t)
	d := newTestDriver(rec, &fakeGeo{}, &fakeNotifier{}, &fakeGateway{success: true}, instantSleeper{})
	if err := d.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := d.Cancel(context.Background()); !errors.Is(err, ErrNotCancelable) {
		t.Fatalf("cancel after paid: want ErrNotCancelable, got %v", err)
	}
}

func TestPaymentFailureIsTerminal(t *testing.T) {
	rec := liveRecord(t)
	notifier := &fakeNotifier{}
	d := newTestDriver(rec, &fakeGeo{}, notifier, &fakeGateway{success: false}, instantSleeper{})

	if err := d.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := rec.Status(); got != ride.StatusPaymentFailed {
		t.Fatalf("status = %s, want payment_failed", got)
	}
}

func TestPaymentTimeoutFailsTheRecord(t *testing.T) {
	rec := liveRecord(t)
	gw := &fakeGateway{blockCtx: true}
	d := NewDriver(rec, &fakeGeo{}, &fakeNotifier{}, gw, instantSleeper{},
		Timings{PaymentTimeout: 5 * time.Millisecond}, zap.NewNop())

	if err := d.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := rec.Status(); got != ride.StatusPaymentFailed {
		t.Fatalf("status = %s, want payment_failed", got)
	}
}
