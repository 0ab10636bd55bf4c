// README: Strategy and orchestrator tests.
package allocation

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"

	"ridecore/internal/modules/ride"
)

type stubCandidates struct{ drivers []string }

func (s stubCandidates) AvailableDrivers(_ context.Context) []string { return s.drivers }

type stubRatings struct {
	name string
	ok   bool
}

func (s stubRatings) TopRated(_ context.Context) (string, bool) { return s.name, s.ok }

type countingStrategy struct {
	calls  int
	driver string
	ok     bool
}

func (s *countingStrategy) Match(_ context.Context, _ *ride.Record) (string, bool) {
	s.calls++
	return s.driver, s.ok
}

type captureDriverNotifier struct{ messages []string }

func (n *captureDriverNotifier) NotifyDriver(_ context.Context, message, driverName string) {
	n.messages = append(n.messages, driverName+":"+message)
}

func TestNearestDriverPrefersCandidatesThenFallback(t *testing.T) {
	ctx := context.Background()
	rec := ride.NewRecord("vivek", "A", "B")

	if name, ok := (NearestDriver{Source: stubCandidates{drivers: []string{"srinu", "raju"}}}).Match(ctx, rec); !ok || name != "srinu" {
		t.Fatalf("with candidates: got %q/%v", name, ok)
	}
	if name, ok := (NearestDriver{Source: stubCandidates{}, Fallback: "Alice"}).Match(ctx, rec); !ok || name != "Alice" {
		t.Fatalf("fallback: got %q/%v", name, ok)
	}
	if _, ok := (NearestDriver{}).Match(ctx, rec); ok {
		t.Fatal("empty strategy confirmed a match")
	}
}

func TestHighestRated(t *testing.T) {
	ctx := context.Background()
	rec := ride.NewRecord("vivek", "A", "B")

	if name, ok := (HighestRated{Source: stubRatings{name: "raju", ok: true}}).Match(ctx, rec); !ok || name != "raju" {
		t.Fatalf("rated: got %q/%v", name, ok)
	}
	if name, ok := (HighestRated{Source: stubRatings{}, Fallback: "Bob"}).Match(ctx, rec); !ok || name != "Bob" {
		t.Fatalf("fallback: got %q/%v", name, ok)
	}
}

func TestAllocateConfirmsAndNotifiesDriver(t *testing.T) {
	strategy := &countingStrategy{driver: "srinu", ok: true}
	notifier := &captureDriverNotifier{}
	o := NewOrchestrator(strategy, notifier, zap.NewNop())
	rec := ride.NewRecord("vivek", "A", "B")

	o.Allocate(context.Background(), rec)

	if strategy.calls != 1 {
		t.Fatalf("strategy called %d times, want exactly 1", strategy.calls)
	}
	if rec.Status() != ride.StatusConfirmed || rec.DriverName() != "srinu" {
		t.Fatalf("record = %s/%q, want confirmed/srinu", rec.Status(), rec.DriverName())
	}
	if len(notifier.messages) != 1 || !strings.HasPrefix(notifier.messages[0], "srinu:New ride request") {
		t.Fatalf("driver notices = %v", notifier.messages)
	}
}

func TestAllocateUnconfirmedLeavesRecordPending(t *testing.T) {
	strategy := &countingStrategy{ok: false}
	notifier := &captureDriverNotifier{}
	o := NewOrchestrator(strategy, notifier, zap.NewNop())
	rec := ride.NewRecord("vivek", "A", "B")

	o.Allocate(context.Background(), rec)

	if rec.Status() != ride.StatusPending {
		t.Fatalf("status = %s, want pending", rec.Status())
	}
	if rec.DriverName() != "" {
		t.Fatalf("driver bound on failed allocation: %q", rec.DriverName())
	}
	if len(notifier.messages) != 0 {
		t.Fatalf("driver notified on failed allocation: %v", notifier.messages)
	}
}
