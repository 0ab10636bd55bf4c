// README: Handler tests over a fully wired in-memory stack.
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ridecore/internal/dispatch"
	ridehttp "ridecore/internal/http"
	"ridecore/internal/lifecycle"
	"ridecore/internal/modules/allocation"
	"ridecore/internal/modules/booking"
	"ridecore/internal/modules/bus"
	"ridecore/internal/modules/geo"
	"ridecore/internal/modules/registry"
	"ridecore/internal/modules/ride"
	"ridecore/internal/notify"
	"ridecore/internal/payment"
	"ridecore/internal/types"
)

type instantSleeper struct{}

func (instantSleeper) Sleep(ctx context.Context, _ time.Duration) error { return ctx.Err() }

type testStack struct {
	router http.Handler
	coord  *dispatch.Coordinator
}

func newTestStack(t *testing.T) *testStack {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := zap.NewNop()

	reg := registry.New()
	reg.AddRider("vivek", "555-0101")
	reg.AddDriver("srinu", "car", 4.8)
	if err := reg.Login("srinu"); err != nil {
		t.Fatalf("seed driver login: %v", err)
	}

	geoSvc := geo.NewService(geo.NewMemoryStore(), log)
	notifier := notify.NewPipeline(
		&notify.EmailTransport{Log: log},
		&notify.LogPushTransport{Log: log},
		notify.AutoAccept{},
		log,
	)
	alloc := allocation.NewOrchestrator(
		allocation.NearestDriver{Source: reg},
		notifier,
		log,
	)
	factory := dispatch.DefaultDriverFactory(
		geoSvc, notifier, payment.NewSimulatedGateway(0, log),
		instantSleeper{}, lifecycle.Timings{}, log,
	)
	coord := dispatch.NewCoordinator(alloc, notifier, factory, log)

	eventBus := bus.New(log)
	eventBus.Subscribe(coord)

	pipeline := booking.NewPipeline(
		booking.DefaultRideTypes{},
		booking.DefaultVehicles{},
		booking.StandardPricing{Base: 50},
		eventBus,
		log,
	)

	router := ridehttp.NewRouter(ridehttp.RouterDeps{
		Booking:  pipeline,
		Dispatch: coord,
		Geo:      geoSvc,
		Notify:   notifier,
		Registry: reg,
		Log:      log,
	})
	return &testStack{router: router, coord: coord}
}

func (s *testStack) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func TestCreateBookingReturnsDispatchedRide(t *testing.T) {
	stack := newTestStack(t)

	w := stack.do(t, http.MethodPost, "/api/bookings", map[string]any{
		"rider_name":  "vivek",
		"pickup":      "A",
		"destination": "B",
		"ride_type":   "normal",
		"vehicle":     "sedan",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		RideID string `json:"ride_id"`
		Driver string `json:"driver"`
		Status string `json:"status"`
		Fare   struct {
			Amount   int64  `json:"Amount"`
			Currency string `json:"Currency"`
		} `json:"fare"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Driver != "srinu" {
		t.Fatalf("driver = %q, want srinu", resp.Driver)
	}
	if resp.Fare.Amount != 50 || resp.Fare.Currency != "INR" {
		t.Fatalf("fare = %+v", resp.Fare)
	}

	// the live run finishes immediately with instant stage delays
	stack.coord.Wait()
	snap, err := stack.coord.Ride(types.ID(resp.RideID))
	if err != nil {
		t.Fatalf("ride lookup: %v", err)
	}
	if snap.Status != ride.StatusPaid {
		t.Fatalf("final status = %s, want paid", snap.Status)
	}
}

func TestCreateBookingRejectsMissingFields(t *testing.T) {
	stack := newTestStack(t)
	w := stack.do(t, http.MethodPost, "/api/bookings", map[string]any{
		"rider_name": "vivek",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestGetUnknownRideIs404(t *testing.T) {
	stack := newTestStack(t)
	w := stack.do(t, http.MethodGet, "/api/rides/nope", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestCancelFinishedRideConflicts(t *testing.T) {
	stack := newTestStack(t)
	w := stack.do(t, http.MethodPost, "/api/bookings", map[string]any{
		"rider_name":  "vivek",
		"pickup":      "A",
		"destination": "B",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d", w.Code)
	}
	var resp struct {
		RideID string `json:"ride_id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	stack.coord.Wait()

	w = stack.do(t, http.MethodPost, "/api/rides/"+resp.RideID+"/cancel", nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("cancel status = %d, want 409", w.Code)
	}
}

func TestLoginUnknownUserIs404(t *testing.T) {
	stack := newTestStack(t)
	w := stack.do(t, http.MethodPost, "/api/login", map[string]any{"name": "ghost"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestDriverLocationRoundTrip(t *testing.T) {
	stack := newTestStack(t)
	w := stack.do(t, http.MethodPut, "/api/drivers/srinu/location", map[string]any{
		"location": "garage",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d", w.Code)
	}
	w = stack.do(t, http.MethodGet, "/api/drivers/srinu/location", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}
	var resp struct {
		Location string `json:"location"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Location != "garage" {
		t.Fatalf("location = %q, want garage", resp.Location)
	}
}
