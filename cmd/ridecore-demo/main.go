// README: In-memory dispatch walkthrough: seeded users, one booking, full ride to payment.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.uber.org/zap"

	"ridecore/internal/dispatch"
	"ridecore/internal/lifecycle"
	"ridecore/internal/modules/allocation"
	"ridecore/internal/modules/booking"
	"ridecore/internal/modules/bus"
	"ridecore/internal/modules/geo"
	"ridecore/internal/modules/journal"
	"ridecore/internal/modules/registry"
	"ridecore/internal/notify"
	"ridecore/internal/payment"
)

// demo stage timings, short enough to watch in one sitting
const (
	approachHop  = 200 * time.Millisecond
	boardingWait = 300 * time.Millisecond
	tripHop      = 200 * time.Millisecond
	paymentDelay = 300 * time.Millisecond
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	reg := registry.New()
	reg.AddRider("vivek", "555-0101")
	reg.AddRider("anji", "555-0102")
	reg.AddDriver("srinu", "car", 4.8)
	reg.AddDriver("raju", "auto", 4.5)
	if err := reg.Login("vivek"); err != nil {
		log.Fatal(err)
	}
	if err := reg.Login("srinu"); err != nil {
		log.Fatal(err)
	}

	geoSvc := geo.NewService(geo.NewMemoryStore(), logger)
	geoSvc.AddObserver(&geo.LogObserver{Channel: "demo", Log: logger})

	journalStore := journal.NewMemoryStore()
	recorder := journal.NewRecorder(journalStore, logger)

	notifier := notify.NewPipeline(
		&notify.EmailTransport{Log: logger},
		&notify.LogPushTransport{Log: logger},
		notify.AutoAccept{},
		logger,
	)
	notifier.AddObserver(&notify.LogObserver{Channel: "broadcast", Log: logger})

	alloc := allocation.NewOrchestrator(allocation.NearestDriver{Source: reg}, notifier, logger)
	factory := dispatch.DefaultDriverFactory(
		geoSvc, notifier,
		payment.NewSimulatedGateway(paymentDelay, logger),
		lifecycle.NewTimerSleeper(),
		lifecycle.Timings{
			ApproachHop:    approachHop,
			BoardingWait:   boardingWait,
			TripHop:        tripHop,
			PaymentTimeout: 10 * time.Second,
		},
		logger,
	)
	coord := dispatch.NewCoordinator(alloc, notifier, factory, logger)

	eventBus := bus.New(logger)
	eventBus.Subscribe(coord)

	pipeline := booking.NewPipeline(
		booking.DefaultRideTypes{},
		booking.DefaultVehicles{},
		booking.StandardPricing{Base: 50},
		eventBus,
		logger,
		recorder,
	)

	rec, err := pipeline.CreateBooking(context.Background(), booking.Request{
		RiderName:   "vivek",
		Pickup:      "A",
		Destination: "B",
		RideType:    "normal",
		Vehicle:     "sedan",
	})
	if err != nil {
		log.Fatal(err)
	}

	coord.Wait()

	snap := rec.Snapshot()
	fmt.Printf("ride %s: rider=%s driver=%s vehicle=%s/%s fare=%d %s status=%s\n",
		snap.ID, snap.RiderName, snap.DriverName,
		snap.Vehicle.Kind, snap.Vehicle.Tier,
		snap.Fare.Amount, snap.Fare.Currency, snap.Status)

	fmt.Println("journal:")
	for _, e := range journalStore.Entries() {
		fmt.Printf("  %s -> %s\n", e.FromStatus, e.ToStatus)
	}

	if loc, err := geoSvc.DriverLocation(context.Background(), snap.DriverName); err == nil {
		fmt.Printf("driver %s last seen at %s\n", snap.DriverName, loc)
	}
}
