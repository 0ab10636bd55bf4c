// README: Entry point; loads config, wires the dispatch core, starts the HTTP server.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"ridecore/internal/config"
	"ridecore/internal/dispatch"
	httptransport "ridecore/internal/http"
	"ridecore/internal/infra"
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

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := infra.NewLogger(cfg.Log.Development)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := registry.New()

	redisClient := infra.NewRedis(cfg.Redis.Addr)
	geoSvc := geo.NewService(geo.NewRedisStore(redisClient), logger)
	geoSvc.AddObserver(&geo.LogObserver{Channel: "ops", Log: logger})

	// the journal keeps every status transition; Postgres is optional
	var journalStore journal.Store = journal.NewMemoryStore()
	if cfg.DB.DSN != "" {
		dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			logger.Fatal("postgres init", zap.Error(err))
		}
		defer dbPool.Close()
		journalStore = journal.NewPostgresStore(dbPool)
	}
	recorder := journal.NewRecorder(journalStore, logger)

	// push goes through FCM when configured, else to the log
	var push notify.Transport = &notify.LogPushTransport{Log: logger}
	if cfg.Firebase.ProjectID != "" {
		fcmClient, err := infra.NewMessaging(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
		if err != nil {
			logger.Fatal("firebase init", zap.Error(err))
		}
		push = notify.NewFCMTransport(fcmClient, logger)
	}
	notifier := notify.NewPipeline(&notify.EmailTransport{Log: logger}, push, notify.AutoAccept{}, logger)
	notifier.AddObserver(&notify.LogObserver{Channel: "broadcast", Log: logger})

	alloc := allocation.NewOrchestrator(allocation.NearestDriver{Source: reg}, notifier, logger)
	gateway := payment.NewSimulatedGateway(cfg.Stages.PaymentDelay, logger)
	factory := dispatch.DefaultDriverFactory(
		geoSvc, notifier, gateway, lifecycle.NewTimerSleeper(),
		lifecycle.Timings{
			ApproachHop:    cfg.Stages.ApproachHop,
			BoardingWait:   cfg.Stages.BoardingWait,
			TripHop:        cfg.Stages.TripHop,
			PaymentTimeout: cfg.Stages.PaymentTimeout,
		},
		logger,
	)
	coord := dispatch.NewCoordinator(alloc, notifier, factory, logger)

	eventBus := bus.New(logger)
	eventBus.Subscribe(coord)

	pipeline := booking.NewPipeline(
		booking.DefaultRideTypes{},
		booking.DefaultVehicles{},
		booking.PricingFromConfig(cfg.Pricing),
		eventBus,
		logger,
		recorder,
	)

	router := httptransport.NewRouter(httptransport.RouterDeps{
		Booking:  pipeline,
		Dispatch: coord,
		Geo:      geoSvc,
		Notify:   notifier,
		Registry: reg,
		Log:      logger,
	})

	server := httptransport.NewServer(cfg.HTTP.Addr, router, logger)
	if err := server.Run(ctx); err != nil {
		logger.Fatal("http server", zap.Error(err))
	}
	coord.Wait()
}
