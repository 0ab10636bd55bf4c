// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ridecore/internal/dispatch"
	"ridecore/internal/http/handlers"
	"ridecore/internal/http/middleware"
	"ridecore/internal/modules/booking"
	"ridecore/internal/modules/geo"
	"ridecore/internal/modules/registry"
	"ridecore/internal/notify"
)

type RouterDeps struct {
	Booking  *booking.Pipeline
	Dispatch *dispatch.Coordinator
	Geo      *geo.Service
	Notify   *notify.Pipeline
	Registry *registry.Registry
	Log      *zap.Logger
}

func NewRouter(deps RouterDeps) http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.Recovery(deps.Log), middleware.Logging(deps.Log))

	bookingHandler := handlers.NewBookingHandler(deps.Booking)
	r.POST("/api/bookings", bookingHandler.Create)

	rideHandler := handlers.NewRideHandler(deps.Dispatch)
	r.GET("/api/rides/:id", rideHandler.Get)
	r.POST("/api/rides/:id/cancel", rideHandler.Cancel)

	locationHandler := handlers.NewLocationHandler(deps.Geo)
	r.PUT("/api/drivers/:name/location", locationHandler.Update)
	r.GET("/api/drivers/:name/location", locationHandler.Get)

	notifyHandler := handlers.NewNotifyHandler(deps.Notify)
	r.POST("/api/notify/driver", notifyHandler.NotifyDriver)
	r.POST("/api/notify/rider", notifyHandler.NotifyRider)

	registryHandler := handlers.NewRegistryHandler(deps.Registry)
	r.POST("/api/riders", registryHandler.RegisterRider)
	r.POST("/api/drivers", registryHandler.RegisterDriver)
	r.POST("/api/login", registryHandler.Login)
	r.POST("/api/logout", registryHandler.Logout)
	r.GET("/api/drivers/available", registryHandler.AvailableDrivers)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
