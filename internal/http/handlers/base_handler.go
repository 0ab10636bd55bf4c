// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ridecore/internal/dispatch"
	"ridecore/internal/lifecycle"
	"ridecore/internal/modules/booking"
	"ridecore/internal/modules/registry"
	"ridecore/internal/modules/ride"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, booking.ErrBadRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, dispatch.ErrUnknownRide), errors.Is(err, registry.ErrUnknownUser):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ride.ErrInvalidTransition), errors.Is(err, lifecycle.ErrNotCancelable):
		writeError(c, http.StatusConflict, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

func rideView(snap ride.Snapshot) map[string]any {
	return map[string]any{
		"ride_id":     snap.ID,
		"rider":       snap.RiderName,
		"driver":      snap.DriverName,
		"pickup":      snap.Pickup,
		"destination": snap.Destination,
		"ride_type":   snap.RideType,
		"vehicle":     snap.Vehicle,
		"fare":        snap.Fare,
		"status":      snap.Status,
	}
}
