// README: Ride handlers for status lookup and cancellation.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ridecore/internal/dispatch"
	"ridecore/internal/types"
)

type RideHandler struct {
	coord *dispatch.Coordinator
}

func NewRideHandler(coord *dispatch.Coordinator) *RideHandler {
	return &RideHandler{coord: coord}
}

func (h *RideHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing ride id")
		return
	}
	snap, err := h.coord.Ride(types.ID(id))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, rideView(snap))
}

func (h *RideHandler) Cancel(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing ride id")
		return
	}
	if err := h.coord.CancelRide(c.Request.Context(), types.ID(id)); err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"status": "cancelled"})
}
