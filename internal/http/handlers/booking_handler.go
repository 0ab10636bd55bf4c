// README: Booking handler: create a booking and report the dispatch outcome.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ridecore/internal/modules/booking"
)

type BookingHandler struct {
	pipeline *booking.Pipeline
}

func NewBookingHandler(p *booking.Pipeline) *BookingHandler {
	return &BookingHandler{pipeline: p}
}

type createBookingReq struct {
	RiderName   string `json:"rider_name"`
	Pickup      string `json:"pickup"`
	Destination string `json:"destination"`
	RideType    string `json:"ride_type"`
	Vehicle     string `json:"vehicle"`
}

// Create runs the booking pipeline. Dispatch is synchronous up to the point
// the ride goes live, so the response already carries the matched driver and
// the post-acceptance status.
func (h *BookingHandler) Create(c *gin.Context) {
	var req createBookingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	rec, err := h.pipeline.CreateBooking(c.Request.Context(), booking.Request{
		RiderName:   req.RiderName,
		Pickup:      req.Pickup,
		Destination: req.Destination,
		RideType:    req.RideType,
		Vehicle:     req.Vehicle,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, rideView(rec.Snapshot()))
}
