// README: Driver geolocation handlers.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ridecore/internal/modules/geo"
)

type LocationHandler struct {
	geo *geo.Service
}

func NewLocationHandler(svc *geo.Service) *LocationHandler {
	return &LocationHandler{geo: svc}
}

type updateLocationReq struct {
	Location string `json:"location"`
}

func (h *LocationHandler) Update(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		writeError(c, http.StatusBadRequest, "missing driver name")
		return
	}
	var req updateLocationReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Location == "" {
		writeError(c, http.StatusBadRequest, "missing location")
		return
	}
	h.geo.UpdateDriverLocation(c.Request.Context(), name, req.Location)
	writeJSON(c, http.StatusOK, map[string]any{"status": "ok"})
}

func (h *LocationHandler) Get(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		writeError(c, http.StatusBadRequest, "missing driver name")
		return
	}
	location, err := h.geo.DriverLocation(c.Request.Context(), name)
	if err != nil {
		writeError(c, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"driver": name, "location": location})
}
