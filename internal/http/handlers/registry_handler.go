// README: Registration and session handlers for riders and drivers.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ridecore/internal/modules/registry"
)

type RegistryHandler struct {
	reg *registry.Registry
}

func NewRegistryHandler(reg *registry.Registry) *RegistryHandler {
	return &RegistryHandler{reg: reg}
}

type registerRiderReq struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type registerDriverReq struct {
	Name        string  `json:"name"`
	VehicleKind string  `json:"vehicle_kind"`
	Rating      float64 `json:"rating"`
}

type sessionReq struct {
	Name string `json:"name"`
}

func (h *RegistryHandler) RegisterRider(c *gin.Context) {
	var req registerRiderReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		writeError(c, http.StatusBadRequest, "name is required")
		return
	}
	h.reg.AddRider(req.Name, req.Phone)
	writeJSON(c, http.StatusCreated, map[string]any{"name": req.Name})
}

func (h *RegistryHandler) RegisterDriver(c *gin.Context) {
	var req registerDriverReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		writeError(c, http.StatusBadRequest, "name is required")
		return
	}
	h.reg.AddDriver(req.Name, req.VehicleKind, req.Rating)
	writeJSON(c, http.StatusCreated, map[string]any{"name": req.Name})
}

func (h *RegistryHandler) Login(c *gin.Context) {
	h.session(c, h.reg.Login)
}

func (h *RegistryHandler) Logout(c *gin.Context) {
	h.session(c, h.reg.Logout)
}

func (h *RegistryHandler) session(c *gin.Context, op func(string) error) {
	var req sessionReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		writeError(c, http.StatusBadRequest, "name is required")
		return
	}
	if err := op(req.Name); err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"name": req.Name, "status": "ok"})
}

func (h *RegistryHandler) AvailableDrivers(c *gin.Context) {
	writeJSON(c, http.StatusOK, map[string]any{
		"drivers": h.reg.AvailableDrivers(c.Request.Context()),
	})
}
