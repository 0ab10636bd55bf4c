// README: Direct notification handlers (driver and rider notices).
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ridecore/internal/notify"
)

type NotifyHandler struct {
	pipeline *notify.Pipeline
}

func NewNotifyHandler(p *notify.Pipeline) *NotifyHandler {
	return &NotifyHandler{pipeline: p}
}

type noticeReq struct {
	Recipient string `json:"recipient"`
	Message   string `json:"message"`
}

func (h *NotifyHandler) NotifyDriver(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}
	h.pipeline.NotifyDriver(c.Request.Context(), req.Message, req.Recipient)
	writeJSON(c, http.StatusAccepted, map[string]any{"status": "sent"})
}

func (h *NotifyHandler) NotifyRider(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}
	h.pipeline.NotifyRider(c.Request.Context(), req.Message, req.Recipient)
	writeJSON(c, http.StatusAccepted, map[string]any{"status": "sent"})
}

func (h *NotifyHandler) bind(c *gin.Context) (noticeReq, bool) {
	var req noticeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return req, false
	}
	if req.Recipient == "" || req.Message == "" {
		writeError(c, http.StatusBadRequest, "recipient and message are required")
		return req, false
	}
	return req, true
}
