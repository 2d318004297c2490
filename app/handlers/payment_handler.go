package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/unrolled/render"

	"github.com/soundstitch/storefront/app/helpers"
	"github.com/soundstitch/storefront/app/services"
)

type PaymentHandler struct {
	payments *services.PaymentService
	render   *render.Render
}

func NewPaymentHandler(payments *services.PaymentService, render *render.Render) *PaymentHandler {
	return &PaymentHandler{payments: payments, render: render}
}

// Notification is the Midtrans webhook endpoint.
func (h *PaymentHandler) Notification(w http.ResponseWriter, r *http.Request) {
	var payload services.NotificationPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		helpers.RenderError(h.render, w, http.StatusBadRequest, "invalid notification payload")
		return
	}

	if err := h.payments.ProcessNotification(r.Context(), payload); err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			helpers.RenderError(h.render, w, http.StatusNotFound, err.Error())
			return
		}
		log.Printf("PaymentHandler.Notification: %v", err)
		helpers.RenderError(h.render, w, http.StatusInternalServerError, "failed to process notification")
		return
	}

	_ = h.render.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
