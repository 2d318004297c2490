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

type CheckoutHandler struct {
	checkout *services.CheckoutService
	render   *render.Render
}

func NewCheckoutHandler(checkout *services.CheckoutService, render *render.Render) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout, render: render}
}

// SaveDetails stores the contact details step of the checkout flow.
func (h *CheckoutHandler) SaveDetails(w http.ResponseWriter, r *http.Request) {
	cartKey, ok := helpers.CartKeyFromContext(r.Context())
	if !ok {
		helpers.RenderError(h.render, w, http.StatusInternalServerError, "cart session missing")
		return
	}

	var input services.CheckoutDetailsInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		helpers.RenderError(h.render, w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.checkout.SaveDetails(r.Context(), cartKey, input); err != nil {
		helpers.RenderError(h.render, w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	_ = h.render.JSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

// Summary returns the server-computed order preview.
func (h *CheckoutHandler) Summary(w http.ResponseWriter, r *http.Request) {
	cartKey, ok := helpers.CartKeyFromContext(r.Context())
	if !ok {
		helpers.RenderError(h.render, w, http.StatusInternalServerError, "cart session missing")
		return
	}

	preview, err := h.checkout.Summary(r.Context(), cartKey)
	if err != nil {
		h.renderCheckoutError(w, err)
		return
	}

	_ = h.render.JSON(w, http.StatusOK, preview)
}

// Checkout creates the order and returns the hosted-payment redirect
// URL.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	cartKey, ok := helpers.CartKeyFromContext(r.Context())
	if !ok {
		helpers.RenderError(h.render, w, http.StatusInternalServerError, "cart session missing")
		return
	}

	order, redirectURL, err := h.checkout.CreateOrder(r.Context(), cartKey)
	if err != nil {
		h.renderCheckoutError(w, err)
		return
	}

	_ = h.render.JSON(w, http.StatusCreated, map[string]interface{}{
		"orderCode":   order.OrderCode,
		"grandTotal":  order.GrandTotal,
		"redirectUrl": redirectURL,
	})
}

// ListOrders returns the session's purchase history.
func (h *CheckoutHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	cartKey, ok := helpers.CartKeyFromContext(r.Context())
	if !ok {
		helpers.RenderError(h.render, w, http.StatusInternalServerError, "cart session missing")
		return
	}

	orders, err := h.checkout.Orders(r.Context(), cartKey)
	if err != nil {
		log.Printf("CheckoutHandler.ListOrders: %v", err)
		helpers.RenderError(h.render, w, http.StatusInternalServerError, "failed to load orders")
		return
	}

	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"orders": orders,
		"count":  len(orders),
	})
}

func (h *CheckoutHandler) renderCheckoutError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrCartEmpty), errors.Is(err, services.ErrDetailsMissing):
		helpers.RenderError(h.render, w, http.StatusConflict, err.Error())
	default:
		log.Printf("CheckoutHandler: %v", err)
		helpers.RenderError(h.render, w, http.StatusInternalServerError, err.Error())
	}
}
