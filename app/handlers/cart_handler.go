package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/unrolled/render"

	"github.com/soundstitch/storefront/app/cart"
	"github.com/soundstitch/storefront/app/helpers"
	"github.com/soundstitch/storefront/app/models"
	"github.com/soundstitch/storefront/app/repositories"
	"github.com/soundstitch/storefront/app/services"
	"github.com/soundstitch/storefront/app/utils/calc"
	"github.com/soundstitch/storefront/app/utils/format"
)

type CartHandler struct {
	carts      *services.CartService
	sampleRepo repositories.SampleRepository
	packRepo   repositories.PackRepository
	render     *render.Render
}

func NewCartHandler(
	carts *services.CartService,
	sampleRepo repositories.SampleRepository,
	packRepo repositories.PackRepository,
	render *render.Render,
) *CartHandler {
	return &CartHandler{
		carts:      carts,
		sampleRepo: sampleRepo,
		packRepo:   packRepo,
		render:     render,
	}
}

type cartResponse struct {
	Items             []models.CartItem `json:"items"`
	PurchaseHistory   []models.CartItem `json:"purchaseHistory"`
	Count             int               `json:"count"`
	Subtotal          string            `json:"subtotal"`
	FormattedSubtotal string            `json:"formattedSubtotal"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	store, ok := h.storeFor(w, r)
	if !ok {
		return
	}

	h.renderCart(w, store.Snapshot())
}

// AddItem accepts any of the three variants in the request body,
// discriminated by "type".
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	store, ok := h.storeFor(w, r)
	if !ok {
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		helpers.RenderError(h.render, w, http.StatusBadRequest, "failed to read request body")
		return
	}

	item, err := models.DecodeCartItem(body)
	if err != nil {
		helpers.RenderError(h.render, w, http.StatusBadRequest, err.Error())
		return
	}

	if err := store.AddItem(item); err != nil {
		h.renderStoreError(w, err)
		return
	}

	h.renderCart(w, store.Snapshot())
}

// AddSample puts a catalog sample into the cart by id.
func (h *CartHandler) AddSample(w http.ResponseWriter, r *http.Request) {
	store, ok := h.storeFor(w, r)
	if !ok {
		return
	}

	sample, err := h.sampleRepo.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		log.Printf("CartHandler.AddSample: failed to load sample: %v", err)
		helpers.RenderError(h.render, w, http.StatusInternalServerError, "failed to load sample")
		return
	}
	if sample == nil {
		helpers.RenderError(h.render, w, http.StatusNotFound, "sample not found")
		return
	}

	if err := store.AddItem(sample.CartItem(readQuantity(r))); err != nil {
		h.renderStoreError(w, err)
		return
	}

	h.renderCart(w, store.Snapshot())
}

// AddPack puts a catalog pack into the cart as a single unit.
func (h *CartHandler) AddPack(w http.ResponseWriter, r *http.Request) {
	store, ok := h.storeFor(w, r)
	if !ok {
		return
	}

	pack, err := h.packRepo.GetByIDWithSamples(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		log.Printf("CartHandler.AddPack: failed to load pack: %v", err)
		helpers.RenderError(h.render, w, http.StatusInternalServerError, "failed to load pack")
		return
	}
	if pack == nil {
		helpers.RenderError(h.render, w, http.StatusNotFound, "pack not found")
		return
	}

	if err := store.AddPack(pack.CartItem(readQuantity(r))); err != nil {
		h.renderStoreError(w, err)
		return
	}

	h.renderCart(w, store.Snapshot())
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	store, ok := h.storeFor(w, r)
	if !ok {
		return
	}

	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		helpers.RenderError(h.render, w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := store.UpdateQuantity(mux.Vars(r)["id"], body.Quantity); err != nil {
		h.renderStoreError(w, err)
		return
	}

	h.renderCart(w, store.Snapshot())
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	store, ok := h.storeFor(w, r)
	if !ok {
		return
	}

	store.RemoveItem(mux.Vars(r)["id"])
	h.renderCart(w, store.Snapshot())
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	store, ok := h.storeFor(w, r)
	if !ok {
		return
	}

	store.Clear()
	h.renderCart(w, store.Snapshot())
}

func (h *CartHandler) storeFor(w http.ResponseWriter, r *http.Request) (*cart.Store, bool) {
	cartKey, ok := helpers.CartKeyFromContext(r.Context())
	if !ok {
		helpers.RenderError(h.render, w, http.StatusInternalServerError, "cart session missing")
		return nil, false
	}
	return h.carts.StoreFor(r.Context(), cartKey), true
}

func (h *CartHandler) renderCart(w http.ResponseWriter, state models.CartState) {
	subtotal := calc.CartSubtotal(state.Items)
	_ = h.render.JSON(w, http.StatusOK, cartResponse{
		Items:             state.Items,
		PurchaseHistory:   state.PurchaseHistory,
		Count:             len(state.Items),
		Subtotal:          subtotal.StringFixed(2),
		FormattedSubtotal: format.USD(subtotal),
	})
}

func (h *CartHandler) renderStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, cart.ErrItemNotFound):
		helpers.RenderError(h.render, w, http.StatusNotFound, err.Error())
	case errors.Is(err, cart.ErrVariantConflict):
		helpers.RenderError(h.render, w, http.StatusConflict, err.Error())
	case errors.Is(err, cart.ErrInvalidItem), errors.Is(err, cart.ErrInvalidQuantity):
		helpers.RenderError(h.render, w, http.StatusUnprocessableEntity, err.Error())
	default:
		helpers.RenderError(h.render, w, http.StatusInternalServerError, err.Error())
	}
}

// readQuantity pulls an optional {"quantity": n} body; anything missing
// or unreadable falls back to 1.
func readQuantity(r *http.Request) int {
	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Quantity < 1 {
		return 1
	}
	return body.Quantity
}
