package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/unrolled/render"

	"github.com/soundstitch/storefront/app/helpers"
	"github.com/soundstitch/storefront/app/repositories"
)

type CatalogHandler struct {
	sampleRepo repositories.SampleRepository
	packRepo   repositories.PackRepository
	render     *render.Render
}

func NewCatalogHandler(
	sampleRepo repositories.SampleRepository,
	packRepo repositories.PackRepository,
	render *render.Render,
) *CatalogHandler {
	return &CatalogHandler{
		sampleRepo: sampleRepo,
		packRepo:   packRepo,
		render:     render,
	}
}

func (h *CatalogHandler) ListSamples(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := repositories.SampleFilter{
		Genre:  query.Get("genre"),
		Search: query.Get("q"),
	}
	if v, err := strconv.Atoi(query.Get("min_bpm")); err == nil {
		filter.MinBPM = v
	}
	if v, err := strconv.Atoi(query.Get("max_bpm")); err == nil {
		filter.MaxBPM = v
	}

	samples, err := h.sampleRepo.GetAll(r.Context(), filter)
	if err != nil {
		log.Printf("CatalogHandler.ListSamples: %v", err)
		helpers.RenderError(h.render, w, http.StatusInternalServerError, "failed to load samples")
		return
	}

	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"samples": samples,
		"count":   len(samples),
	})
}

func (h *CatalogHandler) GetSample(w http.ResponseWriter, r *http.Request) {
	sample, err := h.sampleRepo.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		log.Printf("CatalogHandler.GetSample: %v", err)
		helpers.RenderError(h.render, w, http.StatusInternalServerError, "failed to load sample")
		return
	}
	if sample == nil {
		helpers.RenderError(h.render, w, http.StatusNotFound, "sample not found")
		return
	}

	_ = h.render.JSON(w, http.StatusOK, sample)
}

func (h *CatalogHandler) ListPacks(w http.ResponseWriter, r *http.Request) {
	packs, err := h.packRepo.GetAll(r.Context())
	if err != nil {
		log.Printf("CatalogHandler.ListPacks: %v", err)
		helpers.RenderError(h.render, w, http.StatusInternalServerError, "failed to load packs")
		return
	}

	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"packs": packs,
		"count": len(packs),
	})
}

func (h *CatalogHandler) GetPack(w http.ResponseWriter, r *http.Request) {
	pack, err := h.packRepo.GetByIDWithSamples(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		log.Printf("CatalogHandler.GetPack: %v", err)
		helpers.RenderError(h.render, w, http.StatusInternalServerError, "failed to load pack")
		return
	}
	if pack == nil {
		helpers.RenderError(h.render, w, http.StatusNotFound, "pack not found")
		return
	}

	_ = h.render.JSON(w, http.StatusOK, pack)
}
