package web

import (
	"net/http"
	"strconv"

	"supply-console/internal/core"

	"github.com/go-chi/chi/v5"
)

// getDeliveryCharges handles GET /api/delivery-charges/{location}/{carrier}.
func (h *Handler) getDeliveryCharges(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GetDeliveryCharges(r.Context(), chi.URLParam(r, "location"), chi.URLParam(r, "carrier"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// saveDeliveryCharges handles PUT /api/delivery-charges/{location}/{carrier}.
// The body is the full slab set; it replaces whatever is stored.
func (h *Handler) saveDeliveryCharges(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Slabs []core.RawDiscountSlab `json:"slabs"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	result, err := h.svc.SaveDeliveryCharges(r.Context(), chi.URLParam(r, "location"), chi.URLParam(r, "carrier"), body.Slabs)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// getProductDiscounts handles GET /api/product-discounts/{product}/{subcategory}.
func (h *Handler) getProductDiscounts(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GetProductDiscounts(r.Context(), chi.URLParam(r, "product"), chi.URLParam(r, "subcategory"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// saveProductDiscounts handles PUT /api/product-discounts/{product}/{subcategory}.
// The body is the full slab set; it replaces whatever is stored.
func (h *Handler) saveProductDiscounts(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Slabs []core.RawDiscountSlab `json:"slabs"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	result, err := h.svc.SaveProductDiscounts(r.Context(), chi.URLParam(r, "product"), chi.URLParam(r, "subcategory"), body.Slabs)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// listPriceSlabs handles GET /api/price-slabs. The optional ?product=CODE
// query selects a product-owned list; without it the global list is returned.
func (h *Handler) listPriceSlabs(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListPriceSlabs(r.Context(), r.URL.Query().Get("product"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// addPriceSlab handles POST /api/price-slabs.
func (h *Handler) addPriceSlab(w http.ResponseWriter, r *http.Request) {
	var slab core.RawQuantitySlab
	if !decodeJSON(w, r, &slab) {
		return
	}

	result, err := h.svc.AddPriceSlab(r.Context(), r.URL.Query().Get("product"), slab)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// updatePriceSlab handles PUT /api/price-slabs/{id}.
func (h *Handler) updatePriceSlab(w http.ResponseWriter, r *http.Request) {
	id, ok := slabID(w, r)
	if !ok {
		return
	}

	var slab core.RawQuantitySlab
	if !decodeJSON(w, r, &slab) {
		return
	}

	result, err := h.svc.UpdatePriceSlab(r.Context(), id, slab)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// deletePriceSlab handles DELETE /api/price-slabs/{id}.
func (h *Handler) deletePriceSlab(w http.ResponseWriter, r *http.Request) {
	id, ok := slabID(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeletePriceSlab(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, map[string]string{"status": "deleted"})
}

// slabID extracts and validates the numeric {id} URL parameter.
func slabID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 1 {
		writeError(w, r, "invalid slab id", "BAD_REQUEST", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
